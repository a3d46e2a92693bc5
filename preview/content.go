package preview

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// GalleryItem 是示例图库中的一项。
type GalleryItem struct {
	ID    int
	Color string
}

// Design 是导入的设计稿。
type Design struct {
	Source   string // data URI 或 URL
	MIMEType string
}

// IsVector 根据声明的 MIME 或内容前缀判断是否为矢量稿。
func (d Design) IsVector() bool {
	return strings.Contains(d.MIMEType, "svg") || strings.Contains(d.Source, "data:image/svg")
}

// Markup 解出矢量稿标记：base64 载荷解码，百分号编码载荷反转义，其余原样返回。
// 不校验标记内容本身。
func (d Design) Markup() (string, error) {
	src := d.Source
	if strings.Contains(src, "base64") {
		_, payload, ok := strings.Cut(src, ",")
		if !ok {
			return "", fmt.Errorf("矢量稿缺少 base64 载荷")
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", fmt.Errorf("解码矢量稿失败: %w", err)
		}
		return string(data), nil
	}
	if strings.HasPrefix(src, "data:") {
		_, payload, _ := strings.Cut(src, ",")
		markup, err := url.PathUnescape(payload)
		if err != nil {
			return "", fmt.Errorf("解码矢量稿失败: %w", err)
		}
		return markup, nil
	}
	return src, nil
}

// Content 是投影使用的页面内容。Design 非空时只渲染导入的设计稿。
type Content struct {
	Title    string
	Lead     string
	Primary  string
	Second   string
	Gallery  []GalleryItem
	Cards    int
	Features []string
	Design   *Design
}

// SampleContent 返回默认的示例页面内容。
func SampleContent() Content {
	return Content{
		Title:   "Dynamic UI Preview",
		Lead:    "This is a live preview of your customizable design. All changes you make in the editor are reflected here in real-time.",
		Primary: "Get Started",
		Second:  "Learn More",
		Gallery: []GalleryItem{
			{ID: 1, Color: "#3b82f6"},
			{ID: 2, Color: "#8b5cf6"},
			{ID: 3, Color: "#ec4899"},
			{ID: 4, Color: "#f59e0b"},
			{ID: 5, Color: "#10b981"},
			{ID: 6, Color: "#6366f1"},
		},
		Cards:    3,
		Features: []string{"Real-time Preview", "Customizable Typography", "Flexible Layouts", "Export Configuration"},
	}
}

// WithDesign 返回附带导入设计稿的内容副本。
func (c Content) WithDesign(d Design) Content {
	c.Design = &d
	return c
}
