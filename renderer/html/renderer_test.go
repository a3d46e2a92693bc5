package htmlrenderer

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/ByLCY/stylepress/preview"
	"github.com/ByLCY/stylepress/style"
)

func render(t *testing.T, cfg style.Config, content preview.Content, opts Options) string {
	t.Helper()
	out, err := Render(preview.Project(cfg, content), opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return string(out)
}

func TestRenderSampleSections(t *testing.T) {
	cfg := style.Default().Update(style.SectionStroke, "weight", 3).Update(style.SectionLayout, "containerPadding", 40)
	doc := render(t, cfg, preview.SampleContent(), Options{})
	for _, want := range []string{
		"Dynamic UI Preview",
		"border: 3px solid #e5e7eb",
		"padding: 40px",
		"repeat(auto-fill, minmax(200px, 1fr))",
		"Get Started",
		"Card Title 3",
		"hsl(340, 70%, 60%)",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("HTML 缺少 %q", want)
		}
	}
	if strings.Contains(doc, "Gallery Item") {
		t.Fatalf("网格模式不应出现列表行")
	}
}

func TestRenderListMode(t *testing.T) {
	doc := render(t, style.Default().SetLayoutType(style.LayoutList), preview.SampleContent(), Options{})
	last := -1
	for i := 1; i <= 6; i++ {
		idx := strings.Index(doc, "Gallery Item "+string(rune('0'+i)))
		if idx <= last {
			t.Fatalf("列表行顺序错误: item %d", i)
		}
		last = idx
	}
	if !strings.Contains(doc, "flex-direction: column") {
		t.Fatalf("列表模式应纵向排列")
	}
}

func TestRenderDesignReplacesSample(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><circle r="4"/></svg>`
	design := preview.Design{Source: "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg)), MIMEType: "image/svg+xml"}
	doc := render(t, style.Default(), preview.SampleContent().WithDesign(design), Options{})
	if !strings.Contains(doc, svg) {
		t.Fatalf("矢量稿标记应原样拼入文档")
	}
	for _, absent := range []string{"Image Gallery", "Key Features", "Card Title"} {
		if strings.Contains(doc, absent) {
			t.Fatalf("导入设计稿后不应出现示例区块 %q", absent)
		}
	}
	if !strings.Contains(doc, "Your Design") {
		t.Fatalf("缺少设计稿区块标题")
	}
}

func TestRenderRasterDesignKeepsDataURI(t *testing.T) {
	src := "data:image/png;base64,iVBORw0KGgo="
	doc := render(t, style.Default(), preview.SampleContent().WithDesign(preview.Design{Source: src, MIMEType: "image/png"}), Options{})
	if !strings.Contains(doc, `src="`+src+`"`) {
		t.Fatalf("位图应按原地址引用")
	}
}

func TestRenderFaultIsError(t *testing.T) {
	design := preview.Design{Source: "data:image/svg+xml;base64,!!!", MIMEType: "image/svg+xml"}
	if _, err := Render(preview.Project(style.Default(), preview.SampleContent().WithDesign(design)), Options{}); err == nil {
		t.Fatalf("矢量稿解码失败应返回错误")
	}
}

func TestRenderMinify(t *testing.T) {
	plain := render(t, style.Default(), preview.SampleContent(), Options{})
	small := render(t, style.Default(), preview.SampleContent(), Options{Minify: true, Title: "Mine"})
	if len(small) >= len(plain) {
		t.Fatalf("压缩后应更短: %d >= %d", len(small), len(plain))
	}
	if !strings.Contains(small, "Mine") || !strings.Contains(small, "Dynamic UI Preview") {
		t.Fatalf("压缩不应丢失内容")
	}
}
