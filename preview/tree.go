// Package preview 将样式配置投影为与渲染方式无关的节点树。
package preview

import (
	"fmt"

	"github.com/ByLCY/stylepress/style"
)

// Role 标识节点在预览页面中的语义角色。
type Role string

const (
	RoleRoot        Role = "root"
	RoleSection     Role = "section"
	RoleStack       Role = "stack"
	RoleTitle       Role = "title"
	RoleHeading     Role = "heading"
	RoleParagraph   Role = "paragraph"
	RoleActions     Role = "actions"
	RoleButton      Role = "button"
	RoleGallery     Role = "gallery"
	RoleTile        Role = "tile"
	RoleRow         Role = "row"
	RoleThumb       Role = "thumb"
	RoleCardGrid    Role = "card-grid"
	RoleCard        Role = "card"
	RoleSwatch      Role = "swatch"
	RoleCardTitle   Role = "card-title"
	RoleCounters    Role = "counters"
	RoleCounter     Role = "counter"
	RoleFeatureGrid Role = "feature-grid"
	RoleFeature     Role = "feature"
	RoleBadge       Role = "badge"
	RoleFrame       Role = "design-frame"
	RoleMarkup      Role = "markup"
	RoleImage       Role = "image"
)

// Elevation 是阴影的预设档位。
type Elevation int

const (
	ElevationNone Elevation = iota
	ElevationSmall
	ElevationMedium
	ElevationLarge
)

// Justify 是水平方向的对齐模式。
type Justify string

const (
	JustifyStart  Justify = "start"
	JustifyCenter Justify = "center"
	JustifyEnd    Justify = "end"
)

// Display 决定子节点如何排布。
type Display int

const (
	DisplayBlock Display = iota // 纵向堆叠
	DisplayRow                  // 横向排列
	DisplayGrid                 // 自动填充的多列网格（MinColumn）或固定列数（Columns）
	DisplayList                 // 单列纵向序列
)

// Border 描述描边。
type Border struct {
	Width int
	Color string
}

// String 输出 "{weight}px solid {color}"。
func (b Border) String() string { return fmt.Sprintf("%dpx solid %s", b.Width, b.Color) }

// Style 是节点的视觉属性，长度单位均为 px。
type Style struct {
	FontFamily string
	FontWeight int
	FontSize   float64
	Color      string
	Background string
	Radius     float64
	Padding    float64
	Border     *Border
	Shadow     Elevation
	Justify    Justify
	Display    Display
	Gap        float64
	MinColumn  float64 // DisplayGrid 下的最小列宽
	Columns    int     // DisplayGrid 下的固定列数
	Width      float64 // 0 表示占满父容器
	Height     float64 // 0 表示由内容决定
	Square     bool    // 高度等于宽度
	Circle     bool
}

// Node 是预览树中的一个节点。
type Node struct {
	Role     Role
	Text     string
	Style    Style
	Children []*Node

	// 导入设计稿相关
	Markup string // 矢量稿解码后的标记，直接拼入渲染结果
	Src    string // 位图稿的 URL 或 data URI
	Fault  error  // 解码失败时记录，由渲染面上报
}

// Tree 是一次投影的结果。
type Tree struct {
	Root   *Node
	Config style.Config
}

// Find 以文档顺序返回所有指定角色的节点。
func (t *Tree) Find(role Role) []*Node {
	if t == nil || t.Root == nil {
		return nil
	}
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Role == role {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t.Root)
	return out
}

// Fault 返回树中第一个记录的渲染故障。
func (t *Tree) Fault() error {
	for _, n := range t.Find(RoleMarkup) {
		if n.Fault != nil {
			return n.Fault
		}
	}
	return nil
}
