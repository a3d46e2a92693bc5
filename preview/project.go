package preview

import (
	"fmt"
	"strconv"

	"github.com/ByLCY/stylepress/style"
)

// 标题字号相对正文字号的倍数。
const (
	titleScale     = 2.0
	headingScale   = 1.5
	cardTitleScale = 1.25
)

// 以下为示例页面的固定外观，不随配置变化。
const (
	textColor      = "#111827"
	mutedColor     = "#6b7280"
	minGridColumn  = 200
	listGap        = 16
	cardGridGap    = 24
	featureGridGap = 24
	buttonGap      = 16
)

// Project 将配置投影为预览树。对任何配置都有结果，越界数值原样进入属性。
func Project(cfg style.Config, content Content) *Tree {
	root := &Node{
		Role: RoleRoot,
		Style: Style{
			FontFamily: cfg.Typography.FontFamily,
			FontWeight: cfg.Typography.FontWeight,
			FontSize:   float64(cfg.Typography.FontSize),
			Color:      textColor,
			Gap:        32,
			Padding:    32,
		},
	}

	if content.Design != nil {
		root.Children = append(root.Children, designSection(cfg, *content.Design))
		return &Tree{Root: root, Config: cfg}
	}

	root.Children = append(root.Children,
		headerSection(cfg, content),
		gallerySection(cfg, content),
		cardGrid(cfg, content),
		featureSection(cfg, content),
	)
	return &Tree{Root: root, Config: cfg}
}

// sectionStyle 是所有区块容器共用的外观。
func sectionStyle(cfg style.Config) Style {
	return Style{
		Radius:     float64(cfg.Layout.CardBorderRadius),
		Padding:    float64(cfg.Layout.ContainerPadding),
		Background: cfg.Layout.SectionBackgroundColor,
		Border:     &Border{Width: cfg.Stroke.Weight, Color: cfg.Stroke.Color},
		Gap:        16,
	}
}

func text(role Role, content string, size float64, weight int, color string) *Node {
	return &Node{Role: role, Text: content, Style: Style{FontSize: size, FontWeight: weight, Color: color}}
}

func headerSection(cfg style.Config, content Content) *Node {
	base := float64(cfg.Typography.FontSize)
	b := cfg.Button
	primary := &Node{
		Role: RoleButton,
		Text: content.Primary,
		Style: Style{
			Radius:     float64(b.BorderRadius),
			Background: b.BackgroundColor,
			Color:      b.TextColor,
			Shadow:     ElevationFor(b.Shadow),
			Padding:    12,
			FontWeight: 500,
		},
	}
	secondary := &Node{
		Role: RoleButton,
		Text: content.Second,
		Style: Style{
			Radius:     float64(b.BorderRadius),
			Background: "transparent",
			Color:      b.BackgroundColor,
			Border:     &Border{Width: 1, Color: b.BackgroundColor},
			Shadow:     ElevationFor(b.Shadow),
			Padding:    12,
			FontWeight: 500,
		},
	}
	return &Node{
		Role:  RoleSection,
		Style: sectionStyle(cfg),
		Children: []*Node{
			text(RoleTitle, content.Title, base*titleScale, 700, textColor),
			text(RoleParagraph, content.Lead, base, 0, mutedColor),
			{
				Role:     RoleActions,
				Style:    Style{Display: DisplayRow, Justify: JustifyFor(b.Alignment), Gap: buttonGap},
				Children: []*Node{primary, secondary},
			},
		},
	}
}

func gallerySection(cfg style.Config, content Content) *Node {
	base := float64(cfg.Typography.FontSize)
	g := cfg.Gallery
	gallery := &Node{
		Role:  RoleGallery,
		Style: Style{Justify: JustifyFor(g.Alignment)},
	}
	if cfg.LayoutType == style.LayoutList {
		// 列表模式的行距固定，gallery.spacing 只作用于网格
		gallery.Style.Display = DisplayList
		gallery.Style.Gap = listGap
		for _, item := range content.Gallery {
			gallery.Children = append(gallery.Children, &Node{
				Role:  RoleRow,
				Style: Style{Display: DisplayRow, Radius: float64(g.BorderRadius), Background: item.Color, Padding: 16, Gap: 16},
				Children: []*Node{
					{Role: RoleThumb, Style: Style{Width: 80, Height: 80, Radius: float64(g.BorderRadius), Background: "rgba(255,255,255,0.2)"}},
					{
						Role:  RoleStack,
						Style: Style{Gap: 4},
						Children: []*Node{
							text(RoleCardTitle, "Gallery Item "+strconv.Itoa(item.ID), base, 600, "#ffffff"),
							text(RoleParagraph, "Sample description for this item", base*0.875, 0, "#ffffff"),
						},
					},
				},
			})
		}
	} else {
		gallery.Style.Display = DisplayGrid
		gallery.Style.MinColumn = minGridColumn
		gallery.Style.Gap = float64(g.Spacing)
		for _, item := range content.Gallery {
			gallery.Children = append(gallery.Children, &Node{
				Role:  RoleTile,
				Style: Style{Square: true, Radius: float64(g.BorderRadius), Background: item.Color},
			})
		}
	}
	return &Node{
		Role:  RoleSection,
		Style: sectionStyle(cfg),
		Children: []*Node{
			text(RoleHeading, "Image Gallery", base*headingScale, 600, textColor),
			gallery,
		},
	}
}

func cardGrid(cfg style.Config, content Content) *Node {
	base := float64(cfg.Typography.FontSize)
	grid := &Node{Role: RoleCardGrid, Style: Style{Display: DisplayGrid, Columns: 3, Gap: cardGridGap}}
	for i := 1; i <= content.Cards; i++ {
		card := &Node{Role: RoleCard, Style: sectionStyle(cfg)}
		card.Children = []*Node{
			{Role: RoleSwatch, Style: Style{Height: 192, Radius: float64(cfg.Gallery.BorderRadius), Background: fmt.Sprintf("hsl(%d, 70%%, 60%%)", 220+i*40)}},
			text(RoleCardTitle, "Card Title "+strconv.Itoa(i), base*cardTitleScale, 600, textColor),
			text(RoleParagraph, "This is a sample card demonstrating the customizable design system.", base, 0, mutedColor),
			{
				Role:  RoleCounters,
				Style: Style{Display: DisplayRow, Justify: JustifyStart, Gap: 16},
				Children: []*Node{
					text(RoleCounter, "24", base*0.875, 0, mutedColor),
					text(RoleCounter, "12", base*0.875, 0, mutedColor),
					text(RoleCounter, "8", base*0.875, 0, mutedColor),
				},
			},
		}
		grid.Children = append(grid.Children, card)
	}
	return grid
}

func featureSection(cfg style.Config, content Content) *Node {
	base := float64(cfg.Typography.FontSize)
	grid := &Node{Role: RoleFeatureGrid, Style: Style{Display: DisplayGrid, Columns: 2, Gap: featureGridGap}}
	for i, name := range content.Features {
		grid.Children = append(grid.Children, &Node{
			Role:  RoleFeature,
			Style: Style{Display: DisplayRow, Justify: JustifyStart, Gap: 12},
			Children: []*Node{
				{
					Role: RoleBadge,
					Text: strconv.Itoa(i + 1),
					Style: Style{
						Width: 32, Height: 32, Circle: true,
						Background: cfg.Button.BackgroundColor, Color: "#ffffff", FontWeight: 600, FontSize: base,
					},
				},
				{
					Role:  RoleStack,
					Style: Style{Gap: 4},
					Children: []*Node{
						text(RoleCardTitle, name, base, 600, textColor),
						text(RoleParagraph, "Customize every aspect of your design with intuitive controls.", base*0.875, 0, mutedColor),
					},
				},
			},
		})
	}
	return &Node{
		Role:  RoleSection,
		Style: sectionStyle(cfg),
		Children: []*Node{
			text(RoleHeading, "Key Features", base*headingScale, 600, textColor),
			grid,
		},
	}
}

func designSection(cfg style.Config, d Design) *Node {
	base := float64(cfg.Typography.FontSize)
	frameStyle := Style{
		Radius: float64(cfg.Gallery.BorderRadius),
		Border: &Border{Width: cfg.Stroke.Weight, Color: cfg.Stroke.Color},
	}
	var body *Node
	if d.IsVector() {
		markup, err := d.Markup()
		s := frameStyle
		s.FontFamily = cfg.Typography.FontFamily
		s.FontSize = base
		body = &Node{Role: RoleMarkup, Markup: markup, Fault: err, Style: s}
	} else {
		body = &Node{Role: RoleImage, Src: d.Source, Style: frameStyle}
	}
	return &Node{
		Role:  RoleSection,
		Style: sectionStyle(cfg),
		Children: []*Node{
			text(RoleHeading, "Your Design", base*headingScale, 600, textColor),
			text(RoleParagraph, "Click and drag to select components in your design, then use the customization panel to edit them.", base*0.875, 0, mutedColor),
			{Role: RoleFrame, Style: Style{Radius: float64(cfg.Gallery.BorderRadius)}, Children: []*Node{body}},
		},
	}
}

// ElevationFor 将阴影档位映射为预设高度；未知取值视为无阴影。
func ElevationFor(s style.Shadow) Elevation {
	switch s {
	case style.ShadowSmall:
		return ElevationSmall
	case style.ShadowMedium:
		return ElevationMedium
	case style.ShadowLarge:
		return ElevationLarge
	default:
		return ElevationNone
	}
}

// JustifyFor 将对齐方式映射为对齐模式；未知取值居中。
func JustifyFor(a style.Alignment) Justify {
	switch a {
	case style.AlignLeft:
		return JustifyStart
	case style.AlignRight:
		return JustifyEnd
	default:
		return JustifyCenter
	}
}
