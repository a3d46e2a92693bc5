package style

// 该文件定义样式配置的数据结构，供编辑面板、预览投影与导入导出共用。

// Section 是配置中的分组名称，与 JSON 顶层键一致。
type Section string

const (
	SectionTypography Section = "typography"
	SectionButton     Section = "button"
	SectionGallery    Section = "gallery"
	SectionLayout     Section = "layout"
	SectionStroke     Section = "stroke"
)

// Sections 按面板展示顺序返回全部分组。
func Sections() []Section {
	return []Section{SectionTypography, SectionButton, SectionGallery, SectionLayout, SectionStroke}
}

// Shadow 是按钮阴影的预设档位。
type Shadow string

const (
	ShadowNone   Shadow = "none"
	ShadowSmall  Shadow = "small"
	ShadowMedium Shadow = "medium"
	ShadowLarge  Shadow = "large"
)

// Alignment 是水平对齐方式。
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// LayoutType 决定图库以网格还是列表方式排列。
type LayoutType string

const (
	LayoutGrid LayoutType = "grid"
	LayoutList LayoutType = "list"
)

// Typography 描述正文字体。
type Typography struct {
	FontFamily string `json:"fontFamily"`
	FontWeight int    `json:"fontWeight"` // 300/400/500/600/700
	FontSize   int    `json:"fontSize"`   // px，10-60
}

// Button 描述操作按钮的外观。
type Button struct {
	BorderRadius    int       `json:"borderRadius"` // px，0-50
	Shadow          Shadow    `json:"shadow"`
	Alignment       Alignment `json:"alignment"`
	BackgroundColor string    `json:"backgroundColor"`
	TextColor       string    `json:"textColor"`
}

// Gallery 描述图库条目的排布。
type Gallery struct {
	Alignment    Alignment `json:"alignment"`
	Spacing      int       `json:"spacing"`      // px，0-48，步长 4
	BorderRadius int       `json:"borderRadius"` // px，0-32
}

// Layout 描述区块容器。
type Layout struct {
	CardBorderRadius       int    `json:"cardBorderRadius"` // px，0-32
	ContainerPadding       int    `json:"containerPadding"` // px，0-64，步长 4
	SectionBackgroundColor string `json:"sectionBackgroundColor"`
}

// Stroke 描述区块描边。
type Stroke struct {
	Color  string `json:"color"`
	Weight int    `json:"weight"` // px，0-8
}

// Config 是完整的样式配置。各分组均以值保存，复制 Config 不会与原值共享任何可变状态。
type Config struct {
	Typography Typography `json:"typography"`
	Button     Button     `json:"button"`
	Gallery    Gallery    `json:"gallery"`
	Layout     Layout     `json:"layout"`
	Stroke     Stroke     `json:"stroke"`
	LayoutType LayoutType `json:"layoutType"`
}

// FontFamilies 是面板提供的字体选项。
var FontFamilies = []string{"Inter", "Roboto", "Poppins", "Open Sans", "Montserrat"}

// FontWeights 是面板提供的字重选项。
var FontWeights = []int{300, 400, 500, 600, 700}

// Default 返回会话开始时的默认配置。
func Default() Config {
	return Config{
		Typography: Typography{
			FontFamily: "Inter",
			FontWeight: 400,
			FontSize:   16,
		},
		Button: Button{
			BorderRadius:    8,
			Shadow:          ShadowMedium,
			Alignment:       AlignCenter,
			BackgroundColor: "#8b5cf6",
			TextColor:       "#ffffff",
		},
		Gallery: Gallery{
			Alignment:    AlignCenter,
			Spacing:      16,
			BorderRadius: 8,
		},
		Layout: Layout{
			CardBorderRadius:       12,
			ContainerPadding:       24,
			SectionBackgroundColor: "#ffffff",
		},
		Stroke: Stroke{
			Color:  "#e5e7eb",
			Weight: 1,
		},
		LayoutType: LayoutGrid,
	}
}
