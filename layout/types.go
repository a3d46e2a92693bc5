package layout

// 该文件定义布局结果，供光栅/PDF 渲染与调试 JSON 共用。所有长度单位均为 px。

// Result 保存一次布局的画布尺寸与按绘制顺序排列的盒子。
type Result struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background string  `json:"background"` // 导出时的画布底色
	Boxes      []Box   `json:"boxes"`
}

// BoxKind 区分盒子的绘制方式。
type BoxKind string

const (
	BoxRect   BoxKind = "rect"
	BoxText   BoxKind = "text"
	BoxImage  BoxKind = "image"
	BoxMarkup BoxKind = "markup"
)

// Box 是一个已经确定位置的绘制单元。
type Box struct {
	Kind   BoxKind `json:"kind"`
	Role   string  `json:"role"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Fill   string  `json:"fill,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	Stroke *Stroke `json:"stroke,omitempty"`
	Shadow int     `json:"shadow,omitempty"` // 0-3，对应 none/small/medium/large
	Circle bool    `json:"circle,omitempty"`

	Text *TextBox `json:"text,omitempty"`

	Src    string `json:"src,omitempty"`
	Markup string `json:"markup,omitempty"`
	Fault  error  `json:"-"`
}

// Stroke 描述盒子的描边。
type Stroke struct {
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

// FontSpec 指定字体族与字重。
type FontSpec struct {
	Family string `json:"family"`
	Weight int    `json:"weight"`
}

// TextBox 表示一个已经排好行的文本块。
type TextBox struct {
	Content    string     `json:"content"`
	Font       FontSpec   `json:"font"`
	FontSize   float64    `json:"fontSize"`
	LineHeight float64    `json:"lineHeight"`
	Color      string     `json:"color"`
	Align      string     `json:"align,omitempty"` // left/center/right，默认 left
	Lines      []TextLine `json:"lines"`
}

// TextLine 表示排版后的一行文本内容及其宽高。
type TextLine struct {
	Content   string  `json:"content"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	GapBefore float64 `json:"gapBefore,omitempty"`
}

// Color 采用 0-255 的 RGB 数值与 0-1 的不透明度。
type Color struct {
	R int     `json:"r"`
	G int     `json:"g"`
	B int     `json:"b"`
	A float64 `json:"a"`
}
