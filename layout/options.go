package layout

// DefaultWidth 是预览画布的默认宽度（px）。
const DefaultWidth = 1152

// BuildOptions 配置布局阶段所需的依赖，例如排版后端。
type BuildOptions struct {
	Typesetter Typesetter
	Media      MediaMeasurer // 可选；为空时导入稿按 16:9 估算高度
	Width      float64       // 画布宽度，<=0 时使用 DefaultWidth
}

// Typesetter 负责根据字体与宽度约束将文本拆成可绘制的行。长度单位为 px。
type Typesetter interface {
	LayoutLines(content string, width float64, font FontSpec, fontSize float64, lineHeight float64) ([]TextLine, error)
}

// MediaMeasurer 提供导入图片或矢量稿的固有尺寸，用于按比例计算高度。
type MediaMeasurer interface {
	MeasureImage(src string) (width, height float64, err error)
	MeasureMarkup(markup string) (width, height float64, err error)
}
