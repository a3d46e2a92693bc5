package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/stylepress/fonts"
	"github.com/ByLCY/stylepress/layout"
	"github.com/ByLCY/stylepress/renderer"
)

// DefaultScale 是光栅导出相对 CSS 像素的倍率。
const DefaultScale = 2.0

const jpegQuality = 95

// Renderer draws layout results via github.com/tdewolff/canvas.
type Renderer struct {
	scale float64

	// 按字体族注入的字体文件，未注入的字体族使用内置字体
	fontBlobs map[string][]byte

	fontMu       sync.Mutex
	fontFamilies map[string]*fontFamilyEntry
}

var (
	_ renderer.Renderer    = (*Renderer)(nil)
	_ layout.Typesetter    = (*Renderer)(nil)
	_ layout.MediaMeasurer = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options configures the canvas renderer.
type Options struct {
	Scale float64             // 光栅倍率，<=0 时使用 DefaultScale
	Fonts map[string]Resource // 字体族名 -> 字体文件
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer with built-in fonts only.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected fonts.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		scale:        opts.Scale,
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*fontFamilyEntry{},
	}
	if r.scale <= 0 {
		r.scale = DefaultScale
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[strings.ToLower(name)] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // 读取失败时回退到内置字体
			if len(data) > 0 {
				r.fontBlobs[strings.ToLower(name)] = data
			}
		}
	}
	return r
}

// Render 将布局结果编码为 PNG/JPEG（按倍率光栅化）或 PDF。
// 导入稿解码失败或图片无法读取时返回错误，不输出部分结果。
func (r *Renderer) Render(result *layout.Result, format renderer.Format) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if result.Width <= 0 || result.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %gx%g", result.Width, result.Height)
	}
	for _, b := range result.Boxes {
		if b.Fault != nil {
			return nil, fmt.Errorf("导入稿无法渲染: %w", b.Fault)
		}
	}

	c := canvas.New(toMm(result.Width), toMm(result.Height))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	// 先铺白底，半透明背景色叠在白底上，JPEG 也就不会出现透明像素
	page := canvas.Rectangle(toMm(result.Width), toMm(result.Height))
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, 0, page)
	if col, ok := parseColor(result.Background); ok {
		ctx.SetFillColor(col)
		ctx.DrawPath(0, 0, page)
	}

	for _, b := range result.Boxes {
		if err := r.drawBox(ctx, b); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	resolution := canvas.DPI(96 * r.scale)
	switch format {
	case renderer.FormatPNG:
		if err := c.Write(&buf, renderers.PNG(resolution)); err != nil {
			return nil, fmt.Errorf("编码 PNG 失败: %w", err)
		}
	case renderer.FormatJPEG:
		if err := c.Write(&buf, renderers.JPEG(resolution, &jpeg.Options{Quality: jpegQuality})); err != nil {
			return nil, fmt.Errorf("编码 JPEG 失败: %w", err)
		}
	case renderer.FormatPDF:
		writer := pdf.New(&buf, toMm(result.Width), toMm(result.Height), nil)
		writer.SetInfo("Design Export", "", "", "", "stylepress")
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的导出格式 %q", format)
	}
	return buf.Bytes(), nil
}

// LayoutLines 实现 layout.Typesetter 接口，使用贪心换行算法。
// 约定：width/fontSize/lineHeight 入参均为 px。渲染器内部与字体系统交互使用 pt/mm，并在边界做换算。
func (r *Renderer) LayoutLines(content string, width float64, font layout.FontSpec, fontSize, lineHeight float64) ([]layout.TextLine, error) {
	face, err := r.fontFace(font, fontSize, canvas.Black)
	if err != nil {
		return nil, err
	}
	limit := 0.0
	if width > 0 {
		// 微小余量，避免 px↔mm 往返的舍入误差导致等宽文本被折行
		limit = toMm(width) + 1e-9
	}
	lines := wrapText(content, limit, face)
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: ""}}
	}
	leading := math.Max(lineHeight-fontSize, 0)
	for i := range lines {
		lines[i].Width = toPx(lines[i].Width)
		lines[i].Height = fontSize
		if i > 0 {
			lines[i].GapBefore = leading
		}
	}
	return lines, nil
}

func (r *Renderer) drawBox(ctx *canvas.Context, b layout.Box) error {
	switch b.Kind {
	case layout.BoxRect:
		r.drawRect(ctx, b)
	case layout.BoxText:
		return r.drawTextBox(ctx, b)
	case layout.BoxImage:
		img, err := decodeImage(b.Src)
		if err != nil {
			return err
		}
		drawImage(ctx, b, img)
	case layout.BoxMarkup:
		img, err := rasterizeMarkup(b.Markup, int(math.Ceil(b.Width*r.scale)), int(math.Ceil(b.Height*r.scale)))
		if err != nil {
			return err
		}
		drawImage(ctx, b, img)
	}
	return nil
}

// shadowLayers 近似 small/medium/large 三档投影：纵向偏移、扩散半径与不透明度。
var shadowLayers = [][]struct{ dy, spread, alpha float64 }{
	nil,
	{{1, 1, 0.05}},
	{{4, 3, 0.08}, {2, 1, 0.06}},
	{{10, 8, 0.08}, {4, 3, 0.05}},
}

func (r *Renderer) drawRect(ctx *canvas.Context, b layout.Box) {
	radius := b.Radius
	if b.Circle {
		radius = math.Min(b.Width, b.Height) / 2
	}
	radius = math.Min(math.Max(radius, 0), math.Min(b.Width, b.Height)/2)

	if b.Shadow > 0 && b.Shadow < len(shadowLayers) {
		for _, layer := range shadowLayers[b.Shadow] {
			// 以多层渐隐的外扩矩形模拟模糊
			for step := 3; step >= 1; step-- {
				grow := layer.spread * float64(step) / 3
				ctx.SetFillColor(canvas.RGBA(0, 0, 0, layer.alpha/2))
				ctx.SetStrokeColor(canvas.Transparent)
				ctx.DrawPath(toMm(b.X-grow), toMm(b.Y+layer.dy-grow),
					canvas.RoundedRectangle(toMm(b.Width+2*grow), toMm(b.Height+2*grow), toMm(radius+grow)))
			}
		}
	}

	if col, ok := parseColor(b.Fill); ok {
		ctx.SetFillColor(col)
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.DrawPath(toMm(b.X), toMm(b.Y), canvas.RoundedRectangle(toMm(b.Width), toMm(b.Height), toMm(radius)))
	}
	if b.Stroke != nil && b.Stroke.Width > 0 {
		col, ok := parseColor(b.Stroke.Color)
		if !ok {
			return
		}
		// 描边画在盒子内侧，与 CSS border 一致
		half := b.Stroke.Width / 2
		ctx.SetFillColor(canvas.Transparent)
		ctx.SetStrokeColor(col)
		ctx.SetStrokeWidth(toMm(b.Stroke.Width))
		ctx.DrawPath(toMm(b.X+half), toMm(b.Y+half),
			canvas.RoundedRectangle(toMm(b.Width-b.Stroke.Width), toMm(b.Height-b.Stroke.Width), toMm(math.Max(radius-half, 0))))
		ctx.SetStrokeWidth(0)
	}
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, b layout.Box) error {
	tb := b.Text
	if tb == nil {
		return nil
	}
	col, ok := parseColor(tb.Color)
	if !ok {
		col = canvas.Black
	}
	face, err := r.fontFace(tb.Font, tb.FontSize, col)
	if err != nil {
		return err
	}

	lines := tb.Lines
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: tb.Content, Width: b.Width, Height: tb.FontSize}}
	}

	// 处理水平对齐：left（默认）/center/right。
	var textAlign canvas.TextAlign
	var anchorX float64
	switch strings.ToLower(tb.Align) {
	case "center":
		textAlign = canvas.Center
		anchorX = b.X + b.Width/2
	case "right", "end":
		textAlign = canvas.Right
		anchorX = b.X + b.Width
	default:
		textAlign = canvas.Left
		anchorX = b.X
	}

	metrics := face.Metrics()
	glyph := metrics.Ascent + metrics.Descent // mm
	cursorY := toMm(b.Y)
	for _, line := range lines {
		cursorY += toMm(line.GapBefore)
		height := toMm(line.Height)
		// 字形在行框内垂直居中
		baseline := cursorY + (height-glyph)/2 + metrics.Ascent
		ctx.DrawText(toMm(anchorX), baseline, canvas.NewTextLine(face, line.Content, textAlign))
		cursorY += height
	}
	return nil
}

func drawImage(ctx *canvas.Context, b layout.Box, img image.Image) {
	dx := img.Bounds().Dx()
	if dx <= 0 || b.Width <= 0 {
		return
	}
	dpmm := float64(dx) / toMm(b.Width)
	ctx.DrawImage(toMm(b.X), toMm(b.Y), img, canvas.DPMM(dpmm))
}

// fontFace 按字体族与字重创建字体面，size 为 px。
func (r *Renderer) fontFace(font layout.FontSpec, size float64, col color.Color) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(size*layout.PxToPt, col, style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(font layout.FontSpec) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fontCacheKey(font)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	family := canvas.NewFontFamily(key)
	style := canvas.FontRegular
	if data, ok := r.fontBlobs[strings.ToLower(font.Family)]; ok {
		// 注入的单个字体文件按字重请求合成粗体
		style = weightStyle(font.Weight)
		if err := family.LoadFont(data, 0, style); err == nil {
			r.fontFamilies[key] = &fontFamilyEntry{family: family, style: style}
			return family, style, nil
		}
		family = canvas.NewFontFamily(key)
		style = canvas.FontRegular
	}
	if err := family.LoadFont(fonts.Load(font.Weight), 0, style); err != nil {
		return nil, canvas.FontRegular, fmt.Errorf("加载内置字体 %s 失败: %w", fonts.Name(font.Weight), err)
	}
	r.fontFamilies[key] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

func weightStyle(weight int) canvas.FontStyle {
	switch {
	case weight >= 700:
		return canvas.FontBold
	case weight >= 600:
		return canvas.FontSemiBold
	case weight >= 500:
		return canvas.FontMedium
	case weight > 0 && weight <= 300:
		return canvas.FontLight
	default:
		return canvas.FontRegular
	}
}

func fontCacheKey(font layout.FontSpec) string {
	return fmt.Sprintf("%s|%d", strings.ToLower(font.Family), font.Weight)
}

// parseColor 将 CSS 颜色转换为 canvas 颜色；无法解析或完全透明时返回 false，对应 CSS 忽略该属性。
func parseColor(value string) (color.Color, bool) {
	c, err := layout.ParseColor(value)
	if err != nil || c.A == 0 {
		return nil, false
	}
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, c.A), true
}

// toMm 将 CSS 像素转换为毫米(mm)。
func toMm(px float64) float64 { return px * layout.PxToMm }

// toPx 将毫米(mm)转换为 CSS 像素。
func toPx(mm float64) float64 { return mm / layout.PxToMm }

// lineWrapper 以贪心方式逐词填充行：优先在空白处断开，单词超过整行宽度时按字符拆分。
// limit 与行宽单位为 mm。
type lineWrapper struct {
	face  *canvas.FontFace
	limit float64
	lines []layout.TextLine
	cur   strings.Builder
	width float64
}

// wrapText 对 content 换行；limit<=0 表示不限宽。
func wrapText(content string, limit float64, face *canvas.FontFace) []layout.TextLine {
	w := &lineWrapper{face: face, limit: limit}
	if limit <= 0 {
		w.limit = math.Inf(1)
	}
	for _, seg := range segments(content) {
		switch {
		case seg == "\n":
			w.breakLine(true)
		case isBlank(seg):
			w.addSpace(seg)
		default:
			w.addWord(seg)
		}
	}
	if w.cur.Len() > 0 || len(w.lines) == 0 || strings.HasSuffix(content, "\n") {
		w.breakLine(true)
	}
	return w.lines
}

func (w *lineWrapper) fits(width float64) bool {
	return w.width == 0 || w.width+width <= w.limit
}

// breakLine 结束当前行；keepEmpty 为 true 时空行也会保留（显式换行）。
func (w *lineWrapper) breakLine(keepEmpty bool) {
	if w.cur.Len() == 0 {
		if keepEmpty {
			w.lines = append(w.lines, layout.TextLine{})
		}
		return
	}
	text := strings.TrimRightFunc(w.cur.String(), unicode.IsSpace)
	w.lines = append(w.lines, layout.TextLine{Content: text, Width: w.face.TextWidth(text)})
	w.cur.Reset()
	w.width = 0
}

func (w *lineWrapper) put(s string, width float64) {
	w.cur.WriteString(s)
	w.width += width
}

// addSpace 丢弃行首空白；放不下的空白直接换行并吞掉。
func (w *lineWrapper) addSpace(s string) {
	if w.cur.Len() == 0 {
		return
	}
	width := w.face.TextWidth(s)
	if !w.fits(width) {
		w.breakLine(false)
		return
	}
	w.put(s, width)
}

func (w *lineWrapper) addWord(s string) {
	width := w.face.TextWidth(s)
	if width <= w.limit {
		if !w.fits(width) {
			w.breakLine(false)
		}
		w.put(s, width)
		return
	}
	for _, piece := range w.splitWord(s) {
		pw := w.face.TextWidth(piece)
		if !w.fits(pw) {
			w.breakLine(false)
		}
		w.put(piece, pw)
	}
}

// splitWord 把超宽单词切成每段都不超过 limit 的片段，每段至少一个字符。
func (w *lineWrapper) splitWord(s string) []string {
	var pieces []string
	runes := []rune(s)
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i-start > 1 && w.face.TextWidth(string(runes[start:i])) > w.limit {
			pieces = append(pieces, string(runes[start:i-1]))
			start = i - 1
		}
	}
	return append(pieces, string(runes[start:]))
}

// segments 把文本切成交替的单词与空白段，换行单独成段，忽略 \r。
func segments(s string) []string {
	var out []string
	var seg []rune
	flush := func() {
		if len(seg) > 0 {
			out = append(out, string(seg))
			seg = seg[:0]
		}
	}
	for _, r := range s {
		switch {
		case r == '\r':
			continue
		case r == '\n':
			flush()
			out = append(out, "\n")
			continue
		case len(seg) > 0 && unicode.IsSpace(seg[len(seg)-1]) != unicode.IsSpace(r):
			flush()
		}
		seg = append(seg, r)
	}
	flush()
	return out
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
