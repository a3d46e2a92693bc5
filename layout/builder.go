package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/ByLCY/stylepress/preview"
)

// 未显式指定时的文字默认值。
const (
	defaultFontSize   = 16.0
	defaultFontWeight = 400
	defaultTextColor  = "#111827"
	defaultAspect     = 9.0 / 16.0
	measureWidth      = 1e6
)

// Build 将预览树排布为带绝对坐标（px）的盒子列表。
func Build(tree *preview.Tree, opts BuildOptions) (*Result, error) {
	if tree == nil || tree.Root == nil {
		return nil, fmt.Errorf("layout: 预览树为空")
	}
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	b := &builder{ts: opts.Typesetter, media: opts.Media}
	p, err := b.place(tree.Root, width, inherited{
		family: "Inter",
		weight: defaultFontWeight,
		size:   defaultFontSize,
		color:  defaultTextColor,
	})
	if err != nil {
		return nil, err
	}
	return &Result{
		Width:      width,
		Height:     p.h,
		Background: tree.Config.Layout.SectionBackgroundColor,
		Boxes:      p.boxes,
	}, nil
}

// ByRole 以绘制顺序返回指定角色的盒子。
func (r *Result) ByRole(role preview.Role) []Box {
	var out []Box
	for _, b := range r.Boxes {
		if b.Role == string(role) {
			out = append(out, b)
		}
	}
	return out
}

type builder struct {
	ts    Typesetter
	media MediaMeasurer
}

// inherited 是沿树向下继承的文字属性。
type inherited struct {
	family string
	weight int
	size   float64
	color  string
}

func (in inherited) merge(s preview.Style) inherited {
	if s.FontFamily != "" {
		in.family = s.FontFamily
	}
	if s.FontWeight > 0 {
		in.weight = s.FontWeight
	}
	if s.FontSize > 0 {
		in.size = s.FontSize
	}
	if s.Color != "" {
		in.color = s.Color
	}
	return in
}

// placed 是一个节点排布后的结果，盒子坐标相对节点左上角。
type placed struct {
	boxes []Box
	w, h  float64
}

func (p *placed) add(boxes []Box, dx, dy float64) {
	for _, b := range boxes {
		b.X += dx
		b.Y += dy
		p.boxes = append(p.boxes, b)
	}
}

func borderWidth(s preview.Style) float64 {
	if s.Border == nil || s.Border.Width <= 0 {
		return 0
	}
	return float64(s.Border.Width)
}

func inset(s preview.Style) float64 {
	return math.Max(s.Padding, 0) + borderWidth(s)
}

func (b *builder) place(n *preview.Node, avail float64, inh inherited) (placed, error) {
	st := n.Style
	inh = inh.merge(st)

	w := math.Max(avail, 0)
	if st.Width > 0 {
		w = st.Width
	}
	pad := inset(st)
	innerW := math.Max(w-2*pad, 0)

	var content placed
	var err error
	switch {
	case n.Text != "":
		content, err = b.text(n, innerW, inh)
	case n.Role == preview.RoleMarkup || n.Role == preview.RoleImage:
		content = b.mediaBox(n, innerW)
	default:
		content, err = b.children(n, innerW, inh)
	}
	if err != nil {
		return placed{}, err
	}

	h := content.h + 2*pad
	if st.Height > 0 {
		h = st.Height
	}
	if st.Square {
		h = w
	}

	out := placed{w: w, h: h}
	if paintable(st) {
		rect := Box{
			Kind:   BoxRect,
			Role:   string(n.Role),
			Width:  w,
			Height: h,
			Radius: math.Max(st.Radius, 0),
			Shadow: int(st.Shadow),
			Circle: st.Circle,
		}
		if !Transparent(st.Background) {
			rect.Fill = st.Background
		}
		if bw := borderWidth(st); bw > 0 {
			rect.Stroke = &Stroke{Width: bw, Color: st.Border.Color}
		}
		out.boxes = append(out.boxes, rect)
	}
	dy := pad
	if (st.Height > 0 || st.Square) && n.Text != "" {
		dy = math.Max((h-content.h)/2, 0)
	}
	out.add(content.boxes, pad, dy)
	return out, nil
}

func paintable(s preview.Style) bool {
	return !Transparent(s.Background) || borderWidth(s) > 0 || s.Shadow > 0
}

func (b *builder) text(n *preview.Node, width float64, inh inherited) (placed, error) {
	font := FontSpec{Family: inh.family, Weight: inh.weight}
	lineHeight := inh.size * LineHeightFactor
	lines, err := b.ts.LayoutLines(n.Text, width, font, inh.size, lineHeight)
	if err != nil {
		return placed{}, fmt.Errorf("排版节点 %s 失败: %w", n.Role, err)
	}
	if len(lines) == 0 {
		lines = []TextLine{{Width: 0, Height: inh.size}}
	}
	leading := math.Max(lineHeight-inh.size, 0)
	total := 0.0
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = inh.size
		}
		if i == 0 {
			// 首行上方保留半个行距，使单行文字在行高内垂直居中
			lines[i].GapBefore = leading / 2
		} else if lines[i].GapBefore <= 0 {
			lines[i].GapBefore = leading
		}
		total += lines[i].GapBefore + lines[i].Height
	}
	total += leading / 2

	align := ""
	switch n.Role {
	case preview.RoleButton, preview.RoleBadge:
		align = "center"
	}
	box := Box{
		Kind:   BoxText,
		Role:   string(n.Role),
		Width:  width,
		Height: total,
		Text: &TextBox{
			Content:    n.Text,
			Font:       font,
			FontSize:   inh.size,
			LineHeight: lineHeight,
			Color:      inh.color,
			Align:      align,
			Lines:      lines,
		},
	}
	return placed{boxes: []Box{box}, w: width, h: total}, nil
}

func (b *builder) mediaBox(n *preview.Node, width float64) placed {
	aspect := defaultAspect
	if b.media != nil && n.Fault == nil {
		var mw, mh float64
		var err error
		if n.Role == preview.RoleMarkup {
			mw, mh, err = b.media.MeasureMarkup(n.Markup)
		} else {
			mw, mh, err = b.media.MeasureImage(n.Src)
		}
		if err == nil && mw > 0 && mh > 0 {
			aspect = mh / mw
		}
	}
	h := width * aspect
	kind := BoxImage
	if n.Role == preview.RoleMarkup {
		kind = BoxMarkup
	}
	box := Box{
		Kind:   kind,
		Role:   string(n.Role),
		Width:  width,
		Height: h,
		Radius: math.Max(n.Style.Radius, 0),
		Src:    n.Src,
		Markup: n.Markup,
		Fault:  n.Fault,
	}
	return placed{boxes: []Box{box}, w: width, h: h}
}

func (b *builder) children(n *preview.Node, width float64, inh inherited) (placed, error) {
	switch n.Style.Display {
	case preview.DisplayRow:
		return b.row(n, width, inh)
	case preview.DisplayGrid:
		return b.grid(n, width, inh)
	default:
		return b.stack(n, width, inh)
	}
}

// stack 纵向依次排列子节点，块级与列表模式共用。
func (b *builder) stack(n *preview.Node, width float64, inh inherited) (placed, error) {
	gap := math.Max(n.Style.Gap, 0)
	out := placed{w: width}
	y := 0.0
	for i, c := range n.Children {
		if i > 0 {
			y += gap
		}
		p, err := b.place(c, width, inh)
		if err != nil {
			return placed{}, err
		}
		out.add(p.boxes, justifyOffset(width, p.w, n.Style.Justify), y)
		y += p.h
	}
	out.h = y
	return out, nil
}

// row 横向排列子节点并在交叉轴居中。
// 有固定宽度或文字内容的子节点取固有宽度，其余子节点平分剩余空间。
func (b *builder) row(n *preview.Node, width float64, inh inherited) (placed, error) {
	gap := math.Max(n.Style.Gap, 0)
	widths := make([]float64, len(n.Children))
	fixed, flex := 0.0, 0
	for i, c := range n.Children {
		w, err := b.intrinsicWidth(c, inh)
		if err != nil {
			return placed{}, err
		}
		widths[i] = w
		if w > 0 {
			fixed += w
		} else {
			flex++
		}
	}
	gaps := gap * float64(max(len(n.Children)-1, 0))
	remaining := math.Max(width-fixed-gaps, 0)
	if flex > 0 {
		share := remaining / float64(flex)
		for i := range widths {
			if widths[i] <= 0 {
				widths[i] = share
			}
		}
	}

	items := make([]placed, len(n.Children))
	rowH := 0.0
	used := gaps
	for i, c := range n.Children {
		p, err := b.place(c, widths[i], inh)
		if err != nil {
			return placed{}, err
		}
		items[i] = p
		rowH = math.Max(rowH, p.h)
		used += p.w
	}

	out := placed{w: width, h: rowH}
	x := justifyOffset(width, used, n.Style.Justify)
	for i, p := range items {
		if i > 0 {
			x += gap
		}
		out.add(p.boxes, x, (rowH-p.h)/2)
		x += p.w
	}
	return out, nil
}

// grid 按固定列数或自动填充列数排布子节点，每个子节点占满单元格宽度。
func (b *builder) grid(n *preview.Node, width float64, inh inherited) (placed, error) {
	gap := math.Max(n.Style.Gap, 0)
	cols := n.Style.Columns
	if cols <= 0 {
		cols = GridColumns(width, n.Style.MinColumn, gap)
	}
	colW := math.Max((width-gap*float64(cols-1))/float64(cols), 0)

	out := placed{w: width}
	y := 0.0
	for start := 0; start < len(n.Children); start += cols {
		if start > 0 {
			y += gap
		}
		end := min(start+cols, len(n.Children))
		rowH := 0.0
		for i := start; i < end; i++ {
			p, err := b.place(n.Children[i], colW, inh)
			if err != nil {
				return placed{}, err
			}
			out.add(p.boxes, float64(i-start)*(colW+gap), y)
			rowH = math.Max(rowH, p.h)
		}
		y += rowH
	}
	out.h = y
	return out, nil
}

// intrinsicWidth 返回节点在横向排列中的固有宽度；0 表示可伸缩。
func (b *builder) intrinsicWidth(n *preview.Node, inh inherited) (float64, error) {
	if n.Style.Width > 0 {
		return n.Style.Width, nil
	}
	if n.Text == "" {
		return 0, nil
	}
	inh = inh.merge(n.Style)
	lines, err := b.ts.LayoutLines(n.Text, measureWidth, FontSpec{Family: inh.family, Weight: inh.weight}, inh.size, inh.size*LineHeightFactor)
	if err != nil {
		return 0, fmt.Errorf("测量节点 %s 失败: %w", n.Role, err)
	}
	w := 0.0
	for _, l := range lines {
		w = math.Max(w, l.Width)
	}
	return math.Ceil(w) + 2*inset(n.Style), nil
}

func justifyOffset(container, width float64, j preview.Justify) float64 {
	if container <= width {
		return 0
	}
	switch preview.Justify(strings.ToLower(string(j))) {
	case preview.JustifyCenter:
		return (container - width) / 2
	case preview.JustifyEnd:
		return container - width
	default:
		return 0
	}
}
