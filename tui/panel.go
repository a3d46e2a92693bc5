package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"

	"github.com/ByLCY/stylepress/preview"
	"github.com/ByLCY/stylepress/region"
	"github.com/ByLCY/stylepress/style"
)

// 终端单元格换算为预览坐标（px）的比例。
const (
	cellWidth  = 8
	cellHeight = 16
	headerRows = 3

	// 窄于该宽度时预览表格排在控件下方
	narrowWidth = 100
)

// Tab 是面板中的一个分组页。
type Tab struct {
	Name     string
	Sections []style.Section
}

// Fields 按展示顺序返回分组页内的全部字段。
func (t Tab) Fields() []style.Field {
	var out []style.Field
	for _, s := range t.Sections {
		out = append(out, style.SectionFields(s)...)
	}
	return out
}

// Tabs 是面板的分组页。
var Tabs = []Tab{
	{Name: "Typography", Sections: []style.Section{style.SectionTypography}},
	{Name: "Components", Sections: []style.Section{style.SectionButton, style.SectionGallery}},
	{Name: "Layout", Sections: []style.Section{style.SectionLayout, style.SectionStroke}},
}

// ConfigExporter 负责面板上的"导出 JSON"操作。
type ConfigExporter interface {
	PanelConfig(cfg style.Config) (string, error)
}

// Options 是面板的可选依赖。
type Options struct {
	Content   preview.Content
	Exporter  ConfigExporter
	Overrides *region.Overrides // 为空时不支持框选覆盖
	Notice    string            // 启动时显示在状态栏的提示
}

// ConfigChangedMsg 通知面板配置在外部被修改。
type ConfigChangedMsg struct{}

// NoticeMsg 在状态栏显示一条来自面板外部的提示。
type NoticeMsg string

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

// =============================================================================
// Model
// =============================================================================

// Model 是编辑面板的 bubbletea 模型。
type Model struct {
	Tab    int
	Cursor int

	store    *style.Store
	opts     Options
	selector *region.Selector

	editing bool
	input   string

	status     string
	statusKind statusKind

	active    uuid.UUID
	hasActive bool
	pressAt   region.Point

	// 派生预览的缓存键
	rev      uint64
	localRev int
	seenRev  int
	tree     *preview.Tree

	width int
}

// New 创建绑定到 store 的面板。
func New(store *style.Store, opts Options) Model {
	m := Model{
		store:    store,
		opts:     opts,
		selector: region.NewSelector(region.Point{Y: headerRows * cellHeight}),
		status:   opts.Notice,
	}
	if opts.Notice != "" {
		m.statusKind = statusWarning
	}
	return m.refresh()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			m = m.updateInput(msg)
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.Tab = (m.Tab + 1) % len(Tabs)
			m.Cursor = 0
		case "shift+tab":
			m.Tab = (m.Tab + len(Tabs) - 1) % len(Tabs)
			m.Cursor = 0
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.fields())-1 {
				m.Cursor++
			}
		case "left":
			m = m.nudge(-1)
		case "right":
			m = m.nudge(1)
		case "enter":
			m.editing = true
			m.input = fmt.Sprint(m.field().Get(m.current()))
		case "g":
			m.store.SetLayoutType(style.LayoutGrid)
			m = m.setStatus(statusInfo, "图库切换为网格")
		case "l":
			m.store.SetLayoutType(style.LayoutList)
			m = m.setStatus(statusInfo, "图库切换为列表")
		case "e":
			m = m.export()
		case "v":
			m = m.validate()
		case "x":
			m = m.dropRegion()
		case "esc":
			if m.hasActive {
				m.hasActive = false
				m.localRev++
				m = m.setStatus(statusInfo, "已退出选区，修改作用于全局配置")
			}
		}
	case tea.MouseMsg:
		m = m.updateMouse(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case ConfigChangedMsg:
	case NoticeMsg:
		m = m.setStatus(statusWarning, "%s", string(msg))
	}
	return m.refresh(), nil
}

// Config 返回面板当前编辑的有效配置：有激活选区时叠加选区覆盖。
func (m Model) Config() style.Config {
	return m.current()
}

// Tree 返回当前预览树。
func (m Model) Tree() *preview.Tree {
	return m.tree
}

// ActiveRegion 返回当前激活的选区。
func (m Model) ActiveRegion() (uuid.UUID, bool) {
	return m.active, m.hasActive
}

// Status 返回状态栏文字。
func (m Model) Status() string {
	return m.status
}

// Editing 报告是否处于文本输入状态。
func (m Model) Editing() bool {
	return m.editing
}

func (m Model) fields() []style.Field {
	return Tabs[m.Tab].Fields()
}

func (m Model) field() style.Field {
	fs := m.fields()
	return fs[min(m.Cursor, len(fs)-1)]
}

func (m Model) current() style.Config {
	base := m.store.Current()
	if m.hasActive && m.opts.Overrides != nil {
		return m.opts.Overrides.Resolve(base, m.active)
	}
	return base
}

func (m Model) setStatus(kind statusKind, format string, args ...any) Model {
	m.status = fmt.Sprintf(format, args...)
	m.statusKind = kind
	return m
}

// refresh 在配置版本变化后重新投影预览。
func (m Model) refresh() Model {
	rev := m.store.Revision()
	if m.tree != nil && rev == m.rev && m.localRev == m.seenRev {
		return m
	}
	m.tree = preview.Project(m.current(), m.opts.Content)
	m.rev = rev
	m.seenRev = m.localRev
	return m
}

// apply 写入字段：有激活选区时写入选区覆盖，否则写入 store。
func (m Model) apply(f style.Field, value any) Model {
	if m.hasActive && m.opts.Overrides != nil {
		if err := m.opts.Overrides.Set(m.active, f.Section, f.Key, value); err != nil {
			return m.setStatus(statusError, "%v", err)
		}
		m.localRev++
	} else {
		m.store.Update(f.Section, f.Key, value)
	}
	if !f.InRange(value) {
		return m.setStatus(statusWarning, "%s=%v 超出允许范围，已按原样保存", f.Path(), value)
	}
	return m.setStatus(statusInfo, "%s = %v", f.Path(), value)
}

func (m Model) nudge(dir int) Model {
	f := m.field()
	if f.Kind == style.KindColor {
		return m.setStatus(statusInfo, "颜色字段请按 ⏎ 输入")
	}
	return m.apply(f, f.Nudge(f.Get(m.current()), dir))
}

func (m Model) updateInput(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		f := m.field()
		v, err := f.ParseValue(m.input)
		if err != nil {
			return m.setStatus(statusError, "%v", err)
		}
		return m.apply(f, v)
	case tea.KeyEsc, tea.KeyCtrlC:
		m.editing = false
		return m.setStatus(statusInfo, "已取消输入")
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m
}

func (m Model) export() Model {
	if m.opts.Exporter == nil {
		return m.setStatus(statusError, "未配置导出目录")
	}
	path, err := m.opts.Exporter.PanelConfig(m.store.Current())
	if err != nil {
		return m.setStatus(statusError, "导出失败: %v", err)
	}
	return m.setStatus(statusSuccess, "已导出 %s", path)
}

func (m Model) validate() Model {
	violations := style.Validate(m.current())
	if len(violations) == 0 {
		return m.setStatus(statusSuccess, "所有字段都在允许范围内")
	}
	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = v.String()
	}
	return m.setStatus(statusWarning, "%s", strings.Join(parts, "; "))
}

func (m Model) dropRegion() Model {
	if !m.hasActive || m.opts.Overrides == nil {
		return m
	}
	m.opts.Overrides.Remove(m.active)
	m.hasActive = false
	m.localRev++
	return m.setStatus(statusInfo, "已删除选区")
}

// updateMouse 将预览区域内的拖拽交给框选状态机；单击已有选区则激活它。
func (m Model) updateMouse(msg tea.MouseMsg) Model {
	if m.opts.Overrides == nil {
		return m
	}
	p := region.Point{X: float64(msg.X * cellWidth), Y: float64(msg.Y * cellHeight)}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.selector.PointerDown(p)
			m.pressAt = region.Point{X: p.X, Y: p.Y - headerRows*cellHeight}
		}
	case tea.MouseActionMotion:
		m.selector.PointerMove(p)
	case tea.MouseActionRelease:
		if m.selector.State() != region.Drawing {
			return m
		}
		m.selector.PointerUp()
		r, ok := m.selector.Region()
		if !ok || r.Width == 0 || r.Height == 0 {
			if id, ok := m.opts.Overrides.At(m.pressAt); ok {
				m.active, m.hasActive = id, true
				m.localRev++
				return m.setStatus(statusInfo, "已激活选区 %s", shortID(id))
			}
			return m
		}
		m.active = m.opts.Overrides.Add(r)
		m.hasActive = true
		m.localRev++
		return m.setStatus(statusSuccess, "新建选区 %s (%.0f,%.0f %.0f×%.0f)", shortID(m.active), r.X, r.Y, r.Width, r.Height)
	}
	return m
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// =============================================================================
// View
// =============================================================================

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("stylepress"))
	b.WriteString("  ")
	for i, t := range Tabs {
		if i == m.Tab {
			b.WriteString(styleTabActive.Render(t.Name))
		} else {
			b.WriteString(styleTab.Render(t.Name))
		}
	}
	b.WriteString("\n\n")

	if m.width > 0 && m.width < narrowWidth {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, m.controlsView(), m.previewView()))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.controlsView(), " ", m.previewView()))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.statusStyle().Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(styleDim.Render("tab 分组  ↑/↓ 选择  ←/→ 调整  ⏎ 输入  g/l 网格/列表  e 导出  v 检查  x 删除选区  q 退出"))
	return b.String()
}

func (m Model) statusStyle() lipgloss.Style {
	switch m.statusKind {
	case statusSuccess:
		return styleSuccess
	case statusWarning:
		return styleWarning
	case statusError:
		return styleError
	default:
		return styleValue
	}
}

func (m Model) controlsView() string {
	cfg := m.current()
	var b strings.Builder
	if m.hasActive {
		b.WriteString(styleWarning.Render("选区 " + shortID(m.active)))
		b.WriteString("\n")
	}
	for i, f := range m.fields() {
		cursor := "  "
		label := styleLabel.Render(f.Label)
		if i == m.Cursor {
			cursor = styleSelected.Render("▸ ")
			label = styleLabelSelected.Render(f.Label)
		}
		value := formatValue(f, f.Get(cfg))
		switch {
		case i == m.Cursor && m.editing:
			value = styleSelected.Render(m.input + "▌")
		case !f.InRange(f.Get(cfg)):
			value = styleWarning.Render(value + " !")
		default:
			value = styleValue.Render(value)
		}
		b.WriteString(cursor + label + " " + value + "\n")
	}
	b.WriteString("\n")
	b.WriteString(styleDim.Render("layoutType: " + string(cfg.LayoutType)))
	return stylePane.Render(b.String())
}

func formatValue(f style.Field, v any) string {
	switch f.Kind {
	case style.KindInt:
		return fmt.Sprintf("%vpx", v)
	default:
		return fmt.Sprint(v)
	}
}

func (m Model) previewView() string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Preview", "").
		Rows(previewRows(m.tree)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}

// previewRows 把预览树中的关键属性整理成表格行。
func previewRows(tree *preview.Tree) [][]string {
	if tree == nil || tree.Root == nil {
		return nil
	}
	root := tree.Root.Style
	rows := [][]string{
		{"font", fmt.Sprintf("%s %d %gpx", root.FontFamily, root.FontWeight, root.FontSize)},
	}
	if sec := first(tree, preview.RoleSection); sec != nil {
		s := sec.Style
		rows = append(rows,
			[]string{"section", fmt.Sprintf("padding %gpx radius %gpx", s.Padding, s.Radius)},
			[]string{"background", s.Background},
		)
		if s.Border != nil {
			rows = append(rows, []string{"border", s.Border.String()})
		}
	}

	if frame := first(tree, preview.RoleFrame); frame != nil {
		kind := "bitmap"
		if first(tree, preview.RoleMarkup) != nil {
			kind = "vector"
		}
		rows = append(rows, []string{"design", kind})
		if err := tree.Fault(); err != nil {
			rows = append(rows, []string{"fault", err.Error()})
		}
		return rows
	}

	if title := first(tree, preview.RoleTitle); title != nil {
		rows = append(rows, []string{"title", fmt.Sprintf("%gpx", title.Style.FontSize)})
	}
	if btn := first(tree, preview.RoleButton); btn != nil {
		s := btn.Style
		rows = append(rows, []string{"button", fmt.Sprintf("%s on %s radius %gpx shadow %s", s.Color, s.Background, s.Radius, elevationName(s.Shadow))})
	}
	if actions := first(tree, preview.RoleActions); actions != nil {
		rows = append(rows, []string{"actions", string(actions.Style.Justify)})
	}
	if g := first(tree, preview.RoleGallery); g != nil {
		mode := "grid"
		if g.Style.Display == preview.DisplayList {
			mode = "list"
		}
		rows = append(rows, []string{"gallery", fmt.Sprintf("%s gap %gpx %s (%d items)", mode, g.Style.Gap, g.Style.Justify, len(g.Children))})
		if len(g.Children) > 0 {
			rows = append(rows, []string{"item radius", fmt.Sprintf("%gpx", g.Children[0].Style.Radius)})
		}
	}
	rows = append(rows, []string{"cards", fmt.Sprint(len(tree.Find(preview.RoleCard)))})
	return rows
}

func first(tree *preview.Tree, role preview.Role) *preview.Node {
	if nodes := tree.Find(role); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

func elevationName(e preview.Elevation) string {
	switch e {
	case preview.ElevationSmall:
		return "small"
	case preview.ElevationMedium:
		return "medium"
	case preview.ElevationLarge:
		return "large"
	default:
		return "none"
	}
}
