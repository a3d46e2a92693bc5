package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ByLCY/stylepress/preview"
	"github.com/ByLCY/stylepress/region"
	"github.com/ByLCY/stylepress/style"
)

func key(s string) tea.Msg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func keys(m Model, names ...string) Model {
	for _, n := range names {
		m = send(m, key(n))
	}
	return m
}

func newPanel(opts Options) (Model, *style.Store) {
	store := style.NewStore(style.Default())
	if opts.Content.Title == "" && opts.Content.Design == nil {
		opts.Content = preview.SampleContent()
	}
	return New(store, opts), store
}

func TestNudgeUpdatesStoreAndPreview(t *testing.T) {
	m, store := newPanel(Options{})
	m = keys(m, "down", "down", "right")

	if got := store.Current().Typography.FontSize; got != 17 {
		t.Fatalf("fontSize 应步进到 17, got %d", got)
	}
	if got := m.Tree().Root.Style.FontSize; got != 17 {
		t.Fatalf("预览未随配置刷新: %v", got)
	}

	m = keys(m, "left", "left")
	if got := store.Current().Typography.FontSize; got != 15 {
		t.Fatalf("fontSize 应回退到 15, got %d", got)
	}
}

func TestNudgeStaysInRange(t *testing.T) {
	m, store := newPanel(Options{})
	store.Update(style.SectionTypography, "fontSize", 60)
	m = keys(m, "down", "down", "right")
	if got := store.Current().Typography.FontSize; got != 60 {
		t.Fatalf("fontSize 不应超过 60, got %d", got)
	}
}

func TestTextEntryForColor(t *testing.T) {
	m, store := newPanel(Options{})
	m = keys(m, "tab", "down", "down", "down", "enter")
	if !m.Editing() {
		t.Fatalf("按下回车后应进入输入状态")
	}
	for range "#8b5cf6" {
		m = keys(m, "backspace")
	}
	m = keys(m, "#ff0000", "enter")

	if m.Editing() {
		t.Fatalf("提交后应退出输入状态")
	}
	if got := store.Current().Button.BackgroundColor; got != "#ff0000" {
		t.Fatalf("按钮背景色未更新: %s", got)
	}
	btn := m.Tree().Find(preview.RoleButton)[0]
	if btn.Style.Background != "#ff0000" {
		t.Fatalf("预览按钮背景色未更新: %s", btn.Style.Background)
	}
}

func TestTextEntryRejectsBadNumber(t *testing.T) {
	m, store := newPanel(Options{})
	m = keys(m, "down", "down", "enter", "backspace", "backspace", "big", "enter")
	if store.Revision() != 0 {
		t.Fatalf("非法输入不应修改配置")
	}
	if !strings.Contains(m.Status(), "整数") {
		t.Fatalf("状态栏应提示需要整数: %q", m.Status())
	}
}

func TestTextEntryAcceptsOutOfRange(t *testing.T) {
	m, store := newPanel(Options{})
	m = keys(m, "down", "down", "enter", "backspace", "backspace", "99", "enter")
	if got := store.Current().Typography.FontSize; got != 99 {
		t.Fatalf("越界值应原样保存, got %d", got)
	}
	if !strings.Contains(m.Status(), "超出允许范围") {
		t.Fatalf("状态栏应提示越界: %q", m.Status())
	}
}

func TestLayoutTypeKeys(t *testing.T) {
	m, store := newPanel(Options{})
	m = keys(m, "l")
	if store.Current().LayoutType != style.LayoutList {
		t.Fatalf("l 应切换为列表")
	}
	if len(m.Tree().Find(preview.RoleRow)) != 6 {
		t.Fatalf("列表模式应有 6 行")
	}
	m = keys(m, "g")
	if store.Current().LayoutType != style.LayoutGrid || len(m.Tree().Find(preview.RoleTile)) != 6 {
		t.Fatalf("g 应切换回网格")
	}
}

type stubExporter struct {
	got   *style.Config
	err   error
	calls int
}

func (s *stubExporter) PanelConfig(cfg style.Config) (string, error) {
	s.calls++
	s.got = &cfg
	return "/tmp/ui-config.json", s.err
}

func TestExportKey(t *testing.T) {
	exp := &stubExporter{}
	m, store := newPanel(Options{Exporter: exp})
	store.Update(style.SectionStroke, "weight", 3)
	m = keys(m, "e")
	if exp.calls != 1 || exp.got.Stroke.Weight != 3 {
		t.Fatalf("导出内容错误: %+v", exp.got)
	}
	if !strings.Contains(m.Status(), "ui-config.json") {
		t.Fatalf("状态栏应显示导出路径: %q", m.Status())
	}

	exp.err = errors.New("disk full")
	m = keys(m, "e")
	if !strings.Contains(m.Status(), "disk full") {
		t.Fatalf("状态栏应显示导出错误: %q", m.Status())
	}
}

func TestExportWithoutExporter(t *testing.T) {
	m, _ := newPanel(Options{})
	m = keys(m, "e")
	if m.Status() == "" {
		t.Fatalf("缺少导出器时应提示")
	}
}

func TestRegionOverridesDoNotTouchStore(t *testing.T) {
	ov := region.NewOverrides()
	m, store := newPanel(Options{Overrides: ov})

	m = send(m,
		tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
	)
	id, ok := m.ActiveRegion()
	if !ok || ov.Len() != 1 {
		t.Fatalf("拖拽后应新建并激活选区")
	}
	r, _ := ov.Region(id)
	if r != (region.Region{X: 80, Y: 32, Width: 80, Height: 80}) {
		t.Fatalf("选区坐标错误: %+v", r)
	}

	m = keys(m, "down", "down", "right")
	if store.Revision() != 0 {
		t.Fatalf("选区内的修改不应写入全局配置")
	}
	if m.Config().Typography.FontSize != 17 || m.Tree().Root.Style.FontSize != 17 {
		t.Fatalf("选区配置应叠加覆盖: %d", m.Config().Typography.FontSize)
	}

	m = keys(m, "esc")
	if _, ok := m.ActiveRegion(); ok || m.Tree().Root.Style.FontSize != 16 {
		t.Fatalf("退出选区后应回到全局配置")
	}

	// 单击已有选区重新激活
	m = send(m,
		tea.MouseMsg{X: 12, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 12, Y: 6, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
	)
	if got, ok := m.ActiveRegion(); !ok || got != id {
		t.Fatalf("单击应激活已有选区")
	}
	if ov.Len() != 1 {
		t.Fatalf("单击不应新建选区")
	}

	m = keys(m, "x")
	if ov.Len() != 0 {
		t.Fatalf("x 应删除选区")
	}
}

func TestValidateKey(t *testing.T) {
	m, store := newPanel(Options{})
	store.Update(style.SectionLayout, "containerPadding", -4)
	m = keys(m, "v")
	if !strings.Contains(m.Status(), "layout.containerPadding") {
		t.Fatalf("检查结果应列出越界字段: %q", m.Status())
	}
}

func TestQuit(t *testing.T) {
	m, _ := newPanel(Options{})
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatalf("q 应返回退出命令")
	}
}

func TestPreviewRowsForDesign(t *testing.T) {
	content := preview.SampleContent().WithDesign(preview.Design{Source: "data:image/svg+xml,%3Csvg%3E%3C/svg%3E", MIMEType: "image/svg+xml"})
	tree := preview.Project(style.Default(), content)
	rows := previewRows(tree)
	var found bool
	for _, r := range rows {
		if r[0] == "design" && r[1] == "vector" {
			found = true
		}
		if r[0] == "gallery" {
			t.Fatalf("导入设计稿后不应出现示例图库")
		}
	}
	if !found {
		t.Fatalf("缺少 design 行: %v", rows)
	}
}

func TestViewRendersTabs(t *testing.T) {
	m, _ := newPanel(Options{})
	view := m.View()
	for _, tab := range Tabs {
		if !strings.Contains(view, tab.Name) {
			t.Fatalf("视图缺少分组 %s", tab.Name)
		}
	}
	if !strings.Contains(view, "Font Size") {
		t.Fatalf("视图缺少字段标签")
	}
}
