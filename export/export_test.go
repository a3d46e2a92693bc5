package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ByLCY/stylepress/layout"
	"github.com/ByLCY/stylepress/preview"
	"github.com/ByLCY/stylepress/renderer"
	"github.com/ByLCY/stylepress/style"
)

// stubEngine 记录收到的布局结果并返回固定字节。
type stubEngine struct {
	err  error
	last *layout.Result
}

func (s *stubEngine) Render(res *layout.Result, format renderer.Format) ([]byte, error) {
	s.last = res
	if s.err != nil {
		return nil, s.err
	}
	return []byte("IMG:" + string(format)), nil
}

func (s *stubEngine) LayoutLines(content string, width float64, font layout.FontSpec, fontSize, lineHeight float64) ([]layout.TextLine, error) {
	return []layout.TextLine{{Content: content, Width: float64(len(content)) * fontSize / 2, Height: fontSize}}, nil
}

func (s *stubEngine) MeasureImage(string) (float64, float64, error)  { return 4, 3, nil }
func (s *stubEngine) MeasureMarkup(string) (float64, float64, error) { return 1, 1, nil }

var fixed = time.UnixMilli(1700000000123)

func newExporter(t *testing.T, engine *stubEngine) *Exporter {
	t.Helper()
	e := New(t.TempDir(), engine)
	e.Now = func() time.Time { return fixed }
	return e
}

func entries(t *testing.T, dir string) []string {
	t.Helper()
	list, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var names []string
	for _, e := range list {
		names = append(names, e.Name())
	}
	return names
}

func TestPanelConfigVerbatim(t *testing.T) {
	e := newExporter(t, &stubEngine{})
	cfg := style.Default().Update(style.SectionGallery, "spacing", 48)
	path, err := e.PanelConfig(cfg)
	if err != nil {
		t.Fatalf("PanelConfig: %v", err)
	}
	if filepath.Base(path) != "ui-config.json" {
		t.Fatalf("文件名错误: %s", path)
	}
	got, _ := os.ReadFile(path)
	want, _ := style.Marshal(cfg)
	if string(got) != string(want) {
		t.Fatalf("导出内容应与序列化结果一致")
	}
	back, err := style.Parse(got)
	if err != nil || back != cfg {
		t.Fatalf("导出 JSON 无法还原: %v", err)
	}
}

func TestDialogConfigTimestamped(t *testing.T) {
	e := newExporter(t, &stubEngine{})
	path, err := e.DialogConfig(style.Default())
	if err != nil {
		t.Fatalf("DialogConfig: %v", err)
	}
	if filepath.Base(path) != "design-config-1700000000123.json" {
		t.Fatalf("文件名错误: %s", path)
	}
}

func TestImageExportNames(t *testing.T) {
	engine := &stubEngine{}
	e := newExporter(t, engine)
	tree := preview.Project(style.Default(), preview.SampleContent())
	cases := map[renderer.Format]string{
		renderer.FormatPNG:  "design-export-1700000000123.png",
		renderer.FormatJPEG: "design-export-1700000000123.jpg",
		renderer.FormatPDF:  "design-export-1700000000123.pdf",
	}
	for format, want := range cases {
		path, err := e.Image(tree, format)
		if err != nil {
			t.Fatalf("Image(%s): %v", format, err)
		}
		if filepath.Base(path) != want {
			t.Fatalf("文件名错误: got %s want %s", filepath.Base(path), want)
		}
		data, _ := os.ReadFile(path)
		if string(data) != "IMG:"+string(format) {
			t.Fatalf("文件内容错误: %q", data)
		}
	}
	if engine.last.Background != "#ffffff" {
		t.Fatalf("导出背景应取 layout.sectionBackgroundColor, got %q", engine.last.Background)
	}
}

func TestSVGPendingWritesNothing(t *testing.T) {
	e := newExporter(t, &stubEngine{})
	_, err := e.Image(preview.Project(style.Default(), preview.SampleContent()), FormatSVG)
	if !errors.Is(err, ErrSVGPending) {
		t.Fatalf("SVG 应返回 ErrSVGPending, got %v", err)
	}
	if names := entries(t, e.Dir); len(names) != 0 {
		t.Fatalf("不应写出文件: %v", names)
	}
}

func TestRenderFailureLeavesNoFile(t *testing.T) {
	boom := errors.New("canvas exploded")
	e := newExporter(t, &stubEngine{err: boom})
	_, err := e.Image(preview.Project(style.Default(), preview.SampleContent()), renderer.FormatPNG)
	if !errors.Is(err, ErrRender) || !errors.Is(err, boom) {
		t.Fatalf("应返回包装后的 ErrRender, got %v", err)
	}
	if names := entries(t, e.Dir); len(names) != 0 {
		t.Fatalf("失败时不应留下文件: %v", names)
	}

	if _, err := e.Image(nil, renderer.FormatPNG); !errors.Is(err, ErrRender) {
		t.Fatalf("没有预览时应返回 ErrRender, got %v", err)
	}
}

func TestCustomTemplate(t *testing.T) {
	e := newExporter(t, &stubEngine{})
	e.ImageTemplate = "${layoutType}-${typography.fontSize}.${ext}"
	path, err := e.Image(preview.Project(style.Default(), preview.SampleContent()), renderer.FormatPNG)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if filepath.Base(path) != "grid-16.png" {
		t.Fatalf("模板文件名错误: %s", path)
	}

	e.ImageTemplate = "${nope}.${ext}"
	if _, err := e.Image(preview.Project(style.Default(), preview.SampleContent()), renderer.FormatPNG); err == nil {
		t.Fatalf("未知模板变量应报错")
	}
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.json")
	if err := WriteFileAtomic(path, []byte("one")); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("two")); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "two" {
		t.Fatalf("内容应被替换: %q", got)
	}
	if names := entries(t, filepath.Join(dir, "nested")); len(names) != 1 {
		t.Fatalf("不应残留临时文件: %v", names)
	}
}
