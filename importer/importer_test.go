package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/ByLCY/stylepress/style"
)

func fileOf(name, mime string, data []byte, reads *int) File {
	return File{Name: name, MIMEType: mime, Read: func() ([]byte, error) {
		*reads++
		return data, nil
	}}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name, mime string
		want       Kind
	}{
		{"a.json", "", Config},
		{"a.txt", "application/json", Config},
		{"a.png", "image/png", Design},
		{"a.SVG", "", Design},
		{"a.jpg", "", Unsupported},
		{"a.pdf", "application/pdf", Unsupported},
	}
	for _, tc := range cases {
		if got := Classify(tc.name, tc.mime); got != tc.want {
			t.Fatalf("Classify(%q,%q)=%s want %s", tc.name, tc.mime, got, tc.want)
		}
	}
}

func TestUnsupportedRejectedBeforeRead(t *testing.T) {
	reads := 0
	_, err := Import(fileOf("notes.pdf", "application/pdf", []byte("%PDF"), &reads))
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("应返回 ErrUnsupported, got %v", err)
	}
	if reads != 0 {
		t.Fatalf("不支持的文件不应被读取")
	}
}

func TestImportConfig(t *testing.T) {
	data, _ := style.Marshal(style.Default().Update(style.SectionStroke, "weight", 4))
	reads := 0
	res, err := Import(fileOf("ui-config.json", "application/json", data, &reads))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Kind != Config || res.Config == nil || res.Config.Stroke.Weight != 4 {
		t.Fatalf("配置导入结果错误: %+v", res)
	}
}

func TestImportInvalidConfig(t *testing.T) {
	reads := 0
	_, err := Import(fileOf("broken.json", "", []byte(`{"typography":`), &reads))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("应返回 ErrInvalidConfig, got %v", err)
	}
}

func TestImportDesign(t *testing.T) {
	reads := 0
	res, err := Import(fileOf("logo.svg", "", []byte("<svg/>"), &reads))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Kind != Design || res.Design.MIMEType != "image/svg+xml" {
		t.Fatalf("空声明类型应默认为 image/svg+xml: %+v", res.Design)
	}
	if !strings.HasPrefix(res.Design.Source, "data:image/svg+xml;base64,") {
		t.Fatalf("设计稿应编码为 data URI: %s", res.Design.Source)
	}
	markup, err := res.Design.Markup()
	if err != nil || markup != "<svg/>" {
		t.Fatalf("data URI 无法还原: %q %v", markup, err)
	}
}

func TestDetectMIME(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if got := DetectMIME("shot.bin", png); got != "image/png" {
		t.Fatalf("PNG 嗅探错误: %q", got)
	}
	if got := DetectMIME("cfg.json", []byte("{}")); got != "application/json" {
		t.Fatalf("JSON 扩展名优先: %q", got)
	}
	if got := DetectMIME("readme", []byte("hello")); got != "" {
		t.Fatalf("纯文本不应声明类型: %q", got)
	}
}
