package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadSettingsMissingDefault(t *testing.T) {
	t.Chdir(t.TempDir())
	s, err := loadSettings("")
	if err != nil {
		t.Fatalf("缺少默认配置文件不应报错: %v", err)
	}
	if !reflect.DeepEqual(s, defaultSettings()) {
		t.Fatalf("应返回默认配置: %+v", s)
	}
}

func TestLoadSettingsMissingExplicit(t *testing.T) {
	if _, err := loadSettings(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("显式指定的配置文件缺失应报错")
	}
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stylepress.toml")
	writeFile(t, path, `
[slots]
backend = "redis"
addr = "127.0.0.1:6380"

[export]
dir = "out"
scale = 3

[html]
minify = false

[fonts]
Inter = "fonts/Inter-Regular.ttf"

[extra]
unused = 1
`)
	s, err := loadSettings(path)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.Slots.Backend != BackendRedis || s.Slots.Addr != "127.0.0.1:6380" || s.Slots.Prefix != "stylepress:" {
		t.Errorf("slots = %+v", s.Slots)
	}
	if s.Export.Dir != "out" || s.Export.Scale != 3 || s.Export.Width != defaultSettings().Export.Width {
		t.Errorf("export = %+v", s.Export)
	}
	if s.HTML.Minify || s.HTML.Title != "Preview" {
		t.Errorf("html = %+v", s.HTML)
	}
	if s.Fonts["Inter"] != "fonts/Inter-Regular.ttf" {
		t.Errorf("fonts = %v", s.Fonts)
	}
	if len(s.undecoded) == 0 {
		t.Errorf("未知配置项应被记录")
	}
	for _, k := range s.undecoded {
		if !strings.HasPrefix(k, "extra") {
			t.Errorf("undecoded = %v", s.undecoded)
		}
	}
}

func TestLoadSettingsRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stylepress.toml")
	writeFile(t, path, "[slots]\nbackend = \"etcd\"\n")
	if _, err := loadSettings(path); err == nil || !strings.Contains(err.Error(), "etcd") {
		t.Fatalf("未知后端应报错, got %v", err)
	}
}
