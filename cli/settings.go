package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/ByLCY/stylepress/export"
	"github.com/ByLCY/stylepress/layout"
	canvasrenderer "github.com/ByLCY/stylepress/renderer/canvas"
)

// DefaultSettingsFile 是未指定 --config 时读取的配置文件，不存在时使用默认值。
const DefaultSettingsFile = "stylepress.toml"

// 交接槽后端。
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Settings 是 stylepress.toml 的内容。
type Settings struct {
	State  StateSettings     `toml:"state"`
	Slots  SlotSettings      `toml:"slots"`
	Export ExportSettings    `toml:"export"`
	HTML   HTMLSettings      `toml:"html"`
	Fonts  map[string]string `toml:"fonts"` // 字体族名 -> TTF/OTF 路径

	undecoded []string
}

// StateSettings 指定跨命令保存的当前配置文件。
type StateSettings struct {
	Config string `toml:"config"`
}

// SlotSettings 选择导入页与编辑页之间的交接槽后端。
type SlotSettings struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`   // sqlite
	Addr    string `toml:"addr"`   // redis
	Prefix  string `toml:"prefix"` // redis
}

// ExportSettings 控制导出目录、尺寸与文件名模板。
type ExportSettings struct {
	Dir            string  `toml:"dir"`
	Width          float64 `toml:"width"`
	Scale          float64 `toml:"scale"`
	ConfigTemplate string  `toml:"config_template"`
	ImageTemplate  string  `toml:"image_template"`
}

// HTMLSettings 控制 HTML 预览输出。
type HTMLSettings struct {
	Title  string `toml:"title"`
	Minify bool   `toml:"minify"`
}

func defaultSettings() Settings {
	return Settings{
		State: StateSettings{Config: "stylepress.json"},
		Slots: SlotSettings{
			Backend: BackendSQLite,
			Path:    ".stylepress/slots.db",
			Addr:    "localhost:6379",
			Prefix:  "stylepress:",
		},
		Export: ExportSettings{
			Dir:            "exports",
			Width:          layout.DefaultWidth,
			Scale:          canvasrenderer.DefaultScale,
			ConfigTemplate: export.DefaultConfigTemplate,
			ImageTemplate:  export.DefaultImageTemplate,
		},
		HTML: HTMLSettings{Title: "Preview", Minify: true},
	}
}

// loadSettings 读取 path；path 为空时尝试 DefaultSettingsFile，该文件缺失不算错误。
func loadSettings(path string) (Settings, error) {
	s := defaultSettings()
	explicit := path != ""
	if !explicit {
		path = DefaultSettingsFile
	}
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return defaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	for _, k := range md.Undecoded() {
		s.undecoded = append(s.undecoded, k.String())
	}
	sort.Strings(s.undecoded)
	if err := s.validate(); err != nil {
		return Settings{}, fmt.Errorf("配置文件 %s 无效: %w", path, err)
	}
	return s, nil
}

func (s Settings) validate() error {
	switch s.Slots.Backend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("未知的交接槽后端 %q（可选 memory/sqlite/redis）", s.Slots.Backend)
	}
	if s.Slots.Backend == BackendSQLite && s.Slots.Path == "" {
		return errors.New("sqlite 后端需要 slots.path")
	}
	if s.Slots.Backend == BackendRedis && s.Slots.Addr == "" {
		return errors.New("redis 后端需要 slots.addr")
	}
	if s.State.Config == "" {
		return errors.New("state.config 不能为空")
	}
	if s.Export.Width < 0 || s.Export.Scale < 0 {
		return errors.New("export.width 与 export.scale 不能为负数")
	}
	return nil
}

func withSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey, s)
}

func settingsFromContext(ctx context.Context) Settings {
	if s, ok := ctx.Value(settingsKey).(Settings); ok {
		return s
	}
	return defaultSettings()
}
