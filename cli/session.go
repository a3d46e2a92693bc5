package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/stylepress/export"
	"github.com/ByLCY/stylepress/handoff"
	"github.com/ByLCY/stylepress/importer"
	"github.com/ByLCY/stylepress/preview"
	canvasrenderer "github.com/ByLCY/stylepress/renderer/canvas"
	"github.com/ByLCY/stylepress/style"
)

// loadState 读取跨命令保存的当前配置；文件不存在时返回默认配置。
func loadState(path string) (style.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return style.Default(), nil
	}
	if err != nil {
		return style.Config{}, fmt.Errorf("读取当前配置失败: %w", err)
	}
	cfg, err := style.Parse(data)
	if err != nil {
		return style.Config{}, fmt.Errorf("当前配置 %s 无效: %w", path, err)
	}
	return cfg, nil
}

func saveState(path string, cfg style.Config) error {
	data, err := style.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}
	return export.WriteFileAtomic(path, data)
}

// readImport 以磁盘文件构造导入请求，声明类型由内容与扩展名推断。
func readImport(path string) (importer.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return importer.Result{}, fmt.Errorf("读取 %s 失败: %w", path, err)
	}
	name := filepath.Base(path)
	return importer.Import(importer.File{
		Name:     name,
		MIMEType: importer.DetectMIME(name, data),
		Read:     func() ([]byte, error) { return data, nil },
	})
}

// loadDesign 读取设计稿文件；path 为空时返回 nil。
func loadDesign(path string) (*preview.Design, error) {
	if path == "" {
		return nil, nil
	}
	res, err := readImport(path)
	if err != nil {
		return nil, err
	}
	if res.Kind != importer.Design {
		return nil, fmt.Errorf("%s 不是设计稿", path)
	}
	return res.Design, nil
}

func previewContent(d *preview.Design) preview.Content {
	content := preview.SampleContent()
	if d != nil {
		content = content.WithDesign(*d)
	}
	return content
}

// openSlots 按配置打开交接槽，返回的 close 函数总是非空。
func openSlots(ctx context.Context, s SlotSettings, logger *log.Logger) (handoff.Slots, func() error, error) {
	noop := func() error { return nil }
	switch s.Backend {
	case BackendMemory:
		logger.Warn("内存交接槽只在单个进程内有效")
		return handoff.NewMemory(), noop, nil
	case BackendSQLite:
		db, err := handoff.OpenSQLite(s.Path)
		if err != nil {
			return nil, noop, err
		}
		logger.Debug("交接槽", "backend", s.Backend, "path", s.Path)
		return db, db.Close, nil
	case BackendRedis:
		r := handoff.NewRedis(s.Addr, s.Prefix)
		if err := r.Ping(ctx); err != nil {
			r.Close()
			return nil, noop, fmt.Errorf("连接 redis %s 失败: %w", s.Addr, err)
		}
		logger.Debug("交接槽", "backend", s.Backend, "addr", s.Addr)
		return r, r.Close, nil
	default:
		return nil, noop, fmt.Errorf("未知的交接槽后端 %q", s.Backend)
	}
}

func newEngine(s Settings) *canvasrenderer.Renderer {
	fonts := make(map[string]canvasrenderer.Resource, len(s.Fonts))
	for family, path := range s.Fonts {
		fonts[family] = canvasrenderer.Resource{Path: path}
	}
	return canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		Scale: s.Export.Scale,
		Fonts: fonts,
	})
}

func newExporter(s Settings) *export.Exporter {
	exp := export.New(s.Export.Dir, newEngine(s))
	exp.Width = s.Export.Width
	if s.Export.ConfigTemplate != "" {
		exp.ConfigTemplate = s.Export.ConfigTemplate
	}
	if s.Export.ImageTemplate != "" {
		exp.ImageTemplate = s.Export.ImageTemplate
	}
	return exp
}
