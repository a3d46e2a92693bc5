// Package export 将配置导出为 JSON，或将预览渲染为图片文件。
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ByLCY/stylepress/binding"
	"github.com/ByLCY/stylepress/layout"
	"github.com/ByLCY/stylepress/preview"
	"github.com/ByLCY/stylepress/renderer"
	"github.com/ByLCY/stylepress/style"
)

var (
	// ErrRender 表示预览无法渲染为图片；此时不会写出任何文件。
	ErrRender = errors.New("导出预览失败")
	// ErrSVGPending 表示 SVG 导出尚未实现，调用方应当提示用户。
	ErrSVGPending = errors.New("SVG 导出暂未实现")
)

// FormatSVG 是可选但尚未实现的导出格式。
const FormatSVG renderer.Format = "svg"

// 默认文件名模板，${unixMs} 为导出时刻的毫秒时间戳，${ext} 为扩展名。
const (
	PanelConfigName       = "ui-config.json"
	DefaultConfigTemplate = "design-config-${unixMs}.json"
	DefaultImageTemplate  = "design-export-${unixMs}.${ext}"
)

// Engine 同时负责排版、测量导入稿与编码输出，canvas 渲染器满足该接口。
type Engine interface {
	renderer.Renderer
	layout.Typesetter
	layout.MediaMeasurer
}

// Exporter 将导出结果写入 Dir。
type Exporter struct {
	Dir            string
	Engine         Engine
	Width          float64 // 预览宽度（px），<=0 时使用 layout.DefaultWidth
	ConfigTemplate string
	ImageTemplate  string
	Now            func() time.Time
}

// New 创建写入 dir 的 Exporter。
func New(dir string, engine Engine) *Exporter {
	return &Exporter{
		Dir:            dir,
		Engine:         engine,
		ConfigTemplate: DefaultConfigTemplate,
		ImageTemplate:  DefaultImageTemplate,
		Now:            time.Now,
	}
}

// PanelConfig 将配置写入 ui-config.json，返回文件路径。
func (e *Exporter) PanelConfig(cfg style.Config) (string, error) {
	return e.writeConfig(cfg, PanelConfigName)
}

// DialogConfig 将配置写入带时间戳的 design-config-<unix-ms>.json，返回文件路径。
func (e *Exporter) DialogConfig(cfg style.Config) (string, error) {
	name, err := e.fileName(e.ConfigTemplate, cfg, "json")
	if err != nil {
		return "", err
	}
	return e.writeConfig(cfg, name)
}

func (e *Exporter) writeConfig(cfg style.Config, name string) (string, error) {
	data, err := style.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("序列化配置失败: %w", err)
	}
	path := filepath.Join(e.Dir, name)
	if err := WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// Render 将预览树按指定格式渲染为字节，不写文件。
func (e *Exporter) Render(tree *preview.Tree, format renderer.Format) ([]byte, error) {
	if format == FormatSVG {
		return nil, ErrSVGPending
	}
	if tree == nil || tree.Root == nil {
		return nil, fmt.Errorf("%w: 没有可导出的预览", ErrRender)
	}
	if e.Engine == nil {
		return nil, fmt.Errorf("%w: 未配置渲染器", ErrRender)
	}
	res, err := layout.Build(tree, layout.BuildOptions{Typesetter: e.Engine, Media: e.Engine, Width: e.Width})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	data, err := e.Engine.Render(res, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return data, nil
}

// Image 渲染预览并写入 design-export-<unix-ms>.<ext>，返回文件路径。
// 渲染失败时返回 ErrRender 且不写出文件；svg 返回 ErrSVGPending。
func (e *Exporter) Image(tree *preview.Tree, format renderer.Format) (string, error) {
	data, err := e.Render(tree, format)
	if err != nil {
		return "", err
	}
	name, err := e.fileName(e.ImageTemplate, tree.Config, format.Ext())
	if err != nil {
		return "", err
	}
	path := filepath.Join(e.Dir, name)
	if err := WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func (e *Exporter) fileName(tmpl string, cfg style.Config, ext string) (string, error) {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	data := binding.Vars(cfg, map[string]any{
		"unixMs": now().UnixMilli(),
		"ext":    ext,
	})
	if missing := binding.Unresolved(tmpl, data); len(missing) > 0 {
		return "", fmt.Errorf("文件名模板 %q 包含未知变量: %s", tmpl, strings.Join(missing, ", "))
	}
	name := binding.Interpolate(tmpl, data)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("文件名 %q 无效", name)
	}
	return name, nil
}

// WriteFileAtomic 先写入同目录临时文件再重命名，失败时不留下部分文件。
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建目录 %s 失败: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".stylepress-*")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		cleanup()
		return fmt.Errorf("设置 %s 权限失败: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		cleanup()
		return fmt.Errorf("保存 %s 失败: %w", path, err)
	}
	return nil
}
