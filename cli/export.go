package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/stylepress/export"
	"github.com/ByLCY/stylepress/layout"
	"github.com/ByLCY/stylepress/preview"
	"github.com/ByLCY/stylepress/renderer"
	"github.com/ByLCY/stylepress/style"
)

const formatJSON = "json"

type exportOpts struct {
	formats []string
	output  string // 单一格式时的输出路径；为空时按文件名模板写入导出目录
	design  string
	panel   bool   // json 写入 ui-config.json 而不是带时间戳的文件名
	debug   string // 布局调试 JSON 输出路径
}

func newExportCmd() *cobra.Command {
	var formatsStr string
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the configuration as JSON or the preview as an image",
		Long: `导出当前配置或预览。

  json  配置文件 design-config-<unix-ms>.json（--panel 时为 ui-config.json）
  png   预览图片，按 2 倍分辨率渲染
  jpeg  同上，JPEG 编码
  pdf   预览的矢量 PDF
  svg   尚未实现`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if opts.output != "" && len(opts.formats) > 1 {
				return errors.New("--output 只能与单一格式一起使用")
			}
			return runExport(cmd.Context(), settingsFromContext(cmd.Context()), opts)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "png", "output format(s): json, png, jpeg, pdf, svg (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format only)")
	cmd.Flags().StringVarP(&opts.design, "design", "d", "", "design image to render instead of the sample page")
	cmd.Flags().BoolVar(&opts.panel, "panel", false, "write json as ui-config.json")
	cmd.Flags().StringVar(&opts.debug, "debug-layout", "", "write the computed layout as JSON")
	return cmd
}

func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func runExport(ctx context.Context, s Settings, opts exportOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadState(s.State.Config)
	if err != nil {
		return err
	}
	design, err := loadDesign(opts.design)
	if err != nil {
		return err
	}
	tree := preview.Project(cfg, previewContent(design))
	exp := newExporter(s)

	if opts.debug != "" {
		res, err := layout.Build(tree, layout.BuildOptions{Typesetter: exp.Engine, Media: exp.Engine, Width: exp.Width})
		if err != nil {
			return fmt.Errorf("计算布局失败: %w", err)
		}
		if err := layout.WriteDebugJSON(res, opts.debug); err != nil {
			return fmt.Errorf("写入布局调试文件失败: %w", err)
		}
		logger.Debug("布局调试文件", "path", opts.debug, "boxes", len(res.Boxes))
	}

	for _, f := range opts.formats {
		prog := newProgress(logger)
		path, err := exportOne(exp, tree, cfg, f, opts)
		if errors.Is(err, export.ErrSVGPending) {
			printWarning("%v", err)
			continue
		}
		if err != nil {
			return err
		}
		prog.done("已导出 " + f)
		printFile(path)
	}
	return nil
}

func exportOne(exp *export.Exporter, tree *preview.Tree, cfg style.Config, format string, opts exportOpts) (string, error) {
	if format == formatJSON {
		switch {
		case opts.output != "":
			data, err := style.Marshal(cfg)
			if err != nil {
				return "", err
			}
			return opts.output, export.WriteFileAtomic(opts.output, data)
		case opts.panel:
			return exp.PanelConfig(cfg)
		default:
			return exp.DialogConfig(cfg)
		}
	}

	f := renderer.Format(format)
	if f != export.FormatSVG {
		parsed, err := renderer.ParseFormat(format)
		if err != nil {
			return "", err
		}
		f = parsed
	}
	if opts.output == "" {
		return exp.Image(tree, f)
	}
	data, err := exp.Render(tree, f)
	if err != nil {
		return "", err
	}
	return opts.output, export.WriteFileAtomic(opts.output, data)
}
