package cli

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"
)

const formatHTML = "html"

// previewFileName 是 watch 输出 html 时写入导出目录的文件名。
const previewFileName = "preview.html"

type watchOpts struct {
	formats []string
	design  string
}

func newWatchCmd() *cobra.Command {
	var formatsStr string
	var opts watchOpts

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-export the preview whenever the configuration changes",
		Long: `监听 state.config（以及 --design 指定的设计稿），每次变更后重新导出。
按 Ctrl+C 结束。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return runWatch(cmd.Context(), settingsFromContext(cmd.Context()), opts)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "png,html", "output format(s): png, jpeg, pdf, json, html (comma-separated)")
	cmd.Flags().StringVarP(&opts.design, "design", "d", "", "design image to render instead of the sample page")
	return cmd
}

func runWatch(ctx context.Context, s Settings, opts watchOpts) error {
	logger := loggerFromContext(ctx)

	fw, err := newFileWatcher([]string{s.State.Config, opts.design}, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	rebuild := func() {
		var formats []string
		for _, f := range opts.formats {
			if f == formatHTML {
				dst := filepath.Join(s.Export.Dir, previewFileName)
				err := runPreview(ctx, s, previewOpts{output: dst, design: opts.design, title: s.HTML.Title, minify: s.HTML.Minify}, nil)
				if err != nil {
					printWarning("生成 HTML 预览失败: %v", err)
				}
				continue
			}
			formats = append(formats, f)
		}
		if len(formats) == 0 {
			return
		}
		// 导出失败只提示，继续监听下一次修改
		if err := runExport(ctx, s, exportOpts{formats: formats, design: opts.design, panel: true}); err != nil {
			printWarning("导出失败: %v", err)
		}
	}

	rebuild()
	printInfo("正在监听 %s，按 Ctrl+C 结束", s.State.Config)
	err = fw.Run(ctx, defaultDebounce, func(path string) {
		logger.Info("检测到变更", "path", path)
		rebuild()
	})
	if errors.Is(err, context.Canceled) {
		printInfo("已停止监听")
		return nil
	}
	return err
}
