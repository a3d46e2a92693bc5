package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/ByLCY/stylepress/handoff"
	"github.com/ByLCY/stylepress/importer"
)

type importOpts struct {
	edit bool // 导入后直接打开编辑面板，设计稿随跳转载荷传递
}

func newImportCmd() *cobra.Command {
	var opts importOpts

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a JSON configuration or a design image for the editor",
		Long: `导入 JSON 配置或设计稿（PNG/JPEG/SVG）。

内容写入一次性交接槽，下一次 edit 启动时读取并删除。
使用 --edit 时直接打开编辑面板，设计稿随跳转载荷传递而不经过交接槽。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFromContext(cmd.Context())
			nav, err := runImport(cmd.Context(), s, args[0], opts)
			if err != nil || !opts.edit {
				return err
			}
			return runEdit(cmd.Context(), s, nav, editOpts{})
		},
	}

	cmd.Flags().BoolVarP(&opts.edit, "edit", "e", false, "open the editor right after importing")
	return cmd
}

// runImport 识别并暂存导入文件。设计稿配合 --edit 时不写入交接槽，而是作为跳转载荷返回。
func runImport(ctx context.Context, s Settings, path string, opts importOpts) (*handoff.Payload, error) {
	logger := loggerFromContext(ctx)

	res, err := readImport(path)
	if err != nil {
		if errors.Is(err, importer.ErrUnsupported) || errors.Is(err, importer.ErrInvalidConfig) {
			printError("%v", err)
		}
		return nil, err
	}
	logger.Debug("识别导入文件", "path", path, "kind", res.Kind)

	if res.Kind == importer.Design && opts.edit {
		printSuccess("已读取设计稿 %s", path)
		return &handoff.Payload{Image: res.Design.Source, ImageType: res.Design.MIMEType}, nil
	}

	slots, closeSlots, err := openSlots(ctx, s.Slots, logger)
	if err != nil {
		return nil, err
	}
	defer closeSlots()

	switch res.Kind {
	case importer.Config:
		if err := handoff.StageConfig(ctx, slots, *res.Config); err != nil {
			return nil, err
		}
		printSuccess("已暂存配置 %s", path)
	case importer.Design:
		if err := handoff.StageDesign(ctx, slots, *res.Design); err != nil {
			return nil, err
		}
		printSuccess("已暂存设计稿 %s (%s)", path, res.Design.MIMEType)
	}
	if !opts.edit {
		printDetail("运行 stylepress edit 打开编辑面板")
	}
	return nil, nil
}
