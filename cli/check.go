package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ByLCY/stylepress/style"
)

func newCheckCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check [config.json]",
		Short: "Report configuration values outside the editor's ranges",
		Long: `检查配置文件（默认为 state.config）中超出控件范围的取值。

越界值仍会按原样预览与导出，check 只负责报告；存在越界值时以非零状态退出。`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFromContext(cmd.Context())
			path := s.State.Config
			if len(args) == 1 {
				path = args[0]
			}
			return runCheck(cmd.Context(), path, quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print violations")
	return cmd
}

func runCheck(ctx context.Context, path string, quiet bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取 %s 失败: %w", path, err)
	}
	cfg, err := style.Parse(data)
	if err != nil {
		printError("%s: %v", path, err)
		return err
	}

	if !quiet {
		fmt.Fprintln(out, StyleTitle.Render(path))
		for _, f := range style.Fields() {
			printKeyValue(f.Path(), fmt.Sprint(f.Get(cfg)))
		}
		printKeyValue("layoutType", string(cfg.LayoutType))
	}

	violations := style.Validate(cfg)
	loggerFromContext(ctx).Debug("检查配置", "path", path, "violations", len(violations))
	if len(violations) == 0 {
		printSuccess("所有字段都在允许范围内")
		return nil
	}
	for _, v := range violations {
		printWarning("%s", v)
	}
	return fmt.Errorf("%d 个字段超出允许范围", len(violations))
}
