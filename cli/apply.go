package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ByLCY/stylepress/dsl"
	"github.com/ByLCY/stylepress/region"
	"github.com/ByLCY/stylepress/style"
)

type applyOpts struct {
	dryRun bool
}

func newApplyCmd() *cobra.Command {
	var opts applyOpts

	cmd := &cobra.Command{
		Use:   "apply [script]",
		Short: "Apply an edit script to the current configuration",
		Long: `按顺序执行编辑脚本并保存结果，例如：

  set typography.fontSize = 24
  set button.backgroundColor = "#ff0000"
  layout list
  region 10 10 200 120 { set button.borderRadius = 0 }

脚本中任一语句无效时不做任何修改。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd.Context(), settingsFromContext(cmd.Context()), args[0], opts, os.Stdout)
		},
	}

	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "print the resulting configuration instead of saving it")
	return cmd
}

func runApply(ctx context.Context, s Settings, path string, opts applyOpts, w io.Writer) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取编辑脚本失败: %w", err)
	}
	cfg, err := loadState(s.State.Config)
	if err != nil {
		return err
	}

	store := style.NewStore(cfg)
	overrides := region.NewOverrides()
	res, err := dsl.ApplyString(string(data), store, overrides)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	prog.done(fmt.Sprintf("已执行 %d 条语句", res.Applied))

	for _, id := range res.Regions {
		r, _ := overrides.Region(id)
		printDetail("选区 %s (%.0f,%.0f %.0f×%.0f)", id.String()[:8], r.X, r.Y, r.Width, r.Height)
		for _, v := range style.Validate(overrides.Resolve(store.Current(), id)) {
			printWarning("选区 %s: %s", id.String()[:8], v)
		}
	}
	for _, v := range style.Validate(store.Current()) {
		printWarning("%s", v)
	}

	if opts.dryRun {
		out, err := style.Marshal(store.Current())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", out)
		return err
	}
	if err := saveState(s.State.Config, store.Current()); err != nil {
		return err
	}
	printSuccess("已更新当前配置")
	printFile(s.State.Config)
	return nil
}
