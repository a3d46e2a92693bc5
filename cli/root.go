// Package cli 实现 stylepress 命令行。
//
// 命令之间通过 state.config 指向的 JSON 文件共享当前配置，
// 导入页与编辑页之间的交接通过一次性槽完成（见 handoff 包）。
//
// 所有命令都支持 --verbose (-v) 输出调试日志，logger 经 context.Context 传递。
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion 设置 --version 输出的版本信息，通常由 main 在构建时注入。
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute 运行 stylepress 命令行。
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool
	var settingsPath string

	root := &cobra.Command{
		Use:          "stylepress",
		Short:        "stylepress 是一个样式配置编辑器",
		Long:         `stylepress 编辑一组样式配置（字体、按钮、图库、区块、描边），实时预览其效果，并导出为 JSON、PNG、JPEG 或 PDF。`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			s, err := loadSettings(settingsPath)
			if err != nil {
				return err
			}
			for _, k := range s.undecoded {
				logger.Warn("忽略未知配置项", "key", k)
			}
			ctx := withLogger(cmd.Context(), logger)
			cmd.SetContext(withSettings(ctx, s))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("stylepress %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&settingsPath, "config", "c", "", "settings file (default "+DefaultSettingsFile+")")

	root.AddCommand(newImportCmd())
	root.AddCommand(newEditCmd())
	root.AddCommand(newApplyCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newCheckCmd())

	return root
}
