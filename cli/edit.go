package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ByLCY/stylepress/dsl"
	"github.com/ByLCY/stylepress/handoff"
	"github.com/ByLCY/stylepress/preview"
	"github.com/ByLCY/stylepress/region"
	"github.com/ByLCY/stylepress/style"
	"github.com/ByLCY/stylepress/tui"
)

type editOpts struct {
	script string // 打开面板前执行的编辑脚本
	watch  bool   // 脚本变更后重新执行
	design string // 直接载入的设计稿，优先于交接槽
}

func newEditCmd() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive style editor",
		Long: `打开终端编辑面板。

启动时读取一次交接槽中由 import 暂存的配置与设计稿（读取即删除），
退出时将当前配置写回 state.config。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFromContext(cmd.Context())
			var nav *handoff.Payload
			if opts.design != "" {
				d, err := loadDesign(opts.design)
				if err != nil {
					return err
				}
				nav = &handoff.Payload{Image: d.Source, ImageType: d.MIMEType}
			}
			return runEdit(cmd.Context(), s, nav, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "edit script applied before the panel opens")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-apply --script whenever it changes")
	cmd.Flags().StringVarP(&opts.design, "design", "d", "", "design image to preview instead of the sample page")
	return cmd
}

// editSession 是编辑面板启动前准备好的状态。
type editSession struct {
	store     *style.Store
	overrides *region.Overrides
	content   preview.Content
	notice    string

	scriptRegions []uuid.UUID // 上一次执行编辑脚本新增的选区
}

// openSession 读取当前配置并消费交接槽。
func openSession(ctx context.Context, s Settings, nav *handoff.Payload) (*editSession, error) {
	logger := loggerFromContext(ctx)

	cfg, err := loadState(s.State.Config)
	if err != nil {
		return nil, err
	}
	slots, closeSlots, err := openSlots(ctx, s.Slots, logger)
	if err != nil {
		return nil, err
	}
	defer closeSlots()

	h, err := handoff.Consume(ctx, nav, slots)
	if err != nil {
		return nil, fmt.Errorf("读取交接槽失败: %w", err)
	}

	sess := &editSession{overrides: region.NewOverrides()}
	if h.ConfigErr != nil {
		logger.Warn("交接的配置无效，保留当前配置", "err", h.ConfigErr)
		sess.notice = "导入的配置无效，已保留当前配置"
	}
	if h.Config != nil {
		cfg = *h.Config
		logger.Info("已载入导入的配置")
	}
	if h.Design != nil {
		logger.Info("已载入设计稿", "type", h.Design.MIMEType)
	}
	sess.store = style.NewStore(cfg)
	sess.content = previewContent(h.Design)
	return sess, nil
}

func (sess *editSession) applyScript(path string) (dsl.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dsl.Result{}, fmt.Errorf("读取编辑脚本失败: %w", err)
	}
	res, err := dsl.ApplyString(string(data), sess.store, sess.overrides)
	if err != nil {
		return res, err
	}
	// 重新执行时替换上一轮的选区，面板里手动画的选区不受影响
	for _, id := range sess.scriptRegions {
		sess.overrides.Remove(id)
	}
	sess.scriptRegions = res.Regions
	return res, nil
}

func runEdit(ctx context.Context, s Settings, nav *handoff.Payload, opts editOpts) error {
	logger := loggerFromContext(ctx)

	sess, err := openSession(ctx, s, nav)
	if err != nil {
		return err
	}
	if opts.script != "" {
		res, err := sess.applyScript(opts.script)
		if err != nil {
			return err
		}
		logger.Info("已执行编辑脚本", "statements", res.Applied, "regions", len(res.Regions))
	}

	model := tui.New(sess.store, tui.Options{
		Content:   sess.content,
		Exporter:  newExporter(s),
		Overrides: sess.overrides,
		Notice:    sess.notice,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	// 订阅回调不能同步调用 p.Send
	cancel := sess.store.Subscribe(func(style.Config) { go p.Send(tui.ConfigChangedMsg{}) })
	defer cancel()

	if opts.watch && opts.script != "" {
		fw, err := newFileWatcher([]string{opts.script}, logger)
		if err != nil {
			return err
		}
		defer fw.Close()
		watchCtx, stop := context.WithCancel(ctx)
		defer stop()
		go func() {
			_ = fw.Run(watchCtx, defaultDebounce, func(path string) {
				res, err := sess.applyScript(path)
				if err != nil {
					p.Send(tui.NoticeMsg("重新执行编辑脚本失败: " + err.Error()))
					return
				}
				p.Send(tui.NoticeMsg(fmt.Sprintf("已重新执行编辑脚本（%d 条语句）", res.Applied)))
			})
		}()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("编辑面板异常退出: %w", err)
	}

	if err := saveState(s.State.Config, sess.store.Current()); err != nil {
		return err
	}
	printSuccess("已保存当前配置")
	printFile(s.State.Config)
	return ctx.Err()
}
