package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce 合并编辑器保存时产生的连续事件。
const defaultDebounce = 150 * time.Millisecond

// fileWatcher 监听一组文件的变更。监听的是所在目录，
// 这样编辑器以"写临时文件再重命名"方式保存时也能收到事件。
type fileWatcher struct {
	w       *fsnotify.Watcher
	targets map[string]bool
	logger  *log.Logger
}

func newFileWatcher(paths []string, logger *log.Logger) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("创建文件监听失败: %w", err)
	}
	fw := &fileWatcher{w: w, targets: map[string]bool{}, logger: logger}
	dirs := map[string]bool{}
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, err
		}
		fw.targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("监听目录 %s 失败: %w", dir, err)
		}
	}
	return fw, nil
}

func (fw *fileWatcher) Close() error {
	return fw.w.Close()
}

// Run 在目标文件变更后调用 fn(path)，直到 ctx 结束。fn 在 Run 所在的 goroutine 中执行。
func (fw *fileWatcher) Run(ctx context.Context, debounce time.Duration, fn func(path string)) error {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	fire := make(chan string, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(ev.Name)
			if !fw.targets[name] || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			fw.logger.Debug("文件变更", "path", name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- name:
				default:
				}
			})
		case path := <-fire:
			fn(path)
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			fw.logger.Warn("文件监听出错", "err", err)
		}
	}
}
