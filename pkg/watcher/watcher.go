// Package watcher 递归监听存档目录，合并事件风暴并把原始通知归类为领域事件。
package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/moyu-x/minecraft-timer/internal"
	"github.com/moyu-x/minecraft-timer/pkg/logger"
	"github.com/moyu-x/minecraft-timer/pkg/scanner"
)

var (
	ErrWatchInit = errors.New("watcher: init failed")
	ErrWatchRoot = errors.New("watcher: cannot watch root")
)

const minFlushInterval = 10 * time.Millisecond

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithFs 指定用于遍历新目录的文件系统，fsnotify 本身始终监听真实路径
func WithFs(fs afero.Fs) Option {
	return func(w *Watcher) {
		w.fs = fs
	}
}

type Watcher struct {
	root     string
	debounce time.Duration
	fs       afero.Fs
	walker   *scanner.FileWalker
	fsw      *fsnotify.Watcher

	events chan Event
	errors chan error
	done   chan struct{}

	closeOnce sync.Once
	closeErr  error
	wg        sync.WaitGroup
}

// New 注册 root 及其全部子目录并启动事件循环。
// 无法创建底层监听器或无法注册 root 时返回错误，调用方应视为致命错误。
func New(root string, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		root:     filepath.Clean(root),
		debounce: internal.DefaultDebounce,
		fs:       afero.NewOsFs(),
		events:   make(chan Event),
		errors:   make(chan error, 16),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.walker = scanner.NewFileWalker(w.fs)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatchInit, err)
	}
	w.fsw = fsw

	dirs, err := w.walker.Dirs(w.root)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrWatchRoot, w.root, err)
	}
	if err := fsw.Add(w.root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrWatchRoot, w.root, err)
	}
	for _, dir := range dirs {
		if dir == w.root {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			logger.Get().Warn().Err(err).Msgf("注册子目录监听失败: %s", dir)
		}
	}

	logger.Get().Info().
		Str("root", w.root).
		Int("dirs", len(dirs)).
		Dur("debounce", w.debounce).
		Msg("开始监听存档目录")

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Events 返回归类后的事件，Close 之后通道被关闭
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors 返回底层通知的瞬时错误
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.closeErr = w.fsw.Close()
		w.wg.Wait()
		logger.Get().Info().Str("root", w.root).Msg("停止监听存档目录")
	})
	return w.closeErr
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	defer close(w.events)
	defer close(w.errors)

	interval := w.debounce / 2
	if interval < minFlushInterval {
		interval = minFlushInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	pending := newDebouncer(w.debounce)

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleRaw(pending, ev, time.Now())

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				logger.Get().Warn().Err(err).Msg("错误通道已满，丢弃监听错误")
			}

		case now := <-ticker.C:
			for _, p := range pending.due(now) {
				kind := Classify(w.root, p.op, p.path)
				if kind == KindIgnored {
					logger.Get().Debug().Str("op", p.op.String()).Msgf("忽略事件: %s", p.path)
					continue
				}
				select {
				case w.events <- Event{Kind: kind, Path: p.path, Op: p.op, Time: p.last}:
				case <-w.done:
					return
				}
			}
		}
	}
}

func (w *Watcher) handleRaw(pending *debouncer, ev fsnotify.Event, now time.Time) {
	logger.Get().Debug().Str("op", ev.Op.String()).Msgf("收到文件系统事件: %s", ev.Name)

	// 目录本身先入队，保证新存档排在其中已有统计文件之前
	pending.record(filepath.Clean(ev.Name), ev.Op, now)

	if ev.Has(fsnotify.Create) {
		if info, err := w.fs.Stat(ev.Name); err == nil && info.IsDir() {
			w.addTree(pending, ev.Name, now)
		}
	}
}

// addTree 为新建目录及其子目录注册监听。
// 注册之前就已写入的统计文件不会再产生通知，这里补记为 Create 事件。
func (w *Watcher) addTree(pending *debouncer, dir string, now time.Time) {
	dirs, err := w.walker.Dirs(dir)
	if err != nil {
		logger.Get().Warn().Err(err).Msgf("遍历新目录失败: %s", dir)
		return
	}

	for _, d := range dirs {
		if err := w.fsw.Add(d); err != nil {
			logger.Get().Warn().Err(err).Msgf("注册目录监听失败: %s", d)
			continue
		}
		logger.Get().Debug().Msgf("新增目录监听: %s", d)
	}

	err = w.walker.Walk(dir, func(path string, info os.FileInfo) error {
		if scanner.IsStatsFile(path) {
			pending.record(filepath.Clean(path), fsnotify.Create, now)
		}
		return nil
	})
	if err != nil {
		logger.Get().Warn().Err(err).Msgf("补记统计文件失败: %s", dir)
	}
}
