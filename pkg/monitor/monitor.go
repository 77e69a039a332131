// Package monitor 驱动目录监听器：把归类后的事件转换为 Message 并投递给界面。
package monitor

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/moyu-x/minecraft-timer/internal"
	"github.com/moyu-x/minecraft-timer/pkg/logger"
	"github.com/moyu-x/minecraft-timer/pkg/mailbox"
	"github.com/moyu-x/minecraft-timer/pkg/stats"
	"github.com/moyu-x/minecraft-timer/pkg/watcher"
)

// Source 是事件来源，*watcher.Watcher 满足该接口
type Source interface {
	Events() <-chan watcher.Event
	Errors() <-chan error
	Close() error
}

// Publisher 接收监听线程产生的消息，*mailbox.Sender 满足该接口
type Publisher interface {
	Send(msg internal.Message) error
	Close()
}

type Monitor struct {
	source Source
	fs     afero.Fs
	out    Publisher
}

func New(source Source, fs afero.Fs, out Publisher) *Monitor {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Monitor{
		source: source,
		fs:     fs,
		out:    out,
	}
}

// Run 一直运行到 ctx 取消、事件源关闭或接收方离开，
// 这三种情况都属于正常退出，返回 nil。
func (m *Monitor) Run(ctx context.Context) error {
	defer m.out.Close()
	defer func() {
		if err := m.source.Close(); err != nil {
			logger.Get().Warn().Err(err).Msg("关闭监听器失败")
		}
	}()

	events := m.source.Events()
	errs := m.source.Errors()

	for {
		select {
		case <-ctx.Done():
			logger.Get().Info().Msg("监听线程收到停止信号")
			return nil

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Get().Warn().Err(err).Msg("文件系统通知出错，继续监听")

		case ev, ok := <-events:
			if !ok {
				logger.Get().Info().Msg("事件源已关闭，监听线程退出")
				return nil
			}

			msg, ok := m.Handle(ev)
			if !ok {
				continue
			}
			if err := m.out.Send(msg); err != nil {
				if errors.Is(err, mailbox.ErrClosed) {
					logger.Get().Info().Msg("接收方已关闭，监听线程退出")
					return nil
				}
				return err
			}
		}
	}
}

// Handle 处理单个事件。返回 false 表示该事件不产生消息。
func (m *Monitor) Handle(ev watcher.Event) (internal.Message, bool) {
	switch ev.Kind {
	case watcher.KindNewWorld:
		lastModified := ev.Time
		if info, err := m.fs.Stat(ev.Path); err == nil {
			lastModified = info.ModTime()
		} else {
			logger.Get().Debug().Err(err).Msgf("读取存档修改时间失败，使用事件时间: %s", ev.Path)
		}
		logger.Get().Info().Msgf("检测到新存档: %s", filepath.Base(ev.Path))
		return internal.Message{
			World: &internal.WorldInfo{
				Name:         filepath.Base(ev.Path),
				LastModified: lastModified,
			},
		}, true

	case watcher.KindStatsWritten:
		player, modTime, err := stats.ReadFile(m.fs, ev.Path)
		if err != nil {
			if errors.Is(err, stats.ErrNotFound) {
				logger.Get().Debug().Msgf("统计文件中没有游戏时长: %s", ev.Path)
			} else {
				logger.Get().Warn().Err(err).Msgf("跳过统计文件: %s", ev.Path)
			}
			return internal.Message{}, false
		}

		world := filepath.Base(filepath.Dir(filepath.Dir(ev.Path)))
		logger.Get().Debug().
			Str("world", world).
			Str("player", player.ID).
			Uint64("ticks", player.TicksPlayed).
			Msg("统计文件已更新")

		msg := internal.Message{Player: player}
		if !modTime.IsZero() {
			msg.World = &internal.WorldInfo{Name: world, LastModified: modTime}
		}
		return msg, true

	default:
		return internal.Message{}, false
	}
}

// Task 是后台监听任务的句柄，生命周期与进程相同，可通过 Stop 协作式退出
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	err    error
}

// Start 在独立的 goroutine 中运行监听线程
func (m *Monitor) Start(ctx context.Context) *Task {
	ctx, cancel := context.WithCancel(ctx)
	h := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(h.done)
		h.err = m.Run(ctx)
	}()
	return h
}

// Done 在监听线程退出后关闭
func (h *Task) Done() <-chan struct{} {
	return h.done
}

func (h *Task) Wait() error {
	<-h.done
	return h.err
}

func (h *Task) Stop() error {
	h.once.Do(h.cancel)
	return h.Wait()
}
