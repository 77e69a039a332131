package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/minecraft-timer/internal"
	"github.com/moyu-x/minecraft-timer/pkg/display"
	"github.com/moyu-x/minecraft-timer/pkg/logger"
	"github.com/moyu-x/minecraft-timer/pkg/mailbox"
	"github.com/moyu-x/minecraft-timer/pkg/monitor"
	"github.com/moyu-x/minecraft-timer/pkg/watcher"
	"github.com/moyu-x/minecraft-timer/tui"
)

type WatchOptions struct {
	SavesDir    string
	Debounce    time.Duration
	Refresh     time.Duration
	PollTimeout time.Duration
	Headless    bool
	Verbose     bool
	LogLevel    string
	LogFile     string
}

func RunWatch(ctx context.Context, opts *WatchOptions) error {
	logLevel := opts.LogLevel
	if opts.Verbose {
		logLevel = "debug"
	}

	// TUI 占用终端时日志只写文件
	if err := logger.Init(logLevel, opts.LogFile, opts.Headless); err != nil {
		return err
	}

	logger.Get().Info().Msgf("存档目录: %s", opts.SavesDir)

	w, err := watcher.New(opts.SavesDir, watcher.WithDebounce(opts.Debounce))
	if err != nil {
		return fmt.Errorf("启动目录监听失败: %w", err)
	}

	sender, receiver := mailbox.New()
	task := monitor.New(w, afero.NewOsFs(), sender).Start(ctx)
	shared := mailbox.NewShared(receiver)

	if opts.Headless {
		err = runHeadless(ctx, shared, opts)
	} else {
		err = tui.Run(ctx, &tui.Config{
			SavesDir:    opts.SavesDir,
			Receiver:    shared,
			Refresh:     opts.Refresh,
			PollTimeout: opts.PollTimeout,
		})
	}

	shared.Close()
	if stopErr := task.Stop(); stopErr != nil {
		logger.Get().Error().Err(stopErr).Msg("监听线程异常退出")
		if err == nil {
			err = stopErr
		}
	}

	return err
}

// runHeadless 不启动界面，按刷新间隔拉取消息并写日志
func runHeadless(ctx context.Context, r *mailbox.Shared, opts *WatchOptions) error {
	ticker := time.NewTicker(opts.Refresh)
	defer ticker.Stop()

	var state display.State
	logger.Get().Info().Str("time", internal.DefaultDisplay).Msg("等待存档写入统计数据")

	for {
		select {
		case <-ctx.Done():
			logger.Get().Info().Str("time", state.String(time.Now())).Msg("停止监听")
			return nil
		case <-ticker.C:
		}

		msg, ok, err := r.RecvTimeout(opts.PollTimeout)
		if err != nil {
			if errors.Is(err, mailbox.ErrDisconnected) {
				logger.Get().Warn().Msg("监听线程已停止")
				return nil
			}
			return err
		}
		if !ok {
			continue
		}

		now := time.Now()
		state.Apply(msg, now)

		event := logger.Get().Info().Str("time", state.String(now))
		if msg.World != nil {
			event = event.Str("world", msg.World.Name)
		}
		if msg.Player != nil {
			event = event.Str("player", msg.Player.ID).Uint64("ticks", msg.Player.TicksPlayed)
		}
		event.Msg("游戏时长已更新")
	}
}
