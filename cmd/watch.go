package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/moyu-x/minecraft-timer/app"
	"github.com/moyu-x/minecraft-timer/config"
	"github.com/moyu-x/minecraft-timer/internal"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "监听存档目录并显示游戏时长",
	Long: `递归监听存档目录中的文件变化:
1. 新建存档时立即显示 00:00:00
2. 玩家统计文件写入时读取游戏时长
3. 在两次写入之间按系统时间持续累加`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func addWatchFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("debounce", 0, "事件防抖窗口 (默认: 1s)")
	cmd.Flags().Bool("headless", false, "不启动界面，只输出日志")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if saves, _ := cmd.Flags().GetString("saves"); saves != "" {
		cfg.Minecraft.Saves = saves
	}
	savesDir, err := cfg.SavesDir()
	if err != nil {
		return err
	}

	debounce := cfg.Watcher.Debounce
	if d, _ := cmd.Flags().GetDuration("debounce"); d > 0 {
		debounce = d
	}
	headless, _ := cmd.Flags().GetBool("headless")
	verbose, _ := cmd.Flags().GetBool("verbose")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.RunWatch(ctx, &app.WatchOptions{
		SavesDir:    savesDir,
		Debounce:    debounce,
		Refresh:     positive(cfg.Display.Refresh, internal.DefaultRefresh),
		PollTimeout: positive(cfg.Display.PollTimeout, internal.DefaultPollTimeout),
		Headless:    headless,
		Verbose:     verbose,
		LogLevel:    cfg.Logging.Level,
		LogFile:     cfg.Logging.File,
	})
}

func positive(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}

func init() {
	addWatchFlags(watchCmd)

	rootCmd.AddCommand(watchCmd)
}
