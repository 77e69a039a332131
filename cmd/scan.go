package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/moyu-x/minecraft-timer/app"
	"github.com/moyu-x/minecraft-timer/config"
	"github.com/moyu-x/minecraft-timer/internal"
	"github.com/moyu-x/minecraft-timer/pkg/logger"
	"github.com/moyu-x/minecraft-timer/pkg/stats"
	"github.com/moyu-x/minecraft-timer/pkg/timefmt"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	worldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "扫描所有存档并列出每个玩家的游戏时长",
	Args:  cobra.NoArgs,
	RunE:  runScan,
}

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "读取单个统计文件中的游戏时长",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func runScan(cmd *cobra.Command, args []string) error {
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

	workers, _ := cmd.Flags().GetInt("workers")
	if workers <= 0 {
		workers = cfg.Scan.Workers
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	records, scanStats, err := app.RunScan(&app.ScanOptions{
		SavesDir: savesDir,
		Workers:  workers,
		Verbose:  verbose,
		LogLevel: cfg.Logging.Level,
		LogFile:  cfg.Logging.File,
	})
	if err != nil {
		return err
	}

	printScanReport(records, scanStats)
	return nil
}

func printScanReport(records []internal.ScanRecord, scanStats *internal.ScanStats) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("%-24s %-38s %10s", "存档", "玩家", "游戏时长")))
	fmt.Println(strings.Repeat("─", 76))

	for _, r := range records {
		if r.Err != nil {
			fmt.Println(failStyle.Render(fmt.Sprintf("%-24s %-38s %10s", r.World, stats.PlayerID(r.Path), "-")))
			continue
		}
		fmt.Printf("%s %-38s %10s\n",
			worldStyle.Render(fmt.Sprintf("%-24s", r.World)),
			r.Player.ID,
			timefmt.FormatFloat(r.Player.Seconds()))
	}

	logger.Get().Info().
		Int("worlds", scanStats.Worlds).
		Int("files", scanStats.Files).
		Int("failed", scanStats.Failed).
		Dur("duration", scanStats.EndTime.Sub(scanStats.StartTime)).
		Msg("扫描完成")
}

func runExtract(cmd *cobra.Command, args []string) error {
	player, modTime, err := app.ExtractFile(args[0])
	if err != nil {
		return fmt.Errorf("读取统计文件失败: %w", err)
	}

	fmt.Printf("玩家:     %s\n", player.ID)
	fmt.Printf("游戏刻:   %d\n", player.TicksPlayed)
	fmt.Printf("秒:       %.2f\n", player.Seconds())
	fmt.Printf("游戏时长: %s\n", timefmt.FormatFloat(player.Seconds()))
	fmt.Printf("修改时间: %s\n", modTime.Format("2006-01-02 15:04:05"))
	return nil
}

func init() {
	scanCmd.Flags().Int("workers", 0, "并发读取数 (默认: 4)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(extractCmd)
}
