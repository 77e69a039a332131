package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minecraft-timer",
	Short: "实时显示 Minecraft 存档的游戏时长",
	Long: `Minecraft Timer 监听 ~/.minecraft/saves 目录，在存档写入玩家统计文件时
读取其中的游戏时长，并在终端中持续显示 HH:MM:SS 格式的计时。

主要功能:
- 递归监听存档目录，合并短时间内的大量文件事件
- 检测新建存档并立即从 00:00:00 开始计时
- 兼容不同版本统计文件的键名
- 一次性扫描所有存档的游戏时长`,
	SilenceUsage: true,
	RunE:         runWatch,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("saves", "", "存档目录 (默认: $HOME/.minecraft/saves)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "输出调试日志")

	addWatchFlags(rootCmd)
}
