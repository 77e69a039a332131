package internal

import "time"

const (
	// Minecraft 根目录名与存档目录名
	MinecraftDirName = ".minecraft"
	SavesDirName     = "saves"
	StatsDirName     = "stats"
	StatsFileExt     = ".json"

	// 每秒游戏刻数
	TicksPerSecond = 20

	// 默认防抖窗口
	DefaultDebounce = time.Second

	// 界面拉取消息的默认间隔与单次等待超时
	DefaultRefresh     = 250 * time.Millisecond
	DefaultPollTimeout = 50 * time.Millisecond

	// scan 命令的默认并发数
	DefaultWorkers = 4

	// 尚未收到任何消息时的显示内容
	DefaultDisplay = "00:00:00"
)
