package internal

import "time"

// 玩家统计信息，仅在读取到统计文件时存在
type PlayerStats struct {
	ID          string
	TicksPlayed uint64
}

// Seconds 将游戏刻换算为秒
func (p PlayerStats) Seconds() float64 {
	return float64(p.TicksPlayed) / TicksPerSecond
}

// 存档信息
type WorldInfo struct {
	Name         string
	LastModified time.Time
}

// Message 由监听线程在处理完一个事件后发出，发送后不再修改
type Message struct {
	Player *PlayerStats
	World  *WorldInfo
}

// Valid 报告消息是否至少携带了玩家或存档之一
func (m Message) Valid() bool {
	return m.Player != nil || m.World != nil
}

// 扫描结果
type ScanRecord struct {
	World        string
	Path         string
	Player       PlayerStats
	LastModified time.Time
	Err          error
}

// 扫描统计
type ScanStats struct {
	Worlds    int
	Files     int
	Failed    int
	StartTime time.Time
	EndTime   time.Time
}
