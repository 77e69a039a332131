// Package display 保存界面侧最近一次收到的消息，并据此推算当前的游戏时长。
package display

import (
	"time"

	"github.com/moyu-x/minecraft-timer/internal"
	"github.com/moyu-x/minecraft-timer/pkg/timefmt"
)

// State 只由界面自身的拉取步骤更新，不跨 goroutine 共享
type State struct {
	last     *internal.Message
	received time.Time
	updates  int
}

// Apply 记录新消息，后到的消息总是覆盖之前的
func (s *State) Apply(msg internal.Message, now time.Time) {
	if !msg.Valid() {
		return
	}
	s.last = &msg
	s.received = now
	s.updates++
}

func (s *State) Last() (internal.Message, bool) {
	if s.last == nil {
		return internal.Message{}, false
	}
	return *s.last, true
}

func (s *State) Updates() int {
	return s.updates
}

// Since 返回推算起点：存档修改时间，缺失时使用收到消息的时间
func (s *State) Since() time.Time {
	if s.last == nil {
		return time.Time{}
	}
	if s.last.World != nil && !s.last.World.LastModified.IsZero() {
		return s.last.World.LastModified
	}
	return s.received
}

// Seconds 返回已累计的秒数加上自修改时间以来经过的秒数
func (s *State) Seconds(now time.Time) float64 {
	if s.last == nil {
		return 0
	}

	var played float64
	if s.last.Player != nil {
		played = s.last.Player.Seconds()
	}

	elapsed := now.Sub(s.Since()).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	return played + elapsed
}

// String 返回 HH:MM:SS，未收到任何消息时为 00:00:00
func (s *State) String(now time.Time) string {
	if s.last == nil {
		return internal.DefaultDisplay
	}
	return timefmt.FormatFloat(s.Seconds(now))
}
