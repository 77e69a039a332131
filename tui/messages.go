package tui

import (
	"time"

	"github.com/moyu-x/minecraft-timer/internal"
)

type clockTickMsg time.Time

type pollTickMsg time.Time

type timerMsg internal.Message

type noTimerMsg struct{}

type disconnectedMsg struct{}

type errMsg error
