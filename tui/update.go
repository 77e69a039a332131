package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/minecraft-timer/internal"
	"github.com/moyu-x/minecraft-timer/pkg/logger"
	"github.com/moyu-x/minecraft-timer/pkg/mailbox"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case clockTickMsg:
		m.now = time.Time(msg)
		return m, clockTick()

	case pollTickMsg:
		return m, pollCmd(m.receiver, m.pollTimeout)

	case timerMsg:
		now := m.clock()
		m.state.Apply(internal.Message(msg), now)
		m.now = now
		logger.Get().Debug().Int("updates", m.state.Updates()).Msg("界面收到新消息")
		return m, pollCmd(m.receiver, m.pollTimeout)

	case noTimerMsg:
		return m, pollTick(m.refresh)

	case disconnectedMsg:
		m.disconnected = true
		logger.Get().Warn().Msg("监听线程已停止，界面不再更新")
		return m, nil

	case errMsg:
		m.err = msg
		return m, nil

	case spinner.TickMsg:
		if _, ok := m.state.Last(); !ok {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func pollTick(refresh time.Duration) tea.Cmd {
	return tea.Tick(refresh, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

// pollCmd 在 tea 的 goroutine 中限时等待下一条消息
func pollCmd(r *mailbox.Shared, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		msg, ok, err := r.RecvTimeout(timeout)
		if err != nil {
			if errors.Is(err, mailbox.ErrDisconnected) || errors.Is(err, mailbox.ErrClosed) {
				return disconnectedMsg{}
			}
			return errMsg(err)
		}
		if !ok {
			return noTimerMsg{}
		}
		return timerMsg(msg)
	}
}
