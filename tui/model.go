package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/minecraft-timer/pkg/display"
	"github.com/moyu-x/minecraft-timer/pkg/mailbox"
)

type model struct {
	saves        string
	receiver     *mailbox.Shared
	refresh      time.Duration
	pollTimeout  time.Duration
	clock        func() time.Time
	state        display.State
	now          time.Time
	spinner      spinner.Model
	disconnected bool
	err          error
}

func initialModel(cfg *Config) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		saves:       cfg.SavesDir,
		receiver:    cfg.Receiver,
		refresh:     cfg.Refresh,
		pollTimeout: cfg.PollTimeout,
		clock:       time.Now,
		now:         time.Now(),
		spinner:     s,
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		clockTick(),
		pollCmd(m.receiver, m.pollTimeout),
		m.spinner.Tick,
	)
}
