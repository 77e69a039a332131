package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/minecraft-timer/pkg/logger"
	"github.com/moyu-x/minecraft-timer/pkg/mailbox"
)

type Config struct {
	SavesDir    string
	Receiver    *mailbox.Shared
	Refresh     time.Duration
	PollTimeout time.Duration
}

type teaModel struct {
	m *model
}

func (tm teaModel) Init() tea.Cmd {
	return tm.m.Init()
}

func (tm teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := tm.m.Update(msg)
	return tm, cmd
}

func (tm teaModel) View() string {
	return tm.m.View()
}

// Run 阻塞直到用户退出或 ctx 取消
func Run(ctx context.Context, config *Config) error {
	logger.Get().Info().Msg("启动 TUI 界面")

	m := initialModel(config)
	p := tea.NewProgram(teaModel{m: &m}, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		logger.Get().Info().Msg("收到停止信号，关闭 TUI")
		return nil
	}
	if err != nil {
		logger.Get().Error().Err(err).Msg("TUI 运行错误")
	} else {
		logger.Get().Info().Msg("TUI 正常退出")
	}

	return err
}
