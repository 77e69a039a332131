package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("⛏ Minecraft 游戏时长") + "\n")
	b.WriteString(labelStyle.Render("存档目录：") + filePathStyle.Render(m.saves) + "\n\n")

	b.WriteString(clockStyle.Render(m.state.String(m.now)) + "\n\n")

	last, ok := m.state.Last()
	switch {
	case !ok:
		b.WriteString(m.spinner.View() + " 等待存档写入统计数据...\n")
	default:
		if last.World != nil {
			b.WriteString(labelStyle.Render("存档：    ") + valueStyle.Render(last.World.Name) + "\n")
		}
		if last.Player != nil {
			b.WriteString(labelStyle.Render("玩家：    ") + valueStyle.Render(last.Player.ID) + "\n")
			b.WriteString(labelStyle.Render("累计刻数：") + valueStyle.Render(fmt.Sprintf("%d", last.Player.TicksPlayed)) + "\n")
		}
		b.WriteString(labelStyle.Render("最近更新：") + valueStyle.Render(m.state.Since().Format("15:04:05")) + "\n")
	}

	if m.disconnected {
		b.WriteString("\n" + warningStyle.Render("⚠ 监听已停止，显示的时间不再更新") + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("错误: %v", m.err)) + "\n")
	}

	b.WriteString("\n" + hintStyle.Render("按 q 退出") + "\n")

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(b.String())
}
