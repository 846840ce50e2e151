// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/n1k4/internal/ui/components"
)

// View renders the active screen.
func (m Model) View() string {
	if m.state == StateLogin {
		return m.loginView()
	}
	return m.chatView()
}

func (m Model) loginView() string {
	return components.RenderLogin(m.theme, m.progress, components.LoginView{
		InputView: m.login.View(),
		Alias:     m.login.Value(),
		MinLength: m.app.MinUsernameLength(),
		Status:    m.app.Status(),
		Frame:     m.frame,
	}, m.width, m.height)
}

func (m Model) chatView() string {
	sess := m.app.Session()
	status := components.RenderStatusBar(m.theme, components.StatusInfo{
		Mode:       m.app.Mode(),
		Model:      m.app.ModelName(),
		Alias:      sess.Username,
		Messages:   len(m.app.Messages()),
		Processing: m.app.IsProcessing(),
	}, m.width)

	footer := m.help.View(m.keys)
	if m.lastErr != nil {
		footer = m.theme.SystemLabel.Render("! " + m.lastErr.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.RenderHeader(m.theme, m.width),
		m.viewport.View(),
		m.theme.InputContainer.Width(m.width-m.theme.InputContainer.GetHorizontalBorderSize()).Render(m.input.View()),
		status,
		footer,
	)
}
