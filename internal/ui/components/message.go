// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/n1k4/internal/model"
	"github.com/jeranaias/n1k4/internal/ui/styles"
	"github.com/jeranaias/n1k4/internal/util"
)

// =============================================================================
// MESSAGE RENDERER
// =============================================================================

// MessageRenderer renders transcript entries. Model replies go through
// glamour when markdown is enabled; user and system text is shown as typed.
type MessageRenderer struct {
	theme    *styles.Theme
	markdown bool
	style    string

	width int
	md    *glamour.TermRenderer
}

// NewMessageRenderer creates a renderer. style is a glamour standard style
// name ("dark", "light", "notty", "ascii").
func NewMessageRenderer(theme *styles.Theme, markdown bool, style string) *MessageRenderer {
	if style == "" {
		style = "dark"
	}
	return &MessageRenderer{theme: theme, markdown: markdown, style: style}
}

// SetWidth sets the transcript width. The glamour renderer is rebuilt
// lazily for the new wrap width.
func (r *MessageRenderer) SetWidth(width int) {
	if width != r.width {
		r.width = width
		r.md = nil
	}
}

// bodyWidth is the text width left inside a message block.
func (r *MessageRenderer) bodyWidth() int {
	w := r.width*85/100 - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (r *MessageRenderer) renderMarkdown(text string) (string, bool) {
	if !r.markdown {
		return "", false
	}
	if r.md == nil {
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(r.bodyWidth()),
		)
		if err != nil {
			r.markdown = false
			return "", false
		}
		r.md = md
	}
	out, err := r.md.Render(text)
	if err != nil {
		return "", false
	}
	return strings.Trim(out, "\n"), true
}

// Label renders the "NAME [HH:MM:SS]" line above a message.
func (r *MessageRenderer) Label(msg model.Message, alias string) string {
	var name lipgloss.Style
	switch msg.Role {
	case model.RoleUser:
		name = r.theme.UserLabel
	case model.RoleSystem:
		name = r.theme.SystemLabel
	default:
		name = r.theme.ModelLabel
	}
	return name.Render(msg.Role.DisplayName(alias)) + " " +
		r.theme.Timestamp.Render("["+msg.Clock()+"]")
}

// Render renders one message. User messages are right-aligned.
func (r *MessageRenderer) Render(msg model.Message, alias string) string {
	var body string
	switch msg.Role {
	case model.RoleUser:
		body = r.theme.UserBody.Render(util.Wrap(msg.Text, r.bodyWidth()))
	case model.RoleSystem:
		body = r.theme.SystemBody.Render(util.Wrap(msg.Text, r.bodyWidth()))
	default:
		text, ok := r.renderMarkdown(msg.Text)
		if !ok {
			text = util.Wrap(msg.Text, r.bodyWidth())
		}
		body = r.theme.ModelBody.Render(text)
	}

	if msg.Role == model.RoleUser {
		block := lipgloss.JoinVertical(lipgloss.Right, r.Label(msg, alias), body)
		if r.width > 0 {
			return lipgloss.PlaceHorizontal(r.width, lipgloss.Right, block)
		}
		return block
	}
	return lipgloss.JoinVertical(lipgloss.Left, r.Label(msg, alias), body)
}

// RenderAll renders the transcript, one blank line between messages.
func (r *MessageRenderer) RenderAll(msgs []model.Message, alias string) string {
	parts := make([]string, len(msgs))
	for i, m := range msgs {
		parts[i] = r.Render(m, alias)
	}
	return strings.Join(parts, "\n\n")
}

// RenderComputing renders the pending-reply row with the spinner frame.
func (r *MessageRenderer) RenderComputing(spinnerView string) string {
	label := r.theme.ModelLabel.Render(model.RoleModel.DisplayName(""))
	body := r.theme.ModelBody.Render(r.theme.Spinner.Render(spinnerView) + " " + r.theme.Computing.Render("COMPUTING..."))
	return lipgloss.JoinVertical(lipgloss.Left, label, body)
}
