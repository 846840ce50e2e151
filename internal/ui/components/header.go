// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/n1k4/internal/session"
	"github.com/jeranaias/n1k4/internal/ui/styles"
)

// =============================================================================
// CHAT HEADER
// =============================================================================

// RenderHeader renders the target/uplink bar across width columns.
func RenderHeader(theme *styles.Theme, width int) string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		theme.HeaderLabel.Render("TARGET ID"),
		theme.HeaderValue.Render("N1K4.AI"),
	)
	right := lipgloss.JoinVertical(lipgloss.Right,
		theme.HeaderLabel.Render("UPLINK"),
		theme.HeaderPulse.Render("SECURE [256-BIT]"),
	)

	inner := width - theme.Header.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right)
	return theme.Header.Render(row)
}

// ISOTimestamp formats t the way the session banner shows it.
const ISOTimestamp = "2006-01-02T15:04:05.000Z"

// RenderBanner renders the connection banner at the top of the transcript.
func RenderBanner(theme *styles.Theme, sess session.Session, width int) string {
	lines := []string{
		"*** ENCRYPTED CONNECTION ESTABLISHED ***",
		"LOGGED IN AS: " + strings.ToUpper(sess.Username),
		sess.ConnectedAt.UTC().Format(ISOTimestamp),
	}
	style := theme.Banner
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(strings.Join(lines, "\n"))
}
