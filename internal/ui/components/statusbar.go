// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/n1k4/internal/gemini"
	"github.com/jeranaias/n1k4/internal/ui/styles"
	"github.com/jeranaias/n1k4/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusInfo is the data shown in the status bar.
type StatusInfo struct {
	Mode       gemini.Mode
	Model      string
	Alias      string
	Messages   int
	Processing bool
}

// RenderStatusBar renders a single-line status bar width columns wide.
// The model name is truncated first when space runs out.
func RenderStatusBar(theme *styles.Theme, info StatusInfo, width int) string {
	modeStyle := theme.ModeFallback
	if info.Mode == gemini.ModeRemote {
		modeStyle = theme.ModeRemote
	}
	mode := modeStyle.Render(info.Mode.String())

	state := "READY"
	if info.Processing {
		state = "BUSY"
	}
	right := theme.StatusMuted.Render(fmt.Sprintf("%s | MSGS %d | %s", info.Alias, info.Messages, state))

	room := width - lipgloss.Width(mode) - lipgloss.Width(right) - 2
	name := ""
	if room > 0 {
		name = util.TruncateWidth(info.Model, room)
	}
	middle := theme.StatusBar.Render(" " + util.PadRight(name, room+1))

	bar := lipgloss.JoinHorizontal(lipgloss.Top, mode, middle, right)
	if width > 0 && lipgloss.Width(bar) > width {
		return lipgloss.NewStyle().MaxWidth(width).Render(bar)
	}
	return bar
}
