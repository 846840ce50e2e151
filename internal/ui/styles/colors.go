// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the n1k4 TUI.
// The palette is fixed green-on-black; AdaptiveColor only softens the
// dim tones on light terminals.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// TERMINAL GREEN
// =============================================================================

// HackerGreen - Primary text, borders, model messages
var HackerGreen = lipgloss.Color("#00FF41")

// HackerGreenDim - Labels, hints, the login subtitle
var HackerGreenDim = lipgloss.AdaptiveColor{Light: "#007A1F", Dark: "#00A82B"}

// HackerGreenDeep - Panel backgrounds and faint separators
var HackerGreenDeep = lipgloss.AdaptiveColor{Light: "#C8F7D2", Dark: "#003B0F"}

// HackerGray - Input backgrounds, disabled controls
var HackerGray = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#1A1A1A"}

// =============================================================================
// ACCENT COLORS
// =============================================================================

// OperatorBlue - User labels and message borders
var OperatorBlue = lipgloss.Color("#60A5FA")

// OperatorBlueText - User message text
var OperatorBlueText = lipgloss.AdaptiveColor{Light: "#1E3A8A", Dark: "#DBEAFE"}

// AlertRed - System messages and failures
var AlertRed = lipgloss.Color("#FF3B3B")

// GlitchCyan and GlitchMagenta are the chromatic ghosts behind the title.
var (
	GlitchCyan    = lipgloss.Color("#22D3EE")
	GlitchMagenta = lipgloss.Color("#3B82F6")
)

// TextMuted - Timestamps
var TextMuted = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}

// Black - Text on green backgrounds
var Black = lipgloss.Color("#000000")
