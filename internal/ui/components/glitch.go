// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/n1k4/internal/ui/styles"
)

// Title is the gateway title.
const Title = "N1K4.ch47"

// glitchGlyphs replace a title character on glitch frames.
var glitchGlyphs = []rune("#%&@$!?/")

// GlitchFrame returns title with one character corrupted on every fourth
// frame. Other frames return title unchanged.
func GlitchFrame(title string, frame int) string {
	runes := []rune(title)
	if len(runes) == 0 || frame < 0 || frame%4 != 3 {
		return title
	}
	n := frame / 4
	runes[n%len(runes)] = glitchGlyphs[n%len(glitchGlyphs)]
	return string(runes)
}

// RenderGlitchTitle renders title between chromatic ghost edges that swap
// sides every frame.
func RenderGlitchTitle(theme *styles.Theme, title string, frame int) string {
	left, right := theme.GlitchGhostA, theme.GlitchGhostB
	if frame%2 == 1 {
		left, right = right, left
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		left.Render("▌"),
		theme.GlitchTitle.Render(GlitchFrame(title, frame)),
		right.Render("▐"),
	)
}
