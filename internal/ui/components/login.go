// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/n1k4/internal/session"
	"github.com/jeranaias/n1k4/internal/ui/styles"
	"github.com/jeranaias/n1k4/internal/util"
)

// =============================================================================
// LOGIN GATEWAY
// =============================================================================

// LoginView is everything the gateway box shows.
type LoginView struct {
	InputView string         // rendered alias input
	Alias     string         // current input value
	MinLength int            // shortest alias the button accepts
	Status    session.Status // connection stage
	Frame     int            // glitch animation frame
}

// NewStageProgress returns the bar shown while the sequence runs.
func NewStageProgress() progress.Model {
	return progress.New(
		progress.WithSolidFill(string(styles.HackerGreen)),
		progress.WithoutPercentage(),
		progress.WithWidth(34),
	)
}

// StageProgress maps a connection stage to bar completion.
func StageProgress(s session.Status) float64 {
	stages := session.Stages()
	for i, st := range stages {
		if st == s {
			return float64(i+1) / float64(len(stages))
		}
	}
	return 0
}

// RenderLogin renders the gateway box centered in width x height.
func RenderLogin(theme *styles.Theme, bar progress.Model, v LoginView, width, height int) string {
	var b strings.Builder

	b.WriteString(RenderGlitchTitle(theme, Title, v.Frame))
	b.WriteString("\n")
	b.WriteString(theme.LoginSubtitle.Render("SECURE TERMINAL GATEWAY"))
	b.WriteString("\n")

	if v.Status == session.StatusDisconnected {
		b.WriteString(theme.LoginLabel.Render("ENTER IDENTITY ALIAS"))
		b.WriteString("\n")
		b.WriteString(theme.LoginInput.Render(v.InputView))
		b.WriteString("\n")

		button := theme.ButtonDisabled
		if util.RuneLen(strings.TrimSpace(v.Alias)) >= v.MinLength {
			button = theme.Button
		}
		b.WriteString(button.Render("[ INITIALIZE UPLINK ]"))
	} else {
		b.WriteString("\n")
		b.WriteString(bar.ViewAs(StageProgress(v.Status)))
		b.WriteString("\n")
		b.WriteString(theme.StageStatus.Render(v.Status.String()))
		b.WriteString("\n")
		b.WriteString(theme.StageDetail.Render(v.Status.Detail()))
	}

	box := theme.LoginBox.Render(b.String())
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
