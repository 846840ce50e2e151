// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// LOGIN SCREEN STYLES
	// ==========================================================================

	LoginBox       lipgloss.Style
	GlitchTitle    lipgloss.Style
	GlitchGhostA   lipgloss.Style
	GlitchGhostB   lipgloss.Style
	LoginSubtitle  lipgloss.Style
	LoginLabel     lipgloss.Style
	LoginInput     lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	StageStatus    lipgloss.Style
	StageDetail    lipgloss.Style

	// ==========================================================================
	// CHAT HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderLabel lipgloss.Style
	HeaderValue lipgloss.Style
	HeaderPulse lipgloss.Style
	Banner      lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserLabel   lipgloss.Style
	ModelLabel  lipgloss.Style
	SystemLabel lipgloss.Style
	Timestamp   lipgloss.Style
	UserBody    lipgloss.Style
	ModelBody   lipgloss.Style
	SystemBody  lipgloss.Style

	// ==========================================================================
	// INPUT AND STATUS STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	Computing      lipgloss.Style
	Spinner        lipgloss.Style
	StatusBar      lipgloss.Style
	ModeRemote     lipgloss.Style
	ModeFallback   lipgloss.Style
	StatusMuted    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Login
	t.LoginBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(HackerGreen).
		Padding(1, 4).
		Width(44).
		Align(lipgloss.Center)

	t.GlitchTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(HackerGreen)

	t.GlitchGhostA = lipgloss.NewStyle().Foreground(GlitchCyan)
	t.GlitchGhostB = lipgloss.NewStyle().Foreground(GlitchMagenta)

	t.LoginSubtitle = lipgloss.NewStyle().
		Foreground(HackerGreenDim).
		MarginBottom(1)

	t.LoginLabel = lipgloss.NewStyle().
		Foreground(HackerGreenDim)

	t.LoginInput = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(HackerGreenDim).
		Foreground(HackerGreen).
		Width(30).
		Align(lipgloss.Center)

	t.Button = lipgloss.NewStyle().
		Bold(true).
		Foreground(Black).
		Background(HackerGreen).
		Padding(0, 2).
		MarginTop(1)

	t.ButtonDisabled = lipgloss.NewStyle().
		Foreground(HackerGreenDim).
		Background(HackerGray).
		Padding(0, 2).
		MarginTop(1)

	t.StageStatus = lipgloss.NewStyle().
		Bold(true).
		Foreground(HackerGreen).
		MarginTop(1)

	t.StageDetail = lipgloss.NewStyle().
		Foreground(HackerGreenDim)

	// Header
	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(HackerGreenDim).
		Padding(0, 1)

	t.HeaderLabel = lipgloss.NewStyle().Foreground(HackerGreenDim)
	t.HeaderValue = lipgloss.NewStyle().Bold(true).Foreground(HackerGreen)
	t.HeaderPulse = lipgloss.NewStyle().Foreground(HackerGreen).Blink(true)

	t.Banner = lipgloss.NewStyle().
		Foreground(HackerGreenDim).
		Align(lipgloss.Center).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(HackerGreenDeep).
		MarginBottom(1)

	// Messages
	t.UserLabel = lipgloss.NewStyle().Bold(true).Foreground(OperatorBlue)
	t.ModelLabel = lipgloss.NewStyle().Bold(true).Foreground(HackerGreen)
	t.SystemLabel = lipgloss.NewStyle().Bold(true).Foreground(AlertRed)
	t.Timestamp = lipgloss.NewStyle().Foreground(TextMuted)

	t.UserBody = lipgloss.NewStyle().
		Foreground(OperatorBlueText).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(OperatorBlue).
		PaddingLeft(1)

	t.ModelBody = lipgloss.NewStyle().
		Foreground(HackerGreen).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(HackerGreen).
		PaddingLeft(1)

	t.SystemBody = lipgloss.NewStyle().
		Foreground(AlertRed).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(AlertRed).
		PaddingLeft(1)

	// Input and status
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(HackerGreenDim).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().Bold(true).Foreground(HackerGreen)
	t.Computing = lipgloss.NewStyle().Foreground(HackerGreenDim)
	t.Spinner = lipgloss.NewStyle().Foreground(HackerGreen)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(HackerGreenDim).
		Background(HackerGreenDeep)

	t.ModeRemote = lipgloss.NewStyle().Bold(true).Foreground(Black).Background(HackerGreen).Padding(0, 1)
	t.ModeFallback = lipgloss.NewStyle().Bold(true).Foreground(Black).Background(HackerGreenDim).Padding(0, 1)
	t.StatusMuted = lipgloss.NewStyle().Foreground(HackerGreenDim).Background(HackerGreenDeep).Padding(0, 1)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
