// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the n1k4 TUI.
//
// # Usage
//
//	theme := styles.NewTheme()
//	title := theme.GlitchTitle.Render("N1K4.ch47")
package styles
