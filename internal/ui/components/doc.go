// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the n1k4 TUI.
//
// Components are pure render functions over plain values so the screens in
// package chat stay thin and the output can be tested without a terminal.
//
// # Key Components
//
//   - RenderLogin: The gateway box with glitch title and stage progress
//   - RenderHeader, RenderBanner: The chat screen header and session banner
//   - MessageRenderer: Labelled message blocks, markdown via glamour
//   - RenderStatusBar: Mode, model and operator summary
package components
