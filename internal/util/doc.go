// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides display-width helpers shared by the terminal front
// ends.
//
// # Key Functions
//
//   - TruncateWidth: Column-aware truncation with ellipsis
//   - PadRight: Column-aware padding
//   - Wrap: Column-aware line wrapping
//
// # Usage
//
//	// Fit a model name into the status bar
//	label := util.TruncateWidth(modelName, 24)
package util
