// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea program for the n1k4 terminal.
//
// The program has two screens. The login gateway collects an alias and
// shows the connection sequence; the chat screen shows the transcript,
// the input line and the status bar. All state lives in *app.App; the
// model only holds widgets and redraws when the app reports a change.
//
// # Key Types
//
//   - Model: The root tea.Model for both screens
//   - KeyMap: Keyboard bindings
//   - StateChangedMsg, SendDoneMsg: Messages delivered from app callbacks
//
// # Usage
//
//	err := chat.Run(ctx, a, chat.Options{AltScreen: true, Markdown: true})
package chat
