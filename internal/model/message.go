// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat messages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the author of a message.
type Role string

const (
	RoleUser   Role = "user"
	RoleModel  Role = "model"
	RoleSystem Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns the label shown above a message.
// User messages are labelled with the session alias.
func (r Role) DisplayName(alias string) string {
	switch r {
	case RoleUser:
		if alias == "" {
			return "YOU"
		}
		return alias
	case RoleModel:
		return "N1K4"
	case RoleSystem:
		return "SYSTEM"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in the chat log. Messages are values; once
// appended to a Log they are never modified.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message with a fresh ID stamped at the current time.
func NewMessage(role Role, text string) Message {
	return NewMessageAt(role, text, time.Now())
}

// NewMessageAt creates a message with a fresh ID and an explicit timestamp.
func NewMessageAt(role Role, text string, ts time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: ts,
	}
}

// IsError reports whether the message should be presented with error styling.
func (m Message) IsError() bool {
	return m.Role == RoleSystem
}

// Clock returns the 24-hour HH:MM:SS timestamp shown next to the author label.
func (m Message) Clock() string {
	return m.Timestamp.Format("15:04:05")
}

// Preview returns a truncated preview of the message text.
// Uses rune-based truncation to handle Unicode correctly. A negative
// maxLen is treated as zero.
func (m Message) Preview(maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
