// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// CONNECTION STATUS
// =============================================================================

// Status is the connection stage shown on the login screen.
// Stages only ever advance, one at a time.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
	StatusEncrypted
)

// String returns the label displayed for the stage.
func (s Status) String() string {
	switch s {
	case StatusDisconnected:
		return "DISCONNECTED"
	case StatusConnecting:
		return "CONNECTING..."
	case StatusConnected:
		return "CONNECTED"
	case StatusEncrypted:
		return "ENCRYPTED"
	default:
		return "UNKNOWN"
	}
}

// Detail returns the flavor line shown under the stage label.
func (s Status) Detail() string {
	switch s {
	case StatusConnecting:
		return "Handshaking..."
	case StatusConnected:
		return "Bypassing Firewalls..."
	case StatusEncrypted:
		return "Establishing Neural Link..."
	default:
		return ""
	}
}

// Next returns the stage that follows s. The second value is false for the
// last stage.
func (s Status) Next() (Status, bool) {
	if s < StatusDisconnected || s >= StatusEncrypted {
		return s, false
	}
	return s + 1, true
}

// Stages lists the stages a login passes through after submission, in order.
func Stages() []Status {
	return []Status{StatusConnecting, StatusConnected, StatusEncrypted}
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the operator identity. It is empty and logged out at startup
// and set exactly once when the connection sequence completes.
type Session struct {
	Username    string
	IsLoggedIn  bool
	ConnectedAt time.Time
}

// MinUsernameLength is the shortest alias accepted by SubmitLogin.
const MinUsernameLength = 3

// NormalizeUsername trims surrounding space and upper-cases the alias.
func NormalizeUsername(name string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(name))
}

// ValidUsername reports whether a normalized alias is long enough.
func ValidUsername(alias string, minLen int) bool {
	if minLen <= 0 {
		minLen = MinUsernameLength
	}
	return utf8.RuneCountInString(alias) >= minLen
}
