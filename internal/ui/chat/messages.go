// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "time"

// StateChangedMsg reports that app state changed and the view must be
// rebuilt. It is sent from app subscriptions on arbitrary goroutines.
type StateChangedMsg struct{}

// SendDoneMsg signals that a send finished. Err is only set for sends the
// app rejected before dispatching.
type SendDoneMsg struct {
	Err error
}

// GlitchTickMsg advances the title animation on the login screen.
type GlitchTickMsg struct {
	Time time.Time
}

// glitchInterval is the title animation frame time.
const glitchInterval = 150 * time.Millisecond
