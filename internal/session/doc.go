// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session drives the staged login sequence and owns operator identity.
//
// A Controller starts Disconnected. SubmitLogin with an alias of at least
// three characters moves it to Connecting, then one stage delay later to
// Connected, then Encrypted, and one more delay later marks the Session
// logged in. Each stage is armed by a single Task from the Scheduler;
// Stop cancels it.
//
// # Usage
//
//	ctrl := session.NewController(session.DefaultConfig(), session.WithLogger(logger))
//	ctrl.Subscribe(func(ev session.Event) {
//	    if ev.LoggedIn {
//	        fmt.Println("welcome", ev.Session.Username)
//	    }
//	})
//	ctrl.SubmitLogin("neo")
//
// Tests drive the stages with sessiontest.ManualScheduler instead of timers.
package session
