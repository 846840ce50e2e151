// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat messages.
//
// # Key Types
//
//   - Message: Single immutable entry with ID, role, text and timestamp
//   - Role: Author enumeration (user, model, system)
//   - Log: Append-only, insertion-ordered message sequence
//
// # Usage
//
//	log := model.NewLog()
//	log.Add(model.RoleUser, "status?")
//	for _, msg := range log.Messages() {
//	    fmt.Printf("[%s] %s: %s\n", msg.Clock(), msg.Role, msg.Text)
//	}
//
// The log never removes or edits an entry. Messages returns a copy, so
// callers cannot reach the backing slice.
package model
