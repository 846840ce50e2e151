// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// =============================================================================
// ROLE TESTS
// =============================================================================

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role  Role
		alias string
		want  string
	}{
		{RoleUser, "NEO", "NEO"},
		{RoleUser, "", "YOU"},
		{RoleModel, "NEO", "N1K4"},
		{RoleSystem, "NEO", "SYSTEM"},
		{Role("other"), "", "other"},
	}

	for _, tc := range tests {
		if got := tc.role.DisplayName(tc.alias); got != tc.want {
			t.Errorf("%q.DisplayName(%q) = %q, want %q", tc.role, tc.alias, got, tc.want)
		}
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := NewMessage(RoleUser, "ping")
		if msg.ID == "" {
			t.Fatal("NewMessage returned empty ID")
		}
		if seen[msg.ID] {
			t.Fatalf("duplicate ID %q", msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestMessage_Clock(t *testing.T) {
	ts := time.Date(2025, 3, 1, 7, 4, 9, 0, time.UTC)
	msg := NewMessageAt(RoleModel, "x", ts)
	if got := msg.Clock(); got != "07:04:09" {
		t.Errorf("Clock() = %q, want 07:04:09", got)
	}
}

func TestMessage_IsError(t *testing.T) {
	if !NewMessage(RoleSystem, "critical").IsError() {
		t.Error("system messages should use error styling")
	}
	if NewMessage(RoleModel, "ok").IsError() {
		t.Error("model messages should not use error styling")
	}
}

func TestMessage_Preview(t *testing.T) {
	tests := []struct {
		text   string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"decrypting payload", 10, "decrypt..."},
		{"日本語のテキスト", 5, "日本..."},
		{"abcdef", 2, "ab"},
		{"abcdef", 0, ""},
		{"abcdef", -1, ""},
		{"", -5, ""},
	}

	for _, tc := range tests {
		msg := NewMessage(RoleModel, tc.text)
		if got := msg.Preview(tc.maxLen); got != tc.want {
			t.Errorf("Preview(%q, %d) = %q, want %q", tc.text, tc.maxLen, got, tc.want)
		}
	}
}

// =============================================================================
// LOG TESTS
// =============================================================================

func TestLog_AppendPreservesOrder(t *testing.T) {
	log := NewLog()
	log.Add(RoleModel, "greeting")
	log.Add(RoleUser, "status?")
	log.Add(RoleModel, "packet received.")

	msgs := log.Messages()
	if len(msgs) != 3 {
		t.Fatalf("Len = %d, want 3", len(msgs))
	}
	wantRoles := []Role{RoleModel, RoleUser, RoleModel}
	for i, r := range wantRoles {
		if msgs[i].Role != r {
			t.Errorf("msgs[%d].Role = %q, want %q", i, msgs[i].Role, r)
		}
	}
}

func TestLog_AppendFillsIDAndTimestamp(t *testing.T) {
	log := NewLog()
	got := log.Append(Message{Role: RoleUser, Text: "hi"})
	if got.ID == "" {
		t.Error("Append should assign an ID")
	}
	if got.Timestamp.IsZero() {
		t.Error("Append should assign a timestamp")
	}
}

func TestLog_PriorEntriesNeverChange(t *testing.T) {
	log := NewLog()
	log.Add(RoleModel, "identity verified.")
	log.Add(RoleUser, "status?")
	before := log.Messages()

	// Mutating the returned copy must not reach the log.
	before[0].Text = "tampered"
	before = log.Messages()

	for i := 0; i < 10; i++ {
		log.Add(RoleUser, "more")
		after := log.Messages()
		if len(after) < len(before) {
			t.Fatalf("log shrank from %d to %d", len(before), len(after))
		}
		if diff := cmp.Diff(before, after[:len(before)]); diff != "" {
			t.Fatalf("prior entries changed (-before +after):\n%s", diff)
		}
	}
}

func TestLog_Last(t *testing.T) {
	log := NewLog()
	if _, ok := log.Last(); ok {
		t.Error("Last on empty log should report false")
	}
	log.Add(RoleUser, "a")
	log.Add(RoleModel, "b")
	last, ok := log.Last()
	if !ok || last.Text != "b" {
		t.Errorf("Last() = %+v, %v; want text b", last, ok)
	}
}

func TestLog_ConcurrentAppend(t *testing.T) {
	log := NewLog()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			log.Add(RoleUser, "x")
		}()
		go func() {
			defer wg.Done()
			_ = log.Messages()
		}()
	}
	wg.Wait()
	if log.Len() != 50 {
		t.Errorf("Len = %d, want 50", log.Len())
	}
}
