// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jeranaias/n1k4/internal/session"
	"github.com/jeranaias/n1k4/internal/session/sessiontest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// recorder collects events delivered to an observer.
type recorder struct {
	mu     sync.Mutex
	events []session.Event
}

func (r *recorder) observe(ev session.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) statuses() []session.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]session.Status, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Status
	}
	return out
}

func newTestController(t *testing.T) (*session.Controller, *sessiontest.ManualScheduler, *recorder) {
	t.Helper()
	sched := sessiontest.NewManualScheduler()
	ctrl := session.NewController(session.DefaultConfig(),
		session.WithScheduler(sched),
		session.WithClock(func() time.Time { return fixedNow }),
	)
	rec := &recorder{}
	ctrl.Subscribe(rec.observe)
	return ctrl, sched, rec
}

// =============================================================================
// STATUS TESTS
// =============================================================================

func TestStatus_Labels(t *testing.T) {
	tests := []struct {
		status session.Status
		label  string
		detail string
	}{
		{session.StatusDisconnected, "DISCONNECTED", ""},
		{session.StatusConnecting, "CONNECTING...", "Handshaking..."},
		{session.StatusConnected, "CONNECTED", "Bypassing Firewalls..."},
		{session.StatusEncrypted, "ENCRYPTED", "Establishing Neural Link..."},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.label, tc.status.String())
		assert.Equal(t, tc.detail, tc.status.Detail())
	}
}

func TestStatus_NextNeverSkips(t *testing.T) {
	s := session.StatusDisconnected
	var visited []session.Status
	for {
		next, ok := s.Next()
		if !ok {
			break
		}
		require.Equal(t, s+1, next)
		visited = append(visited, next)
		s = next
	}
	assert.Equal(t, session.Stages(), visited)
}

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"neo", "NEO"},
		{"  trinity ", "TRINITY"},
		{"Zero_Cool", "ZERO_COOL"},
		{"straße", "STRASSE"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, session.NormalizeUsername(tc.in), "input %q", tc.in)
	}
}

// =============================================================================
// LOGIN GATING TESTS
// =============================================================================

func TestSubmitLogin_RejectsShortNames(t *testing.T) {
	for _, name := range []string{"", "a", "ab", "   ", "  ab  ", "日本"} {
		t.Run(name, func(t *testing.T) {
			ctrl, sched, rec := newTestController(t)

			assert.False(t, ctrl.SubmitLogin(name))
			assert.Equal(t, session.StatusDisconnected, ctrl.Status())
			assert.Equal(t, session.Session{}, ctrl.Session())
			assert.Zero(t, sched.Pending())
			assert.Empty(t, rec.statuses())
		})
	}
}

func TestSubmitLogin_AcceptsThreeRunes(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	assert.True(t, ctrl.SubmitLogin("日本語"))
	assert.Equal(t, session.StatusConnecting, ctrl.Status())
}

func TestSubmitLogin_RejectsReentry(t *testing.T) {
	ctrl, sched, rec := newTestController(t)

	require.True(t, ctrl.SubmitLogin("neo"))
	assert.False(t, ctrl.SubmitLogin("trinity"))
	assert.Equal(t, 1, sched.Pending(), "second submit must not schedule another stage")

	sched.Advance(800 * time.Millisecond)
	assert.False(t, ctrl.SubmitLogin("trinity"))

	assert.Equal(t, 2, sched.RunAll())
	assert.Len(t, rec.statuses(), 4)
	assert.Equal(t, "NEO", ctrl.Session().Username)

	assert.False(t, ctrl.SubmitLogin("morpheus"), "logged-in sessions are terminal")
	assert.Zero(t, sched.Pending())
}

// =============================================================================
// SEQUENCE TESTS
// =============================================================================

func TestLoginSequence_VisitsStagesInOrder(t *testing.T) {
	ctrl, sched, rec := newTestController(t)

	require.True(t, ctrl.SubmitLogin("neo"))
	assert.Equal(t, session.StatusConnecting, ctrl.Status())
	assert.False(t, ctrl.Session().IsLoggedIn)

	sched.Advance(799 * time.Millisecond)
	assert.Equal(t, session.StatusConnecting, ctrl.Status())

	sched.Advance(time.Millisecond)
	assert.Equal(t, session.StatusConnected, ctrl.Status())

	sched.Advance(800 * time.Millisecond)
	assert.Equal(t, session.StatusEncrypted, ctrl.Status())
	assert.False(t, ctrl.Session().IsLoggedIn)
	assert.True(t, ctrl.InProgress())

	sched.Advance(800 * time.Millisecond)
	assert.Equal(t, 2400*time.Millisecond, sched.Elapsed())

	sess := ctrl.Session()
	assert.True(t, sess.IsLoggedIn)
	assert.Equal(t, "NEO", sess.Username)
	assert.Equal(t, fixedNow, sess.ConnectedAt)
	assert.False(t, ctrl.InProgress())

	assert.Equal(t, []session.Status{
		session.StatusConnecting,
		session.StatusConnected,
		session.StatusEncrypted,
		session.StatusEncrypted,
	}, rec.statuses())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, ev := range rec.events[:3] {
		assert.False(t, ev.LoggedIn)
		assert.False(t, ev.Session.IsLoggedIn)
	}
	last := rec.events[3]
	assert.True(t, last.LoggedIn)
	assert.Equal(t, sess, last.Session)
}

func TestStop_CancelsPendingStage(t *testing.T) {
	ctrl, sched, rec := newTestController(t)

	require.True(t, ctrl.SubmitLogin("neo"))
	sched.Advance(800 * time.Millisecond)
	require.Equal(t, session.StatusConnected, ctrl.Status())

	ctrl.Stop()
	assert.Zero(t, sched.Pending())
	assert.Zero(t, sched.RunAll())

	assert.Equal(t, session.StatusConnected, ctrl.Status())
	assert.False(t, ctrl.Session().IsLoggedIn)
	assert.Len(t, rec.statuses(), 2)
	assert.False(t, ctrl.SubmitLogin("neo"))
	assert.False(t, ctrl.InProgress())
}

func TestStop_Idempotent(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	ctrl.Stop()
	ctrl.Stop()
	assert.Equal(t, session.StatusDisconnected, ctrl.Status())
}

func TestLoginSequence_RealTimers(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.StageDelay = time.Millisecond
	ctrl := session.NewController(cfg)

	done := make(chan session.Event, 1)
	var (
		mu   sync.Mutex
		seen []session.Status
	)
	ctrl.Subscribe(func(ev session.Event) {
		mu.Lock()
		seen = append(seen, ev.Status)
		mu.Unlock()
		if ev.LoggedIn {
			done <- ev
		}
	})

	require.True(t, ctrl.SubmitLogin("neo"))

	select {
	case ev := <-done:
		assert.Equal(t, "NEO", ev.Session.Username)
	case <-time.After(2 * time.Second):
		t.Fatal("login sequence did not complete")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []session.Status{
		session.StatusConnecting,
		session.StatusConnected,
		session.StatusEncrypted,
		session.StatusEncrypted,
	}, seen)
}

// Observers that read controller state must not stall the sequence when
// stages fire back to back on timer goroutines.
func TestLoginSequence_ObserversReadStateWithZeroDelay(t *testing.T) {
	for i := 0; i < 200; i++ {
		ctrl := session.NewController(session.Config{StageDelay: 0})

		done := make(chan struct{})
		var (
			mu   sync.Mutex
			seen []session.Status
			once sync.Once
		)
		ctrl.Subscribe(func(ev session.Event) {
			_ = ctrl.Status()
			sess := ctrl.Session()
			mu.Lock()
			seen = append(seen, ev.Status)
			mu.Unlock()
			if sess.IsLoggedIn {
				once.Do(func() { close(done) })
			}
		})

		require.True(t, ctrl.SubmitLogin("ghost"))

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("iteration %d: login did not complete, status %s", i, ctrl.Status())
		}

		mu.Lock()
		got := append([]session.Status(nil), seen...)
		mu.Unlock()
		// The last event may still be in flight when IsLoggedIn flips.
		require.GreaterOrEqual(t, len(got), 3)
		assert.Equal(t, []session.Status{
			session.StatusConnecting,
			session.StatusConnected,
			session.StatusEncrypted,
		}, got[:3], "iteration %d", i)
		assert.True(t, ctrl.Session().IsLoggedIn)
	}
}

func TestSubmitLogin_FromObserverIsRejected(t *testing.T) {
	ctrl, sched, _ := newTestController(t)

	var again []bool
	ctrl.Subscribe(func(session.Event) {
		again = append(again, ctrl.SubmitLogin("trinity"))
	})

	require.True(t, ctrl.SubmitLogin("neo"))
	sched.RunAll()

	assert.Equal(t, []bool{false, false, false, false}, again)
	assert.Equal(t, "NEO", ctrl.Session().Username)
}
