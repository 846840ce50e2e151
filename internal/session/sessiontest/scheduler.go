// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sessiontest provides a virtual-time scheduler for driving the
// login sequence in tests.
package sessiontest

import (
	"sort"
	"sync"
	"time"

	"github.com/jeranaias/n1k4/internal/session"
)

// ManualScheduler is a session.Scheduler whose clock only moves when
// Advance or RunAll is called. Callbacks run on the caller's goroutine.
type ManualScheduler struct {
	mu      sync.Mutex
	elapsed time.Duration
	seq     int
	tasks   []*task
}

type task struct {
	s         *ManualScheduler
	at        time.Duration
	seq       int
	fn        func()
	fired     bool
	cancelled bool
}

// NewManualScheduler returns a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule records fn to run d after the current virtual time.
func (s *ManualScheduler) Schedule(d time.Duration, fn func()) session.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &task{s: s, at: s.elapsed + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

func (t *task) Cancel() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// Elapsed returns the current virtual time.
func (s *ManualScheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Pending returns the number of tasks that have neither fired nor been
// cancelled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.fired && !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, running every task that comes
// due, including tasks scheduled by callbacks along the way. It returns
// the number of callbacks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.elapsed + d
	s.mu.Unlock()

	fired := 0
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		t.fn()
		fired++
	}

	s.mu.Lock()
	s.elapsed = target
	s.mu.Unlock()
	return fired
}

// RunAll runs tasks until none are pending and returns how many ran.
func (s *ManualScheduler) RunAll() int {
	fired := 0
	for {
		s.mu.Lock()
		var next *task
		if pending := s.pendingSortedLocked(); len(pending) > 0 {
			next = pending[0]
		}
		s.mu.Unlock()
		if next == nil {
			return fired
		}
		fired += s.Advance(next.at - s.Elapsed())
	}
}

// nextDue marks and returns the earliest task due at or before target.
func (s *ManualScheduler) nextDue(target time.Duration) *task {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.pendingSortedLocked() {
		if t.at > target {
			return nil
		}
		t.fired = true
		s.elapsed = t.at
		return t
	}
	return nil
}

func (s *ManualScheduler) pendingSortedLocked() []*task {
	var out []*task
	for _, t := range s.tasks {
		if !t.fired && !t.cancelled {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].at == out[j].at {
			return out[i].seq < out[j].seq
		}
		return out[i].at < out[j].at
	})
	return out
}
