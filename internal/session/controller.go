// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session drives the staged login sequence and owns operator identity.
package session

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// DefaultStageDelay is the pause between connection stages.
const DefaultStageDelay = 800 * time.Millisecond

// Config holds configuration for the login controller.
type Config struct {
	// StageDelay is the pause between connection stages (default: 800ms).
	// The session is logged in three stage delays after submission.
	StageDelay time.Duration

	// MinUsernameLength is the shortest accepted alias (default: 3).
	MinUsernameLength int
}

// DefaultConfig returns the default login configuration.
func DefaultConfig() Config {
	return Config{
		StageDelay:        DefaultStageDelay,
		MinUsernameLength: MinUsernameLength,
	}
}

// =============================================================================
// EVENTS
// =============================================================================

// Event describes one transition of the login state machine.
type Event struct {
	Status   Status
	Session  Session
	LoggedIn bool // true only for the final transition
	At       time.Time
}

// Observer receives transitions in the order they happen.
// Observers may run on any goroutine, including the one calling
// SubmitLogin, and may read controller state.
type Observer func(Event)

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller is the login state machine:
//
//	Disconnected -> Connecting -> Connected -> Encrypted -> LoggedIn
//
// Transitions after the first fire only from the scheduled task the
// controller holds. At most one task is pending at any time.
type Controller struct {
	mu sync.Mutex

	cfg    Config
	sched  Scheduler
	now    func() time.Time
	logger *zap.Logger

	status  Status
	session Session
	alias   string
	pending Task
	attempt uint64
	stopped bool

	observers []Observer
	queue     []Event
	draining  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler sets the scheduler used for stage delays.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithClock sets the time source used for ConnectedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewController creates a controller in the Disconnected state.
func NewController(cfg Config, opts ...Option) *Controller {
	if cfg.StageDelay < 0 {
		cfg.StageDelay = 0
	}
	if cfg.MinUsernameLength <= 0 {
		cfg.MinUsernameLength = MinUsernameLength
	}
	c := &Controller{
		cfg:    cfg,
		sched:  TimerScheduler{},
		now:    time.Now,
		logger: zap.NewNop(),
		status: StatusDisconnected,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers an observer for all future transitions.
func (c *Controller) Subscribe(o Observer) {
	if o == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// =============================================================================
// STATE
// =============================================================================

// Status returns the current connection stage.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Session returns the current session.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// InProgress reports whether a login sequence is running.
func (c *Controller) InProgress() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status != StatusDisconnected && !c.session.IsLoggedIn && !c.stopped
}

// MinUsernameLength returns the shortest alias SubmitLogin accepts.
func (c *Controller) MinUsernameLength() int {
	return c.cfg.MinUsernameLength
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// SubmitLogin starts the connection sequence for name.
//
// It returns false without changing any state when the normalized alias is
// too short, a sequence is already running or complete, or the controller
// has been stopped.
func (c *Controller) SubmitLogin(name string) bool {
	alias := NormalizeUsername(name)
	if !ValidUsername(alias, c.cfg.MinUsernameLength) {
		return false
	}

	c.mu.Lock()
	if c.stopped || c.status != StatusDisconnected || c.session.IsLoggedIn {
		status := c.status
		c.mu.Unlock()
		c.logger.Debug("login rejected", zap.String("alias", alias), zap.Stringer("status", status))
		return false
	}

	c.alias = alias
	c.attempt++
	c.status = StatusConnecting
	ev := Event{Status: c.status, Session: c.session, At: c.now()}
	c.scheduleLocked(c.attempt)
	c.deliverLocked(ev)

	c.logger.Info("login accepted", zap.String("alias", alias))
	return true
}

// Stop cancels any pending stage. The status stays where it is and no
// further transitions or logins happen.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	c.attempt++
	if c.pending != nil {
		c.pending.Cancel()
		c.pending = nil
	}
}

// advance runs one scheduled stage. Stale callbacks from a cancelled
// attempt are ignored.
func (c *Controller) advance(attempt uint64) {
	c.mu.Lock()
	if c.stopped || attempt != c.attempt {
		c.mu.Unlock()
		return
	}
	c.pending = nil

	var ev Event
	switch c.status {
	case StatusConnecting, StatusConnected:
		next, _ := c.status.Next()
		c.status = next
		ev = Event{Status: next, Session: c.session, At: c.now()}
		c.scheduleLocked(attempt)
	case StatusEncrypted:
		now := c.now()
		c.session = Session{
			Username:    c.alias,
			IsLoggedIn:  true,
			ConnectedAt: now,
		}
		ev = Event{Status: c.status, Session: c.session, LoggedIn: true, At: now}
		c.logger.Info("session established", zap.String("alias", c.alias))
	default:
		c.mu.Unlock()
		return
	}
	c.deliverLocked(ev)
}

// scheduleLocked arms the next stage. c.mu must be held.
func (c *Controller) scheduleLocked(attempt uint64) {
	c.pending = c.sched.Schedule(c.cfg.StageDelay, func() {
		c.advance(attempt)
	})
}

// deliverLocked queues ev for observers. It is entered with c.mu held and
// returns with it released.
//
// One goroutine at a time drains the queue, so observers see events in
// transition order. c.mu is never held while an observer runs; observers
// may read controller state. If another goroutine is already draining, ev
// is left for it and deliverLocked returns at once.
func (c *Controller) deliverLocked(ev Event) {
	c.queue = append(c.queue, ev)
	if c.draining {
		c.mu.Unlock()
		return
	}
	c.draining = true

	for len(c.queue) > 0 {
		next := c.queue[0]
		c.queue = c.queue[1:]
		observers := make([]Observer, len(c.observers))
		copy(observers, c.observers)
		c.mu.Unlock()

		for _, o := range observers {
			o(next)
		}

		c.mu.Lock()
	}
	c.draining = false
	c.mu.Unlock()
}
