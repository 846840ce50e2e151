// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the login controller, the chat client and the message
// log into the state every front end renders.
package app

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/jeranaias/n1k4/internal/gemini"
	"github.com/jeranaias/n1k4/internal/logging"
	"github.com/jeranaias/n1k4/internal/model"
	"github.com/jeranaias/n1k4/internal/session"
)

// Greeting is appended by N1K4 once the operator is logged in.
const Greeting = "identity verified. terminal access granted. \nwaiting for input..."

// previewLen bounds reply text copied into debug logs.
const previewLen = 40

// Send errors. They are returned before anything is dispatched.
var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrBusy         = errors.New("a message is already being processed")
)

// Config holds the component settings.
type Config struct {
	Session session.Config
	Gemini  gemini.Config
}

// =============================================================================
// OPTIONS
// =============================================================================

type options struct {
	logger      *zap.Logger
	sessionOpts []session.Option
	geminiOpts  []gemini.Option
}

// Option configures an App.
type Option func(*options)

// WithLogger sets the logger shared by all components.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSessionOptions passes options through to the login controller.
func WithSessionOptions(opts ...session.Option) Option {
	return func(o *options) {
		o.sessionOpts = append(o.sessionOpts, opts...)
	}
}

// WithGeminiOptions passes options through to the chat client.
func WithGeminiOptions(opts ...gemini.Option) Option {
	return func(o *options) {
		o.geminiOpts = append(o.geminiOpts, opts...)
	}
}

// =============================================================================
// APP
// =============================================================================

// App is the application state shared by the TUI, the REPL and one-shot
// commands.
type App struct {
	ctrl   *session.Controller
	client *gemini.Client
	log    *model.Log
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	processing  bool
	subscribers []func()
}

// New builds the application and initializes the chat client. An
// initialization failure is logged and leaves the client in fallback mode.
func New(cfg Config, opts ...Option) *App {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		log:    model.NewLog(),
		logger: logging.Component(o.logger, "app"),
		ctx:    ctx,
		cancel: cancel,
	}

	sessOpts := append([]session.Option{session.WithLogger(logging.Component(o.logger, "session"))}, o.sessionOpts...)
	a.ctrl = session.NewController(cfg.Session, sessOpts...)

	gemOpts := append([]gemini.Option{gemini.WithLogger(logging.Component(o.logger, "gemini"))}, o.geminiOpts...)
	a.client = gemini.NewClient(cfg.Gemini, gemOpts...)

	a.ctrl.Subscribe(a.onSessionEvent)
	if err := a.client.Initialize(ctx); err != nil {
		a.logger.Info("chat client running in fallback mode", zap.Error(err))
	}
	return a
}

// SubmitLogin starts the connection sequence for name.
func (a *App) SubmitLogin(name string) bool {
	ok := a.ctrl.SubmitLogin(name)
	if !ok {
		a.logger.Debug("login rejected", zap.Int("length", len(name)))
	}
	return ok
}

func (a *App) onSessionEvent(ev session.Event) {
	if ev.LoggedIn {
		a.client.StartConversation(a.ctx)
		a.log.Add(model.RoleModel, Greeting)
		a.logger.Info("operator logged in",
			zap.String("alias", ev.Session.Username),
			zap.Stringer("mode", a.client.Mode()))
	}
	a.notify()
}

// SendMessage appends text as a user message, waits for the reply and
// appends it. Remote failures become system messages; the only errors are
// the rejections that happen before anything is appended.
func (a *App) SendMessage(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if !a.ctrl.Session().IsLoggedIn {
		return ErrNotLoggedIn
	}

	a.mu.Lock()
	if a.processing {
		a.mu.Unlock()
		return ErrBusy
	}
	a.processing = true
	a.mu.Unlock()

	a.log.Add(model.RoleUser, text)
	a.notify()

	reply := a.client.Exchange(ctx, text)
	role := model.RoleModel
	if reply.Kind.IsFailure() {
		role = model.RoleSystem
	}
	msg := a.log.Add(role, reply.Text)
	a.logger.Debug("reply appended",
		zap.Stringer("role", msg.Role),
		zap.String("preview", msg.Preview(previewLen)))

	a.mu.Lock()
	a.processing = false
	a.mu.Unlock()
	a.notify()
	return nil
}

// =============================================================================
// STATE ACCESSORS
// =============================================================================

// Session returns the operator session.
func (a *App) Session() session.Session { return a.ctrl.Session() }

// Status returns the connection status.
func (a *App) Status() session.Status { return a.ctrl.Status() }

// Connecting reports whether a login sequence is running.
func (a *App) Connecting() bool { return a.ctrl.InProgress() }

// Messages returns a snapshot of the message log.
func (a *App) Messages() []model.Message { return a.log.Messages() }

// LastMessage returns the newest transcript entry, or false if there is
// none yet.
func (a *App) LastMessage() (model.Message, bool) { return a.log.Last() }

// IsProcessing reports whether a send is waiting for its reply.
func (a *App) IsProcessing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.processing
}

// Mode reports where replies come from.
func (a *App) Mode() gemini.Mode { return a.client.Mode() }

// ModelName returns the configured Gemini model.
func (a *App) ModelName() string { return a.client.Model() }

// MinUsernameLength returns the shortest alias SubmitLogin accepts.
func (a *App) MinUsernameLength() int { return a.ctrl.MinUsernameLength() }

// Subscribe registers fn to be called after every state change. Calls may
// come from any goroutine.
func (a *App) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subscribers = append(a.subscribers, fn)
}

func (a *App) notify() {
	a.mu.Lock()
	subs := make([]func(), len(a.subscribers))
	copy(subs, a.subscribers)
	a.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Close stops the login sequence and flushes the logger.
func (a *App) Close() {
	a.ctrl.Stop()
	a.cancel()
	_ = a.logger.Sync()
}
