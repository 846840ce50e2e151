// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the N1K4 chat client for Google's Gemini API.
//
// The client degrades to a scripted fallback when no API key is configured
// or the SDK cannot be initialized. Remote failures are converted into
// placeholder text and never returned to the caller.
package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Configuration defaults.
const (
	// DefaultModel is the Gemini model used for conversations.
	DefaultModel = "gemini-2.5-flash"

	// DefaultTemperature keeps replies creative but consistent.
	DefaultTemperature float32 = 0.7

	// DefaultFallbackDelay simulates network latency in fallback mode.
	DefaultFallbackDelay = time.Second
)

// ErrNoCredential indicates no API key was supplied.
var ErrNoCredential = errors.New("gemini API key not configured")

// Config holds chat client settings.
type Config struct {
	APIKey        string
	Model         string
	Persona       string
	Temperature   float32
	FallbackDelay time.Duration
	Fallbacks     []string
}

// DefaultConfig returns the default client configuration without a key.
func DefaultConfig() Config {
	fallbacks := make([]string, len(DefaultFallbacks))
	copy(fallbacks, DefaultFallbacks)
	return Config{
		Model:         DefaultModel,
		Persona:       DefaultPersona,
		Temperature:   DefaultTemperature,
		FallbackDelay: DefaultFallbackDelay,
		Fallbacks:     fallbacks,
	}
}

// =============================================================================
// MODES AND REPLIES
// =============================================================================

// Mode reports where replies come from.
type Mode int

const (
	ModeFallback Mode = iota
	ModeRemote
)

// String returns the status-bar label for the mode.
func (m Mode) String() string {
	if m == ModeRemote {
		return "REMOTE"
	}
	return "FALLBACK"
}

// ReplyKind classifies the text returned by Exchange.
type ReplyKind int

const (
	ReplyModel    ReplyKind = iota // text produced by the remote model
	ReplyFallback                  // canned line, no conversation handle
	ReplyEmpty                     // remote returned nothing
	ReplyError                     // remote call failed
)

// IsFailure reports whether the reply is a placeholder for a failed call.
func (k ReplyKind) IsFailure() bool {
	return k == ReplyEmpty || k == ReplyError
}

// Reply is the outcome of one exchange.
type Reply struct {
	Text string
	Kind ReplyKind
}

// RandSource picks fallback lines. *math/rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// =============================================================================
// CLIENT
// =============================================================================

// Client owns one conversation with the remote service.
type Client struct {
	mu      sync.Mutex
	cfg     Config
	dial    Dialer
	backend Backend
	state   *ConversationState
	rand    RandSource
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithDialer sets how the backend is constructed from the API key.
func WithDialer(d Dialer) Option {
	return func(c *Client) {
		if d != nil {
			c.dial = d
		}
	}
}

// WithBackend installs an already-initialized backend.
func WithBackend(b Backend) Option {
	return func(c *Client) {
		c.backend = b
	}
}

// WithConversationState sets the holder of the live conversation handle.
func WithConversationState(s *ConversationState) Option {
	return func(c *Client) {
		if s != nil {
			c.state = s
		}
	}
}

// WithRand sets the random source used to choose fallback lines.
func WithRand(r RandSource) Option {
	return func(c *Client) {
		if r != nil {
			c.rand = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client. No network or SDK work happens until
// Initialize or StartConversation.
func NewClient(cfg Config, opts ...Option) *Client {
	defaults := DefaultConfig()
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.Persona == "" {
		cfg.Persona = defaults.Persona
	}
	if cfg.FallbackDelay < 0 {
		cfg.FallbackDelay = 0
	}
	if len(cfg.Fallbacks) == 0 {
		cfg.Fallbacks = defaults.Fallbacks
	}

	c := &Client{
		cfg:    cfg,
		dial:   DialGenAI,
		state:  NewConversationState(),
		rand:   globalRand{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize sets up the remote backend. It is idempotent. A missing key
// or SDK failure is logged and returned, and the client stays in fallback
// mode; callers are free to ignore the error.
func (c *Client) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return nil
	}
	if c.cfg.APIKey == "" {
		c.logger.Warn("Gemini API key missing, falling back to simulation mode")
		return ErrNoCredential
	}

	b, err := c.dial(ctx, c.cfg.APIKey)
	if err != nil {
		c.logger.Error("failed to initialize Gemini", zap.Error(err))
		return fmt.Errorf("initialize gemini: %w", err)
	}
	c.backend = b
	c.logger.Info("Gemini initialized",
		zap.String("model", c.cfg.Model),
		zap.String("key_fingerprint", keyFingerprint(c.cfg.APIKey)))
	return nil
}

// StartConversation replaces the live conversation with a fresh one,
// initializing the backend first if needed. It returns false, leaving the
// client without a handle, when the backend is unavailable.
func (c *Client) StartConversation(ctx context.Context) bool {
	if err := c.Initialize(ctx); err != nil {
		return false
	}

	c.mu.Lock()
	conv := newConversation(c.cfg)
	c.mu.Unlock()

	if prev := c.state.Replace(conv); prev != nil {
		c.logger.Debug("conversation replaced",
			zap.String("previous", prev.ID()),
			zap.Int("discarded_turns", prev.Len()),
			zap.Duration("age", time.Since(prev.CreatedAt())))
	}
	c.logger.Info("conversation started", zap.String("conversation", conv.ID()))
	return true
}

// Exchange sends text as the next turn and returns the reply. It never
// fails: without a conversation it answers from the fallback set, and
// remote errors become placeholder text.
func (c *Client) Exchange(ctx context.Context, text string) Reply {
	conv := c.state.Current()

	c.mu.Lock()
	backend := c.backend
	c.mu.Unlock()

	if conv == nil || backend == nil {
		return c.fallback(ctx)
	}

	start := time.Now()
	out, err := backend.Generate(ctx, conv.request(text))
	if err != nil {
		c.logger.Error("Gemini request failed",
			zap.Error(err),
			zap.String("conversation", conv.ID()),
			zap.Duration("elapsed", time.Since(start)))
		return Reply{Text: ErrorReply, Kind: ReplyError}
	}
	if out == "" {
		c.logger.Warn("Gemini returned an empty response", zap.String("conversation", conv.ID()))
		return Reply{Text: EmptyReply, Kind: ReplyEmpty}
	}

	conv.record(text, out)
	c.logger.Debug("Gemini reply received",
		zap.String("conversation", conv.ID()),
		zap.Int("chars", len(out)),
		zap.Duration("elapsed", time.Since(start)))
	return Reply{Text: out, Kind: ReplyModel}
}

// Send is Exchange reduced to the reply text.
func (c *Client) Send(ctx context.Context, text string) string {
	return c.Exchange(ctx, text).Text
}

// fallback waits out the simulated latency and picks a canned line.
// A cancelled context cuts the wait short but still yields a line.
func (c *Client) fallback(ctx context.Context) Reply {
	if d := c.cfg.FallbackDelay; d > 0 {
		t := time.NewTimer(d)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
		}
	}

	lines := c.cfg.Fallbacks
	i := c.rand.Intn(len(lines))
	if i < 0 || i >= len(lines) {
		i = 0
	}
	return Reply{Text: lines[i], Kind: ReplyFallback}
}

// =============================================================================
// STATE ACCESSORS
// =============================================================================

// Available reports whether the remote backend is initialized.
func (c *Client) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.backend != nil
}

// HasConversation reports whether a conversation handle exists.
func (c *Client) HasConversation() bool {
	return c.state.Current() != nil
}

// Conversation returns the live conversation handle, or nil.
func (c *Client) Conversation() *Conversation {
	return c.state.Current()
}

// Mode reports whether sends go to the remote service or the fallback set.
func (c *Client) Mode() Mode {
	if c.Available() && c.HasConversation() {
		return ModeRemote
	}
	return ModeFallback
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// keyFingerprint identifies a key in logs without exposing any part of it.
func keyFingerprint(key string) string {
	if key == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:4])
}
