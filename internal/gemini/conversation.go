// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/n1k4/internal/model"
)

// =============================================================================
// CONVERSATION HANDLE
// =============================================================================

// Conversation is one ongoing multi-turn exchange with the remote service.
// Persona, model and temperature are fixed when it is created.
type Conversation struct {
	mu sync.Mutex

	id          string
	createdAt   time.Time
	model       string
	persona     string
	temperature float32
	history     []Turn
}

func newConversation(cfg Config) *Conversation {
	return &Conversation{
		id:          uuid.NewString(),
		createdAt:   time.Now(),
		model:       cfg.Model,
		persona:     cfg.Persona,
		temperature: cfg.Temperature,
	}
}

// ID returns the conversation identifier.
func (c *Conversation) ID() string {
	return c.id
}

// CreatedAt returns when the conversation was started.
func (c *Conversation) CreatedAt() time.Time {
	return c.createdAt
}

// History returns a copy of the recorded turns.
func (c *Conversation) History() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.history))
	copy(out, c.history)
	return out
}

// Len returns the number of recorded turns.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.history)
}

// record appends a completed exchange.
func (c *Conversation) record(userText, modelText string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history,
		Turn{Role: model.RoleUser, Text: userText},
		Turn{Role: model.RoleModel, Text: modelText},
	)
}

func (c *Conversation) request(message string) Request {
	return Request{
		Model:       c.model,
		Persona:     c.persona,
		Temperature: c.temperature,
		History:     c.History(),
		Message:     message,
	}
}

// =============================================================================
// CONVERSATION STATE
// =============================================================================

// ConversationState holds the single live conversation handle. It is owned
// by whoever constructs the Client and passed in, so separate clients (and
// separate tests) never share a handle by accident.
type ConversationState struct {
	mu      sync.Mutex
	current *Conversation
}

// NewConversationState returns an empty state.
func NewConversationState() *ConversationState {
	return &ConversationState{}
}

// Current returns the live conversation, or nil.
func (s *ConversationState) Current() *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Replace installs conv as the live conversation and returns the one it
// replaced, if any.
func (s *ConversationState) Replace(conv *Conversation) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current
	s.current = conv
	return prev
}
