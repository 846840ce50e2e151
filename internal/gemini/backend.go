// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/jeranaias/n1k4/internal/model"
)

// Turn is one prior exchange entry sent back to the service as context.
type Turn struct {
	Role model.Role // RoleUser or RoleModel
	Text string
}

// Request is one complete call to the remote chat service.
type Request struct {
	Model       string
	Persona     string
	Temperature float32
	History     []Turn
	Message     string
}

// Backend performs a single request/response exchange with the remote
// service. Implementations return the complete reply text.
type Backend interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Dialer builds a Backend from an API key.
type Dialer func(ctx context.Context, apiKey string) (Backend, error)

// =============================================================================
// GOOGLE GENAI BACKEND
// =============================================================================

// genaiBackend talks to the Gemini API through google.golang.org/genai.
type genaiBackend struct {
	client *genai.Client
}

// DialGenAI is the production Dialer.
func DialGenAI(ctx context.Context, apiKey string) (Backend, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoCredential
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &genaiBackend{client: client}, nil
}

// Generate implements Backend.
func (b *genaiBackend) Generate(ctx context.Context, req Request) (string, error) {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, t := range req.History {
		contents = append(contents, genai.NewContentFromText(t.Text, toGenAIRole(t.Role)))
	}
	contents = append(contents, genai.NewContentFromText(req.Message, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.Persona != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.Persona, genai.RoleUser)
	}

	resp, err := b.client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

func toGenAIRole(r model.Role) genai.Role {
	if r == model.RoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}
