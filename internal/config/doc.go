// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for n1k4.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - GeminiConfig: Chat client model, temperature and fallback settings
//   - LoginConfig: Connection sequence timing and alias rules
//   - LogConfig: Log file location and level
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (N1K4_*, GEMINI_API_KEY, API_KEY)
//   - ./.env
//   - ~/.n1k4/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Build component settings:
//
//	ctrl := session.NewController(cfg.SessionConfig())
//	client := gemini.NewClient(cfg.GeminiConfig())
package config
