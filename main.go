// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// n1k4 is a hacker-terminal chat client for Google Gemini.
//
// Usage:
//
//	n1k4                  full-screen terminal
//	n1k4 term             line-mode terminal
//	n1k4 ask "message"    one-shot
//
// Build-time version info:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
package main

import (
	"os"

	"github.com/jeranaias/n1k4/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(cli.Execute())
}
