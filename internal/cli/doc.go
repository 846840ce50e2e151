// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the n1k4 command line.
//
// # Commands
//
//   - n1k4: full-screen terminal (requires a TTY)
//   - n1k4 term: line-mode terminal with input history
//   - n1k4 ask "text": one message, reply on stdout
//   - n1k4 config: effective configuration, API key redacted
//   - n1k4 version: build information
//
// # Global Flags
//
//	--config     config file (default ~/.n1k4/config.toml)
//	--model      Gemini model name
//	--log-level  debug, info, warn, error
//	--log-file   log file (default ~/.n1k4/n1k4.log)
//
// # Exit Codes
//
// 0 on success, 1 on unexpected errors, 2 on usage errors, 3 on
// configuration errors. A placeholder reply from N1K4 is still a success.
package cli
