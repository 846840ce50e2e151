// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"

	"github.com/jeranaias/n1k4/internal/ui/chat"
)

// runTUI starts the full-screen terminal.
func runTUI(ctx context.Context, rt *runtime) error {
	if err := RequiresTTY("start the full-screen terminal"); err != nil {
		return err
	}

	a := rt.newApp(rt.cfg.SessionConfig())
	defer a.Close()

	return chat.Run(ctx, a, chat.Options{
		AltScreen:     rt.cfg.UI.AltScreen,
		Markdown:      rt.cfg.UI.Markdown,
		MarkdownStyle: rt.cfg.UI.MarkdownStyle,
	})
}
