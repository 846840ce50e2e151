// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the terminal and blocks until the operator quits or ctx is
// cancelled.
func Run(ctx context.Context, a App, opts Options) error {
	var popts []tea.ProgramOption
	if opts.AltScreen {
		popts = append(popts, tea.WithAltScreen())
	}

	if _, err := newProgram(ctx, a, opts, popts...).Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal: %w", err)
	}
	return nil
}

// newProgram builds the program and routes app changes into it.
func newProgram(ctx context.Context, a App, opts Options, extra ...tea.ProgramOption) *tea.Program {
	popts := append([]tea.ProgramOption{tea.WithContext(ctx)}, extra...)
	p := tea.NewProgram(New(ctx, a, opts), popts...)

	// Changes can originate inside Update (SubmitLogin delivers the first
	// stage on the caller's goroutine). Send blocks until the event loop
	// reads, so it must never run on the loop itself.
	a.Subscribe(func() { go p.Send(StateChangedMsg{}) })

	return p
}
