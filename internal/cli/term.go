// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/n1k4/internal/model"
	"github.com/jeranaias/n1k4/internal/session"
	"github.com/jeranaias/n1k4/internal/ui/components"
)

func newTermCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "term",
		Short: "Line-mode terminal for consoles without full-screen support",
		Long: `Starts N1K4 in line mode.

You are asked for an identity alias, the connection sequence is printed as it
runs, and each line you enter is sent to N1K4. Arrow keys walk the input
history for this run. Type /quit or press Ctrl+D to leave.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := rt.newApp(rt.cfg.SessionConfig())
			defer a.Close()

			line := liner.NewLiner()
			defer line.Close()
			line.SetCtrlCAborts(true)

			return newConsole(a, line, cmd.OutOrStdout()).run(cmd.Context())
		},
	}
}

// =============================================================================
// CONSOLE
// =============================================================================

// chatApp is the part of *app.App the line-mode front ends use.
type chatApp interface {
	SubmitLogin(name string) bool
	SendMessage(ctx context.Context, text string) error
	Session() session.Session
	Status() session.Status
	Messages() []model.Message
	MinUsernameLength() int
	Subscribe(fn func())
}

// lineReader reads one line of input. *liner.State implements it.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// errQuit ends the console without an error.
var errQuit = errors.New("quit")

// console is the line-mode chat loop.
type console struct {
	app chatApp
	in  lineReader
	out io.Writer

	mu         sync.Mutex
	printed    int
	lastStatus session.Status
	loggedIn   chan struct{}
	loginOnce  sync.Once
}

func newConsole(a chatApp, in lineReader, out io.Writer) *console {
	c := &console{
		app:        a,
		in:         in,
		out:        out,
		lastStatus: session.StatusDisconnected,
		loggedIn:   make(chan struct{}),
	}
	a.Subscribe(c.onChange)
	return c
}

// run logs in and then relays lines until the operator quits.
func (c *console) run(ctx context.Context) error {
	titleColor.Fprintln(c.out, components.Title+" :: SECURE TERMINAL GATEWAY")
	fmt.Fprintln(c.out)

	if err := c.login(ctx); err != nil {
		if errors.Is(err, errQuit) {
			return nil
		}
		return err
	}
	c.flush()

	for {
		line, err := c.in.Prompt("> ")
		if err != nil {
			fmt.Fprintln(c.out)
			return nil
		}

		text := strings.TrimSpace(line)
		switch {
		case text == "":
			continue
		case text == "/quit" || text == "/exit":
			return nil
		}
		c.in.AppendHistory(line)

		if err := c.app.SendMessage(ctx, line); err != nil {
			fmt.Fprintf(c.out, "%s %v\n", errorLabel("[ERROR]"), err)
			continue
		}
		c.flush()

		if ctx.Err() != nil {
			return nil
		}
	}
}

// login prompts until an alias is accepted, then waits for the sequence
// to finish.
func (c *console) login(ctx context.Context) error {
	for {
		name, err := c.in.Prompt("IDENTITY ALIAS> ")
		if err != nil {
			fmt.Fprintln(c.out)
			return errQuit
		}
		if c.app.SubmitLogin(name) {
			break
		}
		fmt.Fprintf(c.out, "%s alias must be at least %d characters\n",
			errorLabel("[DENIED]"), c.app.MinUsernameLength())
	}

	select {
	case <-c.loggedIn:
		return nil
	case <-ctx.Done():
		return errQuit
	}
}

// onChange prints stages as they happen. It runs on whichever goroutine
// caused the change.
func (c *console) onChange() {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess := c.app.Session()
	if sess.IsLoggedIn {
		c.loginOnce.Do(func() {
			printBanner(c.out, sess)
			close(c.loggedIn)
		})
		return
	}

	if st := c.app.Status(); st != c.lastStatus && st != session.StatusDisconnected {
		c.lastStatus = st
		printStage(c.out, st)
	}
}

// flush prints transcript entries that arrived since the last flush. The
// operator's own lines are already on screen.
func (c *console) flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	msgs := c.app.Messages()
	alias := c.app.Session().Username
	for _, msg := range msgs[c.printed:] {
		if msg.Role == model.RoleUser {
			continue
		}
		printMessage(c.out, msg, alias)
	}
	c.printed = len(msgs)
}
