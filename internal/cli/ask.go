// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"
)

func newAskCommand(rt *runtime) *cobra.Command {
	var alias string

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Send one message and print the reply",
		Long: `Logs in, sends a single message and prints N1K4's reply.

The connection sequence is skipped. The alias defaults to login.default_alias
(GHOST).

Examples:
  n1k4 ask "status report"
  n1k4 ask --alias neo "what is the matrix"`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if alias == "" {
				alias = rt.cfg.Login.DefaultAlias
			}
			return runAsk(cmd.Context(), rt, alias, strings.Join(args, " "), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&alias, "alias", "", "identity alias (default from config)")
	return cmd
}

func runAsk(ctx context.Context, rt *runtime, alias, text string, out io.Writer) error {
	if strings.TrimSpace(text) == "" {
		return usageErrorf("message is empty")
	}

	scfg := rt.cfg.SessionConfig()
	scfg.StageDelay = 0

	a := rt.newApp(scfg)
	defer a.Close()

	if err := loginAndWait(ctx, a, alias); err != nil {
		return err
	}
	if err := a.SendMessage(ctx, text); err != nil {
		return fmt.Errorf("send: %w", err)
	}

	reply, ok := a.LastMessage()
	if !ok {
		return fmt.Errorf("send: no reply recorded")
	}
	fmt.Fprintln(out, reply.Text)
	return nil
}

// loginAndWait submits alias and blocks until the session is established.
func loginAndWait(ctx context.Context, a chatApp, alias string) error {
	done := make(chan struct{})
	var once sync.Once
	a.Subscribe(func() {
		if a.Session().IsLoggedIn {
			once.Do(func() { close(done) })
		}
	})

	if !a.SubmitLogin(alias) {
		return usageErrorf("invalid alias %q: need at least %d characters", alias, a.MinUsernameLength())
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
