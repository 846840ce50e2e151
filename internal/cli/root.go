// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/n1k4/internal/app"
	"github.com/jeranaias/n1k4/internal/config"
	"github.com/jeranaias/n1k4/internal/logging"
	"github.com/jeranaias/n1k4/internal/session"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// annotationNoSetup marks commands that run without config or logging.
const annotationNoSetup = "n1k4/no-setup"

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	model      string
	logLevel   string
	logFile    string
}

// runtime is the state prepared before a command runs.
type runtime struct {
	flags  globalFlags
	cfg    *config.Config
	logger *zap.Logger
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCommand builds the n1k4 command tree.
func NewRootCommand() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:   "n1k4",
		Short: "N1K4.ch47 secure terminal gateway",
		Long: `n1k4 is a hacker-terminal chat client.

Log in with an identity alias, wait out the connection sequence, then talk
to N1K4. Replies come from Gemini when GEMINI_API_KEY is set and from a
canned script otherwise.

Run without arguments to start the full-screen terminal.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			rt.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), rt)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&rt.flags.configPath, "config", "", "config file (default ~/.n1k4/config.toml)")
	flags.StringVar(&rt.flags.model, "model", "", "Gemini model name")
	flags.StringVar(&rt.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&rt.flags.logFile, "log-file", "", "log file (default ~/.n1k4/n1k4.log)")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	root.AddCommand(
		newTermCommand(rt),
		newAskCommand(rt),
		newConfigCommand(rt),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("[ERROR]"), err)
		return ExitCode(err)
	}
	return ExitSuccess
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads configuration, applies flag overrides and opens the log.
func (rt *runtime) setup(cmd *cobra.Command) error {
	applyColorMode()
	if cmd.Annotations[annotationNoSetup] == "true" {
		return nil
	}

	cfg, err := rt.loadConfig()
	if err != nil {
		return &ConfigError{Err: err}
	}

	if rt.flags.model != "" {
		cfg.Gemini.Model = rt.flags.model
	}
	if rt.flags.logLevel != "" {
		cfg.Log.Level = rt.flags.logLevel
	}
	if rt.flags.logFile != "" {
		cfg.Log.File = rt.flags.logFile
	}
	if err := cfg.Validate(); err != nil {
		return &ConfigError{Err: err}
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return &ConfigError{Err: err}
	}

	rt.cfg = cfg
	rt.logger = logger
	logger.Debug("command started", zap.String("command", cmd.CommandPath()))
	return nil
}

func (rt *runtime) loadConfig() (*config.Config, error) {
	path := rt.flags.configPath
	if path == "" {
		return config.Load()
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return config.LoadFromPath(path)
}

func (rt *runtime) close() {
	if rt.logger != nil {
		_ = rt.logger.Sync()
	}
}

// newApp builds the application with the given login settings.
func (rt *runtime) newApp(scfg session.Config) *app.App {
	return app.New(app.Config{
		Session: scfg,
		Gemini:  rt.cfg.GeminiConfig(),
	}, app.WithLogger(rt.logger))
}
