// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/n1k4/internal/app"
	"github.com/jeranaias/n1k4/internal/gemini"
	"github.com/jeranaias/n1k4/internal/session"
)

func TestMain(m *testing.M) {
	os.Setenv("NO_COLOR", "1")
	color.NoColor = true
	os.Exit(m.Run())
}

// =============================================================================
// HELPERS
// =============================================================================

const testConfigTOML = `
[gemini]
fallback_delay = "0s"
fallbacks = ["only line"]
`

// execute runs the command tree with an isolated config and log file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfigTOML), 0o600))

	full := append([]string{"--config", cfgPath, "--log-file", filepath.Join(dir, "n1k4.log")}, args...)

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(full)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

type scriptedReader struct {
	lines   []string
	history []string
}

func (r *scriptedReader) Prompt(string) (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) AppendHistory(item string) {
	r.history = append(r.history, item)
}

type fixedRand int

func (r fixedRand) Intn(int) int { return int(r) }

func newFastApp(t *testing.T) *app.App {
	t.Helper()
	gcfg := gemini.DefaultConfig()
	gcfg.FallbackDelay = 0

	a := app.New(app.Config{
		Session: session.Config{StageDelay: 0, MinUsernameLength: session.MinUsernameLength},
		Gemini:  gcfg,
	}, app.WithGeminiOptions(gemini.WithRand(fixedRand(1))))
	t.Cleanup(a.Close)
	return a
}

// =============================================================================
// EXIT CODES
// =============================================================================

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitGeneralError},
		{"usage", usageErrorf("bad"), ExitUsageError},
		{"config", &ConfigError{Err: errors.New("bad")}, ExitConfigError},
		{"wrapped usage", errors.Join(errors.New("x"), &UsageError{Err: errors.New("y")}), ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "n1k4 "+Version)
	assert.Contains(t, out, "Commit:")
}

func TestAskCommand_PrintsReply(t *testing.T) {
	out, err := execute(t, "ask", "status", "report")
	require.NoError(t, err)
	assert.Equal(t, "only line\n", out)
}

func TestAskCommand_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no message", []string{"ask"}},
		{"blank message", []string{"ask", "   "}},
		{"short alias", []string{"ask", "--alias", "ab", "hello"}},
		{"unknown flag", []string{"ask", "--bogus", "hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitUsageError, ExitCode(err))
		})
	}
}

func TestConfigCommand_RedactsKey(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfigTOML), 0o600))
	t.Setenv("GEMINI_API_KEY", "sk-very-secret")

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetArgs([]string{"--config", cfgPath, "--log-file", filepath.Join(dir, "n1k4.log"), "--model", "gemini-test", "config"})
	root.SetOut(&out)
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "[REDACTED]")
	assert.NotContains(t, out.String(), "sk-very-secret")
	assert.Contains(t, out.String(), "gemini-test")
}

func TestConfigErrors(t *testing.T) {

	root := NewRootCommand()
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "config"})
	root.SetOut(io.Discard)
	err := root.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))

	_, err = execute(t, "--log-level", "loud", "config")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))
}

// =============================================================================
// CONSOLE
// =============================================================================

func TestConsole_LoginAndExchange(t *testing.T) {
	a := newFastApp(t)
	in := &scriptedReader{lines: []string{"ab", "neo", "", "status?", "/quit", "never read"}}
	var out bytes.Buffer

	require.NoError(t, newConsole(a, in, &out).run(context.Background()))
	text := out.String()

	assert.Contains(t, text, "alias must be at least 3 characters")
	for _, stage := range session.Stages() {
		assert.Contains(t, text, "[ "+stage.String()+" ]")
	}
	assert.Contains(t, text, "LOGGED IN AS: NEO")
	assert.Contains(t, text, "identity verified")
	assert.Contains(t, text, gemini.DefaultFallbacks[1])
	assert.NotContains(t, text, "NEO [", "operator lines are not echoed")

	assert.Equal(t, []string{"status?"}, in.history)
	assert.Equal(t, []string{"never read"}, in.lines)
	assert.Len(t, a.Messages(), 3)
}

func TestLoginAndWait_ZeroDelayCompletes(t *testing.T) {
	for i := 0; i < 100; i++ {
		a := newFastApp(t)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := loginAndWait(ctx, a, "GHOST")
		cancel()

		require.NoError(t, err, "iteration %d", i)
		assert.True(t, a.Session().IsLoggedIn)
	}
}

func TestConsole_EOFBeforeLogin(t *testing.T) {
	a := newFastApp(t)
	var out bytes.Buffer

	require.NoError(t, newConsole(a, &scriptedReader{}, &out).run(context.Background()))
	assert.False(t, a.Session().IsLoggedIn)
	assert.True(t, strings.HasPrefix(out.String(), "N1K4.ch47"))
}
