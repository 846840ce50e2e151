// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/n1k4/internal/gemini"
	"github.com/jeranaias/n1k4/internal/model"
	"github.com/jeranaias/n1k4/internal/session"
	"github.com/jeranaias/n1k4/internal/ui/styles"
)

// =============================================================================
// GLITCH TITLE TESTS
// =============================================================================

func TestGlitchFrame(t *testing.T) {
	tests := []struct {
		frame int
		want  string
	}{
		{0, "N1K4.ch47"},
		{1, "N1K4.ch47"},
		{2, "N1K4.ch47"},
		{3, "#1K4.ch47"},
		{7, "N%K4.ch47"},
		{-1, "N1K4.ch47"},
	}

	for _, tt := range tests {
		got := GlitchFrame(Title, tt.frame)
		if got != tt.want {
			t.Errorf("GlitchFrame(%d) = %q, want %q", tt.frame, got, tt.want)
		}
		if len([]rune(got)) != len([]rune(Title)) {
			t.Errorf("GlitchFrame(%d) changed the title length", tt.frame)
		}
	}

	if GlitchFrame("", 3) != "" {
		t.Error("GlitchFrame on empty title should be empty")
	}
}

func TestRenderGlitchTitle(t *testing.T) {
	theme := styles.NewTheme()
	for frame := 0; frame < 3; frame++ {
		if out := RenderGlitchTitle(theme, Title, frame); !strings.Contains(out, Title) {
			t.Errorf("frame %d: %q does not contain the title", frame, out)
		}
	}
}

// =============================================================================
// LOGIN TESTS
// =============================================================================

func TestStageProgress(t *testing.T) {
	tests := []struct {
		status session.Status
		want   float64
	}{
		{session.StatusDisconnected, 0},
		{session.StatusConnecting, 1.0 / 3},
		{session.StatusConnected, 2.0 / 3},
		{session.StatusEncrypted, 1},
	}
	for _, tt := range tests {
		if got := StageProgress(tt.status); got != tt.want {
			t.Errorf("StageProgress(%v) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestRenderLogin(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStageProgress()

	idle := RenderLogin(theme, bar, LoginView{InputView: "NE", Alias: "NE", MinLength: 3}, 80, 24)
	for _, want := range []string{"SECURE TERMINAL GATEWAY", "ENTER IDENTITY ALIAS", "[ INITIALIZE UPLINK ]"} {
		if !strings.Contains(idle, want) {
			t.Errorf("idle login view missing %q", want)
		}
	}
	if strings.Contains(idle, "Handshaking") {
		t.Error("idle login view should not show stage details")
	}

	connecting := RenderLogin(theme, bar, LoginView{Alias: "NEO", MinLength: 3, Status: session.StatusConnecting}, 80, 24)
	for _, want := range []string{"CONNECTING...", "Handshaking..."} {
		if !strings.Contains(connecting, want) {
			t.Errorf("connecting view missing %q", want)
		}
	}
	if strings.Contains(connecting, "INITIALIZE UPLINK") {
		t.Error("connecting view should replace the form")
	}
	if h := lipgloss.Height(connecting); h != 24 {
		t.Errorf("login view height = %d, want 24", h)
	}
}

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestRenderHeader(t *testing.T) {
	out := RenderHeader(styles.NewTheme(), 80)
	for _, want := range []string{"TARGET ID", "N1K4.AI", "UPLINK", "SECURE [256-BIT]"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderBanner(t *testing.T) {
	sess := session.Session{
		Username:    "neo",
		IsLoggedIn:  true,
		ConnectedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	out := RenderBanner(styles.NewTheme(), sess, 60)
	for _, want := range []string{
		"*** ENCRYPTED CONNECTION ESTABLISHED ***",
		"LOGGED IN AS: NEO",
		"2025-06-01T12:00:00.000Z",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("banner missing %q:\n%s", want, out)
		}
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestMessageRenderer_Labels(t *testing.T) {
	r := NewMessageRenderer(styles.NewTheme(), false, "")
	r.SetWidth(80)
	at := time.Date(2025, 6, 1, 9, 5, 7, 0, time.Local)

	tests := []struct {
		role model.Role
		want string
	}{
		{model.RoleUser, "NEO"},
		{model.RoleModel, "N1K4"},
		{model.RoleSystem, "SYSTEM"},
	}
	for _, tt := range tests {
		out := r.Render(model.NewMessageAt(tt.role, "packet received", at), "NEO")
		if !strings.Contains(out, tt.want) {
			t.Errorf("%s message missing label %q:\n%s", tt.role, tt.want, out)
		}
		if !strings.Contains(out, "[09:05:07]") {
			t.Errorf("%s message missing timestamp:\n%s", tt.role, out)
		}
		if !strings.Contains(out, "packet received") {
			t.Errorf("%s message missing text:\n%s", tt.role, out)
		}
	}
}

func TestMessageRenderer_Markdown(t *testing.T) {
	msg := model.NewMessage(model.RoleModel, "**root** access granted")

	plain := NewMessageRenderer(styles.NewTheme(), false, "dark")
	plain.SetWidth(80)
	if !strings.Contains(plain.Render(msg, ""), "**root**") {
		t.Error("markdown disabled should keep the raw text")
	}

	md := NewMessageRenderer(styles.NewTheme(), true, "dark")
	md.SetWidth(80)
	if strings.Contains(md.Render(msg, ""), "**") {
		t.Error("markdown enabled should render emphasis")
	}

	user := model.NewMessage(model.RoleUser, "**literal**")
	if !strings.Contains(md.Render(user, "NEO"), "**literal**") {
		t.Error("user text is never rendered as markdown")
	}
}

func TestMessageRenderer_RenderAll(t *testing.T) {
	r := NewMessageRenderer(styles.NewTheme(), false, "")
	r.SetWidth(60)
	msgs := []model.Message{
		model.NewMessage(model.RoleModel, "first"),
		model.NewMessage(model.RoleUser, "second"),
	}
	out := r.RenderAll(msgs, "NEO")
	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Error("RenderAll must keep log order")
	}
	if !strings.Contains(r.RenderComputing("*"), "COMPUTING...") {
		t.Error("computing row missing its label")
	}
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestRenderStatusBar(t *testing.T) {
	theme := styles.NewTheme()
	info := StatusInfo{Mode: gemini.ModeFallback, Model: "gemini-2.5-flash", Alias: "NEO", Messages: 3}

	out := RenderStatusBar(theme, info, 80)
	for _, want := range []string{"FALLBACK", "gemini-2.5-flash", "NEO", "MSGS 3", "READY"} {
		if !strings.Contains(out, want) {
			t.Errorf("status bar missing %q: %q", want, out)
		}
	}

	info.Mode = gemini.ModeRemote
	info.Processing = true
	out = RenderStatusBar(theme, info, 80)
	if !strings.Contains(out, "REMOTE") || !strings.Contains(out, "BUSY") {
		t.Errorf("status bar = %q", out)
	}

	if w := lipgloss.Width(RenderStatusBar(theme, info, 30)); w > 30 {
		t.Errorf("narrow status bar width = %d, want <= 30", w)
	}
}
