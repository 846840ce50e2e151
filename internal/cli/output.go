// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// output.go - Line-mode palette for n1k4 commands.
//
// Colors follow the TUI: green for N1K4, blue for the operator, red for
// system notices. fatih/color drops the escapes when color.NoColor is set.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jeranaias/n1k4/internal/model"
	"github.com/jeranaias/n1k4/internal/session"
	"github.com/jeranaias/n1k4/internal/ui/components"
)

var (
	titleColor = color.New(color.FgHiGreen, color.Bold)
	greenColor = color.New(color.FgGreen)
	dimColor   = color.New(color.FgHiBlack)
	userColor  = color.New(color.FgHiBlue, color.Bold)
	alertColor = color.New(color.FgRed, color.Bold)
)

func errorLabel(s string) string {
	return alertColor.Sprint(s)
}

// printStage prints one connection stage.
func printStage(w io.Writer, s session.Status) {
	fmt.Fprintf(w, "%s %s\n", greenColor.Sprintf("[ %s ]", s), dimColor.Sprint(s.Detail()))
}

// printBanner prints the connection banner shown once logged in.
func printBanner(w io.Writer, sess session.Session) {
	fmt.Fprintln(w)
	titleColor.Fprintln(w, "*** ENCRYPTED CONNECTION ESTABLISHED ***")
	greenColor.Fprintln(w, "LOGGED IN AS: "+strings.ToUpper(sess.Username))
	dimColor.Fprintln(w, sess.ConnectedAt.UTC().Format(components.ISOTimestamp))
	fmt.Fprintln(w)
}

// printMessage prints one transcript entry with its label.
func printMessage(w io.Writer, msg model.Message, alias string) {
	label := msg.Role.DisplayName(alias) + " [" + msg.Clock() + "]"
	switch msg.Role {
	case model.RoleUser:
		userColor.Fprintln(w, label)
		fmt.Fprintln(w, msg.Text)
	case model.RoleSystem:
		alertColor.Fprintln(w, label)
		alertColor.Fprintln(w, msg.Text)
	default:
		titleColor.Fprintln(w, label)
		greenColor.Fprintln(w, msg.Text)
	}
	fmt.Fprintln(w)
}
