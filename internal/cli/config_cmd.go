// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/n1k4/internal/config"
)

func newConfigCommand(rt *runtime) *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after the config file, .env and environment
overrides have been applied. The API key is redacted.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if showPath {
				path := rt.flags.configPath
				if path == "" {
					p, err := config.ConfigPathTOML()
					if err != nil {
						return err
					}
					path = p
				}
				fmt.Fprintln(out, path)
				return nil
			}
			return rt.cfg.WriteTOML(out)
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "print the config file path instead")
	return cmd
}
