// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package app provides the entry point for the wazgate command-line application.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wazgate/wazgate/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:               "wazgate",
	DisableAutoGenTag: true,
	Short:             "MCP gateway for Wazuh managers",
	Long: `Wazgate exposes the Wazuh manager REST API to MCP (Model Context Protocol)
clients as a curated set of tools. It handles token caching, multi-target
routing, and tool-exposure policy so that assistants can query agents,
syscollector inventory, rules, and SCA results without holding manager
credentials themselves.

Targets are configured through WAZUH_* environment variables, a YAML file,
or both; environment entries win on name conflicts.`,
	Run: func(cmd *cobra.Command, _ []string) {
		// If no subcommand is provided, print help
		if err := cmd.Help(); err != nil {
			logger.Errorf("Error displaying help: %v", err)
		}
	},
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.Initialize()
	},
}

// NewRootCmd creates a new root command for the wazgate CLI.
func NewRootCmd() *cobra.Command {
	// Add persistent flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	if err != nil {
		logger.Errorf("Error binding debug flag: %v", err)
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to wazgate configuration file")
	err = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	if err != nil {
		logger.Errorf("Error binding config flag: %v", err)
	}

	// Add subcommands
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Silence printing the usage on error
	rootCmd.SilenceUsage = true

	return rootCmd
}
