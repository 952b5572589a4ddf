// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wazgate/wazgate/pkg/config"
	"github.com/wazgate/wazgate/pkg/dispatch"
	"github.com/wazgate/wazgate/pkg/logger"
	"github.com/wazgate/wazgate/pkg/policy"
	"github.com/wazgate/wazgate/pkg/server"
	"github.com/wazgate/wazgate/pkg/targets"
	"github.com/wazgate/wazgate/pkg/tools"
)

// newServeCmd creates the serve command for starting the gateway.
func newServeCmd() *cobra.Command {
	var (
		host           string
		port           int
		transport      string
		maxResultBytes int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP gateway",
		Long: `Start the MCP gateway and serve the enabled tool catalogue.

Configuration is read from WAZUH_* environment variables and, when --config
is given, from a YAML file; environment entries win on name conflicts.
Flags override the listen address, transport, and result size limit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.GetString("config"), os.Environ())
			if err != nil {
				return fmt.Errorf("configuration loading failed: %w", err)
			}

			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("transport") {
				cfg.Server.Transport = transport
			}
			if cmd.Flags().Changed("max-result-bytes") {
				cfg.Limits.MaxResultBytes = maxResultBytes
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&host, "host", config.DefaultHost, "Host to listen on")
	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "Port to listen on")
	cmd.Flags().StringVar(&transport, "transport", config.TransportStreamableHTTP,
		fmt.Sprintf("MCP transport (%q or %q)", config.TransportStreamableHTTP, config.TransportStdio))
	cmd.Flags().IntVar(&maxResultBytes, "max-result-bytes", config.DefaultMaxResultBytes,
		"Tail-truncate tool results beyond this many bytes")

	return cmd
}

// runServe wires the policy, target registry, dispatcher, and server, then
// serves until ctx is cancelled.
func runServe(ctx context.Context, cfg *config.Config) error {
	filter, err := policy.FromSettings(cfg.Filter, os.Getenv)
	if err != nil {
		return fmt.Errorf("failed to build tool policy: %w", err)
	}

	enabled := filter.Apply(tools.DefaultRegistry())
	if enabled.Len() == 0 {
		return fmt.Errorf("tool policy disables every operation")
	}

	registry, err := targets.NewRegistry(cfg.Targets)
	if err != nil {
		return fmt.Errorf("failed to build target registry: %w", err)
	}
	defer func() {
		if err := registry.Close(); err != nil {
			logger.Warnf("Failed to close target clients: %v", err)
		}
	}()

	dispatcher := dispatch.New(registry, enabled, cfg.Limits.MaxResultBytes)

	logger.Infof("Serving %d operations for %d targets", enabled.Len(), registry.Len())
	if filter.ReadOnly() {
		logger.Info("Read-only mode enabled: non-read operations are hidden")
	}

	return server.New(cfg.Server, registry, dispatcher).Start(ctx)
}
