// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wazgate/wazgate/pkg/config"
	"github.com/wazgate/wazgate/pkg/logger"
	"github.com/wazgate/wazgate/pkg/policy"
	"github.com/wazgate/wazgate/pkg/tools"
)

// newValidateCmd creates the validate command for checking configuration.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and tool policy",
		Long: `Validate the merged configuration (environment and optional file) and the
tool-exposure policy without starting the gateway.

This command checks:
- Target definitions (URLs, credentials, duplicate names)
- Server settings (port range, transport)
- Tool filter patterns compile
and prints the targets (credentials redacted) with the operations that
would be exposed.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.GetString("config"), os.Environ())
			if err != nil {
				return fmt.Errorf("configuration loading failed: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			filter, err := policy.FromSettings(cfg.Filter, os.Getenv)
			if err != nil {
				return fmt.Errorf("tool policy is invalid: %w", err)
			}
			enabled := filter.Apply(tools.DefaultRegistry())

			logger.Infof("✓ Configuration is valid")
			logger.Infof("  Transport: %s on %s:%d", cfg.Server.Transport, cfg.Server.Host, cfg.Server.Port)
			logger.Infof("  Max result bytes: %d", cfg.Limits.MaxResultBytes)
			logger.Infof("  Targets: %d", len(cfg.Targets))
			for _, target := range cfg.Targets {
				logger.Infof("    %s", target)
			}
			if filter.ReadOnly() {
				logger.Infof("  Read-only mode: enabled")
			}
			logger.Infof("  Enabled operations (%d): %s", enabled.Len(), strings.Join(enabled.Names(), ", "))

			return nil
		},
	}
}
