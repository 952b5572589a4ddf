// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/wazgate/wazgate/pkg/config"
	"github.com/wazgate/wazgate/pkg/logger"
	"github.com/wazgate/wazgate/pkg/targets"
	"github.com/wazgate/wazgate/pkg/wazuh"
)

const (
	// maxProbeTries bounds the authentication attempts per target.
	maxProbeTries = 3

	// probeInitialInterval is the delay before the first retry.
	probeInitialInterval = 500 * time.Millisecond
)

// newCheckCmd creates the check command for probing target connectivity.
func newCheckCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Probe connectivity to every configured target",
		Long: `Authenticate once against every configured Wazuh manager and report the
outcome per target. Transient failures are retried with exponential
backoff before a target is marked as failed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.GetString("config"), os.Environ())
			if err != nil {
				return fmt.Errorf("configuration loading failed: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			return runCheck(cmd.Context(), cfg, timeout)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Overall probe deadline")

	return cmd
}

type probeResult struct {
	target string
	expiry time.Time
	err    error
}

// runCheck probes all targets in parallel and prints an OK/FAIL line per
// target. It returns an error if any probe failed.
func runCheck(ctx context.Context, cfg *config.Config, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	registry, err := targets.NewRegistry(cfg.Targets)
	if err != nil {
		return fmt.Errorf("failed to build target registry: %w", err)
	}
	defer func() {
		if err := registry.Close(); err != nil {
			logger.Warnf("Failed to close target clients: %v", err)
		}
	}()

	names := registry.Names()
	results := make([]probeResult, len(names))

	// One goroutine per target; a failed probe is recorded, not fatal, so
	// every target gets a line in the report.
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			results[i] = probeTarget(ctx, registry, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		if result.err != nil {
			failed++
			fmt.Printf("FAIL  %-12s %v\n", result.target, result.err)
			continue
		}
		fmt.Printf("OK    %-12s token expires %s\n", result.target, result.expiry.Format(time.RFC3339))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d targets failed the connectivity check", failed, len(names))
	}
	return nil
}

// probeTarget authenticates against one target with bounded retries.
func probeTarget(ctx context.Context, registry *targets.Registry, name string) probeResult {
	api, err := registry.Get(name)
	if err != nil {
		return probeResult{target: name, err: err}
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = probeInitialInterval

	status, err := backoff.Retry(ctx,
		func() (*wazuh.AuthStatus, error) {
			return api.Authenticate(ctx)
		},
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxTries(maxProbeTries),
		backoff.WithNotify(func(err error, duration time.Duration) {
			logger.Debugf("Retrying target %s after %v: %v", name, duration, err)
		}),
	)
	if err != nil {
		return probeResult{target: name, err: err}
	}
	return probeResult{target: name, expiry: status.TokenExpiry}
}
