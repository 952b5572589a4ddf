// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package targets maintains the set of configured upstream managers and
// hands out an API client per target, built lazily on first use.
package targets

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/wazgate/wazgate/pkg/config"
	"github.com/wazgate/wazgate/pkg/logger"
	"github.com/wazgate/wazgate/pkg/wazuh"
)

// ErrUnknownTarget indicates that a tool call named a target that is not
// configured. It should be checked using errors.Is().
var ErrUnknownTarget = errors.New("unknown target")

// Factory builds an API client for a target.
type Factory func(cfg config.TargetConfig) (wazuh.API, error)

// Option configures a Registry.
type Option func(*Registry)

// WithFactory overrides how target clients are built.
func WithFactory(factory Factory) Option {
	return func(r *Registry) { r.factory = factory }
}

// Registry maps target names to API clients. Clients are built on first
// use so a target that is never addressed costs nothing, and concurrent
// callers for the same target share a single construction.
type Registry struct {
	configs map[string]config.TargetConfig
	names   []string
	factory Factory

	mu      sync.RWMutex
	clients map[string]wazuh.API
}

// NewRegistry builds a registry over the given targets. Names are
// compared case-insensitively.
func NewRegistry(targetConfigs []config.TargetConfig, opts ...Option) (*Registry, error) {
	if len(targetConfigs) == 0 {
		return nil, errors.New("at least one target is required")
	}

	r := &Registry{
		configs: make(map[string]config.TargetConfig, len(targetConfigs)),
		clients: make(map[string]wazuh.API, len(targetConfigs)),
		factory: defaultFactory,
	}
	for _, target := range targetConfigs {
		name := strings.ToLower(target.Name)
		if _, ok := r.configs[name]; ok {
			return nil, fmt.Errorf("duplicate target name %q", name)
		}
		r.configs[name] = target
		r.names = append(r.names, name)
	}
	slices.Sort(r.names)

	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func defaultFactory(cfg config.TargetConfig) (wazuh.API, error) {
	client, err := wazuh.New(wazuh.Config{
		Name:      cfg.Name,
		BaseURL:   cfg.APIURL,
		Username:  cfg.Username,
		Password:  cfg.Password,
		SSLVerify: cfg.SSLVerify,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Get returns the client for the named target, building it on first use.
func (r *Registry) Get(name string) (wazuh.API, error) {
	key := strings.ToLower(name)

	r.mu.RLock()
	client, ok := r.clients[key]
	r.mu.RUnlock()
	if ok {
		return client, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have built the client while we waited.
	if client, ok := r.clients[key]; ok {
		return client, nil
	}

	cfg, ok := r.configs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, name)
	}

	client, err := r.factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build client for target %s: %w", key, err)
	}
	r.clients[key] = client
	logger.Debugf("built client for target %s", key)
	return client, nil
}

// Default returns the client for the sole configured target. It fails
// when several targets are configured, since no single default exists.
func (r *Registry) Default() (wazuh.API, error) {
	if len(r.names) != 1 {
		return nil, fmt.Errorf("no default target: %d targets configured", len(r.names))
	}
	return r.Get(r.names[0])
}

// Names returns the configured target names in sorted order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Len returns the number of configured targets.
func (r *Registry) Len() int {
	return len(r.names)
}

// Close releases every built client. The registry stays usable; clients
// are rebuilt on next use.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for name, client := range r.clients {
		if closer, ok := client.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing client for target %s: %w", name, err))
			}
		}
		delete(r.clients, name)
	}
	return errors.Join(errs...)
}
