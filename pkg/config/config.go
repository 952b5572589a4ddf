// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides the configuration model for wazgate: the
// targets to front, the tool filter, and the server settings. Values
// come from a YAML file, the environment, or both; once loaded the
// configuration is immutable.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// ErrInvalidConfig indicates that the loaded configuration failed
// validation. It should be checked using errors.Is().
var ErrInvalidConfig = errors.New("invalid configuration")

// Transport names accepted by the server.
const (
	TransportStreamableHTTP = "streamable-http"
	TransportStdio          = "stdio"
)

// Defaults applied when neither the file nor the environment sets a value.
const (
	// DefaultHost is the interface the HTTP transport binds to.
	DefaultHost = "127.0.0.1"
	// DefaultPort is the port the HTTP transport binds to.
	DefaultPort = 8000
	// DefaultMaxResultBytes caps tool responses before truncation.
	DefaultMaxResultBytes = 16000
	// defaultTimeout bounds each upstream request.
	defaultTimeout = 30 * time.Second

	// minResultBytes and maxResultBytes bound the configurable cap.
	minResultBytes = 1024
	maxResultBytes = 1_000_000
)

// redactedPlaceholder replaces secrets in string representations.
const redactedPlaceholder = "[REDACTED]"

// TargetConfig describes one upstream manager instance.
type TargetConfig struct {
	// Name identifies the target in tool calls, logs and metrics.
	// Always lowercase.
	Name string `yaml:"-"`
	// APIURL is the manager API root, e.g. https://wazuh.example:55000.
	APIURL string `yaml:"api_url"`
	// Username and Password are the basic-auth bootstrap credentials.
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// SSLVerify controls server certificate verification.
	SSLVerify bool `yaml:"-"`
	// Timeout bounds each request to this target.
	Timeout time.Duration `yaml:"-"`
}

// String implements fmt.Stringer, redacting the password.
func (t TargetConfig) String() string {
	return fmt.Sprintf("%s (%s, user=%s, password=%s, ssl_verify=%t, timeout=%s)",
		t.Name, t.APIURL, t.Username, redactedPlaceholder, t.SSLVerify, t.Timeout)
}

// LogValue implements slog.LogValuer, redacting the password. Without it
// the JSON log handler would serialize the raw struct.
func (t TargetConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", t.Name),
		slog.String("api_url", t.APIURL),
		slog.String("username", t.Username),
		slog.String("password", redactedPlaceholder),
		slog.Bool("ssl_verify", t.SSLVerify),
		slog.Duration("timeout", t.Timeout),
	)
}

// validate checks a single target entry.
func (t TargetConfig) validate() error {
	if t.Name == "" {
		return fmt.Errorf("target name is required")
	}
	if t.APIURL == "" {
		return fmt.Errorf("target %s: api_url is required", t.Name)
	}
	parsed, err := url.Parse(t.APIURL)
	if err != nil {
		return fmt.Errorf("target %s: api_url: %v", t.Name, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("target %s: api_url scheme must be http or https, got %q", t.Name, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("target %s: api_url has no host", t.Name)
	}
	if t.Username == "" {
		return fmt.Errorf("target %s: username is required", t.Name)
	}
	if t.Password == "" {
		return fmt.Errorf("target %s: password is required", t.Name)
	}
	return nil
}

// ServerSettings configures the transport shell.
type ServerSettings struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Transport string `yaml:"transport"`
}

// FilterSettings is the file-sourced half of the tool filter. The policy
// package unions it with the environment-sourced half.
type FilterSettings struct {
	DisabledTools      []string `yaml:"disabled_tools"`
	DisabledCategories []string `yaml:"disabled_categories"`
	DisabledRegex      []string `yaml:"disabled_regex"`
	ReadOnly           bool     `yaml:"read_only"`
}

// Limits bounds response handling.
type Limits struct {
	// MaxResultBytes caps a tool response before truncation kicks in.
	MaxResultBytes int `yaml:"max_result_bytes"`
}

// Config is the fully resolved wazgate configuration.
type Config struct {
	Server  ServerSettings
	Targets []TargetConfig
	Filter  FilterSettings
	Limits  Limits
}

// Default returns a Config populated with defaults and no targets.
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Host:      DefaultHost,
			Port:      DefaultPort,
			Transport: TransportStreamableHTTP,
		},
		Limits: Limits{
			MaxResultBytes: DefaultMaxResultBytes,
		},
	}
}

// Validate performs comprehensive validation of the configuration.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: configuration is nil", ErrInvalidConfig)
	}

	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server port %d is out of range", c.Server.Port))
	}
	switch c.Server.Transport {
	case TransportStreamableHTTP, TransportStdio:
	default:
		problems = append(problems, fmt.Sprintf("transport must be %s or %s, got %q",
			TransportStreamableHTTP, TransportStdio, c.Server.Transport))
	}

	if c.Limits.MaxResultBytes < minResultBytes || c.Limits.MaxResultBytes > maxResultBytes {
		problems = append(problems, fmt.Sprintf("max_result_bytes must be between %d and %d, got %d",
			minResultBytes, maxResultBytes, c.Limits.MaxResultBytes))
	}

	if len(c.Targets) == 0 {
		problems = append(problems, "at least one target is required (set WAZUH_API_URL or configure clusters)")
	}

	seen := make(map[string]bool, len(c.Targets))
	for _, target := range c.Targets {
		if err := target.validate(); err != nil {
			problems = append(problems, err.Error())
			continue
		}
		name := strings.ToLower(target.Name)
		if seen[name] {
			problems = append(problems, fmt.Sprintf("duplicate target name %q", name))
		}
		seen[name] = true
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidConfig, strings.Join(problems, "\n  - "))
	}
	return nil
}

// MultiTarget reports whether more than one target is configured.
func (c *Config) MultiTarget() bool {
	return len(c.Targets) > 1
}
