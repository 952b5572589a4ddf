// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wazgate/wazgate/pkg/logger"
)

// Environment variables for the single-target form.
const (
	envAPIURL    = "WAZUH_API_URL"
	envUsername  = "WAZUH_USERNAME"
	envPassword  = "WAZUH_PASSWORD"
	envSSLVerify = "WAZUH_SSL_VERIFY"
	envTimeout   = "WAZUH_TIMEOUT"
)

// Multi-target variables follow WAZUH_<NAME>_URL with matching
// _USERNAME, _PASSWORD and optional _SSL_VERIFY and _TIMEOUT suffixes.
const (
	envPrefix    = "WAZUH_"
	envURLSuffix = "_URL"
)

// Load builds the configuration from the optional YAML file at path and
// the process environment, typically os.Environ(). Targets discovered
// from the environment win over file entries with the same name. An
// empty path skips the file entirely. The result is not validated;
// callers run Validate separately.
func Load(path string, environ []string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	mergeTargets(cfg, FromEnviron(environ))

	return cfg, nil
}

// fileConfig mirrors the YAML configuration file layout.
type fileConfig struct {
	Server   *ServerSettings       `yaml:"server"`
	Clusters map[string]fileTarget `yaml:"clusters"`
	Filter   *FilterSettings       `yaml:"filter"`
	Limits   *Limits               `yaml:"limits"`
}

// fileTarget is a cluster entry in the configuration file. SSLVerify is
// a pointer so an absent key keeps verification on.
type fileTarget struct {
	APIURL    string `yaml:"api_url"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	SSLVerify *bool  `yaml:"ssl_verify"`
	Timeout   int    `yaml:"timeout"`
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if file.Server != nil {
		if file.Server.Host != "" {
			cfg.Server.Host = file.Server.Host
		}
		if file.Server.Port != 0 {
			cfg.Server.Port = file.Server.Port
		}
		if file.Server.Transport != "" {
			cfg.Server.Transport = file.Server.Transport
		}
	}
	if file.Filter != nil {
		cfg.Filter = *file.Filter
	}
	if file.Limits != nil && file.Limits.MaxResultBytes != 0 {
		cfg.Limits.MaxResultBytes = file.Limits.MaxResultBytes
	}

	names := make([]string, 0, len(file.Clusters))
	for name := range file.Clusters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := file.Clusters[name]
		target := TargetConfig{
			Name:      strings.ToLower(name),
			APIURL:    entry.APIURL,
			Username:  entry.Username,
			Password:  entry.Password,
			SSLVerify: true,
			Timeout:   defaultTimeout,
		}
		if entry.SSLVerify != nil {
			target.SSLVerify = *entry.SSLVerify
		}
		if entry.Timeout > 0 {
			target.Timeout = time.Duration(entry.Timeout) * time.Second
		}
		cfg.Targets = append(cfg.Targets, target)
	}
	return nil
}

// FromEnviron discovers targets from KEY=VALUE environment pairs.
// Entries missing a username or password are skipped so unrelated
// WAZUH_*_URL variables cannot produce half-configured targets.
func FromEnviron(environ []string) []TargetConfig {
	env := parseEnviron(environ)

	var targets []TargetConfig

	// Multi-target form: WAZUH_<NAME>_URL. Names are sorted so discovery
	// order does not depend on environment iteration order.
	middles := make([]string, 0)
	for key := range env {
		if !strings.HasPrefix(key, envPrefix) || !strings.HasSuffix(key, envURLSuffix) {
			continue
		}
		middle := key[len(envPrefix) : len(key)-len(envURLSuffix)]
		if middle == "" {
			continue
		}
		middles = append(middles, middle)
	}
	sort.Strings(middles)

	for _, middle := range middles {
		if target, ok := targetFromEnv(env, middle); ok {
			targets = append(targets, target)
		}
	}

	// Single-target form: WAZUH_API_URL with top-level credentials,
	// registered under the name "default". The same URL variable also
	// matches the multi-target scan above, but without a
	// WAZUH_API_USERNAME it is skipped there.
	if apiURL := env[envAPIURL]; apiURL != "" {
		if env[envUsername] == "" || env[envPassword] == "" {
			logger.Debugf("ignoring %s: %s or %s is not set", envAPIURL, envUsername, envPassword)
		} else {
			targets = append(targets, TargetConfig{
				Name:      "default",
				APIURL:    apiURL,
				Username:  env[envUsername],
				Password:  env[envPassword],
				SSLVerify: !falsy(env[envSSLVerify]),
				Timeout:   timeoutFromEnv(env[envTimeout]),
			})
		}
	}

	return targets
}

func targetFromEnv(env map[string]string, middle string) (TargetConfig, bool) {
	name := strings.ToLower(middle)
	username := env[envPrefix+middle+"_USERNAME"]
	password := env[envPrefix+middle+"_PASSWORD"]
	if username == "" || password == "" {
		logger.Debugf("ignoring target %s: %s_USERNAME or _PASSWORD is not set", name, envPrefix+middle)
		return TargetConfig{}, false
	}
	return TargetConfig{
		Name:      name,
		APIURL:    env[envPrefix+middle+envURLSuffix],
		Username:  username,
		Password:  password,
		SSLVerify: !falsy(env[envPrefix+middle+"_SSL_VERIFY"]),
		Timeout:   timeoutFromEnv(env[envPrefix+middle+"_TIMEOUT"]),
	}, true
}

// mergeTargets overlays discovered targets onto cfg, replacing file
// entries that share a name.
func mergeTargets(cfg *Config, discovered []TargetConfig) {
	byName := make(map[string]int, len(cfg.Targets))
	for i, target := range cfg.Targets {
		byName[strings.ToLower(target.Name)] = i
	}
	for _, target := range discovered {
		if i, ok := byName[strings.ToLower(target.Name)]; ok {
			logger.Debugf("environment overrides file entry for target %s", target.Name)
			cfg.Targets[i] = target
			continue
		}
		cfg.Targets = append(cfg.Targets, target)
	}
}

// parseEnviron splits KEY=VALUE pairs into a map, keeping the last
// occurrence of duplicate keys.
func parseEnviron(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		env[key] = value
	}
	return env
}

// falsy reports whether value disables a boolean option. Unset or
// unrecognized values leave the option enabled.
func falsy(value string) bool {
	switch strings.ToLower(value) {
	case "0", "false", "no":
		return true
	}
	return false
}

func timeoutFromEnv(value string) time.Duration {
	if value == "" {
		return defaultTimeout
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		logger.Warnf("invalid timeout %q, using default %s", value, defaultTimeout)
		return defaultTimeout
	}
	return time.Duration(seconds) * time.Second
}
