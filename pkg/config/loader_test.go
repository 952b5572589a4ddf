// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvironMultiTarget(t *testing.T) {
	t.Parallel()

	environ := []string{
		"PATH=/usr/bin",
		"WAZUH_PROD_URL=https://prod.example.com:55000",
		"WAZUH_PROD_USERNAME=wazuh-wui",
		"WAZUH_PROD_PASSWORD=secret",
		"WAZUH_DR_URL=https://dr.example.com:55000",
		"WAZUH_DR_USERNAME=wazuh-wui",
		"WAZUH_DR_PASSWORD=other",
		"WAZUH_DR_SSL_VERIFY=false",
		"WAZUH_DR_TIMEOUT=60",
	}

	targets := FromEnviron(environ)
	require.Len(t, targets, 2)

	// Sorted by variable name, so dr comes first.
	assert.Equal(t, "dr", targets[0].Name)
	assert.Equal(t, "https://dr.example.com:55000", targets[0].APIURL)
	assert.False(t, targets[0].SSLVerify)
	assert.Equal(t, 60*time.Second, targets[0].Timeout)

	assert.Equal(t, "prod", targets[1].Name)
	assert.Equal(t, "https://prod.example.com:55000", targets[1].APIURL)
	assert.Equal(t, "secret", targets[1].Password)
	assert.True(t, targets[1].SSLVerify)
	assert.Equal(t, defaultTimeout, targets[1].Timeout)
}

func TestFromEnvironSkipsIncompleteEntries(t *testing.T) {
	t.Parallel()

	environ := []string{
		"WAZUH_STAGE_URL=https://stage.example.com:55000",
		"WAZUH_STAGE_USERNAME=wazuh-wui",
		// No password, so the entry must be dropped.
		"WAZUH_LAB_URL=https://lab.example.com:55000",
		// Neither username nor password.
	}

	assert.Empty(t, FromEnviron(environ))
}

func TestFromEnvironSingleTarget(t *testing.T) {
	t.Parallel()

	environ := []string{
		"WAZUH_API_URL=https://wazuh.example.com:55000",
		"WAZUH_USERNAME=wazuh-wui",
		"WAZUH_PASSWORD=secret",
		"WAZUH_SSL_VERIFY=no",
		"WAZUH_TIMEOUT=45",
	}

	targets := FromEnviron(environ)
	require.Len(t, targets, 1)
	assert.Equal(t, "default", targets[0].Name)
	assert.Equal(t, "https://wazuh.example.com:55000", targets[0].APIURL)
	assert.Equal(t, "wazuh-wui", targets[0].Username)
	assert.False(t, targets[0].SSLVerify)
	assert.Equal(t, 45*time.Second, targets[0].Timeout)
}

func TestFromEnvironSingleTargetWithoutCredentials(t *testing.T) {
	t.Parallel()

	environ := []string{
		"WAZUH_API_URL=https://wazuh.example.com:55000",
		"WAZUH_USERNAME=wazuh-wui",
	}

	assert.Empty(t, FromEnviron(environ))
}

func TestFromEnvironMixedForms(t *testing.T) {
	t.Parallel()

	environ := []string{
		"WAZUH_API_URL=https://wazuh.example.com:55000",
		"WAZUH_USERNAME=wazuh-wui",
		"WAZUH_PASSWORD=secret",
		"WAZUH_PROD_URL=https://prod.example.com:55000",
		"WAZUH_PROD_USERNAME=wazuh-wui",
		"WAZUH_PROD_PASSWORD=other",
	}

	targets := FromEnviron(environ)
	require.Len(t, targets, 2)
	assert.Equal(t, "prod", targets[0].Name)
	assert.Equal(t, "default", targets[1].Name)
}

func TestFalsy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"true", false},
		{"1", false},
		{"yes", false},
		{"anything", false},
		{"0", true},
		{"false", true},
		{"FALSE", true},
		{"False", true},
		{"no", true},
		{"NO", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, falsy(tt.value), "falsy(%q)", tt.value)
	}
}

func TestTimeoutFromEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", defaultTimeout},
		{"60", 60 * time.Second},
		{"1", time.Second},
		{"abc", defaultTimeout},
		{"-5", defaultTimeout},
		{"0", defaultTimeout},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timeoutFromEnv(tt.value), "timeoutFromEnv(%q)", tt.value)
	}
}

func TestParseEnviron(t *testing.T) {
	t.Parallel()

	env := parseEnviron([]string{"A=1", "B=x=y", "MALFORMED", "A=2"})
	assert.Equal(t, "2", env["A"])
	assert.Equal(t, "x=y", env["B"])
	assert.NotContains(t, env, "MALFORMED")
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wazgate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
server:
  host: 0.0.0.0
  port: 9000
  transport: stdio
clusters:
  Prod:
    api_url: https://prod.example.com:55000
    username: wazuh-wui
    password: secret
  dr:
    api_url: https://dr.example.com:55000
    username: wazuh-wui
    password: other
    ssl_verify: false
    timeout: 90
filter:
  disabled_tools:
    - authenticate
  disabled_categories:
    - sca
  read_only: true
limits:
  max_result_bytes: 32000
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, 32000, cfg.Limits.MaxResultBytes)
	assert.Equal(t, []string{"authenticate"}, cfg.Filter.DisabledTools)
	assert.Equal(t, []string{"sca"}, cfg.Filter.DisabledCategories)
	assert.True(t, cfg.Filter.ReadOnly)

	require.Len(t, cfg.Targets, 2)
	assert.Equal(t, "dr", cfg.Targets[0].Name)
	assert.False(t, cfg.Targets[0].SSLVerify)
	assert.Equal(t, 90*time.Second, cfg.Targets[0].Timeout)
	// Cluster names are lowercased.
	assert.Equal(t, "prod", cfg.Targets[1].Name)
	assert.True(t, cfg.Targets[1].SSLVerify)
	assert.Equal(t, defaultTimeout, cfg.Targets[1].Timeout)

	require.NoError(t, cfg.Validate())
}

func TestLoadFilePartial(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
clusters:
  prod:
    api_url: https://prod.example.com:55000
    username: wazuh-wui
    password: secret
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	// Unset sections keep their defaults.
	assert.Equal(t, DefaultHost, cfg.Server.Host)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultMaxResultBytes, cfg.Limits.MaxResultBytes)
	require.Len(t, cfg.Targets, 1)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
clusters:
  prod:
    api_url: https://old.example.com:55000
    username: old-user
    password: old-pass
`)

	environ := []string{
		"WAZUH_PROD_URL=https://new.example.com:55000",
		"WAZUH_PROD_USERNAME=new-user",
		"WAZUH_PROD_PASSWORD=new-pass",
		"WAZUH_DR_URL=https://dr.example.com:55000",
		"WAZUH_DR_USERNAME=wazuh-wui",
		"WAZUH_DR_PASSWORD=secret",
	}

	cfg, err := Load(path, environ)
	require.NoError(t, err)
	require.Len(t, cfg.Targets, 2)

	assert.Equal(t, "prod", cfg.Targets[0].Name)
	assert.Equal(t, "https://new.example.com:55000", cfg.Targets[0].APIURL)
	assert.Equal(t, "new-user", cfg.Targets[0].Username)
	assert.Equal(t, "dr", cfg.Targets[1].Name)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Parallel()

	environ := []string{
		"WAZUH_API_URL=https://wazuh.example.com:55000",
		"WAZUH_USERNAME=wazuh-wui",
		"WAZUH_PASSWORD=secret",
	}

	cfg, err := Load("", environ)
	require.NoError(t, err)
	require.Len(t, cfg.Targets, 1)
	assert.Equal(t, "default", cfg.Targets[0].Name)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadMalformedFile(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "clusters: [not: a: map")
	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
