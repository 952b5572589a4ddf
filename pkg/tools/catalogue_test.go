// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wazgate/wazgate/pkg/wazuh"
	"github.com/wazgate/wazgate/pkg/wazuh/mocks"
)

var sampleBody = json.RawMessage(`{"data":{"affected_items":[]}}`)

func TestDefaultRegistryCatalogue(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	assert.Equal(t, []string{
		"authenticate",
		"get_agents",
		"get_agent",
		"get_agent_ports",
		"get_agent_packages",
		"get_agent_processes",
		"list_rules",
		"get_rule_file_content",
		"get_agent_sca",
		"get_sca_policy_checks",
	}, r.Names())

	for _, d := range r.All() {
		assert.NotEmpty(t, d.Category, "tool %s has no category", d.Name)
		assert.NotEmpty(t, d.Description, "tool %s has no description", d.Name)
		assert.NotNil(t, d.Handler, "tool %s has no handler", d.Name)
		assert.Equal(t, "object", d.InputSchema.Type, "tool %s schema", d.Name)
		assert.Contains(t, d.InputSchema.Properties, "target", "tool %s schema lacks target", d.Name)
		if d.Name == "authenticate" {
			assert.Equal(t, http.MethodPost, d.HTTPMethod)
		} else {
			assert.Equal(t, http.MethodGet, d.HTTPMethod, "tool %s verb", d.Name)
		}
	}
}

func TestHandleAuthenticate(t *testing.T) {
	t.Parallel()

	api := mocks.NewMockAPI(gomock.NewController(t))
	status := &wazuh.AuthStatus{Status: "authenticated"}
	api.EXPECT().Authenticate(gomock.Any()).Return(status, nil)

	got, err := runTool(t, "authenticate", api, nil)
	require.NoError(t, err)
	assert.Same(t, status, got)
}

func TestHandleGetAgents(t *testing.T) {
	t.Parallel()

	t.Run("forwards query", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockAPI(gomock.NewController(t))
		want := wazuh.AgentsQuery{
			ListQuery: wazuh.ListQuery{Limit: 25, Search: "web"},
			Status:    []string{"active", "disconnected"},
		}
		api.EXPECT().GetAgents(gomock.Any(), want).Return(sampleBody, nil)

		got, err := runTool(t, "get_agents", api, map[string]any{
			"limit":  float64(25),
			"search": "web",
			"status": []any{"active", "disconnected"},
		})
		require.NoError(t, err)
		assert.Equal(t, any(sampleBody), got)
	})

	t.Run("rejects wrong argument type", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockAPI(gomock.NewController(t))

		_, err := runTool(t, "get_agents", api, map[string]any{"limit": "everything"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArguments)
	})

	t.Run("rejects out of range limit", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockAPI(gomock.NewController(t))

		_, err := runTool(t, "get_agents", api, map[string]any{"limit": float64(200000)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArguments)
	})
}

func TestHandleGetAgent(t *testing.T) {
	t.Parallel()

	t.Run("fetches by id", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockAPI(gomock.NewController(t))
		api.EXPECT().GetAgent(gomock.Any(), "001").Return(sampleBody, nil)

		_, err := runTool(t, "get_agent", api, map[string]any{"agent_id": "001"})
		require.NoError(t, err)
	})

	t.Run("requires agent id", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockAPI(gomock.NewController(t))

		_, err := runTool(t, "get_agent", api, map[string]any{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArguments)
	})

	t.Run("rejects malformed agent id", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockAPI(gomock.NewController(t))

		_, err := runTool(t, "get_agent", api, map[string]any{"agent_id": "1; DROP"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArguments)
	})
}

func TestHandleSyscollectorTools(t *testing.T) {
	t.Parallel()

	t.Run("ports", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockAPI(gomock.NewController(t))
		want := wazuh.PortsQuery{Protocol: "tcp", LocalIP: "10.0.0.5", State: "listening"}
		api.EXPECT().GetAgentPorts(gomock.Any(), "003", want).Return(sampleBody, nil)

		_, err := runTool(t, "get_agent_ports", api, map[string]any{
			"agent_id": "003",
			"protocol": "tcp",
			"local_ip": "10.0.0.5",
			"state":    "listening",
		})
		require.NoError(t, err)
	})

	t.Run("packages", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockAPI(gomock.NewController(t))
		want := wazuh.PackagesQuery{Name: "openssl", Format: "deb"}
		api.EXPECT().GetAgentPackages(gomock.Any(), "003", want).Return(sampleBody, nil)

		_, err := runTool(t, "get_agent_packages", api, map[string]any{
			"agent_id": "003",
			"name":     "openssl",
			"format":   "deb",
		})
		require.NoError(t, err)
	})

	t.Run("processes", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockAPI(gomock.NewController(t))
		want := wazuh.ProcessesQuery{Name: "sshd", EUser: "root"}
		api.EXPECT().GetAgentProcesses(gomock.Any(), "003", want).Return(sampleBody, nil)

		_, err := runTool(t, "get_agent_processes", api, map[string]any{
			"agent_id": "003",
			"name":     "sshd",
			"euser":    "root",
		})
		require.NoError(t, err)
	})

	t.Run("all require agent id", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockAPI(gomock.NewController(t))

		for _, name := range []string{"get_agent_ports", "get_agent_packages", "get_agent_processes"} {
			_, err := runTool(t, name, api, map[string]any{})
			assert.ErrorIs(t, err, ErrInvalidArguments, "tool %s", name)
		}
	})
}

func TestHandleListRules(t *testing.T) {
	t.Parallel()

	api := mocks.NewMockAPI(gomock.NewController(t))
	want := wazuh.RulesQuery{
		RuleIDs:   []int{1002, 1003},
		Group:     "sshd",
		NIST80053: "AC-7",
	}
	api.EXPECT().ListRules(gomock.Any(), want).Return(sampleBody, nil)

	_, err := runTool(t, "list_rules", api, map[string]any{
		"rule_ids":    []any{float64(1002), float64(1003)},
		"group":       "sshd",
		"nist_800_53": "AC-7",
	})
	require.NoError(t, err)
}

func TestHandleGetRuleFileContent(t *testing.T) {
	t.Parallel()

	t.Run("raw content", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockAPI(gomock.NewController(t))
		want := wazuh.RuleFileOptions{Raw: true}
		api.EXPECT().GetRuleFileContent(gomock.Any(), "0010-rules_config.xml", want).Return(sampleBody, nil)

		_, err := runTool(t, "get_rule_file_content", api, map[string]any{
			"filename": "0010-rules_config.xml",
			"raw":      true,
		})
		require.NoError(t, err)
	})

	t.Run("requires filename", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockAPI(gomock.NewController(t))

		_, err := runTool(t, "get_rule_file_content", api, map[string]any{"raw": true})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArguments)
	})
}

func TestHandleSCATools(t *testing.T) {
	t.Parallel()

	t.Run("policies", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockAPI(gomock.NewController(t))
		want := wazuh.SCAQuery{Name: "CIS"}
		api.EXPECT().GetAgentSCA(gomock.Any(), "001", want).Return(sampleBody, nil)

		_, err := runTool(t, "get_agent_sca", api, map[string]any{
			"agent_id": "001",
			"name":     "CIS",
		})
		require.NoError(t, err)
	})

	t.Run("checks", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockAPI(gomock.NewController(t))
		want := wazuh.SCAChecksQuery{Result: "failed"}
		api.EXPECT().GetSCAPolicyChecks(gomock.Any(), "001", "cis_debian10", want).Return(sampleBody, nil)

		_, err := runTool(t, "get_sca_policy_checks", api, map[string]any{
			"agent_id":  "001",
			"policy_id": "cis_debian10",
			"result":    "failed",
		})
		require.NoError(t, err)
	})

	t.Run("checks require policy id", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockAPI(gomock.NewController(t))

		_, err := runTool(t, "get_sca_policy_checks", api, map[string]any{"agent_id": "001"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArguments)
		assert.Contains(t, err.Error(), "policy_id")
	})
}

// runTool resolves a catalogue handler by name and invokes it.
func runTool(t *testing.T, name string, api wazuh.API, args map[string]any) (any, error) {
	t.Helper()
	d, err := DefaultRegistry().Get(name)
	require.NoError(t, err)
	return d.Handler(context.Background(), api, args)
}
