// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

package wazuh

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -destination=mocks/mock_api.go -package=mocks -source=api.go API

// API is the manager surface tool handlers program against. *Client is
// the production implementation; tests substitute the generated mock.
type API interface {
	// Authenticate forces a fresh credential exchange.
	Authenticate(ctx context.Context) (*AuthStatus, error)
	// GetAgents lists agents matching the query.
	GetAgents(ctx context.Context, q AgentsQuery) (json.RawMessage, error)
	// GetAgent fetches a single agent by its id.
	GetAgent(ctx context.Context, agentID string) (json.RawMessage, error)
	// GetAgentPorts lists the agent's open ports from syscollector.
	GetAgentPorts(ctx context.Context, agentID string, q PortsQuery) (json.RawMessage, error)
	// GetAgentPackages lists the agent's installed packages from syscollector.
	GetAgentPackages(ctx context.Context, agentID string, q PackagesQuery) (json.RawMessage, error)
	// GetAgentProcesses lists the agent's running processes from syscollector.
	GetAgentProcesses(ctx context.Context, agentID string, q ProcessesQuery) (json.RawMessage, error)
	// ListRules lists detection rules matching the query.
	ListRules(ctx context.Context, q RulesQuery) (json.RawMessage, error)
	// GetRuleFileContent fetches one rule file, parsed or raw.
	GetRuleFileContent(ctx context.Context, filename string, opts RuleFileOptions) (json.RawMessage, error)
	// GetAgentSCA lists configuration assessment policies for the agent.
	GetAgentSCA(ctx context.Context, agentID string, q SCAQuery) (json.RawMessage, error)
	// GetSCAPolicyChecks lists the checks of one assessment policy.
	GetSCAPolicyChecks(ctx context.Context, agentID, policyID string, q SCAChecksQuery) (json.RawMessage, error)
}

// API is implemented by *Client.
var _ API = (*Client)(nil)
