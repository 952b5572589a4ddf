// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

package wazuh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// AuthStatus reports the outcome of a forced re-authentication.
type AuthStatus struct {
	Status      string    `json:"status"`
	TokenExpiry time.Time `json:"token_expiry"`
}

// Authenticate drops the cached token and performs a fresh credential
// exchange, returning the new expiry.
func (c *Client) Authenticate(ctx context.Context) (*AuthStatus, error) {
	if _, err := c.forceRefresh(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	expiry := c.expires
	c.mu.RUnlock()

	return &AuthStatus{Status: "authenticated", TokenExpiry: expiry}, nil
}

// GetAgents lists agents matching the query.
func (c *Client) GetAgents(ctx context.Context, q AgentsQuery) (json.RawMessage, error) {
	return c.getJSON(ctx, "/agents", q.values())
}

// GetAgent fetches a single agent by its id.
func (c *Client) GetAgent(ctx context.Context, agentID string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("agents_list", agentID)
	return c.getJSON(ctx, "/agents", q)
}

// GetAgentPorts lists the open ports the agent's syscollector scan found.
func (c *Client) GetAgentPorts(ctx context.Context, agentID string, q PortsQuery) (json.RawMessage, error) {
	return c.getJSON(ctx, "/syscollector/"+url.PathEscape(agentID)+"/ports", q.values())
}

// GetAgentPackages lists the packages installed on the agent host.
func (c *Client) GetAgentPackages(ctx context.Context, agentID string, q PackagesQuery) (json.RawMessage, error) {
	return c.getJSON(ctx, "/syscollector/"+url.PathEscape(agentID)+"/packages", q.values())
}

// GetAgentProcesses lists the processes running on the agent host.
func (c *Client) GetAgentProcesses(ctx context.Context, agentID string, q ProcessesQuery) (json.RawMessage, error) {
	return c.getJSON(ctx, "/syscollector/"+url.PathEscape(agentID)+"/processes", q.values())
}

// ListRules lists detection rules matching the query.
func (c *Client) ListRules(ctx context.Context, q RulesQuery) (json.RawMessage, error) {
	return c.getJSON(ctx, "/rules", q.values())
}

// GetRuleFileContent fetches one rule file. With opts.Raw the manager
// returns the plain XML body, which is wrapped so callers always receive
// JSON.
func (c *Client) GetRuleFileContent(ctx context.Context, filename string, opts RuleFileOptions) (json.RawMessage, error) {
	body, err := c.Request(ctx, http.MethodGet, "/rules/files/"+url.PathEscape(filename), opts.values())
	if err != nil {
		return nil, err
	}

	if opts.Raw {
		wrapped, err := json.Marshal(map[string]any{
			"content":  string(body),
			"raw":      true,
			"filename": filename,
		})
		if err != nil {
			return nil, fmt.Errorf("wrapping raw rule file: %w", err)
		}
		return wrapped, nil
	}
	return json.RawMessage(body), nil
}

// GetAgentSCA lists the configuration assessment policies evaluated on
// the agent.
func (c *Client) GetAgentSCA(ctx context.Context, agentID string, q SCAQuery) (json.RawMessage, error) {
	return c.getJSON(ctx, "/sca/"+url.PathEscape(agentID), q.values())
}

// GetSCAPolicyChecks lists the individual checks of one assessment policy
// on the agent.
func (c *Client) GetSCAPolicyChecks(ctx context.Context, agentID, policyID string, q SCAChecksQuery) (json.RawMessage, error) {
	path := "/sca/" + url.PathEscape(agentID) + "/checks/" + url.PathEscape(policyID)
	return c.getJSON(ctx, path, q.values())
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	body, err := c.Request(ctx, http.MethodGet, path, query)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}
