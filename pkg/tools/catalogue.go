// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wazgate/wazgate/pkg/wazuh"
)

// Tool categories used by the policy filter.
const (
	CategoryAuth         = "auth"
	CategoryAgents       = "agents"
	CategorySyscollector = "syscollector"
	CategoryRules        = "rules"
	CategorySCA          = "sca"
)

// DefaultRegistry returns the full tool catalogue. The policy filter
// derives the enabled subset from it.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, d := range catalogue() {
		if err := r.Register(d); err != nil {
			// The catalogue is static, so this only fires on a
			// programming error such as a duplicated name.
			panic(err)
		}
	}
	return r
}

func catalogue() []Descriptor {
	return []Descriptor{
		{
			Name:        "authenticate",
			Category:    CategoryAuth,
			HTTPMethod:  http.MethodPost,
			Description: "Force a fresh credential exchange with the manager and report the new token expiry",
			InputSchema: objectSchema(baseProperties()),
			Handler:     handleAuthenticate,
		},
		{
			Name:        "get_agents",
			Category:    CategoryAgents,
			HTTPMethod:  http.MethodGet,
			Description: "List monitored agents, optionally filtered by connection status",
			InputSchema: objectSchema(listProperties(map[string]interface{}{
				"status": stringArrayProp("Connection statuses to match, e.g. active, disconnected, never_connected"),
			})),
			Handler: handleGetAgents,
		},
		{
			Name:        "get_agent",
			Category:    CategoryAgents,
			HTTPMethod:  http.MethodGet,
			Description: "Fetch one agent by its zero-padded numeric id",
			InputSchema: objectSchema(withBase(map[string]interface{}{
				"agent_id": agentIDProp(),
			}), "agent_id"),
			Handler: handleGetAgent,
		},
		{
			Name:        "get_agent_ports",
			Category:    CategorySyscollector,
			HTTPMethod:  http.MethodGet,
			Description: "List the open network ports the syscollector inventory recorded for an agent",
			InputSchema: objectSchema(listProperties(map[string]interface{}{
				"agent_id":   agentIDProp(),
				"protocol":   stringProp("Transport protocol, tcp or udp"),
				"local_ip":   stringProp("Local IP address the port is bound to"),
				"local_port": stringProp("Local port number"),
				"remote_ip":  stringProp("Remote IP address of the connection"),
				"state":      stringProp("Socket state, e.g. listening, established"),
				"process":    stringProp("Name of the owning process"),
				"pid":        stringProp("Process id of the owning process"),
				"tx_queue":   stringProp("Transmit queue length"),
			}), "agent_id"),
			Handler: handleGetAgentPorts,
		},
		{
			Name:        "get_agent_packages",
			Category:    CategorySyscollector,
			HTTPMethod:  http.MethodGet,
			Description: "List the software packages the syscollector inventory recorded for an agent",
			InputSchema: objectSchema(listProperties(map[string]interface{}{
				"agent_id":     agentIDProp(),
				"vendor":       stringProp("Package vendor"),
				"name":         stringProp("Package name"),
				"architecture": stringProp("Package architecture, e.g. amd64"),
				"format":       stringProp("Package format, e.g. deb, rpm"),
				"version":      stringProp("Package version"),
			}), "agent_id"),
			Handler: handleGetAgentPackages,
		},
		{
			Name:        "get_agent_processes",
			Category:    CategorySyscollector,
			HTTPMethod:  http.MethodGet,
			Description: "List the running processes the syscollector inventory recorded for an agent",
			InputSchema: objectSchema(listProperties(map[string]interface{}{
				"agent_id": agentIDProp(),
				"pid":      stringProp("Process id"),
				"state":    stringProp("Process state"),
				"ppid":     stringProp("Parent process id"),
				"name":     stringProp("Process name"),
				"euser":    stringProp("Effective user"),
				"egroup":   stringProp("Effective group"),
				"ruser":    stringProp("Real user"),
				"rgroup":   stringProp("Real group"),
				"suser":    stringProp("Saved-set user"),
				"sgroup":   stringProp("Saved-set group"),
				"fgroup":   stringProp("Filesystem group"),
				"nlwp":     stringProp("Number of light-weight processes"),
				"pgrp":     stringProp("Process group"),
				"priority": stringProp("Kernel scheduling priority"),
			}), "agent_id"),
			Handler: handleGetAgentProcesses,
		},
		{
			Name:        "list_rules",
			Category:    CategoryRules,
			HTTPMethod:  http.MethodGet,
			Description: "List detection rules, optionally filtered by id, group, level, file or compliance mapping",
			InputSchema: objectSchema(listProperties(map[string]interface{}{
				"rule_ids": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "integer"},
					"description": "Rule ids to match",
				},
				"status":           stringProp("Rule status, enabled or disabled"),
				"group":            stringProp("Rule group to match"),
				"level":            stringProp("Rule level or span such as 4-8"),
				"filename":         stringArrayProp("Rule file names to match"),
				"relative_dirname": stringProp("Directory the rule files live in, relative to the ruleset root"),
				"pci_dss":          stringProp("PCI DSS requirement to match"),
				"gdpr":             stringProp("GDPR article to match"),
				"gpg13":            stringProp("GPG13 requirement to match"),
				"hipaa":            stringProp("HIPAA requirement to match"),
				"nist_800_53":      stringProp("NIST 800-53 control to match"),
				"tsc":              stringProp("TSC requirement to match"),
				"mitre":            stringProp("MITRE ATT&CK technique to match"),
			})),
			Handler: handleListRules,
		},
		{
			Name:        "get_rule_file_content",
			Category:    CategoryRules,
			HTTPMethod:  http.MethodGet,
			Description: "Fetch the content of one rule file, parsed to JSON or as raw XML",
			InputSchema: objectSchema(withBase(map[string]interface{}{
				"filename":         stringProp("Name of the rule file, e.g. 0010-rules_config.xml"),
				"raw":              boolProp("Return the plain XML content instead of the parsed form"),
				"relative_dirname": stringProp("Directory the rule file lives in, relative to the ruleset root"),
			}), "filename"),
			Handler: handleGetRuleFileContent,
		},
		{
			Name:        "get_agent_sca",
			Category:    CategorySCA,
			HTTPMethod:  http.MethodGet,
			Description: "List the security configuration assessment policies evaluated on an agent",
			InputSchema: objectSchema(listProperties(map[string]interface{}{
				"agent_id":    agentIDProp(),
				"name":        stringProp("Policy name to match"),
				"description": stringProp("Policy description to match"),
				"references":  stringProp("Policy reference to match"),
			}), "agent_id"),
			Handler: handleGetAgentSCA,
		},
		{
			Name:        "get_sca_policy_checks",
			Category:    CategorySCA,
			HTTPMethod:  http.MethodGet,
			Description: "List the individual checks of one configuration assessment policy on an agent",
			InputSchema: objectSchema(listProperties(map[string]interface{}{
				"agent_id":    agentIDProp(),
				"policy_id":   stringProp("Id of the assessment policy, e.g. cis_debian10"),
				"title":       stringProp("Check title to match"),
				"description": stringProp("Check description to match"),
				"rationale":   stringProp("Check rationale to match"),
				"remediation": stringProp("Check remediation to match"),
				"command":     stringProp("Audited command to match"),
				"reason":      stringProp("Reason the check could not run"),
				"file":        stringProp("Audited file to match"),
				"process":     stringProp("Audited process to match"),
				"directory":   stringProp("Audited directory to match"),
				"registry":    stringProp("Audited registry key to match"),
				"references":  stringProp("Check reference to match"),
				"result":      stringProp("Check result, passed, failed or not applicable"),
				"condition":   stringProp("Check condition, all, any or none"),
			}), "agent_id", "policy_id"),
			Handler: handleGetSCAPolicyChecks,
		},
	}
}

func handleAuthenticate(ctx context.Context, api wazuh.API, _ map[string]any) (any, error) {
	return api.Authenticate(ctx)
}

func handleGetAgents(ctx context.Context, api wazuh.API, args map[string]any) (any, error) {
	var q wazuh.AgentsQuery
	if err := DecodeArgs(args, &q); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return api.GetAgents(ctx, q)
}

func handleGetAgent(ctx context.Context, api wazuh.API, args map[string]any) (any, error) {
	var in struct {
		AgentID string `json:"agent_id"`
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}
	if err := requireAgentID(in.AgentID); err != nil {
		return nil, err
	}
	return api.GetAgent(ctx, in.AgentID)
}

func handleGetAgentPorts(ctx context.Context, api wazuh.API, args map[string]any) (any, error) {
	var in struct {
		AgentID string `json:"agent_id"`
		wazuh.PortsQuery
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}
	if err := requireAgentID(in.AgentID); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return api.GetAgentPorts(ctx, in.AgentID, in.PortsQuery)
}

func handleGetAgentPackages(ctx context.Context, api wazuh.API, args map[string]any) (any, error) {
	var in struct {
		AgentID string `json:"agent_id"`
		wazuh.PackagesQuery
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}
	if err := requireAgentID(in.AgentID); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return api.GetAgentPackages(ctx, in.AgentID, in.PackagesQuery)
}

func handleGetAgentProcesses(ctx context.Context, api wazuh.API, args map[string]any) (any, error) {
	var in struct {
		AgentID string `json:"agent_id"`
		wazuh.ProcessesQuery
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}
	if err := requireAgentID(in.AgentID); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return api.GetAgentProcesses(ctx, in.AgentID, in.ProcessesQuery)
}

func handleListRules(ctx context.Context, api wazuh.API, args map[string]any) (any, error) {
	var q wazuh.RulesQuery
	if err := DecodeArgs(args, &q); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return api.ListRules(ctx, q)
}

func handleGetRuleFileContent(ctx context.Context, api wazuh.API, args map[string]any) (any, error) {
	var in struct {
		Filename string `json:"filename"`
		wazuh.RuleFileOptions
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Filename == "" {
		return nil, fmt.Errorf("%w: filename is required", ErrInvalidArguments)
	}
	return api.GetRuleFileContent(ctx, in.Filename, in.RuleFileOptions)
}

func handleGetAgentSCA(ctx context.Context, api wazuh.API, args map[string]any) (any, error) {
	var in struct {
		AgentID string `json:"agent_id"`
		wazuh.SCAQuery
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}
	if err := requireAgentID(in.AgentID); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return api.GetAgentSCA(ctx, in.AgentID, in.SCAQuery)
}

func handleGetSCAPolicyChecks(ctx context.Context, api wazuh.API, args map[string]any) (any, error) {
	var in struct {
		AgentID  string `json:"agent_id"`
		PolicyID string `json:"policy_id"`
		wazuh.SCAChecksQuery
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}
	if err := requireAgentID(in.AgentID); err != nil {
		return nil, err
	}
	if in.PolicyID == "" {
		return nil, fmt.Errorf("%w: policy_id is required", ErrInvalidArguments)
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return api.GetSCAPolicyChecks(ctx, in.AgentID, in.PolicyID, in.SCAChecksQuery)
}

// Schema helpers. The catalogue repeats the same property shapes many
// times over, so they are built here instead of spelled out per tool.

func objectSchema(props map[string]interface{}, required ...string) mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func baseProperties() map[string]interface{} {
	return map[string]interface{}{
		"target": stringProp("Configured manager to address; optional when a single manager is configured"),
	}
}

func withBase(extra map[string]interface{}) map[string]interface{} {
	props := baseProperties()
	for k, v := range extra {
		props[k] = v
	}
	return props
}

func listProperties(extra map[string]interface{}) map[string]interface{} {
	props := baseProperties()
	props["limit"] = intProp(fmt.Sprintf("Maximum number of items to return, default %d", wazuh.DefaultLimit))
	props["offset"] = intProp("Index of the first item to return")
	props["sort"] = stringProp("Fields to sort by, prefixed with + or - for direction")
	props["search"] = stringProp("Plain substring to look for across fields")
	props["select"] = stringArrayProp("Fields to include in the response")
	props["q"] = stringProp("Query expression, e.g. status=active")
	props["distinct"] = boolProp("Return only distinct values")
	for k, v := range extra {
		props[k] = v
	}
	return props
}

func agentIDProp() map[string]interface{} {
	return stringProp("Zero-padded numeric agent id, e.g. 001")
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func boolProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": description,
	}
}

func stringArrayProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": description,
	}
}
