// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

package wazuh

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is applied when a query does not set an item limit.
	DefaultLimit = 500
	// MaxLimit is the largest item limit the manager API accepts.
	MaxLimit = 100000
)

// agentIDPattern matches the zero-padded numeric agent ids the manager
// assigns ("000" is the manager itself, agents start at "001").
var agentIDPattern = regexp.MustCompile(`^[0-9]{3,}$`)

// ValidateAgentID reports whether id has the manager's agent id shape.
func ValidateAgentID(id string) error {
	if !agentIDPattern.MatchString(id) {
		return fmt.Errorf("agent_id %q is not a zero-padded numeric id", id)
	}
	return nil
}

// ListQuery carries the pagination and search parameters shared by every
// listing endpoint.
type ListQuery struct {
	Limit    int      `json:"limit,omitempty"`
	Offset   int      `json:"offset,omitempty"`
	Sort     string   `json:"sort,omitempty"`
	Search   string   `json:"search,omitempty"`
	Select   []string `json:"select,omitempty"`
	Q        string   `json:"q,omitempty"`
	Distinct bool     `json:"distinct,omitempty"`
}

// Validate checks the pagination bounds before any request is sent.
func (q ListQuery) Validate() error {
	if q.Limit < 0 || q.Limit > MaxLimit {
		return fmt.Errorf("limit must be between 1 and %d", MaxLimit)
	}
	if q.Offset < 0 {
		return fmt.Errorf("offset must not be negative")
	}
	return nil
}

func (q ListQuery) values() url.Values {
	limit := q.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	v := url.Values{}
	v.Set("limit", strconv.Itoa(limit))
	v.Set("offset", strconv.Itoa(q.Offset))
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if len(q.Select) > 0 {
		v.Set("select", strings.Join(q.Select, ","))
	}
	if q.Q != "" {
		v.Set("q", q.Q)
	}
	if q.Distinct {
		v.Set("distinct", "true")
	}
	return v
}

// setNonEmpty adds every non-empty value under its key.
func setNonEmpty(v url.Values, pairs map[string]string) {
	for key, val := range pairs {
		if val != "" {
			v.Set(key, val)
		}
	}
}

// AgentsQuery filters the agent listing.
type AgentsQuery struct {
	ListQuery
	Status []string `json:"status,omitempty"`
}

func (q AgentsQuery) values() url.Values {
	v := q.ListQuery.values()
	if len(q.Status) > 0 {
		v.Set("status", strings.Join(q.Status, ","))
	}
	return v
}

// PortsQuery filters the syscollector ports listing of one agent.
type PortsQuery struct {
	ListQuery
	Protocol  string `json:"protocol,omitempty"`
	LocalIP   string `json:"local_ip,omitempty"`
	LocalPort string `json:"local_port,omitempty"`
	RemoteIP  string `json:"remote_ip,omitempty"`
	State     string `json:"state,omitempty"`
	Process   string `json:"process,omitempty"`
	PID       string `json:"pid,omitempty"`
	TxQueue   string `json:"tx_queue,omitempty"`
}

func (q PortsQuery) values() url.Values {
	v := q.ListQuery.values()
	setNonEmpty(v, map[string]string{
		"protocol":   q.Protocol,
		"local.ip":   q.LocalIP,
		"local.port": q.LocalPort,
		"remote.ip":  q.RemoteIP,
		"state":      q.State,
		"process":    q.Process,
		"pid":        q.PID,
		"tx_queue":   q.TxQueue,
	})
	return v
}

// PackagesQuery filters the syscollector packages listing of one agent.
type PackagesQuery struct {
	ListQuery
	Vendor       string `json:"vendor,omitempty"`
	Name         string `json:"name,omitempty"`
	Architecture string `json:"architecture,omitempty"`
	Format       string `json:"format,omitempty"`
	Version      string `json:"version,omitempty"`
}

func (q PackagesQuery) values() url.Values {
	v := q.ListQuery.values()
	setNonEmpty(v, map[string]string{
		"vendor":       q.Vendor,
		"name":         q.Name,
		"architecture": q.Architecture,
		"format":       q.Format,
		"version":      q.Version,
	})
	return v
}

// ProcessesQuery filters the syscollector processes listing of one agent.
type ProcessesQuery struct {
	ListQuery
	PID      string `json:"pid,omitempty"`
	State    string `json:"state,omitempty"`
	PPID     string `json:"ppid,omitempty"`
	EGroup   string `json:"egroup,omitempty"`
	EUser    string `json:"euser,omitempty"`
	FGroup   string `json:"fgroup,omitempty"`
	Name     string `json:"name,omitempty"`
	NLWP     string `json:"nlwp,omitempty"`
	PGrp     string `json:"pgrp,omitempty"`
	Priority string `json:"priority,omitempty"`
	RGroup   string `json:"rgroup,omitempty"`
	RUser    string `json:"ruser,omitempty"`
	SGroup   string `json:"sgroup,omitempty"`
	SUser    string `json:"suser,omitempty"`
}

func (q ProcessesQuery) values() url.Values {
	v := q.ListQuery.values()
	setNonEmpty(v, map[string]string{
		"pid":      q.PID,
		"state":    q.State,
		"ppid":     q.PPID,
		"egroup":   q.EGroup,
		"euser":    q.EUser,
		"fgroup":   q.FGroup,
		"name":     q.Name,
		"nlwp":     q.NLWP,
		"pgrp":     q.PGrp,
		"priority": q.Priority,
		"rgroup":   q.RGroup,
		"ruser":    q.RUser,
		"sgroup":   q.SGroup,
		"suser":    q.SUser,
	})
	return v
}

// RulesQuery filters the detection rules listing.
type RulesQuery struct {
	ListQuery
	RuleIDs         []int    `json:"rule_ids,omitempty"`
	Status          string   `json:"status,omitempty"`
	Group           string   `json:"group,omitempty"`
	Level           string   `json:"level,omitempty"`
	Filename        []string `json:"filename,omitempty"`
	RelativeDirname string   `json:"relative_dirname,omitempty"`
	PCIDSS          string   `json:"pci_dss,omitempty"`
	GDPR            string   `json:"gdpr,omitempty"`
	GPG13           string   `json:"gpg13,omitempty"`
	HIPAA           string   `json:"hipaa,omitempty"`
	NIST80053       string   `json:"nist_800_53,omitempty"`
	TSC             string   `json:"tsc,omitempty"`
	Mitre           string   `json:"mitre,omitempty"`
}

func (q RulesQuery) values() url.Values {
	v := q.ListQuery.values()
	if len(q.RuleIDs) > 0 {
		ids := make([]string, len(q.RuleIDs))
		for i, id := range q.RuleIDs {
			ids[i] = strconv.Itoa(id)
		}
		v.Set("rule_ids", strings.Join(ids, ","))
	}
	if len(q.Filename) > 0 {
		v.Set("filename", strings.Join(q.Filename, ","))
	}
	setNonEmpty(v, map[string]string{
		"status":           q.Status,
		"group":            q.Group,
		"level":            q.Level,
		"relative_dirname": q.RelativeDirname,
		"pci_dss":          q.PCIDSS,
		"gdpr":             q.GDPR,
		"gpg13":            q.GPG13,
		"hipaa":            q.HIPAA,
		"nist-800-53":      q.NIST80053,
		"tsc":              q.TSC,
		"mitre":            q.Mitre,
	})
	return v
}

// RuleFileOptions selects how a rule file is returned.
type RuleFileOptions struct {
	// Raw requests the plain XML content instead of the parsed JSON form.
	Raw             bool   `json:"raw,omitempty"`
	RelativeDirname string `json:"relative_dirname,omitempty"`
}

func (o RuleFileOptions) values() url.Values {
	v := url.Values{}
	if o.Raw {
		v.Set("raw", "true")
	}
	if o.RelativeDirname != "" {
		v.Set("relative_dirname", o.RelativeDirname)
	}
	return v
}

// SCAQuery filters the configuration assessment policies of one agent.
type SCAQuery struct {
	ListQuery
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	References  string `json:"references,omitempty"`
}

func (q SCAQuery) values() url.Values {
	v := q.ListQuery.values()
	setNonEmpty(v, map[string]string{
		"name":        q.Name,
		"description": q.Description,
		"references":  q.References,
	})
	return v
}

// SCAChecksQuery filters the checks of one assessment policy on one agent.
type SCAChecksQuery struct {
	ListQuery
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Rationale   string `json:"rationale,omitempty"`
	Remediation string `json:"remediation,omitempty"`
	Command     string `json:"command,omitempty"`
	Reason      string `json:"reason,omitempty"`
	File        string `json:"file,omitempty"`
	Process     string `json:"process,omitempty"`
	Directory   string `json:"directory,omitempty"`
	Registry    string `json:"registry,omitempty"`
	References  string `json:"references,omitempty"`
	Result      string `json:"result,omitempty"`
	Condition   string `json:"condition,omitempty"`
}

func (q SCAChecksQuery) values() url.Values {
	v := q.ListQuery.values()
	setNonEmpty(v, map[string]string{
		"title":       q.Title,
		"description": q.Description,
		"rationale":   q.Rationale,
		"remediation": q.Remediation,
		"command":     q.Command,
		"reason":      q.Reason,
		"file":        q.File,
		"process":     q.Process,
		"directory":   q.Directory,
		"registry":    q.Registry,
		"references":  q.References,
		"result":      q.Result,
		"condition":   q.Condition,
	})
	return v
}
