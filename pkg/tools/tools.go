// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package tools defines the operations wazgate exposes over MCP and the
// registry that holds them. Each operation is a typed descriptor pairing
// the wire-level tool definition with a handler that runs against one
// target's API client.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wazgate/wazgate/pkg/wazuh"
)

// ErrUnknownOperation indicates that the named operation is not exposed
// by this server. It should be checked using errors.Is().
var ErrUnknownOperation = errors.New("unknown operation")

// ErrInvalidArguments indicates that tool arguments failed validation
// before any upstream call was made. It should be checked using
// errors.Is().
var ErrInvalidArguments = errors.New("invalid arguments")

// HandlerFunc executes one operation against one target's API client.
// Arguments arrive as the raw MCP call arguments minus routing keys.
type HandlerFunc func(ctx context.Context, api wazuh.API, args map[string]any) (any, error)

// Descriptor describes one exposed operation.
type Descriptor struct {
	// Name is the wire name of the tool, e.g. "get_agent_ports".
	Name string
	// Category groups related tools for policy filtering.
	Category string
	// HTTPMethod is the verb of the upstream call the tool performs.
	// The policy layer uses it for read-only enforcement.
	HTTPMethod string
	// Description is shown to MCP clients.
	Description string
	// InputSchema is the JSON schema of the tool arguments.
	InputSchema mcp.ToolInputSchema
	// Handler executes the operation.
	Handler HandlerFunc
}

// Registry holds the operations available for dispatch, keyed by name.
// Lookups of names that were never registered and names that were
// registered elsewhere but not here are indistinguishable.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Descriptor),
	}
}

// Register adds a descriptor to the registry.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return errors.New("descriptor has no name")
	}
	if d.Handler == nil {
		return fmt.Errorf("descriptor %s has no handler", d.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[d.Name]; ok {
		return fmt.Errorf("operation %s is already registered", d.Name)
	}
	r.byName[d.Name] = d
	r.order = append(r.order, d.Name)
	return nil
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return d, nil
}

// Names returns the registered operation names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// All returns every registered descriptor in registration order.
func (r *Registry) All() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.byName[name])
	}
	return all
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// DecodeArgs maps loosely-typed call arguments onto a typed args struct.
// Type mismatches are reported as ErrInvalidArguments; keys the struct
// does not know are ignored, matching how MCP argument binding behaves
// elsewhere.
func DecodeArgs(args map[string]any, target any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}

// requireAgentID validates the agent_id argument shared by the
// per-agent operations.
func requireAgentID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: agent_id is required", ErrInvalidArguments)
	}
	if err := wazuh.ValidateAgentID(id); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}
