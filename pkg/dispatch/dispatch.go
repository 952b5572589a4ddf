// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package dispatch runs tool invocations end to end: operation lookup,
// target resolution, handler execution and result shaping. Every
// invocation produces an envelope; failures are reported in-band so MCP
// clients always receive a well-formed result.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/wazgate/wazgate/pkg/config"
	"github.com/wazgate/wazgate/pkg/logger"
	"github.com/wazgate/wazgate/pkg/targets"
	"github.com/wazgate/wazgate/pkg/telemetry"
	"github.com/wazgate/wazgate/pkg/tools"
	"github.com/wazgate/wazgate/pkg/wazuh"
)

// Error kinds reported in the result envelope.
const (
	KindAuthentication   = "authentication_error"
	KindUnknownTarget    = "unknown_target"
	KindUnknownOperation = "unknown_operation"
	KindInvalidArguments = "invalid_arguments"
	KindUpstream         = "upstream_error"
	KindInternal         = "internal_error"
)

// Result is the envelope every invocation returns.
type Result struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries the classified failure of an invocation.
type ErrorInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Dispatcher routes invocations to targets through the enabled
// operation registry.
type Dispatcher struct {
	targets  *targets.Registry
	registry *tools.Registry
	limit    int
}

// New builds a dispatcher over the enabled registry. maxResultBytes
// caps the rendered result payload; non-positive values fall back to
// the default.
func New(targetRegistry *targets.Registry, enabled *tools.Registry, maxResultBytes int) *Dispatcher {
	if maxResultBytes <= 0 {
		maxResultBytes = config.DefaultMaxResultBytes
	}
	return &Dispatcher{
		targets:  targetRegistry,
		registry: enabled,
		limit:    maxResultBytes,
	}
}

// ListOperations returns the enabled descriptors. Operations the policy
// removed are not listed and cannot be discovered here.
func (d *Dispatcher) ListOperations() []tools.Descriptor {
	return d.registry.All()
}

// Invoke runs one operation against one target and returns the
// envelope. target may be empty when a single target is configured.
func (d *Dispatcher) Invoke(ctx context.Context, target, operation string, args map[string]any) Result {
	id := uuid.NewString()
	start := time.Now()
	logger.Debugw("tool invocation started", "id", id, "tool", operation, "target", target)

	result := d.invoke(ctx, target, operation, args)

	outcome := telemetry.OutcomeSuccess
	if !result.Success {
		outcome = result.Error.Kind
	}
	telemetry.RecordInvocation(operation, outcome)
	logger.Debugw("tool invocation finished",
		"id", id, "tool", operation, "outcome", outcome, "duration", time.Since(start).String())
	return result
}

func (d *Dispatcher) invoke(ctx context.Context, target, operation string, args map[string]any) Result {
	descriptor, err := d.registry.Get(operation)
	if err != nil {
		return failure(err)
	}

	api, err := d.resolveTarget(target)
	if err != nil {
		return failure(err)
	}

	// target is a routing key, not an operation argument. Handlers
	// never see it.
	if _, ok := args["target"]; ok {
		args = maps.Clone(args)
		delete(args, "target")
	}

	out, err := descriptor.Handler(ctx, api, args)
	if err != nil {
		return failure(err)
	}

	return d.success(operation, out)
}

// resolveTarget picks the client for the invocation. An empty target
// name is only valid while a single target is configured.
func (d *Dispatcher) resolveTarget(name string) (wazuh.API, error) {
	if name == "" {
		if d.targets.Len() > 1 {
			return nil, fmt.Errorf("%w: target is required when multiple targets are configured", tools.ErrInvalidArguments)
		}
		return d.targets.Default()
	}
	return d.targets.Get(name)
}

func (d *Dispatcher) success(operation string, out any) Result {
	rendered, err := renderJSON(out)
	if err != nil {
		return failure(fmt.Errorf("failed to encode result: %w", err))
	}

	kept, dropped := Truncate(rendered, d.limit)
	if dropped > 0 {
		telemetry.RecordTruncation(operation)
		logger.Debugw("tool result truncated", "tool", operation, "dropped_bytes", dropped)
		return Result{Success: true, Data: kept}
	}
	return Result{Success: true, Data: json.RawMessage(rendered)}
}

func failure(err error) Result {
	return Result{
		Success: false,
		Error: &ErrorInfo{
			Kind:    classify(err),
			Message: err.Error(),
		},
	}
}

// classify maps an invocation failure onto its envelope kind.
func classify(err error) string {
	switch {
	case errors.Is(err, wazuh.ErrAuthentication):
		return KindAuthentication
	case errors.Is(err, targets.ErrUnknownTarget):
		return KindUnknownTarget
	case errors.Is(err, tools.ErrUnknownOperation):
		return KindUnknownOperation
	case errors.Is(err, tools.ErrInvalidArguments):
		return KindInvalidArguments
	case errors.Is(err, wazuh.ErrUpstream):
		return KindUpstream
	default:
		return KindInternal
	}
}

// renderJSON pretty-prints the handler output for the envelope.
func renderJSON(out any) (string, error) {
	if raw, ok := out.(json.RawMessage); ok {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			// Not JSON after all; pass the body through untouched.
			return string(raw), nil
		}
		return buf.String(), nil
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Truncate cuts s to at most limit bytes without splitting a UTF-8
// sequence and reports how many bytes were dropped. The marker appended
// to a cut string states that count and does not count against the
// limit. A non-positive limit disables truncation.
func Truncate(s string, limit int) (string, int) {
	if limit <= 0 || len(s) <= limit {
		return s, 0
	}
	cut := limit
	// Back up past any continuation bytes straddling the cut.
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	dropped := len(s) - cut
	return s[:cut] + fmt.Sprintf("\n\n[... truncated %d bytes ...]", dropped), dropped
}
