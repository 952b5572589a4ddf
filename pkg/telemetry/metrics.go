// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry exposes wazgate's Prometheus instrumentation.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	metricInvocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wazgate",
		Name:      "tool_invocations_total",
		Help:      "Tool invocations processed by the dispatcher, by tool name and outcome.",
	}, []string{"tool", "outcome"})

	metricTokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wazgate",
		Name:      "token_refreshes_total",
		Help:      "JWT refreshes performed against the manager API, by target and outcome.",
	}, []string{"target", "outcome"})

	metricTruncations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wazgate",
		Name:      "responses_truncated_total",
		Help:      "Tool responses cut down to the configured byte limit.",
	}, []string{"tool"})
)

// Outcome labels shared by the counters above.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// RecordInvocation counts one dispatched tool invocation.
func RecordInvocation(tool, outcome string) {
	metricInvocations.WithLabelValues(tool, outcome).Inc()
}

// RecordTokenRefresh counts one token refresh attempt against a target.
func RecordTokenRefresh(target, outcome string) {
	metricTokenRefreshes.WithLabelValues(target, outcome).Inc()
}

// RecordTruncation counts one truncated tool response.
func RecordTruncation(tool string) {
	metricTruncations.WithLabelValues(tool).Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
