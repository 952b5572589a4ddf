// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the enabled tool catalogue to MCP clients over
// streamable HTTP or stdio.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wazgate/wazgate/pkg/config"
	"github.com/wazgate/wazgate/pkg/dispatch"
	"github.com/wazgate/wazgate/pkg/logger"
	"github.com/wazgate/wazgate/pkg/targets"
	"github.com/wazgate/wazgate/pkg/telemetry"
	"github.com/wazgate/wazgate/pkg/tools"
	"github.com/wazgate/wazgate/pkg/versions"
)

const (
	// serverName identifies this gateway to MCP clients.
	serverName = "wazgate"

	// endpointPath is where the streamable HTTP transport is mounted.
	endpointPath = "/mcp"

	// readHeaderTimeout prevents Slowloris attacks.
	readHeaderTimeout = 10 * time.Second

	// shutdownTimeout is the maximum time to wait for graceful shutdown.
	shutdownTimeout = 10 * time.Second
)

// Server serves MCP tool calls by handing them to the dispatcher.
type Server struct {
	settings   config.ServerSettings
	targets    *targets.Registry
	dispatcher *dispatch.Dispatcher
	mcpServer  *server.MCPServer

	mu         sync.RWMutex
	httpServer *http.Server
	listener   net.Listener

	ready     chan struct{}
	readyOnce sync.Once
}

// New builds a server advertising every operation the dispatcher still
// exposes after policy filtering.
func New(settings config.ServerSettings, registry *targets.Registry, dispatcher *dispatch.Dispatcher) *Server {
	mcpServer := server.NewMCPServer(
		serverName,
		versions.Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	s := &Server{
		settings:   settings,
		targets:    registry,
		dispatcher: dispatcher,
		mcpServer:  mcpServer,
		ready:      make(chan struct{}),
	}

	for _, descriptor := range dispatcher.ListOperations() {
		mcpServer.AddTool(mcp.Tool{
			Name:        descriptor.Name,
			Description: descriptor.Description,
			InputSchema: descriptor.InputSchema,
		}, s.bridge(descriptor))
	}

	return s
}

// bridge adapts one catalogue operation to the MCP tool handler
// signature. Dispatch outcomes, including failures, travel inside the
// result envelope; MCP-level errors are reserved for malformed requests.
func (s *Server) bridge(descriptor tools.Descriptor) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	operation := descriptor.Name
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args map[string]any
		switch v := request.Params.Arguments.(type) {
		case nil:
		case map[string]any:
			args = v
		default:
			return mcp.NewToolResultError(
				fmt.Sprintf("arguments must be an object, got %T", request.Params.Arguments)), nil
		}

		target, _ := args["target"].(string)
		result := s.dispatcher.Invoke(ctx, target, operation, args)
		return mcp.NewToolResultStructuredOnly(result), nil
	}
}

// Start serves until ctx is cancelled or the transport fails.
func (s *Server) Start(ctx context.Context) error {
	if s.settings.Transport == config.TransportStdio {
		return s.serveStdio(ctx)
	}
	return s.serveHTTP(ctx)
}

func (s *Server) serveStdio(ctx context.Context) error {
	logger.Info("Starting MCP server on stdio")
	if err := server.NewStdioServer(s.mcpServer).Listen(ctx, os.Stdin, os.Stdout); err != nil &&
		!errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server error: %w", err)
	}
	return nil
}

func (s *Server) serveHTTP(ctx context.Context) error {
	streamableServer := server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithEndpointPath(endpointPath),
	)

	router := chi.NewRouter()
	router.Get("/health", s.handleHealth)
	router.Handle("/metrics", telemetry.Handler())
	router.Handle(endpointPath, streamableServer)

	addr := net.JoinHostPort(s.settings.Host, strconv.Itoa(s.settings.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Create the listener separately so port 0 binds to a random
	// available port that Address() can report.
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	s.mu.Lock()
	s.httpServer = httpServer
	s.listener = listener
	s.mu.Unlock()

	logger.Infof("Starting MCP server at http://%s%s", listener.Addr(), endpointPath)

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	s.readyOnce.Do(func() { close(s.ready) })

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Ready is closed once the HTTP listener is accepting connections.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Shutdown gracefully stops the HTTP transport. It is a no-op for stdio
// mode or when the server never started.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	httpServer := s.httpServer
	s.httpServer = nil
	s.listener = nil
	s.mu.Unlock()

	if httpServer == nil {
		return nil
	}

	logger.Info("Shutting down MCP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}

// Address returns the listen address. Once the server is running this is
// the bound address, so port 0 resolves to the assigned port.
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return net.JoinHostPort(s.settings.Host, strconv.Itoa(s.settings.Port))
}

// handleHealth confirms the gateway is up and has at least one target.
// The response is intentionally minimal: no version information or target
// details are exposed on this unauthenticated route.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if s.targets.Len() == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
