// Package service hosts the MCP server exposing the contract engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/services/mcp/domain"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/session"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Johnson Contract Engine MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	HTTPAddr  string // HTTP bind address, defaults to localhost:8081
}

// Server hosts the MCP server over one game session.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a configured MCP server bound to the given session.
func New(sess *session.Session) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(mcpServer, sess)
	return &Server{mcpServer: mcpServer}
}

func registerTools(mcpServer *mcp.Server, sess *session.Session) {
	mcp.AddTool(mcpServer, domain.ContractLoadTool(), domain.ContractLoadHandler(sess))
	mcp.AddTool(mcpServer, domain.NodeSelectTool(), domain.NodeSelectHandler(sess))
	mcp.AddTool(mcpServer, domain.NodeDeselectTool(), domain.NodeDeselectHandler(sess))
	mcp.AddTool(mcpServer, domain.PoolsGetTool(), domain.PoolsGetHandler(sess))
	mcp.AddTool(mcpServer, domain.AvailabilityGetTool(), domain.AvailabilityGetHandler(sess))
	mcp.AddTool(mcpServer, domain.RunnerGenerateTool(), domain.RunnerGenerateHandler(sess))
	mcp.AddTool(mcpServer, domain.RunnerHireTool(), domain.RunnerHireHandler(sess))
	mcp.AddTool(mcpServer, domain.RunnerUnhireTool(), domain.RunnerUnhireHandler(sess))
	mcp.AddTool(mcpServer, domain.ContractResolveTool(),
		domain.ContractResolveHandler(sess, func() int64 { return time.Now().UnixNano() }))
}

// Run creates and serves an MCP server for the session until the context
// ends.
func Run(ctx context.Context, sess *session.Session, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server := New(sess)
	switch cfg.Transport {
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// serveHTTP serves the MCP server over streamable HTTP until the context
// ends.
func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	if addr == "" {
		addr = "localhost:8081"
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)

	httpServer := &http.Server{Addr: addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("MCP HTTP server listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown MCP HTTP server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP HTTP: %w", err)
	}
}
