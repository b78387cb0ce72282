package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/convivio/internal/core/services"
	"github.com/custodia-labs/convivio/internal/logger"
	"github.com/custodia-labs/convivio/internal/observability"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Kind selects which tool set a server exposes.
type Kind string

// Available server kinds.
const (
	KindEvents  Kind = "events"
	KindWeather Kind = "weather"
)

// ParseKind maps user input to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindEvents, KindWeather:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// implementationName is the name advertised to MCP hosts.
func (k Kind) implementationName() string {
	if k == KindEvents {
		return "eventi-amici"
	}
	return "weather"
}

// Server is an MCP tool server for one Kind.
type Server struct {
	kind    Kind
	ports   *Ports
	metrics *observability.Metrics
	server  *mcp.Server
}

// NewServer creates a new MCP server of the given kind. metrics may be nil.
func NewServer(kind Kind, ports *Ports, metrics *observability.Metrics) (*Server, error) {
	if err := ports.Validate(kind); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    kind.implementationName(),
		Version: Version,
	}

	s := &Server{
		kind:    kind,
		ports:   ports,
		metrics: metrics,
		server:  mcp.NewServer(impl, nil),
	}

	switch kind {
	case KindEvents:
		s.registerEventTools()
	case KindWeather:
		s.registerWeatherTools()
	}

	return s, nil
}

// Kind returns the server kind.
func (s *Server) Kind() Kind {
	return s.kind
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	logger.Info("serving %s tools over stdio", s.kind)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler for this server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP starts the MCP server over streamable HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Info("serving %s tools over HTTP on %s", s.kind, addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// reply builds the text result of a tool call and records its outcome.
// Failures become "Errore: ..." text; the protocol-level error is always nil.
func (s *Server) reply(tool string, start time.Time, text string, err error) (*mcp.CallToolResult, any, error) {
	s.metrics.ObserveToolCall(string(s.kind), tool, err != nil, time.Since(start))
	if err != nil {
		logger.Debug("%s/%s failed: %v", s.kind, tool, err)
		text = services.FormatError(err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}
