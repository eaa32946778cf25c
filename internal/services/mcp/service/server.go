package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/louisbranch/balitours/internal/platform/icons"
	"github.com/louisbranch/balitours/internal/platform/timeouts"
	"github.com/louisbranch/balitours/internal/services/mcp/domain"
	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/louisbranch/balitours/internal/tours/contact"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "balitours"
	serverVersion = "0.1.0"

	defaultHTTPAddr = "localhost:8081"
)

var listenTCP = net.Listen

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves the streamable HTTP transport.
	TransportHTTP TransportKind = "http"
)

// Dependencies are the services MCP handlers read from.
type Dependencies struct {
	Catalog       *catalog.Memo
	Dispatcher    *contact.Dispatcher
	CategoryIcons icons.CategoryIconResolver
	RegionIcons   icons.RegionIconResolver
}

// Config configures the MCP server.
type Config struct {
	Dependencies
	Transport TransportKind
	// HTTPAddr is used by TransportHTTP. Defaults to localhost:8081.
	HTTPAddr string
}

// Server hosts the MCP tools over one catalog.
type Server struct {
	mcpServer *mcp.Server
}

type registrationTarget interface {
	AddTool(*mcp.Tool, any) error
	AddResource(*mcp.Resource, mcp.ResourceHandler)
	AddResourceTemplate(*mcp.ResourceTemplate, mcp.ResourceHandler)
}

type serverRegistrationAdapter struct {
	server *mcp.Server
}

func (r serverRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addTool(r.server, tool, handler)
}

func (r serverRegistrationAdapter) AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) {
	r.server.AddResource(resource, handler)
}

func (r serverRegistrationAdapter) AddResourceTemplate(template *mcp.ResourceTemplate, handler mcp.ResourceHandler) {
	r.server.AddResourceTemplate(template, handler)
}

type toolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newToolRegistrar[I any, O any]() toolRegistrar {
	return toolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var toolRegistrars = []toolRegistrar{
	newToolRegistrar[domain.SearchToursInput, domain.SearchToursResult](),
	newToolRegistrar[domain.BookTourInput, domain.BookTourResult](),
	newToolRegistrar[domain.ListFiltersInput, domain.ListFiltersResult](),
}

func addTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	for _, registrar := range toolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	return fmt.Errorf("mcp registration does not support handler type %T for tool %q", handler, tool.Name)
}

// New builds an MCP server with the tour tools and resources registered.
func New(deps Dependencies) (*Server, error) {
	if deps.Catalog == nil {
		return nil, errors.New("tour catalog is required")
	}
	if deps.Dispatcher == nil {
		return nil, errors.New("booking dispatcher is required")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		Instructions: "Search Bali tour packages and hand bookings off to WhatsApp. Call list_filters for valid categories and regions.",
	})
	if err := register(serverRegistrationAdapter{server: mcpServer}, deps); err != nil {
		return nil, err
	}
	return &Server{mcpServer: mcpServer}, nil
}

func register(target registrationTarget, deps Dependencies) error {
	channel := deps.Dispatcher.Channel()
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.SearchToursTool(), handler: domain.SearchToursHandler(deps.Catalog, channel)},
		{tool: domain.BookTourTool(), handler: domain.BookTourHandler(deps.Dispatcher)},
		{tool: domain.ListFiltersTool(), handler: domain.ListFiltersHandler(deps.Catalog, deps.CategoryIcons, deps.RegionIcons)},
	}
	for _, registration := range registrations {
		if err := target.AddTool(registration.tool, registration.handler); err != nil {
			return err
		}
	}
	target.AddResource(domain.CatalogResource(), domain.CatalogResourceHandler(deps.Catalog, channel))
	target.AddResourceTemplate(domain.PackageResourceTemplate(), domain.PackageResourceHandler(deps.Catalog, channel))
	return nil
}

// Serve runs the server on stdio until the client disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// Handler returns the streamable HTTP handler for this server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
}

// Run builds a server and serves it on the configured transport.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	switch cfg.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	server, err := New(cfg.Dependencies)
	if err != nil {
		return err
	}
	if cfg.Transport == TransportStdio {
		return server.Serve(ctx)
	}
	return server.serveHTTP(ctx, cfg.HTTPAddr)
}

func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = defaultHTTPAddr
	}
	listener, err := listenTCP("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(listener)
	}()
	log.Printf("mcp listening on %s", listener.Addr())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown MCP HTTP: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP HTTP: %w", err)
	}
}
