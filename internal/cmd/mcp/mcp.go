// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"

	platformcmd "github.com/louisbranch/balitours/internal/platform/cmd"
	"github.com/louisbranch/balitours/internal/platform/icons"
	"github.com/louisbranch/balitours/internal/platform/timeouts"
	mcpservice "github.com/louisbranch/balitours/internal/services/mcp/service"
	"github.com/louisbranch/balitours/internal/tours/bootstrap"
	"github.com/louisbranch/balitours/internal/tours/catalog"
)

// Config holds MCP command configuration.
type Config struct {
	HTTPAddr  string `env:"BALITOURS_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport string `env:"BALITOURS_MCP_TRANSPORT" envDefault:"stdio"`

	Catalog bootstrap.CatalogConfig
	Contact bootstrap.ContactConfig
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.Catalog.DBPath, "catalog-db", cfg.Catalog.DBPath, "SQLite catalog path")
	fs.StringVar(&cfg.Catalog.SeedFile, "seed-file", cfg.Catalog.SeedFile, "YAML catalog used when no database is configured")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceMCP, func(ctx context.Context) error {
		return serve(ctx, cfg)
	})
}

func serve(ctx context.Context, cfg Config) error {
	loadCtx, cancel := context.WithTimeout(ctx, timeouts.CatalogLoad)
	snapshot, err := bootstrap.LoadCatalog(loadCtx, cfg.Catalog)
	cancel()
	if err != nil {
		return err
	}
	log.Printf("catalog source=%s packages=%d", cfg.Catalog.Source(), snapshot.Len())

	dispatcher, err := bootstrap.NewDispatcher(cfg.Contact, log.Default())
	if err != nil {
		return fmt.Errorf("init contact dispatcher: %w", err)
	}
	defer func() {
		if err := dispatcher.Close(); err != nil {
			log.Printf("close contact dispatcher: %v", err)
		}
	}()

	return mcpservice.Run(ctx, mcpservice.Config{
		Dependencies: mcpservice.Dependencies{
			Catalog:       catalog.NewMemo(snapshot, 0),
			Dispatcher:    dispatcher.Dispatcher,
			CategoryIcons: icons.Emoji{},
			RegionIcons:   icons.Emoji{},
		},
		Transport: mcpservice.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
	})
}
