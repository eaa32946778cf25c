// Package web parses web command configuration and runs the tour site.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"

	platformcmd "github.com/louisbranch/balitours/internal/platform/cmd"
	"github.com/louisbranch/balitours/internal/platform/icons"
	"github.com/louisbranch/balitours/internal/platform/timeouts"
	webservice "github.com/louisbranch/balitours/internal/services/web"
	module "github.com/louisbranch/balitours/internal/services/web/module"
	"github.com/louisbranch/balitours/internal/tours/bootstrap"
	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/louisbranch/balitours/internal/tours/reveal"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr     string `env:"BALITOURS_WEB_HTTP_ADDR"     envDefault:"localhost:8080"`
	SmoothScroll bool   `env:"BALITOURS_WEB_SMOOTH_SCROLL" envDefault:"true"`
	// EagerCards is how many leading cards render revealed; -1 sizes it from
	// a default desktop viewport.
	EagerCards int `env:"BALITOURS_WEB_EAGER_CARDS" envDefault:"0"`

	Catalog bootstrap.CatalogConfig
	Contact bootstrap.ContactConfig
	Images  bootstrap.ImageConfig
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.BoolVar(&cfg.SmoothScroll, "smooth-scroll", cfg.SmoothScroll, "Enable smooth scrolling")
	fs.IntVar(&cfg.EagerCards, "eager-cards", cfg.EagerCards, "Cards revealed on first render (-1 for auto)")
	fs.StringVar(&cfg.Catalog.DBPath, "catalog-db", cfg.Catalog.DBPath, "SQLite catalog path")
	fs.StringVar(&cfg.Catalog.SeedFile, "seed-file", cfg.Catalog.SeedFile, "YAML catalog used when no database is configured")
	fs.StringVar(&cfg.Contact.Number, "contact-number", cfg.Contact.Number, "WhatsApp number for bookings")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.EagerCards < module.EagerCardsAuto {
		return Config{}, fmt.Errorf("eager cards must be -1 or more, got %d", cfg.EagerCards)
	}
	return cfg, nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceWeb, func(ctx context.Context) error {
		return serve(ctx, cfg)
	})
}

func serve(ctx context.Context, cfg Config) error {
	deps, closeDeps, err := buildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDeps()

	server, err := webservice.NewServer(webservice.Config{HTTPAddr: cfg.HTTPAddr, Dependencies: deps})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

func buildDependencies(ctx context.Context, cfg Config) (module.Dependencies, func(), error) {
	loadCtx, cancel := context.WithTimeout(ctx, timeouts.CatalogLoad)
	snapshot, err := bootstrap.LoadCatalog(loadCtx, cfg.Catalog)
	cancel()
	if err != nil {
		return module.Dependencies{}, nil, err
	}
	log.Printf("catalog source=%s packages=%d", cfg.Catalog.Source(), snapshot.Len())

	resolver, err := bootstrap.NewImageResolver(cfg.Images)
	if err != nil {
		return module.Dependencies{}, nil, fmt.Errorf("init image resolver: %w", err)
	}
	dispatcher, err := bootstrap.NewDispatcher(cfg.Contact, log.Default())
	if err != nil {
		return module.Dependencies{}, nil, fmt.Errorf("init contact dispatcher: %w", err)
	}
	closeDeps := func() {
		if err := dispatcher.Close(); err != nil {
			log.Printf("close contact dispatcher: %v", err)
		}
	}

	return module.Dependencies{
		Catalog:       catalog.NewMemo(snapshot, 0),
		Dispatcher:    dispatcher.Dispatcher,
		Images:        resolver,
		CategoryIcons: icons.Emoji{},
		RegionIcons:   icons.Emoji{},
		Reveal:        reveal.DefaultOptions(),
		EagerCards:    cfg.EagerCards,
		SmoothScroll:  cfg.SmoothScroll,
	}, closeDeps, nil
}
