// Package bootstrap builds the shared tour services from command
// configuration: the catalog snapshot, the contact dispatcher, and the image
// resolver.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/louisbranch/balitours/internal/tours/catalog/seed"
	"github.com/louisbranch/balitours/internal/tours/contact"
	"github.com/louisbranch/balitours/internal/tours/events"
	"github.com/louisbranch/balitours/internal/tours/images"
	"github.com/louisbranch/balitours/internal/tours/storage"
	"github.com/louisbranch/balitours/internal/tours/storage/postgres"
	"github.com/louisbranch/balitours/internal/tours/storage/sqlite"
)

// CatalogConfig selects where the catalog is read from. Postgres wins over
// SQLite; with neither set the embedded dataset (or SeedFile) is used.
type CatalogConfig struct {
	DBPath      string `env:"BALITOURS_CATALOG_DB"`
	PostgresDSN string `env:"BALITOURS_CATALOG_POSTGRES_DSN"`
	SeedFile    string `env:"BALITOURS_CATALOG_SEED_FILE"`
}

// Source names the backend the config selects.
func (c CatalogConfig) Source() string {
	switch {
	case strings.TrimSpace(c.PostgresDSN) != "":
		return "postgres"
	case strings.TrimSpace(c.DBPath) != "":
		return "sqlite"
	case strings.TrimSpace(c.SeedFile) != "":
		return "seed-file"
	default:
		return "embedded"
	}
}

// ContactConfig configures the booking channel and intent recording.
type ContactConfig struct {
	Number       string `env:"BALITOURS_CONTACT_NUMBER"`
	KafkaBrokers string `env:"BALITOURS_KAFKA_BROKERS"`
	KafkaTopic   string `env:"BALITOURS_KAFKA_TOPIC"`
}

// ImageConfig configures how package image references become URLs.
type ImageConfig struct {
	AssetBaseURL   string        `env:"BALITOURS_WEB_ASSET_BASE_URL"`
	MinIOEndpoint  string        `env:"BALITOURS_MINIO_ENDPOINT"`
	MinIOAccessKey string        `env:"BALITOURS_MINIO_ACCESS_KEY"`
	MinIOSecretKey string        `env:"BALITOURS_MINIO_SECRET_KEY"`
	MinIORegion    string        `env:"BALITOURS_MINIO_REGION"`
	MinIOUseSSL    bool          `env:"BALITOURS_MINIO_USE_SSL"`
	MinIOExpiry    time.Duration `env:"BALITOURS_MINIO_URL_EXPIRY" envDefault:"1h"`
}

// LoadCatalog reads the configured source once and freezes it.
func LoadCatalog(ctx context.Context, cfg CatalogConfig) (*catalog.Snapshot, error) {
	switch cfg.Source() {
	case "postgres":
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres catalog: %w", err)
		}
		defer store.Close()
		return catalog.Load(ctx, storage.Provider(store))
	case "sqlite":
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite catalog: %w", err)
		}
		defer store.Close()
		return catalog.Load(ctx, storage.Provider(store))
	case "seed-file":
		provider, err := seed.Open(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		return catalog.Load(ctx, provider)
	default:
		provider, err := seed.Embedded()
		if err != nil {
			return nil, err
		}
		return catalog.Load(ctx, provider)
	}
}

// Dispatcher is a contact dispatcher plus the resources it owns.
type Dispatcher struct {
	*contact.Dispatcher
	publisher *events.Publisher
}

// Close waits for in-flight recordings and releases the publisher.
func (d *Dispatcher) Close() error {
	if d == nil || d.Dispatcher == nil {
		return nil
	}
	d.Wait()
	if d.publisher == nil {
		return nil
	}
	return d.publisher.Close()
}

// NewDispatcher builds the booking dispatcher. Intents go to Kafka when
// brokers are configured and are otherwise only logged.
func NewDispatcher(cfg ContactConfig, logger *log.Logger) (*Dispatcher, error) {
	if logger == nil {
		logger = log.Default()
	}
	opts := []contact.Option{contact.WithLogger(logger)}
	var publisher *events.Publisher
	if strings.TrimSpace(cfg.KafkaBrokers) != "" {
		var err error
		publisher, err = events.Dial(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, fmt.Errorf("dial kafka: %w", err)
		}
		opts = append(opts, contact.WithSink(publisher))
	} else {
		opts = append(opts, contact.WithSink(logSink(logger)))
	}
	return &Dispatcher{
		Dispatcher: contact.NewDispatcher(contact.NewChannel(cfg.Number), opts...),
		publisher:  publisher,
	}, nil
}

func logSink(logger *log.Logger) contact.Sink {
	return contact.SinkFunc(func(_ context.Context, intent contact.Intent) error {
		logger.Printf("booking intent subject=%q source=%s", intent.Subject, intent.Source)
		return nil
	})
}

// NewImageResolver signs s3:// references through MinIO when an endpoint is
// configured and serves everything else relative to the asset base URL.
func NewImageResolver(cfg ImageConfig) (images.Resolver, error) {
	static := images.Static{BaseURL: cfg.AssetBaseURL}
	if strings.TrimSpace(cfg.MinIOEndpoint) == "" {
		return static, nil
	}
	if strings.TrimSpace(cfg.MinIOAccessKey) == "" || strings.TrimSpace(cfg.MinIOSecretKey) == "" {
		return nil, errors.New("minio access and secret keys are required")
	}
	store, err := images.NewObjectStore(images.MinIOConfig{
		Endpoint:  cfg.MinIOEndpoint,
		AccessKey: cfg.MinIOAccessKey,
		SecretKey: cfg.MinIOSecretKey,
		Region:    cfg.MinIORegion,
		UseSSL:    cfg.MinIOUseSSL,
		Expiry:    cfg.MinIOExpiry,
	}, static)
	if err != nil {
		return nil, err
	}
	return store, nil
}
