package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	statsrender "github.com/crazypanel/lookupbot/internal/adapters/render/stats"
	tomlrepo "github.com/crazypanel/lookupbot/internal/adapters/repo/toml"
	"github.com/crazypanel/lookupbot/internal/application"
	"github.com/crazypanel/lookupbot/internal/domain"
	"github.com/crazypanel/lookupbot/internal/ports"
)

// app carries the wiring every subcommand shares. Network configuration is
// loaded lazily by serve; the admin commands only need the store.
type app struct {
	service       *application.SubscriptionService
	reporter      *application.Reporter
	catalog       *domain.Catalog
	statsRenderer func(application.Summary, statsrender.RenderOptions) (string, error)
	logger        zerolog.Logger
	now           func() time.Time
}

func wireApp() (*app, error) {
	logger := newLogger()

	repo, err := tomlrepo.NewRepository(viper.New(), logger)
	if err != nil {
		return nil, fmt.Errorf("wire subscription repository: %w", err)
	}

	catalog := domain.DefaultCatalog()

	return &app{
		service:       application.NewSubscriptionService(repo, catalog, ports.SystemClock{}, logger),
		reporter:      application.NewReporter(repo),
		catalog:       catalog,
		statsRenderer: statsrender.Render,
		logger:        logger,
		now:           time.Now,
	}, nil
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger().
		Level(level)
}
