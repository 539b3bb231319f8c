package app

import (
	"fmt"
	"net/http"
	"os"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fixture-reconciler/internal/config"
	"github.com/riskibarqy/fixture-reconciler/internal/domain/fixturematch"
	"github.com/riskibarqy/fixture-reconciler/internal/infrastructure/feed"
	sourcecache "github.com/riskibarqy/fixture-reconciler/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fixture-reconciler/internal/infrastructure/repository/guarded"
	"github.com/riskibarqy/fixture-reconciler/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fixture-reconciler/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/fixture-reconciler/internal/platform/cache"
	"github.com/riskibarqy/fixture-reconciler/internal/platform/logging"
	"github.com/riskibarqy/fixture-reconciler/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	reconcileSvc, err := NewReconcileService(cfg, logger)
	if err != nil {
		return nil, err
	}

	handler := httpapi.NewHandler(reconcileSvc, logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, logger.Named("http"), cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

// NewReconcileService wires the configured sources, behind a circuit breaker and
// an optional TTL cache, into the reconcile use case.
func NewReconcileService(cfg config.Config, logger *logging.Logger) (*usecase.ReconcileService, error) {
	if logger == nil {
		logger = logging.Default()
	}

	aliases, err := LoadAliasTables(cfg.ReconcileAliasesPath)
	if err != nil {
		return nil, err
	}
	logger.Info("alias tables loaded",
		"path", cfg.ReconcileAliasesPath,
		"scoped_competitions", aliases.CompetitionCodes(),
	)
	schedule, events, err := newSources(cfg, logger)
	if err != nil {
		return nil, err
	}

	guardedSources := guarded.NewSources(schedule, events, cfg.SourceCircuit, logger.Named("sources"))
	schedule, events = guardedSources, guardedSources
	if cfg.SourceCacheEnabled {
		schedule = sourcecache.NewScheduleSource(schedule, basecache.NewStore[[]fixturematch.Fixture](cfg.SourceCacheTTL))
		events = sourcecache.NewEventSource(events, basecache.NewStore[[]fixturematch.CandidateMatch](cfg.SourceCacheTTL))
	}

	return usecase.NewReconcileService(
		aliases,
		schedule,
		events,
		usecase.ReconcileServiceConfig{DefaultMaxWorkers: cfg.ReconcileMaxWorkers},
		logger.Named("reconcile"),
	), nil
}

// newSources returns the remote feed when one is configured, otherwise the
// static dataset.
func newSources(cfg config.Config, logger *logging.Logger) (fixturematch.ScheduleSource, fixturematch.EventSource, error) {
	if cfg.SourceFeedBaseURL != "" {
		client, err := feed.NewClient(feed.ClientConfig{
			BaseURL:    cfg.SourceFeedBaseURL,
			Token:      cfg.SourceFeedToken,
			Timeout:    cfg.SourceFeedTimeout,
			MaxRetries: cfg.SourceFeedMaxRetries,
			Logger:     logger.Named("feed"),
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("reconcile sources use remote feed", "base_url", cfg.SourceFeedBaseURL)
		return client, client, nil
	}

	dataset, err := LoadDataset(cfg.ReconcileDatasetPath, logger)
	if err != nil {
		return nil, nil, err
	}
	repo := memory.NewDatasetRepository(dataset)
	return repo, repo, nil
}

// LoadDataset reads the dataset file at path, or returns the seed dataset when
// path is empty.
func LoadDataset(path string, logger *logging.Logger) (*memory.Dataset, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if path == "" {
		logger.Info("no reconcile dataset configured, serving seed dataset", "season", memory.SeedSeason)
		return memory.SeedDataset(), nil
	}

	dataset, err := memory.LoadDataset(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "load reconcile dataset %s", path)
	}
	logger.Info("reconcile dataset loaded", "path", path, "competition_seasons", len(dataset.Keys()))
	return dataset, nil
}

// LoadAliasTables falls back to the bundled tables when path is empty.
func LoadAliasTables(path string) (*fixturematch.AliasTables, error) {
	if path == "" {
		return fixturematch.DefaultAliasTables(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read alias tables %s", path)
	}
	tables, err := fixturematch.ParseAliasTables(raw)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse alias tables %s", path)
	}
	return tables, nil
}
