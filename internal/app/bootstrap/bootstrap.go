package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	governanceregistry "agora/contexts/ledger-runtime/governance-registry"
	governancepostgres "agora/contexts/ledger-runtime/governance-registry/adapters/postgres"
	governanceworkers "agora/contexts/ledger-runtime/governance-registry/application/workers"
	stakingledger "agora/contexts/ledger-runtime/staking-ledger"
	stakingpostgres "agora/contexts/ledger-runtime/staking-ledger/adapters/postgres"
	"agora/internal/platform/config"
	"agora/internal/platform/db"
	"agora/internal/platform/httpserver"
	"agora/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays storage-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  governanceworkers.OutboxRelay
	pollInterval time.Duration
	enableRelay  bool
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	var (
		staking    stakingledger.RuntimeModule
		governance governanceregistry.RuntimeModule
		pg         *db.Postgres
	)

	switch cfg.StorageBackend {
	case config.StorageBackendPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return nil, errors.New("POSTGRES_DSN is required for the postgres storage backend")
		}
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		staking = stakingledger.NewRuntimeModule(stakingledger.Dependencies[string, uint64]{
			Balances: stakingpostgres.NewRepository(pg.DB, logger),
			Logger:   logger,
		})
		repo := governancepostgres.NewRepository(pg.DB, logger)
		governance = governanceregistry.NewRuntimeModule(governanceregistry.Dependencies[string]{
			Proposals: repo,
			Votes:     repo,
			Outbox:    repo,
			Clock:     governancepostgres.SystemClock{},
			IDGen:     governancepostgres.UUIDGenerator{},
			Logger:    logger,
		})
	case config.StorageBackendMemory:
		staking = stakingledger.NewInMemoryRuntimeModule(logger)
		governance = governanceregistry.NewInMemoryRuntimeModule(logger)
	default:
		return nil, errors.New("STORAGE_BACKEND must be memory or postgres")
	}

	server := httpserver.New(staking, governance, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	repo := governancepostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: governanceworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     governancepostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		pollInterval: cfg.OutboxPollInterval,
		enableRelay:  cfg.EnableGovernanceOutboxRelay,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if !w.enableRelay {
		w.logger.Info("governance outbox relay disabled",
			"event", "bootstrap_worker_relay_disabled",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
