package main

import (
	"context"
	"net/http"
	"os"
	"time"

	httpadapter "nftforge/internal/adapter/http"
	ledgermem "nftforge/internal/adapter/ledger/memory"
	redisledger "nftforge/internal/adapter/ledger/redis"
	"nftforge/internal/adapter/metrics"
	metricsinmem "nftforge/internal/adapter/metrics/inmemory"
	"nftforge/internal/adapter/metrics/prom"
	gormrepo "nftforge/internal/adapter/repo/gorm"
	"nftforge/internal/adapter/repo/memory"
	"nftforge/internal/app/history"
	"nftforge/internal/app/ports"
	"nftforge/internal/app/status"
	"nftforge/internal/app/transition"
	"nftforge/internal/platform/config"
	"nftforge/internal/platform/logging"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		os.Stderr.WriteString("build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx := context.Background()
	b, err := buildBackends(ctx, cfg, logger)
	if err != nil {
		return err
	}

	kpiRecorder := metricsinmem.NewRecorder()
	recorders := metrics.Fanout{kpiRecorder}
	var metricsServer *http.Server
	if cfg.Metrics.Addr != "" {
		promRecorder := prom.NewRecorder("nftforge")
		recorders = append(recorders, promRecorder)
		metricsServer = promRecorder.NewServer(cfg.Metrics.Addr, cfg.Metrics.Path)
		go func() {
			logger.Info("metrics listening", zap.String("addr", cfg.Metrics.Addr), zap.String("path", cfg.Metrics.Path))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics listener", zap.Error(err))
			}
		}()
	}

	h := newHandler(b, recorders, kpiRecorder, logger)

	s := server.Default(server.WithHostPorts(cfg.HTTP.Addr))
	h.RegisterRoutes(s)
	s.OnShutdown = append(s.OnShutdown, func(ctx context.Context) {
		if metricsServer != nil {
			_ = metricsServer.Shutdown(ctx)
		}
		for _, closeFn := range b.closers {
			if err := closeFn(); err != nil {
				logger.Warn("close backend", zap.Error(err))
			}
		}
	})

	logger.Info("nftforge listening",
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("store", cfg.Store.Backend),
		zap.String("ledger", cfg.Ledger.Backend),
	)
	s.Spin()
	return nil
}

type backends struct {
	txManager ports.TxManager
	stateRepo ports.ProgressionStateRepository
	eventRepo ports.EventRepository
	ledger    ports.AttributeLedger
	closers   []func() error
}

func newHandler(b backends, recorder ports.TransitionMetrics, kpi *metricsinmem.Recorder, logger *zap.Logger) httpadapter.Handler {
	now := func() time.Time { return time.Now().UTC() }
	return httpadapter.Handler{
		TransitionUC: transition.UseCase{
			TxManager: b.txManager,
			StateRepo: b.stateRepo,
			Ledger:    b.ledger,
			EventRepo: b.eventRepo,
			Metrics:   recorder,
			Logger:    logger.Named("transition"),
			Now:       now,
		},
		StatusUC:  status.UseCase{StateRepo: b.stateRepo, Ledger: b.ledger, Now: now},
		HistoryUC: history.UseCase{Events: b.eventRepo},
		KPI:       kpi,
		Logger:    logger.Named("http"),
	}
}

func buildBackends(ctx context.Context, cfg config.Config, logger *zap.Logger) (backends, error) {
	var b backends

	switch cfg.Store.Backend {
	case config.StorePostgres:
		db, err := gormrepo.OpenPostgres(cfg.Store.DSN, gormrepo.PoolOptions{
			MaxOpenConns:    cfg.Store.MaxOpenConns,
			MaxIdleConns:    cfg.Store.MaxIdleConns,
			ConnMaxLifetime: cfg.Store.ConnMaxLifetime,
		})
		if err != nil {
			return backends{}, err
		}
		if cfg.Store.MigrationsDir != "" {
			applied, err := gormrepo.ApplyMigrations(ctx, db, cfg.Store.MigrationsDir)
			if err != nil {
				return backends{}, err
			}
			logger.Info("migrations applied", zap.Strings("versions", applied))
		}
		b.txManager = gormrepo.NewTxManager(db)
		b.stateRepo = gormrepo.NewProgressionStateRepo(db)
		b.eventRepo = gormrepo.NewEventRepo(db)
		if cfg.Ledger.Backend == config.LedgerPostgres {
			b.ledger = gormrepo.NewAssetLedger(db)
		}
		if sqlDB, err := db.DB(); err == nil {
			b.closers = append(b.closers, sqlDB.Close)
		}
	case config.StoreMemory:
		store := memory.NewStore()
		b.txManager = memory.NewTxManager(store)
		b.stateRepo = memory.NewProgressionStateRepo(store)
		b.eventRepo = memory.NewEventRepo(store)
	default:
		return backends{}, errors.Newf("unknown store backend %q", cfg.Store.Backend)
	}

	switch cfg.Ledger.Backend {
	case config.LedgerPostgres:
		if b.ledger == nil {
			return backends{}, errors.New("postgres ledger requires the postgres store")
		}
	case config.LedgerRedis:
		client, err := redisledger.Open(ctx, redisledger.Options{
			Addr:     cfg.Ledger.RedisAddr,
			Password: cfg.Ledger.RedisPassword,
			DB:       cfg.Ledger.RedisDB,
		})
		if err != nil {
			return backends{}, err
		}
		b.ledger = redisledger.NewLedger(client, cfg.Ledger.RedisPrefix)
		b.closers = append(b.closers, client.Close)
	case config.LedgerMemory:
		b.ledger = ledgermem.NewLedger()
	default:
		return backends{}, errors.Newf("unknown ledger backend %q", cfg.Ledger.Backend)
	}
	return b, nil
}
