package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"bizmatch-engine/internal/catalog"
	"bizmatch-engine/internal/config"
	"bizmatch-engine/internal/engine"
	"bizmatch-engine/internal/events"
	"bizmatch-engine/internal/httpapi"
	"bizmatch-engine/internal/interactions"
	"bizmatch-engine/internal/match"
	"bizmatch-engine/internal/metrics"
	"bizmatch-engine/internal/page"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	// Engine data dir: env wins (a host shell can pass one), else local folder.
	dataDir := os.Getenv("BIZMATCH_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second instance would fight over sqlite.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("data dir lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance is already running in %s", dataDir)
	}
	defer lock.Unlock()

	userCfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		cfg, vr := config.NormalizeAndValidate(cfg)
		if !vr.OK() {
			return cfg, fmt.Errorf("config invalid: %v", vr.Errors)
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	inter, err := openInteractions(cfg, dataDir)
	if err != nil {
		logger.Fatal("interaction store open failed", zap.Error(err))
	}
	defer inter.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	hub := events.NewHub()

	sortKey, _ := page.ParseSortKey(cfg.Results.Sort)
	eng := engine.New(engine.Options{
		Catalog:         catalog.NewStore(logger),
		Scorer:          match.NewWeightedScorer(cfg.Scoring),
		Interactions:    inter,
		Hub:             hub,
		Metrics:         m,
		Log:             logger,
		DefaultSort:     sortKey,
		DefaultPageSize: cfg.Results.PageSize,
	})

	reloadCatalog := func() error {
		cur := cfgVal.Load().(config.Config)
		if len(cur.Catalog.Files) == 0 {
			return errors.New("catalog.files is empty")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_, err := eng.Load(ctx, catalog.FileSource{Paths: cur.Catalog.Files})
		return err
	}
	if len(cfg.Catalog.Files) > 0 {
		if err := reloadCatalog(); err != nil {
			// Engine stays up in Error state; a corrected reload recovers.
			logger.Error("initial catalog load failed", zap.Error(err))
		}
	}

	mux := httpapi.NewMux(httpapi.Deps{
		Engine:        eng,
		Hub:           hub,
		Registry:      reg,
		CfgVal:        &cfgVal,
		UserCfgPath:   userCfgPath,
		LoadCfg:       loadCfg,
		ReloadCatalog: reloadCatalog,
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.AccessLog(logger),
		httpapi.Recover(logger),
		httpapi.RateLimit(50, 100),
		httpapi.Cors,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal("listen failed", zap.String("addr", addr), zap.Error(err))
	}
	logger.Info("engine listening",
		zap.String("addr", "http://"+addr),
		zap.String("data_dir", dataDir),
		zap.String("interactions", cfg.Interactions.Backend),
	)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func newLogger(cfg config.Config) *zap.Logger {
	var zc zap.Config
	if cfg.Log.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	if lvl, err := zap.ParseAtomicLevel(cfg.Log.Level); err == nil {
		zc.Level = lvl
	}
	logger, err := zc.Build()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	return logger
}

func openInteractions(cfg config.Config, dataDir string) (interactions.Store, error) {
	switch cfg.Interactions.Backend {
	case "", "sqlite":
		return interactions.OpenSQLite(filepath.Join(dataDir, "bizmatch.db"))
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return interactions.OpenRedis(ctx,
			cfg.Interactions.RedisAddr,
			cfg.Interactions.RedisPassword,
			cfg.Interactions.RedisDB,
		)
	case "memory":
		return interactions.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown interactions backend %q", cfg.Interactions.Backend)
}
