package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/mindweave/internal/cache"
	"github.com/alexanderramin/mindweave/internal/cli"
	"github.com/alexanderramin/mindweave/internal/config"
	"github.com/alexanderramin/mindweave/internal/db"
	"github.com/alexanderramin/mindweave/internal/logger"
	"github.com/alexanderramin/mindweave/internal/metrics"
	"github.com/alexanderramin/mindweave/internal/planclient"
	"github.com/alexanderramin/mindweave/internal/repository"
	"github.com/alexanderramin/mindweave/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv(config.EnvPrefix + "_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	m := metrics.New()

	// Redis is optional; fall back to the in-process cache.
	var store cache.Store = cache.NewMemoryStore()
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, using in-memory plan cache", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			store = cache.NewRedisStore(client)
		}
	}
	planCache := cache.NewPlanCache(store, m, log, cfg.Redis.TTL)
	defer planCache.Close()

	observers := []service.UseCaseObserver{service.NewMetricsUseCaseObserver(m)}
	if cfg.Log.UseCases {
		observers = append(observers, service.NewZapUseCaseObserver(log))
	}

	plans := service.NewPlanService(
		repository.NewSQLitePlanRepo(database),
		db.NewSQLiteUnitOfWork(database),
		planCache,
		cfg,
		time.Now,
		observers...,
	)

	app := &cli.App{
		Plans:   plans,
		Remote:  planclient.New(cfg.Remote, planclient.NewZapObserver(log)),
		Config:  cfg,
		Logger:  log,
		Metrics: m,
		Version: version,
		Now:     time.Now,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
