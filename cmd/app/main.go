package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"refill/cmd"
	httpadapter "refill/internal/adapters/in/http"
	"refill/internal/adapters/out/postgres/migrations"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "refill",
		Usage: "gas cylinder refill shop service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and scheduled jobs",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply or revert the database schema",
				Subcommands: []*cli.Command{
					{
						Name:  "up",
						Usage: "apply all pending migrations",
						Action: func(_ *cli.Context) error {
							return withConfig(func(cfg cmd.Config) error { return migrations.Up(cfg.DatabaseURL()) })
						},
					},
					{
						Name:  "down",
						Usage: "revert the latest migration",
						Action: func(_ *cli.Context) error {
							return withConfig(func(cfg cmd.Config) error { return migrations.Down(cfg.DatabaseURL()) })
						},
					},
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("refill stopped", "error", err)
		os.Exit(1)
	}
}

func withConfig(fn func(cmd.Config) error) error {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return err
	}
	return fn(cfg)
}

func serve(c *cli.Context) error {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("database handle: %w", err)
		}
		defer sqlDB.Close()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	root, err := cmd.NewCompositionRoot(cfg, db, registry, logger)
	if err != nil {
		return err
	}

	e, err := httpadapter.NewRouter(ctx, root.CreateHTTPServer(), httpadapter.RouterOptions{
		Gatherer: registry,
		Logger:   logger,
		LogLevel: cfg.LogLevel,
	})
	if err != nil {
		return err
	}
	// Open event streams end with the signal context instead of holding
	// Shutdown until its timeout.
	e.Server.BaseContext = func(net.Listener) context.Context { return ctx }

	jobManager, err := root.CreateJobManager()
	if err != nil {
		return err
	}
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "HTTP server listening", "addr", cfg.ListenAddr(),
			"storage", cfg.StorageDriver, "print_dispatcher", cfg.PrintDispatcher)
		if err := e.Start(cfg.ListenAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.InfoContext(shutdownCtx, "Shutting down")
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openDatabase connects to PostgreSQL and applies migrations when asked to.
// It returns a nil DB for the memory storage driver.
func openDatabase(cfg cmd.Config, logger *slog.Logger) (*gorm.DB, error) {
	if cfg.StorageDriver == cmd.StorageMemory {
		logger.Warn("Using in-memory storage; data is lost on restart and read-side queries are unavailable")
		return nil, nil //nolint:nilnil // memory driver has no database
	}

	if cfg.DBAutoMigrate {
		if err := migrations.Up(cfg.DatabaseURL()); err != nil {
			return nil, err
		}
		logger.Info("Database migrations applied")
	}

	db, err := gorm.Open(gormpostgres.Open(cfg.DatabaseURL()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}
