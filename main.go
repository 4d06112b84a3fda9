package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/msomdec/projecthub/internal/config"
	"github.com/msomdec/projecthub/internal/domain"
	"github.com/msomdec/projecthub/internal/handler"
	"github.com/msomdec/projecthub/internal/logging"
	"github.com/msomdec/projecthub/internal/repository/postgres"
	"github.com/msomdec/projecthub/internal/repository/sqlite"
	"github.com/msomdec/projecthub/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Init("projecthub", cfg.LogLevel, cfg.AppEnv)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	if err := migrateOrClose(ctx, db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database migrations applied", "driver", cfg.DatabaseDriver)

	accountService := service.NewAccountService(db.Accounts(), cfg.BcryptCost)

	if len(os.Args) > 1 && os.Args[1] == "createsuperuser" {
		if err := createSuperuser(ctx, accountService, os.Args[2:], os.Stdout); err != nil {
			slog.Error("createsuperuser failed", "error", err)
			db.Close()
			os.Exit(1)
		}
		return
	}

	if err := serve(ctx, cfg, accountService); err != nil {
		slog.Error("server error", "error", err)
		db.Close()
		os.Exit(1)
	}
}

func openDatabase(ctx context.Context, cfg *config.Config) (domain.Database, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.DatabaseURL, postgres.PoolConfig{
			MaxOpenConns:     cfg.DBMaxOpenConns,
			MaxIdleConns:     cfg.DBMaxIdleConns,
			ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		})
	default:
		return sqlite.New(cfg.DatabasePath)
	}
}

// migrateOrClose applies pending migrations. On failure db is closed, since
// the caller exits without using it.
func migrateOrClose(ctx context.Context, db domain.Database) error {
	if err := db.Migrate(ctx); err != nil {
		if cerr := db.Close(); cerr != nil {
			slog.Error("close database", "error", cerr)
		}
		return err
	}
	return nil
}

func serve(ctx context.Context, cfg *config.Config, accounts *service.AccountService) error {
	limiter := service.NewTokenBucket(ctx, cfg.RegisterRatePerMin/60, cfg.RegisterBurst)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.NewAccountHandler(accounts, cfg.RegistrationAutoActivate), limiter)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           handler.Chain(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
