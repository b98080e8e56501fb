package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/metinatakli/ticketmaster/internal/console"
	"github.com/metinatakli/ticketmaster/internal/domain"
	"github.com/metinatakli/ticketmaster/internal/repository"
	"github.com/metinatakli/ticketmaster/internal/ticketing"
	appvalidator "github.com/metinatakli/ticketmaster/internal/validator"
	"github.com/metinatakli/ticketmaster/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

var (
	version = vcs.Version()
)

const interruptedExitCode = 130

type application struct {
	config    config
	logger    *slog.Logger
	validator *validator.Validate
	gateway   domain.Gateway
	redis     redis.UniversalClient
	identity  domain.IdentityManager
	stdin     io.Reader
	stdout    io.Writer
}

// Run wires the storage gateway, identity manager and ticketing service and
// hands control to the console menu. The gateway is released on every return
// path, and on SIGINT/SIGTERM before the process exits.
func Run(args []string) error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := parseConfig(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if cfg.displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		return nil
	}

	textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.logLevel})

	app := &application{
		config:    cfg,
		logger:    slog.New(textHandler),
		validator: appvalidator.NewValidator(),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.otelCollectorUrl != "" {
		app.logger = slog.New(NewMultiHandler(textHandler, otelslog.NewHandler("ticketmaster")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.db.migrations != "" {
		err = repository.RunMigrations(cfg.dsn(), cfg.db.migrations)
		if err != nil {
			return err
		}
		app.logger.Info("database migrations applied", "source", cfg.db.migrations)
	}

	db, err := newDatabasePool(ctx, cfg)
	if err != nil {
		return err
	}

	app.gateway = repository.NewPostgresGateway(db)
	defer app.gateway.Close()

	if cfg.identity.strategy == repository.StrategyRedis {
		app.redis, err = newRedisClient(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.redis.Close()
	}

	app.handleSignals(cancel, shutdownTelemetry)

	app.identity, err = repository.NewIdentityManager(ctx, cfg.identity.strategy, app.gateway, app.redis)
	if err != nil {
		return fmt.Errorf("failed to initialize %s id strategy: %w", cfg.identity.strategy, err)
	}

	app.logger.Info("connected",
		"db", cfg.db.name,
		"host", cfg.db.host,
		"port", cfg.db.port,
		"user", cfg.db.user,
		"id_strategy", cfg.identity.strategy,
		"env", cfg.env,
		"version", version)

	return app.run(ctx)
}

func (app *application) run(ctx context.Context) error {
	service := ticketing.NewService(app.gateway, app.identity, app.validator, app.logger)
	menu := console.NewMenu(service, app.validator, app.stdin, app.stdout)

	err := menu.Run(ctx)
	if err != nil {
		return err
	}

	app.logger.Info("session ended")

	return nil
}

// handleSignals releases the gateway when the process is interrupted. The
// menu may be blocked reading stdin, so the process exits from here.
func (app *application) handleSignals(cancel context.CancelFunc, shutdownTelemetry func(context.Context)) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s := <-quit

		app.logger.Info("shutting down", "signal", s.String())

		cancel()
		app.gateway.Close()
		if app.redis != nil {
			app.redis.Close()
		}
		shutdownTelemetry(context.Background())

		os.Exit(interruptedExitCode)
	}()
}

func newDatabasePool(ctx context.Context, cfg config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConnectivity, err)
	}

	config.MaxConns = int32(cfg.db.maxConns)
	config.ConnConfig.ConnectTimeout = cfg.db.connectTimeout
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConnectivity, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.db.connectTimeout)
	defer cancel()

	err = db.Ping(pingCtx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrConnectivity, err)
	}

	return db, nil
}

func newRedisClient(ctx context.Context, cfg config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.redis.url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		rdb.Close()
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(rdb); err != nil {
		rdb.Close()
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err = rdb.Ping(pingCtx).Err()
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("%w: redis: %w", domain.ErrConnectivity, err)
	}

	return rdb, nil
}
