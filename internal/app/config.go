package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/metinatakli/ticketmaster/internal/repository"
)

// ErrUsage reports malformed command line arguments. The usage text has
// already been written when it is returned.
var ErrUsage = errors.New("invalid command line arguments")

type config struct {
	env              string
	logLevel         slog.Level
	otelCollectorUrl string
	displayVersion   bool
	db               struct {
		name           string
		port           int
		user           string
		host           string
		password       string
		maxConns       int
		connectTimeout time.Duration
		migrations     string
	}
	redis struct {
		url string
	}
	identity struct {
		strategy string
	}
}

// parseConfig reads flags followed by the positional <dbname> <port> <user>.
func parseConfig(args []string, stderr io.Writer) (config, error) {
	var (
		cfg      config
		logLevel string
	)

	fs := flag.NewFlagSet("ticketmaster", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: ticketmaster [flags] <dbname> <port> <user>\n\nFlags:\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.env, "env", "dev", "Environment (dev|staging|prod)")
	fs.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.otelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector gRPC endpoint; empty disables telemetry")

	fs.StringVar(&cfg.db.host, "db-host", "localhost", "PostgreSQL host")
	fs.StringVar(&cfg.db.password, "db-password", os.Getenv("DB_PASSWORD"), "PostgreSQL password (defaults to $DB_PASSWORD)")
	fs.IntVar(&cfg.db.maxConns, "db-max-conns", 1, "PostgreSQL max connections")
	fs.DurationVar(&cfg.db.connectTimeout, "db-connect-timeout", 5*time.Second, "PostgreSQL connect timeout")
	fs.StringVar(&cfg.db.migrations, "migrations", "", "Migrations source URL applied at startup, e.g. file://migrations; empty skips")

	fs.StringVar(&cfg.identity.strategy, "id-strategy", repository.StrategySequence,
		"Movie and show id strategy ("+strings.Join(repository.IdentityStrategies, "|")+")")
	fs.StringVar(&cfg.redis.url, "redis-url", "redis://localhost:6379/0", "Redis URL, used by the redis id strategy")

	fs.BoolVar(&cfg.displayVersion, "version", false, "Display version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, ErrUsage
	}

	if cfg.displayVersion {
		return cfg, nil
	}

	if fs.NArg() != 3 {
		fs.Usage()
		return cfg, ErrUsage
	}

	cfg.db.name = fs.Arg(0)
	cfg.db.user = fs.Arg(2)

	port, err := strconv.Atoi(fs.Arg(1))
	if err != nil || port < 1 || port > 65535 {
		fmt.Fprintf(stderr, "invalid port %q\n", fs.Arg(1))
		fs.Usage()
		return cfg, ErrUsage
	}
	cfg.db.port = port

	if err := cfg.logLevel.UnmarshalText([]byte(logLevel)); err != nil {
		fmt.Fprintf(stderr, "invalid log level %q\n", logLevel)
		return cfg, ErrUsage
	}

	if !slices.Contains(repository.IdentityStrategies, cfg.identity.strategy) {
		fmt.Fprintf(stderr, "invalid id strategy %q\n", cfg.identity.strategy)
		return cfg, ErrUsage
	}

	if cfg.db.maxConns < 1 {
		fmt.Fprintln(stderr, "db-max-conns must be at least 1")
		return cfg, ErrUsage
	}

	return cfg, nil
}

// dsn builds the PostgreSQL connection URL. An empty password is left out
// of the URL entirely.
func (cfg config) dsn() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.db.host, strconv.Itoa(cfg.db.port)),
		Path:   "/" + cfg.db.name,
	}

	if cfg.db.password != "" {
		u.User = url.UserPassword(cfg.db.user, cfg.db.password)
	} else {
		u.User = url.User(cfg.db.user)
	}

	return u.String()
}
