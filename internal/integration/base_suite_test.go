package integration_test

import (
	"context"
	"io"
	"log"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticketmaster/internal/domain"
	"github.com/metinatakli/ticketmaster/internal/repository"
	"github.com/metinatakli/ticketmaster/internal/ticketing"
	appvalidator "github.com/metinatakli/ticketmaster/internal/validator"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const (
	dbName         = "ticketmaster"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"
)

// BaseSuite starts PostgreSQL and Redis once per suite and reloads the
// fixture before every test. Strategy selects the identity manager the
// service is built with.
type BaseSuite struct {
	suite.Suite
	Strategy string

	dbContainer    *PostgresContainer
	cacheContainer *RedisContainer

	db      *pgxpool.Pool
	redis   *redis.Client
	gateway *repository.PostgresGateway
	service *ticketing.Service
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	postgresContainer, err := getDbContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		s.T().FailNow()
	}

	redisContainer, err := getCacheContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		s.T().FailNow()
	}

	s.dbContainer = postgresContainer
	s.cacheContainer = redisContainer

	s.db, err = pgxpool.New(ctx, postgresContainer.ConnectionString)
	s.Require().NoError(err)

	opts, err := redis.ParseURL(redisContainer.ConnectionString)
	s.Require().NoError(err)
	s.redis = redis.NewClient(opts)

	s.gateway = repository.NewPostgresGateway(s.db)
}

func (s *BaseSuite) TearDownSuite() {
	if s.gateway != nil {
		s.gateway.Close()
	}
	if s.redis != nil {
		s.redis.Close()
	}
	if s.dbContainer != nil {
		if err := testcontainers.TerminateContainer(s.dbContainer.Container.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

func (s *BaseSuite) SetupTest() {
	ctx := context.Background()

	resetDatabase(s.T(), s.db)
	s.Require().NoError(s.redis.FlushAll(ctx).Err())

	s.service = s.newService(s.strategy())
}

func (s *BaseSuite) strategy() string {
	if s.Strategy == "" {
		return repository.StrategySequence
	}

	return s.Strategy
}

func (s *BaseSuite) newService(strategy string) *ticketing.Service {
	identity, err := repository.NewIdentityManager(context.Background(), strategy, s.gateway, s.redis)
	s.Require().NoError(err)

	return ticketing.NewService(
		s.gateway,
		identity,
		appvalidator.NewValidator(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func (s *BaseSuite) bookingStatus(bid int) domain.BookingStatus {
	booking, err := s.service.GetBooking(context.Background(), bid)
	s.Require().NoError(err)

	return booking.Status
}
