package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DBIntegrationSuite is a testify suite that starts a PostgreSQL container
// and applies the embedded migrations before any test runs. It is skipped
// with -short.
type DBIntegrationSuite struct {
	suite.Suite
	Pool             *pgxpool.Pool
	ConnectionString string

	pgContainer *postgres.PostgresContainer
}

func (s *DBIntegrationSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("skipping postgres integration suite in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("storefront"),
		postgres.WithPassword("storefront"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err, "start postgres container")
	s.pgContainer = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err, "connection string")
	s.Require().NoError(db.RunMigrations(connStr, logger.Nop()), "run migrations")

	pool, err := db.NewPool(ctx, connStr, 10*time.Second)
	s.Require().NoError(err, "connect to test database")

	s.Pool = pool
	s.ConnectionString = connStr
}

func (s *DBIntegrationSuite) TearDownSuite() {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.pgContainer != nil {
		s.Require().NoError(s.pgContainer.Terminate(context.Background()), "terminate postgres container")
	}
}

// TruncateTables is a helper to clean the database state between tests.
func (s *DBIntegrationSuite) TruncateTables(tables ...string) {
	_, err := s.Pool.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(tables, ", ")))
	s.Require().NoError(err, "truncate %v", tables)
}
