package testinfra

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	MySQLImage    = "mysql:8.4"
	PostgresImage = "postgres:17-alpine"

	TestUser     = "loader"
	TestPassword = "p@ss:w/rd"
	TestDatabase = "crm"
)

// Endpoint is where a started container can be reached from the host.
type Endpoint struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

type MySQLContainer struct {
	*tcmysql.MySQLContainer
	Endpoint
}

type PostgresContainer struct {
	*postgres.PostgresContainer
	Endpoint
}

// StartMySQL starts a MySQL server with TestUser/TestPassword owning TestDatabase.
func StartMySQL(ctx context.Context) (*MySQLContainer, error) {
	ctr, err := tcmysql.Run(ctx,
		MySQLImage,
		tcmysql.WithDatabase(TestDatabase),
		tcmysql.WithUsername(TestUser),
		tcmysql.WithPassword(TestPassword),
	)
	if err != nil {
		return nil, fmt.Errorf("start mysql: %w", err)
	}

	mapped, err := ctr.MappedPort(ctx, "3306/tcp")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}
	ep, err := endpoint(ctx, ctr, mapped.Port())
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, err
	}
	return &MySQLContainer{MySQLContainer: ctr, Endpoint: ep}, nil
}

// StartPostgres starts a PostgreSQL server with TestUser/TestPassword owning TestDatabase.
func StartPostgres(ctx context.Context) (*PostgresContainer, error) {
	ctr, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithUsername(TestUser),
		postgres.WithPassword(TestPassword),
		postgres.WithDatabase(TestDatabase),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	mapped, err := ctr.MappedPort(ctx, "5432/tcp")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}
	ep, err := endpoint(ctx, ctr, mapped.Port())
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, err
	}
	return &PostgresContainer{PostgresContainer: ctr, Endpoint: ep}, nil
}

func endpoint(ctx context.Context, ctr testcontainers.Container, port string) (Endpoint, error) {
	host, err := ctr.Host(ctx)
	if err != nil {
		return Endpoint{}, fmt.Errorf("get container host: %w", err)
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return Endpoint{}, fmt.Errorf("parse mapped port %q: %w", port, err)
	}
	return Endpoint{
		Host:     host,
		Port:     p,
		Database: TestDatabase,
		Username: TestUser,
		Password: TestPassword,
	}, nil
}
