package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/rdsload/internal/retry"
	"github.com/vvka-141/rdsload/pkg/rdsload"
)

// PostgresConnector opens a pgx pool with automatic retry on transient failures.
type PostgresConnector struct {
	cfg           *rdsload.LoadConfig
	cred          rdsload.Credential
	settings      rdsload.PoolSettings
	logger        rdsload.Logger
	retryExecutor *retry.Executor
}

// NewPostgresConnector creates a PostgresConnector.
func NewPostgresConnector(
	cfg *rdsload.LoadConfig,
	cred rdsload.Credential,
	settings rdsload.PoolSettings,
	logger rdsload.Logger,
	opts ...ConnectorOption,
) *PostgresConnector {
	return &PostgresConnector{
		cfg:           cfg,
		cred:          cred,
		settings:      settings,
		logger:        logger,
		retryExecutor: newConnectExecutor(cfg, retry.NewPostgreSQLErrorClassifier(), logger, opts),
	}
}

// PoolConfig parses the connection URL and applies the pool settings.
func (c *PostgresConnector) PoolConfig() (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(BuildConnectionURL(c.cfg, c.cred.Password, c.settings))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	poolConfig.MaxConns = int32(c.settings.MaxOpen())
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = c.settings.Recycle
	poolConfig.ConnConfig.ConnectTimeout = c.settings.ConnectTimeout
	if c.settings.PrePing {
		poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
			return conn.Ping(ctx) == nil
		}
	}
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		c.logger.Verbose("server notice", "severity", notice.Severity, "message", notice.Message)
	}
	return poolConfig, nil
}

// Connect opens the pool and runs the health-check query, retrying transient failures.
func (c *PostgresConnector) Connect(ctx context.Context) (rdsload.Handle, error) {
	poolConfig, err := c.PoolConfig()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rdsload.ErrDatabaseConnection, err)
	}

	c.logger.Verbose("connecting",
		"url", RedactURL(BuildConnectionURL(c.cfg, c.cred.Password, c.settings)),
		"max_conns", poolConfig.MaxConns,
	)

	pool, err := retry.Do(ctx, c.retryExecutor, func(ctx context.Context) (*pgxpool.Pool, error) {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, err
		}

		if err := pingPgx(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return pool, nil
	})
	if err != nil {
		return nil, wrapConnectionError(err, c.cfg)
	}

	return NewPgxHandle(pool), nil
}
