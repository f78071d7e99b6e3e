package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/vvka-141/rdsload/internal/retry"
	"github.com/vvka-141/rdsload/pkg/rdsload"
)

// MySQLConnector opens a database/sql pool through go-sql-driver/mysql with
// automatic retry on transient failures.
type MySQLConnector struct {
	cfg           *rdsload.LoadConfig
	cred          rdsload.Credential
	settings      rdsload.PoolSettings
	logger        rdsload.Logger
	retryExecutor *retry.Executor
	open          func(*mysql.Config) (*sql.DB, error)
}

// NewMySQLConnector creates a MySQLConnector.
func NewMySQLConnector(
	cfg *rdsload.LoadConfig,
	cred rdsload.Credential,
	settings rdsload.PoolSettings,
	logger rdsload.Logger,
	opts ...ConnectorOption,
) *MySQLConnector {
	return &MySQLConnector{
		cfg:           cfg,
		cred:          cred,
		settings:      settings,
		logger:        logger,
		retryExecutor: newConnectExecutor(cfg, retry.NewMySQLErrorClassifier(), logger, opts),
		open:          openMySQL,
	}
}

func openMySQL(mc *mysql.Config) (*sql.DB, error) {
	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, err
	}
	return sql.OpenDB(connector), nil
}

// MySQLConfig converts the load configuration into a driver configuration.
func MySQLConfig(cfg *rdsload.LoadConfig, password string, settings rdsload.PoolSettings) (*mysql.Config, error) {
	mc := mysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = password
	mc.Net = "tcp"
	mc.Addr = cfg.Address()
	mc.DBName = cfg.Database
	mc.Timeout = settings.ConnectTimeout
	mc.CheckConnLiveness = settings.PrePing
	mc.InterpolateParams = false

	if cfg.SSLCAPath != "" {
		tlsCfg, err := tlsConfigFor(cfg.Host, cfg.SSLCAPath)
		if err != nil {
			return nil, err
		}
		mc.TLS = tlsCfg
	}
	return mc, nil
}

func configureSQLPool(db *sql.DB, settings rdsload.PoolSettings) {
	db.SetMaxIdleConns(settings.PoolSize)
	db.SetMaxOpenConns(settings.MaxOpen())
	db.SetConnMaxLifetime(settings.Recycle)
}

// Connect opens the pool and runs the health-check query, retrying transient failures.
func (c *MySQLConnector) Connect(ctx context.Context) (rdsload.Handle, error) {
	mc, err := MySQLConfig(c.cfg, c.cred.Password, c.settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rdsload.ErrDatabaseConnection, err)
	}

	c.logger.Verbose("connecting",
		"url", RedactURL(BuildConnectionURL(c.cfg, c.cred.Password, c.settings)),
		"pool_size", c.settings.PoolSize,
		"max_open", c.settings.MaxOpen(),
	)

	db, err := retry.Do(ctx, c.retryExecutor, func(ctx context.Context) (*sql.DB, error) {
		db, err := c.open(mc)
		if err != nil {
			return nil, err
		}
		configureSQLPool(db, c.settings)

		if err := pingSQL(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	})
	if err != nil {
		return nil, wrapConnectionError(err, c.cfg)
	}

	return NewSQLHandle(db, MySQLDialect), nil
}
