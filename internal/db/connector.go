package db

import (
	"fmt"
	"time"

	"github.com/vvka-141/rdsload/internal/retry"
	"github.com/vvka-141/rdsload/pkg/rdsload"
)

// ConnectorOption configures a connector.
type ConnectorOption func(*connectorOptions)

type connectorOptions struct {
	strategy rdsload.BackoffStrategy
}

// WithStrategy replaces the default linear backoff.
func WithStrategy(strategy rdsload.BackoffStrategy) ConnectorOption {
	return func(o *connectorOptions) {
		o.strategy = strategy
	}
}

// NewConnector is a factory function that creates the Connector for cfg.Driver.
func NewConnector(
	cfg *rdsload.LoadConfig,
	cred rdsload.Credential,
	settings rdsload.PoolSettings,
	logger rdsload.Logger,
	opts ...ConnectorOption,
) (rdsload.Connector, error) {
	switch cfg.Driver {
	case rdsload.DriverMySQL, "":
		return NewMySQLConnector(cfg, cred, settings, logger, opts...), nil
	case rdsload.DriverPostgres:
		return NewPostgresConnector(cfg, cred, settings, logger, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q: %w", cfg.Driver, rdsload.ErrConfiguration)
	}
}

// newConnectExecutor builds the retry executor shared by all connectors.
func newConnectExecutor(
	cfg *rdsload.LoadConfig,
	classifier rdsload.ErrorClassifier,
	logger rdsload.Logger,
	opts []ConnectorOption,
) *retry.Executor {
	o := connectorOptions{strategy: retry.NewDefaultStrategy()}
	for _, opt := range opts {
		opt(&o)
	}

	maxAttempts := o.strategy.MaxAttempts()
	return retry.NewExecutor(classifier, o.strategy).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Warn("database connection failed, retrying",
				"address", cfg.Address(),
				"attempt", attempt,
				"max_attempts", maxAttempts,
				"delay", delay,
				"error", err,
			)
		})
}
