package secrets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vvka-141/rdsload/internal/retry"
	"github.com/vvka-141/rdsload/pkg/rdsload"
)

// Resolver implements rdsload.CredentialResolver on top of a Store.
type Resolver struct {
	factory  StoreFactory
	strategy rdsload.BackoffStrategy
	logger   rdsload.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStrategy replaces the default linear backoff.
func WithStrategy(strategy rdsload.BackoffStrategy) Option {
	return func(r *Resolver) {
		r.strategy = strategy
	}
}

// NewResolver creates a Resolver. Panics if factory or logger is nil.
func NewResolver(factory StoreFactory, logger rdsload.Logger, opts ...Option) *Resolver {
	if factory == nil {
		panic("factory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	r := &Resolver{
		factory:  factory,
		strategy: retry.NewDefaultStrategy(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches secretRef from the store in region and extracts the password.
// Every store failure is retried; a payload without a usable password is not.
func (r *Resolver) Resolve(ctx context.Context, secretRef, region string) (rdsload.Credential, error) {
	if secretRef == "" {
		return rdsload.Credential{}, fmt.Errorf("secret reference is empty: %w", rdsload.ErrSecretResolution)
	}
	if region == "" {
		region = rdsload.DefaultRegion
	}

	executor := retry.NewExecutor(retry.RetryAll, r.strategy).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			r.logger.Warn("secret retrieval failed, retrying",
				"secret", secretRef,
				"attempt", attempt,
				"max_attempts", r.strategy.MaxAttempts(),
				"delay", delay,
				"error", err,
			)
		})

	start := time.Now()
	value, err := retry.Do(ctx, executor, func(ctx context.Context) (Value, error) {
		store, err := r.factory(ctx, region)
		if err != nil {
			return Value{}, err
		}
		return store.GetSecretValue(ctx, secretRef)
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return rdsload.Credential{}, fmt.Errorf("secret retrieval interrupted: %w: %w", rdsload.ErrSecretResolution, err)
		}
		return rdsload.Credential{}, fmt.Errorf("failed to retrieve secret %s: %w: %w", secretRef, rdsload.ErrSecretResolution, err)
	}

	password, err := ExtractPassword(value)
	if err != nil {
		return rdsload.Credential{}, fmt.Errorf("secret %s: %w", secretRef, err)
	}

	cred := rdsload.Credential{Password: password}
	if err := cred.Validate(); err != nil {
		return rdsload.Credential{}, err
	}

	r.logger.Verbose("secret resolved", "secret", secretRef, "region", region, "elapsed", time.Since(start))
	return cred, nil
}

var _ rdsload.CredentialResolver = (*Resolver)(nil)
