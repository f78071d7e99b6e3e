package retry

import (
	"time"

	"github.com/vvka-141/rdsload/pkg/rdsload"
)

// LinearBackoff waits initialDelay * (retry number) between attempts, capped
// at maxDelay. maxAttempts is the total number of calls, the first included.
type LinearBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	maxAttempts  int
}

// BackoffOption configures a LinearBackoff.
type BackoffOption func(*LinearBackoff)

// WithInitialDelay sets the wait before the first retry.
func WithInitialDelay(d time.Duration) BackoffOption {
	return func(b *LinearBackoff) {
		b.initialDelay = d
	}
}

// WithMaxDelay caps any single wait.
func WithMaxDelay(d time.Duration) BackoffOption {
	return func(b *LinearBackoff) {
		b.maxDelay = d
	}
}

// NewLinearBackoff creates a linear strategy with maxAttempts total attempts.
func NewLinearBackoff(maxAttempts int, opts ...BackoffOption) *LinearBackoff {
	b := &LinearBackoff{
		initialDelay: rdsload.DefaultRetryBaseDelay,
		maxDelay:     rdsload.DefaultRetryMaxDelay,
		maxAttempts:  maxAttempts,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NextDelay returns the wait before retry attempt+1 (attempt is zero-based).
func (b *LinearBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	steps := time.Duration(attempt) + 1
	if b.maxDelay > 0 && b.initialDelay > 0 && steps > b.maxDelay/b.initialDelay {
		return b.maxDelay
	}
	return b.initialDelay * steps
}

func (b *LinearBackoff) MaxAttempts() int {
	return b.maxAttempts
}

func (b *LinearBackoff) InitialDelay() time.Duration {
	return b.initialDelay
}

func (b *LinearBackoff) MaxDelay() time.Duration {
	return b.maxDelay
}

// NewDefaultStrategy returns the strategy used for secret retrieval and
// connection setup: rdsload.DefaultRetryMaxAttempts attempts in total, waiting
// rdsload.DefaultRetryBaseDelay times the retry number between them.
func NewDefaultStrategy() *LinearBackoff {
	return NewLinearBackoff(rdsload.DefaultRetryMaxAttempts,
		WithInitialDelay(rdsload.DefaultRetryBaseDelay),
		WithMaxDelay(rdsload.DefaultRetryMaxDelay),
	)
}
