package rdsload

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure class. Callers distinguish them with
// errors.Is.
//
// Example usage:
//
//	result, err := loader.Load(ctx, source)
//	if errors.Is(err, rdsload.ErrSecretResolution) {
//	    // the secret store was unreachable or the secret had no password
//	}
var (
	// ErrConfiguration indicates missing or invalid configuration input. Not retried.
	ErrConfiguration = errors.New("configuration error")

	// ErrSecretResolution indicates the secret store failed after all retries,
	// or the secret did not contain a usable password.
	ErrSecretResolution = errors.New("secret resolution failed")

	// ErrDatabaseConnection indicates pool construction or the health-check query failed
	// after all retries.
	ErrDatabaseConnection = errors.New("database connection failed")

	// ErrDataFormat indicates the CSV input is empty or cannot be parsed. Not retried.
	ErrDataFormat = errors.New("invalid data format")

	// ErrWrite indicates a driver-level failure while inserting a batch. Not retried;
	// batches committed before the failure stay committed.
	ErrWrite = errors.New("write failed")
)

// StageError records which pipeline stage failed. It unwraps to the
// underlying error so errors.Is works against the sentinels above.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage.Label(), e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf returns the failing stage recorded in err, or StageFailed when err
// carries no StageError.
func StageOf(err error) Stage {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage
	}
	return StageFailed
}

// ExitCodeForError returns ExitSuccess for nil and ExitFailure for everything else.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
