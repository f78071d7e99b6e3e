// Package retry provides the single retry mechanism used by the loader:
// bounded attempts, a backoff strategy between them, and a classifier that
// decides which failures are worth another attempt.
//
// Both the secret lookup and the connection health check run through an Executor;
// they differ only in the classifier and strategy they are given.
//
// # Example Usage
//
//	classifier := retry.NewMySQLErrorClassifier()
//	strategy := retry.NewLinearBackoff(3, retry.WithInitialDelay(5*time.Second))
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return connectToDatabase(ctx)
//	})
//
// # Error Classification
//
// The ErrorClassifier interface determines which errors are transient (retryable)
// versus fatal (non-retryable). MySQLErrorClassifier and PostgreSQLErrorClassifier
// recognize driver error codes and network failures; RetryAll treats every
// failure except cancellation as transient.
//
// # Backoff Strategies
//
// LinearBackoff waits n * initialDelay before the n-th retry and caps single
// waits at maxDelay. There is no jitter, so the schedule is predictable.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to create
// independent configurations per goroutine.
package retry
