package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vvka-141/rdsload/pkg/rdsload"
)

// ConnectorFactory builds a Connector for a resolved configuration and credential.
type ConnectorFactory func(cfg *rdsload.LoadConfig, cred rdsload.Credential, settings rdsload.PoolSettings, logger rdsload.Logger) (rdsload.Connector, error)

// LoadService implements rdsload.Loader.
// Thread-Safety: Load keeps all run state on the stack, so one instance may
// serve concurrent runs as long as its collaborators allow it.
type LoadService struct {
	credentials      rdsload.CredentialResolver
	connectorFactory ConnectorFactory
	reader           rdsload.TableReader
	logger           rdsload.Logger
	settings         rdsload.PoolSettings
	newRunID         func() string
	now              func() time.Time
}

// NewLoadService creates a LoadService with all dependencies injected.
// Panics on nil dependencies.
func NewLoadService(
	credentials rdsload.CredentialResolver,
	connectorFactory ConnectorFactory,
	reader rdsload.TableReader,
	logger rdsload.Logger,
) *LoadService {
	if credentials == nil {
		panic("credentials cannot be nil")
	}
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if reader == nil {
		panic("reader cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &LoadService{
		credentials:      credentials,
		connectorFactory: connectorFactory,
		reader:           reader,
		logger:           logger,
		settings:         rdsload.DefaultPoolSettings(),
		newRunID:         uuid.NewString,
		now:              time.Now,
	}
}

// loadRun tracks one pass through the pipeline.
type loadRun struct {
	logger  rdsload.Logger
	stage   rdsload.Stage
	started time.Time
	result  *rdsload.Result
}

func (r *loadRun) advance(next rdsload.Stage) {
	if !r.stage.CanAdvanceTo(next) {
		panic(fmt.Sprintf("invalid stage transition %s -> %s", r.stage, next))
	}
	r.stage = next
	r.result.Stage = next
	r.logger.Verbose("stage reached", "stage", next.String())
}

// fail records err against the current stage, logs it once and returns the
// partial result with a *rdsload.StageError.
func (r *loadRun) fail(err error, sentinel error, now time.Time) (*rdsload.Result, error) {
	if !errors.Is(err, sentinel) {
		err = fmt.Errorf("%w: %w", sentinel, err)
	}
	stageErr := &rdsload.StageError{Stage: r.stage, Err: err}

	r.logger.Error("load failed",
		"stage", r.stage.Label(),
		"error", err,
		"rows_written", r.result.RowsWritten,
	)

	r.result.Stage = rdsload.StageFailed
	r.result.Duration = now.Sub(r.started)
	return r.result, stageErr
}

// Load resolves configuration and credentials, connects, reads the CSV and
// appends it in batches. Each batch commits on its own: when a batch fails,
// the batches before it stay in the table and the returned Result counts them.
// On failure the error is a *rdsload.StageError naming the stage reached.
func (s *LoadService) Load(ctx context.Context, source rdsload.ConfigSource) (*rdsload.Result, error) {
	runID := s.newRunID()
	run := &loadRun{
		logger:  s.logger.With("run_id", runID),
		stage:   rdsload.StageStart,
		started: s.now(),
		result:  &rdsload.Result{RunID: runID, Stage: rdsload.StageStart},
	}

	cfg, err := source.Resolve()
	if err != nil {
		return run.fail(err, rdsload.ErrConfiguration, s.now())
	}
	run.advance(rdsload.StageConfigResolved)

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	run.logger.Info("resolving database credential", "secret_ref", cfg.SecretRef, "region", cfg.Region)
	cred, err := s.credentials.Resolve(ctx, cfg.SecretRef, cfg.Region)
	if err != nil {
		return run.fail(err, rdsload.ErrSecretResolution, s.now())
	}
	run.advance(rdsload.StageCredentialResolved)

	run.logger.Info("connecting to database", "driver", cfg.Driver, "address", cfg.Address(), "database", cfg.Database)
	handle, err := s.connect(ctx, cfg, cred, run.logger)
	if err != nil {
		return run.fail(err, rdsload.ErrDatabaseConnection, s.now())
	}
	defer func() {
		if err := handle.Close(); err != nil {
			run.logger.Warn("failed to close connection pool", "error", err)
		}
	}()
	run.advance(rdsload.StageConnected)

	table, err := s.reader.ReadTable(cfg.CSVPath)
	if err != nil {
		return run.fail(err, rdsload.ErrDataFormat, s.now())
	}
	run.result.RowsRead = table.Len()
	run.logger.Info("data read",
		"file", cfg.CSVPath,
		"rows", table.Len(),
		"columns", len(table.Columns),
		"sha256", table.Checksum,
	)
	run.advance(rdsload.StageDataRead)

	if err := s.write(ctx, cfg, handle, table, run); err != nil {
		return run.fail(err, rdsload.ErrWrite, s.now())
	}
	run.advance(rdsload.StageWritten)

	run.result.Duration = s.now().Sub(run.started)
	run.advance(rdsload.StageDone)
	run.logger.Info("load complete",
		"table", cfg.Table,
		"rows_written", run.result.RowsWritten,
		"batches", run.result.Batches,
		"duration", run.result.Duration,
	)
	return run.result, nil
}

func (s *LoadService) connect(ctx context.Context, cfg *rdsload.LoadConfig, cred rdsload.Credential, logger rdsload.Logger) (rdsload.Handle, error) {
	connector, err := s.connectorFactory(cfg, cred, s.settings, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}
	return connector.Connect(ctx)
}

func (s *LoadService) write(ctx context.Context, cfg *rdsload.LoadConfig, handle rdsload.Handle, table *rdsload.Table, run *loadRun) error {
	if cfg.CreateTable {
		ensurer, ok := handle.(rdsload.TableEnsurer)
		if !ok {
			return fmt.Errorf("connection for driver %s cannot create tables", cfg.Driver)
		}
		created, err := ensurer.EnsureTable(ctx, cfg.Table, table.Columns)
		if err != nil {
			return fmt.Errorf("failed to ensure table %s: %w", cfg.Table, err)
		}
		if created {
			run.logger.Info("created target table", "table", cfg.Table, "columns", len(table.Columns))
		}
	}

	batches := table.Batches(cfg.ChunkSize)
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interrupted before batch %d of %d: %w", i+1, len(batches), err)
		}

		n, err := handle.WriteBatch(ctx, cfg.Table, table.Columns, batch)
		if err != nil {
			return fmt.Errorf("batch %d of %d: %w", i+1, len(batches), err)
		}

		run.result.RowsWritten += n
		run.result.Batches++
		run.logger.Info("batch written",
			"batch", i+1,
			"of", len(batches),
			"rows", n,
			"total", run.result.RowsWritten,
		)
	}
	return nil
}

var _ rdsload.Loader = (*LoadService)(nil)
