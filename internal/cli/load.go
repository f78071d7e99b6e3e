package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vvka-141/rdsload/internal/config"
	"github.com/vvka-141/rdsload/internal/db"
	"github.com/vvka-141/rdsload/internal/logging"
	"github.com/vvka-141/rdsload/internal/secrets"
	"github.com/vvka-141/rdsload/internal/services"
	"github.com/vvka-141/rdsload/internal/source"
	"github.com/vvka-141/rdsload/internal/tui"
	"github.com/vvka-141/rdsload/pkg/rdsload"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Append a CSV file to the target table",
	Long: `Load reads the CSV file, resolves the database password from AWS Secrets
Manager, connects to the database and appends every row to the target table in
batches. Each batch commits on its own; a failing batch leaves the earlier
ones in place.

Environment:
  DB_HOST                    Database host (required)
  DB_PORT                    Database port (default 3306)
  DB_NAME                    Database name (required)
  DB_USERNAME                Database user (required)
  RDS_PASSWORD_SECRET_NAME   Secret holding the password (required)
  RDS_SSL_CA_PATH            CA bundle for TLS verification (optional)
  AWS_REGION                 Secrets Manager region (default us-east-1)
  DB_DRIVER                  mysql or postgres (default mysql)

Examples:
  # Load the default file into the default table
  rdsload load

  # Load a different file in smaller batches
  rdsload load --file leads.csv --table leads --chunk-size 500

  # Create the target table first when it does not exist
  rdsload load --create-table -v`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

type loadFlagValues struct {
	file, table, region, driver string
	configPath, envFile         string
	chunkSize                   int
	timeout                     time.Duration
	createTable                 bool
}

var loadFlags loadFlagValues

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadFlags.file, "file", rdsload.DefaultCSVPath,
		"CSV file to load; the first row names the columns")
	loadCmd.Flags().StringVar(&loadFlags.table, "table", rdsload.DefaultTable,
		"Target table, optionally schema-qualified")
	loadCmd.Flags().IntVar(&loadFlags.chunkSize, "chunk-size", rdsload.DefaultChunkSize,
		"Rows per insert batch")
	loadCmd.Flags().StringVar(&loadFlags.region, "region", "",
		"Secrets Manager region\n"+
			"Precedence: --region > $AWS_REGION > rdsload.yaml > us-east-1")
	loadCmd.Flags().StringVar(&loadFlags.driver, "driver", "",
		"Database driver: mysql|postgres\n"+
			"Precedence: --driver > $DB_DRIVER > rdsload.yaml > mysql")
	loadCmd.Flags().StringVar(&loadFlags.configPath, "config", "",
		"Config file (default: ./"+config.ConfigFileName+" when present)")
	loadCmd.Flags().StringVar(&loadFlags.envFile, "env-file", config.DefaultEnvFile,
		"Env file exported before reading the environment\n"+
			"Existing variables win. Missing is only an error when set explicitly")
	loadCmd.Flags().DurationVar(&loadFlags.timeout, "timeout", rdsload.DefaultRunTimeout,
		"Upper bound for the whole run, retry waits included\n"+
			"Examples: 90s, 10m, 1h")
	loadCmd.Flags().BoolVar(&loadFlags.createTable, "create-table", false,
		"Create the target table with one TEXT column per CSV header when missing")
}

// newLoader wires the production pipeline. Tests replace it.
var newLoader = func(logger rdsload.Logger) rdsload.Loader {
	credentials := secrets.NewResolver(secrets.AWSStoreFactory, logger)
	connectors := func(cfg *rdsload.LoadConfig, cred rdsload.Credential, settings rdsload.PoolSettings, logger rdsload.Logger) (rdsload.Connector, error) {
		return db.NewConnector(cfg, cred, settings, logger)
	}
	return services.NewLoadService(credentials, connectors, source.NewReader(nil), logger)
}

// buildOverrides keeps only the flags given on the command line so that
// unset flags do not mask the environment or the config file.
func buildOverrides(cmd *cobra.Command, verbose bool) config.Overrides {
	flags := cmd.Flags()
	o := config.Overrides{
		Driver:      loadFlags.driver,
		Region:      loadFlags.region,
		Verbose:     verbose,
		CreateTable: loadFlags.createTable,
	}
	if flags.Changed("file") {
		o.CSVPath = loadFlags.file
	}
	if flags.Changed("table") {
		o.Table = loadFlags.table
	}
	if flags.Changed("chunk-size") {
		chunkSize := loadFlags.chunkSize
		o.ChunkSize = &chunkSize
	}
	if flags.Changed("timeout") {
		o.Timeout = loadFlags.timeout
	}
	return o
}

// projectConfigSource reads the env file and config file lazily, so their
// failures surface from the loader as configuration failures.
type projectConfigSource struct {
	envFile         string
	envFileRequired bool
	configPath      string
	overrides       config.Overrides
	getenv          func(string) string
	logger          rdsload.Logger

	resolved *rdsload.LoadConfig
}

func (s *projectConfigSource) Resolve() (*rdsload.LoadConfig, error) {
	if err := config.LoadEnvFile(s.envFile, s.envFileRequired); err != nil {
		return nil, fmt.Errorf("%w: %w", rdsload.ErrConfiguration, err)
	}

	file, err := s.loadFile()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rdsload.ErrConfiguration, err)
	}

	cfg, err := config.NewResolver(s.getenv, file, s.overrides, s.logger).Resolve()
	if err != nil {
		return nil, err
	}
	s.resolved = cfg
	return cfg, nil
}

func (s *projectConfigSource) loadFile() (*config.FileConfig, error) {
	if s.configPath != "" {
		return config.LoadFile(s.configPath)
	}

	file, err := config.Load(".")
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, nil
	}
	return file, err
}

func runLoad(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)
	defer logger.Sync()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := &projectConfigSource{
		envFile:         loadFlags.envFile,
		envFileRequired: cmd.Flags().Changed("env-file"),
		configPath:      loadFlags.configPath,
		overrides:       buildOverrides(cmd, verbose),
		getenv:          os.Getenv,
		logger:          logger,
	}

	result, err := newLoader(logger).Load(ctx, src)

	summary := tui.Summary{Result: result, Err: err}
	if src.resolved != nil {
		summary.File = src.resolved.CSVPath
		summary.Table = src.resolved.Table
	}
	fmt.Fprint(cmd.ErrOrStderr(), summary.Render(tui.DetectMode()))

	return err
}
