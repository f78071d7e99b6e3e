package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvka-141/rdsload/internal/logging"
	"github.com/vvka-141/rdsload/internal/scaffold"
	"github.com/vvka-141/rdsload/pkg/rdsload"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Write a starter rdsload.yaml and .env.example",
	Long: `Init writes rdsload.yaml and .env.example into the given directory
(default: the current directory), prefilled with the loader's defaults.
Existing files are left untouched unless --force is given.

Examples:
  rdsload init
  rdsload init ./etl --driver postgres`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var (
	initDriver string
	initForce  bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initDriver, "driver", "mysql", "Database driver: mysql|postgres")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	driver, err := rdsload.ParseDriver(initDriver)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	defer logger.Sync()

	written, err := scaffold.NewScaffolder(logger).Init(dir, scaffold.DefaultValues(driver), initForce)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	}
	return nil
}
