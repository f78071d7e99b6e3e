package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vvka-141/rdsload/pkg/rdsload"
)

var rootCmd = &cobra.Command{
	Use:   "rdsload",
	Short: "Append a CSV file to a MySQL or PostgreSQL table",
	Long: `rdsload appends the rows of a CSV file to a table in a managed relational
database. The database password is never configured directly: it is read from
AWS Secrets Manager using the secret named by $RDS_PASSWORD_SECRET_NAME.

Connection settings come from the environment (optionally via a .env file),
then rdsload.yaml, then built-in defaults. Flags override all of them.

Exit Codes:
  0  - Success
  1  - Any failure (configuration, secret, connection, data or write error,
       interrupt, usage error)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
// Load failures are already logged and summarized by the load command, so
// only errors that never reached it (flag parsing, unknown commands) are printed.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}

	err := rootCmd.Execute()
	var stageErr *rdsload.StageError
	if err != nil && !errors.As(err, &stageErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
