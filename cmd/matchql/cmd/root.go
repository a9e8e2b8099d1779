// Package cmd provides the matchql CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	cacheURL string
)

var rootCmd = &cobra.Command{
	Use:   "matchql",
	Short: "Compile and test MongoDB find-filter style predicates",
	Long: `matchql validates and evaluates MongoDB find-filter style query
documents against JSON documents, without connecting to a database.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called once from main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cacheURL, "cache-url", "", "redis URL for the validation cache (default: in-memory)")

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newTestCmd())
}

func printVerbose(cmd *cobra.Command, format string, args ...any) {
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), format, args...)
	}
}

func exitWithError(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	os.Exit(1)
}
