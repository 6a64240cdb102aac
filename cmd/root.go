package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orchestkit/orchestkit/internal/ui"
)

var (
	// Version is set at build time
	Version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "orchestkit",
	Short: "OrchestKit toolkit utilities",
	Long: `Utilities supporting the OrchestKit agent and skills toolkit.

  migrate   rewrite legacy agent frontmatter in place
  docs      generate MDX reference pages for skills, agents, and hooks
  memory    add and export memories via the mem0 hosted API`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("orchestkit %s\n", Version)
	},
}

// exitWithError prints an error and exits
func exitWithError(msg string) {
	fmt.Fprintln(os.Stderr, ui.Error.Render("Error: "+msg))
	os.Exit(1)
}

// envOr returns val, or the named environment variable when val is empty.
func envOr(val, envKey string) string {
	if val != "" {
		return val
	}
	return os.Getenv(envKey)
}
