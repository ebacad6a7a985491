package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/astraldata/biograph/cmd/biograph/commands"
	"github.com/astraldata/biograph/logger"
)

var rootCmd = &cobra.Command{
	Use:   "biograph",
	Short: "biograph - NASA space biology knowledge graph",
	Long: `biograph - knowledge graph engine over NASA OSDR space biology metadata.

biograph builds a typed knowledge graph from publication and study file
records, links related publications by similarity, and serves graph queries
over HTTP and WebSocket.

Available commands:
  serve    - Start the graph query server
  build    - Build the graph and print a summary
  paths    - Find paths between two nodes
  clusters - Group publications into research-area clusters
  fetch    - Fetch study file metadata from the OSDR API
  config   - Manage configuration
  version  - Show version information

Examples:
  biograph fetch                        # Pull file metadata from OSDR
  biograph build                        # Build the graph, print a summary
  biograph paths pub_glds-120 pub_glds-121
  biograph serve                        # Start the query server`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON instead of console output")
	rootCmd.PersistentFlags().String("config", "", "Path to a configuration file (overrides discovery)")

	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.BuildCmd)
	rootCmd.AddCommand(commands.PathsCmd)
	rootCmd.AddCommand(commands.ClustersCmd)
	rootCmd.AddCommand(commands.FetchCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
