package commands

import (
	"context"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/astraldata/biograph/errors"
	"github.com/astraldata/biograph/graph"
	"github.com/astraldata/biograph/logger"
)

// PathsCmd finds paths between two graph nodes
var PathsCmd = &cobra.Command{
	Use:   "paths <from> <to>",
	Short: "Find paths between two nodes",
	Long: `Enumerate paths between two node ids, shortest first. Node ids are
deterministic (e.g. pub_glds-120, org_arabidopsis_thaliana); use
'biograph build' to inspect the graph and discover ids.`,
	Args: cobra.ExactArgs(2),
	RunE: runPaths,
}

var pathsMaxLength int

func init() {
	PathsCmd.Flags().IntVar(&pathsMaxLength, "max-length", 3, "Maximum path length in edges")
}

func runPaths(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	maxLength := pathsMaxLength
	if maxLength < 1 {
		maxLength = 1
	}
	if cfg.Server.MaxPathLength > 0 && maxLength > cfg.Server.MaxPathLength {
		maxLength = cfg.Server.MaxPathLength
	}

	engine, _, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	g, _, err := engine.BuildGraph()
	if err != nil {
		return errors.Wrap(err, "failed to build graph")
	}

	from, to := args[0], args[1]
	for _, id := range []string{from, to} {
		if !g.HasNode(id) {
			return errors.Newf("node %q not found in graph", id)
		}
	}

	timeout := time.Duration(cfg.Server.PathTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	finder := graph.NewPathFinder(cfg.Graph.Paths.MaxExplored, logger.Logger)
	result := graph.NewPathResult(finder.Find(ctx, g, from, to, maxLength))

	if result.PathCount == 0 {
		pterm.Warning.Printf("No paths of length <= %d between %s and %s\n", maxLength, from, to)
		return nil
	}

	pterm.Success.Printf("Found %d path(s), shortest is %d edge(s)\n", result.PathCount, result.ShortestPathLength)
	for _, path := range result.Paths {
		pterm.Printf("  %s\n", strings.Join(path, " -> "))
	}
	return nil
}
