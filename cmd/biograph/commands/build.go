package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/astraldata/biograph/errors"
)

// BuildCmd builds the graph from cached records and prints a summary
var BuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the knowledge graph and print a summary",
	Long: `Build the knowledge graph from the cached OSDR records and print
node and edge counts by type. With --output, the full graph is also written
as JSON for downstream tooling.`,
	RunE: runBuild,
}

var buildOutput string

func init() {
	BuildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Write the full graph as JSON to this file")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	engine, _, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	g, noData, err := engine.BuildGraph()
	if err != nil {
		return errors.Wrap(err, "failed to build graph")
	}

	if noData {
		pterm.Warning.Println("No cached records found - graph contains only the root node")
		pterm.Info.Println("Run 'biograph fetch' to pull file metadata from OSDR")
	}

	summary := g.Summarize()
	pterm.Success.Printf("Graph built: %d nodes, %d edges\n", summary.TotalNodes, summary.TotalEdges)
	pterm.Println()

	nodeRows := pterm.TableData{{"Node type", "Count"}}
	for _, nodeType := range sortedKeys(summary.NodeTypeCounts) {
		nodeRows = append(nodeRows, []string{string(nodeType), fmt.Sprintf("%d", summary.NodeTypeCounts[nodeType])})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(nodeRows).Render(); err != nil {
		return err
	}
	pterm.Println()

	edgeRows := pterm.TableData{{"Edge type", "Count"}}
	for _, edgeType := range sortedKeys(summary.EdgeTypeCounts) {
		edgeRows = append(edgeRows, []string{string(edgeType), fmt.Sprintf("%d", summary.EdgeTypeCounts[edgeType])})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(edgeRows).Render(); err != nil {
		return err
	}

	if buildOutput != "" {
		data, err := json.MarshalIndent(g, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to encode graph")
		}
		if err := os.WriteFile(buildOutput, data, 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", buildOutput)
		}
		pterm.Info.Printf("Graph written to %s\n", buildOutput)
	}

	return nil
}

func sortedKeys[K ~string](counts map[K]int) []K {
	keys := make([]K, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
