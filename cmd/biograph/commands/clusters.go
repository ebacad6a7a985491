package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/astraldata/biograph/errors"
	"github.com/astraldata/biograph/graph"
	"github.com/astraldata/biograph/logger"
)

// ClustersCmd groups publications by research area
var ClustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "Group publications into research-area clusters",
	Long: `Group publications around their research-area nodes and report the
modularity of the grouping. Modularity near zero means the areas do not
partition the graph well; higher values mean denser within-area linking.`,
	RunE: runClusters,
}

func runClusters(cmd *cobra.Command, args []string) error {
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
		pterm.Warning.Println("No cached records found - nothing to cluster")
		return nil
	}

	result := graph.NewClusterEngine(logger.Logger).Result(g)
	if result.ClusterCount == 0 {
		pterm.Warning.Println("No research-area clusters in graph")
		return nil
	}

	pterm.Success.Printf("%d cluster(s), modularity %.3f\n", result.ClusterCount, result.Modularity)
	pterm.Println()

	rows := pterm.TableData{{"Cluster", "Center", "Size"}}
	for _, cluster := range result.Clusters {
		rows = append(rows, []string{cluster.ID, cluster.Center, fmt.Sprintf("%d", cluster.Size)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
