package graph

import (
	"go.uber.org/zap"
)

// Cluster is one coarse community: a research-area node plus every
// publication linked to it via belongs_to.
type Cluster struct {
	ID     string   `json:"id"`
	Center string   `json:"center"`
	Nodes  []string `json:"nodes"`
	Size   int      `json:"size"`
}

// ClusterResult is the cluster query output exposed to the HTTP layer.
type ClusterResult struct {
	Clusters     []Cluster `json:"clusters"`
	ClusterCount int       `json:"cluster_count"`
	Modularity   float64   `json:"modularity"`
}

// ClusterEngine partitions a graph into research-area communities and
// scores the partition. Clustering is deterministic: clusters come out
// sorted by area node id.
type ClusterEngine struct {
	logger *zap.SugaredLogger
}

// NewClusterEngine creates a cluster engine.
func NewClusterEngine(logger *zap.SugaredLogger) *ClusterEngine {
	return &ClusterEngine{logger: logger.Named("graph.cluster")}
}

// Cluster produces one cluster per research_area node. Membership is the
// area node itself plus the publications on its belongs_to edges.
func (e *ClusterEngine) Cluster(g *Graph) []Cluster {
	members := make(map[string][]string)
	for _, areaID := range g.NodesOfType(NodeResearchArea) {
		members[areaID] = []string{areaID}
	}

	for _, edge := range g.Edges {
		if edge.Type != EdgeBelongsTo {
			continue
		}
		if _, ok := members[edge.Target]; ok {
			members[edge.Target] = append(members[edge.Target], edge.Source)
		}
	}

	clusters := make([]Cluster, 0, len(members))
	for _, areaID := range g.NodesOfType(NodeResearchArea) {
		nodes := members[areaID]
		clusters = append(clusters, Cluster{
			ID:     "cluster_" + areaID,
			Center: areaID,
			Nodes:  nodes,
			Size:   len(nodes),
		})
	}

	e.logger.Debugw("Graph clustered", "clusters", len(clusters))
	return clusters
}

// Modularity scores a clustering with a cluster-local approximation of
// Newman modularity: per cluster, edges with both endpoints inside minus the
// random-graph expectation size*(size-1)/(2*totalEdges), normalized by
// totalEdges and summed. Downstream consumers compare these values
// relatively, so the approximation is kept as-is rather than the textbook
// global formula. A graph with no edges scores exactly 0.
func (e *ClusterEngine) Modularity(clusters []Cluster, g *Graph) float64 {
	totalEdges := float64(len(g.Edges))
	if totalEdges == 0 {
		return 0
	}

	modularity := 0.0
	for _, cluster := range clusters {
		inside := make(map[string]struct{}, len(cluster.Nodes))
		for _, id := range cluster.Nodes {
			inside[id] = struct{}{}
		}

		internalEdges := 0
		for _, edge := range g.Edges {
			_, sourceIn := inside[edge.Source]
			_, targetIn := inside[edge.Target]
			if sourceIn && targetIn {
				internalEdges++
			}
		}

		size := float64(cluster.Size)
		expectedEdges := size * (size - 1) / (2 * totalEdges)
		modularity += (float64(internalEdges) - expectedEdges) / totalEdges
	}

	return round3(modularity)
}

// Result runs clustering and scoring in one shot.
func (e *ClusterEngine) Result(g *Graph) ClusterResult {
	clusters := e.Cluster(g)
	return ClusterResult{
		Clusters:     clusters,
		ClusterCount: len(clusters),
		Modularity:   e.Modularity(clusters, g),
	}
}
