package graph

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// DefaultMaxExploredPaths caps how many complete paths one query may
// enumerate. Backtracking search is exponential in the worst case on dense
// graphs, so the cap is the safety net the enclosing service relies on.
const DefaultMaxExploredPaths = 1000

// PathFinder enumerates paths between two nodes with depth-bounded
// backtracking search. All edges are traversed as undirected regardless of
// their directional semantics.
type PathFinder struct {
	maxExplored int
	logger      *zap.SugaredLogger
}

// NewPathFinder creates a path finder. maxExplored <= 0 selects
// DefaultMaxExploredPaths.
func NewPathFinder(maxExplored int, logger *zap.SugaredLogger) *PathFinder {
	if maxExplored <= 0 {
		maxExplored = DefaultMaxExploredPaths
	}
	return &PathFinder{
		maxExplored: maxExplored,
		logger:      logger.Named("graph.paths"),
	}
}

// Find returns all complete paths from fromID to toID with at most maxLength
// edges, sorted ascending by length. fromID == toID yields the trivial
// one-node path. An id absent from the graph yields an empty result, not an
// error. Search stops early when the path cap trips or the context deadline
// passes, returning whatever was found.
func (p *PathFinder) Find(ctx context.Context, g *Graph, fromID, toID string, maxLength int) [][]string {
	if !g.HasNode(fromID) || !g.HasNode(toID) {
		return [][]string{}
	}
	if fromID == toID {
		return [][]string{{fromID}}
	}
	if maxLength <= 0 {
		return [][]string{}
	}

	adjacency := buildAdjacency(g)

	search := &pathSearch{
		ctx:         ctx,
		adjacency:   adjacency,
		target:      toID,
		maxLength:   maxLength,
		maxExplored: p.maxExplored,
		visited:     map[string]bool{fromID: true},
		found:       [][]string{},
	}
	search.walk([]string{fromID})

	if search.capped {
		p.logger.Debugw("Path search capped",
			"from", fromID,
			"to", toID,
			"found", len(search.found),
		)
	}

	sort.SliceStable(search.found, func(i, j int) bool {
		return len(search.found[i]) < len(search.found[j])
	})
	return search.found
}

// buildAdjacency flattens the edge list into an undirected adjacency map.
func buildAdjacency(g *Graph) map[string][]string {
	adjacency := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		adjacency[e.Target] = append(adjacency[e.Target], e.Source)
	}
	return adjacency
}

type pathSearch struct {
	ctx         context.Context
	adjacency   map[string][]string
	target      string
	maxLength   int
	maxExplored int
	visited     map[string]bool
	found       [][]string
	capped      bool
}

// walk extends the current path one hop at a time, backtracking after each
// branch. The visited set is per-branch: a node may recur across different
// explored branches, never twice within one path.
func (s *pathSearch) walk(path []string) {
	if s.capped {
		return
	}
	if len(s.found) >= s.maxExplored || s.ctx.Err() != nil {
		s.capped = true
		return
	}

	current := path[len(path)-1]
	for _, next := range s.adjacency[current] {
		if s.visited[next] {
			continue
		}

		if next == s.target {
			complete := make([]string, len(path)+1)
			copy(complete, path)
			complete[len(path)] = next
			s.found = append(s.found, complete)
			if len(s.found) >= s.maxExplored {
				s.capped = true
				return
			}
			continue
		}

		if len(path) > s.maxLength-1 {
			// Adding next plus the eventual target hop would exceed maxLength
			continue
		}

		s.visited[next] = true
		s.walk(append(path, next))
		delete(s.visited, next)

		if s.capped {
			return
		}
	}
}

// PathResult is the path query output exposed to the HTTP layer.
type PathResult struct {
	Paths              [][]string `json:"paths"`
	PathCount          int        `json:"path_count"`
	ShortestPathLength int        `json:"shortest_path_length"`
}

// NewPathResult assembles the path query response. ShortestPathLength counts
// edges on the shortest returned path; 0 when no path exists.
func NewPathResult(paths [][]string) PathResult {
	result := PathResult{
		Paths:     paths,
		PathCount: len(paths),
	}
	if len(paths) > 0 {
		result.ShortestPathLength = len(paths[0]) - 1
	}
	return result
}
