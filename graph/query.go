package graph

import (
	"sort"
	"strings"
)

// SearchResult is the search output exposed to the HTTP layer: the matching
// nodes plus a star subgraph around them for visualization context.
type SearchResult struct {
	MatchingNodes []*Node `json:"matching_nodes"`
	Subgraph      *Graph  `json:"subgraph"`
}

// Search returns nodes whose label or scalar property values contain the
// query, case-insensitively. typeFilter narrows candidates first; pass the
// empty string to search all types. An empty or whitespace query matches
// nothing — it never means "match all". Results come back sorted by node id
// for deterministic output.
func Search(g *Graph, query string, typeFilter NodeType) []*Node {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []*Node{}
	}

	matches := make([]*Node, 0)
	for _, node := range g.Nodes {
		if typeFilter != "" && node.Type != typeFilter {
			continue
		}
		if nodeMatches(node, query) {
			matches = append(matches, node)
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches
}

func nodeMatches(node *Node, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(node.Label), loweredQuery) {
		return true
	}
	if node.Properties == nil {
		return false
	}
	for _, value := range node.Properties.searchValues() {
		if strings.Contains(strings.ToLower(value), loweredQuery) {
			return true
		}
	}
	return false
}

// ExtractSubgraph returns the selected nodes plus every edge touching at
// least one of them. This is a deliberate star extraction, not an induced
// subgraph: edges to out-of-selection nodes are kept so the visualization
// can show the selection's context.
func ExtractSubgraph(g *Graph, selected []string) *Graph {
	sub := New()
	for _, id := range selected {
		if node, ok := g.Nodes[id]; ok {
			sub.AddNode(node)
		}
	}

	for _, edge := range g.Edges {
		_, sourceIn := sub.Nodes[edge.Source]
		_, targetIn := sub.Nodes[edge.Target]
		if sourceIn || targetIn {
			sub.Edges = append(sub.Edges, edge)
		}
	}

	return sub
}
