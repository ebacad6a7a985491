package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/astraldata/biograph/graph"
	"github.com/astraldata/biograph/version"
)

// graphResponse is the full-graph payload: the graph itself, its summary,
// and an explicit no_data marker when upstream records are absent.
type graphResponse struct {
	Graph   *graph.Graph  `json:"graph"`
	Summary graph.Summary `json:"summary"`
	NoData  bool          `json:"no_data,omitempty"`
}

func (s *Server) HandleGraph(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	g, noData, err := s.engine.BuildGraph()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	graphBuildsTotal.Inc()
	queryDuration.WithLabelValues("graph").Observe(time.Since(start).Seconds())

	s.writeJSON(w, graphResponse{
		Graph:   g,
		Summary: g.Summarize(),
		NoData:  noData,
	})
}

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query := r.URL.Query().Get("q")
	typeFilter := graph.NodeType(r.URL.Query().Get("type"))
	limit := s.clampLimit(r.URL.Query().Get("limit"))

	// Quoted phrases survive as one term; all terms must match somewhere in
	// the node. Fall back to a whole-string match if quoting is unbalanced.
	terms, err := shellquote.Split(query)
	if err != nil {
		terms = []string{strings.TrimSpace(query)}
	}

	g, _, err := s.engine.BuildGraph()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	graphBuildsTotal.Inc()

	matches := s.searchTerms(g, terms, typeFilter)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	selected := make([]string, len(matches))
	for i, node := range matches {
		selected[i] = node.ID
	}

	queryDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())
	s.writeJSON(w, graph.SearchResult{
		MatchingNodes: matches,
		Subgraph:      graph.ExtractSubgraph(g, selected),
	})
}

// searchTerms intersects per-term search results so multi-term queries
// narrow rather than widen.
func (s *Server) searchTerms(g *graph.Graph, terms []string, typeFilter graph.NodeType) []*graph.Node {
	var matches []*graph.Node
	for i, term := range terms {
		if strings.TrimSpace(term) == "" {
			continue
		}
		termMatches := graph.Search(g, term, typeFilter)
		if i == 0 || matches == nil {
			matches = termMatches
			continue
		}
		keep := make(map[string]struct{}, len(termMatches))
		for _, node := range termMatches {
			keep[node.ID] = struct{}{}
		}
		filtered := matches[:0]
		for _, node := range matches {
			if _, ok := keep[node.ID]; ok {
				filtered = append(filtered, node)
			}
		}
		matches = filtered
	}
	if matches == nil {
		return []*graph.Node{}
	}
	return matches
}

func (s *Server) HandlePaths(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		s.writeErrorMessage(w, http.StatusBadRequest, "from and to are required")
		return
	}
	maxLength := s.clampMaxLength(r.URL.Query().Get("max_length"))

	g, _, err := s.engine.BuildGraph()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	graphBuildsTotal.Inc()

	// Path search is the only superlinear operation; give it a wall-clock
	// budget so one dense query cannot pin the server
	timeout := time.Duration(s.cfg.PathTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	paths := s.finder.Find(ctx, g, from, to, maxLength)

	queryDuration.WithLabelValues("paths").Observe(time.Since(start).Seconds())
	s.writeJSON(w, graph.NewPathResult(paths))
}

func (s *Server) HandleClusters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	g, _, err := s.engine.BuildGraph()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	graphBuildsTotal.Inc()

	result := graph.NewClusterEngine(s.logger).Result(g)

	queryDuration.WithLabelValues("clusters").Observe(time.Since(start).Seconds())
	s.writeJSON(w, result)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"status":  "ok",
		"version": version.Get().Version,
		"commit":  version.Get().Short(),
	})
}

// clampLimit bounds ?limit= to [1, max_search_results], defaulting to 25.
func (s *Server) clampLimit(raw string) int {
	limit := 25
	if raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = 1
	}
	if max := s.cfg.MaxSearchResults; max > 0 && limit > max {
		limit = max
	}
	return limit
}

// clampMaxLength bounds ?max_length= to [1, max_path_length], defaulting
// to 3.
func (s *Server) clampMaxLength(raw string) int {
	maxLength := 3
	if raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			maxLength = parsed
		}
	}
	if maxLength < 1 {
		maxLength = 1
	}
	if max := s.cfg.MaxPathLength; max > 0 && maxLength > max {
		maxLength = max
	}
	return maxLength
}

func (s *Server) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warnw("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Errorw("Request failed", "status", status, "error", err)
	s.writeErrorMessage(w, status, err.Error())
}

func (s *Server) writeErrorMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
