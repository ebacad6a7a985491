package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/astraldata/biograph/config"
	"github.com/astraldata/biograph/graph"
	"github.com/astraldata/biograph/osdr"
)

func testServer(t *testing.T, publications, files string) *Server {
	t.Helper()
	dir := t.TempDir()
	if publications != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "publications.json"), []byte(publications), 0o644))
	}
	if files != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "files.json"), []byte(files), 0o644))
	}

	logger := zap.NewNop().Sugar()
	store := osdr.NewStore(dir, logger)
	engine := NewEngine(store, osdr.DefaultVocabulary(), graph.DefaultSimilarityWeights(), logger)

	cfg := config.ServerConfig{
		Port:               0,
		AllowedOrigins:     []string{"*"},
		MaxSearchResults:   10,
		MaxPathLength:      6,
		PathTimeoutSeconds: 5,
	}
	return New(cfg, config.PathsConfig{MaxExplored: graph.DefaultMaxExploredPaths}, engine, store, logger)
}

const testPublications = `[
	{
		"osdr_id": "GLDS-120",
		"title": "Arabidopsis root growth in microgravity",
		"research_area": "Plant Biology",
		"organisms": ["Arabidopsis thaliana"],
		"authors": ["Chen, L."],
		"keywords": ["microgravity", "root growth"]
	},
	{
		"osdr_id": "GLDS-121",
		"title": "Arabidopsis gene expression in spaceflight",
		"research_area": "Plant Biology",
		"organisms": ["Arabidopsis thaliana"],
		"authors": ["Chen, L."],
		"keywords": ["microgravity", "gene expression"]
	}
]`

const testFiles = `[
	{"id": "F-1", "name": "rna_seq.csv", "type": "csv", "study_id": "OSD-37", "species": "Arabidopsis thaliana", "mission": "SpaceX-12"},
	{"id": "F-2", "name": "metadata.txt", "type": "txt", "study_id": "OSD-37", "species": "Arabidopsis thaliana", "mission": "SpaceX-12"}
]`

// searchResponse mirrors graph.SearchResult with the node properties left
// opaque, since Properties is an interface on the encoding side.
type searchResponse struct {
	MatchingNodes []struct {
		ID    string         `json:"id"`
		Type  graph.NodeType `json:"type"`
		Label string         `json:"label"`
	} `json:"matching_nodes"`
	Subgraph struct {
		Nodes map[string]json.RawMessage `json:"nodes"`
		Edges []graph.Edge               `json:"edges"`
	} `json:"subgraph"`
}

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHandleGraph(t *testing.T) {
	s := testServer(t, testPublications, testFiles)

	rec := doRequest(t, s, "/api/graph")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Graph struct {
			Nodes map[string]json.RawMessage `json:"nodes"`
		} `json:"graph"`
		Summary graph.Summary `json:"summary"`
		NoData  bool          `json:"no_data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.False(t, resp.NoData)
	require.Contains(t, resp.Graph.Nodes, "pub_glds-120")
	require.Contains(t, resp.Graph.Nodes, "study_osd-37")
	require.Greater(t, resp.Summary.TotalEdges, 0)
}

func TestHandleGraphNoData(t *testing.T) {
	s := testServer(t, "", "")

	rec := doRequest(t, s, "/api/graph")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Summary graph.Summary `json:"summary"`
		NoData  bool          `json:"no_data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.True(t, resp.NoData)
	require.Equal(t, 1, resp.Summary.TotalNodes)
}

func TestHandleSearch(t *testing.T) {
	s := testServer(t, testPublications, testFiles)

	rec := doRequest(t, s, "/api/search?q=arabidopsis")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.MatchingNodes)
}

func TestHandleSearchEmptyQuery(t *testing.T) {
	s := testServer(t, testPublications, testFiles)

	rec := doRequest(t, s, "/api/search?q=")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Empty(t, resp.MatchingNodes)
}

func TestHandleSearchMultipleTermsIntersect(t *testing.T) {
	s := testServer(t, testPublications, testFiles)

	rec := doRequest(t, s, "/api/search?q=arabidopsis+root")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.MatchingNodes, 1)
	require.Equal(t, "pub_glds-120", resp.MatchingNodes[0].ID)
}

func TestHandleSearchLimitClamped(t *testing.T) {
	s := testServer(t, testPublications, testFiles)

	rec := doRequest(t, s, "/api/search?q=arabidopsis&limit=99999")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.LessOrEqual(t, len(resp.MatchingNodes), s.cfg.MaxSearchResults)
}

func TestHandleSearchTypeFilter(t *testing.T) {
	s := testServer(t, testPublications, testFiles)

	rec := doRequest(t, s, "/api/search?q=arabidopsis&type=publication")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.MatchingNodes)
	for _, node := range resp.MatchingNodes {
		require.Equal(t, graph.NodePublication, node.Type)
	}
}

func TestHandlePaths(t *testing.T) {
	s := testServer(t, testPublications, testFiles)

	rec := doRequest(t, s, "/api/paths?from=pub_glds-120&to=pub_glds-121&max_length=4")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp graph.PathResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Greater(t, resp.PathCount, 0)
	// The two publications score above the similarity threshold, so a
	// direct similar_to hop exists.
	require.Equal(t, 1, resp.ShortestPathLength)
}

func TestHandlePathsMissingParams(t *testing.T) {
	s := testServer(t, testPublications, testFiles)

	rec := doRequest(t, s, "/api/paths?from=pub_glds-120")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePathsUnknownNode(t *testing.T) {
	s := testServer(t, testPublications, testFiles)

	rec := doRequest(t, s, "/api/paths?from=pub_glds-120&to=pub_nope")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp graph.PathResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.PathCount)
}

func TestHandlePathsMaxLengthClamped(t *testing.T) {
	s := testServer(t, testPublications, testFiles)

	// max_length above the configured ceiling still answers instead of
	// erroring; the value is clamped server-side.
	rec := doRequest(t, s, "/api/paths?from=pub_glds-120&to=pub_glds-121&max_length=500")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp graph.PathResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	for _, path := range resp.Paths {
		require.LessOrEqual(t, len(path)-1, s.cfg.MaxPathLength)
	}
}

func TestHandleClusters(t *testing.T) {
	s := testServer(t, testPublications, testFiles)

	rec := doRequest(t, s, "/api/clusters")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp graph.ClusterResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Equal(t, 1, resp.ClusterCount)
	require.Equal(t, "area_plant_biology", resp.Clusters[0].Center)
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t, testPublications, testFiles)

	rec := doRequest(t, s, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ok", resp["status"])
}

func TestRequestIDHeader(t *testing.T) {
	s := testServer(t, testPublications, testFiles)

	rec := doRequest(t, s, "/healthz")
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
