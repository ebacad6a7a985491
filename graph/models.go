package graph

import "sort"

// NodeType identifies what kind of entity a node represents.
type NodeType string

const (
	NodeDatabase     NodeType = "database"
	NodePublication  NodeType = "publication"
	NodeResearchArea NodeType = "research_area"
	NodeOrganism     NodeType = "organism"
	NodeAuthor       NodeType = "author"
	NodeKeyword      NodeType = "keyword"
	NodeStudy        NodeType = "study"
	NodeFile         NodeType = "file"
)

// EdgeType identifies the relation an edge carries.
type EdgeType string

const (
	EdgeContains   EdgeType = "contains"
	EdgeBelongsTo  EdgeType = "belongs_to"
	EdgeStudies    EdgeType = "studies"
	EdgeAuthored   EdgeType = "authored"
	EdgeTaggedWith EdgeType = "tagged_with"
	EdgeSimilarTo  EdgeType = "similar_to"
	EdgeReferences EdgeType = "references"
)

// Hierarchy levels. The root database node sits at level 0, primary entities
// (publications, research areas, studies) at level 1, and leaf entities
// (organisms, authors, keywords, files) at level 2.
const (
	LevelRoot    = 0
	LevelPrimary = 1
	LevelLeaf    = 2
)

// Properties is the per-type payload of a node. Each node type carries its
// own concrete struct; searchValues exposes the scalar fields that substring
// search matches against.
type Properties interface {
	searchValues() []string
}

// DatabaseProps describes the root database node.
type DatabaseProps struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (p DatabaseProps) searchValues() []string { return []string{p.Name, p.Description} }

// PublicationProps holds publication metadata carried into the graph.
type PublicationProps struct {
	OSDRID          string   `json:"osdr_id"`
	Title           string   `json:"title"`
	ResearchArea    string   `json:"research_area,omitempty"`
	Organisms       []string `json:"organisms,omitempty"`
	Authors         []string `json:"authors,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	PublicationDate string   `json:"publication_date,omitempty"`
	Abstract        string   `json:"abstract,omitempty"`
}

func (p PublicationProps) searchValues() []string {
	return []string{p.OSDRID, p.Title, p.ResearchArea, p.PublicationDate, p.Abstract}
}

// ResearchAreaProps describes a research area node.
type ResearchAreaProps struct {
	Name string `json:"name"`
}

func (p ResearchAreaProps) searchValues() []string { return []string{p.Name} }

// OrganismProps describes an organism node.
type OrganismProps struct {
	Name string `json:"name"`
}

func (p OrganismProps) searchValues() []string { return []string{p.Name} }

// AuthorProps describes an author node.
type AuthorProps struct {
	Name string `json:"name"`
}

func (p AuthorProps) searchValues() []string { return []string{p.Name} }

// KeywordProps describes a keyword node.
type KeywordProps struct {
	Term string `json:"term"`
}

func (p KeywordProps) searchValues() []string { return []string{p.Term} }

// StudyProps aggregates the file records grouped under one OSDR study.
type StudyProps struct {
	StudyID   string `json:"study_id"`
	FileCount int    `json:"file_count"`
	Species   string `json:"species,omitempty"`
	Mission   string `json:"mission,omitempty"`
}

func (p StudyProps) searchValues() []string { return []string{p.StudyID, p.Species, p.Mission} }

// FileProps describes a single data file within a study.
type FileProps struct {
	FileID         string `json:"file_id"`
	Name           string `json:"name"`
	FileType       string `json:"file_type,omitempty"`
	StudyID        string `json:"study_id"`
	URL            string `json:"url,omitempty"`
	ExperimentType string `json:"experiment_type,omitempty"`
	Description    string `json:"description,omitempty"`
}

func (p FileProps) searchValues() []string {
	return []string{p.FileID, p.Name, p.FileType, p.StudyID, p.ExperimentType, p.Description}
}

// Node is a typed vertex in the knowledge graph.
type Node struct {
	ID         string     `json:"id"`
	Type       NodeType   `json:"type"`
	Label      string     `json:"label"`
	Level      int        `json:"level"`
	Properties Properties `json:"properties,omitempty"`
}

// Edge is a typed, weighted relation between two nodes already present in
// the same graph. Weight is in [0,1] for similar_to and tagged_with edges
// and a small positive integer otherwise.
type Edge struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
	Weight float64  `json:"weight"`
}

// Graph holds nodes keyed by id plus an ordered edge list. Graphs are built
// per query, never shared, and discarded when the query completes.
type Graph struct {
	Nodes map[string]*Node `json:"nodes"`
	Edges []Edge           `json:"edges"`
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
		Edges: []Edge{},
	}
}

// AddNode inserts a node if its id is not already present and returns the
// node stored in the graph. Insertion is idempotent: re-adding an existing
// id returns the original node untouched.
func (g *Graph) AddNode(n *Node) *Node {
	if existing, ok := g.Nodes[n.ID]; ok {
		return existing
	}
	g.Nodes[n.ID] = n
	return n
}

// HasNode reports whether the graph contains a node with the given id.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}

// AddEdge appends an edge after verifying both endpoints exist. An edge
// referencing an absent node indicates a builder defect upstream; the edge
// is dropped and false returned rather than corrupting the graph.
func (g *Graph) AddEdge(source, target string, edgeType EdgeType, weight float64) bool {
	if !g.HasNode(source) || !g.HasNode(target) {
		return false
	}
	g.Edges = append(g.Edges, Edge{
		ID:     EdgeID(source, target, edgeType),
		Source: source,
		Target: target,
		Type:   edgeType,
		Weight: weight,
	})
	return true
}

// HasEdge reports whether an edge with the derived id already exists.
func (g *Graph) HasEdge(source, target string, edgeType EdgeType) bool {
	id := EdgeID(source, target, edgeType)
	for _, e := range g.Edges {
		if e.ID == id {
			return true
		}
	}
	return false
}

// NodesOfType returns ids of all nodes with the given type, sorted for
// deterministic output across runs.
func (g *Graph) NodesOfType(t NodeType) []string {
	ids := make([]string, 0)
	for id, n := range g.Nodes {
		if n.Type == t {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Summary describes graph composition for API consumers.
type Summary struct {
	TotalNodes     int              `json:"total_nodes"`
	TotalEdges     int              `json:"total_edges"`
	NodeTypeCounts map[NodeType]int `json:"node_type_counts"`
	EdgeTypeCounts map[EdgeType]int `json:"edge_type_counts"`
}

// Summarize computes node and edge counts grouped by type.
func (g *Graph) Summarize() Summary {
	s := Summary{
		TotalNodes:     len(g.Nodes),
		TotalEdges:     len(g.Edges),
		NodeTypeCounts: make(map[NodeType]int),
		EdgeTypeCounts: make(map[EdgeType]int),
	}
	for _, n := range g.Nodes {
		s.NodeTypeCounts[n.Type]++
	}
	for _, e := range g.Edges {
		s.EdgeTypeCounts[e.Type]++
	}
	return s
}
