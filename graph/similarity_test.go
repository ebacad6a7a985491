package graph

import (
	"math"
	"testing"

	"github.com/astraldata/biograph/osdr"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"identical", []string{"microgravity", "roots"}, []string{"microgravity", "roots"}, 1.0},
		{"disjoint", []string{"microgravity"}, []string{"radiation"}, 0.0},
		{"partial", []string{"a", "b"}, []string{"b", "c"}, 1.0 / 3.0},
		{"both empty", nil, nil, 0.0},
		{"one empty", []string{"a"}, nil, 0.0},
		{"case insensitive", []string{"Microgravity"}, []string{"microgravity"}, 1.0},
		{"duplicates ignored", []string{"a", "a"}, []string{"a"}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jaccard(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("jaccard(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if math.IsNaN(got) {
				t.Error("jaccard produced NaN")
			}
		})
	}
}

func TestLinkIdenticalPublicationsScoreFull(t *testing.T) {
	// plantPublications share area, keyword set, and organism set
	pubs := plantPublications()

	g := NewBuilder(testLogger()).Build(pubs, nil)
	linked := NewLinker(DefaultSimilarityWeights(), testLogger()).Link(g, pubs)

	if linked != 1 {
		t.Fatalf("Linked = %d, want 1", linked)
	}

	var edge *Edge
	for i := range g.Edges {
		if g.Edges[i].Type == EdgeSimilarTo {
			edge = &g.Edges[i]
		}
	}
	if edge == nil {
		t.Fatal("No similar_to edge created")
	}
	// Same area, identical keyword and organism sets: full score
	if math.Abs(edge.Weight-1.0) > 1e-9 {
		t.Errorf("Weight = %v, want 1.0", edge.Weight)
	}
}

func TestLinkThreshold(t *testing.T) {
	pubs := []osdr.Publication{
		{OSDRID: "GLDS-1", Title: "A", ResearchArea: "Radiation Biology", Keywords: []string{"dna"}, Organisms: []string{"Mus musculus"}},
		{OSDRID: "GLDS-2", Title: "B", ResearchArea: "Radiation Biology", Keywords: []string{"proteomics"}, Organisms: []string{"Homo sapiens"}},
	}

	g := NewBuilder(testLogger()).Build(pubs, nil)

	// Shared area alone scores exactly 0.3, which does not exceed the 0.3
	// threshold: no edge
	linked := NewLinker(DefaultSimilarityWeights(), testLogger()).Link(g, pubs)
	if linked != 0 {
		t.Errorf("Linked = %d, want 0 for score at threshold", linked)
	}
}

func TestLinkOnlyWithinArea(t *testing.T) {
	pubs := []osdr.Publication{
		{OSDRID: "GLDS-1", Title: "A", ResearchArea: "Plant Biology", Keywords: []string{"microgravity"}, Organisms: []string{"Arabidopsis thaliana"}},
		{OSDRID: "GLDS-2", Title: "B", ResearchArea: "Rodent Research", Keywords: []string{"microgravity"}, Organisms: []string{"Arabidopsis thaliana"}},
	}

	g := NewBuilder(testLogger()).Build(pubs, nil)
	linked := NewLinker(DefaultSimilarityWeights(), testLogger()).Link(g, pubs)

	if linked != 0 {
		t.Errorf("Linked = %d, want 0 across different areas", linked)
	}
}

func TestLinkScenarioPlantBiology(t *testing.T) {
	// Two publications sharing area, organism set, and keyword set must link
	// with weight >= 0.3
	pubs := plantPublications()
	g := NewBuilder(testLogger()).Build(pubs, nil)
	NewLinker(DefaultSimilarityWeights(), testLogger()).Link(g, pubs)

	summary := g.Summarize()
	if summary.EdgeTypeCounts[EdgeSimilarTo] < 1 {
		t.Fatal("Expected at least one similar_to edge")
	}
	for _, e := range g.Edges {
		if e.Type == EdgeSimilarTo && e.Weight < 0.3 {
			t.Errorf("similar_to weight = %v, want >= 0.3", e.Weight)
		}
	}
}

func TestLinkSkipsPublicationsWithoutArea(t *testing.T) {
	pubs := []osdr.Publication{
		{OSDRID: "GLDS-1", Title: "A", Keywords: []string{"microgravity"}},
		{OSDRID: "GLDS-2", Title: "B", Keywords: []string{"microgravity"}},
	}

	g := NewBuilder(testLogger()).Build(pubs, nil)
	linked := NewLinker(DefaultSimilarityWeights(), testLogger()).Link(g, pubs)

	if linked != 0 {
		t.Errorf("Linked = %d, want 0 without research areas", linked)
	}
}
