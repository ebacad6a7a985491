package graph

import (
	"strings"
	"testing"
)

func TestNodeIDDeterministic(t *testing.T) {
	a := NodeID(NodePublication, "GLDS-120")
	b := NodeID(NodePublication, "GLDS-120")
	if a != b {
		t.Errorf("NodeID not deterministic: %q vs %q", a, b)
	}
	if a != "pub_glds-120" {
		t.Errorf("NodeID = %q, want pub_glds-120", a)
	}
}

func TestNodeIDSanitization(t *testing.T) {
	tests := []struct {
		nodeType NodeType
		key      string
		want     string
	}{
		{NodeOrganism, "Arabidopsis thaliana", "org_arabidopsis_thaliana"},
		{NodeAuthor, "Paul, A.", "author_paul__a_"},
		{NodeKeyword, "Microgravity", "kw_microgravity"},
		{NodeResearchArea, "Plant Biology", "area_plant_biology"},
		{NodeStudy, "GLDS-100", "study_glds-100"},
		{NodeFile, "  padded  ", "file_padded"},
	}

	for _, tt := range tests {
		if got := NodeID(tt.nodeType, tt.key); got != tt.want {
			t.Errorf("NodeID(%s, %q) = %q, want %q", tt.nodeType, tt.key, got, tt.want)
		}
	}
}

func TestNodeIDPrefixesDistinct(t *testing.T) {
	// The same source key under different types must never collide
	seen := make(map[string]NodeType)
	for nodeType := range nodeIDPrefixes {
		id := NodeID(nodeType, "GLDS-100")
		if other, dup := seen[id]; dup {
			t.Errorf("Types %s and %s derive the same id %q", nodeType, other, id)
		}
		seen[id] = nodeType
	}
}

func TestEdgeID(t *testing.T) {
	id := EdgeID("pub_a", "study_a", EdgeReferences)
	if id != "pub_a_references_study_a" {
		t.Errorf("EdgeID = %q", id)
	}
}

func TestTruncateLabel(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := truncateLabel(long, maxLabelLength)
	if len(got) != maxLabelLength {
		t.Errorf("Truncated length = %d, want %d", len(got), maxLabelLength)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Truncated label missing ellipsis: %q", got[len(got)-5:])
	}

	if got := truncateLabel("short", maxLabelLength); got != "short" {
		t.Errorf("Short label altered: %q", got)
	}
}
