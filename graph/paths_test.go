package graph

import (
	"context"
	"testing"
	"time"
)

// chainGraph builds a -> b -> c -> d plus a shortcut a -> c.
func chainGraph(t *testing.T) *Graph {
	t.Helper()
	g := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.AddNode(&Node{ID: id, Type: NodePublication, Label: id, Level: LevelPrimary})
	}
	g.AddEdge("a", "b", EdgeSimilarTo, 0.5)
	g.AddEdge("b", "c", EdgeSimilarTo, 0.5)
	g.AddEdge("c", "d", EdgeSimilarTo, 0.5)
	g.AddEdge("a", "c", EdgeSimilarTo, 0.5)
	return g
}

func TestFindTrivialPath(t *testing.T) {
	g := chainGraph(t)
	finder := NewPathFinder(0, testLogger())

	paths := finder.Find(context.Background(), g, "a", "a", 3)
	if len(paths) != 1 {
		t.Fatalf("Path count = %d, want 1", len(paths))
	}
	if len(paths[0]) != 1 || paths[0][0] != "a" {
		t.Errorf("Trivial path = %v, want [a]", paths[0])
	}
}

func TestFindAbsentNode(t *testing.T) {
	g := chainGraph(t)
	finder := NewPathFinder(0, testLogger())

	if paths := finder.Find(context.Background(), g, "a", "zz", 3); len(paths) != 0 {
		t.Errorf("Paths to absent node = %v, want empty", paths)
	}
	if paths := finder.Find(context.Background(), g, "zz", "a", 3); len(paths) != 0 {
		t.Errorf("Paths from absent node = %v, want empty", paths)
	}
}

func TestFindNoEdges(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: "a", Type: NodePublication, Label: "a"})
	g.AddNode(&Node{ID: "b", Type: NodePublication, Label: "b"})

	finder := NewPathFinder(0, testLogger())
	if paths := finder.Find(context.Background(), g, "a", "b", 4); len(paths) != 0 {
		t.Errorf("Paths = %v, want empty in edgeless graph", paths)
	}
}

func TestFindSortedByLength(t *testing.T) {
	g := chainGraph(t)
	finder := NewPathFinder(0, testLogger())

	paths := finder.Find(context.Background(), g, "a", "d", 4)
	if len(paths) != 2 {
		t.Fatalf("Path count = %d, want 2 (a-c-d and a-b-c-d)", len(paths))
	}
	for i := 1; i < len(paths); i++ {
		if len(paths[i]) < len(paths[i-1]) {
			t.Errorf("Paths not sorted ascending by length: %v", paths)
		}
	}
	if len(paths[0]) != 3 {
		t.Errorf("Shortest path = %v, want a-c-d", paths[0])
	}
}

func TestFindRespectsMaxLength(t *testing.T) {
	g := chainGraph(t)
	finder := NewPathFinder(0, testLogger())

	// Only the 2-edge shortcut fits within maxLength 2
	paths := finder.Find(context.Background(), g, "a", "d", 2)
	if len(paths) != 1 {
		t.Fatalf("Path count = %d, want 1", len(paths))
	}
	if len(paths[0])-1 > 2 {
		t.Errorf("Path %v exceeds maxLength 2", paths[0])
	}
}

func TestFindTreatsEdgesAsUndirected(t *testing.T) {
	g := chainGraph(t)
	finder := NewPathFinder(0, testLogger())

	// All edges point forward; traversal backward must still work
	paths := finder.Find(context.Background(), g, "d", "a", 4)
	if len(paths) == 0 {
		t.Error("Expected paths traversing edges against their direction")
	}
}

func TestFindNoRepeatedNodeWithinPath(t *testing.T) {
	g := chainGraph(t)
	finder := NewPathFinder(0, testLogger())

	for _, path := range finder.Find(context.Background(), g, "a", "d", 4) {
		seen := make(map[string]bool)
		for _, id := range path {
			if seen[id] {
				t.Errorf("Node %s repeats within path %v", id, path)
			}
			seen[id] = true
		}
	}
}

func TestFindPathCap(t *testing.T) {
	// Dense bipartite-ish graph with many alternative routes
	g := New()
	g.AddNode(&Node{ID: "start", Type: NodePublication, Label: "start"})
	g.AddNode(&Node{ID: "end", Type: NodePublication, Label: "end"})
	for i := 0; i < 20; i++ {
		id := NodeID(NodeKeyword, string(rune('a'+i)))
		g.AddNode(&Node{ID: id, Type: NodeKeyword, Label: id})
		g.AddEdge("start", id, EdgeTaggedWith, tagEdgeWeight)
		g.AddEdge(id, "end", EdgeTaggedWith, tagEdgeWeight)
	}

	finder := NewPathFinder(5, testLogger())
	paths := finder.Find(context.Background(), g, "start", "end", 4)
	if len(paths) > 5 {
		t.Errorf("Path count = %d, want capped at 5", len(paths))
	}
}

func TestFindHonorsContextDeadline(t *testing.T) {
	g := chainGraph(t)
	finder := NewPathFinder(0, testLogger())

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	// An already-expired deadline returns whatever was found before the
	// first cancellation check: possibly nothing, never a panic or error
	paths := finder.Find(ctx, g, "a", "d", 4)
	if paths == nil {
		t.Error("Find returned nil slice, want empty or partial results")
	}
}

func TestNewPathResult(t *testing.T) {
	result := NewPathResult([][]string{{"a", "c", "d"}, {"a", "b", "c", "d"}})
	if result.PathCount != 2 {
		t.Errorf("PathCount = %d, want 2", result.PathCount)
	}
	if result.ShortestPathLength != 2 {
		t.Errorf("ShortestPathLength = %d, want 2 edges", result.ShortestPathLength)
	}

	empty := NewPathResult([][]string{})
	if empty.PathCount != 0 || empty.ShortestPathLength != 0 {
		t.Errorf("Empty result = %+v", empty)
	}
}
