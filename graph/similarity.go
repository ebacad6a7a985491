package graph

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/astraldata/biograph/osdr"
)

// SimilarityWeights configures co-occurrence similarity scoring. The three
// weights should sum to 1.0 so scores stay in [0,1].
type SimilarityWeights struct {
	Area      float64
	Keyword   float64
	Organism  float64
	Threshold float64
}

// DefaultSimilarityWeights returns the standard scoring profile.
func DefaultSimilarityWeights() SimilarityWeights {
	return SimilarityWeights{
		Area:      0.3,
		Keyword:   0.4,
		Organism:  0.3,
		Threshold: 0.3,
	}
}

// Linker adds weighted similar_to edges between topically related
// publications. Publications are only compared within the same research-area
// group, bounding cost to O(k^2) per group rather than N^2 over the corpus.
type Linker struct {
	weights SimilarityWeights
	logger  *zap.SugaredLogger
}

// NewLinker creates a similarity linker with the given scoring weights.
func NewLinker(weights SimilarityWeights, logger *zap.SugaredLogger) *Linker {
	return &Linker{
		weights: weights,
		logger:  logger.Named("graph.similarity"),
	}
}

// Link scores every publication pair sharing a research area and adds a
// similar_to edge, weighted by the score, for each pair above the threshold.
// Similarity edges are symmetric; one stored edge per pair, traversed as
// undirected.
func (l *Linker) Link(g *Graph, publications []osdr.Publication) int {
	groups := make(map[string][]osdr.Publication)
	order := make([]string, 0)

	for _, pub := range publications {
		if pub.OSDRID == "" || pub.ResearchArea == "" {
			continue
		}
		key := strings.ToLower(pub.ResearchArea)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], pub)
	}

	linked := 0
	for _, key := range order {
		group := groups[key]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				score := l.score(group[i], group[j])
				if score <= l.weights.Threshold {
					continue
				}

				sourceID := NodeID(NodePublication, group[i].OSDRID)
				targetID := NodeID(NodePublication, group[j].OSDRID)
				if sourceID == targetID || g.HasEdge(sourceID, targetID, EdgeSimilarTo) {
					continue
				}
				if g.AddEdge(sourceID, targetID, EdgeSimilarTo, round3(score)) {
					linked++
				}
			}
		}
	}

	if linked > 0 {
		l.logger.Debugw("Similarity edges added", "count", linked)
	}
	return linked
}

// score computes the weighted co-occurrence similarity of two publications
// in the same research-area group: same-area indicator plus keyword and
// organism Jaccard overlap.
func (l *Linker) score(a, b osdr.Publication) float64 {
	score := l.weights.Area // both publications share the group's area
	score += l.weights.Keyword * jaccard(a.Keywords, b.Keywords)
	score += l.weights.Organism * jaccard(a.Organisms, b.Organisms)
	return score
}

// jaccard computes |A ∩ B| / |A ∪ B| over case-folded sets. An empty union
// contributes 0, never NaN.
func jaccard(a, b []string) float64 {
	union := make(map[string]struct{})
	setA := make(map[string]struct{})
	for _, v := range a {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		setA[v] = struct{}{}
		union[v] = struct{}{}
	}

	intersection := 0
	seenB := make(map[string]struct{})
	for _, v := range b {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, dup := seenB[v]; dup {
			continue
		}
		seenB[v] = struct{}{}
		if _, ok := setA[v]; ok {
			intersection++
		}
		union[v] = struct{}{}
	}

	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}

// round3 rounds to 3 decimals for stable weights across platforms.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
