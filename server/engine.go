package server

import (
	"go.uber.org/zap"

	"github.com/astraldata/biograph/errors"
	"github.com/astraldata/biograph/graph"
	"github.com/astraldata/biograph/osdr"
)

// Engine composes record loading, vocabulary normalization, graph
// construction, and similarity linking into one per-request build. Every
// call produces a private graph, so concurrent requests share no state.
type Engine struct {
	store   *osdr.Store
	vocab   *osdr.Vocabulary
	weights graph.SimilarityWeights
	logger  *zap.SugaredLogger
}

// NewEngine creates a build engine over the given record store.
func NewEngine(store *osdr.Store, vocab *osdr.Vocabulary, weights graph.SimilarityWeights, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		store:   store,
		vocab:   vocab,
		weights: weights,
		logger:  logger.Named("engine"),
	}
}

// BuildGraph rebuilds the knowledge graph from the current records. When no
// upstream data exists at all, it returns a root-only graph and noData=true
// rather than an error: the boundary reports "no data" explicitly instead of
// fabricating plausible-looking nodes.
func (e *Engine) BuildGraph() (*graph.Graph, bool, error) {
	publications, err := e.store.LoadPublications()
	if err != nil && !errors.Is(err, osdr.ErrNoData) {
		return nil, false, errors.Wrap(err, "failed to load publications")
	}

	files, err := e.store.LoadFiles()
	if err != nil && !errors.Is(err, osdr.ErrNoData) {
		return nil, false, errors.Wrap(err, "failed to load files")
	}

	noData := len(publications) == 0 && len(files) == 0

	publications = e.vocab.NormalizePublications(publications)

	g := graph.NewBuilder(e.logger).
		WithAreaNormalizer(e.vocab.Normalize).
		Build(publications, files)
	graph.NewLinker(e.weights, e.logger).Link(g, publications)

	return g, noData, nil
}
