package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/astraldata/biograph/config"
	"github.com/astraldata/biograph/errors"
	"github.com/astraldata/biograph/graph"
	"github.com/astraldata/biograph/logger"
	"github.com/astraldata/biograph/osdr"
	"github.com/astraldata/biograph/server"
)

// loadConfig resolves configuration for a command run: an explicit --config
// path wins, otherwise the discovery chain (env > project > user > system >
// defaults) applies.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func loadVocabulary(cfg *config.Config, log *zap.SugaredLogger) (*osdr.Vocabulary, error) {
	if cfg.Data.VocabularyPath == "" {
		return osdr.DefaultVocabulary(), nil
	}
	vocab, err := osdr.LoadVocabulary(cfg.Data.VocabularyPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load vocabulary from %s", cfg.Data.VocabularyPath)
	}
	log.Debugw("Loaded research area vocabulary", "path", cfg.Data.VocabularyPath)
	return vocab, nil
}

func similarityWeights(cfg *config.Config) graph.SimilarityWeights {
	return graph.SimilarityWeights{
		Area:      cfg.Graph.Similarity.AreaWeight,
		Keyword:   cfg.Graph.Similarity.KeywordWeight,
		Organism:  cfg.Graph.Similarity.OrganismWeight,
		Threshold: cfg.Graph.Similarity.Threshold,
	}
}

// buildEngine wires the store, vocabulary, and similarity weights from
// config into a graph build engine.
func buildEngine(cfg *config.Config) (*server.Engine, *osdr.Store, error) {
	log := logger.Logger

	store := osdr.NewStore(cfg.Data.Dir, log)
	vocab, err := loadVocabulary(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	return server.NewEngine(store, vocab, similarityWeights(cfg), log), store, nil
}
