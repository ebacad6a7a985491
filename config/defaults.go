package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.max_search_results", 100)
	v.SetDefault("server.max_path_length", 6)
	v.SetDefault("server.path_timeout_seconds", 5)

	// Similarity defaults (weights sum to 1.0)
	v.SetDefault("graph.similarity.area_weight", 0.3)
	v.SetDefault("graph.similarity.keyword_weight", 0.4)
	v.SetDefault("graph.similarity.organism_weight", 0.3)
	v.SetDefault("graph.similarity.threshold", 0.3)

	// Path search defaults
	v.SetDefault("graph.paths.max_explored", 1000)

	// OSDR upstream defaults
	v.SetDefault("osdr.base_url", "https://osdr.nasa.gov/osdr/data/osd")
	v.SetDefault("osdr.requests_per_minute", 30) // polite toward the public API
	v.SetDefault("osdr.timeout_seconds", 30)

	// Local data defaults
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.vocabulary_path", "")
}
