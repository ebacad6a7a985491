package config

// Config represents the core biograph configuration
type Config struct {
	Server ServerConfig `mapstructure:"server" toml:"server"`
	Graph  GraphConfig  `mapstructure:"graph" toml:"graph"`
	OSDR   OSDRConfig   `mapstructure:"osdr" toml:"osdr"`
	Data   DataConfig   `mapstructure:"data" toml:"data"`
}

// ServerConfig configures the biograph HTTP server
type ServerConfig struct {
	Port               int      `mapstructure:"port" toml:"port"`
	AllowedOrigins     []string `mapstructure:"allowed_origins" toml:"allowed_origins"`
	MaxSearchResults   int      `mapstructure:"max_search_results" toml:"max_search_results"`     // upper clamp for ?limit=
	MaxPathLength      int      `mapstructure:"max_path_length" toml:"max_path_length"`           // upper clamp for ?max_length=
	PathTimeoutSeconds int      `mapstructure:"path_timeout_seconds" toml:"path_timeout_seconds"` // wall-clock budget around path search
}

// GraphConfig configures graph construction and analysis
type GraphConfig struct {
	Similarity SimilarityConfig `mapstructure:"similarity" toml:"similarity"`
	Paths      PathsConfig      `mapstructure:"paths" toml:"paths"`
}

// SimilarityConfig configures co-occurrence similarity scoring.
// Weights should sum to 1.0; scores above Threshold produce similar_to edges.
type SimilarityConfig struct {
	AreaWeight     float64 `mapstructure:"area_weight" toml:"area_weight"`
	KeywordWeight  float64 `mapstructure:"keyword_weight" toml:"keyword_weight"`
	OrganismWeight float64 `mapstructure:"organism_weight" toml:"organism_weight"`
	Threshold      float64 `mapstructure:"threshold" toml:"threshold"`
}

// PathsConfig bounds path enumeration cost
type PathsConfig struct {
	MaxExplored int `mapstructure:"max_explored" toml:"max_explored"` // hard cap on enumerated paths per query
}

// OSDRConfig configures the upstream OSDR metadata client
type OSDRConfig struct {
	BaseURL           string `mapstructure:"base_url" toml:"base_url"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" toml:"requests_per_minute"` // polite rate limit toward NASA
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" toml:"timeout_seconds"`
}

// DataConfig configures the local record store
type DataConfig struct {
	Dir            string `mapstructure:"dir" toml:"dir"`                         // directory with cached publication/file JSON
	VocabularyPath string `mapstructure:"vocabulary_path" toml:"vocabulary_path"` // research-area synonym YAML, empty = built-ins
}

// Server port constant
const DefaultServerPort = 8750
