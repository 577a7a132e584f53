// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout bounds every outbound request.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "elibrary-discovery/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DiscoveryConfig holds settings for the federated search core.
type DiscoveryConfig struct {
	HTTPConfig `yaml:",inline"`

	// DefaultPageSize is the page size used when a query specifies none (default 20).
	DefaultPageSize int `json:"default_page_size" yaml:"default_page_size"`

	// MaxPageSize caps the requested page size to bound provider load (default 50).
	MaxPageSize int `json:"max_page_size" yaml:"max_page_size"`

	// Per-source enable switches. All sources are on by default.
	EnableArxiv           bool `json:"enable_arxiv" yaml:"enable_arxiv"`
	EnableOpenAlex        bool `json:"enable_openalex" yaml:"enable_openalex"`
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar"`
	EnableCrossref        bool `json:"enable_crossref" yaml:"enable_crossref"`
	EnableDOAJ            bool `json:"enable_doaj" yaml:"enable_doaj"`
	EnableCORE            bool `json:"enable_core" yaml:"enable_core"`
	EnablePubMed          bool `json:"enable_pubmed" yaml:"enable_pubmed"`

	// SemanticScholarAPIKey raises Semantic Scholar rate limits. Optional.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// COREAPIKey authenticates against CORE. The CORE client refuses to
	// issue requests without it.
	COREAPIKey string `json:"core_api_key,omitempty" yaml:"core_api_key,omitempty"`

	// PubMedAPIKey raises NCBI rate limits. Optional.
	PubMedAPIKey string `json:"pubmed_api_key,omitempty" yaml:"pubmed_api_key,omitempty"`

	// OpenAlexEmail is sent as the mailto parameter for polite pool access.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty"`

	// CrossrefMailto is sent as the mailto parameter for the polite pool.
	CrossrefMailto string `json:"crossref_mailto,omitempty" yaml:"crossref_mailto,omitempty"`

	// PubMedMinInterval is the minimum spacing between consecutive NCBI
	// requests from this process (default 350ms).
	PubMedMinInterval time.Duration `json:"pubmed_min_interval" yaml:"pubmed_min_interval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// LogFileConfig holds log rotation settings.
type LogFileConfig struct {
	Path       string `json:"path" yaml:"path"`
	MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `json:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `json:"compress" yaml:"compress"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Format is "json" or "console" (default console).
	Format string `json:"format" yaml:"format"`

	// Output is "stderr", "file", or "both" (default stderr).
	Output string `json:"output" yaml:"output"`

	File LogFileConfig `json:"file" yaml:"file"`
}

// SearchLogConfig holds settings for the SQLite search-audit log. Only query
// metadata is recorded; harvested records are never persisted.
type SearchLogConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// Config groups all service configuration.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Discovery DiscoveryConfig `json:"discovery" yaml:"discovery"`
	Log       LogConfig       `json:"log" yaml:"log"`
	SearchLog SearchLogConfig `json:"search_log" yaml:"search_log"`
}
