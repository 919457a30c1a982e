package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "nepjol-fetch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the NepJOL site-wide search endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// SiteOrigin is prefixed onto relative article links from the results page.
	SiteOrigin string `json:"site_origin" yaml:"site_origin"`
}

// DownloadConfig holds settings for the download stage.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// ChunkSize is the copy buffer size for streaming the body to disk (default 8 KiB).
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// OutputDir is where downloaded PDFs are written (default: current directory).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// WriteSidecar controls whether a YAML metadata file is written next to the PDF.
	WriteSidecar bool `json:"write_sidecar" yaml:"write_sidecar"`
}

// HistoryConfig holds settings for the local history database.
type HistoryConfig struct {
	// Enabled controls whether searches and downloads are recorded at all.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// DBPath is the SQLite database file (default "nepjol-history.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default maximum number of rows listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LogConfig holds settings for per-run diagnostic logging.
type LogConfig struct {
	// Dir is the directory for per-run log files (default "logs").
	Dir string `json:"dir" yaml:"dir"`

	// Level is the minimum level echoed to the console: debug, info, warn, error.
	Level string `json:"level" yaml:"level"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Search   SearchConfig   `json:"search" yaml:"search"`
	Download DownloadConfig `json:"download" yaml:"download"`
	History  HistoryConfig  `json:"history" yaml:"history"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// Default endpoint values for the NepJOL aggregator.
const (
	DefaultBaseURL    = "https://www.nepjol.info/index.php/index/search/index"
	DefaultSiteOrigin = "https://www.nepjol.info"
)

// DefaultSearchConfig returns the search settings used when nothing is configured.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "nepjol-fetch/0.1",
		},
		BaseURL:    DefaultBaseURL,
		SiteOrigin: DefaultSiteOrigin,
	}
}

// DefaultDownloadConfig returns the download settings used when nothing is configured.
func DefaultDownloadConfig() DownloadConfig {
	return DownloadConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "nepjol-fetch/0.1",
		},
		ChunkSize:    8192,
		OutputDir:    ".",
		WriteSidecar: true,
	}
}
