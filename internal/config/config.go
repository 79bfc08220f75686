// Package config defines the merge configuration and how it is loaded.
//
// Conventions:
// - New returns a Config holding every default.
// - Load layers a YAML file, environment variables and command-line flags on top.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// DataDir is the root of the source catalogue tree.
	DataDir string `koanf:"data_dir"`

	// OutputDir receives the text and JSON outputs.
	OutputDir string `koanf:"output_dir"`

	// CompressOutput gzips both outputs.
	CompressOutput bool `koanf:"compress_output"`

	// MagnitudeLimit is the admission filter. Nil admits every record.
	MagnitudeLimit *float64 `koanf:"magnitude_limit"`

	// TextMagnitudeLimit bounds the reference magnitude of the text output.
	TextMagnitudeLimit float64 `koanf:"text_magnitude_limit"`

	// Catalogues selects the catalogues to ingest. Empty means all of them.
	// Ingestion order is fixed regardless of the order given here.
	Catalogues []string `koanf:"catalogues"`

	// AllowMissingCatalogues skips catalogues whose files are absent.
	AllowMissingCatalogues bool `koanf:"allow_missing_catalogues"`

	// DecodeWorkers bounds the number of catalogues decoded concurrently.
	DecodeWorkers int `koanf:"decode_workers"`

	// QueueSize bounds each catalogue's observation queue.
	QueueSize int `koanf:"queue_size"`

	// ParallaxErrorLimit accepts a parallax only when its error is below this
	// fraction of it.
	ParallaxErrorLimit float64 `koanf:"parallax_error_limit"`

	// SQLitePath enables the SQLite export when set.
	SQLitePath string `koanf:"sqlite_path"`

	// SQLiteBatchSize is the number of rows per insert.
	SQLiteBatchSize int `koanf:"sqlite_batch_size"`

	// MetricsFile receives the Prometheus text exposition after the run.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		DataDir:            "..",
		OutputDir:          "output",
		CompressOutput:     true,
		TextMagnitudeLimit: 12,
		DecodeWorkers:      runtime.NumCPU(),
		QueueSize:          4096,
		ParallaxErrorLimit: 0.3,
		SQLiteBatchSize:    500,
	}
}
