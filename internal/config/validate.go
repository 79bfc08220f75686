package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/dcf21/star-charter/internal/adapters/sources"
)

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir must not be empty"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir must not be empty"))
	}
	if c.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("queue_size must be positive, got %d", c.QueueSize))
	}
	if c.DecodeWorkers <= 0 {
		errs = append(errs, fmt.Errorf("decode_workers must be positive, got %d", c.DecodeWorkers))
	}
	if c.ParallaxErrorLimit <= 0 || c.ParallaxErrorLimit > 1 {
		errs = append(errs, fmt.Errorf("parallax_error_limit must be in (0, 1], got %g", c.ParallaxErrorLimit))
	}
	if c.MagnitudeLimit != nil && !finite(*c.MagnitudeLimit) {
		errs = append(errs, errors.New("magnitude_limit must be finite"))
	}
	if !finite(c.TextMagnitudeLimit) {
		errs = append(errs, errors.New("text_magnitude_limit must be finite"))
	}
	if c.SQLiteBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("sqlite_batch_size must be positive, got %d", c.SQLiteBatchSize))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	for _, name := range c.Catalogues {
		if _, ok := sources.Lookup(name); !ok {
			errs = append(errs, fmt.Errorf("unknown catalogue %q", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
