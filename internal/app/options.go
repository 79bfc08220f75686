package service

import "github.com/dcf21/star-charter/pkg/logger"

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataDir overrides the source catalogue root.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.cfg.DataDir = dir
		}
	}
}

// WithOutputDir overrides the output directory.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.cfg.OutputDir = dir
		}
	}
}

// WithMagnitudeLimit sets the admission filter.
func WithMagnitudeLimit(limit float64) Option {
	return func(s *Service) {
		s.cfg.MagnitudeLimit = &limit
	}
}

// WithCatalogues restricts the run to the named catalogues.
func WithCatalogues(names ...string) Option {
	return func(s *Service) {
		s.cfg.Catalogues = append([]string(nil), names...)
	}
}
