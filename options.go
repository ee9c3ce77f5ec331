package reflow

import (
	"go.uber.org/zap"

	"github.com/tsawler/reflow/config"
)

// Options holds configuration for a translation job.
type Options struct {
	// Engine thresholds for analysis, fitting and conflict resolution
	config config.Config

	// Logger used by the reconstruction engine; nil disables logging
	logger *zap.Logger

	// Output format override; empty means the document's own format
	format string
}

// defaultOptions returns the default job options.
func defaultOptions() Options {
	return Options{
		config: config.Default(),
		logger: nil,
		format: "",
	}
}

// clone creates a copy of Options.
func (o Options) clone() Options {
	return Options{
		config: o.config,
		logger: o.logger,
		format: o.format,
	}
}
