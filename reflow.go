// Package reflow provides a fluent API for fitting translated text back
// into the layout of the document it came from.
//
// Basic usage:
//
//	data, err := reflow.Translate(doc, translations).Bytes()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	data, err := reflow.Translate(doc, translations).
//	    WithConfig(cfg).
//	    WithLogger(logger).
//	    Bytes()
//
// Layout analysis is available without reconstructing:
//
//	analyses := reflow.Translate(doc, nil).Analyze()
//
// For advanced use cases, the lower-level layout, fitting and reconstruct
// packages are also available.
package reflow

import (
	"go.uber.org/zap"

	"github.com/tsawler/reflow/config"
	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/reconstruct"
)

// Job is a configured translation job over one document. Methods that set
// options return a new Job, so a partially configured job can be reused.
type Job struct {
	doc          *model.DocumentStructure
	translations reconstruct.Translations
	options      Options
}

// Translate begins a translation job for the given document. The
// translations map page numbers (as decimal strings) to region id →
// translated text; regions without a translation keep their original text.
func Translate(doc *model.DocumentStructure, translations reconstruct.Translations) *Job {
	return &Job{
		doc:          doc,
		translations: translations,
		options:      defaultOptions(),
	}
}

// WithConfig returns a job using the given engine configuration.
func (j *Job) WithConfig(cfg config.Config) *Job {
	opts := j.options.clone()
	opts.config = cfg
	return &Job{doc: j.doc, translations: j.translations, options: opts}
}

// WithLogger returns a job that logs reconstruction progress to the given
// logger.
func (j *Job) WithLogger(log *zap.Logger) *Job {
	opts := j.options.clone()
	opts.logger = log
	return &Job{doc: j.doc, translations: j.translations, options: opts}
}

// Format returns a job that reconstructs into the named format ("pdf",
// "docx", "epub") instead of the document's own. Layout analysis and fitting
// are format-independent, so any document can be emitted in any registered
// format.
func (j *Job) Format(name string) *Job {
	opts := j.options.clone()
	opts.format = name
	return &Job{doc: j.doc, translations: j.translations, options: opts}
}

// Analyze runs layout analysis over every page of the document and returns
// one analysis per page. The document is not modified.
func (j *Job) Analyze() []*model.LayoutAnalysis {
	analyzer := layout.NewAnalyzerWithConfig(j.options.config.Analyzer)
	return analyzer.AnalyzeDocument(j.doc)
}

// Bytes reconstructs the document with the job's translations fitted into
// the original layout and returns the serialized output. The document's
// format must have a registered reconstructor.
func (j *Job) Bytes() ([]byte, error) {
	engine := reconstruct.NewEngineWithConfig(j.options.config.EngineConfig(), j.options.logger)

	doc := j.doc
	if j.options.format != "" && j.options.format != doc.Format {
		redirected := *doc
		redirected.Format = j.options.format
		doc = &redirected
	}

	return engine.ReconstructDocument(doc, j.translations)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	data := reflow.Must(reflow.Translate(doc, translations).Bytes())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
