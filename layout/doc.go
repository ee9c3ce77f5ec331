// Package layout provides per-page layout analysis for document translation.
//
// The analysis pipeline runs four stages over a parsed page: text region
// merging (joining same-line fragments into coherent regions and assigning
// reading order), visual element classification, pairwise spatial
// relationship calculation, and column detection. The [Analyzer] orchestrates
// all stages and produces an immutable [model.LayoutAnalysis] snapshot per
// page, including a layout complexity score used by downstream quality
// assessment.
//
// All thresholds are plain configuration values; each component has its own
// config struct with a Default*Config constructor.
package layout
