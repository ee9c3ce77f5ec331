// Package model provides the intermediate representation (IR) for document
// translation with layout preservation.
//
// This package defines the data structures shared by every stage of the
// pipeline: parsers produce [DocumentStructure] and [PageStructure] values,
// the layout package consumes them and produces [LayoutAnalysis] snapshots,
// the fitting package turns text regions plus translations into
// [AdjustedRegion] values, and format writers serialize the result.
//
// # Coordinate System
//
// All geometry uses page-local units with the origin at the top-left corner
// of the page. Y increases downward, so [BBox.Top] is the box's Y coordinate
// and [BBox.Bottom] is Y+Height.
//
// # Ownership
//
// TextRegion and VisualElement values are created by parsers and treated as
// read-only by the analysis and fitting stages; the only values those stages
// create are synthesized merged regions (with fresh ids) and AdjustedRegion
// results. Conflict resolution never mutates an AdjustedRegion in place;
// applying a resolution produces a new value.
package model
