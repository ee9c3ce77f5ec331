package model

// AdjustmentType identifies the kind of layout adjustment applied to a region
type AdjustmentType int

const (
	FontSizeChange AdjustmentType = iota
	LineSpacingChange
	PositionShift
	BoundaryExpansion
)

// String returns a readable name for the adjustment type.
func (t AdjustmentType) String() string {
	switch t {
	case FontSizeChange:
		return "font_size_change"
	case LineSpacingChange:
		return "line_spacing_change"
	case PositionShift:
		return "position_shift"
	default:
		return "boundary_expansion"
	}
}

// LayoutAdjustment is an audit-trail record of a single change made to a
// region during fitting or conflict resolution. Original and New hold one
// value for font size and line spacing changes, and an (x,y) or
// (width,height) pair for position shifts and boundary expansions.
type LayoutAdjustment struct {
	Type       AdjustmentType
	ElementID  string
	Original   []float64
	New        []float64
	Confidence float64
	Reason     string
}

// AdjustedRegion is the result of fitting translated text into a region.
// Region references the original (never owned or modified); BBox is the
// possibly expanded and repositioned box the fitted text occupies.
type AdjustedRegion struct {
	// Region is the original text region
	Region *TextRegion

	// Text is the fitted (possibly truncated) translated text
	Text string

	// BBox is the region's adjusted bounding box
	BBox BBox

	// Adjustments records every change applied, in order
	Adjustments []LayoutAdjustment

	// FitQuality scores how well the text fits in [0,1]
	FitQuality float64

	// Truncated reports whether the text had to be cut to fit
	Truncated bool

	// TruncatedContent is the text removed by truncation, retained
	// for downstream review; empty when Truncated is false
	TruncatedContent string
}

// FontSize returns the region's effective font size: the newest
// FontSizeChange adjustment if present, otherwise the original size.
func (a *AdjustedRegion) FontSize() float64 {
	for i := len(a.Adjustments) - 1; i >= 0; i-- {
		adj := a.Adjustments[i]
		if adj.Type == FontSizeChange && len(adj.New) > 0 {
			return adj.New[0]
		}
	}
	return a.Region.Formatting.FontSize
}

// Clone returns a copy of the region with its own adjustments slice,
// suitable for modification without affecting the receiver.
func (a *AdjustedRegion) Clone() *AdjustedRegion {
	clone := *a
	clone.Adjustments = make([]LayoutAdjustment, len(a.Adjustments))
	copy(clone.Adjustments, a.Adjustments)
	return &clone
}

// ConflictType classifies a layout conflict between two regions
type ConflictType int

const (
	// ConflictOverlap means two region boxes intersect
	ConflictOverlap ConflictType = iota
	// ConflictSpacing means two region boxes are closer than the
	// minimum allowed gap
	ConflictSpacing
)

// String returns the lowercase name of the conflict type.
func (t ConflictType) String() string {
	if t == ConflictSpacing {
		return "spacing"
	}
	return "overlap"
}

// LayoutConflict describes a detected conflict between exactly two regions.
type LayoutConflict struct {
	ID          string
	Type        ConflictType
	ElementIDs  [2]string
	Severity    float64 // In [0,1]
	Description string
}

// ConflictResolution describes how a conflict should be resolved. Actions
// holds the adjustments to apply to the affected regions; for reposition
// resolutions this is exactly one PositionShift.
type ConflictResolution struct {
	ConflictID         string
	Type               string // Resolution strategy, e.g. "reposition"
	Actions            []LayoutAdjustment
	SuccessProbability float64
}
