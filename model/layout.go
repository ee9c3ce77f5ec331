package model

// RelationType classifies the spatial relationship between two page elements
type RelationType int

const (
	RelationAbove RelationType = iota
	RelationBelow
	RelationLeft
	RelationRight
	RelationOverlaps
	RelationAdjacent
)

// String returns the lowercase name of the relation type.
func (r RelationType) String() string {
	switch r {
	case RelationAbove:
		return "above"
	case RelationBelow:
		return "below"
	case RelationLeft:
		return "left"
	case RelationRight:
		return "right"
	case RelationOverlaps:
		return "overlaps"
	default:
		return "adjacent"
	}
}

// SpatialRelationship describes how two page elements relate spatially.
// Each unordered pair of elements appears at most once; Element1ID always
// comes before Element2ID in the page's element iteration order.
type SpatialRelationship struct {
	Element1ID string
	Element2ID string
	Type       RelationType
	Distance   float64 // Center-to-center distance; 0 for overlapping elements
	Confidence float64 // In [0,1], decaying with distance
}

// LayoutAnalysis is an immutable per-page snapshot of layout structure,
// built once per analysis pass.
type LayoutAnalysis struct {
	// PageNumber is the analyzed page's 1-indexed number
	PageNumber int

	// TextRegions are the page's (possibly merged) text regions
	TextRegions []*TextRegion

	// VisualElements are the page's classified visual elements
	VisualElements []*VisualElement

	// Relationships are all pairwise spatial relationships over
	// text regions and visual elements
	Relationships []SpatialRelationship

	// ReadingOrder is the ordered sequence of text region ids
	ReadingOrder []string

	// Columns groups text region ids into detected columns,
	// ordered left to right
	Columns [][]string

	// Complexity is the page's layout complexity score in [0,1]
	Complexity float64
}

// RelationshipCount returns the number of relationships of the given type.
func (a *LayoutAnalysis) RelationshipCount(t RelationType) int {
	count := 0
	for _, rel := range a.Relationships {
		if rel.Type == t {
			count++
		}
	}
	return count
}
