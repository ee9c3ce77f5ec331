package layout

import (
	"github.com/tsawler/reflow/model"
)

// SpatialConfig holds configuration for spatial relationship calculation
type SpatialConfig struct {
	// ProximityThreshold is the center distance at or below which two
	// non-overlapping elements are classified as adjacent regardless of
	// their primary axis.
	// Default: 10 units
	ProximityThreshold float64 `yaml:"proximity_threshold"`

	// ConfidenceDecayDistance is the distance over which relationship
	// confidence decays from 1.0 toward the floor.
	// Default: 1000 units
	ConfidenceDecayDistance float64 `yaml:"confidence_decay_distance"`

	// MinConfidence is the lower bound for relationship confidence.
	// Default: 0.1
	MinConfidence float64 `yaml:"min_confidence"`
}

// DefaultSpatialConfig returns sensible default configuration
func DefaultSpatialConfig() SpatialConfig {
	return SpatialConfig{
		ProximityThreshold:      10.0,
		ConfidenceDecayDistance: 1000.0,
		MinConfidence:           0.1,
	}
}

// SpatialCalculator classifies the pairwise spatial relationships between
// page elements. Classification is O(n²) over the page's element count,
// which stays in the tens for real documents.
type SpatialCalculator struct {
	config SpatialConfig
}

// NewSpatialCalculator creates a calculator with default configuration
func NewSpatialCalculator() *SpatialCalculator {
	return &SpatialCalculator{config: DefaultSpatialConfig()}
}

// NewSpatialCalculatorWithConfig creates a calculator with custom configuration
func NewSpatialCalculatorWithConfig(config SpatialConfig) *SpatialCalculator {
	return &SpatialCalculator{config: config}
}

// Relationships computes the spatial relationship for every unordered pair
// of elements. Each pair is emitted once, with Element1ID taken from the
// earlier element in iteration order.
func (c *SpatialCalculator) Relationships(elements []model.PageElement) []model.SpatialRelationship {
	var relationships []model.SpatialRelationship

	for i := 0; i < len(elements); i++ {
		for j := i + 1; j < len(elements); j++ {
			relationships = append(relationships, c.classify(elements[i], elements[j]))
		}
	}

	return relationships
}

// classify determines the relationship between two elements. Overlapping
// boxes are reported with zero distance and fixed high confidence; all
// other pairs are classified by the dominant axis of their center offset.
func (c *SpatialCalculator) classify(elem1, elem2 model.PageElement) model.SpatialRelationship {
	box1 := elem1.Bounds()
	box2 := elem2.Bounds()

	if box1.Overlaps(box2) {
		return model.SpatialRelationship{
			Element1ID: elem1.ElementID(),
			Element2ID: elem2.ElementID(),
			Type:       model.RelationOverlaps,
			Distance:   0,
			Confidence: 0.9,
		}
	}

	center1 := box1.Center()
	center2 := box2.Center()
	distance := center1.Distance(center2)

	dx := center2.X - center1.X
	dy := center2.Y - center1.Y

	var relType model.RelationType
	if absFloat(dx) > absFloat(dy) {
		if dx > 0 {
			relType = model.RelationRight
		} else {
			relType = model.RelationLeft
		}
	} else {
		if dy > 0 {
			relType = model.RelationBelow
		} else {
			relType = model.RelationAbove
		}
	}

	// Close elements are adjacent no matter which axis dominates.
	if distance <= c.config.ProximityThreshold {
		relType = model.RelationAdjacent
	}

	confidence := 1.0 - distance/c.config.ConfidenceDecayDistance
	confidence = clampFloat(confidence, c.config.MinConfidence, 1.0)

	return model.SpatialRelationship{
		Element1ID: elem1.ElementID(),
		Element2ID: elem2.ElementID(),
		Type:       relType,
		Distance:   distance,
		Confidence: confidence,
	}
}

// absFloat returns the absolute value of a float64.
func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// clampFloat limits x to the range [lo, hi].
func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
