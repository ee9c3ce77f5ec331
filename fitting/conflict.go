package fitting

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/tsawler/reflow/model"
)

// ConflictConfig holds configuration for conflict detection and resolution
type ConflictConfig struct {
	// MinSpacing is the smallest allowed gap between two region boxes;
	// closer regions raise a spacing conflict, and resolutions place the
	// moved region this far from its neighbor.
	// Default: 5 units
	MinSpacing float64 `yaml:"min_spacing"`

	// OverlapMargin is the extra gap left below the reference region
	// when repositioning to resolve an overlap.
	// Default: 5 units
	OverlapMargin float64 `yaml:"overlap_margin"`

	// MinSeverity is the lower bound for spacing conflict severity.
	// Default: 0.1
	MinSeverity float64 `yaml:"min_severity"`
}

// DefaultConflictConfig returns sensible default configuration
func DefaultConflictConfig() ConflictConfig {
	return ConflictConfig{
		MinSpacing:    5.0,
		OverlapMargin: 5.0,
		MinSeverity:   0.1,
	}
}

// ConflictEngine detects overlap and under-spacing conflicts between the
// fitted regions of a page, and produces reposition resolutions.
//
// Detection and resolution run as a single pass: resolutions are computed
// from the conflicts found once, and applying them does not trigger
// re-detection. A moved region can therefore still conflict with another
// neighbor; residual conflicts are observable through a fresh DetectConflicts
// call but are not resolved automatically.
type ConflictEngine struct {
	config ConflictConfig
}

// NewConflictEngine creates a conflict engine with default configuration
func NewConflictEngine() *ConflictEngine {
	return &ConflictEngine{config: DefaultConflictConfig()}
}

// NewConflictEngineWithConfig creates a conflict engine with custom configuration
func NewConflictEngineWithConfig(config ConflictConfig) *ConflictEngine {
	return &ConflictEngine{config: config}
}

// DetectConflicts checks every unordered pair of regions once and reports
// overlaps and spacing violations. A region never conflicts with itself and
// no pair is reported twice.
func (c *ConflictEngine) DetectConflicts(regions []*model.AdjustedRegion) []model.LayoutConflict {
	var conflicts []model.LayoutConflict

	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			if conflict, ok := c.checkPair(regions[i], regions[j]); ok {
				conflicts = append(conflicts, conflict)
			}
		}
	}

	return conflicts
}

// checkPair reports the conflict between two regions, if any. Overlap wins
// over spacing; regions separated by at least MinSpacing do not conflict.
func (c *ConflictEngine) checkPair(region1, region2 *model.AdjustedRegion) (model.LayoutConflict, bool) {
	box1 := region1.BBox
	box2 := region2.BBox

	if box1.Overlaps(box2) {
		overlapArea := box1.Intersection(box2).Area()

		// Severity is the overlap as a fraction of the smaller region.
		severity := 0.0
		if minArea := math.Min(box1.Area(), box2.Area()); minArea > 0 {
			severity = clamp(overlapArea/minArea, 0, 1)
		}

		return model.LayoutConflict{
			ID:          uuid.NewString(),
			Type:        model.ConflictOverlap,
			ElementIDs:  [2]string{region1.Region.ID, region2.Region.ID},
			Severity:    severity,
			Description: fmt.Sprintf("regions overlap by %.1f square units", overlapArea),
		}, true
	}

	gap := minimumGap(box1, box2)
	if gap < c.config.MinSpacing {
		severity := clamp(1.0-gap/c.config.MinSpacing, c.config.MinSeverity, 1.0)

		return model.LayoutConflict{
			ID:          uuid.NewString(),
			Type:        model.ConflictSpacing,
			ElementIDs:  [2]string{region1.Region.ID, region2.Region.ID},
			Severity:    severity,
			Description: fmt.Sprintf("regions too close: %.1f units apart", gap),
		}, true
	}

	return model.LayoutConflict{}, false
}

// minimumGap estimates the separation between two boxes: the center-to-center
// distance minus the boxes' half extents along each axis, clamped at zero per
// axis and combined as a Euclidean norm. Overlapping boxes yield zero.
func minimumGap(box1, box2 model.BBox) float64 {
	center1 := box1.Center()
	center2 := box2.Center()

	dx := math.Abs(center2.X-center1.X) - (box1.Width+box2.Width)/2
	dy := math.Abs(center2.Y-center1.Y) - (box1.Height+box2.Height)/2

	dx = math.Max(0, dx)
	dy = math.Max(0, dy)

	return math.Sqrt(dx*dx + dy*dy)
}

// ResolveConflicts produces a reposition resolution for each conflict whose
// regions are present in the given list. Conflicts referencing unknown
// region ids are skipped.
func (c *ConflictEngine) ResolveConflicts(
	conflicts []model.LayoutConflict,
	regions []*model.AdjustedRegion,
) []model.ConflictResolution {
	byID := make(map[string]*model.AdjustedRegion, len(regions))
	for _, region := range regions {
		byID[region.Region.ID] = region
	}

	var resolutions []model.ConflictResolution
	for _, conflict := range conflicts {
		region1 := byID[conflict.ElementIDs[0]]
		region2 := byID[conflict.ElementIDs[1]]
		if region1 == nil || region2 == nil {
			continue
		}

		if conflict.Type == model.ConflictOverlap {
			resolutions = append(resolutions, c.resolveOverlap(conflict, region1, region2))
		} else {
			resolutions = append(resolutions, c.resolveSpacing(conflict, region1, region2))
		}
	}

	return resolutions
}

// pickTarget chooses which region moves: the one with the lower fit quality,
// since its placement is already compromised. On a tie the second region
// moves, keeping the choice deterministic.
func pickTarget(region1, region2 *model.AdjustedRegion) (target, reference *model.AdjustedRegion) {
	if region1.FitQuality < region2.FitQuality {
		return region1, region2
	}
	return region2, region1
}

// resolveOverlap moves the target directly below the reference region with a
// fixed margin, keeping its X coordinate.
func (c *ConflictEngine) resolveOverlap(
	conflict model.LayoutConflict,
	region1, region2 *model.AdjustedRegion,
) model.ConflictResolution {
	target, reference := pickTarget(region1, region2)

	newY := reference.BBox.Bottom() + c.config.OverlapMargin

	action := model.LayoutAdjustment{
		Type:       model.PositionShift,
		ElementID:  target.Region.ID,
		Original:   []float64{target.BBox.X, target.BBox.Y},
		New:        []float64{target.BBox.X, newY},
		Confidence: 0.8,
		Reason:     "repositioned to resolve overlap conflict",
	}

	return model.ConflictResolution{
		ConflictID:         conflict.ID,
		Type:               "reposition",
		Actions:            []model.LayoutAdjustment{action},
		SuccessProbability: 0.8,
	}
}

// resolveSpacing pushes the target away from the reference along the Y axis,
// in whichever direction it already lies, until the minimum spacing holds.
func (c *ConflictEngine) resolveSpacing(
	conflict model.LayoutConflict,
	region1, region2 *model.AdjustedRegion,
) model.ConflictResolution {
	target, reference := pickTarget(region1, region2)

	var newY float64
	if target.BBox.Y < reference.BBox.Y {
		newY = reference.BBox.Y - target.BBox.Height - c.config.MinSpacing
	} else {
		newY = reference.BBox.Bottom() + c.config.MinSpacing
	}

	action := model.LayoutAdjustment{
		Type:       model.PositionShift,
		ElementID:  target.Region.ID,
		Original:   []float64{target.BBox.X, target.BBox.Y},
		New:        []float64{target.BBox.X, newY},
		Confidence: 0.9,
		Reason:     "repositioned to maintain proper spacing",
	}

	return model.ConflictResolution{
		ConflictID:         conflict.ID,
		Type:               "reposition",
		Actions:            []model.LayoutAdjustment{action},
		SuccessProbability: 0.9,
	}
}

// ApplyResolution applies a resolution's actions to a single region and
// returns the updated value; the input region is not modified. Position
// shifts move the box, boundary expansions resize it, and every action is
// appended to the returned region's audit trail.
func ApplyResolution(region *model.AdjustedRegion, actions []model.LayoutAdjustment) *model.AdjustedRegion {
	updated := region.Clone()

	for _, action := range actions {
		if action.ElementID != region.Region.ID {
			continue
		}

		switch action.Type {
		case model.PositionShift:
			if len(action.New) == 2 {
				updated.BBox.X = action.New[0]
				updated.BBox.Y = action.New[1]
			}
		case model.BoundaryExpansion:
			if len(action.New) == 2 {
				updated.BBox.Width = action.New[0]
				updated.BBox.Height = action.New[1]
			}
		}

		updated.Adjustments = append(updated.Adjustments, action)
	}

	return updated
}

// ApplyResolutions applies every resolution to the affected regions and
// returns the region list with updated entries, preserving order. Regions
// are replaced by id, so repeated resolutions against the same region
// accumulate instead of overwriting each other.
func ApplyResolutions(
	regions []*model.AdjustedRegion,
	resolutions []model.ConflictResolution,
) []*model.AdjustedRegion {
	index := make(map[string]int, len(regions))
	updated := make([]*model.AdjustedRegion, len(regions))
	for i, region := range regions {
		index[region.Region.ID] = i
		updated[i] = region
	}

	for _, resolution := range resolutions {
		for _, action := range resolution.Actions {
			i, ok := index[action.ElementID]
			if !ok {
				continue
			}
			updated[i] = ApplyResolution(updated[i], []model.LayoutAdjustment{action})
		}
	}

	return updated
}
