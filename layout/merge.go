package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tsawler/reflow/model"
)

// MergeConfig holds configuration for text region merging and
// column detection
type MergeConfig struct {
	// MaxHorizontalGap is the maximum gap between the right edge of one
	// region and the left edge of the next for them to merge.
	// Default: 20 units
	MaxHorizontalGap float64 `yaml:"max_horizontal_gap"`

	// FontSizeTolerance is the maximum font size difference, in points,
	// between regions that may merge.
	// Default: 2
	FontSizeTolerance float64 `yaml:"font_size_tolerance"`

	// SameLineRatio controls the same-line test: two regions are on the
	// same line when their vertical centers differ by less than this
	// fraction of the smaller region's height.
	// Default: 0.5
	SameLineRatio float64 `yaml:"same_line_ratio"`

	// ColumnBucketWidth is the granularity used to bucket regions by X
	// coordinate during column detection.
	// Default: 100 units
	ColumnBucketWidth float64 `yaml:"column_bucket_width"`
}

// DefaultMergeConfig returns sensible default configuration
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		MaxHorizontalGap:  20.0,
		FontSizeTolerance: 2.0,
		SameLineRatio:     0.5,
		ColumnBucketWidth: 100.0,
	}
}

// Merger joins adjacent same-line text fragments into coherent regions,
// assigns reading order, and detects the page's column structure.
type Merger struct {
	config MergeConfig
}

// NewMerger creates a merger with default configuration
func NewMerger() *Merger {
	return &Merger{config: DefaultMergeConfig()}
}

// NewMergerWithConfig creates a merger with custom configuration
func NewMergerWithConfig(config MergeConfig) *Merger {
	return &Merger{config: config}
}

// Merge combines fragments that belong to the same line into single regions,
// then sorts the result top-to-bottom, left-to-right and assigns each region
// its 0-based reading order index. Any reading order supplied by the parser
// is overwritten. Input regions are never modified; a merged group produces
// a freshly synthesized region with a new id.
func (m *Merger) Merge(regions []*model.TextRegion) []*model.TextRegion {
	if len(regions) == 0 {
		return nil
	}

	// Work on a sorted copy so grouping sees fragments in layout order.
	sorted := make([]*model.TextRegion, len(regions))
	copy(sorted, regions)
	sortByPosition(sorted)

	var merged []*model.TextRegion
	group := []*model.TextRegion{sorted[0]}

	for _, region := range sorted[1:] {
		if m.shouldMerge(group[len(group)-1], region) {
			group = append(group, region)
		} else {
			merged = append(merged, m.mergeGroup(group))
			group = []*model.TextRegion{region}
		}
	}
	merged = append(merged, m.mergeGroup(group))

	sortByPosition(merged)
	for i, region := range merged {
		region.ReadingOrder = i
	}

	return merged
}

// ReadingOrder returns the region ids ordered top-to-bottom,
// left-to-right.
func (m *Merger) ReadingOrder(regions []*model.TextRegion) []string {
	sorted := make([]*model.TextRegion, len(regions))
	copy(sorted, regions)
	sortByPosition(sorted)

	order := make([]string, len(sorted))
	for i, region := range sorted {
		order[i] = region.ID
	}
	return order
}

// DetectColumns groups region ids into columns by bucketing their X
// coordinates. Buckets are returned left to right; ids within a bucket keep
// their reading order.
func (m *Merger) DetectColumns(regions []*model.TextRegion) [][]string {
	if len(regions) == 0 {
		return nil
	}

	bucketWidth := m.config.ColumnBucketWidth
	if bucketWidth <= 0 {
		bucketWidth = DefaultMergeConfig().ColumnBucketWidth
	}

	buckets := make(map[int][]string)
	for _, region := range regions {
		key := int(math.Round(region.BBox.X / bucketWidth))
		buckets[key] = append(buckets[key], region.ID)
	}

	keys := make([]int, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	columns := make([][]string, 0, len(keys))
	for _, key := range keys {
		columns = append(columns, buckets[key])
	}
	return columns
}

// shouldMerge reports whether next can join the group ending with prev:
// the regions must sit on the same line, the horizontal gap between them
// must be small, and their fonts must match.
func (m *Merger) shouldMerge(prev, next *model.TextRegion) bool {
	box1 := prev.BBox
	box2 := next.BBox

	minHeight := box1.Height
	if box2.Height < minHeight {
		minHeight = box2.Height
	}
	sameLine := absFloat(box1.Center().Y-box2.Center().Y) < minHeight*m.config.SameLineRatio

	gap := absFloat(box1.Right() - box2.Left())
	closeHorizontally := gap < m.config.MaxHorizontalGap

	sameFont := prev.Formatting.FontFamily == next.Formatting.FontFamily &&
		absFloat(prev.Formatting.FontSize-next.Formatting.FontSize) < m.config.FontSizeTolerance

	return sameLine && closeHorizontally && sameFont
}

// mergeGroup combines a group of regions into one. Single-member groups are
// returned unchanged. The synthesized region takes the union bounding box,
// the members' texts joined by single spaces in order, the first member's
// formatting and language, and the arithmetic mean of member confidences.
func (m *Merger) mergeGroup(group []*model.TextRegion) *model.TextRegion {
	if len(group) == 1 {
		copied := *group[0]
		return &copied
	}

	box := group[0].BBox
	texts := make([]string, 0, len(group))
	totalConfidence := 0.0
	for _, region := range group {
		box = box.Union(region.BBox)
		texts = append(texts, region.Text)
		totalConfidence += region.Confidence
	}

	first := group[0]
	return &model.TextRegion{
		ID:           uuid.NewString(),
		BBox:         box,
		Text:         strings.Join(texts, " "),
		Formatting:   first.Formatting,
		Language:     first.Language,
		Confidence:   totalConfidence / float64(len(group)),
		ReadingOrder: first.ReadingOrder,
	}
}

// sortByPosition orders regions top-to-bottom, then left-to-right.
func sortByPosition(regions []*model.TextRegion) {
	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].BBox.Y != regions[j].BBox.Y {
			return regions[i].BBox.Y < regions[j].BBox.Y
		}
		return regions[i].BBox.X < regions[j].BBox.X
	})
}
