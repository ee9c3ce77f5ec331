package layout

import (
	"github.com/tsawler/reflow/model"
)

// AnalyzerConfig holds configuration options for the layout analyzer.
// Each analysis component has its own sub-configuration.
type AnalyzerConfig struct {
	// Spatial relationship calculation configuration
	SpatialConfig SpatialConfig `yaml:"spatial"`

	// Text region merging and column detection configuration
	MergeConfig MergeConfig `yaml:"merge"`

	// Visual element classification configuration
	ClassifierConfig ClassifierConfig `yaml:"classifier"`

	// Complexity scoring configuration
	ComplexityConfig ComplexityConfig `yaml:"complexity"`
}

// DefaultAnalyzerConfig returns a configuration with sensible defaults for
// typical document layout analysis.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		SpatialConfig:    DefaultSpatialConfig(),
		MergeConfig:      DefaultMergeConfig(),
		ClassifierConfig: DefaultClassifierConfig(),
		ComplexityConfig: DefaultComplexityConfig(),
	}
}

// ComplexityConfig holds the normalization counts and weights used to score
// page layout complexity.
type ComplexityConfig struct {
	// ElementSaturation is the element count at which the element factor
	// reaches 1.0. Default: 50
	ElementSaturation float64 `yaml:"element_saturation"`

	// RelationshipSaturation is the relationship count at which the
	// relationship factor reaches 1.0. Default: 100
	RelationshipSaturation float64 `yaml:"relationship_saturation"`

	// OverlapSaturation is the overlap count at which the overlap factor
	// reaches 1.0. Default: 10
	OverlapSaturation float64 `yaml:"overlap_saturation"`

	// ElementWeight, RelationshipWeight and OverlapWeight combine the
	// three factors. Defaults: 0.4, 0.3, 0.3
	ElementWeight      float64 `yaml:"element_weight"`
	RelationshipWeight float64 `yaml:"relationship_weight"`
	OverlapWeight      float64 `yaml:"overlap_weight"`
}

// DefaultComplexityConfig returns sensible default configuration
func DefaultComplexityConfig() ComplexityConfig {
	return ComplexityConfig{
		ElementSaturation:      50.0,
		RelationshipSaturation: 100.0,
		OverlapSaturation:      10.0,
		ElementWeight:          0.4,
		RelationshipWeight:     0.3,
		OverlapWeight:          0.3,
	}
}

// Analyzer orchestrates per-page layout analysis: region merging, visual
// element classification, spatial relationship calculation, reading order
// and column detection, and complexity scoring.
type Analyzer struct {
	config AnalyzerConfig

	merger     *Merger
	classifier *VisualClassifier
	spatial    *SpatialCalculator
}

// NewAnalyzer creates a layout analyzer with default configuration.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultAnalyzerConfig())
}

// NewAnalyzerWithConfig creates a layout analyzer with the specified configuration.
func NewAnalyzerWithConfig(config AnalyzerConfig) *Analyzer {
	return &Analyzer{
		config:     config,
		merger:     NewMergerWithConfig(config.MergeConfig),
		classifier: NewVisualClassifierWithConfig(config.ClassifierConfig),
		spatial:    NewSpatialCalculatorWithConfig(config.SpatialConfig),
	}
}

// AnalyzeDocument analyzes every page of a document and returns one
// LayoutAnalysis per page, in page order.
func (a *Analyzer) AnalyzeDocument(doc *model.DocumentStructure) []*model.LayoutAnalysis {
	analyses := make([]*model.LayoutAnalysis, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		analyses = append(analyses, a.AnalyzePage(page))
	}
	return analyses
}

// AnalyzePage performs complete layout analysis on a single page. The page
// itself is not modified: merged regions are synthesized values, and visual
// elements are classified on copies. An empty page yields empty collections
// and a complexity of exactly 0.
func (a *Analyzer) AnalyzePage(page *model.PageStructure) *model.LayoutAnalysis {
	regions := a.merger.Merge(page.TextRegions)

	elements := make([]*model.VisualElement, 0, len(page.VisualElements))
	for _, elem := range page.VisualElements {
		copied := *elem
		a.classifier.Classify(&copied)
		elements = append(elements, &copied)
	}

	all := make([]model.PageElement, 0, len(regions)+len(elements))
	for _, r := range regions {
		all = append(all, r)
	}
	for _, v := range elements {
		all = append(all, v)
	}
	relationships := a.spatial.Relationships(all)

	readingOrder := a.merger.ReadingOrder(regions)
	columns := a.merger.DetectColumns(regions)

	return &model.LayoutAnalysis{
		PageNumber:     page.Number,
		TextRegions:    regions,
		VisualElements: elements,
		Relationships:  relationships,
		ReadingOrder:   readingOrder,
		Columns:        columns,
		Complexity:     a.complexity(regions, elements, relationships),
	}
}

// complexity scores the page in [0,1] by combining element count,
// relationship count and overlap count, each normalized against its
// saturation point.
func (a *Analyzer) complexity(
	regions []*model.TextRegion,
	elements []*model.VisualElement,
	relationships []model.SpatialRelationship,
) float64 {
	cfg := a.config.ComplexityConfig

	elementFactor := minFloat(1.0, float64(len(regions)+len(elements))/cfg.ElementSaturation)
	relationshipFactor := minFloat(1.0, float64(len(relationships))/cfg.RelationshipSaturation)

	overlapCount := 0
	for _, rel := range relationships {
		if rel.Type == model.RelationOverlaps {
			overlapCount++
		}
	}
	overlapFactor := minFloat(1.0, float64(overlapCount)/cfg.OverlapSaturation)

	total := elementFactor*cfg.ElementWeight +
		relationshipFactor*cfg.RelationshipWeight +
		overlapFactor*cfg.OverlapWeight

	return minFloat(1.0, total)
}

// minFloat returns the smaller of two float64 values.
func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
