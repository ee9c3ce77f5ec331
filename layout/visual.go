package layout

import (
	"bytes"
	"image"

	// Extra codecs for content sniffing; the stdlib registers GIF, JPEG
	// and PNG the same way.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/reflow/model"
)

// ClassifierConfig holds thresholds for visual element classification
type ClassifierConfig struct {
	// LineAspectRatio is the minimum width/height ratio for a thin
	// element to be reclassified as a line.
	// Default: 3.0
	LineAspectRatio float64 `yaml:"line_aspect_ratio"`

	// LineMaxHeight is the maximum height of a line element.
	// Default: 5 units
	LineMaxHeight float64 `yaml:"line_max_height"`

	// ChartAspectRatio and ChartMinArea reclassify wide, large elements
	// as charts.
	// Defaults: 2.0 and 10000 square units
	ChartAspectRatio float64 `yaml:"chart_aspect_ratio"`
	ChartMinArea     float64 `yaml:"chart_min_area"`

	// ImageAspectRange and ImageMinArea reclassify roughly square, large
	// elements as images. The range is symmetric: ratios in
	// [1/ImageAspectRange, ImageAspectRange] qualify.
	// Defaults: 2.0 and 5000 square units
	ImageAspectRange float64 `yaml:"image_aspect_range"`
	ImageMinArea     float64 `yaml:"image_min_area"`

	// AnalysisConfidence is recorded in element metadata for every
	// classified element.
	// Default: 0.8
	AnalysisConfidence float64 `yaml:"analysis_confidence"`
}

// DefaultClassifierConfig returns sensible default configuration
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		LineAspectRatio:    3.0,
		LineMaxHeight:      5.0,
		ChartAspectRatio:   2.0,
		ChartMinArea:       10000.0,
		ImageAspectRange:   2.0,
		ImageMinArea:       5000.0,
		AnalysisConfidence: 0.8,
	}
}

// VisualClassifier refines the type of visual elements using bounding box
// heuristics, and records aspect ratio and area metadata for downstream use.
type VisualClassifier struct {
	config ClassifierConfig
}

// NewVisualClassifier creates a classifier with default configuration
func NewVisualClassifier() *VisualClassifier {
	return &VisualClassifier{config: DefaultClassifierConfig()}
}

// NewVisualClassifierWithConfig creates a classifier with custom configuration
func NewVisualClassifierWithConfig(config ClassifierConfig) *VisualClassifier {
	return &VisualClassifier{config: config}
}

// Classify refines the element's type and fills in classification metadata.
// The parser-assigned type is kept when no heuristic matches. When the
// element carries decodable raster content, its intrinsic pixel dimensions
// are recorded as well.
func (c *VisualClassifier) Classify(elem *model.VisualElement) {
	box := elem.BBox

	aspectRatio := 1.0
	if box.Height > 0 {
		aspectRatio = box.Width / box.Height
	}
	area := box.Area()

	if elem.Metadata == nil {
		elem.Metadata = make(map[string]any)
	}
	elem.Metadata["aspect_ratio"] = aspectRatio
	elem.Metadata["area"] = area
	elem.Metadata["analysis_confidence"] = c.config.AnalysisConfidence

	switch {
	case aspectRatio > c.config.LineAspectRatio && box.Height < c.config.LineMaxHeight:
		elem.Type = model.VisualLine
	case aspectRatio > c.config.ChartAspectRatio && area > c.config.ChartMinArea:
		elem.Type = model.VisualChart
	case aspectRatio >= 1/c.config.ImageAspectRange && aspectRatio <= c.config.ImageAspectRange &&
		area > c.config.ImageMinArea:
		elem.Type = model.VisualImage
	}

	c.sniffContent(elem)
}

// sniffContent decodes the element's content header, if any, and records the
// intrinsic pixel dimensions. Undecodable content is ignored; the bounding
// box heuristics above always take precedence for type classification.
func (c *VisualClassifier) sniffContent(elem *model.VisualElement) {
	if len(elem.Content) == 0 {
		return
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(elem.Content))
	if err != nil {
		return
	}

	elem.Metadata["intrinsic_width"] = float64(cfg.Width)
	elem.Metadata["intrinsic_height"] = float64(cfg.Height)
	elem.Metadata["content_format"] = format
}
