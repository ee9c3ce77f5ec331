package model

import "golang.org/x/text/language"

// TextAlignment represents horizontal text alignment
type TextAlignment int

const (
	AlignLeft TextAlignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// String returns the lowercase name of the alignment, matching the values
// used in document markup ("left", "center", "right", "justify").
func (a TextAlignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// ParseAlignment converts an alignment name to a TextAlignment.
// Unrecognized names map to AlignLeft.
func ParseAlignment(s string) TextAlignment {
	switch s {
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	case "justify":
		return AlignJustify
	default:
		return AlignLeft
	}
}

// TextFormatting describes the visual formatting of a text region. It is an
// immutable value type: every adjustment produces a new instance rather than
// modifying an existing one.
type TextFormatting struct {
	FontFamily      string
	FontSize        float64 // In points, always > 0
	Bold            bool
	Italic          bool
	Underlined      bool
	Color           string // Hex color, e.g. "#000000"
	BackgroundColor string
	Alignment       TextAlignment
}

// WithFontSize returns a copy of the formatting with the given font size.
func (f TextFormatting) WithFontSize(size float64) TextFormatting {
	f.FontSize = size
	return f
}

// TextRegion represents a positioned run of text on a page. Regions are
// created by parsers and are read-only inputs to the analysis and fitting
// stages; merging synthesizes new regions rather than modifying members.
type TextRegion struct {
	// ID uniquely identifies the region within its document
	ID string

	// BBox is the region's bounding box on the page
	BBox BBox

	// Text is the region's text content
	Text string

	// Formatting describes the region's visual formatting
	Formatting TextFormatting

	// Language is a BCP 47 language tag for the text ("en", "de", ...)
	Language string

	// Confidence is the parser's extraction confidence in [0,1]
	Confidence float64

	// ReadingOrder is the region's 0-based position in reading order
	ReadingOrder int
}

// ElementID returns the region's id, satisfying PageElement.
func (r *TextRegion) ElementID() string { return r.ID }

// Bounds returns the region's bounding box, satisfying PageElement.
func (r *TextRegion) Bounds() BBox { return r.BBox }

// LanguageTag returns the region's language as a language.Tag.
// An empty or malformed language string yields language.Und.
func (r *TextRegion) LanguageTag() language.Tag {
	if r.Language == "" {
		return language.Und
	}
	tag, err := language.Parse(r.Language)
	if err != nil {
		return language.Und
	}
	return tag
}

// VisualType represents the classified type of a visual element
type VisualType int

const (
	VisualImage VisualType = iota
	VisualChart
	VisualLine
	VisualDrawing
	VisualTable
	VisualShape
)

// String returns the lowercase name of the visual type.
func (v VisualType) String() string {
	switch v {
	case VisualChart:
		return "chart"
	case VisualLine:
		return "line"
	case VisualDrawing:
		return "drawing"
	case VisualTable:
		return "table"
	case VisualShape:
		return "shape"
	default:
		return "image"
	}
}

// ParseVisualType converts a visual type name to a VisualType.
// Unrecognized names map to VisualImage.
func ParseVisualType(s string) VisualType {
	switch s {
	case "chart":
		return VisualChart
	case "line":
		return VisualLine
	case "drawing":
		return VisualDrawing
	case "table":
		return VisualTable
	case "shape":
		return VisualShape
	default:
		return VisualImage
	}
}

// VisualElement represents a non-text element on a page (image, chart, line,
// drawing, table, or shape). The parser supplies the position, raw content
// and initial type; classification metadata (aspect ratio, area, analysis
// confidence) is filled in by layout analysis.
type VisualElement struct {
	// ID uniquely identifies the element within its document
	ID string

	// Type is the element's (possibly reclassified) visual type
	Type VisualType

	// BBox is the element's bounding box on the page
	BBox BBox

	// Metadata holds classification results keyed by name
	Metadata map[string]any

	// Content is the element's raw content bytes, if available
	Content []byte
}

// ElementID returns the element's id, satisfying PageElement.
func (v *VisualElement) ElementID() string { return v.ID }

// Bounds returns the element's bounding box, satisfying PageElement.
func (v *VisualElement) Bounds() BBox { return v.BBox }

// PageElement is the common interface for anything positioned on a page.
// Both TextRegion and VisualElement satisfy it, so spatial analysis can
// treat them uniformly.
type PageElement interface {
	ElementID() string
	Bounds() BBox
}
