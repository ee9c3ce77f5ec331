package fitting

import (
	"math"
	"strings"

	"github.com/tsawler/reflow/model"
)

// Text measurement heuristics. These are named constants rather than real
// font metrics: average glyph width and line height are taken as fixed
// fractions of the font size, and line breaking assumes an average word
// length. A text-shaping backend can replace MeasureText wholesale.
const (
	// CharWidthFactor estimates average glyph width as a fraction of
	// the font size.
	CharWidthFactor = 0.6

	// LineHeightFactor estimates line height as a multiple of the
	// font size.
	LineHeightFactor = 1.2

	// AvgWordChars is the assumed average word length, in characters,
	// used to estimate words per line.
	AvgWordChars = 10
)

// TextMetrics holds estimated measurements for a text with a given
// formatting.
type TextMetrics struct {
	CharWidth       float64 // Estimated average glyph width
	LineHeight      float64 // Estimated line height
	WordCount       int
	CharCount       int     // In runes, not bytes
	EstimatedWidth  float64 // Single-line width of the full text
	EstimatedHeight float64 // Height after estimated line wrapping
}

// MeasureText estimates the space text occupies when rendered with the
// given formatting. Empty text yields all-zero metrics.
func MeasureText(text string, formatting model.TextFormatting) TextMetrics {
	if text == "" {
		return TextMetrics{}
	}

	charWidth := formatting.FontSize * CharWidthFactor
	lineHeight := formatting.FontSize * LineHeightFactor

	charCount := len([]rune(text))
	wordCount := len(strings.Fields(text))

	estimatedWidth := float64(charCount) * charWidth

	wordsPerLine := math.Max(1, math.Floor(estimatedWidth/(charWidth*AvgWordChars)))
	estimatedLines := math.Max(1, math.Ceil(float64(wordCount)/wordsPerLine))

	return TextMetrics{
		CharWidth:       charWidth,
		LineHeight:      lineHeight,
		WordCount:       wordCount,
		CharCount:       charCount,
		EstimatedWidth:  estimatedWidth,
		EstimatedHeight: estimatedLines * lineHeight,
	}
}
