package fitting

import (
	"fmt"
	"math"

	"github.com/tsawler/reflow/model"
)

// Config holds configuration for the text fitting engine
type Config struct {
	// MinFontSize and MaxFontSize bound the font size after adjustment.
	// Defaults: 8 and 72 points
	MinFontSize float64 `yaml:"min_font_size"`
	MaxFontSize float64 `yaml:"max_font_size"`

	// MaxFontReduction is the largest allowed font size reduction, as a
	// fraction of the original size.
	// Default: 0.3
	MaxFontReduction float64 `yaml:"max_font_reduction"`

	// MaxExpansionRatio caps bounding box growth per axis.
	// Default: 1.2
	MaxExpansionRatio float64 `yaml:"max_expansion_ratio"`

	// MinorOverflowRatio is the width/height overflow up to which a font
	// shrink alone is enough.
	// Default: 1.3
	MinorOverflowRatio float64 `yaml:"minor_overflow_ratio"`

	// MajorOverflowRatio is the overflow up to which a font shrink plus
	// tighter line spacing is enough; beyond it the text is truncated.
	// Default: 2.0
	MajorOverflowRatio float64 `yaml:"major_overflow_ratio"`

	// TruncationKeepRatio is the fraction of the original text's length
	// the truncated translation may keep.
	// Default: 0.8
	TruncationKeepRatio float64 `yaml:"truncation_keep_ratio"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		MinFontSize:         8.0,
		MaxFontSize:         72.0,
		MaxFontReduction:    0.3,
		MaxExpansionRatio:   1.2,
		MinorOverflowRatio:  1.3,
		MajorOverflowRatio:  2.0,
		TruncationKeepRatio: 0.8,
	}
}

// Fixed line spacing reductions applied by the tighter strategies.
const (
	spacingTightenMinor = -0.1
	spacingTightenMax   = -0.2
)

// ellipsis is appended to truncated text, replacing the last kept characters.
const ellipsis = "..."

// minRegionDimension guards ratio math against zero or negative region
// dimensions on malformed input boxes.
const minRegionDimension = 1e-6

// Engine fits translated text into the bounding boxes of the original
// regions it replaces. The original region is never modified.
type Engine struct {
	config Config
}

// NewEngine creates a fitting engine with default configuration
func NewEngine() *Engine {
	return &Engine{config: DefaultConfig()}
}

// NewEngineWithConfig creates a fitting engine with custom configuration
func NewEngineWithConfig(config Config) *Engine {
	return &Engine{config: config}
}

// result holds the outcome of strategy selection before it is applied.
type result struct {
	fittedText        string
	fontSizeAdjust    float64 // Fractional, e.g. -0.2 for a 20% shrink
	lineSpacingAdjust float64
	truncated         bool
	truncatedContent  string
	fitScore          float64
}

// Fit fits translated text into a text region, producing an adjusted region
// with the fitted text, a possibly expanded bounding box, and an audit trail
// of every adjustment made. The region's position is never changed here;
// only conflict resolution moves regions.
func (e *Engine) Fit(region *model.TextRegion, translated string) *model.AdjustedRegion {
	originalMetrics := MeasureText(region.Text, region.Formatting)
	translatedMetrics := MeasureText(translated, region.Formatting)

	res := e.chooseStrategy(region, originalMetrics, translatedMetrics, translated)
	return e.apply(region, res)
}

// chooseStrategy picks the least invasive strategy that makes the
// translation fit, based on how far its estimated size overflows the region.
func (e *Engine) chooseStrategy(
	region *model.TextRegion,
	originalMetrics, translatedMetrics TextMetrics,
	translated string,
) result {
	width := region.BBox.Width
	height := region.BBox.Height

	var widthRatio, heightRatio float64
	degenerate := false

	if width < minRegionDimension || height < minRegionDimension {
		// A malformed box cannot hold any text; empty translations
		// still fit trivially.
		degenerate = translatedMetrics.CharCount > 0
	} else {
		widthRatio = translatedMetrics.EstimatedWidth / width
		heightRatio = translatedMetrics.EstimatedHeight / height
	}

	switch {
	case !degenerate && widthRatio <= 1.0 && heightRatio <= 1.0:
		return result{fittedText: translated, fitScore: 1.0}

	case !degenerate && widthRatio <= e.config.MinorOverflowRatio && heightRatio <= e.config.MinorOverflowRatio:
		return result{
			fittedText:     translated,
			fontSizeAdjust: e.shrinkFor(widthRatio, heightRatio),
			fitScore:       0.8,
		}

	case !degenerate && widthRatio <= e.config.MajorOverflowRatio && heightRatio <= e.config.MajorOverflowRatio:
		return result{
			fittedText:        translated,
			fontSizeAdjust:    e.shrinkFor(widthRatio, heightRatio),
			lineSpacingAdjust: spacingTightenMinor,
			fitScore:          0.6,
		}

	default:
		res := result{
			fittedText:        translated,
			fontSizeAdjust:    -e.config.MaxFontReduction,
			lineSpacingAdjust: spacingTightenMax,
			truncated:         true,
			fitScore:          0.3,
		}
		res.fittedText, res.truncatedContent = e.truncate(translated, originalMetrics.CharCount)
		return res
	}
}

// shrinkFor computes the fractional font reduction needed to counter the
// worse of the two overflow ratios, capped at the configured maximum.
func (e *Engine) shrinkFor(widthRatio, heightRatio float64) float64 {
	overflow := math.Max(widthRatio, heightRatio)
	return -math.Min(e.config.MaxFontReduction, 1.0-1.0/overflow)
}

// truncate cuts the translation down to a fraction of the original text's
// length, replacing the tail with an ellipsis. The removed remainder is
// returned so callers can surface it for review instead of losing it.
func (e *Engine) truncate(translated string, originalChars int) (fitted, remainder string) {
	maxChars := int(math.Floor(float64(originalChars) * e.config.TruncationKeepRatio))

	runes := []rune(translated)
	if len(runes) <= maxChars {
		return translated, ""
	}

	keep := maxChars - len(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + ellipsis, string(runes[keep:])
}

// apply turns a strategy result into an AdjustedRegion, recording every
// nonzero adjustment.
func (e *Engine) apply(region *model.TextRegion, res result) *model.AdjustedRegion {
	var adjustments []model.LayoutAdjustment
	formatting := region.Formatting

	if res.fontSizeAdjust != 0 {
		originalSize := region.Formatting.FontSize
		newSize := clamp(originalSize*(1+res.fontSizeAdjust), e.config.MinFontSize, e.config.MaxFontSize)
		formatting = formatting.WithFontSize(newSize)

		adjustments = append(adjustments, model.LayoutAdjustment{
			Type:       model.FontSizeChange,
			ElementID:  region.ID,
			Original:   []float64{originalSize},
			New:        []float64{newSize},
			Confidence: 0.9,
			Reason:     fmt.Sprintf("font size adjusted by %.1f%%", res.fontSizeAdjust*100),
		})
	}

	if res.lineSpacingAdjust != 0 {
		adjustments = append(adjustments, model.LayoutAdjustment{
			Type:       model.LineSpacingChange,
			ElementID:  region.ID,
			Original:   []float64{1.0},
			New:        []float64{1.0 + res.lineSpacingAdjust},
			Confidence: 0.8,
			Reason:     fmt.Sprintf("line spacing adjusted by %.1f%%", res.lineSpacingAdjust*100),
		})
	}

	newBox := e.adjustedBBox(region.BBox, res.fittedText, formatting)

	if newBox.Width != region.BBox.Width || newBox.Height != region.BBox.Height {
		adjustments = append(adjustments, model.LayoutAdjustment{
			Type:       model.BoundaryExpansion,
			ElementID:  region.ID,
			Original:   []float64{region.BBox.Width, region.BBox.Height},
			New:        []float64{newBox.Width, newBox.Height},
			Confidence: 0.7,
			Reason:     "bounding box expanded to fit text",
		})
	}

	return &model.AdjustedRegion{
		Region:           region,
		Text:             res.fittedText,
		BBox:             newBox,
		Adjustments:      adjustments,
		FitQuality:       res.fitScore,
		Truncated:        res.truncated,
		TruncatedContent: res.truncatedContent,
	}
}

// adjustedBBox recomputes the box the fitted text needs under its final
// formatting, expanding each axis independently up to the configured cap.
// The position never changes here.
func (e *Engine) adjustedBBox(original model.BBox, fittedText string, formatting model.TextFormatting) model.BBox {
	metrics := MeasureText(fittedText, formatting)

	newBox := original

	if metrics.EstimatedWidth > original.Width && original.Width > 0 {
		ratio := math.Min(e.config.MaxExpansionRatio, metrics.EstimatedWidth/original.Width)
		newBox.Width = original.Width * ratio
	}

	if metrics.EstimatedHeight > original.Height && original.Height > 0 {
		ratio := math.Min(e.config.MaxExpansionRatio, metrics.EstimatedHeight/original.Height)
		newBox.Height = original.Height * ratio
	}

	return newBox
}

// clamp limits x to the range [lo, hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
