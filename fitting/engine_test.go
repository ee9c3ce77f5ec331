package fitting

import (
	"math"
	"strings"
	"testing"

	"github.com/tsawler/reflow/model"
)

// Helper to create a text region
func makeRegion(id string, x, y, width, height float64, text string) *model.TextRegion {
	return &model.TextRegion{
		ID:   id,
		BBox: model.NewBBox(x, y, width, height),
		Text: text,
		Formatting: model.TextFormatting{
			FontFamily: "Arial",
			FontSize:   12,
		},
		Confidence: 1.0,
	}
}

func TestEngine_TextFits(t *testing.T) {
	engine := NewEngine()

	region := makeRegion("r1", 0, 0, 200, 50, "Hello world")
	adjusted := engine.Fit(region, "Bonjour")

	if adjusted.Text != "Bonjour" {
		t.Errorf("expected fitted text unchanged, got %q", adjusted.Text)
	}
	if adjusted.FitQuality != 1.0 {
		t.Errorf("expected fit quality 1.0, got %g", adjusted.FitQuality)
	}
	if len(adjusted.Adjustments) != 0 {
		t.Errorf("fitting text should need no adjustments, got %d", len(adjusted.Adjustments))
	}
	if adjusted.BBox != region.BBox {
		t.Errorf("bounding box should be unchanged, got %+v", adjusted.BBox)
	}
	if adjusted.Truncated {
		t.Error("fitting text should not be truncated")
	}
	if adjusted.FontSize() != 12 {
		t.Errorf("font size should be unchanged, got %g", adjusted.FontSize())
	}
}

func TestEngine_MinorOverflow(t *testing.T) {
	engine := NewEngine()

	// 17 chars at 12pt * 0.6 = 122.4 units wide in a 100-unit box:
	// overflow ratio 1.224, handled by a font shrink alone.
	region := makeRegion("r1", 0, 0, 100, 100, "short")
	adjusted := engine.Fit(region, "abcdefghijklmnopq")

	if adjusted.FitQuality != 0.8 {
		t.Errorf("expected fit quality 0.8, got %g", adjusted.FitQuality)
	}
	if adjusted.Truncated {
		t.Error("minor overflow should not truncate")
	}

	newSize := adjusted.FontSize()
	if newSize >= 12 || newSize < 8 {
		t.Errorf("expected a shrunk font size in [8,12), got %g", newSize)
	}

	var sawFontChange bool
	for _, adj := range adjusted.Adjustments {
		switch adj.Type {
		case model.FontSizeChange:
			sawFontChange = true
		case model.LineSpacingChange:
			t.Error("minor overflow should not touch line spacing")
		}
	}
	if !sawFontChange {
		t.Error("expected a font size change adjustment")
	}
}

func TestEngine_MajorOverflow(t *testing.T) {
	engine := NewEngine()

	// 25 chars at 12pt * 0.6 = 180 units wide in a 100-unit box:
	// overflow ratio 1.8, needing a shrink plus tighter spacing.
	region := makeRegion("r1", 0, 0, 100, 100, "short")
	adjusted := engine.Fit(region, strings.Repeat("x", 25))

	if adjusted.FitQuality != 0.6 {
		t.Errorf("expected fit quality 0.6, got %g", adjusted.FitQuality)
	}
	if adjusted.Truncated {
		t.Error("major overflow should not truncate")
	}

	// Needed shrink 1-1/1.8 exceeds the cap, so the maximum reduction
	// applies: 12 * 0.7
	if math.Abs(adjusted.FontSize()-8.4) > 1e-9 {
		t.Errorf("expected font size 8.4, got %g", adjusted.FontSize())
	}

	var spacing *model.LayoutAdjustment
	for i, adj := range adjusted.Adjustments {
		if adj.Type == model.LineSpacingChange {
			spacing = &adjusted.Adjustments[i]
		}
	}
	if spacing == nil {
		t.Fatal("expected a line spacing adjustment")
	}
	if math.Abs(spacing.New[0]-0.9) > 1e-9 {
		t.Errorf("expected line spacing 0.9, got %g", spacing.New[0])
	}

	// The capped shrink still leaves the text too wide, so the box grows
	// up to the expansion cap.
	var expansion *model.LayoutAdjustment
	for i, adj := range adjusted.Adjustments {
		if adj.Type == model.BoundaryExpansion {
			expansion = &adjusted.Adjustments[i]
		}
	}
	if expansion == nil {
		t.Fatal("expected a boundary expansion adjustment")
	}
	if math.Abs(adjusted.BBox.Width-120) > 1e-9 {
		t.Errorf("expected width capped at 120, got %g", adjusted.BBox.Width)
	}
	if adjusted.BBox.X != 0 || adjusted.BBox.Y != 0 {
		t.Error("fitting should never move the region")
	}
}

func TestEngine_Truncation(t *testing.T) {
	engine := NewEngine()

	// Original text of 10 chars allows floor(10*0.8) = 8 fitted chars;
	// the 30-char translation overflows far past the major threshold.
	region := makeRegion("r1", 0, 0, 100, 50, "1234567890")
	translation := strings.Repeat("z", 30)
	adjusted := engine.Fit(region, translation)

	if !adjusted.Truncated {
		t.Fatal("expected truncation")
	}
	if adjusted.FitQuality != 0.3 {
		t.Errorf("expected fit quality 0.3, got %g", adjusted.FitQuality)
	}

	if !strings.HasSuffix(adjusted.Text, "...") {
		t.Errorf("truncated text should end with ellipsis, got %q", adjusted.Text)
	}
	if len([]rune(adjusted.Text)) != 8 {
		t.Errorf("expected 8 fitted characters, got %d", len([]rune(adjusted.Text)))
	}

	// Nothing is lost: the cut text is retained for review
	if adjusted.TruncatedContent != translation[5:] {
		t.Errorf("unexpected truncated content %q", adjusted.TruncatedContent)
	}

	// Maximum reduction applies alongside truncation
	if math.Abs(adjusted.FontSize()-8.4) > 1e-9 {
		t.Errorf("expected font size 8.4, got %g", adjusted.FontSize())
	}
}

func TestEngine_TruncationPreservesRunes(t *testing.T) {
	engine := NewEngine()

	region := makeRegion("r1", 0, 0, 100, 50, "1234567890")
	translation := strings.Repeat("ü", 30)
	adjusted := engine.Fit(region, translation)

	if !adjusted.Truncated {
		t.Fatal("expected truncation")
	}

	// Multi-byte characters are cut on rune boundaries
	fitted := []rune(adjusted.Text)
	if len(fitted) != 8 {
		t.Errorf("expected 8 fitted runes, got %d", len(fitted))
	}
	for _, r := range fitted[:5] {
		if r != 'ü' {
			t.Errorf("kept runes should be intact, got %q", adjusted.Text)
		}
	}
}

func TestEngine_FontSizeFloor(t *testing.T) {
	engine := NewEngine()

	// A 10pt font shrunk by the maximum 30% would land at 7pt; the
	// configured floor of 8pt wins.
	region := makeRegion("r1", 0, 0, 100, 50, "1234567890")
	region.Formatting.FontSize = 10
	adjusted := engine.Fit(region, strings.Repeat("z", 40))

	if adjusted.FontSize() != 8 {
		t.Errorf("expected font size clamped to 8, got %g", adjusted.FontSize())
	}
}

func TestEngine_EmptyTranslation(t *testing.T) {
	engine := NewEngine()

	region := makeRegion("r1", 0, 0, 100, 50, "original text")
	adjusted := engine.Fit(region, "")

	if adjusted.Text != "" {
		t.Errorf("expected empty fitted text, got %q", adjusted.Text)
	}
	if adjusted.FitQuality != 1.0 {
		t.Errorf("empty translation always fits, got quality %g", adjusted.FitQuality)
	}
	if adjusted.Truncated {
		t.Error("empty translation should not be truncated")
	}
}

func TestEngine_DegenerateRegion(t *testing.T) {
	engine := NewEngine()

	// A zero-width box cannot hold text: any non-empty translation is
	// truncated rather than dividing by zero.
	region := makeRegion("r1", 0, 0, 0, 50, "abcd")
	adjusted := engine.Fit(region, "some translated text")

	if !adjusted.Truncated {
		t.Error("expected truncation for a degenerate region")
	}
	if adjusted.FitQuality != 0.3 {
		t.Errorf("expected fit quality 0.3, got %g", adjusted.FitQuality)
	}

	// An empty translation still fits trivially
	empty := engine.Fit(region, "")
	if empty.FitQuality != 1.0 {
		t.Errorf("empty translation should fit, got quality %g", empty.FitQuality)
	}
}

func TestEngine_OriginalRegionUntouched(t *testing.T) {
	engine := NewEngine()

	region := makeRegion("r1", 0, 0, 100, 50, "1234567890")
	engine.Fit(region, strings.Repeat("z", 30))

	if region.Formatting.FontSize != 12 {
		t.Errorf("original formatting was modified: %g", region.Formatting.FontSize)
	}
	if region.BBox.Width != 100 {
		t.Errorf("original box was modified: %g", region.BBox.Width)
	}
	if region.Text != "1234567890" {
		t.Errorf("original text was modified: %q", region.Text)
	}
}
