package layout

import (
	"math"
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

func elementsOf(regions ...*model.TextRegion) []model.PageElement {
	elements := make([]model.PageElement, 0, len(regions))
	for _, r := range regions {
		elements = append(elements, r)
	}
	return elements
}

func TestSpatialCalculator_EmptyInput(t *testing.T) {
	calc := NewSpatialCalculator()

	if rels := calc.Relationships(nil); len(rels) != 0 {
		t.Errorf("expected no relationships for empty input, got %d", len(rels))
	}

	single := elementsOf(makeRegion("r1", 0, 0, 100, 20, "alone"))
	if rels := calc.Relationships(single); len(rels) != 0 {
		t.Errorf("expected no relationships for a single element, got %d", len(rels))
	}
}

func TestSpatialCalculator_RightOf(t *testing.T) {
	calc := NewSpatialCalculator()

	// Two regions side by side on the same line; the second is clearly to
	// the right of the first.
	left := makeRegion("left", 0, 0, 100, 20, "left")
	right := makeRegion("right", 150, 0, 100, 20, "right")

	rels := calc.Relationships(elementsOf(left, right))
	if len(rels) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(rels))
	}

	rel := rels[0]
	if rel.Element1ID != "left" || rel.Element2ID != "right" {
		t.Errorf("unexpected pair %q, %q", rel.Element1ID, rel.Element2ID)
	}
	if rel.Type != model.RelationRight {
		t.Errorf("expected right relationship, got %v", rel.Type)
	}
	if rel.Distance != 150 {
		t.Errorf("expected center distance 150, got %g", rel.Distance)
	}
	if math.Abs(rel.Confidence-0.85) > 1e-9 {
		t.Errorf("expected confidence 0.85, got %g", rel.Confidence)
	}
}

func TestSpatialCalculator_VerticalRelations(t *testing.T) {
	calc := NewSpatialCalculator()

	top := makeRegion("top", 0, 0, 100, 20, "header")
	bottom := makeRegion("bottom", 0, 100, 100, 20, "body")

	rels := calc.Relationships(elementsOf(top, bottom))
	if len(rels) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(rels))
	}
	if rels[0].Type != model.RelationBelow {
		t.Errorf("expected below relationship, got %v", rels[0].Type)
	}

	// Reversed iteration order flips the classification
	rels = calc.Relationships(elementsOf(bottom, top))
	if rels[0].Type != model.RelationAbove {
		t.Errorf("expected above relationship, got %v", rels[0].Type)
	}
}

func TestSpatialCalculator_Overlap(t *testing.T) {
	calc := NewSpatialCalculator()

	a := makeRegion("a", 0, 0, 100, 50, "a")
	b := makeRegion("b", 50, 25, 100, 50, "b")

	rels := calc.Relationships(elementsOf(a, b))
	if len(rels) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(rels))
	}

	rel := rels[0]
	if rel.Type != model.RelationOverlaps {
		t.Errorf("expected overlaps, got %v", rel.Type)
	}
	if rel.Distance != 0 {
		t.Errorf("overlapping elements should report zero distance, got %g", rel.Distance)
	}
	if rel.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %g", rel.Confidence)
	}
}

func TestSpatialCalculator_AdjacentOverridesAxis(t *testing.T) {
	calc := NewSpatialCalculator()

	// Centers 8 units apart without overlapping boxes: within the
	// proximity threshold, so adjacency wins over the axis classification.
	a := makeRegion("a", 0, 0, 6, 6, "a")
	b := makeRegion("b", 8, 0, 6, 6, "b")

	rels := calc.Relationships(elementsOf(a, b))
	if len(rels) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(rels))
	}
	if rels[0].Type != model.RelationAdjacent {
		t.Errorf("expected adjacent, got %v", rels[0].Type)
	}
	if rels[0].Distance != 8 {
		t.Errorf("expected distance 8, got %g", rels[0].Distance)
	}
}

func TestSpatialCalculator_ConfidenceFloor(t *testing.T) {
	calc := NewSpatialCalculator()

	// Centers far beyond the decay distance: confidence bottoms out at
	// the configured floor instead of going negative.
	a := makeRegion("a", 0, 0, 10, 10, "a")
	b := makeRegion("b", 5000, 0, 10, 10, "b")

	rels := calc.Relationships(elementsOf(a, b))
	if rels[0].Confidence != 0.1 {
		t.Errorf("expected confidence floor 0.1, got %g", rels[0].Confidence)
	}
}

func TestSpatialCalculator_PairCount(t *testing.T) {
	calc := NewSpatialCalculator()

	elements := elementsOf(
		makeRegion("a", 0, 0, 10, 10, "a"),
		makeRegion("b", 100, 0, 10, 10, "b"),
		makeRegion("c", 0, 100, 10, 10, "c"),
		makeRegion("d", 100, 100, 10, 10, "d"),
	)

	rels := calc.Relationships(elements)

	// Every unordered pair exactly once: C(4,2) = 6
	if len(rels) != 6 {
		t.Errorf("expected 6 relationships, got %d", len(rels))
	}

	seen := make(map[string]bool)
	for _, rel := range rels {
		key := rel.Element1ID + "/" + rel.Element2ID
		if seen[key] {
			t.Errorf("pair %s reported twice", key)
		}
		seen[key] = true
		if rel.Element1ID == rel.Element2ID {
			t.Errorf("element %s related to itself", rel.Element1ID)
		}
	}
}
