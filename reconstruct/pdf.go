package reconstruct

import (
	"fmt"
	"strings"

	"github.com/tsawler/reflow/model"
)

// PDFReconstructor serializes adjusted pages as a simplified PDF content
// stream: one text object per region and basic placement operators for
// visual elements. It does not build cross-reference tables or object
// streams; downstream packaging is expected to wrap the content into a
// complete file.
type PDFReconstructor struct {
	// fontMap substitutes common system fonts with the base-14 fonts
	// every PDF viewer carries, which are slightly more compact.
	fontMap map[string]string
}

// NewPDFReconstructor creates a PDF reconstructor.
func NewPDFReconstructor() *PDFReconstructor {
	return &PDFReconstructor{
		fontMap: map[string]string{
			"Arial":           "Helvetica",
			"Times New Roman": "Times-Roman",
			"Courier New":     "Courier",
		},
	}
}

// Optimize substitutes base-14 fonts document-wide so fitted text needs less
// room. The input document is not modified.
func (r *PDFReconstructor) Optimize(doc *model.DocumentStructure) *model.DocumentStructure {
	optimized := model.NewDocument(doc.Format)
	optimized.Metadata = doc.Metadata

	for _, page := range doc.Pages {
		newPage := model.NewPage(page.Width, page.Height)
		newPage.VisualElements = page.VisualElements

		for _, region := range page.TextRegions {
			copied := *region
			if mapped, ok := r.fontMap[region.Formatting.FontFamily]; ok {
				copied.Formatting.FontFamily = mapped
			}
			newPage.AddRegion(&copied)
		}

		optimized.AddPage(newPage)
	}

	return optimized
}

// Reconstruct emits the document's pages as PDF content stream text.
func (r *PDFReconstructor) Reconstruct(doc *model.DocumentStructure, adjusted map[int][]*model.AdjustedRegion) ([]byte, error) {
	var b strings.Builder

	b.WriteString("%PDF-1.4\n")
	b.WriteString("% reconstructed with translated content\n")

	for _, page := range doc.Pages {
		fmt.Fprintf(&b, "%% Page %d\n", page.Number)

		for _, region := range adjusted[page.Number] {
			r.writeTextObject(&b, region)
		}

		for _, elem := range page.VisualElements {
			r.writeVisualObject(&b, elem)
		}
	}

	b.WriteString("%%EOF\n")

	return []byte(b.String()), nil
}

// writeTextObject emits one BT..ET block for an adjusted region.
func (r *PDFReconstructor) writeTextObject(b *strings.Builder, region *model.AdjustedRegion) {
	box := region.BBox

	b.WriteString("BT\n")
	fmt.Fprintf(b, "/%s %g Tf\n", region.Region.Formatting.FontFamily, region.FontSize())
	fmt.Fprintf(b, "%g %g Td\n", box.X, box.Y)
	fmt.Fprintf(b, "(%s) Tj\n", escapePDFString(region.Text))
	b.WriteString("ET\n")
}

// writeVisualObject emits placement operators for a visual element.
func (r *PDFReconstructor) writeVisualObject(b *strings.Builder, elem *model.VisualElement) {
	box := elem.BBox

	switch elem.Type {
	case model.VisualImage, model.VisualChart:
		b.WriteString("q\n")
		fmt.Fprintf(b, "%g 0 0 %g %g %g cm\n", box.Width, box.Height, box.X, box.Y)
		fmt.Fprintf(b, "/Im%s Do\n", elem.ID)
		b.WriteString("Q\n")
	case model.VisualLine:
		fmt.Fprintf(b, "%g %g m\n", box.X, box.Y)
		fmt.Fprintf(b, "%g %g l\n", box.Right(), box.Bottom())
		b.WriteString("S\n")
	default:
		fmt.Fprintf(b, "%% visual element %s (%s)\n", elem.ID, elem.Type)
	}
}

// escapePDFString escapes the characters with special meaning inside a PDF
// literal string.
func escapePDFString(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		"(", `\(`,
		")", `\)`,
	)
	return replacer.Replace(s)
}
