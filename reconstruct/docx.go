package reconstruct

import (
	"fmt"
	"sort"

	"github.com/beevik/etree"

	"github.com/tsawler/reflow/model"
)

const wordprocessingmlNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// DOCXReconstructor serializes adjusted pages as a WordprocessingML document
// body: one paragraph per region, in reading order, with run properties
// carrying font, size, emphasis and alignment.
type DOCXReconstructor struct{}

// NewDOCXReconstructor creates a DOCX reconstructor.
func NewDOCXReconstructor() *DOCXReconstructor {
	return &DOCXReconstructor{}
}

// Optimize shrinks every region's font slightly; Word reflows text, so a
// small document-wide reduction buys fitting headroom at little visual cost.
// The input document is not modified.
func (r *DOCXReconstructor) Optimize(doc *model.DocumentStructure) *model.DocumentStructure {
	optimized := model.NewDocument(doc.Format)
	optimized.Metadata = doc.Metadata

	for _, page := range doc.Pages {
		newPage := model.NewPage(page.Width, page.Height)
		newPage.VisualElements = page.VisualElements

		for _, region := range page.TextRegions {
			copied := *region
			size := region.Formatting.FontSize * 0.95
			if size < 8.0 {
				size = 8.0
			}
			copied.Formatting = region.Formatting.WithFontSize(size)
			newPage.AddRegion(&copied)
		}

		optimized.AddPage(newPage)
	}

	return optimized
}

// Reconstruct emits the document as WordprocessingML.
func (r *DOCXReconstructor) Reconstruct(doc *model.DocumentStructure, adjusted map[int][]*model.AdjustedRegion) ([]byte, error) {
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := out.CreateElement("w:document")
	root.CreateAttr("xmlns:w", wordprocessingmlNS)
	body := root.CreateElement("w:body")

	for _, page := range doc.Pages {
		regions := sortedByReadingOrder(adjusted[page.Number])
		for _, region := range regions {
			r.writeParagraph(body, region)
		}
	}

	out.Indent(2)
	data, err := out.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing docx body: %w", err)
	}
	return data, nil
}

// writeParagraph appends one w:p element for an adjusted region.
func (r *DOCXReconstructor) writeParagraph(body *etree.Element, region *model.AdjustedRegion) {
	formatting := region.Region.Formatting

	p := body.CreateElement("w:p")

	pPr := p.CreateElement("w:pPr")
	jc := pPr.CreateElement("w:jc")
	jc.CreateAttr("w:val", formatting.Alignment.String())

	run := p.CreateElement("w:r")
	rPr := run.CreateElement("w:rPr")

	fonts := rPr.CreateElement("w:rFonts")
	fonts.CreateAttr("w:ascii", formatting.FontFamily)

	// WordprocessingML measures font size in half-points.
	sz := rPr.CreateElement("w:sz")
	sz.CreateAttr("w:val", fmt.Sprintf("%d", int(region.FontSize()*2)))

	if formatting.Bold {
		rPr.CreateElement("w:b")
	}
	if formatting.Italic {
		rPr.CreateElement("w:i")
	}
	if formatting.Underlined {
		u := rPr.CreateElement("w:u")
		u.CreateAttr("w:val", "single")
	}

	t := run.CreateElement("w:t")
	t.SetText(region.Text)
}

// sortedByReadingOrder returns the regions ordered by their original
// region's reading order, without modifying the input slice.
func sortedByReadingOrder(regions []*model.AdjustedRegion) []*model.AdjustedRegion {
	sorted := make([]*model.AdjustedRegion, len(regions))
	copy(sorted, regions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Region.ReadingOrder < sorted[j].Region.ReadingOrder
	})
	return sorted
}
