package reconstruct

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/tsawler/reflow/model"
)

const xhtmlNS = "http://www.w3.org/1999/xhtml"

// epubStyles is the stylesheet embedded in every reconstructed chapter.
const epubStyles = `
body { font-family: serif; line-height: 1.4; }
.text-region { margin-bottom: 1em; }
.bold { font-weight: bold; }
.italic { font-style: italic; }
.underlined { text-decoration: underline; }
.center { text-align: center; }
.right { text-align: right; }
.justify { text-align: justify; }
`

// EPUBReconstructor serializes adjusted pages as a single XHTML document,
// one chapter division per page with paragraphs in reading order. EPUB
// readers reflow text freely, so formatting is expressed as CSS classes and
// inline styles rather than absolute positions.
type EPUBReconstructor struct{}

// NewEPUBReconstructor creates an EPUB reconstructor.
func NewEPUBReconstructor() *EPUBReconstructor {
	return &EPUBReconstructor{}
}

// Optimize returns the document unchanged apart from a defensive copy of the
// page list. EPUB's flowing layout gives the fitter room already; shrinking
// fonts up front would only degrade readability.
func (r *EPUBReconstructor) Optimize(doc *model.DocumentStructure) *model.DocumentStructure {
	optimized := model.NewDocument(doc.Format)
	optimized.Metadata = doc.Metadata

	for _, page := range doc.Pages {
		newPage := model.NewPage(page.Width, page.Height)
		newPage.TextRegions = page.TextRegions
		newPage.VisualElements = page.VisualElements
		optimized.AddPage(newPage)
	}

	return optimized
}

// Reconstruct emits the document as an XHTML chapter file.
func (r *EPUBReconstructor) Reconstruct(doc *model.DocumentStructure, adjusted map[int][]*model.AdjustedRegion) ([]byte, error) {
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	out.CreateDirective("DOCTYPE html")

	html := out.CreateElement("html")
	html.CreateAttr("xmlns", xhtmlNS)

	head := html.CreateElement("head")
	title := head.CreateElement("title")
	if doc.Metadata.Title != "" {
		title.SetText(doc.Metadata.Title)
	} else {
		title.SetText("Translated Document")
	}
	style := head.CreateElement("style")
	style.SetText(epubStyles)

	body := html.CreateElement("body")

	for _, page := range doc.Pages {
		chapter := body.CreateElement("div")
		chapter.CreateAttr("class", "chapter")
		chapter.CreateAttr("id", fmt.Sprintf("page-%d", page.Number))

		for _, region := range sortedByReadingOrder(adjusted[page.Number]) {
			r.writeParagraph(chapter, region)
		}
	}

	out.Indent(2)
	data, err := out.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing epub chapter: %w", err)
	}
	return data, nil
}

// writeParagraph appends one styled paragraph for an adjusted region.
func (r *EPUBReconstructor) writeParagraph(chapter *etree.Element, region *model.AdjustedRegion) {
	formatting := region.Region.Formatting

	classes := []string{"text-region"}
	if formatting.Bold {
		classes = append(classes, "bold")
	}
	if formatting.Italic {
		classes = append(classes, "italic")
	}
	if formatting.Underlined {
		classes = append(classes, "underlined")
	}
	if formatting.Alignment != model.AlignLeft {
		classes = append(classes, formatting.Alignment.String())
	}

	styles := []string{fmt.Sprintf("font-size: %gpt", region.FontSize())}
	if formatting.FontFamily != "" {
		styles = append(styles, "font-family: "+formatting.FontFamily)
	}
	if formatting.Color != "" && formatting.Color != "#000000" {
		styles = append(styles, "color: "+formatting.Color)
	}

	p := chapter.CreateElement("p")
	p.CreateAttr("class", strings.Join(classes, " "))
	p.CreateAttr("style", strings.Join(styles, "; "))
	p.SetText(region.Text)
}
