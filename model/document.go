package model

import "time"

// DocumentStructure represents a parsed document ready for translation and
// reconstruction. Parsers produce it; this library treats it as read-only.
type DocumentStructure struct {
	// Format is the document format ("pdf", "docx", "epub")
	Format string

	// Pages are the document's pages in order
	Pages []*PageStructure

	// Metadata contains document-level information
	Metadata Metadata
}

// Metadata contains document-level information
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     []string
	Creator      string
	Producer     string
	CreationDate time.Time
	ModDate      time.Time
	// Custom metadata
	Custom map[string]string
}

// NewDocument creates a new empty document with the given format
func NewDocument(format string) *DocumentStructure {
	return &DocumentStructure{
		Format: format,
		Pages:  make([]*PageStructure, 0),
		Metadata: Metadata{
			Custom: make(map[string]string),
		},
	}
}

// AddPage adds a page to the document and assigns its number
func (d *DocumentStructure) AddPage(page *PageStructure) {
	page.Number = len(d.Pages) + 1
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page by number (1-indexed)
func (d *DocumentStructure) GetPage(number int) *PageStructure {
	if number < 1 || number > len(d.Pages) {
		return nil
	}
	return d.Pages[number-1]
}

// PageCount returns the total number of pages
func (d *DocumentStructure) PageCount() int {
	return len(d.Pages)
}

// PageStructure represents a single page of a parsed document
type PageStructure struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in page-local units
	Height float64 // Page height in page-local units

	// TextRegions are the page's text regions
	TextRegions []*TextRegion

	// VisualElements are the page's non-text elements
	VisualElements []*VisualElement
}

// NewPage creates a new page with given dimensions
func NewPage(width, height float64) *PageStructure {
	return &PageStructure{
		Width:          width,
		Height:         height,
		TextRegions:    make([]*TextRegion, 0),
		VisualElements: make([]*VisualElement, 0),
	}
}

// AddRegion adds a text region to the page
func (p *PageStructure) AddRegion(region *TextRegion) {
	p.TextRegions = append(p.TextRegions, region)
}

// AddVisualElement adds a visual element to the page
func (p *PageStructure) AddVisualElement(elem *VisualElement) {
	p.VisualElements = append(p.VisualElements, elem)
}

// RegionByID returns the text region with the given id, or nil
func (p *PageStructure) RegionByID(id string) *TextRegion {
	for _, r := range p.TextRegions {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Elements returns all page elements (text regions then visual elements)
// as the common PageElement interface.
func (p *PageStructure) Elements() []PageElement {
	elements := make([]PageElement, 0, len(p.TextRegions)+len(p.VisualElements))
	for _, r := range p.TextRegions {
		elements = append(elements, r)
	}
	for _, v := range p.VisualElements {
		elements = append(elements, v)
	}
	return elements
}
