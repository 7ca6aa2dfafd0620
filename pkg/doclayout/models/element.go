package models

// ElementKind identifies the variant of a layout element.
type ElementKind string

const (
	KindHeading   ElementKind = "heading"
	KindParagraph ElementKind = "paragraph"
	KindBullet    ElementKind = "bullet"
	KindEmpty     ElementKind = "empty"
	KindImage     ElementKind = "image"
	KindTable     ElementKind = "table"
	KindPageBreak ElementKind = "page_break"
)

// TableKind is the rendering role of a table, derived from its shading.
type TableKind string

const (
	TableCodeDark   TableKind = "code_dark"
	TableCodeLight  TableKind = "code_light"
	TableInfoBox    TableKind = "info_box"
	TableWarningBox TableKind = "warning_box"
	TableData       TableKind = "data_table"
)

// IsCode reports whether the table renders a code block.
func (k TableKind) IsCode() bool {
	return k == TableCodeDark || k == TableCodeLight
}

// Element is one entry of the flow model. The set of implementations is
// closed: Heading, Paragraph, Bullet, Empty, Image, Table and PageBreak.
type Element interface {
	Kind() ElementKind
	Seq() int
	Height() float64
	sealed()
}

// Meta holds the fields shared by every element.
type Meta struct {
	// Index is the position of the source block in the document body.
	Index int `json:"index"`
	// EstHeight is the estimated vertical footprint in points.
	EstHeight float64 `json:"est_height"`
}

// Seq returns the source block position.
func (m Meta) Seq() int { return m.Index }

// Height returns the estimated height in points.
func (m Meta) Height() float64 { return m.EstHeight }

func (Meta) sealed() {}

// Heading is a heading paragraph.
type Heading struct {
	Meta
	Level int
	Text  string
}

// Paragraph is a body text paragraph.
type Paragraph struct {
	Meta
	CharCount int
}

// Bullet is a numbered or bulleted list item.
type Bullet struct {
	Meta
}

// Empty is a paragraph without text, usually a spacer.
type Empty struct {
	Meta
}

// Image is a paragraph holding a drawing.
type Image struct {
	Meta
	WidthPt  float64
	HeightPt float64
	// SectionTitle is the text of the nearest preceding heading.
	SectionTitle string
}

// Table is a top-level table.
type Table struct {
	Meta
	Rows      int
	Cols      int
	TableKind TableKind
}

// PageBreak is an explicit page break marker.
type PageBreak struct {
	Meta
}

func (Heading) Kind() ElementKind   { return KindHeading }
func (Paragraph) Kind() ElementKind { return KindParagraph }
func (Bullet) Kind() ElementKind    { return KindBullet }
func (Empty) Kind() ElementKind     { return KindEmpty }
func (Image) Kind() ElementKind     { return KindImage }
func (Table) Kind() ElementKind     { return KindTable }
func (PageBreak) Kind() ElementKind { return KindPageBreak }

// ElementSummary is the flattened, serialisable view of an Element.
type ElementSummary struct {
	// Index is the source block position.
	Index int `json:"index"`
	// Type is the element kind.
	Type ElementKind `json:"type"`
	// EstHeight is the estimated height in points, rounded to 0.1.
	EstHeight float64 `json:"est_height"`
	// Level is the heading level (headings only).
	Level int `json:"level,omitempty"`
	// Text is the heading text (headings only).
	Text string `json:"text,omitempty"`
	// CharCount is the paragraph length in characters (paragraphs only).
	CharCount int `json:"char_count,omitempty"`
	// WidthPt is the image width in points (images only).
	WidthPt float64 `json:"width_pt,omitempty"`
	// HeightPt is the image height in points (images only).
	HeightPt float64 `json:"height_pt,omitempty"`
	// Section is the owning section title (images only).
	Section string `json:"section,omitempty"`
	// Rows is the table row count (tables only).
	Rows int `json:"rows,omitempty"`
	// Cols is the table column count (tables only).
	Cols int `json:"cols,omitempty"`
	// TableKind is the table classification (tables only).
	TableKind TableKind `json:"tbl_type,omitempty"`
}

// Summarize flattens an element for reporting.
func Summarize(e Element) ElementSummary {
	s := ElementSummary{
		Index:     e.Seq(),
		Type:      e.Kind(),
		EstHeight: Round(e.Height(), 1),
	}
	switch v := e.(type) {
	case Heading:
		s.Level = v.Level
		s.Text = v.Text
	case Paragraph:
		s.CharCount = v.CharCount
	case Image:
		s.WidthPt = Round(v.WidthPt, 1)
		s.HeightPt = Round(v.HeightPt, 1)
		s.Section = v.SectionTitle
	case Table:
		s.Rows = v.Rows
		s.Cols = v.Cols
		s.TableKind = v.TableKind
	}
	return s
}
