package models

import "strings"

// EntityKind identifies a raw content entity produced by the extractor.
type EntityKind string

const (
	EntityHeading   EntityKind = "heading"
	EntityParagraph EntityKind = "paragraph"
	EntityBullet    EntityKind = "bullet"
	EntityEmpty     EntityKind = "empty"
	EntityImage     EntityKind = "image"
	EntityTable     EntityKind = "table"
	EntityPageBreak EntityKind = "page_break"
)

// Entity is one raw content item of the document body, in source order.
// Image is set only for EntityImage and Table only for EntityTable.
type Entity struct {
	// Kind is the entity kind.
	Kind EntityKind `json:"kind"`
	// Index is the position of the owning body block (paragraph or table).
	Index int `json:"index"`
	// Level is the heading level (headings only, 0 when unparsable).
	Level int `json:"level,omitempty"`
	// Text is the trimmed paragraph text.
	Text string `json:"text,omitempty"`
	// Image holds drawing extents (images only).
	Image *ImageEntity `json:"image,omitempty"`
	// Table holds table cells (tables only).
	Table *TableEntity `json:"table,omitempty"`
}

// ImageEntity describes an embedded drawing.
type ImageEntity struct {
	// WidthEMU is the drawing width in EMUs.
	WidthEMU int64 `json:"width_emu"`
	// HeightEMU is the drawing height in EMUs.
	HeightEMU int64 `json:"height_emu"`
	// SectionTitle is the text of the nearest preceding heading.
	SectionTitle string `json:"section_title,omitempty"`
}

// TableEntity is a table as extracted from the body.
type TableEntity struct {
	// Rows are the table rows, header first.
	Rows []TableRow `json:"rows"`
	// GridWidths are the tblGrid column widths in DXA.
	GridWidths []int `json:"grid_widths,omitempty"`
	// FirstFill is the background fill of the first cell ("" if none).
	FirstFill string `json:"first_fill,omitempty"`
}

// TableRow is one table row.
type TableRow struct {
	Cells []TableCell `json:"cells"`
}

// TableCell is one table cell.
type TableCell struct {
	// Text is the cell text, paragraphs joined by a space.
	Text string `json:"text"`
	// ColSpan is the gridSpan value (1 when not merged).
	ColSpan int `json:"col_span"`
	// Width is the stored cell width in DXA (0 when absent or not numeric).
	Width int `json:"width,omitempty"`
}

// RowCount returns the number of rows.
func (t *TableEntity) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of cells in the first row.
func (t *TableEntity) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0].Cells)
}

// HasMergedCells reports whether any cell spans several grid columns or any
// row's cell count differs from the header's.
func (t *TableEntity) HasMergedCells() bool {
	cols := t.ColCount()
	for _, row := range t.Rows {
		if len(row.Cells) != cols {
			return true
		}
		for _, cell := range row.Cells {
			if cell.ColSpan > 1 {
				return true
			}
		}
	}
	return false
}

// Headers returns the header row texts.
func (t *TableEntity) Headers() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	headers := make([]string, len(t.Rows[0].Cells))
	for i, cell := range t.Rows[0].Cells {
		headers[i] = cell.Text
	}
	return headers
}

// Text returns all non-empty cell texts joined by newlines.
func (t *TableEntity) Text() string {
	var parts []string
	for _, row := range t.Rows {
		for _, cell := range row.Cells {
			if cell.Text != "" {
				parts = append(parts, cell.Text)
			}
		}
	}
	return strings.Join(parts, "\n")
}
