package models

// ColumnProfile holds the width measurements of one data table column.
type ColumnProfile struct {
	// Header is the header cell text.
	Header string `json:"header"`
	// AllocatedWidth is the column width in DXA.
	AllocatedWidth int `json:"allocated_width"`
	// MaxTextWidth is the widest estimated data cell text in DXA.
	MaxTextWidth int `json:"max_text_width"`
	// Utilization is MaxTextWidth / AllocatedWidth, rounded to 0.001.
	Utilization float64 `json:"utilization"`
	// EstLines is the estimated line count of the widest cell, rounded to 0.1.
	EstLines float64 `json:"est_lines"`
	// EmptyRatio is the share of blank data cells, rounded to 0.01.
	EmptyRatio float64 `json:"empty_ratio"`
}

// TableReport is the width analysis of one data table.
type TableReport struct {
	// Index is the 1-based ordinal among the document's data tables.
	Index int `json:"index"`
	// Section is the text of the nearest preceding heading.
	Section string `json:"section"`
	// Headers are the header cell texts.
	Headers []string `json:"headers"`
	// Rows is the row count including the header.
	Rows int `json:"rows"`
	// Cols is the column count.
	Cols int `json:"cols"`
	// Columns holds one profile per column.
	Columns []ColumnProfile `json:"columns"`
	// Issues are the width issues found in the table.
	Issues []Issue `json:"issues"`
	// SuggestedWidths is the proposed redistribution in DXA.
	SuggestedWidths []int `json:"suggested_widths,omitempty"`
}
