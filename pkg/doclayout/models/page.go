package models

// Page is one simulated page.
type Page struct {
	// Number is the 1-based page ordinal.
	Number int `json:"page"`
	// Elements are the elements placed on the page, in order.
	Elements []Element `json:"-"`
	// UsedHeight is the summed estimated height in points.
	UsedHeight float64 `json:"used_height"`
	// StartedByBreak is true when an explicit page break opened the page.
	StartedByBreak bool `json:"started_by_break"`
	// FillPct is UsedHeight as a percentage of the usable height.
	FillPct float64 `json:"fill_pct"`
}

// Count returns how many elements of the given kind the page holds.
func (p Page) Count(kind ElementKind) int {
	n := 0
	for _, e := range p.Elements {
		if e.Kind() == kind {
			n++
		}
	}
	return n
}

// PageSummary is the serialisable view of a Page.
type PageSummary struct {
	// Page is the 1-based page ordinal.
	Page int `json:"page"`
	// UsedHeight is the used height in points, rounded to 0.1.
	UsedHeight float64 `json:"used_height"`
	// FillPct is the fill percentage, rounded to 0.1.
	FillPct float64 `json:"fill_pct"`
	// StartedByBreak is true when an explicit break opened the page.
	StartedByBreak bool `json:"started_by_break"`
	// HasImage is true when the page holds an image.
	HasImage bool `json:"has_image"`
	// HeadingCount is the number of headings on the page.
	HeadingCount int `json:"heading_count"`
	// TableCount is the number of tables on the page.
	TableCount int `json:"table_count"`
	// Elements lists the source indices of the page's elements.
	Elements []int `json:"elements"`
}

// Summary flattens the page for reporting.
func (p Page) Summary() PageSummary {
	s := PageSummary{
		Page:           p.Number,
		UsedHeight:     Round(p.UsedHeight, 1),
		FillPct:        Round(p.FillPct, 1),
		StartedByBreak: p.StartedByBreak,
		HasImage:       p.Count(KindImage) > 0,
		HeadingCount:   p.Count(KindHeading),
		TableCount:     p.Count(KindTable),
		Elements:       make([]int, 0, len(p.Elements)),
	}
	for _, e := range p.Elements {
		s.Elements = append(s.Elements, e.Seq())
	}
	return s
}
