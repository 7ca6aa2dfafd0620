// Package models defines data structures for DOCX layout analysis.
package models

// DocumentInfo carries package-level facts about the document.
type DocumentInfo struct {
	// Title is the dc:title core property.
	Title string `json:"title,omitempty"`
	// Creator is the dc:creator core property.
	Creator string `json:"creator,omitempty"`
	// HasHeader is true when the package contains a header part.
	HasHeader bool `json:"has_header"`
	// HasFooter is true when the package contains a footer part.
	HasFooter bool `json:"has_footer"`
	// HeaderText is the text of the last header part.
	HeaderText string `json:"header_text,omitempty"`
	// FooterText is the text of the last footer part.
	FooterText string `json:"footer_text,omitempty"`
}

// Stats counts the document's content.
type Stats struct {
	Paragraphs      int            `json:"paragraphs"`
	EmptyParagraphs int            `json:"empty_paragraphs"`
	Headings        int            `json:"headings"`
	HeadingsByLevel map[string]int `json:"headings_by_level"`
	Bullets         int            `json:"bullets"`
	Tables          int            `json:"tables"`
	CodeBlocks      int            `json:"code_blocks"`
	InfoBoxes       int            `json:"info_boxes"`
	WarningBoxes    int            `json:"warning_boxes"`
	Images          int            `json:"images"`
	PageBreaks      int            `json:"page_breaks"`
	EstimatedPages  int            `json:"estimated_pages"`
}

// Report is the full analysis result for one document.
type Report struct {
	// File is the document file name (no path).
	File string `json:"file"`
	// FileSize is the document size in bytes.
	FileSize int64 `json:"file_size"`
	// Document holds package-level facts.
	Document DocumentInfo `json:"document"`
	// Stats counts the content.
	Stats Stats `json:"stats"`
	// UsableHeight is the page budget used by the simulation.
	UsableHeight float64 `json:"usable_height"`
	// Pages are the simulated pages.
	Pages []PageSummary `json:"pages"`
	// Issues are the layout and structure findings.
	Issues []Issue `json:"issues"`
	// TableAnalyses holds one entry per analyzed data table.
	TableAnalyses []TableReport `json:"table_analyses"`
	// Summary counts all issues, table issues included, by severity.
	Summary map[Severity]int `json:"summary"`
	// Elements is the flow model (verbose mode only).
	Elements []ElementSummary `json:"elements,omitempty"`
}

// AllIssues returns the report issues followed by every table issue.
func (r *Report) AllIssues() []Issue {
	all := make([]Issue, 0, len(r.Issues))
	all = append(all, r.Issues...)
	for _, ta := range r.TableAnalyses {
		all = append(all, ta.Issues...)
	}
	return all
}

// BatchResult is the outcome of analysing one file in a batch.
type BatchResult struct {
	// Path is the analysed file path.
	Path string `json:"path"`
	// Report is set on success.
	Report *Report `json:"report,omitempty"`
	// Error is set on failure.
	Error string `json:"error,omitempty"`
}
