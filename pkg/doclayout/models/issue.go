package models

// Severity grades an issue.
type Severity string

const (
	SeverityWarn    Severity = "WARN"
	SeverityInfo    Severity = "INFO"
	SeveritySuggest Severity = "SUGGEST"
)

// IssueKind names a detected layout hazard.
type IssueKind string

// Page layout issues.
const (
	IssueImageNeedsPageBreak IssueKind = "IMAGE_NEEDS_PAGE_BREAK"
	IssueImageOverflow       IssueKind = "IMAGE_OVERFLOW"
	IssueOrphanHeading       IssueKind = "ORPHAN_HEADING"
	IssueTableSplit          IssueKind = "TABLE_SPLIT"
	IssueSparsePage          IssueKind = "SPARSE_PAGE"
	IssueConsecutiveSparse   IssueKind = "CONSECUTIVE_SPARSE"
	IssueDuplicateHeading    IssueKind = "DUPLICATE_HEADING"
	IssueLongSection         IssueKind = "LONG_SECTION_NO_SUBDIVISION"
)

// Table width issues.
const (
	IssueWidthImbalance IssueKind = "WIDTH_IMBALANCE"
	IssueWideWaste      IssueKind = "WIDE_WASTE"
	IssueCellOverflow   IssueKind = "CELL_OVERFLOW"
	IssueEmptyColumn    IssueKind = "EMPTY_COLUMN"
	IssueTooManyColumns IssueKind = "TOO_MANY_COLUMNS"
)

// Document structure issues.
const (
	IssueMissingHeader         IssueKind = "MISSING_HEADER"
	IssueMissingFooter         IssueKind = "MISSING_FOOTER"
	IssueHeadingLevelSkip      IssueKind = "HEADING_LEVEL_SKIP"
	IssueConsecutivePageBreaks IssueKind = "CONSECUTIVE_PAGE_BREAKS"
	IssueNoDataTable           IssueKind = "NO_DATA_TABLE"
	IssueNoPageBreak           IssueKind = "NO_PAGE_BREAK"
	IssueEmptyCode             IssueKind = "EMPTY_CODE"
	IssueTruncatedJSON         IssueKind = "TRUNCATED_JSON"
)

// Issue is one advisory finding.
type Issue struct {
	// Kind is the issue type.
	Kind IssueKind `json:"type"`
	// Severity is WARN, INFO or SUGGEST.
	Severity Severity `json:"severity"`
	// Page is the 1-based page the issue was found on (0 if not page-bound).
	Page int `json:"page,omitempty"`
	// Index is the source block index of the offending element.
	Index *int `json:"index,omitempty"`
	// Table is the 1-based data table ordinal (table issues only).
	Table int `json:"table,omitempty"`
	// Columns are the 0-based column indices involved (table issues only).
	Columns []int `json:"columns,omitempty"`
	// Message describes the finding.
	Message string `json:"message"`
	// Detail adds measurements behind the finding.
	Detail string `json:"detail,omitempty"`
	// Action is the suggested remediation.
	Action string `json:"action,omitempty"`
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// CountBySeverity tallies issues per severity. All three keys are present.
func CountBySeverity(issues []Issue) map[Severity]int {
	counts := map[Severity]int{
		SeverityWarn:    0,
		SeveritySuggest: 0,
		SeverityInfo:    0,
	}
	for _, iss := range issues {
		counts[iss.Severity]++
	}
	return counts
}
