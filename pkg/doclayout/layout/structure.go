package layout

import (
	"fmt"
	"strings"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/config"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
)

// CheckStructure reports document-level problems: missing header or footer,
// heading hierarchy gaps, page break usage, data table presence and code
// block integrity.
func CheckStructure(cfg config.Config, info models.DocumentInfo, entities []models.Entity, elems []models.Element) []models.Issue {
	var issues []models.Issue

	if !info.HasHeader {
		issues = append(issues, models.Issue{
			Kind:     models.IssueMissingHeader,
			Severity: models.SeverityWarn,
			Message:  "document has no header",
		})
	}
	if !info.HasFooter {
		issues = append(issues, models.Issue{
			Kind:     models.IssueMissingFooter,
			Severity: models.SeverityWarn,
			Message:  "document has no footer",
		})
	}

	issues = append(issues, headingSkips(elems)...)

	hasData := false
	for _, e := range elems {
		if t, ok := e.(models.Table); ok && t.TableKind == models.TableData {
			hasData = true
			break
		}
	}
	if !hasData {
		issues = append(issues, models.Issue{
			Kind:     models.IssueNoDataTable,
			Severity: models.SeverityInfo,
			Message:  "document has no data tables",
		})
	}

	issues = append(issues, pageBreakIssues(cfg.Layout.BreakProximity, elems)...)
	issues = append(issues, codeBlockIssues(cfg.Palette, entities)...)
	return issues
}

func headingSkips(elems []models.Element) []models.Issue {
	var issues []models.Issue
	prev := 0
	for _, e := range elems {
		h, ok := e.(models.Heading)
		if !ok {
			continue
		}
		if prev > 0 && h.Level > prev+1 {
			issues = append(issues, models.Issue{
				Kind:     models.IssueHeadingLevelSkip,
				Severity: models.SeverityWarn,
				Index:    models.IntPtr(h.Index),
				Message:  fmt.Sprintf("heading level skips from H%d to H%d (%q)", prev, h.Level, h.Text),
			})
		}
		prev = h.Level
	}
	return issues
}

func pageBreakIssues(proximity int, elems []models.Element) []models.Issue {
	var breaks []int
	for _, e := range elems {
		if e.Kind() == models.KindPageBreak {
			breaks = append(breaks, e.Seq())
		}
	}

	if len(breaks) == 0 {
		return []models.Issue{{
			Kind:     models.IssueNoPageBreak,
			Severity: models.SeverityInfo,
			Message:  "document has no explicit page breaks",
		}}
	}

	var issues []models.Issue
	for i := 1; i < len(breaks); i++ {
		prev, cur := breaks[i-1], breaks[i]
		if cur-prev <= proximity {
			issues = append(issues, models.Issue{
				Kind:     models.IssueConsecutivePageBreaks,
				Severity: models.SeverityWarn,
				Index:    models.IntPtr(cur),
				Message:  fmt.Sprintf("consecutive page breaks at blocks %d and %d may leave a blank page", prev, cur),
			})
		}
	}
	return issues
}

// codeBlockIssues checks that code tables hold text and that JSON-looking
// code is not cut off.
func codeBlockIssues(palette config.Palette, entities []models.Entity) []models.Issue {
	var issues []models.Issue
	ordinal := 0

	for _, ent := range entities {
		if ent.Kind != models.EntityTable || ent.Table == nil {
			continue
		}
		kind := ClassifyTable(palette, ent.Table.FirstFill, ent.Table.ColCount())
		if !kind.IsCode() {
			continue
		}
		ordinal++

		code := strings.TrimSpace(ent.Table.Text())
		if code == "" {
			issues = append(issues, models.Issue{
				Kind:     models.IssueEmptyCode,
				Severity: models.SeverityWarn,
				Index:    models.IntPtr(ent.Index),
				Message:  fmt.Sprintf("code block #%d is empty", ordinal),
			})
			continue
		}

		if !looksLikeJSON(code) {
			continue
		}
		var closer string
		switch {
		case strings.HasPrefix(code, "{") && !strings.HasSuffix(code, "}"):
			closer = "}"
		case strings.HasPrefix(code, "[") && !strings.HasSuffix(code, "]"):
			closer = "]"
		default:
			continue
		}
		issues = append(issues, models.Issue{
			Kind:     models.IssueTruncatedJSON,
			Severity: models.SeverityWarn,
			Index:    models.IntPtr(ent.Index),
			Message:  fmt.Sprintf("code block #%d: JSON does not end with %q and may be truncated", ordinal, closer),
			Detail:   tail(code, 60),
		})
	}

	return issues
}

// looksLikeJSON excludes box-drawing diagrams, which also start with braces.
func looksLikeJSON(s string) bool {
	return strings.ContainsAny(s, `":`) && !strings.ContainsAny(s, "│─")
}

// tail returns the last n runes of s.
func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
