package layout

import (
	"fmt"
	"strings"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/config"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
)

// Detector applies the page layout rules to a simulated page assignment.
type Detector struct {
	usable float64
	rules  config.LayoutThresholds
}

// NewDetector creates a Detector for the given geometry and thresholds.
func NewDetector(cfg config.Config) *Detector {
	return &Detector{usable: cfg.Usable(), rules: cfg.Layout}
}

// Detect returns the layout issues of elems as packed into pages. Rules that
// find nothing to evaluate contribute no issues.
func (d *Detector) Detect(elems []models.Element, pages []models.Page) []models.Issue {
	var issues []models.Issue
	for i, page := range pages {
		var prev *models.Page
		if i > 0 {
			prev = &pages[i-1]
		}
		issues = append(issues, d.pageIssues(page, prev)...)
	}
	issues = append(issues, d.sparsePages(pages)...)
	issues = append(issues, d.duplicateHeadings(elems, pages)...)
	issues = append(issues, d.longSections(elems)...)
	return issues
}

// pageIssues walks one page accumulating the vertical offset.
func (d *Detector) pageIssues(page models.Page, prev *models.Page) []models.Issue {
	var issues []models.Issue
	y := 0.0

	for _, e := range page.Elements {
		y += e.Height()
		remaining := d.usable - y

		switch v := e.(type) {
		case models.Image:
			if !page.StartedByBreak && page.Number > 1 && !intentionalPlacement(v, prev) {
				section := v.SectionTitle
				if section == "" {
					section = "?"
				}
				issues = append(issues, models.Issue{
					Kind:     models.IssueImageNeedsPageBreak,
					Severity: models.SeverityWarn,
					Page:     page.Number,
					Index:    models.IntPtr(v.Index),
					Message:  fmt.Sprintf("image (%.0fx%.0fpt) shares a page with preceding content", v.WidthPt, v.HeightPt),
					Detail:   fmt.Sprintf("a page break before section %q would give the image its own page", section),
					Action:   "insert a page break before the section holding the image",
				})
			}
			if remaining < 0 {
				issues = append(issues, models.Issue{
					Kind:     models.IssueImageOverflow,
					Severity: models.SeverityWarn,
					Page:     page.Number,
					Index:    models.IntPtr(v.Index),
					Message:  fmt.Sprintf("image crosses the page boundary by %.0fpt", -remaining),
					Detail:   "the renderer may push the image to the next page and leave a gap",
					Action:   "insert a page break before the image section",
				})
			}

		case models.Heading:
			if remaining < d.rules.OrphanHeadingRoom {
				issues = append(issues, models.Issue{
					Kind:     models.IssueOrphanHeading,
					Severity: models.SeverityInfo,
					Page:     page.Number,
					Index:    models.IntPtr(v.Index),
					Message:  fmt.Sprintf("H%d %q sits at the bottom of the page (%.0fpt left)", v.Level, truncate(v.Text, 30), remaining),
					Detail:   "the heading may stay on this page while its content moves on",
					Action:   "consider a page break before the heading",
				})
			}

		case models.Table:
			if v.TableKind != models.TableData {
				continue
			}
			room := remaining + v.EstHeight
			if v.EstHeight > room && room < d.usable*d.rules.TableSplitRoomRatio {
				issues = append(issues, models.Issue{
					Kind:     models.IssueTableSplit,
					Severity: models.SeverityInfo,
					Page:     page.Number,
					Index:    models.IntPtr(v.Index),
					Message:  fmt.Sprintf("table (%d rows) may split at the bottom of the page", v.Rows),
					Detail:   fmt.Sprintf("table height ~%.0fpt, room left ~%.0fpt", v.EstHeight, room),
					Action:   "insert a page break before the table or shrink it",
				})
			}
		}
	}

	return issues
}

// intentionalPlacement reports whether an image that overflowed onto a new
// page belongs to a section whose heading opened the previous page.
func intentionalPlacement(img models.Image, prev *models.Page) bool {
	if prev == nil || !prev.StartedByBreak || img.SectionTitle == "" {
		return false
	}
	for _, e := range prev.Elements {
		h, ok := e.(models.Heading)
		if ok && h.Text != "" && strings.Contains(img.SectionTitle, h.Text) {
			return true
		}
	}
	return false
}

// sparsePages flags pages below the fill threshold. Each sparse page that
// extends a run of two or more also reports the run.
func (d *Detector) sparsePages(pages []models.Page) []models.Issue {
	var issues []models.Issue
	run := 0

	for _, page := range pages {
		if page.FillPct >= d.rules.SparsePagePct {
			run = 0
			continue
		}
		issues = append(issues, models.Issue{
			Kind:     models.IssueSparsePage,
			Severity: models.SeverityInfo,
			Page:     page.Number,
			Message:  fmt.Sprintf("page %d is %.1f%% full", page.Number, page.FillPct),
		})
		run++
		if run >= 2 {
			issues = append(issues, models.Issue{
				Kind:     models.IssueConsecutiveSparse,
				Severity: models.SeverityInfo,
				Page:     page.Number,
				Message:  fmt.Sprintf("pages %d-%d are consecutively sparse", page.Number-1, page.Number),
			})
		}
	}

	return issues
}

// duplicateHeadings flags a heading repeating the previous heading's level
// and text.
func (d *Detector) duplicateHeadings(elems []models.Element, pages []models.Page) []models.Issue {
	pageOf := pageIndex(pages)
	var issues []models.Issue
	var prev *models.Heading

	for _, e := range elems {
		h, ok := e.(models.Heading)
		if !ok {
			continue
		}
		if prev != nil && prev.Level == h.Level && prev.Text == h.Text {
			issues = append(issues, models.Issue{
				Kind:     models.IssueDuplicateHeading,
				Severity: models.SeverityWarn,
				Page:     pageOf[h.Index],
				Index:    models.IntPtr(h.Index),
				Message:  fmt.Sprintf("consecutive identical headings: H%d %q", h.Level, truncate(h.Text, 40)),
			})
		}
		prev = &h
	}

	return issues
}

// longSections flags top-level sections without sub-headings whose content
// spans more than the configured number of pages.
func (d *Detector) longSections(elems []models.Element) []models.Issue {
	level := d.rules.SectionLevel
	limit := d.usable * d.rules.LongSectionPages
	var issues []models.Issue

	for i, e := range elems {
		h, ok := e.(models.Heading)
		if !ok || h.Level != level {
			continue
		}

		height := h.EstHeight
		subdivided := false
		for _, next := range elems[i+1:] {
			if nh, ok := next.(models.Heading); ok {
				if nh.Level >= 1 && nh.Level <= level {
					break
				}
				if nh.Level > level {
					subdivided = true
					break
				}
			}
			height += next.Height()
		}

		if !subdivided && height > limit {
			issues = append(issues, models.Issue{
				Kind:     models.IssueLongSection,
				Severity: models.SeverityInfo,
				Index:    models.IntPtr(h.Index),
				Message:  fmt.Sprintf("H%d %q runs ~%.0fpt (%.1f pages) without a sub-heading", h.Level, truncate(h.Text, 40), height, height/d.usable),
				Action:   fmt.Sprintf("split the section with H%d headings", level+1),
			})
		}
	}

	return issues
}

// pageIndex maps element source indices to page numbers.
func pageIndex(pages []models.Page) map[int]int {
	m := make(map[int]int)
	for _, p := range pages {
		for _, e := range p.Elements {
			if _, seen := m[e.Seq()]; !seen {
				m[e.Seq()] = p.Number
			}
		}
	}
	return m
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
