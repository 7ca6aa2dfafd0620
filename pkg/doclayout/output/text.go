package output

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
)

const (
	barWidth  = 20
	ruleWidth = 60
)

// FillBar draws a page fill percentage as a fixed-width bar, one block per
// five percent.
func FillBar(pct float64) string {
	n := int(pct / 5)
	n = min(max(n, 0), barWidth)
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}

// WriteText renders the report as a human-readable text report.
func WriteText(w io.Writer, report *models.Report) error {
	bw := bufio.NewWriter(w)
	rule := strings.Repeat("─", ruleWidth)
	banner := strings.Repeat("=", ruleWidth)

	fmt.Fprintf(bw, "%s\n  DOCX layout report\n%s\n", banner, banner)
	fmt.Fprintf(bw, "  file: %s (%d bytes)\n", report.File, report.FileSize)
	if report.Document.Title != "" {
		fmt.Fprintf(bw, "  title: %s\n", report.Document.Title)
	}
	if report.Document.Creator != "" {
		fmt.Fprintf(bw, "  creator: %s\n", report.Document.Creator)
	}
	fmt.Fprintf(bw, "  header: %s %s\n", mark(report.Document.HasHeader), truncate(report.Document.HeaderText, 50))
	fmt.Fprintf(bw, "  footer: %s %s\n", mark(report.Document.HasFooter), truncate(report.Document.FooterText, 50))

	s := report.Stats
	fmt.Fprintf(bw, "\n%s\n  content\n%s\n", rule, rule)
	fmt.Fprintf(bw, "  paragraphs:    %5d (empty %d)\n", s.Paragraphs, s.EmptyParagraphs)
	fmt.Fprintf(bw, "  headings:      %5d %s\n", s.Headings, levels(s.HeadingsByLevel))
	fmt.Fprintf(bw, "  bullets:       %5d\n", s.Bullets)
	fmt.Fprintf(bw, "  data tables:   %5d\n", s.Tables)
	fmt.Fprintf(bw, "  code blocks:   %5d\n", s.CodeBlocks)
	fmt.Fprintf(bw, "  boxes:         %5d info, %d warning\n", s.InfoBoxes, s.WarningBoxes)
	fmt.Fprintf(bw, "  images:        %5d\n", s.Images)
	fmt.Fprintf(bw, "  page breaks:   %5d\n", s.PageBreaks)

	fmt.Fprintf(bw, "\n%s\n  pages (~%d, usable %.0fpt)\n%s\n", rule, len(report.Pages), report.UsableHeight, rule)
	for _, p := range report.Pages {
		var notes []string
		if p.StartedByBreak {
			notes = append(notes, "break")
		}
		if p.HasImage {
			notes = append(notes, "image")
		}
		if p.HeadingCount > 0 {
			notes = append(notes, fmt.Sprintf("%d headings", p.HeadingCount))
		}
		if p.TableCount > 0 {
			notes = append(notes, fmt.Sprintf("%d tables", p.TableCount))
		}
		fmt.Fprintf(bw, "  p.%-3d %s %5.1f%%  %s\n", p.Page, FillBar(p.FillPct), p.FillPct, strings.Join(notes, ", "))
	}

	if len(report.Issues) > 0 {
		fmt.Fprintf(bw, "\n%s\n  issues\n%s\n", rule, rule)
		for _, iss := range report.Issues {
			writeIssue(bw, "  ", iss)
		}
	}

	if len(report.TableAnalyses) > 0 {
		fmt.Fprintf(bw, "\n%s\n  column widths (%d tables)\n%s\n", rule, len(report.TableAnalyses), rule)
		for _, t := range report.TableAnalyses {
			fmt.Fprintf(bw, "  table #%d (%s)\n", t.Index, truncate(t.Section, 40))
			fmt.Fprintf(bw, "    headers: %s\n", strings.Join(t.Headers, " | "))
			for _, c := range t.Columns {
				fmt.Fprintf(bw, "    - %s: %d DXA, %.0f%% used, ~%.1f lines\n",
					c.Header, c.AllocatedWidth, c.Utilization*100, c.EstLines)
			}
			for _, iss := range t.Issues {
				writeIssue(bw, "    ", iss)
			}
			if len(t.SuggestedWidths) > 0 {
				fmt.Fprintf(bw, "    suggested widths: %v\n", t.SuggestedWidths)
			}
		}
	}

	total := 0
	for _, n := range report.Summary {
		total += n
	}
	fmt.Fprintf(bw, "\n%s\n  summary: %d issues (WARN: %d, SUGGEST: %d, INFO: %d)\n%s\n",
		rule, total,
		report.Summary[models.SeverityWarn],
		report.Summary[models.SeveritySuggest],
		report.Summary[models.SeverityInfo],
		banner)

	return bw.Flush()
}

func writeIssue(w io.Writer, indent string, iss models.Issue) {
	loc := ""
	if iss.Page > 0 {
		loc = fmt.Sprintf(" p.%d", iss.Page)
	}
	fmt.Fprintf(w, "%s[%s]%s %s: %s\n", indent, iss.Severity, loc, iss.Kind, iss.Message)
	if iss.Detail != "" {
		fmt.Fprintf(w, "%s    %s\n", indent, iss.Detail)
	}
	if iss.Action != "" {
		fmt.Fprintf(w, "%s    -> %s\n", indent, iss.Action)
	}
}

func levels(byLevel map[string]int) string {
	if len(byLevel) == 0 {
		return ""
	}
	keys := make([]string, 0, len(byLevel))
	for k := range byLevel {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s:%d", strings.ToUpper(k), byLevel[k])
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func mark(ok bool) string {
	if ok {
		return "O"
	}
	return "X"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
