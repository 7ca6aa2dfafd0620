package widths

import (
	"fmt"
	"strings"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/config"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/layout"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
)

// Analyzer profiles the columns of data tables.
type Analyzer struct {
	cfg config.Config
}

// NewAnalyzer creates an Analyzer for the given table geometry.
func NewAnalyzer(cfg config.Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze returns one report per eligible data table, in document order.
// Tables with merged cells, fewer than the minimum data rows or fewer than
// the minimum columns are left out entirely.
func (a *Analyzer) Analyze(entities []models.Entity) []models.TableReport {
	var reports []models.TableReport
	section := ""
	ordinal := 0

	for _, ent := range entities {
		switch ent.Kind {
		case models.EntityHeading:
			if ent.Text != "" {
				section = ent.Text
			}
		case models.EntityTable:
			if ent.Table == nil {
				continue
			}
			if layout.ClassifyTable(a.cfg.Palette, ent.Table.FirstFill, ent.Table.ColCount()) != models.TableData {
				continue
			}
			ordinal++
			if !a.eligible(ent.Table) {
				continue
			}
			reports = append(reports, a.AnalyzeTable(ent.Table, ordinal, section))
		}
	}

	return reports
}

func (a *Analyzer) eligible(t *models.TableEntity) bool {
	return t.RowCount()-1 >= a.cfg.Widths.MinAnalyzedDataRows &&
		t.ColCount() >= a.cfg.Widths.MinAnalyzedColumns &&
		!t.HasMergedCells()
}

// AnalyzeTable profiles one merge-free table.
func (a *Analyzer) AnalyzeTable(t *models.TableEntity, ordinal int, section string) models.TableReport {
	cols := t.ColCount()
	report := models.TableReport{
		Index:   ordinal,
		Section: section,
		Headers: t.Headers(),
		Rows:    t.RowCount(),
		Cols:    cols,
		Columns: make([]models.ColumnProfile, cols),
		Issues:  []models.Issue{},
	}

	data := t.Rows[1:]
	for i := 0; i < cols; i++ {
		report.Columns[i] = a.profile(t, i, data)
	}

	report.Issues = a.columnIssues(ordinal, report.Columns, len(data))
	if hasKind(report.Issues, models.IssueWidthImbalance) {
		report.SuggestedWidths = Redistribute(a.cfg, report.Columns)
	}

	if cols >= a.cfg.Widths.MaxReadableColumns {
		report.Issues = append(report.Issues, models.Issue{
			Kind:     models.IssueTooManyColumns,
			Severity: models.SeverityInfo,
			Table:    ordinal,
			Message:  fmt.Sprintf("table #%d (%s) has %d columns and may be hard to read", ordinal, truncate(section, 30), cols),
			Detail:   strings.Join(report.Headers, " | "),
		})
	}

	return report
}

// profile measures column i over the data rows.
func (a *Analyzer) profile(t *models.TableEntity, i int, data []models.TableRow) models.ColumnProfile {
	alloc := a.allocatedWidth(t, i)
	usable := max(alloc-a.cfg.Glyphs.CellPadding, 1)

	maxWidth, empty := 0, 0
	for _, row := range data {
		text := row.Cells[i].Text
		if w := EstimateTextWidth(a.cfg.Glyphs, text); w > maxWidth {
			maxWidth = w
		}
		if strings.TrimSpace(text) == "" {
			empty++
		}
	}

	lines := float64(maxWidth) / float64(usable)
	if lines < 1 {
		lines = 1
	}
	emptyRatio := 0.0
	if len(data) > 0 {
		emptyRatio = float64(empty) / float64(len(data))
	}

	return models.ColumnProfile{
		Header:         t.Rows[0].Cells[i].Text,
		AllocatedWidth: alloc,
		MaxTextWidth:   maxWidth,
		Utilization:    models.Round(float64(maxWidth)/float64(alloc), 3),
		EstLines:       models.Round(lines, 1),
		EmptyRatio:     models.Round(emptyRatio, 2),
	}
}

// allocatedWidth prefers the header cell width, then the grid column, then
// an equal share of the total table width.
func (a *Analyzer) allocatedWidth(t *models.TableEntity, i int) int {
	if w := t.Rows[0].Cells[i].Width; w > 0 {
		return w
	}
	if i < len(t.GridWidths) && t.GridWidths[i] > 0 {
		return t.GridWidths[i]
	}
	return a.cfg.TotalTableWidth / t.ColCount()
}

func (a *Analyzer) columnIssues(ordinal int, columns []models.ColumnProfile, dataRows int) []models.Issue {
	w := a.cfg.Widths
	issues := []models.Issue{}
	imbalanceReported := false

	for i, col := range columns {
		if !imbalanceReported && col.EstLines >= w.ImbalanceLinesMin {
			for j, other := range columns {
				if j == i || other.Utilization >= w.ImbalanceUtilLow {
					continue
				}
				issues = append(issues, models.Issue{
					Kind:     models.IssueWidthImbalance,
					Severity: models.SeveritySuggest,
					Table:    ordinal,
					Columns:  []int{i, j},
					Message: fmt.Sprintf("column %q wraps to ~%.0f lines while column %q uses %.0f%%",
						col.Header, col.EstLines, other.Header, other.Utilization*100),
					Action: "redistribute the column widths",
				})
				imbalanceReported = true
				break
			}
		}

		if col.Utilization < w.WideWasteUtil && col.AllocatedWidth > w.WideWasteMinWidth {
			issues = append(issues, models.Issue{
				Kind:     models.IssueWideWaste,
				Severity: models.SeverityInfo,
				Table:    ordinal,
				Columns:  []int{i},
				Message:  fmt.Sprintf("column %q uses %.0f%% of %d DXA", col.Header, col.Utilization*100, col.AllocatedWidth),
			})
		}

		if col.EstLines >= w.CellOverflowLines {
			issues = append(issues, models.Issue{
				Kind:     models.IssueCellOverflow,
				Severity: models.SeverityInfo,
				Table:    ordinal,
				Columns:  []int{i},
				Message:  fmt.Sprintf("column %q holds a cell of ~%.0f lines", col.Header, col.EstLines),
			})
		}

		if col.EmptyRatio >= w.EmptyColumnRatio && dataRows >= w.EmptyColumnMinRows {
			issues = append(issues, models.Issue{
				Kind:     models.IssueEmptyColumn,
				Severity: models.SeverityInfo,
				Table:    ordinal,
				Columns:  []int{i},
				Message:  fmt.Sprintf("column %q is blank in %.0f%% of rows", col.Header, col.EmptyRatio*100),
			})
		}
	}

	return issues
}

func hasKind(issues []models.Issue, kind models.IssueKind) bool {
	for _, iss := range issues {
		if iss.Kind == kind {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
