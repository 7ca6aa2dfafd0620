package output

import (
	"fmt"
	"path/filepath"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the batch summary workbook.
const (
	SummarySheet = "Summary"
	IssuesSheet  = "Issues"
)

var (
	summaryHeader = []any{"File", "Pages", "WARN", "SUGGEST", "INFO", "Error"}
	issuesHeader  = []any{"File", "Page", "Severity", "Type", "Table", "Message", "Action"}
)

// WriteSummaryWorkbook writes one Summary row per document and one Issues
// row per finding, table findings included.
func WriteSummaryWorkbook(path string, results []models.BatchResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(IssuesSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for _, sheet := range []struct {
		name   string
		header []any
	}{
		{SummarySheet, summaryHeader},
		{IssuesSheet, issuesHeader},
	} {
		if err := f.SetSheetRow(sheet.name, "A1", &sheet.header); err != nil {
			return err
		}
		if err := f.SetRowStyle(sheet.name, 1, 1, bold); err != nil {
			return err
		}
	}

	issueRow := 2
	for i, res := range results {
		name := filepath.Base(res.Path)
		row := []any{name, 0, 0, 0, 0, res.Error}
		if res.Report != nil {
			s := res.Report.Summary
			row = []any{name, len(res.Report.Pages), s[models.SeverityWarn], s[models.SeveritySuggest], s[models.SeverityInfo], ""}
		}
		if err := setRow(f, SummarySheet, i+2, row); err != nil {
			return err
		}

		if res.Report == nil {
			continue
		}
		for _, iss := range res.Report.AllIssues() {
			row := []any{name, iss.Page, string(iss.Severity), string(iss.Kind), iss.Table, iss.Message, iss.Action}
			if err := setRow(f, IssuesSheet, issueRow, row); err != nil {
				return err
			}
			issueRow++
		}
	}

	if err := f.SetColWidth(SummarySheet, "A", "A", 40); err != nil {
		return err
	}
	if err := f.SetColWidth(IssuesSheet, "F", "F", 80); err != nil {
		return err
	}
	if issueRow > 2 {
		ref := fmt.Sprintf("A1:G%d", issueRow-1)
		if err := f.AutoFilter(IssuesSheet, ref, nil); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
