package models

import (
	"reflect"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		v        float64
		places   int
		expected float64
	}{
		{2.25, 1, 2.2},
		{0.5, 0, 0},
		{1.5, 0, 2},
		{91.94, 1, 91.9},
		{0.0333, 3, 0.033},
		{1170.0 / 600, 1, 1.9},
		{9990.0 / 20000, 3, 0.499},
		{1260.0 / 630, 1, 2},
	}

	for _, tt := range tests {
		if got := Round(tt.v, tt.places); got != tt.expected {
			t.Errorf("Round(%v, %d) = %v, expected %v", tt.v, tt.places, got, tt.expected)
		}
	}
}

func TestCountBySeverity(t *testing.T) {
	counts := CountBySeverity(nil)
	if !reflect.DeepEqual(counts, map[Severity]int{SeverityWarn: 0, SeveritySuggest: 0, SeverityInfo: 0}) {
		t.Errorf("CountBySeverity(nil) = %v", counts)
	}

	counts = CountBySeverity([]Issue{
		{Severity: SeverityWarn},
		{Severity: SeverityWarn},
		{Severity: SeverityInfo},
	})
	if counts[SeverityWarn] != 2 || counts[SeverityInfo] != 1 || counts[SeveritySuggest] != 0 {
		t.Errorf("counts = %v", counts)
	}
}

func TestTableEntity(t *testing.T) {
	table := &TableEntity{Rows: []TableRow{
		{Cells: []TableCell{{Text: "Key", ColSpan: 1}, {Text: "Value", ColSpan: 1}}},
		{Cells: []TableCell{{Text: "a", ColSpan: 1}, {Text: "", ColSpan: 1}}},
	}}

	if table.RowCount() != 2 || table.ColCount() != 2 {
		t.Errorf("shape = %dx%d, expected 2x2", table.RowCount(), table.ColCount())
	}
	if !reflect.DeepEqual(table.Headers(), []string{"Key", "Value"}) {
		t.Errorf("Headers() = %v", table.Headers())
	}
	if table.Text() != "Key\nValue\na" {
		t.Errorf("Text() = %q", table.Text())
	}
	if table.HasMergedCells() {
		t.Error("regular table reported as merged")
	}

	spanned := &TableEntity{Rows: []TableRow{
		{Cells: []TableCell{{Text: "Wide", ColSpan: 2}}},
		{Cells: []TableCell{{ColSpan: 1}}},
	}}
	if !spanned.HasMergedCells() {
		t.Error("gridSpan not reported as merged")
	}

	ragged := &TableEntity{Rows: []TableRow{
		{Cells: []TableCell{{ColSpan: 1}, {ColSpan: 1}}},
		{Cells: []TableCell{{ColSpan: 1}}},
	}}
	if !ragged.HasMergedCells() {
		t.Error("ragged rows not reported as merged")
	}

	empty := &TableEntity{}
	if empty.ColCount() != 0 || empty.Headers() != nil {
		t.Error("empty table should have no columns")
	}
}

func TestPageSummary(t *testing.T) {
	page := Page{
		Number:     3,
		UsedHeight: 120.04,
		FillPct:    26.27,
		Elements: []Element{
			Heading{Meta: Meta{Index: 4, EstHeight: 42}, Level: 2, Text: "Setup"},
			Image{Meta: Meta{Index: 5, EstHeight: 78}},
		},
	}

	s := page.Summary()
	if s.Page != 3 || s.UsedHeight != 120 || s.FillPct != 26.3 {
		t.Errorf("summary = %+v", s)
	}
	if !s.HasImage || s.HeadingCount != 1 || s.TableCount != 0 {
		t.Errorf("counts = %+v", s)
	}
	if !reflect.DeepEqual(s.Elements, []int{4, 5}) {
		t.Errorf("Elements = %v, expected [4 5]", s.Elements)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(Table{Meta: Meta{Index: 7, EstHeight: 72}, Rows: 3, Cols: 2, TableKind: TableData})
	expected := ElementSummary{Index: 7, Type: KindTable, EstHeight: 72, Rows: 3, Cols: 2, TableKind: TableData}
	if s != expected {
		t.Errorf("Summarize() = %+v, expected %+v", s, expected)
	}
}
