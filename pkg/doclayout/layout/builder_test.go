package layout

import (
	"strings"
	"testing"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/config"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
)

func tableEntity(fill string, rows, cols int) *models.TableEntity {
	t := &models.TableEntity{FirstFill: fill}
	for r := 0; r < rows; r++ {
		row := models.TableRow{}
		for c := 0; c < cols; c++ {
			row.Cells = append(row.Cells, models.TableCell{Text: "x", ColSpan: 1})
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func TestBuildHeights(t *testing.T) {
	b := NewBuilder(config.Default())

	tests := []struct {
		name     string
		entity   models.Entity
		kind     models.ElementKind
		expected float64
	}{
		{"h2", models.Entity{Kind: models.EntityHeading, Level: 2}, models.KindHeading, 42},
		{"h3", models.Entity{Kind: models.EntityHeading, Level: 3}, models.KindHeading, 34},
		{"h4", models.Entity{Kind: models.EntityHeading, Level: 4}, models.KindHeading, 28},
		{"h1 falls back", models.Entity{Kind: models.EntityHeading, Level: 1}, models.KindHeading, 22},
		{"empty paragraph", models.Entity{Kind: models.EntityParagraph}, models.KindParagraph, 22},
		{"80 chars", models.Entity{Kind: models.EntityParagraph, Text: strings.Repeat("a", 80)}, models.KindParagraph, 22},
		{"81 chars", models.Entity{Kind: models.EntityParagraph, Text: strings.Repeat("a", 81)}, models.KindParagraph, 44},
		{"160 cjk chars", models.Entity{Kind: models.EntityParagraph, Text: strings.Repeat("가", 160)}, models.KindParagraph, 44},
		{"bullet", models.Entity{Kind: models.EntityBullet, Text: "item"}, models.KindBullet, 20},
		{"empty", models.Entity{Kind: models.EntityEmpty}, models.KindEmpty, 8},
		{"image", models.Entity{Kind: models.EntityImage, Image: &models.ImageEntity{WidthEMU: 1270000, HeightEMU: 635000}}, models.KindImage, 80},
		{"code dark", models.Entity{Kind: models.EntityTable, Table: tableEntity("1E1E1E", 5, 1)}, models.KindTable, 100},
		{"code light", models.Entity{Kind: models.EntityTable, Table: tableEntity("F5F5F5", 3, 1)}, models.KindTable, 68},
		{"info box", models.Entity{Kind: models.EntityTable, Table: tableEntity("E8F4FD", 4, 1)}, models.KindTable, 45},
		{"warning box", models.Entity{Kind: models.EntityTable, Table: tableEntity("FFF3CD", 1, 1)}, models.KindTable, 45},
		{"data table", models.Entity{Kind: models.EntityTable, Table: tableEntity("1B3664", 4, 3)}, models.KindTable, 94},
		{"header only", models.Entity{Kind: models.EntityTable, Table: tableEntity("", 1, 3)}, models.KindTable, 28},
		{"page break", models.Entity{Kind: models.EntityPageBreak}, models.KindPageBreak, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elems := b.Build([]models.Entity{tt.entity})
			if len(elems) != 1 {
				t.Fatalf("got %d elements, expected 1", len(elems))
			}
			if elems[0].Kind() != tt.kind {
				t.Errorf("kind = %s, expected %s", elems[0].Kind(), tt.kind)
			}
			if elems[0].Height() != tt.expected {
				t.Errorf("height = %v, expected %v", elems[0].Height(), tt.expected)
			}
		})
	}
}

func TestBuildKeepsOrder(t *testing.T) {
	entities := []models.Entity{
		{Kind: models.EntityHeading, Index: 0, Level: 2, Text: "A"},
		{Kind: models.EntityEmpty, Index: 1},
		{Kind: models.EntityPageBreak, Index: 2},
		{Kind: models.EntityParagraph, Index: 2},
		{Kind: models.EntityImage, Index: 3, Image: &models.ImageEntity{WidthEMU: 12700, HeightEMU: 12700, SectionTitle: "A"}},
		{Kind: models.EntityTable, Index: 4, Table: tableEntity("", 2, 2)},
	}

	elems := NewBuilder(config.Default()).Build(entities)
	if len(elems) != len(entities) {
		t.Fatalf("got %d elements, expected %d", len(elems), len(entities))
	}
	for i, e := range elems {
		if e.Seq() != entities[i].Index {
			t.Errorf("element %d index = %d, expected %d", i, e.Seq(), entities[i].Index)
		}
		if i > 0 && e.Seq() < elems[i-1].Seq() {
			t.Errorf("element %d index decreased", i)
		}
	}

	img, ok := elems[4].(models.Image)
	if !ok {
		t.Fatalf("element 4 is %T, expected models.Image", elems[4])
	}
	if img.WidthPt != 1 || img.HeightPt != 1 || img.SectionTitle != "A" {
		t.Errorf("image = %+v", img)
	}
	if tbl := elems[5].(models.Table); tbl.Rows != 2 || tbl.Cols != 2 || tbl.TableKind != models.TableData {
		t.Errorf("table = %+v", tbl)
	}
}

func TestClassifyTable(t *testing.T) {
	p := config.Default().Palette

	tests := []struct {
		fill     string
		cols     int
		expected models.TableKind
	}{
		{"1E1E1E", 1, models.TableCodeDark},
		{"2d2d2d", 3, models.TableCodeDark},
		{"#1A1A1A", 1, models.TableCodeDark},
		{"F5F5F5", 1, models.TableCodeLight},
		{"F5F5F5", 2, models.TableData},
		{"E8F0F7", 1, models.TableInfoBox},
		{"E8F0F7", 2, models.TableData},
		{"FFF8E1", 1, models.TableWarningBox},
		{"1B3664", 4, models.TableData},
		{"ABCDEF", 1, models.TableData},
		{"", 1, models.TableData},
	}

	for _, tt := range tests {
		result := ClassifyTable(p, tt.fill, tt.cols)
		if result != tt.expected {
			t.Errorf("ClassifyTable(%q, %d) = %s, expected %s", tt.fill, tt.cols, result, tt.expected)
		}
	}
}
