package parser

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
)

// parseTable consumes tokens up to the end of the current w:tbl.
// Nested tables are skipped; their text does not belong to the outer grid.
func parseTable(decoder *xml.Decoder) (*models.TableEntity, error) {
	table := &models.TableEntity{}
	fillSeen := false
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "gridCol":
				table.GridWidths = append(table.GridWidths, parseDXA(attrValue(t, "w")))
			case "tr":
				row, err := parseRow(decoder, table, &fillSeen)
				if err != nil {
					return nil, err
				}
				table.Rows = append(table.Rows, row)
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	return table, nil
}

// parseRow consumes one w:tr.
func parseRow(decoder *xml.Decoder, table *models.TableEntity, fillSeen *bool) (models.TableRow, error) {
	var row models.TableRow
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return row, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "tc" && t.Name.Space == nsW {
				cell, fill, err := parseCell(decoder)
				if err != nil {
					return row, err
				}
				if !*fillSeen {
					table.FirstFill = fill
					*fillSeen = true
				}
				row.Cells = append(row.Cells, cell)
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	return row, nil
}

// parseCell consumes one w:tc and returns the cell and its shading fill.
func parseCell(decoder *xml.Decoder) (models.TableCell, string, error) {
	cell := models.TableCell{ColSpan: 1}
	var fill string
	var paragraphs []string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return cell, fill, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				if err := decoder.Skip(); err != nil {
					return cell, fill, err
				}
				continue
			case "p":
				info, err := parseParagraph(decoder)
				if err != nil {
					return cell, fill, err
				}
				if info.text != "" {
					paragraphs = append(paragraphs, info.text)
				}
				continue
			case "gridSpan":
				if span, err := strconv.Atoi(attrValue(t, "val")); err == nil && span > 1 {
					cell.ColSpan = span
				}
			case "tcW":
				// pct and auto widths are not DXA
				if typ := attrValue(t, "type"); typ == "" || typ == "dxa" {
					cell.Width = parseDXA(attrValue(t, "w"))
				}
			case "shd":
				if fill == "" {
					fill = normalizeFill(attrValue(t, "fill"))
				}
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	cell.Text = strings.Join(paragraphs, " ")
	return cell, fill, nil
}

// normalizeFill upper-cases a hex fill; "auto" means no fill.
func normalizeFill(s string) string {
	s = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if s == "AUTO" {
		return ""
	}
	return s
}
