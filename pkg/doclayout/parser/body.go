package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
)

// paragraphInfo holds the facts collected from one w:p element.
type paragraphInfo struct {
	styleID   string
	text      string
	numbered  bool
	pageBreak bool
	extentCX  int64
	extentCY  int64
	embedID   string
}

// bodyState tracks context that spans body blocks.
type bodyState struct {
	index       int
	lastHeading string
	entities    []models.Entity
}

// parseBody walks the children of w:body in document order.
func (dr *docReader) parseBody(data []byte) ([]models.Entity, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	state := &bodyState{}

	inBody := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if !inBody {
				if t.Name.Local == "body" && t.Name.Space == nsW {
					inBody = true
				}
				continue
			}
			switch {
			case t.Name.Local == "p" && t.Name.Space == nsW:
				info, err := parseParagraph(decoder)
				if err != nil {
					return nil, fmt.Errorf("paragraph %d: %w", state.index, err)
				}
				dr.emitParagraph(state, info)
				state.index++
			case t.Name.Local == "tbl" && t.Name.Space == nsW:
				table, err := parseTable(decoder)
				if err != nil {
					return nil, fmt.Errorf("table at block %d: %w", state.index, err)
				}
				state.entities = append(state.entities, models.Entity{
					Kind:  models.EntityTable,
					Index: state.index,
					Table: table,
				})
				state.index++
			default:
				// sectPr, sdt and bookmarks carry no flow content
				if err := decoder.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if inBody && t.Name.Local == "body" {
				return state.entities, nil
			}
		}
	}

	if !inBody {
		return nil, fmt.Errorf("no w:body element")
	}
	return state.entities, nil
}

// emitParagraph appends the entities for one paragraph.
func (dr *docReader) emitParagraph(state *bodyState, info paragraphInfo) {
	idx := state.index

	if info.pageBreak {
		state.entities = append(state.entities, models.Entity{
			Kind:  models.EntityPageBreak,
			Index: idx,
		})
	}

	cx, cy := info.extentCX, info.extentCY
	if (cx <= 0 || cy <= 0) && info.embedID != "" {
		cx, cy = dr.mediaExtent(info.embedID)
	}
	if cx > 0 && cy > 0 {
		state.entities = append(state.entities, models.Entity{
			Kind:  models.EntityImage,
			Index: idx,
			Image: &models.ImageEntity{
				WidthEMU:     cx,
				HeightEMU:    cy,
				SectionTitle: state.lastHeading,
			},
		})
		return
	}

	if level, ok := dr.headingLevel(info.styleID); ok {
		state.entities = append(state.entities, models.Entity{
			Kind:  models.EntityHeading,
			Index: idx,
			Level: level,
			Text:  info.text,
		})
		state.lastHeading = info.text
		return
	}

	kind := models.EntityParagraph
	switch {
	case info.numbered:
		kind = models.EntityBullet
	case info.text == "" && !info.pageBreak:
		kind = models.EntityEmpty
	}
	state.entities = append(state.entities, models.Entity{
		Kind:  kind,
		Index: idx,
		Text:  info.text,
	})
}

// headingLevel reports whether the style is a heading style and its level.
// The level is 0 when the style carries no numeric suffix.
func (dr *docReader) headingLevel(styleID string) (int, bool) {
	if styleID == "" {
		return 0, false
	}
	if rest, ok := strings.CutPrefix(styleID, "Heading"); ok {
		return headingSuffix(rest), true
	}
	name := strings.ToLower(dr.styles[styleID])
	if rest, ok := strings.CutPrefix(name, "heading"); ok {
		return headingSuffix(strings.TrimSpace(rest)), true
	}
	return 0, false
}

func headingSuffix(s string) int {
	if !isDigits(s) {
		return 0
	}
	level, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return level
}

// parseParagraph consumes tokens up to the end of the current w:p.
func parseParagraph(decoder *xml.Decoder) (paragraphInfo, error) {
	var info paragraphInfo
	var text strings.Builder
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return info, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Fallback":
				// mc:Fallback repeats the mc:Choice content
				if err := decoder.Skip(); err != nil {
					return info, err
				}
				continue
			case "pStyle":
				if info.styleID == "" {
					info.styleID = attrValue(t, "val")
				}
			case "numPr":
				info.numbered = true
			case "br":
				if attrValue(t, "type") == "page" {
					info.pageBreak = true
				}
			case "extent":
				if t.Name.Space == nsWP && info.extentCX <= 0 {
					cx := parseEMU(attrValue(t, "cx"))
					cy := parseEMU(attrValue(t, "cy"))
					if cx > 0 && cy > 0 {
						info.extentCX, info.extentCY = cx, cy
					}
				}
			case "blip":
				if info.embedID == "" {
					info.embedID = attrValue(t, "embed")
				}
			case "t":
				if t.Name.Space == nsW {
					txt, err := readElementText(decoder)
					if err != nil {
						return info, err
					}
					text.WriteString(txt)
					continue
				}
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	info.text = normalizeText(strings.TrimSpace(text.String()))
	return info, nil
}
