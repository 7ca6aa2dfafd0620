// Package layout turns extracted entities into a flow model, packs it into
// simulated pages and detects layout hazards.
package layout

import (
	"math"
	"unicode/utf8"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/config"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
)

// Builder converts raw entities into layout elements with estimated heights.
type Builder struct {
	cfg config.Config
}

// NewBuilder creates a Builder for the given geometry.
func NewBuilder(cfg config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// Build returns one element per entity, in source order.
func (b *Builder) Build(entities []models.Entity) []models.Element {
	elems := make([]models.Element, 0, len(entities))
	for _, ent := range entities {
		if e := b.element(ent); e != nil {
			elems = append(elems, e)
		}
	}
	return elems
}

func (b *Builder) element(ent models.Entity) models.Element {
	h := b.cfg.Heights
	meta := models.Meta{Index: ent.Index}

	switch ent.Kind {
	case models.EntityHeading:
		meta.EstHeight = b.cfg.HeadingHeight(ent.Level)
		return models.Heading{Meta: meta, Level: ent.Level, Text: ent.Text}

	case models.EntityParagraph:
		chars := utf8.RuneCountInString(ent.Text)
		meta.EstHeight = b.ParagraphHeight(chars)
		return models.Paragraph{Meta: meta, CharCount: chars}

	case models.EntityBullet:
		meta.EstHeight = h.Bullet
		return models.Bullet{Meta: meta}

	case models.EntityEmpty:
		meta.EstHeight = h.Empty
		return models.Empty{Meta: meta}

	case models.EntityImage:
		if ent.Image == nil {
			return nil
		}
		widthPt := float64(ent.Image.WidthEMU) / h.EMUPerPoint
		heightPt := float64(ent.Image.HeightEMU) / h.EMUPerPoint
		meta.EstHeight = heightPt + h.ImageSpacing
		return models.Image{
			Meta:         meta,
			WidthPt:      widthPt,
			HeightPt:     heightPt,
			SectionTitle: ent.Image.SectionTitle,
		}

	case models.EntityTable:
		if ent.Table == nil {
			return nil
		}
		rows, cols := ent.Table.RowCount(), ent.Table.ColCount()
		kind := ClassifyTable(b.cfg.Palette, ent.Table.FirstFill, cols)
		meta.EstHeight = b.TableHeight(kind, rows)
		return models.Table{Meta: meta, Rows: rows, Cols: cols, TableKind: kind}

	case models.EntityPageBreak:
		return models.PageBreak{Meta: meta}
	}

	return nil
}

// ParagraphHeight estimates a paragraph of chars characters, wrapping at the
// configured characters per line.
func (b *Builder) ParagraphHeight(chars int) float64 {
	h := b.cfg.Heights
	lines := math.Ceil(float64(chars) / float64(h.CharsPerLine))
	return h.Paragraph * math.Max(1, lines)
}

// TableHeight estimates a table of the given kind and row count.
func (b *Builder) TableHeight(kind models.TableKind, rows int) float64 {
	h := b.cfg.Heights
	switch kind {
	case models.TableCodeDark, models.TableCodeLight:
		return float64(rows)*h.CodeRow + h.CodeBlockPadding
	case models.TableInfoBox, models.TableWarningBox:
		return h.Box
	}
	return h.TableHeader + float64(max(0, rows-1))*h.TableRow
}
