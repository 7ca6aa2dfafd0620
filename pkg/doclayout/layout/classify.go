package layout

import (
	"slices"
	"strings"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/config"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
)

// ClassifyTable derives a table's rendering role from its first-cell fill and
// column count. Dark code fills match at any width; the light code, info and
// warning tints only mark single-column tables. Everything else is data.
func ClassifyTable(p config.Palette, fill string, cols int) models.TableKind {
	fill = strings.ToUpper(strings.TrimPrefix(fill, "#"))
	if fill == "" {
		return models.TableData
	}

	switch {
	case slices.Contains(p.CodeDark, fill):
		return models.TableCodeDark
	case cols == 1 && slices.Contains(p.CodeLight, fill):
		return models.TableCodeLight
	case cols == 1 && slices.Contains(p.InfoBox, fill):
		return models.TableInfoBox
	case cols == 1 && slices.Contains(p.WarningBox, fill):
		return models.TableWarningBox
	}
	return models.TableData
}
