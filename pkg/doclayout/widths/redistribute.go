package widths

import (
	"math"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/config"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
)

// Redistribute proposes column widths proportional to each column's text,
// never below the minimum readable width. The result always sums to the
// configured total table width: a positive rounding residual goes to the
// widest column, and any excess created by the floors is taken back from the
// widest columns down to the floor. It returns nil when the floors alone
// exceed the total width, since no proposal can then honour both.
func Redistribute(cfg config.Config, columns []models.ColumnProfile) []int {
	if len(columns) == 0 {
		return nil
	}
	w := cfg.Widths
	if len(columns)*w.MinReadableWidth > cfg.TotalTableWidth {
		return nil
	}
	padding := cfg.Glyphs.CellPadding

	ideals := make([]int, len(columns))
	total := 0
	for i, col := range columns {
		scaled := int(math.RoundToEven(float64(col.MaxTextWidth) * w.IdealWidthFactor))
		ideals[i] = max(w.MinReadableWidth, scaled+padding)
		total += ideals[i]
	}

	suggested := make([]int, len(columns))
	sum := 0
	for i, ideal := range ideals {
		share := math.RoundToEven(float64(ideal) / float64(total) * float64(cfg.TotalTableWidth))
		suggested[i] = max(w.MinReadableWidth, int(share))
		sum += suggested[i]
	}

	residual := cfg.TotalTableWidth - sum
	if residual >= 0 {
		suggested[widestColumn(suggested)] += residual
		return suggested
	}

	for deficit := -residual; deficit > 0; {
		i := widestColumn(suggested)
		take := min(deficit, suggested[i]-w.MinReadableWidth)
		suggested[i] -= take
		deficit -= take
	}
	return suggested
}

// widestColumn returns the index of the first widest column.
func widestColumn(widths []int) int {
	widest := 0
	for i, v := range widths {
		if v > widths[widest] {
			widest = i
		}
	}
	return widest
}
