package layout

import (
	"github.com/ukaji3/doclayout-go/pkg/doclayout/config"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
)

// Simulator packs elements into fixed-height pages, greedily and without
// backtracking. An element is never split: one taller than the budget sits
// alone on its page and that page overflows.
type Simulator struct {
	usable float64
}

// NewSimulator creates a Simulator for the configured usable height.
func NewSimulator(cfg config.Config) *Simulator {
	return &Simulator{usable: cfg.Usable()}
}

// pageState is the page currently being filled.
type pageState struct {
	elems          []models.Element
	height         float64
	startedByBreak bool
}

// Simulate distributes elems across pages. A page break element is kept on
// the page it closes.
func (s *Simulator) Simulate(elems []models.Element) []models.Page {
	var pages []models.Page
	cur := pageState{}

	closePage := func(nextByBreak bool) {
		pages = append(pages, s.page(len(pages)+1, cur))
		cur = pageState{startedByBreak: nextByBreak}
	}

	for _, e := range elems {
		if e.Kind() == models.KindPageBreak {
			cur.elems = append(cur.elems, e)
			closePage(true)
			continue
		}

		if cur.height > 0 && cur.height+e.Height() > s.usable {
			closePage(false)
		}
		cur.elems = append(cur.elems, e)
		cur.height += e.Height()
	}

	if len(cur.elems) > 0 {
		closePage(false)
	}
	return pages
}

func (s *Simulator) page(number int, st pageState) models.Page {
	p := models.Page{
		Number:         number,
		Elements:       st.elems,
		UsedHeight:     st.height,
		StartedByBreak: st.startedByBreak,
	}
	if s.usable > 0 {
		p.FillPct = st.height / s.usable * 100
	}
	return p
}
