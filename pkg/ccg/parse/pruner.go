package parse

import (
	"math"
	"sort"

	"github.com/poetaster-org/depccg/pkg/ccg/cat"
	"github.com/poetaster-org/depccg/pkg/ccg/grammar"
)

// LeafCandidate is one admissible lexical category for a token.
type LeafCandidate struct {
	Cat *cat.Category
	LP  float64
}

// Pruner produces the per-token candidate category lists by running
// the filter cascade: category-dictionary override, terminal
// constraints, beta threshold, top-K truncation, and the single-best
// failsafe.
type Pruner struct {
	g        *grammar.Grammar
	view     *ScoreView
	cfg      Config
	terminal map[int]*cat.Category
}

// NewPruner builds a pruner for one sentence. terminal maps token
// positions to constraint-forced categories.
func NewPruner(g *grammar.Grammar, view *ScoreView, cfg Config, terminal map[int]*cat.Category) *Pruner {
	return &Pruner{g: g, view: view, cfg: cfg, terminal: terminal}
}

// Candidates returns the pruned (category, lexical log-probability)
// list for token i. Never empty: when every filter fires, the single
// best inventory category survives.
func (p *Pruner) Candidates(i int, word string) []LeafCandidate {
	if forced, ok := p.terminal[i]; ok {
		// A forced terminal scores 0; every other category drops to
		// the -1e10 floor and cannot survive top-K.
		return []LeafCandidate{{Cat: forced, LP: 0}}
	}

	inventory := p.g.Inventory()
	columns := make([]int, 0, len(inventory))
	if p.cfg.UseCategoryDict {
		if dictCats, ok := p.g.DictCats(word); ok {
			allowed := make(map[*cat.Category]struct{}, len(dictCats))
			for _, c := range dictCats {
				allowed[c] = struct{}{}
			}
			for col, c := range inventory {
				if _, ok := allowed[c]; ok {
					columns = append(columns, col)
				}
			}
		}
	}
	if len(columns) == 0 {
		for col := range inventory {
			columns = append(columns, col)
		}
	}

	rowMax := math.Inf(-1)
	for col := range inventory {
		if lp := p.view.TagLP(i, col); lp > rowMax {
			rowMax = lp
		}
	}

	var out []LeafCandidate
	threshold := math.Inf(-1)
	if p.cfg.UseBeta {
		threshold = math.Log(p.cfg.Beta) + rowMax
	}
	for _, col := range columns {
		lp := p.view.TagLP(i, col)
		if lp < threshold || math.IsInf(lp, -1) {
			continue
		}
		out = append(out, LeafCandidate{Cat: inventory[col], LP: lp})
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].LP != out[b].LP {
			return out[a].LP > out[b].LP
		}
		return out[a].Cat.ID() < out[b].Cat.ID()
	})
	if len(out) > p.cfg.PruningSize {
		out = out[:p.cfg.PruningSize]
	}

	if len(out) == 0 {
		// Failsafe: emit the best category regardless of filters.
		bestCol := 0
		for col := range inventory {
			if p.view.TagLP(i, col) > p.view.TagLP(i, bestCol) {
				bestCol = col
			}
		}
		out = append(out, LeafCandidate{Cat: inventory[bestCol], LP: p.view.TagLP(i, bestCol)})
	}
	return out
}
