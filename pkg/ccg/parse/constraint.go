package parse

import (
	"fmt"

	"github.com/poetaster-org/depccg/pkg/ccg/cat"
	"github.com/poetaster-org/depccg/pkg/ccg/grammar"
	"github.com/poetaster-org/depccg/pkg/ccg/internalerr"
)

// Constraint pins part of the analysis. A terminal constraint forces
// one token's category; a non-terminal constraint brackets a span,
// optionally forcing its category (nil Category = any category, only
// the bracketing binds).
type Constraint struct {
	Category *cat.Category
	Start    int
	Length   int
	Terminal bool
}

// ConstraintSet is the validated per-sentence constraint machinery.
type ConstraintSet struct {
	g     *grammar.Grammar
	spans []Constraint
	term  map[int]*cat.Category
}

// NewConstraintSet validates constraints against the sentence and the
// grammar. A constrained category must be in the inventory or
// reachable through the unary table, otherwise the constraint can
// never be satisfied and the sentence fails with
// ErrGrammarInconsistency.
func NewConstraintSet(g *grammar.Grammar, constraints []Constraint, n int) (*ConstraintSet, error) {
	cs := &ConstraintSet{g: g, term: make(map[int]*cat.Category)}
	for _, c := range constraints {
		if c.Terminal {
			if c.Start < 0 || c.Start >= n {
				return nil, fmt.Errorf("terminal constraint at %d outside sentence of %d: %w",
					c.Start, n, internalerr.ErrGrammarInconsistency)
			}
			if c.Category == nil {
				return nil, fmt.Errorf("terminal constraint at %d has no category: %w",
					c.Start, internalerr.ErrGrammarInconsistency)
			}
			if !cs.reachable(c.Category) {
				return nil, fmt.Errorf("terminal constraint category %v unreachable in grammar: %w",
					c.Category, internalerr.ErrGrammarInconsistency)
			}
			cs.term[c.Start] = c.Category
			continue
		}
		if c.Start < 0 || c.Length <= 0 || c.Start+c.Length > n {
			return nil, fmt.Errorf("constraint span (%d,%d) outside sentence of %d: %w",
				c.Start, c.Length, n, internalerr.ErrGrammarInconsistency)
		}
		if c.Category != nil && !cs.reachable(c.Category) {
			return nil, fmt.Errorf("constraint category %v unreachable in grammar: %w",
				c.Category, internalerr.ErrGrammarInconsistency)
		}
		cs.spans = append(cs.spans, c)
	}
	return cs, nil
}

// reachable reports whether the grammar can produce c on a span at
// all: directly in the inventory, or one unary step above it.
func (cs *ConstraintSet) reachable(c *cat.Category) bool {
	if cs.g.InInventory(c) {
		return true
	}
	for _, src := range cs.g.Inventory() {
		if cs.g.UnaryReachable(src, c) {
			return true
		}
	}
	return false
}

// Terminals returns the forced token categories for the pruner.
func (cs *ConstraintSet) Terminals() map[int]*cat.Category { return cs.term }

// Allowed rejects a candidate derivation that contradicts a span
// constraint: an equal span whose category disagrees (and cannot
// reach the forced category by a unary step), or a span crossing a
// constraint boundary.
func (cs *ConstraintSet) Allowed(t *Tree) bool {
	ts, te := t.Start(), t.End()
	for _, c := range cs.spans {
		gs, ge := c.Start, c.Start+c.Length
		if ts == gs && te == ge {
			if c.Category != nil && t.Category() != c.Category &&
				!cs.g.UnaryReachable(t.Category(), c.Category) {
				return false
			}
			continue
		}
		if ts < gs && gs < te && te < ge {
			return false
		}
		if gs < ts && ts < ge && ge < te {
			return false
		}
	}
	return true
}

// Empty reports whether no constraints are active.
func (cs *ConstraintSet) Empty() bool {
	return len(cs.spans) == 0 && len(cs.term) == 0
}
