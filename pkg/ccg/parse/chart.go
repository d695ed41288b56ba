package parse

import "github.com/poetaster-org/depccg/pkg/ccg/cat"

// signature identifies a chart cell: span plus root category.
type signature struct {
	start  int
	length int
	cat    *cat.Category
}

// Chart stores accepted derivations keyed by (start, length,
// category) and enforces the popped-once discipline of A*: the first
// derivation finalized for a signature locks it, later identical
// signatures are discarded by the search loop. Tentative inserts
// count toward a per-cell capacity so low-scoring variants stop
// entering the agenda once a cell is saturated.
type Chart struct {
	n        int
	capacity int

	inserted  map[signature][]float64 // inside scores of tentative entries
	finalized map[signature]*Tree

	startingAt [][]*Tree // finalized derivations by start position
	endingAt   [][]*Tree // finalized derivations by end position
}

// NewChart sizes a chart for an n-token sentence with the given
// per-cell capacity.
func NewChart(n, capacity int) *Chart {
	return &Chart{
		n:          n,
		capacity:   capacity,
		inserted:   make(map[signature][]float64),
		finalized:  make(map[signature]*Tree),
		startingAt: make([][]*Tree, n+1),
		endingAt:   make([][]*Tree, n+1),
	}
}

func sigOf(t *Tree) signature {
	return signature{start: t.Start(), length: t.Length(), cat: t.Category()}
}

// Insert tentatively records a derivation. It reports false when the
// cell already holds capacity entries with strictly better inside
// scores, in which case the derivation should not enter the agenda.
func (c *Chart) Insert(t *Tree) bool {
	sig := sigOf(t)
	scores := c.inserted[sig]
	if len(scores) >= c.capacity {
		better := 0
		for _, s := range scores {
			if s > t.Inside() {
				better++
			}
		}
		if better >= c.capacity {
			return false
		}
	}
	c.inserted[sig] = append(scores, t.Inside())
	return true
}

// IsLocked reports whether a derivation's signature was already
// finalized.
func (c *Chart) IsLocked(t *Tree) bool {
	_, ok := c.finalized[sigOf(t)]
	return ok
}

// Finalize locks a signature with its first-popped derivation and
// indexes it for adjacency queries. Reports false when the signature
// was already locked.
func (c *Chart) Finalize(t *Tree) bool {
	sig := sigOf(t)
	if _, ok := c.finalized[sig]; ok {
		return false
	}
	c.finalized[sig] = t
	c.startingAt[t.Start()] = append(c.startingAt[t.Start()], t)
	c.endingAt[t.End()] = append(c.endingAt[t.End()], t)
	return true
}

// NeighborsLeft returns the finalized derivations ending where t
// starts, in finalization order.
func (c *Chart) NeighborsLeft(t *Tree) []*Tree {
	return c.endingAt[t.Start()]
}

// NeighborsRight returns the finalized derivations starting where t
// ends, in finalization order.
func (c *Chart) NeighborsRight(t *Tree) []*Tree {
	return c.startingAt[t.End()]
}
