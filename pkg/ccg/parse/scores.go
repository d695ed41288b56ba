package parse

import (
	"fmt"

	"github.com/poetaster-org/depccg/pkg/ccg/internalerr"
)

// ScoreView is a read-only facade over the two score matrices a
// sentence arrives with: per-token supertag log-probabilities of shape
// (n, tags) and head-dependency log-probabilities of shape (n, n+1)
// where column 0 denotes ROOT as head.
type ScoreView struct {
	tag [][]float64
	dep [][]float64
	n   int
}

// NewScoreView validates the matrix shapes against the sentence
// length and tag inventory size.
func NewScoreView(n, tags int, tagScores, depScores [][]float64) (*ScoreView, error) {
	if len(tagScores) != n {
		return nil, fmt.Errorf("tag matrix has %d rows for %d tokens: %w",
			len(tagScores), n, internalerr.ErrShapeMismatch)
	}
	for i, row := range tagScores {
		if len(row) != tags {
			return nil, fmt.Errorf("tag row %d has %d columns, want %d: %w",
				i, len(row), tags, internalerr.ErrShapeMismatch)
		}
	}
	if len(depScores) != n {
		return nil, fmt.Errorf("dep matrix has %d rows for %d tokens: %w",
			len(depScores), n, internalerr.ErrShapeMismatch)
	}
	for i, row := range depScores {
		if len(row) != n+1 {
			return nil, fmt.Errorf("dep row %d has %d columns, want %d: %w",
				i, len(row), n+1, internalerr.ErrShapeMismatch)
		}
	}
	return &ScoreView{tag: tagScores, dep: depScores, n: n}, nil
}

// Len returns the sentence length.
func (v *ScoreView) Len() int { return v.n }

// Tags returns the supertag inventory size.
func (v *ScoreView) Tags() int {
	if v.n == 0 {
		return 0
	}
	return len(v.tag[0])
}

// TagLP returns the log-probability of supertag column c at token i.
func (v *ScoreView) TagLP(i, c int) float64 { return v.tag[i][c] }

// TagRow returns token i's supertag row.
func (v *ScoreView) TagRow(i int) []float64 { return v.tag[i] }

// DepLP returns the log-probability of token head governing token
// dependent.
func (v *ScoreView) DepLP(dependent, head int) float64 {
	return v.dep[dependent][head+1]
}

// DepRootLP returns the log-probability of dependent attaching to
// ROOT.
func (v *ScoreView) DepRootLP(dependent int) float64 {
	return v.dep[dependent][0]
}

// DependencyScorer adds head-dependency log-probabilities as subtrees
// combine: the dependent child's head token attaches to the head
// child's head token, and the final root attaches to ROOT.
type DependencyScorer struct {
	view *ScoreView
}

// NewDependencyScorer wraps a score view.
func NewDependencyScorer(v *ScoreView) *DependencyScorer {
	return &DependencyScorer{view: v}
}

// Combine returns the arc score for joining the two children of a
// binary node given the head side.
func (d *DependencyScorer) Combine(left, right *Tree, headLeft bool) float64 {
	if headLeft {
		return d.view.DepLP(right.Head(), left.Head())
	}
	return d.view.DepLP(left.Head(), right.Head())
}

// Root returns the arc score attaching a complete parse's head to
// ROOT.
func (d *DependencyScorer) Root(t *Tree) float64 {
	return d.view.DepRootLP(t.Head())
}

// HeuristicTable precomputes, per token, the best supertag and best
// dependency log-probabilities, plus prefix sums, so the admissible
// outside estimate of any span is O(1). True parse scores sum
// log-probabilities bounded by these per-token maxima, so the
// estimate never under-states the best completion.
type HeuristicTable struct {
	prefix []float64 // prefix[i] = sum of best[k] for k < i
}

// NewHeuristicTable scans the score view once.
func NewHeuristicTable(v *ScoreView) *HeuristicTable {
	n := v.Len()
	prefix := make([]float64, n+1)
	for i := 0; i < n; i++ {
		bestTag := negInf
		for c := 0; c < v.Tags(); c++ {
			if lp := v.TagLP(i, c); lp > bestTag {
				bestTag = lp
			}
		}
		bestDep := negInf
		for h := -1; h < n; h++ {
			if lp := v.dep[i][h+1]; lp > bestDep {
				bestDep = lp
			}
		}
		prefix[i+1] = prefix[i] + bestTag + bestDep
	}
	return &HeuristicTable{prefix: prefix}
}

// Outside returns the admissible completion estimate for the span
// [start, end): the best-case score of every token outside it.
func (h *HeuristicTable) Outside(start, end int) float64 {
	total := h.prefix[len(h.prefix)-1]
	return total - (h.prefix[end] - h.prefix[start])
}

const negInf = float64(-1e18)
