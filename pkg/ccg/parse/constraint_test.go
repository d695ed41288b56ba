package parse

import (
	"errors"
	"testing"

	"github.com/poetaster-org/depccg/pkg/ccg/cat"
	"github.com/poetaster-org/depccg/pkg/ccg/grammar"
	"github.com/poetaster-org/depccg/pkg/ccg/internalerr"
)

func span(t *testing.T, c *cat.Category, start, length int) *Tree {
	t.Helper()
	leaf := NewLeaf(start, "w", c, 0)
	for leaf.Length() < length {
		leaf = NewBinary(c, "fa", leaf, NewLeaf(leaf.End(), "w", c, 0), true, 0)
	}
	return leaf
}

func TestConstraintSpanCategory(t *testing.T) {
	g := testGrammar(t, grammar.Tables{})
	np := cat.MustParse("NP")
	cs, err := NewConstraintSet(g, []Constraint{{Category: np, Start: 0, Length: 2}}, 4)
	if err != nil {
		t.Fatal(err)
	}

	if !cs.Allowed(span(t, np, 0, 2)) {
		t.Error("matching category on the constrained span must pass")
	}
	if cs.Allowed(span(t, cat.MustParse("S[dcl]"), 0, 2)) {
		t.Error("category disagreement on the constrained span must fail")
	}
	// N rewrites to NP by a unary rule, so an N analysis of the span
	// can still satisfy the forced category.
	if !cs.Allowed(span(t, cat.MustParse("N"), 0, 2)) {
		t.Error("unary-reachable category must pass")
	}
}

func TestConstraintBracketing(t *testing.T) {
	g := testGrammar(t, grammar.Tables{})
	cs, err := NewConstraintSet(g, []Constraint{{Start: 1, Length: 2}}, 4)
	if err != nil {
		t.Fatal(err)
	}
	np := cat.MustParse("NP")

	if !cs.Allowed(span(t, np, 1, 2)) {
		t.Error("wildcard constraint allows the exact span")
	}
	if !cs.Allowed(span(t, np, 0, 4)) || !cs.Allowed(span(t, np, 1, 1)) {
		t.Error("nesting either way is not a violation")
	}
	if cs.Allowed(span(t, np, 0, 2)) {
		t.Error("span crossing the left boundary must fail")
	}
	if cs.Allowed(span(t, np, 2, 2)) {
		t.Error("span crossing the right boundary must fail")
	}
}

func TestConstraintValidation(t *testing.T) {
	g := testGrammar(t, grammar.Tables{})
	bogus := cat.MustParse("S[frg]/S[frg]")

	_, err := NewConstraintSet(g, []Constraint{{Category: bogus, Start: 0, Length: 2}}, 4)
	if !errors.Is(err, internalerr.ErrGrammarInconsistency) {
		t.Errorf("unreachable category: err = %v", err)
	}
	_, err = NewConstraintSet(g, []Constraint{{Start: 3, Length: 4}}, 4)
	if !errors.Is(err, internalerr.ErrGrammarInconsistency) {
		t.Errorf("out-of-bounds span: err = %v", err)
	}
	_, err = NewConstraintSet(g, []Constraint{{Category: cat.MustParse("N"), Start: 9, Terminal: true}}, 4)
	if !errors.Is(err, internalerr.ErrGrammarInconsistency) {
		t.Errorf("out-of-bounds terminal: err = %v", err)
	}
}

func TestConstraintTerminals(t *testing.T) {
	g := testGrammar(t, grammar.Tables{})
	n := cat.MustParse("N")
	cs, err := NewConstraintSet(g, []Constraint{{Category: n, Start: 1, Terminal: true}}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := cs.Terminals()[1]; got != n {
		t.Errorf("Terminals()[1] = %v, want N", got)
	}
}
