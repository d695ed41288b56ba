package parse

import (
	"math"
	"testing"

	"github.com/poetaster-org/depccg/pkg/ccg/cat"
	"github.com/poetaster-org/depccg/pkg/ccg/grammar"
)

func pruneView(t *testing.T, tag [][]float64) *ScoreView {
	t.Helper()
	n := len(tag)
	dep := uniformRows(n, make([]float64, n+1))
	v, err := NewScoreView(n, len(tag[0]), tag, dep)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestPrunerBetaThreshold(t *testing.T) {
	g := testGrammar(t, grammar.Tables{})
	// Best is -1; with beta 1e-2 the cutoff is -1 + ln(1e-2) ≈ -5.6.
	tag := [][]float64{{-1, -2, -20, -30, -40}}
	cfg := DefaultConfig()
	cfg.Beta = 1e-2

	p := NewPruner(g, pruneView(t, tag), cfg, nil)
	cands := p.Candidates(0, "w")
	if len(cands) != 2 {
		t.Fatalf("beta pruning kept %d candidates, want 2: %v", len(cands), cands)
	}
	if cands[0].Cat != cat.MustParse("NP") || cands[0].LP != -1 {
		t.Errorf("best candidate = %v", cands[0])
	}

	cfg.UseBeta = false
	p = NewPruner(g, pruneView(t, tag), cfg, nil)
	if got := len(p.Candidates(0, "w")); got != 5 {
		t.Errorf("beta disabled kept %d, want the full inventory", got)
	}
}

func TestPrunerTopK(t *testing.T) {
	g := testGrammar(t, grammar.Tables{})
	tag := [][]float64{{-1, -1, -1, -1, -1}}
	cfg := DefaultConfig()
	cfg.UseBeta = false
	cfg.PruningSize = 3

	p := NewPruner(g, pruneView(t, tag), cfg, nil)
	cands := p.Candidates(0, "w")
	if len(cands) != 3 {
		t.Fatalf("top-K kept %d, want 3", len(cands))
	}
	// Equal scores break ties by category id, so the order is the
	// interning order of the inventory.
	for i := 1; i < len(cands); i++ {
		if cands[i-1].Cat.ID() > cands[i].Cat.ID() {
			t.Errorf("tie-break out of order: %v", cands)
		}
	}
}

func TestPrunerDictionaryOverride(t *testing.T) {
	np := cat.MustParse("NP")
	n := cat.MustParse("N")
	g := testGrammar(t, grammar.Tables{
		CatDict: map[string][]*cat.Category{"john": {np, n}},
	})
	tag := [][]float64{{-5, -1, -6, -2, -3}}
	cfg := DefaultConfig()
	cfg.UseBeta = false
	cfg.UseCategoryDict = true

	p := NewPruner(g, pruneView(t, tag), cfg, nil)
	for _, c := range p.Candidates(0, "john") {
		if c.Cat != np && c.Cat != n {
			t.Errorf("dictionary override leaked %v", c.Cat)
		}
	}
	// Unknown words keep the full inventory.
	if got := len(p.Candidates(0, "zzyzx")); got != 5 {
		t.Errorf("unknown word kept %d, want 5", got)
	}
}

func TestPrunerTerminalConstraint(t *testing.T) {
	g := testGrammar(t, grammar.Tables{})
	tag := [][]float64{{-0.01, -5, -9, -9, -9}}
	forced := map[int]*cat.Category{0: cat.MustParse("N")}

	p := NewPruner(g, pruneView(t, tag), DefaultConfig(), forced)
	cands := p.Candidates(0, "w")
	if len(cands) != 1 || cands[0].Cat != cat.MustParse("N") {
		t.Fatalf("terminal constraint not enforced: %v", cands)
	}
	if cands[0].LP != 0 {
		t.Errorf("forced terminal lexical score = %g, want 0", cands[0].LP)
	}
}

func TestPrunerFailsafe(t *testing.T) {
	inf := math.Inf(-1)
	// Every score is -inf except one, and the dictionary restricts
	// the word to NP, whose score is -inf, so no candidate survives;
	// the failsafe must still emit the row best.
	tag := [][]float64{{inf, -50, inf, inf, inf}}
	dict := map[string][]*cat.Category{"w": {cat.MustParse("NP")}}
	g := testGrammar(t, grammar.Tables{CatDict: dict})

	cfg := DefaultConfig()
	cfg.UseCategoryDict = true
	p := NewPruner(g, pruneView(t, tag), cfg, nil)
	cands := p.Candidates(0, "w")
	if len(cands) != 1 {
		t.Fatalf("failsafe emitted %d candidates, want 1", len(cands))
	}
	if cands[0].Cat != cat.MustParse("S[dcl]\\NP") {
		t.Errorf("failsafe should pick the row-best category, got %v", cands[0].Cat)
	}
}
