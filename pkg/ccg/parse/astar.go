package parse

import (
	"fmt"

	"github.com/poetaster-org/depccg/pkg/ccg/grammar"
)

// Diag is a per-sentence diagnostic code. Only shape mismatches and
// grammar inconsistencies are surfaced as errors; the rest describe a
// legitimate empty or truncated result.
type Diag string

const (
	DiagNone                 Diag = ""
	DiagShapeMismatch        Diag = "shape_mismatch"
	DiagGrammarInconsistency Diag = "grammar_inconsistency"
	DiagLengthExceeded       Diag = "length_exceeded"
	DiagStepLimit            Diag = "step_limit_exceeded"
	DiagSearchExhausted      Diag = "search_exhausted"
)

// ScoredTree pairs a complete derivation with its total score: the
// inside score plus the root's ROOT-attachment log-probability.
type ScoredTree struct {
	Tree  *Tree
	Score float64
}

// Result is one sentence's outcome: up to NBest parses in
// non-increasing score order, plus a diagnostic.
type Result struct {
	Parses []ScoredTree
	Diag   Diag
}

// Parser runs the A* search for one grammar and configuration. It
// holds no per-sentence state; Parse may be called concurrently from
// different goroutines.
type Parser struct {
	g   *grammar.Grammar
	cfg Config
}

// NewParser validates the configuration and binds it to a grammar.
func NewParser(g *grammar.Grammar, cfg Config) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return &Parser{g: g, cfg: cfg}, nil
}

// Parse runs best-first search over one sentence. The first complete
// parse popped is optimal under the admissible outside estimate;
// further pops yield the N-best list. Identical input and
// configuration always produce identical output.
func (p *Parser) Parse(tokens []string, tagScores, depScores [][]float64, constraints []Constraint) (Result, error) {
	n := len(tokens)
	if p.cfg.MaxLength > 0 && n > p.cfg.MaxLength {
		return Result{Diag: DiagLengthExceeded}, nil
	}

	view, err := NewScoreView(n, len(p.g.Inventory()), tagScores, depScores)
	if err != nil {
		return Result{Diag: DiagShapeMismatch}, err
	}
	cs, err := NewConstraintSet(p.g, constraints, n)
	if err != nil {
		return Result{Diag: DiagGrammarInconsistency}, err
	}

	heur := NewHeuristicTable(view)
	deps := NewDependencyScorer(view)
	pruner := NewPruner(p.g, view, p.cfg, cs.Terminals())
	chart := NewChart(n, p.cfg.PruningSize)
	agenda := NewAgenda()
	useSeen := p.cfg.UseSeenRules && p.g.HasSeenRules()

	for i, word := range tokens {
		for _, cand := range pruner.Candidates(i, word) {
			leaf := NewLeaf(i, word, cand.Cat, cand.LP)
			if !cs.Allowed(leaf) {
				continue
			}
			if !chart.Insert(leaf) {
				continue
			}
			agenda.Push(leaf, leaf.Inside()+heur.Outside(i, i+1), false)
		}
	}

	var parses []ScoredTree
	diag := DiagNone
	steps := 0

	for !agenda.Empty() && len(parses) < p.cfg.NBest {
		steps++
		if steps > p.cfg.MaxSteps {
			diag = DiagStepLimit
			break
		}

		item := agenda.Pop()
		t := item.tree

		if item.rooted {
			// A complete parse whose ROOT attachment is already in
			// the priority; popping it proves nothing scores higher.
			parses = append(parses, ScoredTree{Tree: t, Score: item.priority})
			continue
		}
		if chart.IsLocked(t) {
			continue
		}
		chart.Finalize(t)

		if t.Start() == 0 && t.Length() == n && p.g.IsRoot(t.Category()) {
			agenda.Push(t, t.Inside()+deps.Root(t), true)
		}

		// Unary expansion. Never stack two unary steps on one span;
		// on the whole sentence only root categories are worth
		// deriving.
		if !t.IsUnary() {
			for _, parent := range p.g.ApplyUnary(t.Category()) {
				if t.Length() == n && !p.g.IsRoot(parent) {
					continue
				}
				u := NewUnary(parent, "unary", t)
				if !cs.Allowed(u) {
					continue
				}
				agenda.Push(u, u.Inside()+heur.Outside(u.Start(), u.End()), false)
			}
		}

		for _, nb := range chart.NeighborsLeft(t) {
			p.combine(nb, t, useSeen, deps, cs, chart, heur, agenda)
		}
		for _, nb := range chart.NeighborsRight(t) {
			p.combine(t, nb, useSeen, deps, cs, chart, heur, agenda)
		}
	}

	if len(parses) == 0 && diag == DiagNone {
		diag = DiagSearchExhausted
	}
	return Result{Parses: parses, Diag: diag}, nil
}

func (p *Parser) combine(l, r *Tree, useSeen bool, deps *DependencyScorer,
	cs *ConstraintSet, chart *Chart, heur *HeuristicTable, agenda *Agenda) {

	for _, app := range p.g.ApplyBinary(l.Category(), r.Category(), useSeen) {
		inside := l.Inside() + r.Inside() + deps.Combine(l, r, app.HeadIsLeft)
		parent := NewBinary(app.Result, app.Combinator.Name, l, r, app.HeadIsLeft, inside)
		if !cs.Allowed(parent) {
			continue
		}
		if !chart.Insert(parent) {
			continue
		}
		agenda.Push(parent, inside+heur.Outside(parent.Start(), parent.End()), false)
	}
}
