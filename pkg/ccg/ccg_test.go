package ccg

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poetaster-org/depccg/pkg/ccg/cat"
	"github.com/poetaster-org/depccg/pkg/ccg/grammar"
	"github.com/poetaster-org/depccg/pkg/ccg/internalerr"
	"github.com/poetaster-org/depccg/pkg/ccg/parse"
	"github.com/poetaster-org/depccg/pkg/ccg/store/memstore"
)

// Inventory columns: 0 NP, 1 S[dcl]\NP, 2 N, 3 (S[dcl]\NP)/NP.
var inventoryStrs = []string{"NP", "S[dcl]\\NP", "N", "(S[dcl]\\NP)/NP"}

func newEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	if opts.Grammar == nil {
		var inv []*cat.Category
		for _, s := range inventoryStrs {
			inv = append(inv, cat.MustParse(s))
		}
		g, err := grammar.English(grammar.Tables{Inventory: inv})
		if err != nil {
			t.Fatal(err)
		}
		opts.Grammar = g
	}
	e, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func johnRuns() Input {
	return Input{
		Tokens: []string{"John", "runs"},
		TagScores: [][]float64{
			{0, -20, -20, -20},
			{-20, 0, -20, -20},
		},
		DepScores: [][]float64{
			{-10, -10, 0},
			{0, -10, -10},
		},
	}
}

func TestParseSentence(t *testing.T) {
	e := newEngine(t, Options{})
	defer e.Close()

	res := e.ParseSentence(context.Background(), johnRuns())
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if len(res.Parses) != 1 {
		t.Fatalf("got %d parses (diag %q)", len(res.Parses), res.Diag)
	}
	if res.Parses[0].Tree.Category() != cat.MustParse("S[dcl]") {
		t.Errorf("root = %v", res.Parses[0].Tree.Category())
	}
}

func TestParseBatchOrderAndIsolation(t *testing.T) {
	e := newEngine(t, Options{Workers: 4})
	defer e.Close()

	good := johnRuns()
	bad := johnRuns()
	bad.TagScores = bad.TagScores[:1] // shape mismatch

	inputs := []Input{good, bad, good, good}
	results := e.ParseBatch(context.Background(), inputs)
	if len(results) != 4 {
		t.Fatalf("got %d results", len(results))
	}
	for i, idx := range []int{0, 2, 3} {
		if results[idx].Err != nil || len(results[idx].Parses) != 1 {
			t.Errorf("sentence %d (slot %d) should parse: err=%v", i, idx, results[idx].Err)
		}
	}
	if !errors.Is(results[1].Err, internalerr.ErrShapeMismatch) {
		t.Errorf("bad sentence err = %v", results[1].Err)
	}
	if results[1].Diag != parse.DiagShapeMismatch {
		t.Errorf("bad sentence diag = %q", results[1].Diag)
	}
}

func TestEnginePersistence(t *testing.T) {
	st := memstore.New()
	e := newEngine(t, Options{Store: st})
	defer e.Close()

	ctx := context.Background()
	res := e.ParseSentence(ctx, johnRuns())
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if res.StoredID == "" {
		t.Fatal("no stored id")
	}

	sent, ok, err := st.GetSentence(ctx, res.StoredID)
	if err != nil || !ok {
		t.Fatalf("stored sentence missing: ok=%v err=%v", ok, err)
	}
	if sent.Lang != "en" || len(sent.Tokens) != 2 {
		t.Errorf("stored sentence = %+v", sent)
	}

	parses, err := st.ParsesFor(ctx, res.StoredID)
	if err != nil {
		t.Fatal(err)
	}
	if len(parses) != 1 || parses[0].Rank != 1 {
		t.Fatalf("stored parses = %v", parses)
	}
	if !strings.Contains(parses[0].Auto, "John") {
		t.Errorf("AUTO output missing surface form: %s", parses[0].Auto)
	}
}

func TestEngineCancelledContext(t *testing.T) {
	e := newEngine(t, Options{})
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := e.ParseBatch(ctx, []Input{johnRuns()})
	if results[0].Err == nil {
		t.Error("cancelled context should surface per sentence")
	}
}

func TestEngineRequiresGrammar(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("New without a grammar must fail")
	}
}

func TestEngineDefaultsConfig(t *testing.T) {
	e := newEngine(t, Options{})
	defer e.Close()
	// The zero Options.Config must behave as the documented defaults:
	// at most nbest 1 parse per sentence.
	res := e.ParseSentence(context.Background(), johnRuns())
	if len(res.Parses) > 1 {
		t.Errorf("default nbest is 1, got %d parses", len(res.Parses))
	}
}
