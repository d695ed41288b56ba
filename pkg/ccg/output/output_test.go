package output

import (
	"strings"
	"testing"

	"github.com/poetaster-org/depccg/pkg/ccg/cat"
	"github.com/poetaster-org/depccg/pkg/ccg/parse"
)

func sampleTree() *parse.Tree {
	john := parse.NewLeaf(0, "John", cat.MustParse("NP"), 0)
	runs := parse.NewLeaf(1, "runs", cat.MustParse("S[dcl]\\NP"), 0)
	return parse.NewBinary(cat.MustParse("S[dcl]"), "ba", john, runs, false, 0)
}

func TestAuto(t *testing.T) {
	got := Auto(sampleTree())
	want := "(<T S[dcl] 1 2> (<L NP POS POS John NP>) (<L S[dcl]\\NP POS POS runs S[dcl]\\NP>) )"
	if got != want {
		t.Errorf("Auto:\n got %s\nwant %s", got, want)
	}
}

func TestAutoUnary(t *testing.T) {
	leaf := parse.NewLeaf(0, "dogs", cat.MustParse("N"), 0)
	u := parse.NewUnary(cat.MustParse("NP"), "unary", leaf)
	got := Auto(u)
	want := "(<T NP 0 1> (<L N POS POS dogs N>) )"
	if got != want {
		t.Errorf("Auto unary:\n got %s\nwant %s", got, want)
	}
}

func TestSExpr(t *testing.T) {
	got := SExpr(sampleTree())
	if !strings.HasPrefix(got, "(S[dcl] ") {
		t.Errorf("SExpr should open with the root category: %s", got)
	}
	if !strings.Contains(got, "(NP John)") || !strings.Contains(got, "(S[dcl]\\NP runs)") {
		t.Errorf("SExpr should contain both leaves: %s", got)
	}
}

func TestWriteHTML(t *testing.T) {
	var b strings.Builder
	parses := []parse.ScoredTree{{Tree: sampleTree(), Score: -0.5}}
	if err := WriteHTML(&b, []string{"John", "runs"}, parses); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	if !strings.Contains(out, "John runs") {
		t.Error("missing sentence heading")
	}
	if !strings.Contains(out, "S[dcl]") {
		t.Error("missing root category")
	}
	// The root of the derivation is rendered as a binary node div.
	if !strings.Contains(out, "class=\"node binary\"") {
		t.Error("missing derivation structure")
	}
}
