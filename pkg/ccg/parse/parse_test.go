package parse

import (
	"testing"

	"github.com/poetaster-org/depccg/pkg/ccg/cat"
	"github.com/poetaster-org/depccg/pkg/ccg/grammar"
)

// Shared helpers for the package tests: a small English grammar whose
// inventory fixes the tag-matrix column order.

func npCat(t *testing.T) *cat.Category {
	t.Helper()
	return cat.MustParse("NP")
}

// testInventory is the column order used by all fixtures:
// 0 NP, 1 S[dcl]\NP, 2 N, 3 NP/NP, 4 (S[dcl]\NP)/NP.
var testInventoryStrs = []string{"NP", "S[dcl]\\NP", "N", "NP/NP", "(S[dcl]\\NP)/NP"}

func testGrammar(t *testing.T, tab grammar.Tables) *grammar.Grammar {
	t.Helper()
	if tab.Inventory == nil {
		for _, s := range testInventoryStrs {
			tab.Inventory = append(tab.Inventory, cat.MustParse(s))
		}
	}
	g, err := grammar.English(tab)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// uniformRows builds a matrix of identical rows.
func uniformRows(n int, row []float64) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
