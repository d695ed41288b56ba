package grammar

import "github.com/poetaster-org/depccg/pkg/ccg/cat"

// englishCombinators is the English binary rule set, in application
// order. Includes the crossed backward composition and the CCGbank
// punctuation and coordination rules.
func englishCombinators() []Combinator {
	return []Combinator{
		{Kind: ForwardApplication, Name: "fa"},
		{Kind: BackwardApplication, Name: "ba"},
		{Kind: ForwardComposition, Name: "fc"},
		{Kind: BackwardCrossComposition, Name: "bx"},
		{Kind: GenForwardComposition, Name: "gfc", Order: 2},
		{Kind: Conjunction, Name: "conj"},
		{Kind: Conjunction2, Name: "conj2"},
		{Kind: RemovePunctLeft, Name: "lp"},
		{Kind: RemovePunctRight, Name: "rp"},
		{Kind: CommaVPToAdverb, Name: "lp"},
		{Kind: ParentheticalDirectSpeech, Name: "lp"},
	}
}

// englishUnary is the default type-changing table: bare nouns to NP,
// NP/PP type raising, and the reduced-relative family into nominal
// modifiers.
func englishUnary() map[*cat.Category][]*cat.Category {
	table := [][2]string{
		{"N", "NP"},
		{"NP", "S[X]/(S[X]\\NP)"},
		{"NP", "(S[X]\\NP)\\((S[X]\\NP)/NP)"},
		{"PP", "(S[X]\\NP)\\((S[X]\\NP)/PP)"},
		{"S[pss]\\NP", "NP\\NP"},
		{"S[ng]\\NP", "NP\\NP"},
		{"S[adj]\\NP", "NP\\NP"},
		{"S[to]\\NP", "NP\\NP"},
		{"S[dcl]/NP", "NP\\NP"},
	}
	unary := make(map[*cat.Category][]*cat.Category, len(table))
	for _, row := range table {
		child := cat.MustParse(row[0])
		unary[child] = append(unary[child], cat.MustParse(row[1]))
	}
	return unary
}

var englishRootStrs = []string{"S[dcl]", "S[wq]", "S[q]", "S[qem]", "NP"}

// English builds the English grammar variant. Empty Tables fields
// fall back to the built-in rule families.
func English(t Tables) (*Grammar, error) {
	if t.Unary == nil {
		t.Unary = englishUnary()
	}
	if len(t.Roots) == 0 {
		for _, s := range englishRootStrs {
			t.Roots = append(t.Roots, cat.MustParse(s))
		}
	}
	return newGrammar("en", false, englishCombinators(), t)
}
