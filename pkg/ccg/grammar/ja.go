package grammar

import "github.com/poetaster-org/depccg/pkg/ccg/cat"

// japaneseCombinators is the head-final rule set: clause serialization,
// application, composition, and generalized backward composition up to
// depth four as the Japanese CCGbank analyses require.
func japaneseCombinators() []Combinator {
	return []Combinator{
		{Kind: Conjoin, Name: "SSEQ"},
		{Kind: ForwardApplication, Name: ">"},
		{Kind: BackwardApplication, Name: "<"},
		{Kind: ForwardComposition, Name: ">B"},
		{Kind: BackwardComposition, Name: "<B1"},
		{Kind: GenBackwardComposition, Name: "<B2", Order: 2},
		{Kind: GenBackwardComposition, Name: "<B3", Order: 3},
		{Kind: GenBackwardComposition, Name: "<B4", Order: 4},
	}
}

// japaneseRootStrs lists the sentence-final categories of the Japanese
// CCGbank: finished NPs and the finite clause forms.
var japaneseRootStrs = []string{
	"NP[case=nc,mod=nm,fin=f]",
	"NP[case=nc,mod=nm,fin=t]",
	"S[mod=nm,form=attr,fin=t]",
	"S[mod=nm,form=base,fin=f]",
	"S[mod=nm,form=base,fin=t]",
	"S[mod=nm,form=cont,fin=f]",
	"S[mod=nm,form=cont,fin=t]",
	"S[mod=nm,form=da,fin=f]",
	"S[mod=nm,form=da,fin=t]",
	"S[mod=nm,form=hyp,fin=t]",
	"S[mod=nm,form=imp,fin=f]",
	"S[mod=nm,form=imp,fin=t]",
	"S[mod=nm,form=r,fin=t]",
	"S[mod=nm,form=s,fin=t]",
	"S[mod=nm,form=stem,fin=f]",
	"S[mod=nm,form=stem,fin=t]",
}

// japaneseUnary rewrites adnominal clauses into nominal modifiers.
func japaneseUnary() map[*cat.Category][]*cat.Category {
	np := "NP[case=nc,mod=nm,fin=f]"
	table := [][2]string{
		{"S[mod=adn,form=base,fin=f]", np + "/" + np},
		{"S[mod=adn,form=attr,fin=f]", np + "/" + np},
	}
	unary := make(map[*cat.Category][]*cat.Category, len(table))
	for _, row := range table {
		child := cat.MustParse(row[0])
		unary[child] = append(unary[child], cat.MustParse(row[1]))
	}
	return unary
}

// Japanese builds the Japanese grammar variant. The language tag is
// "ja"; the upstream system mislabeled it with the English tag.
func Japanese(t Tables) (*Grammar, error) {
	if t.Unary == nil {
		t.Unary = japaneseUnary()
	}
	if len(t.Roots) == 0 {
		for _, s := range japaneseRootStrs {
			t.Roots = append(t.Roots, cat.MustParse(s))
		}
	}
	return newGrammar("ja", true, japaneseCombinators(), t)
}
