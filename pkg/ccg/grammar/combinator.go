// Package grammar holds the rule system of the parser: the closed set
// of binary combinators, unary type-changing rules, the seen-rules
// filter, admissible root categories, and the lexical category
// dictionary. A Grammar is built once at setup and is read-only during
// parsing; the English and Japanese variants differ only in their
// tables.
package grammar

import "github.com/poetaster-org/depccg/pkg/ccg/cat"

// Kind enumerates the binary combinator variants. The set is closed;
// a grammar enables a subset in a fixed application order.
type Kind int

const (
	ForwardApplication Kind = iota
	BackwardApplication
	ForwardComposition
	BackwardComposition
	BackwardCrossComposition
	GenForwardComposition
	GenBackwardComposition
	Conjunction
	Conjunction2
	RemovePunctLeft
	RemovePunctRight
	CommaVPToAdverb
	ParentheticalDirectSpeech
	Conjoin
)

// Combinator is one enabled binary rule. Order is the composition
// depth for the generalized variants and ignored otherwise.
type Combinator struct {
	Kind  Kind
	Name  string
	Order int
}

// Apply attempts the combinator on two adjacent categories and
// returns the parent category. Feature variables bound during the
// match are substituted through the result.
func (c Combinator) Apply(l, r *cat.Category) (*cat.Category, bool) {
	switch c.Kind {
	case ForwardApplication:
		return forwardApplication(l, r)
	case BackwardApplication:
		return backwardApplication(l, r)
	case ForwardComposition:
		return forwardComposition(l, r)
	case BackwardComposition:
		return backwardComposition(l, r)
	case BackwardCrossComposition:
		return backwardCrossComposition(l, r)
	case GenForwardComposition:
		return genForwardComposition(l, r, c.Order)
	case GenBackwardComposition:
		return genBackwardComposition(l, r, c.Order)
	case Conjunction:
		return conjunction(l, r)
	case Conjunction2:
		return conjunction2(l, r)
	case RemovePunctLeft:
		return removePunctLeft(l, r)
	case RemovePunctRight:
		return removePunctRight(l, r)
	case CommaVPToAdverb:
		return commaVPToAdverb(l, r)
	case ParentheticalDirectSpeech:
		return parentheticalDirectSpeech(l, r)
	case Conjoin:
		return conjoin(l, r)
	}
	return nil, false
}

// HeadIsLeft decides which child is the head of the parent node.
// The functor child heads the construction unless it is a modifier or
// type-raised, in which case the argument heads; punctuation and
// conjunction attach to the content side. Head-final grammars
// override this wholesale: Grammar.ApplyBinary makes the right child
// the head of every node.
func (c Combinator) HeadIsLeft(l, r *cat.Category) bool {
	switch c.Kind {
	case ForwardApplication, ForwardComposition, GenForwardComposition:
		return !(l.IsModifier() || l.IsTypeRaised())
	case BackwardApplication, BackwardComposition, BackwardCrossComposition, GenBackwardComposition:
		return r.IsModifier() || r.IsTypeRaised()
	case RemovePunctRight:
		return true
	case RemovePunctLeft, Conjunction, Conjunction2, CommaVPToAdverb, ParentheticalDirectSpeech:
		return false
	case Conjoin:
		return false
	}
	return true
}

// X/Y Y -> X
func forwardApplication(l, r *cat.Category) (*cat.Category, bool) {
	if !l.IsForward() || !l.Right().Matches(r) {
		return nil, false
	}
	res := l.Left()
	if f := l.Right().BoundFeature(r); f != "" {
		res = res.SubstFeature(f)
	}
	return res, true
}

// Y X\Y -> X
func backwardApplication(l, r *cat.Category) (*cat.Category, bool) {
	if !r.IsBackward() || !r.Right().Matches(l) {
		return nil, false
	}
	res := r.Left()
	if f := r.Right().BoundFeature(l); f != "" {
		res = res.SubstFeature(f)
	}
	return res, true
}

// X/Y Y/Z -> X/Z
func forwardComposition(l, r *cat.Category) (*cat.Category, bool) {
	if !l.IsForward() || !r.IsForward() || !l.Right().Matches(r.Left()) {
		return nil, false
	}
	res := l.Left()
	if f := l.Right().BoundFeature(r.Left()); f != "" {
		res = res.SubstFeature(f)
	}
	return cat.Make(res, cat.Forward, r.Right()), true
}

// Y\Z X\Y -> X\Z
func backwardComposition(l, r *cat.Category) (*cat.Category, bool) {
	if !l.IsBackward() || !r.IsBackward() || !r.Right().Matches(l.Left()) {
		return nil, false
	}
	res := r.Left()
	if f := r.Right().BoundFeature(l.Left()); f != "" {
		res = res.SubstFeature(f)
	}
	return cat.Make(res, cat.Backward, l.Right()), true
}

// Y/Z X\Y -> X/Z
func backwardCrossComposition(l, r *cat.Category) (*cat.Category, bool) {
	if !l.IsForward() || !r.IsBackward() || !r.Right().Matches(l.Left()) {
		return nil, false
	}
	if l.Left().IsN() || l.Left().IsNP() {
		// Crossing into nominals overgenerates badly.
		return nil, false
	}
	res := r.Left()
	if f := r.Right().BoundFeature(l.Left()); f != "" {
		res = res.SubstFeature(f)
	}
	return cat.Make(res, cat.Forward, l.Right()), true
}

// X/Y (Y|Z1)|Z2... -> (X|Z1)|Z2..., peeling order arguments off the right.
func genForwardComposition(l, r *cat.Category, order int) (*cat.Category, bool) {
	if !l.IsForward() {
		return nil, false
	}
	inner, args, ok := peelArgs(r, order)
	if !ok || !l.Right().Matches(inner) {
		return nil, false
	}
	res := l.Left()
	if f := l.Right().BoundFeature(inner); f != "" {
		res = res.SubstFeature(f)
	}
	return rebuildArgs(res, args), true
}

// (Y|Z1)|Z2... X\Y -> (X|Z1)|Z2...
func genBackwardComposition(l, r *cat.Category, order int) (*cat.Category, bool) {
	if !r.IsBackward() {
		return nil, false
	}
	inner, args, ok := peelArgs(l, order)
	if !ok || !r.Right().Matches(inner) {
		return nil, false
	}
	res := r.Left()
	if f := r.Right().BoundFeature(inner); f != "" {
		res = res.SubstFeature(f)
	}
	return rebuildArgs(res, args), true
}

type peeledArg struct {
	slash cat.Slash
	arg   *cat.Category
}

// peelArgs removes exactly n outermost arguments, innermost last.
func peelArgs(c *cat.Category, n int) (*cat.Category, []peeledArg, bool) {
	args := make([]peeledArg, 0, n)
	for i := 0; i < n; i++ {
		if !c.IsFunctor() {
			return nil, nil, false
		}
		args = append(args, peeledArg{c.Dir(), c.Right()})
		c = c.Left()
	}
	return c, args, true
}

func rebuildArgs(res *cat.Category, args []peeledArg) *cat.Category {
	for i := len(args) - 1; i >= 0; i-- {
		res = cat.Make(res, args[i].slash, args[i].arg)
	}
	return res
}

func isConjLike(c *cat.Category) bool {
	return c.IsConj() || c.Base() == "," || c.Base() == ";"
}

// conj X -> X\X
func conjunction(l, r *cat.Category) (*cat.Category, bool) {
	if !isConjLike(l) || r.IsPunct() || r.IsConj() || r.IsTypeRaised() {
		return nil, false
	}
	if r.IsN() && r.IsAtomic() {
		return nil, false
	}
	if npMod := nomModifier(); r == npMod {
		return nil, false
	}
	return cat.Make(r, cat.Backward, r), true
}

// conj NP\NP -> NP\NP, for stacked nominal coordination.
func conjunction2(l, r *cat.Category) (*cat.Category, bool) {
	if !l.IsConj() || r != nomModifier() {
		return nil, false
	}
	return r, true
}

func nomModifier() *cat.Category {
	return cat.Make(cat.Atomic("NP", ""), cat.Backward, cat.Atomic("NP", ""))
}

// , X -> X
func removePunctLeft(l, r *cat.Category) (*cat.Category, bool) {
	if !l.IsPunct() || r.IsPunct() {
		return nil, false
	}
	return r, true
}

// X , -> X
func removePunctRight(l, r *cat.Category) (*cat.Category, bool) {
	if !r.IsPunct() || l.IsPunct() {
		return nil, false
	}
	return l, true
}

// , S[ng|pss]\NP -> (S\NP)\(S\NP)
func commaVPToAdverb(l, r *cat.Category) (*cat.Category, bool) {
	if l.Base() != "," || !r.IsBackward() {
		return nil, false
	}
	res, arg := r.Left(), r.Right()
	if !arg.IsNP() || res.Base() != "S" {
		return nil, false
	}
	if f := res.Feature(); f != "ng" && f != "pss" {
		return nil, false
	}
	vp := cat.Make(cat.Atomic("S", ""), cat.Backward, cat.Atomic("NP", ""))
	return cat.Make(vp, cat.Backward, vp), true
}

// , S[dcl] -> S[dcl]/S[dcl], for quoted direct speech.
func parentheticalDirectSpeech(l, r *cat.Category) (*cat.Category, bool) {
	if l.Base() != "," || !r.IsAtomic() || r.Base() != "S" || r.Feature() != "dcl" {
		return nil, false
	}
	return cat.Make(r, cat.Forward, r), true
}

// X X -> X, for serialized clauses in head-final grammars.
func conjoin(l, r *cat.Category) (*cat.Category, bool) {
	if l != r || l.IsPunct() || l.IsConj() {
		return nil, false
	}
	return l, true
}
