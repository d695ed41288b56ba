// Package parse implements the per-sentence A* search: score views,
// admissible outside estimates, supertag pruning, the agenda, the
// chart, span constraints, and derivation trees. A Parser holds no
// per-sentence state, so one value may parse several sentences
// concurrently; sentences share only the grammar.
package parse

import "github.com/poetaster-org/depccg/pkg/ccg/cat"

// Tree is an immutable derivation node. Leaves carry a token and its
// lexical log-probability; binary nodes a combinator application;
// unary nodes a type-changing rule. Subtrees are shared between
// parents (the chart reuses finalized derivations), so a Tree is a DAG
// node and must never be mutated after construction.
type Tree struct {
	category *cat.Category
	left     *Tree // nil for leaves
	right    *Tree // nil for leaves and unary nodes
	rule     string
	headLeft bool

	position int // leaves only
	word     string

	start  int
	length int
	head   int
	inside float64
	unary  bool
}

// NewLeaf builds a lexical item at token position pos.
func NewLeaf(pos int, word string, c *cat.Category, lexLP float64) *Tree {
	return &Tree{
		category: c,
		rule:     "lex",
		position: pos,
		word:     word,
		start:    pos,
		length:   1,
		head:     pos,
		inside:   lexLP,
	}
}

// NewBinary builds a combinator application over two adjacent
// subtrees. The children's spans must be adjacent; the head token is
// taken from the head-side child.
func NewBinary(c *cat.Category, rule string, left, right *Tree, headLeft bool, inside float64) *Tree {
	head := right.head
	if headLeft {
		head = left.head
	}
	return &Tree{
		category: c,
		left:     left,
		right:    right,
		rule:     rule,
		headLeft: headLeft,
		start:    left.start,
		length:   left.length + right.length,
		head:     head,
		inside:   inside,
	}
}

// NewUnary builds a type-changing node over the same span as its
// child. The inside score is unchanged: unary rules carry no
// probability mass of their own.
func NewUnary(c *cat.Category, rule string, child *Tree) *Tree {
	return &Tree{
		category: c,
		left:     child,
		rule:     rule,
		headLeft: true,
		start:    child.start,
		length:   child.length,
		head:     child.head,
		inside:   child.inside,
		unary:    true,
	}
}

// Category returns the node's category.
func (t *Tree) Category() *cat.Category { return t.category }

// Start returns the first token position covered.
func (t *Tree) Start() int { return t.start }

// Length returns the number of tokens covered.
func (t *Tree) Length() int { return t.length }

// End returns one past the last covered position.
func (t *Tree) End() int { return t.start + t.length }

// Head returns the head token position of the subtree.
func (t *Tree) Head() int { return t.head }

// Inside returns the inside score: the sum of leaf lexical
// log-probabilities plus the dependency log-probabilities added at
// binary nodes.
func (t *Tree) Inside() float64 { return t.inside }

// IsLeaf reports a lexical item.
func (t *Tree) IsLeaf() bool { return t.left == nil }

// IsUnary reports a type-changing node.
func (t *Tree) IsUnary() bool { return t.unary }

// IsBinary reports a combinator application node.
func (t *Tree) IsBinary() bool { return t.left != nil && !t.unary }

// Left returns the left child (the only child of a unary node).
func (t *Tree) Left() *Tree { return t.left }

// Right returns the right child, nil for leaves and unary nodes.
func (t *Tree) Right() *Tree { return t.right }

// Child returns the single child of a unary node.
func (t *Tree) Child() *Tree { return t.left }

// Rule returns the combinator or rule identifier ("lex" for leaves).
func (t *Tree) Rule() string { return t.rule }

// HeadIsLeft reports which child heads a binary node.
func (t *Tree) HeadIsLeft() bool { return t.headLeft }

// Position returns a leaf's token index.
func (t *Tree) Position() int { return t.position }

// Word returns a leaf's surface form.
func (t *Tree) Word() string { return t.word }

// Leaves appends the leaf nodes in surface order.
func (t *Tree) Leaves() []*Tree {
	var out []*Tree
	t.visitLeaves(&out)
	return out
}

func (t *Tree) visitLeaves(out *[]*Tree) {
	if t.IsLeaf() {
		*out = append(*out, t)
		return
	}
	t.left.visitLeaves(out)
	if t.right != nil {
		t.right.visitLeaves(out)
	}
}
