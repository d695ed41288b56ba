// Package output renders derivation trees: the CCGbank AUTO line
// format, an indented s-expression for the terminal, and an HTML
// rendering for visual inspection.
package output

import (
	"fmt"
	"strings"

	"github.com/poetaster-org/depccg/pkg/ccg/parse"
)

// Auto renders a derivation as a single CCGbank AUTO line.
func Auto(t *parse.Tree) string {
	var b strings.Builder
	writeAuto(&b, t)
	return b.String()
}

func writeAuto(b *strings.Builder, t *parse.Tree) {
	switch {
	case t.IsLeaf():
		c := t.Category().String()
		fmt.Fprintf(b, "(<L %s POS POS %s %s>)", c, t.Word(), c)
	case t.IsUnary():
		fmt.Fprintf(b, "(<T %s 0 1> ", t.Category())
		writeAuto(b, t.Child())
		b.WriteString(" )")
	default:
		head := 0
		if !t.HeadIsLeft() {
			head = 1
		}
		fmt.Fprintf(b, "(<T %s %d 2> ", t.Category(), head)
		writeAuto(b, t.Left())
		b.WriteByte(' ')
		writeAuto(b, t.Right())
		b.WriteString(" )")
	}
}

// SExpr renders a derivation as an indented s-expression.
func SExpr(t *parse.Tree) string {
	return sexprRepr(t, 0)
}

func sexprRepr(t *parse.Tree, level int) string {
	prefix := strings.Repeat(" ", level*2)
	if level != 0 {
		prefix = "\n" + prefix
	}

	if t.IsLeaf() {
		return fmt.Sprintf("%s(%s %s)", prefix, t.Category(), t.Word())
	}
	children := []string{sexprRepr(t.Left(), level+1)}
	if t.Right() != nil {
		children = append(children, sexprRepr(t.Right(), level+1))
	}
	return fmt.Sprintf("%s(%s %s)", prefix, t.Category(), strings.Join(children, " "))
}
