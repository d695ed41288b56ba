package output

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/poetaster-org/depccg/pkg/ccg/parse"
)

// WriteHTML renders scored derivations as a standalone HTML page.
// Each derivation is a nested list mirroring the tree, category above
// children, rule names on the connecting nodes.
func WriteHTML(w io.Writer, tokens []string, parses []parse.ScoredTree) error {
	body := elem(atom.Body, nil)
	heading := elem(atom.H1, nil)
	heading.AppendChild(text(joinTokens(tokens)))
	body.AppendChild(heading)

	for i, p := range parses {
		caption := elem(atom.P, map[string]string{"class": "score"})
		caption.AppendChild(text(fmt.Sprintf("#%d  score %.4f", i+1, p.Score)))
		body.AppendChild(caption)
		body.AppendChild(derivationNode(p.Tree))
	}

	doc := &html.Node{Type: html.DocumentNode}
	root := elem(atom.Html, nil)
	head := elem(atom.Head, nil)
	title := elem(atom.Title, nil)
	title.AppendChild(text("derivations"))
	head.AppendChild(title)
	root.AppendChild(head)
	root.AppendChild(body)
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	return html.Render(w, doc)
}

func derivationNode(t *parse.Tree) *html.Node {
	class := "binary"
	switch {
	case t.IsLeaf():
		class = "leaf"
	case t.IsUnary():
		class = "unary"
	}
	div := elem(atom.Div, map[string]string{"class": "node " + class})

	cat := elem(atom.Span, map[string]string{"class": "cat"})
	cat.AppendChild(text(t.Category().String()))
	div.AppendChild(cat)

	if t.IsLeaf() {
		word := elem(atom.Span, map[string]string{"class": "word"})
		word.AppendChild(text(t.Word()))
		div.AppendChild(word)
		return div
	}

	rule := elem(atom.Span, map[string]string{"class": "rule"})
	rule.AppendChild(text(t.Rule()))
	div.AppendChild(rule)

	children := elem(atom.Div, map[string]string{"class": "children"})
	children.AppendChild(derivationNode(t.Left()))
	if t.Right() != nil {
		children.AppendChild(derivationNode(t.Right()))
	}
	div.AppendChild(children)
	return div
}

func elem(a atom.Atom, attrs map[string]string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for k, v := range attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: k, Val: v})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func joinTokens(tokens []string) string {
	out := ""
	for i, tok := range tokens {
		if i > 0 {
			out += " "
		}
		out += tok
	}
	return out
}
