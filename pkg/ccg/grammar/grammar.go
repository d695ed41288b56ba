package grammar

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/poetaster-org/depccg/pkg/ccg/cat"
	"github.com/poetaster-org/depccg/pkg/ccg/internalerr"
)

// DefaultRuleCacheSize bounds the shared binary-rule cache. A few
// thousand distinct category pairs cover a typical batch.
const DefaultRuleCacheSize = 100_000

// RuleApplication is one admissible parent for an adjacent pair.
type RuleApplication struct {
	Result     *cat.Category
	Combinator Combinator
	HeadIsLeft bool
}

// Grammar bundles every table the parser consults. Built once before
// dispatch, read-only afterwards; the rule cache is thread-safe.
type Grammar struct {
	lang        string
	headFinal   bool
	combinators []Combinator

	unary     map[*cat.Category][]*cat.Category
	seenRules map[[2]*cat.Category]struct{}
	roots     []*cat.Category
	rootSet   map[*cat.Category]struct{}
	inventory []*cat.Category
	catDict   map[string][]*cat.Category

	cache *lru.Cache[uint64, []RuleApplication]
}

// Tables carries the loadable resources of a grammar variant. A nil
// Unary map and empty Roots keep the variant's built-in tables (a
// non-nil empty Unary map means no unary rules); the other fields have
// no built-in defaults.
type Tables struct {
	Inventory []*cat.Category
	Unary     map[*cat.Category][]*cat.Category
	SeenRules [][2]*cat.Category
	Roots     []*cat.Category
	CatDict   map[string][]*cat.Category
	CacheSize int
}

func newGrammar(lang string, headFinal bool, combinators []Combinator, t Tables) (*Grammar, error) {
	size := t.CacheSize
	if size <= 0 {
		size = DefaultRuleCacheSize
	}
	cache, err := lru.New[uint64, []RuleApplication](size)
	if err != nil {
		return nil, fmt.Errorf("grammar: rule cache: %w", err)
	}

	g := &Grammar{
		lang:        lang,
		headFinal:   headFinal,
		combinators: combinators,
		unary:       make(map[*cat.Category][]*cat.Category),
		seenRules:   make(map[[2]*cat.Category]struct{}),
		rootSet:     make(map[*cat.Category]struct{}),
		catDict:     make(map[string][]*cat.Category),
		cache:       cache,
	}

	for child, parents := range t.Unary {
		g.unary[child] = append(g.unary[child], parents...)
	}
	for _, pair := range t.SeenRules {
		g.seenRules[[2]*cat.Category{pair[0].Normalize(), pair[1].Normalize()}] = struct{}{}
	}
	for _, r := range t.Roots {
		if _, dup := g.rootSet[r]; dup {
			continue
		}
		g.rootSet[r] = struct{}{}
		g.roots = append(g.roots, r)
	}
	g.inventory = append(g.inventory, t.Inventory...)
	for w, cats := range t.CatDict {
		g.catDict[w] = append(g.catDict[w], cats...)
	}

	if len(g.roots) == 0 {
		return nil, fmt.Errorf("grammar %s: no admissible root categories: %w",
			lang, internalerr.ErrInvalidConfig)
	}
	return g, nil
}

// Lang returns the language tag, "en" or "ja".
func (g *Grammar) Lang() string { return g.lang }

// Combinators returns the enabled binary rules in application order.
func (g *Grammar) Combinators() []Combinator { return g.combinators }

// Inventory returns the supertag list; its order is the column order
// of the tag score matrix.
func (g *Grammar) Inventory() []*cat.Category { return g.inventory }

// Roots returns the admissible root categories.
func (g *Grammar) Roots() []*cat.Category { return g.roots }

// IsRoot reports whether c may head a complete parse.
func (g *Grammar) IsRoot(c *cat.Category) bool {
	_, ok := g.rootSet[c]
	return ok
}

// DictCats returns the category-dictionary entry for a surface form.
func (g *Grammar) DictCats(word string) ([]*cat.Category, bool) {
	cats, ok := g.catDict[word]
	return cats, ok
}

// SeenRule reports whether the pair is attested, comparing normalized
// forms ([X] and [nb] stripped).
func (g *Grammar) SeenRule(l, r *cat.Category) bool {
	_, ok := g.seenRules[[2]*cat.Category{l.Normalize(), r.Normalize()}]
	return ok
}

// HasSeenRules reports whether a seen-rules table was loaded at all;
// the filter is meaningless without one.
func (g *Grammar) HasSeenRules() bool { return len(g.seenRules) > 0 }

// ApplyUnary returns the admissible parents for a type-changing step.
// Span-level restrictions (no unary chains, root-only top spans) are
// the search loop's concern.
func (g *Grammar) ApplyUnary(child *cat.Category) []*cat.Category {
	return g.unary[child]
}

// UnaryReachable reports whether parent is reachable from child by at
// most one unary step. Used by constraint validation.
func (g *Grammar) UnaryReachable(child, parent *cat.Category) bool {
	if child == parent {
		return true
	}
	for _, p := range g.unary[child] {
		if p == parent {
			return true
		}
	}
	return false
}

// InInventory reports whether c is a known category: a supertag, a
// unary parent, or a root.
func (g *Grammar) InInventory(c *cat.Category) bool {
	for _, x := range g.inventory {
		if x == c {
			return true
		}
	}
	for child, parents := range g.unary {
		if child == c {
			return true
		}
		for _, p := range parents {
			if p == c {
				return true
			}
		}
	}
	return g.IsRoot(c)
}

func ruleKey(l, r *cat.Category) uint64 {
	return uint64(uint32(l.ID()))<<32 | uint64(uint32(r.ID()))
}

// ApplyBinary runs every enabled combinator on the adjacent pair, in
// order, deduplicating by parent category. With useSeen set, a pair
// absent from the seen-rules table yields nothing. Raw applications
// are cached by category-id pair; the seen filter runs outside the
// cache so both settings share entries.
func (g *Grammar) ApplyBinary(l, r *cat.Category, useSeen bool) []RuleApplication {
	if useSeen && !g.SeenRule(l, r) {
		return nil
	}
	key := ruleKey(l, r)
	if cached, ok := g.cache.Get(key); ok {
		return cached
	}

	var out []RuleApplication
	var seen map[*cat.Category]struct{}
	for _, c := range g.combinators {
		res, ok := c.Apply(l, r)
		if !ok {
			continue
		}
		if seen == nil {
			seen = make(map[*cat.Category]struct{}, 2)
		}
		if _, dup := seen[res]; dup {
			continue
		}
		seen[res] = struct{}{}
		headLeft := c.HeadIsLeft(l, r)
		if g.headFinal {
			headLeft = false
		}
		out = append(out, RuleApplication{Result: res, Combinator: c, HeadIsLeft: headLeft})
	}
	g.cache.Add(key, out)
	return out
}
