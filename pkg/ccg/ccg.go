// Package ccg is the parsing engine facade: it binds a grammar, a
// search configuration, and an optional treebank store, and dispatches
// batches of sentences over a worker pool.
package ccg

import (
	"context"
	"fmt"

	"github.com/poetaster-org/depccg/internal/parallel"
	"github.com/poetaster-org/depccg/pkg/ccg/grammar"
	"github.com/poetaster-org/depccg/pkg/ccg/output"
	"github.com/poetaster-org/depccg/pkg/ccg/parse"
	"github.com/poetaster-org/depccg/pkg/ccg/store"
)

// Engine is the main parsing facade.
type Engine struct {
	g       *grammar.Grammar
	parser  *parse.Parser
	store   store.Store
	workers int
}

// Options configures an Engine.
type Options struct {
	// Grammar is required: the rule tables and inventory to parse
	// with.
	Grammar *grammar.Grammar

	// Config holds the search settings; the zero value means
	// parse.DefaultConfig().
	Config parse.Config

	// Store, when set, persists every batch (sentences and their
	// N-best derivations).
	Store store.Store

	// Workers caps concurrent sentences; 0 means one per CPU core.
	Workers int
}

// New creates an Engine with the given dependencies.
func New(opts Options) (*Engine, error) {
	if opts.Grammar == nil {
		return nil, fmt.Errorf("ccg: no grammar given")
	}
	cfg := opts.Config
	if cfg == (parse.Config{}) {
		cfg = parse.DefaultConfig()
	}
	parser, err := parse.NewParser(opts.Grammar, cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{
		g:       opts.Grammar,
		parser:  parser,
		store:   opts.Store,
		workers: opts.Workers,
	}, nil
}

// Close cleanly shuts down the engine.
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// Grammar returns the engine's grammar.
func (e *Engine) Grammar() *grammar.Grammar { return e.g }

// Input is one sentence to parse: tokens plus the two score matrices
// from the external tagger, and optional span constraints.
type Input struct {
	Tokens      []string
	TagScores   [][]float64
	DepScores   [][]float64
	Constraints []parse.Constraint
}

// SentenceResult is one sentence's outcome. Err is set for surfaced
// parse failures (shape mismatch, grammar inconsistency), for a
// context cancelled before the sentence started, and for storage
// failures; an empty parse list with a nil Err is a legitimate result,
// described by Diag.
type SentenceResult struct {
	Parses   []parse.ScoredTree
	Diag     parse.Diag
	Err      error
	StoredID string
}

// ParseSentence parses one sentence and, when a store is configured,
// persists the outcome.
func (e *Engine) ParseSentence(ctx context.Context, in Input) SentenceResult {
	res, err := e.parser.Parse(in.Tokens, in.TagScores, in.DepScores, in.Constraints)
	out := SentenceResult{Parses: res.Parses, Diag: res.Diag, Err: err}
	if e.store != nil {
		out.StoredID = e.persist(ctx, in, &out)
	}
	return out
}

// ParseBatch parses sentences concurrently on the worker pool.
// Results align with the input order regardless of completion order;
// per-sentence failures stay in their slot and never abort the batch.
func (e *Engine) ParseBatch(ctx context.Context, inputs []Input) []SentenceResult {
	results := make([]SentenceResult, len(inputs))
	pool := parallel.NewPool(e.workers)

	for i := range inputs {
		idx := i
		pool.Submit(func() {
			if err := ctx.Err(); err != nil {
				results[idx] = SentenceResult{Err: err}
				return
			}
			results[idx] = e.ParseSentence(ctx, inputs[idx])
		})
	}
	pool.Shutdown()
	return results
}

// persist writes the sentence record and its parses; storage failures
// are reported on the result but do not invalidate the parse.
func (e *Engine) persist(ctx context.Context, in Input, res *SentenceResult) string {
	id := store.NewID()
	sent := store.Sentence{
		ID:     id,
		Lang:   e.g.Lang(),
		Tokens: in.Tokens,
		Diag:   string(res.Diag),
	}
	if err := e.store.SaveSentence(ctx, sent); err != nil {
		res.Err = err
		return ""
	}

	parses := make([]store.Parse, len(res.Parses))
	for i, p := range res.Parses {
		parses[i] = store.Parse{
			SentenceID: id,
			Rank:       i + 1,
			Score:      p.Score,
			Auto:       output.Auto(p.Tree),
		}
	}
	if err := e.store.SaveParses(ctx, id, parses); err != nil {
		res.Err = err
		return ""
	}
	return id
}
