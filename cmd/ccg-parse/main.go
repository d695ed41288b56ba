// Command ccg-parse parses a batch of scored sentences and prints the
// N-best derivations.
//
// The input file is JSON: a list of sentences, each with its tokens
// and the two score matrices produced by an external supertagger.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/poetaster-org/depccg/pkg/ccg"
	"github.com/poetaster-org/depccg/pkg/ccg/cat"
	"github.com/poetaster-org/depccg/pkg/ccg/config"
	"github.com/poetaster-org/depccg/pkg/ccg/grammar"
	"github.com/poetaster-org/depccg/pkg/ccg/output"
	"github.com/poetaster-org/depccg/pkg/ccg/parse"
	"github.com/poetaster-org/depccg/pkg/ccg/store/sqlite"
)

func main() {
	var (
		inputPath = flag.String("input", "", "Scored sentences JSON file (required)")
		catsPath  = flag.String("categories", "", "Category inventory file (required)")
		lang      = flag.String("lang", "en", "Grammar variant: en or ja")
		unaryPath = flag.String("unary", "", "Unary rules file (optional)")
		seenPath  = flag.String("seen", "", "Seen rules file (optional)")
		dictPath  = flag.String("dict", "", "Category dictionary file (optional)")
		optsPath  = flag.String("options", "", "Search options YAML (optional)")
		nbest     = flag.Int("nbest", 0, "Override nbest")
		format    = flag.String("format", "auto", "Output format: auto, sexpr, or html")
		dbPath    = flag.String("db", "", "SQLite treebank to persist results (optional)")
		workers   = flag.Int("workers", 0, "Concurrent sentences (default: CPU cores)")
	)
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("--input required")
	}
	if *catsPath == "" {
		log.Fatal("--categories required")
	}

	ctx := context.Background()

	engine, cleanup, err := buildEngine(ctx, *lang, *catsPath, *unaryPath, *seenPath,
		*dictPath, *optsPath, *dbPath, *nbest, *workers)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	inputs, err := loadInputs(*inputPath)
	if err != nil {
		log.Fatal(err)
	}

	results := engine.ParseBatch(ctx, inputs)
	if err := printResults(os.Stdout, *format, inputs, results); err != nil {
		log.Fatal(err)
	}
}

func buildEngine(ctx context.Context, lang, catsPath, unaryPath, seenPath, dictPath,
	optsPath, dbPath string, nbest, workers int) (*ccg.Engine, func(), error) {

	tables := grammar.Tables{}
	var err error

	tables.Inventory, err = config.LoadCategories(catsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("categories: %w", err)
	}
	if unaryPath != "" {
		tables.Unary, err = config.LoadUnaryRules(unaryPath)
		if err != nil {
			return nil, nil, fmt.Errorf("unary rules: %w", err)
		}
	}
	if seenPath != "" {
		tables.SeenRules, err = config.LoadSeenRules(seenPath)
		if err != nil {
			return nil, nil, fmt.Errorf("seen rules: %w", err)
		}
	}
	if dictPath != "" {
		tables.CatDict, err = config.LoadCatDict(dictPath)
		if err != nil {
			return nil, nil, fmt.Errorf("category dictionary: %w", err)
		}
	}

	cfg := parse.DefaultConfig()
	if optsPath != "" {
		opts, err := config.LoadOptions(optsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("options: %w", err)
		}
		cfg = opts.ParseConfig()
		roots, err := opts.RootCats()
		if err != nil {
			return nil, nil, err
		}
		if len(roots) > 0 {
			tables.Roots = roots
		}
	}
	if nbest > 0 {
		cfg.NBest = nbest
	}
	cfg.UseSeenRules = cfg.UseSeenRules || seenPath != ""
	cfg.UseCategoryDict = cfg.UseCategoryDict || dictPath != ""

	var g *grammar.Grammar
	switch lang {
	case "en":
		g, err = grammar.English(tables)
	case "ja":
		g, err = grammar.Japanese(tables)
	default:
		return nil, nil, fmt.Errorf("unknown language %q", lang)
	}
	if err != nil {
		return nil, nil, err
	}

	engineOpts := ccg.Options{Grammar: g, Config: cfg, Workers: workers}
	if dbPath != "" {
		st, err := sqlite.Open(ctx, dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("treebank: %w", err)
		}
		engineOpts.Store = st
	}

	engine, err := ccg.New(engineOpts)
	if err != nil {
		return nil, nil, err
	}
	return engine, func() { engine.Close() }, nil
}

// inputSentence is the JSON shape of one scored sentence.
type inputSentence struct {
	Tokens      []string          `json:"tokens"`
	TagScores   [][]float64       `json:"tag_scores"`
	DepScores   [][]float64       `json:"dep_scores"`
	Constraints []inputConstraint `json:"constraints,omitempty"`
}

type inputConstraint struct {
	Category string `json:"category,omitempty"`
	Start    int    `json:"start"`
	Length   int    `json:"length,omitempty"`
	Terminal bool   `json:"terminal,omitempty"`
}

func loadInputs(path string) ([]ccg.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []inputSentence
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	inputs := make([]ccg.Input, len(raw))
	for i, s := range raw {
		in := ccg.Input{
			Tokens:    s.Tokens,
			TagScores: s.TagScores,
			DepScores: s.DepScores,
		}
		for _, c := range s.Constraints {
			constraint := parse.Constraint{Start: c.Start, Length: c.Length, Terminal: c.Terminal}
			if c.Category != "" {
				constraint.Category, err = cat.Parse(c.Category)
				if err != nil {
					return nil, fmt.Errorf("sentence %d: %w", i, err)
				}
			}
			in.Constraints = append(in.Constraints, constraint)
		}
		inputs[i] = in
	}
	return inputs, nil
}

func printResults(w *os.File, format string, inputs []ccg.Input, results []ccg.SentenceResult) error {
	for i, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "# sentence %d failed: %v\n", i, res.Err)
			continue
		}
		if len(res.Parses) == 0 {
			fmt.Fprintf(w, "# sentence %d: no parse (%s)\n", i, res.Diag)
			continue
		}
		switch format {
		case "auto":
			for _, p := range res.Parses {
				fmt.Fprintf(w, "%.6f\t%s\n", p.Score, output.Auto(p.Tree))
			}
		case "sexpr":
			for _, p := range res.Parses {
				fmt.Fprintf(w, "# score %.6f\n%s\n", p.Score, output.SExpr(p.Tree))
			}
		case "html":
			if err := output.WriteHTML(w, inputs[i].Tokens, res.Parses); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format %q", format)
		}
	}
	return nil
}
