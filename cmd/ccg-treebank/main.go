// Command ccg-treebank inspects a SQLite treebank written by
// ccg-parse: list stored sentences, or dump the parses of one.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/poetaster-org/depccg/pkg/ccg/store/sqlite"
)

func main() {
	var (
		dbPath     = flag.String("db", "", "SQLite treebank path (required)")
		limit      = flag.Int("limit", 20, "Number of sentences to list")
		sentenceID = flag.String("sentence", "", "Dump parses for this sentence id")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()
	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	if *sentenceID != "" {
		sent, ok, err := st.GetSentence(ctx, *sentenceID)
		if err != nil {
			log.Fatal(err)
		}
		if !ok {
			log.Fatalf("sentence %s not found", *sentenceID)
		}
		fmt.Printf("%s  [%s]  %s\n", sent.ID, sent.Lang, strings.Join(sent.Tokens, " "))
		if sent.Diag != "" {
			fmt.Printf("  diag: %s\n", sent.Diag)
		}
		parses, err := st.ParsesFor(ctx, *sentenceID)
		if err != nil {
			log.Fatal(err)
		}
		for _, p := range parses {
			fmt.Printf("%d\t%.6f\t%s\n", p.Rank, p.Score, p.Auto)
		}
		return
	}

	sentences, err := st.ListSentences(ctx, *limit)
	if err != nil {
		log.Fatal(err)
	}
	for _, sent := range sentences {
		diag := sent.Diag
		if diag == "" {
			diag = "ok"
		}
		fmt.Printf("%s  [%s]  %-8s  %s\n", sent.ID, sent.Lang, diag, strings.Join(sent.Tokens, " "))
	}
}
