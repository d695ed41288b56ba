package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poetaster-org/depccg/pkg/ccg/cat"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOptions(t *testing.T) {
	path := writeFile(t, "opts.yaml", `
beta: 0.001
pruning_size: 20
nbest: 5
use_seen_rules: true
possible_root_cats:
  - S[dcl]
  - NP
max_steps: 500
`)
	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg := opts.ParseConfig()
	if cfg.Beta != 0.001 || cfg.PruningSize != 20 || cfg.NBest != 5 || cfg.MaxSteps != 500 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.UseBeta {
		t.Error("use_beta should keep its default when unset")
	}
	if !cfg.UseSeenRules {
		t.Error("use_seen_rules not applied")
	}
	if cfg.MaxLength != 250 {
		t.Errorf("max_length default = %d", cfg.MaxLength)
	}

	roots, err := opts.RootCats()
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 2 || roots[0] != cat.MustParse("S[dcl]") {
		t.Errorf("roots = %v", roots)
	}
}

func TestLoadCategories(t *testing.T) {
	path := writeFile(t, "cats.txt", `
# inventory
NP
S[dcl]\NP
(S[dcl]\NP)/NP
`)
	cats, err := LoadCategories(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 3 {
		t.Fatalf("got %d categories", len(cats))
	}
	if cats[1] != cat.MustParse("S[dcl]\\NP") {
		t.Errorf("cats[1] = %v", cats[1])
	}

	bad := writeFile(t, "bad.txt", "NP\n(S[dcl\n")
	if _, err := LoadCategories(bad); err == nil {
		t.Error("malformed category should fail with its line number")
	}
}

func TestLoadUnaryRules(t *testing.T) {
	path := writeFile(t, "unary.txt", `
N NP
NP S[X]/(S[X]\NP)
`)
	rules, err := LoadUnaryRules(path)
	if err != nil {
		t.Fatal(err)
	}
	n := cat.MustParse("N")
	if len(rules[n]) != 1 || rules[n][0] != cat.MustParse("NP") {
		t.Errorf("rules[N] = %v", rules[n])
	}

	bad := writeFile(t, "bad.txt", "N NP extra\n")
	if _, err := LoadUnaryRules(bad); err == nil {
		t.Error("three-field line should fail")
	}
}

func TestLoadSeenRules(t *testing.T) {
	path := writeFile(t, "seen.txt", `
NP S[dcl]\NP
NP[nb] NP\NP
`)
	pairs, err := LoadSeenRules(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs", len(pairs))
	}
	if pairs[0][1] != cat.MustParse("S[dcl]\\NP") {
		t.Errorf("pairs[0] = %v", pairs[0])
	}
}

func TestLoadCatDict(t *testing.T) {
	path := writeFile(t, "dict.txt", `
# word|categories
the|NP[nb]/N
runs|S[dcl]\NP|(S[dcl]\NP)/NP
`)
	dict, err := LoadCatDict(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(dict["runs"]) != 2 {
		t.Errorf("dict[runs] = %v", dict["runs"])
	}
	if dict["the"][0] != cat.MustParse("NP[nb]/N") {
		t.Errorf("dict[the] = %v", dict["the"])
	}
}
