package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/poetaster-org/depccg/pkg/ccg/cat"
)

// LoadCategories loads the supertag inventory: one category per line,
// blank lines and # comments skipped. Line order fixes the column
// order of the tag score matrix.
func LoadCategories(path string) ([]*cat.Category, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cats []*cat.Category
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, err := cat.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, lineNum, err)
		}
		cats = append(cats, c)
	}
	return cats, scanner.Err()
}

// LoadUnaryRules loads the type-changing table: "child parent" pairs,
// whitespace separated, one rule per line.
func LoadUnaryRules(path string) (map[*cat.Category][]*cat.Category, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rules := make(map[*cat.Category][]*cat.Category)
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s line %d: want \"child parent\", got %q", path, lineNum, line)
		}
		child, err := cat.Parse(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, lineNum, err)
		}
		parent, err := cat.Parse(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, lineNum, err)
		}
		rules[child] = append(rules[child], parent)
	}
	return rules, scanner.Err()
}

// LoadSeenRules loads the attested category-pair table: "left right"
// per line. The set is built in a single pass.
func LoadSeenRules(path string) ([][2]*cat.Category, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pairs [][2]*cat.Category
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s line %d: want \"left right\", got %q", path, lineNum, line)
		}
		left, err := cat.Parse(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, lineNum, err)
		}
		right, err := cat.Parse(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, lineNum, err)
		}
		pairs = append(pairs, [2]*cat.Category{left, right})
	}
	return pairs, scanner.Err()
}

// LoadCatDict loads the lexical category dictionary.
// Format: word|cat1|cat2|...
func LoadCatDict(path string) (map[string][]*cat.Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dict := make(map[string][]*cat.Category)
	for lineNum, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 2 {
			continue
		}
		word := strings.TrimSpace(parts[0])
		for _, s := range parts[1:] {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			c, err := cat.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", path, lineNum+1, err)
			}
			dict[word] = append(dict[word], c)
		}
	}
	return dict, nil
}
