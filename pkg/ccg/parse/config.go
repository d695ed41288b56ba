package parse

import (
	"fmt"

	"github.com/poetaster-org/depccg/pkg/ccg/internalerr"
)

// Config holds the per-run search settings. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// Beta is the threshold ratio for per-token supertag pruning:
	// categories scoring below log(Beta) + the token's maximum are
	// dropped when UseBeta is set.
	Beta    float64
	UseBeta bool

	// PruningSize caps both the per-token candidate list and the
	// number of derivations a chart cell retains.
	PruningSize int

	// NBest is the number of parses returned per sentence.
	NBest int

	// UseCategoryDict restricts known surface forms to their
	// dictionary categories.
	UseCategoryDict bool

	// UseSeenRules rejects category pairs absent from the attested
	// rule table.
	UseSeenRules bool

	// MaxLength skips sentences longer than this many tokens.
	MaxLength int

	// MaxSteps caps agenda pops per sentence.
	MaxSteps int
}

// DefaultConfig returns the standard search settings.
func DefaultConfig() Config {
	return Config{
		Beta:        1e-5,
		UseBeta:     true,
		PruningSize: 50,
		NBest:       1,
		MaxLength:   250,
		MaxSteps:    100_000,
	}
}

// Validate rejects settings the search cannot run with.
func (c Config) Validate() error {
	if c.PruningSize <= 0 {
		return fmt.Errorf("pruning size %d: %w", c.PruningSize, internalerr.ErrInvalidConfig)
	}
	if c.NBest <= 0 {
		return fmt.Errorf("nbest %d: %w", c.NBest, internalerr.ErrInvalidConfig)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max steps %d: %w", c.MaxSteps, internalerr.ErrInvalidConfig)
	}
	if c.UseBeta && (c.Beta <= 0 || c.Beta >= 1) {
		return fmt.Errorf("beta %g: %w", c.Beta, internalerr.ErrInvalidConfig)
	}
	return nil
}
