package internalerr

import "errors"

// Sentinel errors for per-sentence diagnostics and setup failures
var (
	ErrShapeMismatch        = errors.New("score matrix shape mismatch")
	ErrGrammarInconsistency = errors.New("grammar inconsistency")
	ErrLengthExceeded       = errors.New("sentence length exceeded")
	ErrStepLimit            = errors.New("step limit exceeded")
	ErrSearchExhausted      = errors.New("search exhausted")
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrNotFound             = errors.New("not found")
)
