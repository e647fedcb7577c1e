package pipeline

import (
	"errors"
	"fmt"

	"briefdesk/internal/model"
)

// ErrInsufficientContent marks a corpus below the minimum threshold
var ErrInsufficientContent = errors.New("insufficient content")

// Validator gates synthesis on a minimum corpus length.
// This is the only branch point in the pipeline.
type Validator struct {
	minChars int
}

// NewValidator creates a validator with the given threshold
func NewValidator(minChars int) *Validator {
	return &Validator{minChars: minChars}
}

// Validate fails when the corpus character count is below the threshold;
// otherwise the corpus passes through unchanged
func (v *Validator) Validate(corpus model.NormalizedCorpus) error {
	if corpus.Len() < v.minChars {
		return fmt.Errorf("%w: %d chars, need at least %d", ErrInsufficientContent, corpus.Len(), v.minChars)
	}
	return nil
}
