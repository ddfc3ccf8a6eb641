package tfidf

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCorpus is returned when Fit is given no documents.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrEmptyVocabulary is returned when no term survives stop-word removal and pruning.
	ErrEmptyVocabulary = errors.New("empty vocabulary")
)

// ParamError names the fitting parameter that made the vocabulary degenerate.
type ParamError struct {
	Param  string
	Value  float64
	Reason string
	Err    error
}

func (e *ParamError) Error() string {
	msg := fmt.Sprintf("%s=%g: %s", e.Param, e.Value, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParamError) Unwrap() error {
	return e.Err
}
