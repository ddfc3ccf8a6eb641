package textnorm

import (
	"fmt"
	"strings"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
)

// StemMode selects the unit the Porter stemmer is applied to.
type StemMode string

const (
	// StemTokens stems every whitespace-separated word.
	StemTokens StemMode = "token"
	// StemWhole treats the whole message as one word, so only its final suffix
	// changes. Kept to reproduce outputs of earlier corpus runs.
	StemWhole StemMode = "whole"
)

// ParseStemMode accepts "token", "whole" or "" (token).
func ParseStemMode(s string) (StemMode, error) {
	switch StemMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", StemTokens:
		return StemTokens, nil
	case StemWhole:
		return StemWhole, nil
	}
	return "", fmt.Errorf("unknown stem mode %q", s)
}

// Stem lowercases and stems every message.
func Stem(msgs []string, mode StemMode) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = StemText(m, mode)
	}
	return out
}

// StemText stems a single message.
func StemText(s string, mode StemMode) string {
	if mode == StemWhole {
		return porterstemmer.StemString(s)
	}
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = porterstemmer.StemString(w)
	}
	return strings.Join(words, " ")
}
