package tfidf

import (
	_ "embed"
	"strings"
)

//go:embed stopwords.txt
var stopWordList string

// stopWords is the English stop-word list excluded from every vocabulary.
var stopWords = func() map[string]bool {
	words := strings.Fields(stopWordList)
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()

// IsStopWord reports whether the lowercase term w is never part of a vocabulary.
func IsStopWord(w string) bool {
	return stopWords[w]
}
