// Package tfidf fits a bounded-vocabulary TF-IDF weighting over a text corpus.
package tfidf

import (
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"
)

// minMaxDF keeps MaxDF above zero so that a vocabulary can exist at all.
const minMaxDF = 1e-6

// terms are runs of two or more letters, digits or underscores
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Params bounds the fitted vocabulary.
type Params struct {
	MaxFeatures int     // keep at most this many terms; 0 or less means no cap
	MaxDF       float64 // drop terms found in more than this fraction of documents
	MinDF       int     // drop terms found in fewer than this many documents
}

// clamp returns p with MaxDF in [minMaxDF, 1] and MinDF in [1, n].
func (p Params) clamp(n int) Params {
	p.MaxDF = min(max(p.MaxDF, minMaxDF), 1)
	p.MinDF = min(max(p.MinDF, 1), max(n, 1))
	if p.MaxFeatures < 0 {
		p.MaxFeatures = 0
	}
	return p
}

// Model is a fitted vocabulary with inverse document frequencies.
// It is immutable and safe for concurrent use.
type Model struct {
	params Params
	docs   int
	vocab  []string
	index  map[string]int
	idf    []float64
}

// Tokenize lowercases text and splits it into candidate terms, stop words included.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Fit builds a Model from docs. Stop words are always excluded. Params are clamped
// to the corpus before use; the clamped values are available from Model.Params.
func Fit(docs []string, p Params) (*Model, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}
	n := len(docs)
	p = p.clamp(n)

	df := map[string]int{}
	total := map[string]int{}
	for _, doc := range docs {
		seen := map[string]bool{}
		for _, term := range Tokenize(doc) {
			if stopWords[term] {
				continue
			}
			total[term]++
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}
	if len(df) == 0 {
		return nil, &ParamError{
			Param:  "corpus",
			Value:  float64(n),
			Reason: "documents contain only stop words",
			Err:    ErrEmptyVocabulary,
		}
	}

	maxCount := p.MaxDF * float64(n)
	if maxCount < float64(p.MinDF) {
		return nil, &ParamError{
			Param:  "max_df",
			Value:  p.MaxDF,
			Reason: "corresponds to fewer documents than min_df",
		}
	}

	var kept []string
	for term, c := range df {
		if c >= p.MinDF && float64(c) <= maxCount {
			kept = append(kept, term)
		}
	}
	if len(kept) == 0 {
		return nil, &ParamError{
			Param:  "min_df",
			Value:  float64(p.MinDF),
			Reason: "no terms remain after pruning; try a lower min_df or a higher max_df",
			Err:    ErrEmptyVocabulary,
		}
	}

	if p.MaxFeatures > 0 && len(kept) > p.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if total[kept[i]] != total[kept[j]] {
				return total[kept[i]] > total[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:p.MaxFeatures]
	}
	sort.Strings(kept)

	m := &Model{
		params: p,
		docs:   n,
		vocab:  kept,
		index:  make(map[string]int, len(kept)),
		idf:    make([]float64, len(kept)),
	}
	for i, term := range kept {
		m.index[term] = i
		m.idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	slog.Debug("tfidf model fitted",
		"documents", n,
		"candidates", len(df),
		"vocabulary", len(kept),
		"max_df", p.MaxDF,
		"min_df", p.MinDF,
	)
	return m, nil
}

// Params returns the clamped parameters the model was fitted with.
func (m *Model) Params() Params {
	return m.params
}

// Documents returns the size of the corpus the model was fitted on.
func (m *Model) Documents() int {
	return m.docs
}

// Vocabulary returns the terms in dimension order.
func (m *Model) Vocabulary() []string {
	return append([]string(nil), m.vocab...)
}

// Len returns the vocabulary size, which is also the dimension of every vector.
func (m *Model) Len() int {
	return len(m.vocab)
}

// IDF returns the inverse document frequency of term and whether it is in the vocabulary.
func (m *Model) IDF(term string) (float64, bool) {
	i, ok := m.index[term]
	if !ok {
		return 0, false
	}
	return m.idf[i], true
}

// Transform weights the vocabulary terms of text by term count times IDF and
// scales the result to unit length. Unknown terms are ignored.
func (m *Model) Transform(text string) SparseVector {
	counts := map[int]int{}
	for _, term := range Tokenize(text) {
		if i, ok := m.index[term]; ok {
			counts[i]++
		}
	}

	v := SparseVector{Dim: len(m.vocab)}
	if len(counts) == 0 {
		return v
	}
	v.Indices = make([]int, 0, len(counts))
	for i := range counts {
		v.Indices = append(v.Indices, i)
	}
	sort.Ints(v.Indices)

	v.Values = make([]float64, len(v.Indices))
	var norm float64
	for k, i := range v.Indices {
		w := float64(counts[i]) * m.idf[i]
		v.Values[k] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for k := range v.Values {
		v.Values[k] /= norm
	}
	return v
}

// TransformAll transforms every document, preserving order.
func (m *Model) TransformAll(docs []string) []SparseVector {
	out := make([]SparseVector, len(docs))
	for i, doc := range docs {
		out[i] = m.Transform(doc)
	}
	return out
}
