package tfidf

// SparseVector holds the non-zero weights of a Dim-length vector.
// Indices are ascending and index into the model vocabulary.
type SparseVector struct {
	Dim     int       `json:"dim"`
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
}

// Dense expands v into a slice of length Dim.
func (v SparseVector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for k, i := range v.Indices {
		out[i] = v.Values[k]
	}
	return out
}

// Get returns the weight at dimension i.
func (v SparseVector) Get(i int) float64 {
	for k, j := range v.Indices {
		if j == i {
			return v.Values[k]
		}
		if j > i {
			break
		}
	}
	return 0
}

// NonZero returns the number of stored weights.
func (v SparseVector) NonZero() int {
	return len(v.Indices)
}
