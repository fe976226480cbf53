package textfeat

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Vector is a sparse feature vector of fixed dimension. Indices are strictly
// increasing and every Values entry is non-zero.
type Vector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// At returns the value at column i, zero when the column is absent.
func (v Vector) At(i int) float64 {
	j := sort.SearchInts(v.Indices, i)
	if j < len(v.Indices) && v.Indices[j] == i {
		return v.Values[j]
	}
	return 0
}

// Dense expands the vector into a slice of length Dim.
func (v Vector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for k, i := range v.Indices {
		out[i] = v.Values[k]
	}
	return out
}

// NNZ returns the number of stored entries.
func (v Vector) NNZ() int {
	return len(v.Indices)
}

// Norm returns the Euclidean norm.
func (v Vector) Norm() float64 {
	if len(v.Values) == 0 {
		return 0
	}
	return floats.Norm(v.Values, 2)
}
