package domain

import (
	"fmt"
	"math"
)

// Normalize scales a vector to unit L2 length in place and returns it.
// Unit-length vectors let cosine similarity reduce to a dot product, which
// is the invariant the retrieval comparison relies on. A zero vector is
// returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

// L2Norm returns the Euclidean length of a vector.
func L2Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of two equal-length vectors. For
// unit-normalized vectors this equals their cosine similarity.
func Dot(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimensions do not match: %d vs %d", len(a), len(b))
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum, nil
}
