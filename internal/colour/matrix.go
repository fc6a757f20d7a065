package colour

import "math"

// DistanceMatrix holds all pairwise distances of a working colour set.
// Entries are stored row-major; the matrix is symmetric with a zero diagonal.
type DistanceMatrix struct {
	n int
	d []float64
}

// NewDistanceMatrix computes the n×n distance matrix for labs.
func NewDistanceMatrix(labs []Lab) *DistanceMatrix {
	n := len(labs)
	d := make([]float64, n*n)
	for i := range n {
		for j := i + 1; j < n; j++ {
			dist := Distance(labs[i], labs[j])
			d[i*n+j] = dist
			d[j*n+i] = dist
		}
	}
	return &DistanceMatrix{n: n, d: d}
}

// Len returns the size of the working set.
func (m *DistanceMatrix) Len() int {
	return m.n
}

// At returns the distance between members i and j.
func (m *DistanceMatrix) At(i, j int) float64 {
	return m.d[i*m.n+j]
}

// GroupMin returns the minimum pairwise distance among the given members,
// or +Inf when fewer than two are given.
func (m *DistanceMatrix) GroupMin(members []int) float64 {
	minD := math.Inf(1)
	for i := range members {
		for j := i + 1; j < len(members); j++ {
			if d := m.d[members[i]*m.n+members[j]]; d < minD {
				minD = d
			}
		}
	}
	return minD
}
