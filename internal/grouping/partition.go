// Package grouping splits a set of colours into balanced, high-contrast groups.
//
// The problem is a balanced max-min partition, which is NP-hard in general.
// Partitioner builds a greedy initial solution and then improves it with a
// bounded number of random swaps that never lower the objective.
package grouping

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/polycue/internal/colour"
)

// DefaultIterations is the swap budget used when Options.Iterations is zero.
const DefaultIterations = 2000

// scoreEpsilon absorbs float noise when comparing objective values.
const scoreEpsilon = 1e-9

var (
	// ErrCountMismatch is returned when the colour count is not exactly
	// tagCount * groupSize.
	ErrCountMismatch = errors.New("colour count does not match tag count × group size")

	// ErrInvalidShape is returned for a tag count below 1 or a group size below 2.
	ErrInvalidShape = errors.New("invalid partition shape")

	// ErrNoRandomSource is returned when no random source is supplied.
	ErrNoRandomSource = errors.New("random source is required")
)

// Options configures a partition run.
type Options struct {
	// Iterations is the swap budget for refinement. Zero means DefaultIterations;
	// a negative value disables refinement.
	Iterations int

	// Rand drives swap selection. Required.
	Rand *rand.Rand

	// Logger receives debug output. Optional.
	Logger hclog.Logger
}

// Partitioner holds the state of one partition run over a working colour set.
type Partitioner struct {
	colours   []colour.RGB
	matrix    *colour.DistanceMatrix
	tagCount  int
	groupSize int
	groups    [][]int
	rng       *rand.Rand
	logger    hclog.Logger
}

// New validates the request and builds the distance matrix for colours.
func New(colours []colour.RGB, tagCount, groupSize int, opts Options) (*Partitioner, error) {
	if tagCount < 1 || groupSize < 2 {
		return nil, fmt.Errorf("%w: %d groups of %d", ErrInvalidShape, tagCount, groupSize)
	}
	if len(colours) != tagCount*groupSize {
		return nil, fmt.Errorf("%w: have %d colours, need %d×%d=%d",
			ErrCountMismatch, len(colours), tagCount, groupSize, tagCount*groupSize)
	}
	if opts.Rand == nil {
		return nil, ErrNoRandomSource
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	cs := make([]colour.RGB, len(colours))
	copy(cs, colours)

	return &Partitioner{
		colours:   cs,
		matrix:    colour.NewDistanceMatrix(colour.ToLabSlice(cs)),
		tagCount:  tagCount,
		groupSize: groupSize,
		rng:       opts.Rand,
		logger:    logger.Named("partition"),
	}, nil
}

// Construct builds the initial groups greedily. Each group is seeded with the
// farthest remaining pair and extended with the remaining colour whose minimum
// distance to the group is largest.
func (p *Partitioner) Construct() {
	n := len(p.colours)
	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	groups := make([][]int, 0, p.tagCount)
	for len(remaining) > 0 {
		a, b := remaining[0], remaining[1]
		bestD := -1.0
		for i := range remaining {
			for j := i + 1; j < len(remaining); j++ {
				if d := p.matrix.At(remaining[i], remaining[j]); d > bestD {
					a, b, bestD = remaining[i], remaining[j], d
				}
			}
		}

		group := make([]int, 0, p.groupSize)
		group = append(group, a, b)
		remaining = without(remaining, a, b)

		for len(group) < p.groupSize {
			pick := remaining[0]
			bestScore := -1.0
			for _, c := range remaining {
				m := math.Inf(1)
				for _, g := range group {
					if d := p.matrix.At(g, c); d < m {
						m = d
					}
				}
				if m > bestScore {
					bestScore = m
					pick = c
				}
			}
			group = append(group, pick)
			remaining = without(remaining, pick)
		}
		groups = append(groups, group)
	}

	p.groups = groups
	p.logger.Debug("constructed groups", "groups", len(groups), "score", p.Score())
}

// Refine runs up to iterations random swap trials between two distinct
// groups, keeping a swap when the two groups' summed minimum distance does not
// decrease. It returns the number of accepted swaps. Construct must have run.
func (p *Partitioner) Refine(iterations int) int {
	if p.tagCount < 2 || len(p.groups) == 0 {
		return 0
	}

	accepted := 0
	for range iterations {
		i := p.rng.IntN(p.tagCount)
		j := p.rng.IntN(p.tagCount)
		if i == j {
			j = (j + 1) % p.tagCount
		}
		ia := p.rng.IntN(p.groupSize)
		jb := p.rng.IntN(p.groupSize)

		gi, gj := p.groups[i], p.groups[j]
		before := p.matrix.GroupMin(gi) + p.matrix.GroupMin(gj)

		gi[ia], gj[jb] = gj[jb], gi[ia]
		after := p.matrix.GroupMin(gi) + p.matrix.GroupMin(gj)

		if after+scoreEpsilon >= before {
			accepted++
			continue
		}
		gi[ia], gj[jb] = gj[jb], gi[ia]
	}

	p.logger.Debug("refined groups", "iterations", iterations, "accepted", accepted, "score", p.Score())
	return accepted
}

// Score returns the sum of every group's minimum pairwise distance.
func (p *Partitioner) Score() float64 {
	total := 0.0
	for _, g := range p.groups {
		total += p.matrix.GroupMin(g)
	}
	return total
}

// Groups returns the current groups as colours.
func (p *Partitioner) Groups() [][]colour.RGB {
	out := make([][]colour.RGB, len(p.groups))
	for gi, g := range p.groups {
		cs := make([]colour.RGB, len(g))
		for k, idx := range g {
			cs[k] = p.colours[idx]
		}
		out[gi] = cs
	}
	return out
}

// Partition splits colours into tagCount groups of groupSize. It fails fast if
// the colour count does not match exactly.
func Partition(colours []colour.RGB, tagCount, groupSize int, opts Options) ([][]colour.RGB, error) {
	p, err := New(colours, tagCount, groupSize, opts)
	if err != nil {
		return nil, err
	}

	p.Construct()

	iterations := opts.Iterations
	if iterations == 0 {
		iterations = DefaultIterations
	}
	if iterations > 0 {
		p.Refine(iterations)
	}

	return p.Groups(), nil
}

// without returns s with the given values removed, preserving order.
func without(s []int, drop ...int) []int {
	out := s[:0]
	for _, v := range s {
		keep := true
		for _, d := range drop {
			if v == d {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, v)
		}
	}
	return out
}
