package colour

// Lightness bounds applied to the default candidate pool. Colours outside
// this band are too close to black or white to read as distinct wedges.
const (
	DefaultMinLightness = 20.0
	DefaultMaxLightness = 90.0
)

// gridLevels are the per-channel values of the candidate grid.
var gridLevels = [6]uint8{16, 64, 112, 160, 208, 255}

// BuildGrid returns the 216-colour candidate grid. Red varies slowest and blue
// fastest, so the ordering is stable across calls.
func BuildGrid() []RGB {
	grid := make([]RGB, 0, len(gridLevels)*len(gridLevels)*len(gridLevels))
	for _, r := range gridLevels {
		for _, g := range gridLevels {
			for _, b := range gridLevels {
				grid = append(grid, RGB{R: r, G: g, B: b})
			}
		}
	}
	return grid
}

// FilterByLightness keeps the colours whose Lab lightness lies in [lo, hi].
// Input order is preserved.
func FilterByLightness(colours []RGB, lo, hi float64) []RGB {
	kept := make([]RGB, 0, len(colours))
	for _, c := range colours {
		l := ToLab(c).L
		if l >= lo && l <= hi {
			kept = append(kept, c)
		}
	}
	return kept
}

// Pool is an immutable, ordered set of candidate colours with their Lab values
// precomputed. It is safe for concurrent readers.
type Pool struct {
	colours []RGB
	labs    []Lab
}

// NewPool creates a pool over a copy of the given colours.
func NewPool(colours []RGB) *Pool {
	cs := make([]RGB, len(colours))
	copy(cs, colours)
	return &Pool{
		colours: cs,
		labs:    ToLabSlice(cs),
	}
}

// DefaultPool returns the candidate grid filtered to the default lightness band.
func DefaultPool() *Pool {
	return NewPool(FilterByLightness(BuildGrid(), DefaultMinLightness, DefaultMaxLightness))
}

// Len returns the number of candidates in the pool.
func (p *Pool) Len() int {
	return len(p.colours)
}

// Colour returns the candidate at index i.
func (p *Pool) Colour(i int) RGB {
	return p.colours[i]
}

// Lab returns the precomputed Lab value of candidate i.
func (p *Pool) Lab(i int) Lab {
	return p.labs[i]
}

// Colours returns a copy of the candidates.
func (p *Pool) Colours() []RGB {
	out := make([]RGB, len(p.colours))
	copy(out, p.colours)
	return out
}
