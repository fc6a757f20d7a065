package colour

import "sort"

// ContrastOrder reorders a group so that bright and dark colours alternate
// around the polygon. Colours are ranked by Lab lightness, split into a bright
// and a dark half, and interleaved bright[0], dark[0], bright[1], dark[1], ...
//
// Groups with an odd number of colours, or fewer than two, are returned as a
// copy in their original order. The input slice is never modified.
func ContrastOrder(group []RGB) []RGB {
	n := len(group)
	out := make([]RGB, n)
	if n < 2 || n%2 != 0 {
		copy(out, group)
		return out
	}

	type ranked struct {
		c RGB
		l float64
	}
	rs := make([]ranked, n)
	for i, c := range group {
		rs[i] = ranked{c: c, l: ToLab(c).L}
	}
	// Brightest first.
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].l > rs[j].l
	})

	half := n / 2
	for i := range half {
		out[2*i] = rs[i].c
		out[2*i+1] = rs[half+i].c
	}
	return out
}
