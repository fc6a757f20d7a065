package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Lab is a CIE L*a*b* colour under the D65 white point.
// L is in [0, 100]; a and b are roughly in [-128, 127].
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// labScale converts go-colorful's unit-scaled Lab into conventional CIE units.
const labScale = 100.0

// ToLab converts an sRGB colour to Lab (sRGB -> linear -> XYZ -> Lab).
func ToLab(c RGB) Lab {
	cf := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	l, a, b := cf.Lab()
	return Lab{L: l * labScale, A: a * labScale, B: b * labScale}
}

// ToLabSlice converts every colour in the slice.
func ToLabSlice(colours []RGB) []Lab {
	labs := make([]Lab, len(colours))
	for i, c := range colours {
		labs[i] = ToLab(c)
	}
	return labs
}

// Tuple returns the components as a fixed array, the form used in manifests.
func (l Lab) Tuple() [3]float64 {
	return [3]float64{l.L, l.A, l.B}
}

// Distance is the CIE76 colour difference: Euclidean distance in Lab.
func Distance(a, b Lab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// DeltaE returns the CIE76 difference between two sRGB colours.
func DeltaE(a, b RGB) float64 {
	return Distance(ToLab(a), ToLab(b))
}

// MinPairwiseDistance returns the smallest distance between any two colours
// in the set, or +Inf when there are fewer than two.
func MinPairwiseDistance(colours []RGB) float64 {
	labs := ToLabSlice(colours)
	minD := math.Inf(1)
	for i := range labs {
		for j := i + 1; j < len(labs); j++ {
			if d := Distance(labs[i], labs[j]); d < minD {
				minD = d
			}
		}
	}
	return minD
}
