package render

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/jmylchreest/polycue/internal/colour"
)

// Geometry constants.
const (
	marginFraction = 0.08
	alphaCutoff    = 0.001
	sigmaFactor    = 0.7
	minSigma       = 0.5
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

// point is an integer pixel position.
type point struct {
	x, y int
}

// Draw rasterises a marker: a regular polygon centred on a white canvas whose
// wedge i (centre, vertex i, vertex i+1) is filled with group[i mod len(group)].
// Vertex 0 points straight up and the rest follow clockwise on screen.
// Optional center and gradient dots are drawn on top, in that order.
//
// The output is a pure function of its inputs.
func Draw(group []colour.RGB, opts Options) (*image.RGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(group) == 0 {
		return nil, ErrEmptyGroup
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	fill(img, white)

	w := float64(opts.Width)
	h := float64(opts.Height)
	short := math.Min(w, h)
	margin := marginFraction * short
	radius := math.Max(math.Min((w-2*margin)*0.5, (h-2*margin)*0.5), 1)
	cx := w * 0.5
	cy := h * 0.5

	step := 2 * math.Pi / float64(opts.Sides)
	start := -math.Pi / 2

	verts := make([]point, opts.Sides)
	for i := range verts {
		a := start + step*float64(i)
		verts[i] = point{
			x: int(math.Round(cx + radius*math.Cos(a))),
			y: int(math.Round(cy + radius*math.Sin(a))),
		}
	}
	centroid := point{x: int(math.Round(cx)), y: int(math.Round(cy))}

	for i := range opts.Sides {
		c := group[i%len(group)].RGBA()
		fillTriangle(img, centroid, verts[i], verts[(i+1)%opts.Sides], c)
	}

	if opts.CenterDot {
		drawDisk(img, cx, cy, dotRadius(opts.CenterDotPct, short), black)
	}
	if opts.GradientDot {
		drawGradientDot(img, cx, cy, dotRadius(opts.GradientDotPct, short))
	}

	return img, nil
}

// dotRadius converts a size percentage into a radius in pixels.
func dotRadius(pct, short float64) float64 {
	frac := min(max(pct/100, 0.01), 0.5)
	return math.Max(short*frac*0.5, 1)
}

func fill(img *image.RGBA, c color.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}

// fillTriangle fills a triangle with flat scanlines. Vertices are sorted by y,
// each row spans the rounded x of the long edge and the active short edge, and
// the inclusive span is clipped to the canvas.
func fillTriangle(img *image.RGBA, a, b, c point, col color.RGBA) {
	pts := []point{a, b, c}
	slices.SortStableFunc(pts, func(p, q point) int { return p.y - q.y })
	p0, p1, p2 := pts[0], pts[1], pts[2]

	height := img.Bounds().Dy()
	for y := p0.y; y <= p1.y; y++ {
		if y < 0 || y >= height {
			continue
		}
		span(img, y, edgeX(p0, p2, y), edgeX(p0, p1, y), col)
	}
	for y := p1.y + 1; y <= p2.y; y++ {
		if y < 0 || y >= height {
			continue
		}
		span(img, y, edgeX(p0, p2, y), edgeX(p1, p2, y), col)
	}
}

// edgeX returns the rounded x where the edge p->q crosses row y.
func edgeX(p, q point, y int) int {
	if q.y == p.y {
		return p.x
	}
	t := float64(y-p.y) / float64(q.y-p.y)
	return int(math.Round(float64(p.x) + float64(q.x-p.x)*t))
}

func span(img *image.RGBA, y, x0, x1 int, col color.RGBA) {
	xa := max(min(x0, x1), 0)
	xb := min(max(x0, x1), img.Bounds().Dx()-1)
	for x := xa; x <= xb; x++ {
		img.SetRGBA(x, y, col)
	}
}

// bounds returns the clipped pixel box around a circle.
func bounds(img *image.RGBA, cx, cy, r float64) (x0, y0, x1, y1 int) {
	b := img.Bounds()
	x0 = max(int(math.Floor(cx-r)), 0)
	y0 = max(int(math.Floor(cy-r)), 0)
	x1 = min(int(math.Ceil(cx+r)), b.Dx()-1)
	y1 = min(int(math.Ceil(cy+r)), b.Dy()-1)
	return x0, y0, x1, y1
}

func drawDisk(img *image.RGBA, cx, cy, r float64, col color.RGBA) {
	r2 := r * r
	x0, y0, x1, y1 := bounds(img, cx, cy, r)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= r2 {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawGradientDot blends pixels toward white with a Gaussian falloff from the
// centre, limited to radius r.
func drawGradientDot(img *image.RGBA, cx, cy, r float64) {
	r2 := r * r
	sigma := math.Max(r*sigmaFactor, minSigma)
	twoSigma2 := 2 * sigma * sigma

	x0, y0, x1, y1 := bounds(img, cx, cy, r)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			alpha := math.Exp(-d2 / twoSigma2)
			if alpha <= alphaCutoff {
				continue
			}
			p := img.RGBAAt(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: blendToWhite(p.R, alpha),
				G: blendToWhite(p.G, alpha),
				B: blendToWhite(p.B, alpha),
				A: 255,
			})
		}
	}
}

func blendToWhite(v uint8, alpha float64) uint8 {
	out := math.Round(255*alpha + float64(v)*(1-alpha))
	return uint8(min(max(out, 0), 255))
}
