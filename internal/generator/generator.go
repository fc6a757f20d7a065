// Package generator runs the full marker pipeline: distinct colour selection,
// grouping, contrast ordering and rasterisation.
//
// Generate is stateless. All randomness comes from the caller's *rand.Rand, so
// a seeded source reproduces a run exactly.
package generator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/polycue/internal/colour"
	"github.com/jmylchreest/polycue/internal/grouping"
	"github.com/jmylchreest/polycue/internal/render"
)

// Tag count limits accepted by Request.Validate.
const (
	MinTagCount = 1
	MaxTagCount = 100
)

var (
	// ErrInvalidTagCount is returned for a tag count outside [MinTagCount, MaxTagCount].
	ErrInvalidTagCount = errors.New("invalid tag count")

	// ErrPoolExhausted is returned when the pool cannot supply even one tag.
	ErrPoolExhausted = errors.New("candidate pool cannot supply a single tag")
)

// Request describes one generation run.
type Request struct {
	TagCount int `json:"tagCount"`
	Sides    int `json:"sides"`

	// Render carries canvas size and dot overlays. Its Sides field is
	// overridden by Request.Sides.
	Render render.Options `json:"render"`

	// ContrastOrder interleaves bright and dark colours around each tag.
	// Only applied when Sides is even.
	ContrastOrder bool `json:"contrastOrder"`

	// Iterations is the refinement swap budget. Zero uses the default.
	Iterations int `json:"iterations"`

	// Workers bounds parallel rasterisation. Zero uses GOMAXPROCS.
	Workers int `json:"workers"`

	// Seed is recorded in the result. It does not drive the run; the caller's
	// random source does.
	Seed uint64 `json:"seed"`
}

// String describes the parameters that shape the output. It is used to
// derive a request-based seed, so it excludes Seed and Workers.
func (r Request) String() string {
	o := r.renderOptions()
	return fmt.Sprintf("count=%d sides=%d size=%dx%d center=%t/%g gradient=%t/%g reorder=%t iterations=%d",
		r.TagCount, r.Sides, o.Width, o.Height,
		o.CenterDot, o.CenterDotPct, o.GradientDot, o.GradientDotPct,
		r.ContrastOrder, r.Iterations)
}

// Validate checks the request before any work is done.
func (r Request) Validate() error {
	if r.TagCount < MinTagCount || r.TagCount > MaxTagCount {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidTagCount, r.TagCount, MinTagCount, MaxTagCount)
	}
	return r.renderOptions().Validate()
}

func (r Request) renderOptions() render.Options {
	o := r.Render
	o.Sides = r.Sides
	return o
}

// Tag is one generated marker's colours.
type Tag struct {
	Colours []colour.RGB `json:"colours"`
	// MinDeltaE is the smallest pairwise distance within the tag.
	MinDeltaE float64 `json:"minDeltaE"`
}

// Result is the output of a generation run.
type Result struct {
	// Threshold is the minimum pairwise distance across every selected colour.
	Threshold float64
	// Requested is the tag count asked for; TagCount may be lower when the
	// pool could not supply enough distinct colours.
	Requested int
	TagCount  int
	Sides     int
	Tags      []Tag
	Images    []*image.RGBA
	Seed      uint64
}

// Downscaled reports whether fewer tags were produced than requested.
func (r *Result) Downscaled() bool {
	return r.TagCount < r.Requested
}

// Groups returns the colour groups in tag order.
func (r *Result) Groups() [][]colour.RGB {
	groups := make([][]colour.RGB, len(r.Tags))
	for i, t := range r.Tags {
		groups[i] = t.Colours
	}
	return groups
}

// Generate runs the pipeline for req. Cancellation is checked between stages
// only; a stage that has started runs to completion.
func Generate(ctx context.Context, pool *colour.Pool, req Request, rng *rand.Rand, logger hclog.Logger) (*Result, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("generator")

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, grouping.ErrNoRandomSource
	}
	if pool == nil {
		pool = colour.DefaultPool()
	}
	opts := req.renderOptions()

	// Selection.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	total := req.TagCount * req.Sides
	sel := colour.SelectDistinct(pool, total, rng)
	logger.Debug("selected colours", "requested", total, "selected", len(sel.Colours),
		"threshold", sel.Threshold, "elapsed", time.Since(start))

	tagCount := req.TagCount
	if len(sel.Colours) < total {
		tagCount = len(sel.Colours) / req.Sides
		if tagCount < 1 {
			return nil, fmt.Errorf("%w: %d colours available, %d sides", ErrPoolExhausted, len(sel.Colours), req.Sides)
		}
		logger.Warn("pool exhausted, reducing tag count", "requested", req.TagCount, "tags", tagCount)
	}
	colours := sel.Colours[:tagCount*req.Sides]

	// Partition construction.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	p, err := grouping.New(colours, tagCount, req.Sides, grouping.Options{Rand: rng, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to partition colours: %w", err)
	}
	p.Construct()
	logger.Debug("constructed groups", "tags", tagCount, "score", p.Score(), "elapsed", time.Since(start))

	// Partition refinement.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	iterations := req.Iterations
	if iterations == 0 {
		iterations = grouping.DefaultIterations
	}
	if iterations > 0 && tagCount > 1 {
		start = time.Now()
		accepted := p.Refine(iterations)
		logger.Debug("refined groups", "iterations", iterations, "accepted", accepted,
			"score", p.Score(), "elapsed", time.Since(start))
	}

	groups := p.Groups()
	if req.ContrastOrder {
		for i, g := range groups {
			groups[i] = colour.ContrastOrder(g)
		}
	}

	// Rasterisation.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	images, err := render.DrawAll(ctx, groups, opts, req.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to render tags: %w", err)
	}
	logger.Debug("rendered tags", "count", len(images), "size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"elapsed", time.Since(start))

	tags := make([]Tag, len(groups))
	for i, g := range groups {
		tags[i] = Tag{Colours: g, MinDeltaE: colour.MinPairwiseDistance(g)}
	}

	return &Result{
		Threshold: sel.Threshold,
		Requested: req.TagCount,
		TagCount:  tagCount,
		Sides:     req.Sides,
		Tags:      tags,
		Images:    images,
		Seed:      req.Seed,
	}, nil
}
