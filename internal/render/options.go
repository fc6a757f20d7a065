// Package render rasterises colour groups into polygonal marker images.
package render

import (
	"errors"
	"fmt"
)

// Side limits for a marker polygon.
const (
	MinSides = 3
	MaxSides = 6
)

// Dot size limits, as a percentage of the shorter canvas side.
const (
	MinDotPct = 1.0
	MaxDotPct = 50.0
)

var (
	// ErrInvalidSides is returned when the side count is outside [MinSides, MaxSides].
	ErrInvalidSides = errors.New("invalid side count")

	// ErrInvalidCanvas is returned for a canvas with no area.
	ErrInvalidCanvas = errors.New("invalid canvas size")

	// ErrEmptyGroup is returned when asked to draw a group with no colours.
	ErrEmptyGroup = errors.New("group has no colours")
)

// Options controls marker geometry and overlays.
type Options struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Sides  int `json:"sides"`

	// CenterDot draws a solid black disk over the centre.
	CenterDot    bool    `json:"centerDot"`
	CenterDotPct float64 `json:"centerDotPct"`

	// GradientDot blends a soft white spot over the centre.
	GradientDot    bool    `json:"gradientDot"`
	GradientDotPct float64 `json:"gradientDotPct"`
}

// DefaultOptions returns the options used by the CLI when no flags are given.
func DefaultOptions() Options {
	return Options{
		Width:          1600,
		Height:         1600,
		Sides:          4,
		CenterDot:      true,
		CenterDotPct:   35,
		GradientDot:    true,
		GradientDotPct: 35,
	}
}

// Validate rejects configurations that cannot produce a correct marker.
// Dot sizes are not validated here; Draw clamps them to [1%, 50%].
func (o Options) Validate() error {
	if o.Sides < MinSides || o.Sides > MaxSides {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidSides, o.Sides, MinSides, MaxSides)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, o.Width, o.Height)
	}
	return nil
}
