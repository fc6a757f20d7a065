// Package manifest provides the output writer for the JSON tag manifest.
package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/polycue/internal/colour"
	"github.com/jmylchreest/polycue/internal/generator"
	"github.com/jmylchreest/polycue/internal/output"
	"github.com/jmylchreest/polycue/internal/output/tags"
)

// Filename is the name of the manifest file.
const Filename = "manifest.json"

// Entry describes one tag.
type Entry struct {
	Filename          string       `json:"filename"`
	Sides             int          `json:"sides"`
	ColorsRGB         [][3]uint8   `json:"colors_rgb"`
	ColorsHex         []string     `json:"colors_hex"`
	ColorsLab         [][3]float64 `json:"colors_lab"`
	MinPairwiseDeltaE float64      `json:"min_pairwise_delta_e"`
}

// Manifest describes a generation run.
type Manifest struct {
	Threshold float64 `json:"threshold"`
	Seed      uint64  `json:"seed"`
	Sides     int     `json:"sides"`
	Tags      []Entry `json:"tags"`
}

// Build assembles the manifest for result. When combined is set, entries name
// each tag's position on the contact sheet instead of its own file.
func Build(result *generator.Result, combined bool) Manifest {
	m := Manifest{
		Threshold: result.Threshold,
		Seed:      result.Seed,
		Sides:     result.Sides,
		Tags:      make([]Entry, len(result.Tags)),
	}

	for i, tag := range result.Tags {
		name := tags.Filename(i)
		if combined {
			name = fmt.Sprintf("tag_%02d_in_combined.png", i+1)
		}

		e := Entry{
			Filename:          name,
			Sides:             result.Sides,
			ColorsRGB:         make([][3]uint8, len(tag.Colours)),
			ColorsHex:         colour.ToHex(tag.Colours),
			ColorsLab:         make([][3]float64, len(tag.Colours)),
			MinPairwiseDeltaE: tag.MinDeltaE,
		}
		for j, c := range tag.Colours {
			e.ColorsRGB[j] = c.Tuple()
			e.ColorsLab[j] = colour.ToLab(c).Tuple()
		}
		m.Tags[i] = e
	}
	return m
}

// Writer implements the output.Writer interface for manifest.json.
type Writer struct {
	combined bool
}

// New creates a new manifest writer.
func New() *Writer {
	return &Writer{}
}

// Name returns the writer name.
func (w *Writer) Name() string {
	return "manifest"
}

// Description returns the writer description.
func (w *Writer) Description() string {
	return "Write manifest.json with each tag's colours and separation"
}

// RegisterFlags registers writer-specific flags with the cobra command.
func (w *Writer) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&w.combined, "manifest.combined", false, "Name tags by their position on the contact sheet (pair with the sheet output)")
}

// Combined reports whether entries name positions on the contact sheet.
func (w *Writer) Combined() bool {
	return w.combined
}

// Validate checks if the writer configuration is valid.
func (w *Writer) Validate() error {
	return nil
}

// Generate encodes the manifest.
func (w *Writer) Generate(result *generator.Result) (map[string][]byte, error) {
	if result == nil {
		return nil, output.ErrNilResult
	}
	data, err := Marshal(Build(result, w.combined))
	if err != nil {
		return nil, err
	}
	return map[string][]byte{Filename: data}, nil
}

// Marshal encodes m as indented JSON.
func Marshal(m Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return data, nil
}
