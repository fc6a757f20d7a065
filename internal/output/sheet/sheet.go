// Package sheet provides the output writer for the combined contact sheet.
package sheet

import (
	"fmt"
	"image/png"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/polycue/internal/generator"
	"github.com/jmylchreest/polycue/internal/output"
	"github.com/jmylchreest/polycue/internal/render"
)

// Filename is the name of the combined image.
const Filename = "all_tags_combined.png"

// Writer implements the output.Writer interface for a grid of all tags.
type Writer struct {
	columns  int
	tileSize int
}

// New creates a new contact sheet writer.
func New() *Writer {
	return &Writer{}
}

// Name returns the writer name.
func (w *Writer) Name() string {
	return "sheet"
}

// Description returns the writer description.
func (w *Writer) Description() string {
	return "Combine all tags into a single grid image"
}

// RegisterFlags registers writer-specific flags with the cobra command.
func (w *Writer) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&w.columns, "columns", 0, "Sheet columns (0 for a square grid)")
	cmd.Flags().IntVar(&w.tileSize, "tile-size", 0, "Scale each tag to this size on the sheet (0 keeps full size)")
}

// Validate checks if the writer configuration is valid.
func (w *Writer) Validate() error {
	if w.columns < 0 {
		return fmt.Errorf("columns must be >= 0, got %d", w.columns)
	}
	if w.tileSize < 0 {
		return fmt.Errorf("tile size must be >= 0, got %d", w.tileSize)
	}
	return nil
}

// Generate renders the sheet.
func (w *Writer) Generate(result *generator.Result) (map[string][]byte, error) {
	if result == nil {
		return nil, output.ErrNilResult
	}

	img, err := render.Sheet(result.Images, w.columns, w.tileSize)
	if err != nil {
		return nil, err
	}

	data, err := output.EncodePNG(img, png.DefaultCompression)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{Filename: data}, nil
}
