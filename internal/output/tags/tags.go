// Package tags provides the output writer for individual tag images.
package tags

import (
	"fmt"
	"image/png"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/polycue/internal/generator"
	"github.com/jmylchreest/polycue/internal/output"
)

// Filename returns the file name of the tag at index i.
func Filename(i int) string {
	return fmt.Sprintf("tag_%02d.png", i+1)
}

// Writer implements the output.Writer interface for one PNG per tag.
type Writer struct {
	compression string
}

// New creates a new tag image writer.
func New() *Writer {
	return &Writer{compression: "default"}
}

// Name returns the writer name.
func (w *Writer) Name() string {
	return "png"
}

// Description returns the writer description.
func (w *Writer) Description() string {
	return "Write each tag as tag_NN.png"
}

// RegisterFlags registers writer-specific flags with the cobra command.
func (w *Writer) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&w.compression, "png.compression", "default", "PNG compression (default, none, speed, best)")
}

// Validate checks if the writer configuration is valid.
func (w *Writer) Validate() error {
	_, err := output.ParseCompression(w.compression)
	return err
}

// Generate encodes every tag image.
func (w *Writer) Generate(result *generator.Result) (map[string][]byte, error) {
	if result == nil {
		return nil, output.ErrNilResult
	}
	level, err := output.ParseCompression(w.compression)
	if err != nil {
		return nil, err
	}
	return Encode(result, level)
}

// Encode returns the PNG files for every tag image in result.
func Encode(result *generator.Result, level png.CompressionLevel) (map[string][]byte, error) {
	files := make(map[string][]byte, len(result.Images))
	for i, img := range result.Images {
		data, err := output.EncodePNG(img, level)
		if err != nil {
			return nil, fmt.Errorf("tag %d: %w", i+1, err)
		}
		files[Filename(i)] = data
	}
	return files, nil
}
