// Package archive provides the output writer that bundles tag images and the
// manifest into a single xz-compressed tarball.
package archive

import (
	"archive/tar"
	"bytes"
	"fmt"
	"image/png"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/polycue/internal/generator"
	"github.com/jmylchreest/polycue/internal/output"
	"github.com/jmylchreest/polycue/internal/output/manifest"
	"github.com/jmylchreest/polycue/internal/output/tags"
	"github.com/jmylchreest/polycue/internal/security"
)

// DefaultFilename is the archive name used when none is configured.
const DefaultFilename = "tags.tar.xz"

// Writer implements the output.Writer interface for a tar.xz bundle.
type Writer struct {
	filename string
	now      func() time.Time
}

// New creates a new archive writer.
func New() *Writer {
	return &Writer{
		filename: DefaultFilename,
		now:      time.Now,
	}
}

// Name returns the writer name.
func (w *Writer) Name() string {
	return "archive"
}

// Description returns the writer description.
func (w *Writer) Description() string {
	return "Bundle tag images and manifest.json into a tar.xz archive"
}

// RegisterFlags registers writer-specific flags with the cobra command.
func (w *Writer) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&w.filename, "archive.name", DefaultFilename, "Archive file name (must end in .tar.xz)")
}

// Validate checks if the writer configuration is valid.
func (w *Writer) Validate() error {
	if !strings.HasSuffix(w.filename, ".tar.xz") || strings.ContainsAny(w.filename, `/\`) {
		return fmt.Errorf("invalid archive name: %s (must be a file name ending in .tar.xz)", w.filename)
	}
	return nil
}

// Generate builds the archive.
func (w *Writer) Generate(result *generator.Result) (map[string][]byte, error) {
	if result == nil {
		return nil, output.ErrNilResult
	}

	files, err := tags.Encode(result, png.BestCompression)
	if err != nil {
		return nil, err
	}
	data, err := manifest.Marshal(manifest.Build(result, false))
	if err != nil {
		return nil, err
	}
	files[manifest.Filename] = data

	archive, err := Pack(files, w.now())
	if err != nil {
		return nil, err
	}
	return map[string][]byte{w.filename: archive}, nil
}

// Pack writes files into an xz-compressed tar, in name order.
func Pack(files map[string][]byte, modTime time.Time) ([]byte, error) {
	var buf bytes.Buffer

	xzw, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz writer: %w", err)
	}
	tw := tar.NewWriter(xzw)

	for _, name := range slices.Sorted(maps.Keys(files)) {
		content := files[name]
		header := &tar.Header{
			Name:    name,
			Mode:    0o644,
			Size:    int64(len(content)),
			ModTime: modTime.Truncate(time.Second),
			Format:  tar.FormatPAX,
		}
		if err := tw.WriteHeader(header); err != nil {
			return nil, fmt.Errorf("failed to write tar header for %s: %w", name, err)
		}
		if _, err := tw.Write(content); err != nil {
			return nil, fmt.Errorf("failed to write %s to archive: %w", name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close tar writer: %w", err)
	}
	if err := xzw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close xz writer: %w", err)
	}
	return buf.Bytes(), nil
}

// MaxUnpackedSize bounds the total bytes Unpack will decompress.
const MaxUnpackedSize = 512 * 1024 * 1024

// Unpack reads an archive written by Pack and returns its regular files.
func Unpack(data []byte) (map[string][]byte, error) {
	xzr, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	tr := tar.NewReader(security.NewLimitedReader(xzr, MaxUnpackedSize))

	files := make(map[string][]byte)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		if err := security.ValidateFilePath(header.Name, "."); err != nil {
			return nil, fmt.Errorf("invalid archive entry %s: %w", header.Name, err)
		}

		content, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s from archive: %w", header.Name, err)
		}
		files[header.Name] = content
	}
	return files, nil
}
