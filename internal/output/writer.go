// Package output provides the interface and registry for output writers, which
// turn a generation result into files.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/polycue/internal/generator"
	"github.com/jmylchreest/polycue/internal/security"
)

// ErrNilResult is returned by writers asked to generate from a nil result.
var ErrNilResult = errors.New("result cannot be nil")

// Writer turns a generation result into one or more files.
type Writer interface {
	// Name returns the writer's name (e.g., "png", "manifest").
	Name() string

	// Description returns a human-readable description of the writer.
	Description() string

	// Generate creates output file(s) from the given result.
	// Returns map of filename -> content to support writers that produce multiple files.
	Generate(result *generator.Result) (map[string][]byte, error)

	// RegisterFlags registers writer-specific flags with cobra command.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks if the writer configuration is valid.
	Validate() error
}

// Registry holds all registered writers.
type Registry struct {
	writers map[string]Writer
}

// NewRegistry creates a new writer registry.
func NewRegistry() *Registry {
	return &Registry{
		writers: make(map[string]Writer),
	}
}

// Register adds a writer to the registry.
func (r *Registry) Register(w Writer) {
	r.writers[w.Name()] = w
}

// Get retrieves a writer by name.
func (r *Registry) Get(name string) (Writer, bool) {
	w, ok := r.writers[name]
	return w, ok
}

// List returns all registered writer names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.writers))
	for name := range r.writers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns all registered writers.
func (r *Registry) All() map[string]Writer {
	// Return a copy to prevent external modification
	writers := make(map[string]Writer, len(r.writers))
	for name, w := range r.writers {
		writers[name] = w
	}
	return writers
}

// TimestampFormat names run directories, e.g. 2025-01-31_14-05-09.
const TimestampFormat = "2006-01-02_15-04-05"

// OutputDir returns the run directory for a generation started at now.
func OutputDir(base string, now time.Time) string {
	return filepath.Join(base, now.Format(TimestampFormat))
}

// WriteFiles writes files into dir, creating it if needed, and returns the
// written paths sorted by name.
func WriteFiles(dir string, files map[string][]byte) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 -- output directory is user-visible
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		if err := security.ValidateFilePath(name, dir); err != nil {
			return paths, fmt.Errorf("invalid output filename %s: %w", name, err)
		}
		if filepath.Base(name) != name {
			return paths, fmt.Errorf("invalid output filename %s: must not contain a directory", name)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, files[name], 0o644); err != nil { // #nosec G306 -- generated images are not secret
			return paths, fmt.Errorf("failed to write %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
