// Package testing provides shared test utilities for output writers.
package testing

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/polycue/internal/generator"
	"github.com/jmylchreest/polycue/internal/output"
	"github.com/jmylchreest/polycue/internal/render"
)

// CreateTestResult runs a small seeded generation: tags tags of sides sides
// on a 48x48 canvas.
func CreateTestResult(t *testing.T, tags, sides int) *generator.Result {
	t.Helper()

	req := generator.Request{
		TagCount: tags,
		Sides:    sides,
		Render: render.Options{
			Width:        48,
			Height:       48,
			CenterDot:    true,
			CenterDotPct: 20,
		},
		ContrastOrder: true,
		Iterations:    100,
		Seed:          42,
	}
	rng := rand.New(rand.NewPCG(42, 1))

	result, err := generator.Generate(context.Background(), nil, req, rng, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return result
}

// TestBasicInterface tests the basic writer interface methods that all writers must implement.
func TestBasicInterface(t *testing.T, w output.Writer, expectedName string) {
	t.Run("Name", func(t *testing.T) {
		if w.Name() != expectedName {
			t.Errorf("Name() = %s, want %s", w.Name(), expectedName)
		}
	})

	t.Run("Description", func(t *testing.T) {
		if w.Description() == "" {
			t.Error("Description() should not be empty")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := w.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

// TestGeneration tests the Generate method with a real result and a nil one.
func TestGeneration(t *testing.T, w output.Writer, expectedFiles []string) {
	t.Run("Generate", func(t *testing.T) {
		files, err := w.Generate(CreateTestResult(t, 3, 4))
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		if len(files) != len(expectedFiles) {
			t.Fatalf("Generate() returned %d files, want %d", len(files), len(expectedFiles))
		}
		for _, expectedFile := range expectedFiles {
			content, ok := files[expectedFile]
			if !ok {
				t.Errorf("Generate() did not return %s", expectedFile)
				continue
			}
			if len(content) == 0 {
				t.Errorf("Generate() returned empty %s", expectedFile)
			}
		}
	})

	t.Run("GenerateNilResult", func(t *testing.T) {
		if _, err := w.Generate(nil); err == nil {
			t.Error("Generate() with nil result should return error")
		}
	})
}

// TestFlags tests that RegisterFlags registers the expected flags.
func TestFlags(t *testing.T, w output.Writer, expectedFlags []string) {
	t.Run("RegisterFlags", func(t *testing.T) {
		cmd := &cobra.Command{
			Use: "test",
		}

		w.RegisterFlags(cmd)

		for _, name := range expectedFlags {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("RegisterFlags() did not register %s flag", name)
			}
		}
	})
}

// RunAllTests runs all standard tests for a writer.
func RunAllTests(t *testing.T, w output.Writer, config TestConfig) {
	TestBasicInterface(t, w, config.ExpectedName)
	TestGeneration(t, w, config.ExpectedFiles)
	TestFlags(t, w, config.ExpectedFlags)
}

// TestConfig holds configuration for running writer tests.
type TestConfig struct {
	ExpectedName  string   // Writer name
	ExpectedFiles []string // Files that Generate() should return
	ExpectedFlags []string // Flags that RegisterFlags() should add
}
