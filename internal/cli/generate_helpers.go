package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/polycue/internal/colour"
	"github.com/jmylchreest/polycue/internal/generator"
	"github.com/jmylchreest/polycue/internal/output"
	"github.com/jmylchreest/polycue/internal/render"
	"github.com/jmylchreest/polycue/internal/seed"
)

// buildRequest assembles a generation request from the generate flags.
func buildRequest() generator.Request {
	return generator.Request{
		TagCount: generateCount,
		Sides:    generateSides,
		Render: render.Options{
			Width:          generateWidth,
			Height:         generateHeight,
			Sides:          generateSides,
			CenterDot:      generateCenterDot,
			CenterDotPct:   generateCenterDotSize,
			GradientDot:    generateGradientDot,
			GradientDotPct: generateGradientDotSize,
		},
		ContrastOrder: !generateNoReorder,
		Iterations:    generateIterations,
		Workers:       generateWorkers,
	}
}

// buildPool filters the candidate grid to the given lightness range.
func buildPool(minL, maxL float64) (*colour.Pool, error) {
	if minL == colour.DefaultMinLightness && maxL == colour.DefaultMaxLightness {
		return colour.DefaultPool(), nil
	}
	if minL > maxL {
		return nil, fmt.Errorf("min lightness %.1f is above max lightness %.1f", minL, maxL)
	}

	pool := colour.NewPool(colour.FilterByLightness(colour.BuildGrid(), minL, maxL))
	if pool.Len() == 0 {
		return nil, fmt.Errorf("no candidate colours with lightness in [%.1f, %.1f]", minL, maxL)
	}
	return pool, nil
}

// resolveSeed picks the seed for this run. An explicit --seed selects manual
// mode unless another mode was requested.
func resolveSeed(cmd *cobra.Command, req generator.Request) (uint64, error) {
	mode, err := seed.ParseMode(generateSeedMode)
	if err != nil {
		return 0, err
	}

	var value *uint64
	if cmd.Flags().Changed("seed") {
		v := generateSeed
		value = &v
		if !cmd.Flags().Changed("seed-mode") {
			mode = seed.ModeManual
		}
	}

	return seed.Calculate(seed.Config{Mode: mode, Value: value}, req)
}

// selectWriters resolves --outputs into writers, validating each one.
// With no names the manager's enabled set is used.
func selectWriters(names []string) ([]output.Writer, error) {
	var writers []output.Writer

	switch {
	case len(names) == 0:
		writers = outputManager.Enabled()
	case slices.Contains(names, "all"):
		reg := outputManager.Registry()
		for _, name := range reg.List() {
			w, _ := reg.Get(name)
			writers = append(writers, w)
		}
	default:
		// Writers named on the CLI are enabled for this run regardless of config
		for _, name := range names {
			w, ok := outputManager.Get(name)
			if !ok {
				return nil, fmt.Errorf("unknown output: %s (available: %s)",
					name, strings.Join(outputManager.Registry().List(), ", "))
			}
			writers = append(writers, w)
		}
	}

	if len(writers) == 0 {
		return nil, fmt.Errorf("no outputs selected")
	}

	for _, w := range writers {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("invalid %s output configuration: %w", w.Name(), err)
		}
	}
	return writers, nil
}

// combinedWithoutSheet reports whether the manifest refers to contact sheet
// positions while no sheet is being written.
func combinedWithoutSheet(writers []output.Writer) bool {
	combined, sheet := false, false
	for _, w := range writers {
		switch w.Name() {
		case "sheet":
			sheet = true
		case "manifest":
			if m, ok := w.(interface{ Combined() bool }); ok {
				combined = m.Combined()
			}
		}
	}
	return combined && !sheet
}

// collectFiles runs every writer and merges their files.
func collectFiles(writers []output.Writer, result *generator.Result, errOut io.Writer) (map[string][]byte, error) {
	files := make(map[string][]byte)
	for _, w := range writers {
		if globalVerbose {
			fmt.Fprintf(errOut, "✓ Output: %s\n", w.Name())
			fmt.Fprintf(errOut, "  └─ %s\n", w.Description())
		}

		generated, err := w.Generate(result)
		if err != nil {
			return nil, fmt.Errorf("%s output failed: %w", w.Name(), err)
		}
		for name, content := range generated {
			if _, dup := files[name]; dup {
				return nil, fmt.Errorf("%s output: file %s already produced by another output", w.Name(), name)
			}
			files[name] = content
		}
	}
	return files, nil
}

// printSummary writes the headline numbers of a run.
func printSummary(w io.Writer, result *generator.Result) {
	fmt.Fprintf(w, "Generated %d tag(s) with %d sides\n", result.TagCount, result.Sides)
	fmt.Fprintf(w, "  ├─ Threshold: %.2f ΔE\n", result.Threshold)
	fmt.Fprintf(w, "  └─ Seed:      %d\n", result.Seed)
}

// previewTable lists every tag's colours, with swatches on a terminal. The
// hex codes come last so they wrap to the terminal width.
func previewTable(result *generator.Result) *Table {
	swatches := stdoutIsTerminal()

	headers := []string{"Tag", "Min ΔE", "Colours"}
	if swatches {
		headers = []string{"Tag", "Preview", "Min ΔE", "Colours"}
	}
	tbl := NewTable(headers)
	tbl.SetRightAlign(len(headers) - 2)

	for i, tag := range result.Tags {
		row := []string{fmt.Sprintf("%02d", i+1)}
		if swatches {
			row = append(row, colour.GroupPreview(tag.Colours, 3))
		}
		row = append(row,
			fmt.Sprintf("%.2f", tag.MinDeltaE),
			strings.Join(colour.ToHex(tag.Colours), " "),
		)
		tbl.AddRow(row)
	}

	// Room for at least one hex code per line
	tbl.EnableTerminalAwareWidth(len("#rrggbb"))
	return tbl
}

func sortedNames(files map[string][]byte) []string {
	return slices.Sorted(maps.Keys(files))
}
