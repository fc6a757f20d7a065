package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/polycue/internal/colour"
	"github.com/jmylchreest/polycue/internal/generator"
	"github.com/jmylchreest/polycue/internal/grouping"
	"github.com/jmylchreest/polycue/internal/output"
	"github.com/jmylchreest/polycue/internal/output/manager"
	"github.com/jmylchreest/polycue/internal/render"
	"github.com/jmylchreest/polycue/internal/seed"
)

// EnvOutputDir overrides the default --output-dir.
const EnvOutputDir = "POLYCUE_OUTPUT_DIR"

var (
	// Generate command flags
	generateCount           int
	generateSides           int
	generateWidth           int
	generateHeight          int
	generateCenterDot       bool
	generateCenterDotSize   float64
	generateGradientDot     bool
	generateGradientDotSize float64
	generateNoReorder       bool
	generateIterations      int
	generateWorkers         int
	generateSeedMode        string
	generateSeed            uint64
	generateOutputs         []string
	generateOutputDir       string
	generateDryRun          bool
	generatePreview         bool
	generateMinLightness    float64
	generateMaxLightness    float64
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a set of distinct polygonal tags",
		Long: `Generate a set of visually distinct polygonal tags.

Colours are drawn from a fixed grid of sRGB candidates, keeping every pair as
far apart in CIE Lab as the pool allows. They are then split into one group
per tag so that each tag's own colours are also well separated, and every
group is rasterised as a regular polygon with one coloured wedge per side.

When the pool cannot supply count × sides distinct colours, fewer tags are
generated and a warning is printed.

Outputs:
` + outputHelp() + `
Examples:
  # Eight square tags with the default outputs (png, manifest)
  polycue generate

  # Twelve hexagons, reproducible, with a contact sheet
  polycue generate -n 12 -s 6 --seed 42 -o png,sheet,manifest

  # Small triangles without dots, bundled into an archive
  polycue generate -s 3 --width 256 --height 256 \
    --center-dot=false --gradient-dot=false -o archive

  # Preview colours without writing anything
  polycue generate --preview --dry-run`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	defaults := render.DefaultOptions()
	outputDir := "output"
	if env := os.Getenv(EnvOutputDir); env != "" {
		outputDir = env
	}

	flags := cmd.Flags()
	flags.IntVarP(&generateCount, "count", "n", 8, fmt.Sprintf("number of tags (%d-%d)", generator.MinTagCount, generator.MaxTagCount))
	flags.IntVarP(&generateSides, "sides", "s", defaults.Sides, fmt.Sprintf("sides per tag (%d-%d)", render.MinSides, render.MaxSides))
	flags.IntVar(&generateWidth, "width", defaults.Width, "image width in pixels")
	flags.IntVar(&generateHeight, "height", defaults.Height, "image height in pixels")
	flags.BoolVar(&generateCenterDot, "center-dot", defaults.CenterDot, "draw a black dot at the centre")
	flags.Float64Var(&generateCenterDotSize, "center-dot-size", defaults.CenterDotPct, "centre dot diameter as a percentage of the shorter side (1-50)")
	flags.BoolVar(&generateGradientDot, "gradient-dot", defaults.GradientDot, "blend a soft white spot over the centre")
	flags.Float64Var(&generateGradientDotSize, "gradient-dot-size", defaults.GradientDotPct, "gradient dot diameter as a percentage of the shorter side (1-50)")
	flags.BoolVar(&generateNoReorder, "no-reorder", false, "keep grouped colour order instead of alternating bright and dark")
	flags.IntVar(&generateIterations, "iterations", grouping.DefaultIterations, "refinement swap budget (negative disables refinement)")
	flags.IntVar(&generateWorkers, "workers", 0, "parallel rasterisation workers (0 uses all CPUs)")
	flags.StringVar(&generateSeedMode, "seed-mode", string(seed.ModeRandom), "seed mode (random, manual, request)")
	flags.Uint64Var(&generateSeed, "seed", 0, "seed value (implies --seed-mode manual)")
	flags.StringSliceVarP(&generateOutputs, "outputs", "o", nil, "outputs to write (comma-separated or 'all'; default from "+manager.EnvEnabledOutputs+" or png,manifest)")
	flags.StringVar(&generateOutputDir, "output-dir", outputDir, "base directory for timestamped runs (env "+EnvOutputDir+")")
	flags.BoolVar(&generateDryRun, "dry-run", false, "show what would be written without writing files")
	flags.BoolVar(&generatePreview, "preview", false, "show a colour preview of every tag")
	flags.Float64Var(&generateMinLightness, "min-lightness", colour.DefaultMinLightness, "minimum candidate lightness (L*)")
	flags.Float64Var(&generateMaxLightness, "max-lightness", colour.DefaultMaxLightness, "maximum candidate lightness (L*)")

	// Register writer flags
	for _, w := range outputManager.All() {
		w.RegisterFlags(cmd)
	}

	return cmd
}

// runGenerate executes the generate command.
func runGenerate(cmd *cobra.Command, _ []string) error {
	out := stdout(cmd)
	errOut := cmd.ErrOrStderr()
	logger := newLogger(cmd)

	req := buildRequest()
	if err := req.Validate(); err != nil {
		return err
	}

	pool, err := buildPool(generateMinLightness, generateMaxLightness)
	if err != nil {
		return err
	}

	writers, err := selectWriters(generateOutputs)
	if err != nil {
		return err
	}
	if combinedWithoutSheet(writers) {
		fmt.Fprintln(errOut, "⚠ --manifest.combined names sheet positions but the sheet output is not enabled")
	}

	seedValue, err := resolveSeed(cmd, req)
	if err != nil {
		return err
	}
	req.Seed = seedValue
	logger.Debug("resolved seed", "mode", generateSeedMode, "seed", seedValue)

	result, err := generator.Generate(cmd.Context(), pool, req, seed.NewRand(seedValue), logger)
	if err != nil {
		return fmt.Errorf("failed to generate tags: %w", err)
	}

	if result.Downscaled() {
		fmt.Fprintf(errOut, "⚠ Only %d of %d tags could be generated with distinct colours\n",
			result.TagCount, result.Requested)
	}

	printSummary(out, result)
	if generatePreview {
		fmt.Fprintln(out)
		fmt.Fprint(out, previewTable(result).Render())
	}

	files, err := collectFiles(writers, result, errOut)
	if err != nil {
		return err
	}

	dir := output.OutputDir(generateOutputDir, time.Now())
	fmt.Fprintln(out)
	if generateDryRun {
		for _, name := range sortedNames(files) {
			fmt.Fprintf(out, "  Would write: %s/%s (%d bytes)\n", dir, name, len(files[name]))
		}
		return nil
	}

	paths, err := output.WriteFiles(dir, files)
	for _, p := range paths {
		fmt.Fprintf(out, "  ├─ %s\n", p)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n✓ Done! Wrote %d file(s) to %s\n", len(paths), dir)
	return nil
}

// outputHelp lists registered writers for the generate help text.
func outputHelp() string {
	var b strings.Builder
	reg := outputManager.Registry()
	for _, name := range reg.List() {
		w, _ := reg.Get(name)
		marker := " "
		if outputManager.IsEnabled(name) {
			marker = "*"
		}
		fmt.Fprintf(&b, "  %s %-10s - %s\n", marker, name, w.Description())
	}
	b.WriteString("  (* enabled by default)\n")
	return b.String()
}
