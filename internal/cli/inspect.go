package cli

import (
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/polycue/internal/colour"
	imageutil "github.com/jmylchreest/polycue/internal/image"
	"github.com/jmylchreest/polycue/internal/output/archive"
)

var inspectTop int

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <image|directory|archive.tar.xz>",
		Short: "List the distinct colours in tag images",
		Long: `List the distinct colours in a tag image, most frequent first, with each
colour's pixel count and lightness.

The path may be a single image, a run directory (every image in it is
inspected) or a tags.tar.xz archive written by the archive output.

Examples:
  polycue inspect output/2025-01-31_14-05-09/tag_01.png
  polycue inspect output/2025-01-31_14-05-09 --top 6
  polycue inspect output/2025-01-31_14-05-09/tags.tar.xz`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}

	cmd.Flags().IntVar(&inspectTop, "top", 16, "show at most this many colours per image (0 for all)")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	if strings.HasSuffix(path, ".tar.xz") {
		return inspectArchive(out, path)
	}

	if err := imageutil.ValidateImagePath(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to access %s: %w", path, err)
	}
	paths := []string{path}
	if info.IsDir() {
		if paths, err = imageutil.ScanDirectoryForImages(path); err != nil {
			return err
		}
	}

	loader := imageutil.NewFileLoader()
	for i, p := range paths {
		img, err := loader.Load(p)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		printColourCounts(out, p, img)
	}
	return nil
}

func inspectArchive(out io.Writer, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified archive path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}

	files, err := archive.Unpack(data)
	if err != nil {
		return err
	}

	first := true
	for _, name := range sortedNames(files) {
		if !imageutil.IsImageFile(name) {
			continue
		}
		img, err := imageutil.Decode(files[name])
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if !first {
			fmt.Fprintln(out)
		}
		first = false
		printColourCounts(out, path+":"+name, img)
	}

	if first {
		return fmt.Errorf("no images found in archive: %s", path)
	}
	return nil
}

// printColourCounts writes a table of img's colours.
func printColourCounts(out io.Writer, name string, img image.Image) {
	counts := imageutil.CountColours(img)
	b := img.Bounds()
	total := b.Dx() * b.Dy()

	fmt.Fprintf(out, "%s (%dx%d, %d colours)\n", name, b.Dx(), b.Dy(), len(counts))

	swatches := stdoutIsTerminal()
	headers := []string{"Hex", "RGB", "L*", "Pixels", "Share"}
	if swatches {
		headers = append([]string{"Swatch"}, headers...)
	}
	tbl := NewTable(headers)
	for col := len(headers) - 3; col < len(headers); col++ {
		tbl.SetRightAlign(col)
	}

	shown := counts
	if inspectTop > 0 && len(shown) > inspectTop {
		shown = shown[:inspectTop]
	}
	for _, cc := range shown {
		row := []string{
			cc.Colour.Hex(),
			cc.Colour.String(),
			fmt.Sprintf("%.1f", colour.ToLab(cc.Colour).L),
			fmt.Sprintf("%d", cc.Count),
			fmt.Sprintf("%.2f%%", 100*float64(cc.Count)/float64(total)),
		}
		if swatches {
			row = append([]string{colour.ColourPreview(cc.Colour, 4)}, row...)
		}
		tbl.AddRow(row)
	}
	fmt.Fprint(out, tbl.Render())

	if hidden := len(counts) - len(shown); hidden > 0 {
		fmt.Fprintf(out, "  … %d more colour(s)\n", hidden)
	}
}
