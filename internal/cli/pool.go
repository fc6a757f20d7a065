package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/polycue/internal/colour"
)

var (
	poolMinLightness float64
	poolMaxLightness float64
)

func newPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "List the candidate colours tags are drawn from",
		Long: `List the candidate colour pool: a 6×6×6 sRGB grid filtered to a lightness
band so that every colour reads clearly against white and black.

Swatches are shown when stdout is a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := buildPool(poolMinLightness, poolMaxLightness)
			if err != nil {
				return err
			}

			swatches := stdoutIsTerminal()
			headers := []string{"#", "Hex", "RGB", "L*", "a*", "b*"}
			if swatches {
				headers = append([]string{"Swatch"}, headers...)
			}

			tbl := NewTable(headers)
			for col, h := range headers {
				if h != "Swatch" && h != "Hex" && h != "RGB" {
					tbl.SetRightAlign(col)
				}
			}

			for i := range pool.Len() {
				c := pool.Colour(i)
				lab := pool.Lab(i)
				row := []string{
					fmt.Sprintf("%d", i+1),
					c.Hex(),
					c.String(),
					fmt.Sprintf("%.1f", lab.L),
					fmt.Sprintf("%.1f", lab.A),
					fmt.Sprintf("%.1f", lab.B),
				}
				if swatches {
					row = append([]string{colour.ColourPreviewWithText(c, fmt.Sprintf("%.0f", lab.L), 6)}, row...)
				}
				tbl.AddRow(row)
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, tbl.Render())
			fmt.Fprintf(stdout(cmd), "\n%d candidate colours with L* in [%.0f, %.0f]\n",
				pool.Len(), poolMinLightness, poolMaxLightness)
			return nil
		},
	}

	cmd.Flags().Float64Var(&poolMinLightness, "min-lightness", colour.DefaultMinLightness, "minimum candidate lightness (L*)")
	cmd.Flags().Float64Var(&poolMaxLightness, "max-lightness", colour.DefaultMaxLightness, "maximum candidate lightness (L*)")

	return cmd
}
