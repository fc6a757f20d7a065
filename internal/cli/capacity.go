package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/polycue/internal/colour"
	"github.com/jmylchreest/polycue/internal/render"
	"github.com/jmylchreest/polycue/internal/seed"
)

var (
	capacitySides        int
	capacitySeed         uint64
	capacityMinLightness float64
	capacityMaxLightness float64
)

func newCapacityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Estimate how many tags the candidate pool can supply",
		Long: `Estimate how many tags with the given number of sides can be generated
before the candidate pool runs out of distinct colours.

The estimate is randomised; pass --seed for a repeatable answer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if capacitySides < render.MinSides || capacitySides > render.MaxSides {
				return fmt.Errorf("%w: %d (must be %d-%d)", render.ErrInvalidSides, capacitySides, render.MinSides, render.MaxSides)
			}

			pool, err := buildPool(capacityMinLightness, capacityMaxLightness)
			if err != nil {
				return err
			}

			s := capacitySeed
			if !cmd.Flags().Changed("seed") {
				s = seed.GenerateRandomSeed()
			}

			n := colour.Capacity(pool, capacitySides, seed.NewRand(s))
			newLogger(cmd).Debug("estimated capacity", "pool", pool.Len(), "sides", capacitySides, "seed", s, "tags", n)

			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", n)
			fmt.Fprintf(stdout(cmd), "  └─ %d-sided tags from %d candidate colours\n", capacitySides, pool.Len())
			return nil
		},
	}

	cmd.Flags().IntVarP(&capacitySides, "sides", "s", render.DefaultOptions().Sides, fmt.Sprintf("sides per tag (%d-%d)", render.MinSides, render.MaxSides))
	cmd.Flags().Uint64Var(&capacitySeed, "seed", 0, "seed value for a repeatable estimate")
	cmd.Flags().Float64Var(&capacityMinLightness, "min-lightness", colour.DefaultMinLightness, "minimum candidate lightness (L*)")
	cmd.Flags().Float64Var(&capacityMaxLightness, "max-lightness", colour.DefaultMaxLightness, "maximum candidate lightness (L*)")

	return cmd
}
