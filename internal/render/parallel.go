package render

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/polycue/internal/colour"
)

// DrawAll rasterises every group with the same options. Groups are independent,
// so they are drawn concurrently on up to workers goroutines (GOMAXPROCS when
// workers <= 0). The returned images are in group order.
func DrawAll(ctx context.Context, groups [][]colour.RGB, opts Options, workers int) ([]*image.RGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	images := make([]*image.RGBA, len(groups))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, group := range groups {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := Draw(group, opts)
			if err != nil {
				return fmt.Errorf("tag %d: %w", i+1, err)
			}
			images[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}
