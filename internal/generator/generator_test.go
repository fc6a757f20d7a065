package generator

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/jmylchreest/polycue/internal/colour"
	"github.com/jmylchreest/polycue/internal/render"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func smallRequest(tags, sides int) Request {
	return Request{
		TagCount:      tags,
		Sides:         sides,
		Render:        render.Options{Width: 64, Height: 64},
		ContrastOrder: true,
		Iterations:    200,
		Workers:       2,
	}
}

func TestGenerate(t *testing.T) {
	res, err := Generate(context.Background(), colour.DefaultPool(), smallRequest(3, 4), newTestRand(1), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if res.TagCount != 3 || res.Requested != 3 || res.Sides != 4 {
		t.Fatalf("got %d/%d tags of %d sides, want 3/3 of 4", res.TagCount, res.Requested, res.Sides)
	}
	if res.Downscaled() {
		t.Error("Downscaled() = true, want false")
	}
	if len(res.Tags) != 3 || len(res.Images) != 3 {
		t.Fatalf("got %d tags and %d images, want 3 each", len(res.Tags), len(res.Images))
	}
	if res.Threshold <= 0 {
		t.Errorf("Threshold = %v, want > 0", res.Threshold)
	}

	seen := make(map[colour.RGB]bool)
	white := colour.RGB{R: 255, G: 255, B: 255}
	for i, tag := range res.Tags {
		if len(tag.Colours) != 4 {
			t.Fatalf("tag %d has %d colours, want 4", i, len(tag.Colours))
		}
		if tag.MinDeltaE+1e-9 < res.Threshold {
			t.Errorf("tag %d MinDeltaE %v below threshold %v", i, tag.MinDeltaE, res.Threshold)
		}

		want := map[colour.RGB]bool{white: true}
		for _, c := range tag.Colours {
			if seen[c] {
				t.Errorf("colour %s used by more than one tag", c.Hex())
			}
			seen[c] = true
			want[c] = true
		}

		got := make(map[colour.RGB]bool)
		b := res.Images[i].Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				got[colour.ToRGB(res.Images[i].At(x, y))] = true
			}
		}
		if len(got) != len(want) {
			t.Errorf("tag %d image has %d distinct colours, want %d", i, len(got), len(want))
		}
		for c := range got {
			if !want[c] {
				t.Errorf("tag %d image contains unexpected colour %s", i, c.Hex())
			}
		}
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	req := smallRequest(4, 3)
	a, err := Generate(context.Background(), nil, req, newTestRand(99), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := Generate(context.Background(), nil, req, newTestRand(99), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if a.Threshold != b.Threshold {
		t.Errorf("thresholds differ: %v vs %v", a.Threshold, b.Threshold)
	}
	ga, gb := a.Groups(), b.Groups()
	for i := range ga {
		for j := range ga[i] {
			if ga[i][j] != gb[i][j] {
				t.Fatalf("group %d colour %d differs: %s vs %s", i, j, ga[i][j].Hex(), gb[i][j].Hex())
			}
		}
	}
}

func TestGenerateDownscalesShortSelection(t *testing.T) {
	pool := colour.NewPool(colour.DefaultPool().Colours()[:10])

	res, err := Generate(context.Background(), pool, smallRequest(3, 4), newTestRand(5), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Requested != 3 {
		t.Errorf("Requested = %d, want 3", res.Requested)
	}
	if res.TagCount != 2 || len(res.Tags) != 2 || len(res.Images) != 2 {
		t.Errorf("got %d tags (%d, %d), want 2", res.TagCount, len(res.Tags), len(res.Images))
	}
	if !res.Downscaled() {
		t.Error("Downscaled() = false, want true")
	}
}

func TestGeneratePoolExhausted(t *testing.T) {
	pool := colour.NewPool(colour.DefaultPool().Colours()[:3])

	_, err := Generate(context.Background(), pool, smallRequest(1, 4), newTestRand(5), nil)
	if !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("Generate() error = %v, want ErrPoolExhausted", err)
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, nil, smallRequest(2, 4), newTestRand(1), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate() error = %v, want context.Canceled", err)
	}
}

func TestGenerateRejectsBadRequest(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		rng  *rand.Rand
		want error
	}{
		{name: "zero tags", req: smallRequest(0, 4), rng: newTestRand(1), want: ErrInvalidTagCount},
		{name: "too many tags", req: smallRequest(MaxTagCount+1, 4), rng: newTestRand(1), want: ErrInvalidTagCount},
		{name: "too many sides", req: smallRequest(2, 7), rng: newTestRand(1), want: render.ErrInvalidSides},
		{name: "no canvas", req: Request{TagCount: 1, Sides: 4}, rng: newTestRand(1), want: render.ErrInvalidCanvas},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(context.Background(), nil, tt.req, tt.rng, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Generate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGenerateRequiresRandomSource(t *testing.T) {
	if _, err := Generate(context.Background(), nil, smallRequest(1, 4), nil, nil); err == nil {
		t.Error("Generate() without a random source should fail")
	}
}

func TestRequestString(t *testing.T) {
	a := smallRequest(3, 4)
	b := a
	b.Seed = 42
	b.Workers = 8
	if a.String() != b.String() {
		t.Errorf("seed and workers should not change the request description")
	}

	c := a
	c.Sides = 5
	if a.String() == c.String() {
		t.Errorf("sides should change the request description")
	}
}
