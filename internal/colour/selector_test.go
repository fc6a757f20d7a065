package colour

import (
	"math/rand/v2"
	"testing"
)

const distanceTolerance = 1e-9

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func assertSeparated(t *testing.T, sel Selection) {
	t.Helper()
	labs := ToLabSlice(sel.Colours)
	for i := range labs {
		for j := i + 1; j < len(labs); j++ {
			if d := Distance(labs[i], labs[j]); d+distanceTolerance < sel.Threshold {
				t.Fatalf("colours %s and %s are %.4f apart, below threshold %.4f",
					sel.Colours[i].Hex(), sel.Colours[j].Hex(), d, sel.Threshold)
			}
		}
	}
}

func TestSelectDistinct(t *testing.T) {
	pool := DefaultPool()

	tests := []struct {
		name  string
		total int
		seed  uint64
	}{
		{name: "single tag of four", total: 4, seed: 1},
		{name: "three tags of four", total: 12, seed: 2},
		{name: "eight tags of six", total: 48, seed: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := SelectDistinct(pool, tt.total, newTestRand(tt.seed))
			if len(sel.Colours) != tt.total {
				t.Fatalf("SelectDistinct() returned %d colours, want %d", len(sel.Colours), tt.total)
			}
			if sel.Threshold <= 0 {
				t.Errorf("Threshold = %v, want > 0", sel.Threshold)
			}
			assertSeparated(t, sel)

			seen := make(map[RGB]bool)
			for _, c := range sel.Colours {
				if seen[c] {
					t.Fatalf("duplicate colour %s in selection", c.Hex())
				}
				seen[c] = true
			}
		})
	}
}

func TestSelectDistinctDegradesWhenPoolIsTooSmall(t *testing.T) {
	pool := DefaultPool()
	total := pool.Len() + 50

	sel := SelectDistinct(pool, total, newTestRand(7))
	if len(sel.Colours) > total {
		t.Fatalf("selection has %d colours, more than requested %d", len(sel.Colours), total)
	}
	if len(sel.Colours) >= total {
		t.Fatalf("expected a short selection, got %d of %d", len(sel.Colours), total)
	}
	if len(sel.Colours) == 0 {
		t.Fatal("expected a non-empty best-effort selection")
	}
	assertSeparated(t, sel)
}

func TestSelectDistinctSeededIsReproducible(t *testing.T) {
	pool := DefaultPool()
	a := SelectDistinct(pool, 20, newTestRand(42))
	b := SelectDistinct(pool, 20, newTestRand(42))

	if a.Threshold != b.Threshold {
		t.Fatalf("thresholds differ: %v vs %v", a.Threshold, b.Threshold)
	}
	for i := range a.Colours {
		if a.Colours[i] != b.Colours[i] {
			t.Fatalf("colour %d differs: %s vs %s", i, a.Colours[i].Hex(), b.Colours[i].Hex())
		}
	}
}

func TestSelectDistinctEdgeCases(t *testing.T) {
	rng := newTestRand(1)

	if sel := SelectDistinct(DefaultPool(), 0, rng); len(sel.Colours) != 0 || sel.Threshold != 0 {
		t.Errorf("total=0 returned %+v", sel)
	}
	if sel := SelectDistinct(NewPool(nil), 5, rng); len(sel.Colours) != 0 {
		t.Errorf("empty pool returned %d colours", len(sel.Colours))
	}
}

func TestSelectDistinctThresholdFallsWithDemand(t *testing.T) {
	pool := DefaultPool()
	few := SelectDistinct(pool, 4, newTestRand(9))
	many := SelectDistinct(pool, 60, newTestRand(9))

	if few.Threshold <= many.Threshold {
		t.Errorf("threshold for 4 colours (%.2f) should exceed threshold for 60 (%.2f)", few.Threshold, many.Threshold)
	}
}

func TestCapacity(t *testing.T) {
	pool := DefaultPool()
	for sides := 3; sides <= 6; sides++ {
		c := Capacity(pool, sides, newTestRand(uint64(sides)))
		if c < 1 {
			t.Errorf("Capacity(sides=%d) = %d, want >= 1", sides, c)
		}
		if c*sides > pool.Len() {
			t.Errorf("Capacity(sides=%d) = %d needs %d colours, pool has %d", sides, c, c*sides, pool.Len())
		}
	}

}

func TestCapacityFloor(t *testing.T) {
	tests := []struct {
		name  string
		pool  *Pool
		sides int
		want  int
	}{
		{name: "single colour", pool: NewPool([]RGB{{R: 1}}), sides: 4, want: 1},
		{name: "one short of a tag", pool: NewPool([]RGB{{R: 255}, {G: 255}, {B: 255}}), sides: 4, want: 1},
		{name: "empty pool", pool: NewPool(nil), sides: 3, want: 1},
		{name: "exactly one tag", pool: NewPool([]RGB{{R: 255}, {G: 255}, {B: 255}}), sides: 3, want: 1},
		{name: "no sides", pool: DefaultPool(), sides: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Capacity(tt.pool, tt.sides, newTestRand(1)); got != tt.want {
				t.Errorf("Capacity(sides=%d) = %d, want %d", tt.sides, got, tt.want)
			}
		})
	}
}
