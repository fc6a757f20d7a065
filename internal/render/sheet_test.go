package render

import (
	"errors"
	"image"
	"testing"

	"github.com/jmylchreest/polycue/internal/colour"
)

func drawN(t *testing.T, n, size int) []*image.RGBA {
	t.Helper()
	images := make([]*image.RGBA, n)
	for i := range images {
		img, err := Draw([]colour.RGB{testGroup[i%len(testGroup)]}, plainOptions(size, size, 4))
		if err != nil {
			t.Fatalf("Draw() error = %v", err)
		}
		images[i] = img
	}
	return images
}

func TestSheetLayout(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		columns int
		wantW   int
		wantH   int
	}{
		{name: "auto square", count: 4, columns: 0, wantW: 2 * 20, wantH: 2 * 20},
		{name: "auto ragged", count: 5, columns: 0, wantW: 3 * 20, wantH: 2 * 20},
		{name: "single row", count: 3, columns: 8, wantW: 3 * 20, wantH: 20},
		{name: "fixed columns", count: 7, columns: 2, wantW: 2 * 20, wantH: 4 * 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := Sheet(drawN(t, tt.count, 20), tt.columns, 0)
			if err != nil {
				t.Fatalf("Sheet() error = %v", err)
			}
			if b := sheet.Bounds(); b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("Sheet() size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestSheetPlacesTiles(t *testing.T) {
	images := drawN(t, 3, 20)
	sheet, err := Sheet(images, 2, 0)
	if err != nil {
		t.Fatalf("Sheet() error = %v", err)
	}
	// Centre of tile 1 (column 1, row 0) and tile 2 (column 0, row 1).
	if got, want := sheet.RGBAAt(30, 10), images[1].RGBAAt(10, 10); got != want {
		t.Errorf("tile 1 centre = %v, want %v", got, want)
	}
	if got, want := sheet.RGBAAt(10, 30), images[2].RGBAAt(10, 10); got != want {
		t.Errorf("tile 2 centre = %v, want %v", got, want)
	}
	// Empty fourth cell stays white.
	if got := sheet.RGBAAt(30, 30); got != white {
		t.Errorf("empty cell = %v, want white", got)
	}
}

func TestSheetTileSize(t *testing.T) {
	sheet, err := Sheet(drawN(t, 4, 64), 0, 16)
	if err != nil {
		t.Fatalf("Sheet() error = %v", err)
	}
	if b := sheet.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("Sheet() size = %v, want 32x32", b)
	}
}

func TestSheetEmpty(t *testing.T) {
	if _, err := Sheet(nil, 0, 0); !errors.Is(err, ErrNoImages) {
		t.Errorf("Sheet(nil) error = %v, want %v", err, ErrNoImages)
	}
}

func TestThumbnail(t *testing.T) {
	src := drawN(t, 1, 100)[0]
	thumb := Thumbnail(src, 25)
	if b := thumb.Bounds(); b.Dx() != 25 || b.Dy() != 25 {
		t.Fatalf("Thumbnail() size = %v, want 25x25", b)
	}
	if got := thumb.RGBAAt(0, 0); got.R < 250 || got.G < 250 || got.B < 250 {
		t.Errorf("Thumbnail() corner = %v, want near white", got)
	}
}
