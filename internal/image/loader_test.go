package image

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmylchreest/polycue/internal/colour"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func twoColourImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
			if x == 0 {
				c = color.RGBA{R: 16, G: 64, B: 208, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tag_01.png")
	writePNG(t, path, twoColourImage())

	img, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("width = %d, want 4", img.Bounds().Dx())
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "empty", path: ""},
		{name: "missing", path: filepath.Join(dir, "missing.png")},
		{name: "directory", path: dir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFileLoader().Load(tt.path); err == nil {
				t.Errorf("Load(%q) should fail", tt.path)
			}
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	writePNG(t, good, twoColourImage())
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "image", path: good},
		{name: "directory", path: dir},
		{name: "not an image", path: bad, wantErr: true},
		{name: "missing", path: filepath.Join(dir, "nope.png"), wantErr: true},
		{name: "empty", path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScanDirectoryForImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "tag_02.png"), twoColourImage())
	writePNG(t, filepath.Join(dir, "tag_01.png"), twoColourImage())
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ScanDirectoryForImages(dir)
	if err != nil {
		t.Fatalf("ScanDirectoryForImages() error = %v", err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "tag_01.png" {
		t.Errorf("ScanDirectoryForImages() = %v", files)
	}

	if _, err := ScanDirectoryForImages(t.TempDir()); err == nil {
		t.Error("ScanDirectoryForImages() on an empty directory should fail")
	}
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, twoColourImage()); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(buf.Bytes()); err != nil {
		t.Errorf("Decode() error = %v", err)
	}
	if _, err := Decode([]byte("nope")); err == nil {
		t.Error("Decode() should fail on garbage")
	}
}

func TestCountColours(t *testing.T) {
	got := CountColours(twoColourImage())
	if len(got) != 2 {
		t.Fatalf("CountColours() returned %d colours, want 2", len(got))
	}

	want := []ColourCount{
		{Colour: colour.RGB{R: 255, G: 255, B: 255}, Count: 12},
		{Colour: colour.RGB{R: 16, G: 64, B: 208}, Count: 4},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CountColours()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestIsImageFile(t *testing.T) {
	tests := map[string]bool{
		"tag.png":       true,
		"TAG.PNG":       true,
		"photo.webp":    true,
		"manifest.json": false,
		"tags.tar.xz":   false,
	}
	for path, want := range tests {
		if got := IsImageFile(path); got != want {
			t.Errorf("IsImageFile(%q) = %v, want %v", path, got, want)
		}
	}
}
