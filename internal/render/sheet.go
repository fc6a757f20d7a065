package render

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// ErrNoImages is returned when a sheet is requested for no images.
var ErrNoImages = errors.New("no images to combine")

// Sheet lays images out on a white grid, left to right then top to bottom.
// Cells take the size of the first image. When columns <= 0 the grid is made
// roughly square. When tileSize > 0 each image is scaled to a tileSize square
// first.
func Sheet(images []*image.RGBA, columns, tileSize int) (*image.RGBA, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	count := len(images)
	cols := columns
	if cols <= 0 {
		cols = int(math.Ceil(math.Sqrt(float64(count))))
	}
	cols = min(cols, count)
	rows := (count + cols - 1) / cols

	cellW := images[0].Bounds().Dx()
	cellH := images[0].Bounds().Dy()
	if tileSize > 0 {
		cellW, cellH = tileSize, tileSize
	}

	sheet := image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))
	fill(sheet, white)

	for i, img := range images {
		src := img
		if tileSize > 0 {
			src = Thumbnail(img, tileSize)
		}
		col := i % cols
		row := i / cols
		cell := image.Rect(col*cellW, row*cellH, (col+1)*cellW, (row+1)*cellH)
		draw.Draw(sheet, cell, src, src.Bounds().Min, draw.Src)
	}

	return sheet, nil
}

// Thumbnail scales img to a size×size square.
func Thumbnail(img image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
