package output

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// Compression levels accepted by image writers.
var compressionLevels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"speed":   png.BestSpeed,
	"best":    png.BestCompression,
}

// ParseCompression maps a compression name to a PNG compression level.
func ParseCompression(name string) (png.CompressionLevel, error) {
	level, ok := compressionLevels[name]
	if !ok {
		return 0, fmt.Errorf("invalid compression: %s (must be default, none, speed or best)", name)
	}
	return level, nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image, level png.CompressionLevel) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: level}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
