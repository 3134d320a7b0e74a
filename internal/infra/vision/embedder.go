package vision

import (
	"image"
	"math"
)

// GridEmbedder pools mean RGB over an n x n grid and L2-normalizes the result.
type GridEmbedder struct {
	grid int
}

// NewGridEmbedder constructs an embedder. A non-positive grid defaults to 8.
func NewGridEmbedder(grid int) *GridEmbedder {
	if grid <= 0 {
		grid = 8
	}
	return &GridEmbedder{grid: grid}
}

// Dimensions is the length of every vector the embedder returns.
func (e *GridEmbedder) Dimensions() int {
	return e.grid * e.grid * 3
}

// EmbedImage implements wardrobe.Embedder.
func (e *GridEmbedder) EmbedImage(img image.Image) ([]float32, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}
	sums := make([]float64, e.Dimensions())
	counts := make([]int, e.grid*e.grid)
	stepX := max(1, w/(e.grid*16))
	stepY := max(1, h/(e.grid*16))
	for y := 0; y < h; y += stepY {
		row := y * e.grid / h
		for x := 0; x < w; x += stepX {
			col := x * e.grid / w
			cell := row*e.grid + col
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			sums[cell*3] += float64(r) / 0xffff
			sums[cell*3+1] += float64(g) / 0xffff
			sums[cell*3+2] += float64(b) / 0xffff
			counts[cell]++
		}
	}
	vec := make([]float32, len(sums))
	var norm float64
	for cell, n := range counts {
		if n == 0 {
			continue
		}
		for c := 0; c < 3; c++ {
			sums[cell*3+c] /= float64(n)
			norm += sums[cell*3+c] * sums[cell*3+c]
		}
	}
	if norm == 0 {
		return vec, nil
	}
	norm = math.Sqrt(norm)
	for i, v := range sums {
		vec[i] = float32(v / norm)
	}
	return vec, nil
}
