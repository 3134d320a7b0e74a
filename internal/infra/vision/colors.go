package vision

import (
	"errors"
	"fmt"
	"image"
	"sort"
)

const (
	maxSamples    = 4096
	maxIterations = 20
)

// ErrEmptyImage is returned for images without any opaque pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// KMeansExtractor finds dominant colors by clustering sampled pixels in RGB space.
type KMeansExtractor struct{}

type rgb struct {
	r, g, b float64
}

// ExtractColors implements wardrobe.ColorExtractor. Colors are ordered by
// cluster size, largest first, and never repeat.
func (KMeansExtractor) ExtractColors(img image.Image, k int) ([]string, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	if k <= 0 {
		return nil, fmt.Errorf("invalid cluster count %d", k)
	}
	pixels := samplePixels(img)
	if len(pixels) == 0 {
		return nil, ErrEmptyImage
	}
	if k > len(pixels) {
		k = len(pixels)
	}

	centers := initialCenters(pixels, k)
	assign := make([]int, len(pixels))
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, p := range pixels {
			best := nearest(centers, p)
			if iter == 0 || best != assign[i] {
				changed = true
				assign[i] = best
			}
		}
		if !changed {
			break
		}
		sums := make([]rgb, k)
		counts := make([]int, k)
		for i, p := range pixels {
			c := assign[i]
			sums[c].r += p.r
			sums[c].g += p.g
			sums[c].b += p.b
			counts[c]++
		}
		for c := range centers {
			if counts[c] == 0 {
				continue
			}
			n := float64(counts[c])
			centers[c] = rgb{sums[c].r / n, sums[c].g / n, sums[c].b / n}
		}
	}

	counts := make([]int, k)
	for _, c := range assign {
		counts[c]++
	}
	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })

	seen := make(map[string]struct{}, k)
	colors := make([]string, 0, k)
	for _, c := range order {
		if counts[c] == 0 {
			continue
		}
		hex := toHex(centers[c])
		if _, dup := seen[hex]; dup {
			continue
		}
		seen[hex] = struct{}{}
		colors = append(colors, hex)
	}
	return colors, nil
}

// samplePixels strides over the image so at most maxSamples opaque pixels are clustered.
func samplePixels(img image.Image) []rgb {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total <= 0 {
		return nil
	}
	step := 1
	for total/(step*step) > maxSamples {
		step++
	}
	pixels := make([]rgb, 0, min(total, maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			pixels = append(pixels, rgb{float64(r >> 8), float64(g >> 8), float64(b >> 8)})
		}
	}
	return pixels
}

// initialCenters picks k pixels spread evenly across the luminance range.
func initialCenters(pixels []rgb, k int) []rgb {
	sorted := append([]rgb(nil), pixels...)
	sort.SliceStable(sorted, func(i, j int) bool { return luminance(sorted[i]) < luminance(sorted[j]) })
	centers := make([]rgb, k)
	for i := range centers {
		idx := 0
		if k > 1 {
			idx = i * (len(sorted) - 1) / (k - 1)
		}
		centers[i] = sorted[idx]
	}
	return centers
}

func nearest(centers []rgb, p rgb) int {
	best, bestDist := 0, -1.0
	for i, c := range centers {
		dr, dg, db := p.r-c.r, p.g-c.g, p.b-c.b
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func luminance(c rgb) float64 {
	return 0.299*c.r + 0.587*c.g + 0.114*c.b
}

func toHex(c rgb) string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.r), clampByte(c.g), clampByte(c.b))
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
