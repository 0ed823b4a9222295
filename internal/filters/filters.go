// Filters perform color manipulation, per-pixel operations and convolution
package filters

import (
	"errors"
	"math"

	"github.com/anas-shakeel/go-bmp/internal/bmp"
	"github.com/anas-shakeel/go-bmp/internal/utils"
)

// apply runs fn over every pixel of g in place.
func apply(g *bmp.Grid, fn func(p *bmp.Pixel)) {
	for y := range g.Height() {
		row := g.Row(y)
		for x := range row {
			fn(&row[x])
		}
	}
}

// Inverts (negates) the color channels in place. Alpha is kept.
func Invert(g *bmp.Grid) {
	apply(g, func(p *bmp.Pixel) {
		p.R = 255 - p.R
		p.G = 255 - p.G
		p.B = 255 - p.B
	})
}

// Converts a grid to Black-and-White
func Grayscale(g *bmp.Grid) {
	apply(g, func(p *bmp.Pixel) {
		avg := byte(utils.Average(int(p.R), int(p.G), int(p.B)))
		p.R, p.G, p.B = avg, avg, avg
	})
}

// Converts a grid to Black-and-White (with ITU-R 601-2 Luma Transform)
func GrayscaleLuma(g *bmp.Grid) {
	apply(g, func(p *bmp.Pixel) {
		L := byte(int(p.R)*299/1000 + int(p.G)*587/1000 + int(p.B)*114/1000)
		p.R, p.G, p.B = L, L, L
	})
}

// Adjusts the Brightness of a grid in-place.
//
// method can be "add" (adds value to each channel) or "multiply" (multiplies each channel by value).
// Pixel values are clipped to [0, 255].
func Brightness(g *bmp.Grid, factor float64, method string) error {
	var operation func(x float64) float64

	// Select an operation of brightness (additive or multiplicative)
	switch method {
	case "add":
		operation = func(x float64) float64 { return x + factor }
	case "multiply":
		operation = func(x float64) float64 { return x * factor }
	default:
		return errors.New("invalid method: method must be add or multiply")
	}

	apply(g, func(p *bmp.Pixel) {
		p.R = clip(operation(float64(p.R)))
		p.G = clip(operation(float64(p.G)))
		p.B = clip(operation(float64(p.B)))
	})
	return nil
}

// Adjusts the Contrast of a grid in-place.
// factor > 1.0 increases Contrast, factor < 1.0 decreases it.
func Contrast(g *bmp.Grid, factor float64) {
	// Compute mean for each channel
	var sumR, sumG, sumB int
	apply(g, func(p *bmp.Pixel) {
		sumR += int(p.R)
		sumG += int(p.G)
		sumB += int(p.B)
	})
	totalPixels := g.Width() * g.Height()
	meanR := float64(sumR / totalPixels) // Average of all R pixels
	meanG := float64(sumG / totalPixels) // Average of all G pixels
	meanB := float64(sumB / totalPixels) // Average of all B pixels

	apply(g, func(p *bmp.Pixel) {
		p.R = clip(float64(p.R)*factor + (1-factor)*meanR)
		p.G = clip(float64(p.G)*factor + (1-factor)*meanG)
		p.B = clip(float64(p.B)*factor + (1-factor)*meanB)
	})
}

// Channel keeps a single color channel and zeroes the other two.
// channel can be one of (`red`, `green`, and `blue`)
func Channel(g *bmp.Grid, channel string) error {
	var keep func(p *bmp.Pixel)
	switch channel {
	case "red":
		keep = func(p *bmp.Pixel) { p.G, p.B = 0, 0 }
	case "green":
		keep = func(p *bmp.Pixel) { p.R, p.B = 0, 0 }
	case "blue":
		keep = func(p *bmp.Pixel) { p.R, p.G = 0, 0 }
	default:
		return errors.New("invalid color channel: only red, green, and blue are supported")
	}
	apply(g, keep)
	return nil
}

// clip truncates toward zero after clipping to [0, 255].
func clip(v float64) byte {
	return byte(math.Min(math.Max(v, 0), 255))
}
