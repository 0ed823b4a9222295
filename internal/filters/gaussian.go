package filters

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/anas-shakeel/go-bmp/internal/bmp"
	"github.com/anas-shakeel/go-bmp/internal/utils"
)

// DefaultRadius is the blur radius used when none is given.
const DefaultRadius = 10

// MaxRadius bounds the kernel to (2*MaxRadius+1)^2 weights.
const MaxRadius = 500

// BlurOptions control how the blur is scheduled. They never change the result.
type BlurOptions struct {
	// Workers is the number of goroutines rows are split across.
	// Zero or less means GOMAXPROCS.
	Workers int
}

// Sigma returns the standard deviation used for radius. The division is
// integral, so radii below 3 give 0.
func Sigma(radius int) float64 {
	return float64(radius / 3)
}

// GaussianKernel returns the normalized (2*radius+1)^2 kernel, indexed
// [dy][dx] with the center at [radius][radius]. It returns nil when the
// truncated sigma is zero, which leaves nothing but the center tap, and
// when radius is outside [0, MaxRadius].
func GaussianKernel(radius int) [][]float64 {
	sigma := Sigma(radius)
	if radius < 0 || radius > MaxRadius || sigma == 0 {
		return nil
	}

	size := 2*radius + 1
	twoSigmaSq := 2 * sigma * sigma
	kernel := make([][]float64, size)
	var sum float64
	for dy := range size {
		kernel[dy] = make([]float64, size)
		for dx := range size {
			ox, oy := float64(dx-radius), float64(dy-radius)
			w := math.Exp(-(ox*ox+oy*oy)/twoSigmaSq) / (math.Pi * twoSigmaSq)
			kernel[dy][dx] = w
			sum += w
		}
	}
	for dy := range size {
		for dx := range size {
			kernel[dy][dx] /= sum
		}
	}
	return kernel
}

// GaussianBlur convolves src with a Gaussian kernel of the given radius
// and returns a new grid of the same size.
//
// A tap is sampled only when its source lies strictly inside the grid,
// i.e. not on the outermost ring. Every other tap, including any that
// falls off the grid or onto the first/last row or column, uses the
// output pixel's own value. Rows are computed in parallel; each pixel is
// summed in a fixed order so the output does not depend on scheduling.
func GaussianBlur(src *bmp.Grid, radius int, opts *BlurOptions) (*bmp.Grid, error) {
	if radius < 0 {
		return nil, errors.New("invalid radius: radius must not be negative")
	}
	if radius > MaxRadius {
		return nil, fmt.Errorf("invalid radius: radius must be at most %d", MaxRadius)
	}

	kernel := GaussianKernel(radius)
	if kernel == nil {
		return src.Clone(), nil
	}

	width, height := src.Width(), src.Height()
	dst, err := bmp.NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	workers := 0
	if opts != nil {
		workers = opts.Workers
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, height)
	chunk := (height + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < height; start += chunk {
		end := min(start+chunk, height)
		g.Go(func() error {
			for y := start; y < end; y++ {
				blurRow(dst.Row(y), src, kernel, radius, y)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}

func blurRow(out []bmp.Pixel, src *bmp.Grid, kernel [][]float64, radius, y int) {
	width, height := src.Width(), src.Height()
	for x := range out {
		center := src.At(y, x)
		var r, g, b, a float64
		for dy, weights := range kernel {
			sy := y + dy - radius
			for dx, w := range weights {
				sx := x + dx - radius
				p := center
				if 0 < sy && sy < height-1 && 0 < sx && sx < width-1 {
					p = src.At(sy, sx)
				}
				r += w * float64(p.R)
				g += w * float64(p.G)
				b += w * float64(p.B)
				a += w * float64(p.A)
			}
		}
		out[x] = bmp.Pixel{
			R: utils.ClampByte(r),
			G: utils.ClampByte(g),
			B: utils.ClampByte(b),
			A: utils.ClampByte(a),
		}
	}
}
