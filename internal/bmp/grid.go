package bmp

import (
	"errors"
	"image"
	"image/color"
)

// Pixel holds four 8-bit channel samples. A is zero when the source had no alpha bits.
type Pixel struct {
	R, G, B, A byte
}

// Grid is a row-major pixel container. Row 0 is the first row stored on
// disk; no orientation is applied.
type Grid struct {
	width, height int
	pix           []Pixel
}

// NewGrid allocates a zeroed width x height grid.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 {
		return nil, errors.New("width must be greater than 0")
	} else if height <= 0 {
		return nil, errors.New("height must be greater than 0")
	}
	return newGrid(width, height), nil
}

func newGrid(width, height int) *Grid {
	return &Grid{width: width, height: height, pix: make([]Pixel, width*height)}
}

// GridFromRows builds a grid from equally sized rows. It is mostly useful in tests.
func GridFromRows(rows [][]Pixel) (*Grid, error) {
	if len(rows) == 0 {
		return nil, errors.New("height must be greater than 0")
	}
	g, err := NewGrid(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.width {
			return nil, errors.New("rows must all have the same width")
		}
		copy(g.Row(y), row)
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// At returns the pixel at row y, column x.
func (g *Grid) At(y, x int) Pixel {
	return g.pix[g.offset(y, x)]
}

func (g *Grid) Set(y, x int, p Pixel) {
	g.pix[g.offset(y, x)] = p
}

// Row returns row y. The slice aliases the grid.
func (g *Grid) Row(y int) []Pixel {
	if y < 0 || y >= g.height {
		panic("bmp: row index out of range")
	}
	return g.pix[y*g.width : (y+1)*g.width : (y+1)*g.width]
}

func (g *Grid) offset(y, x int) int {
	if y < 0 || y >= g.height || x < 0 || x >= g.width {
		panic("bmp: pixel index out of range")
	}
	return y*g.width + x
}

// Returns a Copy of the grid
func (g *Grid) Clone() *Grid {
	c := newGrid(g.width, g.height)
	copy(c.pix, g.pix)
	return c
}

// Equal reports whether both grids have the same size and pixels.
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.pix {
		if g.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Rows copies the grid out as nested slices.
func (g *Grid) Rows() [][]Pixel {
	rows := make([][]Pixel, g.height)
	for y := range g.height {
		rows[y] = append([]Pixel(nil), g.Row(y)...)
	}
	return rows
}

// ToNRGBA converts the grid to an image with the same row order.
// A zero alpha sample is treated as opaque when opaque is set.
func (g *Grid) ToNRGBA(opaque bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	for y := range g.height {
		for x, p := range g.Row(y) {
			a := p.A
			if opaque {
				a = 0xff
			}
			img.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: a})
		}
	}
	return img
}

// GridFromImage copies any image into a grid, keeping the image's row order.
func GridFromImage(img image.Image) (*Grid, error) {
	b := img.Bounds()
	g, err := NewGrid(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := range g.height {
		row := g.Row(y)
		for x := range row {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			row[x] = Pixel{R: c.R, G: c.G, B: c.B, A: c.A}
		}
	}
	return g, nil
}
