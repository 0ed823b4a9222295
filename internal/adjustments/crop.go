package adjustments

import (
	"errors"

	"github.com/anas-shakeel/go-bmp/internal/bmp"
)

// Crops a region in the grid (0,0 is the first pixel of the first stored row)
func Crop(src *bmp.Grid, x, y, width, height int) (*bmp.Grid, error) {
	// Validate bounds
	if x < 0 || y < 0 {
		return nil, errors.New("invalid bounds: negative origin")
	} else if width+x > src.Width() {
		return nil, errors.New("invalid bounds: width out of bounds")
	} else if height+y > src.Height() {
		return nil, errors.New("invalid bounds: height out of bounds")
	}

	dst, err := bmp.NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	// Crop the grid
	for row := range height { // Height | Rows
		copy(dst.Row(row), src.Row(row + y)[x : x+width])
	}
	return dst, nil
}
