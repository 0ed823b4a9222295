// Adjusts image dimensions, orientation, or structure.
package adjustments

import (
	"fmt"

	"github.com/anas-shakeel/go-bmp/internal/bmp"
)

// Direction is the sense of a quarter turn.
type Direction int

const (
	Left  Direction = iota // counter-clockwise: the right edge becomes the top row
	Right                  // clockwise: the left edge becomes the top row
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Rotate returns a new grid turned a quarter in direction d. Width and
// height are swapped; the source is not modified. Rotating Left then
// Right gives back the original grid. Rotate panics if d is neither Left
// nor Right.
func Rotate(src *bmp.Grid, d Direction) *bmp.Grid {
	oldWidth, oldHeight := src.Width(), src.Height()

	var at func(y, x int) bmp.Pixel
	switch d {
	case Left:
		at = func(y, x int) bmp.Pixel { return src.At(x, oldWidth-1-y) }
	case Right:
		at = func(y, x int) bmp.Pixel { return src.At(oldHeight-1-x, y) }
	default:
		panic(fmt.Sprintf("adjustments: unknown rotation %v", d))
	}

	// Grid sizes were validated when src was built, so this cannot fail.
	dst, _ := bmp.NewGrid(oldHeight, oldWidth)

	for y := range oldWidth {
		row := dst.Row(y)
		for x := range row {
			row[x] = at(y, x)
		}
	}
	return dst
}
