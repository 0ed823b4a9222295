package bmp

import (
	"bytes"
	"io"
	"math"
	"math/bits"
)

// DecodeOptions tune how the pixel array is read.
type DecodeOptions struct {
	// AlignedRows skips the standard padding up to the 4-byte row stride.
	// When false, rows are followed by (width*bytesPerPixel) mod 4 bytes,
	// the layout historical files written by this tool's predecessor expect.
	AlignedRows bool
}

// LinePadding is the historical per-row skip: (width*bytesPerPixel) mod 4.
func LinePadding(width int, bitCount uint16) int {
	return (width * (int(bitCount) / 8)) % 4
}

// Stride is the 4-byte aligned length of a row, padding included.
func Stride(width int, bitCount uint16) int {
	return ((width*int(bitCount) + 31) / 32) * 4
}

// RowPadding returns the number of bytes skipped after each row under opts.
func RowPadding(width int, bitCount uint16, opts *DecodeOptions) int {
	if opts != nil && opts.AlignedRows {
		return Stride(width, bitCount) - width*(int(bitCount)/8)
	}
	return LinePadding(width, bitCount)
}

// BitExtract isolates the bits of sample selected by mask and shifts them
// down to bit 0. A zero mask yields 0.
func BitExtract(sample, mask uint32) uint8 {
	if mask == 0 {
		return 0
	}
	return uint8((sample & mask) >> bits.TrailingZeros32(mask))
}

// DecodePixels reads height rows of width packed little-endian samples
// from r, which must be positioned at the first row. Each channel is
// extracted with its mask. A short stream fails with a Truncated IOError;
// no partial grid is returned.
//
// The pixel bytes are read before the grid is allocated, so a header that
// claims more data than the stream holds fails without a large allocation.
func DecodePixels(r io.Reader, ih *BitmapInfoHeader, m Masks, opts *DecodeOptions) (*Grid, error) {
	width := int(ih.Width)
	height := int(ih.Height)
	if width <= 0 || height <= 0 {
		return nil, &FormatError{Kind: BadDimensions, Value: int64(min(width, height))}
	}
	bytesPerPixel := ih.BytesPerPixel()
	rowLen := width*bytesPerPixel + RowPadding(width, ih.BitCount, opts)

	// No stream can hold more than MaxInt bytes of pixel data.
	if rowLen > math.MaxInt/height {
		return nil, &IOError{Kind: Truncated, Err: io.ErrUnexpectedEOF}
	}
	size := int64(rowLen * height)

	// The buffer grows only as fast as data arrives.
	var data bytes.Buffer
	if _, err := data.ReadFrom(io.LimitReader(r, size)); err != nil {
		return nil, readErr(err)
	}
	if int64(data.Len()) < size {
		return nil, &IOError{Kind: Truncated, Err: io.ErrUnexpectedEOF}
	}

	g := newGrid(width, height)
	buf := data.Bytes()
	for y := range height {
		line := buf[y*rowLen : (y+1)*rowLen]
		row := g.Row(y)
		for x := range row {
			sample := packedSample(line[x*bytesPerPixel : (x+1)*bytesPerPixel])
			row[x] = Pixel{
				R: BitExtract(sample, m.Red),
				G: BitExtract(sample, m.Green),
				B: BitExtract(sample, m.Blue),
				A: BitExtract(sample, m.Alpha),
			}
		}
	}
	return g, nil
}

func packedSample(b []byte) uint32 {
	var s uint32
	for i, v := range b {
		s |= uint32(v) << (8 * i)
	}
	return s
}
