package bmp

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
)

const (
	encodedBitCount = 24
	encodedOffBits  = fileHeaderLen + InfoHeaderSize
)

// EncodeOptions tune the written headers.
type EncodeOptions struct {
	// RecomputeSizes rewrites the file size and image size fields from the
	// grid. By default both are copied from the input headers unchanged.
	RecomputeSizes bool
}

// infoHeader40 is the BITMAPINFOHEADER layout written on encode.
type infoHeader40 struct {
	Size uint32
	CoreFields
	InfoFields
}

// EncodedSizes returns the file size and image size of a 24-bit encoding
// of a width x height grid. It fails with ErrTooLarge when the file size
// does not fit the header's 32-bit field.
func EncodedSizes(width, height int) (fileSize, imageSize uint32, err error) {
	if width <= 0 || height <= 0 {
		return 0, 0, &FormatError{Kind: BadDimensions, Value: int64(min(width, height))}
	}
	stride := uint64(Stride(width, encodedBitCount))
	image := stride * uint64(height)
	if image/uint64(height) != stride || image > math.MaxUint32-encodedOffBits {
		return 0, 0, ErrTooLarge
	}
	return uint32(encodedOffBits + image), uint32(image), nil
}

// Encode writes g as an uncompressed 24-bit BMP with a 40-byte info
// header. Rows are written in grid order, each as BGR triples padded with
// zeros to a 4-byte boundary. The alpha channel is not written, so a
// 32-bit source loses its alpha on the way through.
func Encode(w io.Writer, g *Grid, fh BitmapFileHeader, ih BitmapInfoHeader, opts *EncodeOptions) error {
	width, height := g.Width(), g.Height()
	if width != int(ih.Width) || height != int(ih.Height) {
		return &DimensionError{
			GridWidth: width, GridHeight: height,
			HeaderWidth: int(ih.Width), HeaderHeight: int(ih.Height),
		}
	}

	fh.OffBits = encodedOffBits
	out := infoHeader40{Size: InfoHeaderSize, CoreFields: ih.CoreFields, InfoFields: ih.InfoFields}
	out.Planes = 1
	out.BitCount = encodedBitCount
	out.Compression = CompressionNone
	if opts != nil && opts.RecomputeSizes {
		var err error
		if fh.Size, out.SizeImage, err = EncodedSizes(width, height); err != nil {
			return err
		}
	}

	// Create a buffer (to reduce syscalls)
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, &fh); err != nil {
		return writeErr(err)
	}
	if err := binary.Write(bw, binary.LittleEndian, &out); err != nil {
		return writeErr(err)
	}

	// Padding bytes stay zero; only the pixel part is overwritten per row.
	row := make([]byte, Stride(width, encodedBitCount))
	for y := range height {
		for x, p := range g.Row(y) {
			row[x*3], row[x*3+1], row[x*3+2] = p.B, p.G, p.R
		}
		if _, err := bw.Write(row); err != nil {
			return writeErr(err)
		}
	}

	if err := bw.Flush(); err != nil {
		return writeErr(err)
	}
	return nil
}
