// bmp package decodes and encodes Windows bitmaps (16, 24 and 32 bit, uncompressed or bitfields)
package bmp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/anas-shakeel/go-bmp/internal/utils"
)

// BitmapImage ties a decoded pixel grid to the headers it was read with.
type BitmapImage struct {
	Filename string
	BFHeader *BitmapFileHeader
	BIHeader *BitmapInfoHeader
	Masks    Masks
	Pixels   *Grid
}

// Creates and returns a bitmap image (24 bit uncompressed)
func CreateBitmap(width, height int) (*BitmapImage, error) {
	fileSize, sizeImage, err := EncodedSizes(width, height)
	if err != nil {
		return nil, err
	}
	pixels, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	bfh := BitmapFileHeader{Type: [2]byte{0x42, 0x4d}, OffBits: encodedOffBits, Size: fileSize}
	bih := BitmapInfoHeader{Size: InfoHeaderSize}
	bih.Width = int32(width)
	bih.Height = int32(height)
	bih.Planes = 1
	bih.BitCount = encodedBitCount
	bih.SizeImage = sizeImage

	return &BitmapImage{
		BFHeader: &bfh,
		BIHeader: &bih,
		Masks:    DefaultMasks(&bih),
		Pixels:   pixels,
	}, nil
}

// Decode reads a whole bitmap from r. Bytes between the end of the headers
// and the pixel data offset are skipped; an offset that points inside the
// headers is ignored and rows are read straight after them.
func Decode(r io.Reader, opts *DecodeOptions) (*BitmapImage, error) {
	h, err := ParseHeader(r)
	if err != nil {
		return nil, err
	}

	if gap := int64(h.File.OffBits) - h.Len(); gap > 0 {
		if _, err := io.CopyN(io.Discard, r, gap); err != nil {
			return nil, readErr(err)
		}
	}

	pixels, err := DecodePixels(r, &h.Info, h.Masks, opts)
	if err != nil {
		return nil, err
	}

	return &BitmapImage{
		BFHeader: &h.File,
		BIHeader: &h.Info,
		Masks:    h.Masks,
		Pixels:   pixels,
	}, nil
}

// Reads a Bitmap file
func ReadBitmap(filename string, opts *DecodeOptions) (*BitmapImage, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &IOError{Kind: OpenFailed, Err: err}
	}
	defer file.Close()

	b, err := Decode(bufio.NewReader(file), opts)
	if err != nil {
		return nil, err
	}
	b.Filename = filename
	return b, nil
}

// Encode writes the bitmap as 24-bit BMP to w.
func (b *BitmapImage) Encode(w io.Writer, opts *EncodeOptions) error {
	return Encode(w, b.Pixels, *b.BFHeader, *b.BIHeader, opts)
}

// Saves the bitmap image onto local disk
func (b *BitmapImage) Save(filename string, opts *EncodeOptions) error {
	newBitmap, err := os.Create(filename)
	if err != nil {
		return &IOError{Kind: OpenFailed, Err: err}
	}

	if err := b.Encode(newBitmap, opts); err != nil {
		newBitmap.Close()
		return err
	}
	if err := newBitmap.Close(); err != nil {
		return writeErr(err)
	}
	return nil
}

// Returns a Copy of the bitmap image
func (b *BitmapImage) Copy() *BitmapImage {
	bfh := *b.BFHeader
	bih := *b.BIHeader
	return &BitmapImage{
		Filename: b.Filename,
		BFHeader: &bfh,
		BIHeader: &bih,
		Masks:    b.Masks,
		Pixels:   b.Pixels.Clone(),
	}
}

// SetPixels replaces the grid (e.g. with a transform result) and syncs the header dimensions.
func (b *BitmapImage) SetPixels(g *Grid) {
	b.Pixels = g
	b.UpdateMeta()
}

// Updates the bitmap dimensions (based on pixels). File size and image
// size are left alone; Encode recomputes them only when asked to.
func (b *BitmapImage) UpdateMeta() {
	b.BIHeader.Width = int32(b.Pixels.Width())
	b.BIHeader.Height = int32(b.Pixels.Height())
}

// Print the bitmap in terminal. Use for small images only
func (b *BitmapImage) PrintBitmap(w io.Writer) {
	for y := range b.Pixels.Height() {
		for _, pixel := range b.Pixels.Row(y) {
			fmt.Fprint(w, utils.ColoredBlock("  ", int(pixel.R), int(pixel.G), int(pixel.B)))
		}
		fmt.Fprintln(w)
	}
}

// Print the Metadata bitmap in terminal. (in human-readable format)
func (b *BitmapImage) PrintMetadata(w io.Writer) {
	fmt.Fprintf(w, "Filename: \t%v\n", b.Filename)
	fmt.Fprintf(w, "Filesize: \t%v bytes\n", b.BFHeader.Size)
	fmt.Fprintf(w, "HeaderSize: \t%v bytes\n", b.BIHeader.Size)
	fmt.Fprintf(w, "Width: \t\t%v px\n", b.BIHeader.Width)
	fmt.Fprintf(w, "Height: \t%v px\n", b.BIHeader.Height)
	fmt.Fprintf(w, "BitCount: \t%vbits\n", b.BIHeader.BitCount)
	fmt.Fprintf(w, "Compression: \t%v\n", b.BIHeader.Compression)
	fmt.Fprintf(w, "PixelOffset: \t%v bytes\n", b.BFHeader.OffBits)
	fmt.Fprintf(w, "PixelCount: \t%v pixels\n", int(b.BIHeader.Width)*int(b.BIHeader.Height))
	fmt.Fprintf(w, "Masks: \t\tR=%#08x G=%#08x B=%#08x A=%#08x\n", b.Masks.Red, b.Masks.Green, b.Masks.Blue, b.Masks.Alpha)
	fmt.Fprintf(w, "Stride: \t%v bytes\n", Stride(int(b.BIHeader.Width), b.BIHeader.BitCount))
	fmt.Fprintf(w, "Padding: \t%v bytes\n", LinePadding(int(b.BIHeader.Width), b.BIHeader.BitCount))
}
