// BMP-specific structs and header parsing
package bmp

import (
	"encoding/binary"
	"io"
)

const (
	fileHeaderLen = 14
	signature     = 0x4d42 // "BM" read as a little-endian uint16

	CompressionNone      = 0
	CompressionBitfields = 3
)

// Info header sizes, one per historical version.
const (
	CoreHeaderSize = 12
	InfoHeaderSize = 40
	V2HeaderSize   = 52
	V3HeaderSize   = 56
	V4HeaderSize   = 108
	V5HeaderSize   = 124
)

// The BitmapFileHeader structure contains information about the type, size,
// and layout of a file that contains a DIB [device-independent bitmap].
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader

type BitmapFileHeader struct {
	Type      [2]byte // The file type: must be 0x4d42 (ASCII string "BM").
	Size      uint32  // The size, in bytes, of the bitmap file.
	Reserved1 uint16  // Reserved; must be zero.
	Reserved2 uint16  // Reserved; must be zero.
	OffBits   uint32  // Bitmap File Offset (In bytes) to Pixel Arrays
}

// Each tier below is present when the info header size reaches it.

type CoreFields struct {
	Width    int32  // The width of the bitmap, in pixels.
	Height   int32  // The height of the bitmap, in pixels
	Planes   uint16 // The number of planes for the target device.
	BitCount uint16 // The number of bits-per-pixel.
}

type InfoFields struct {
	Compression     uint32 // The type of compression
	SizeImage       uint32 // The size of the image (in bytes).
	XPixelsPerM     int32  // The horizontal resolution, in pixels-per-meter.
	YPixelsPerM     int32  // The vertical resolution, in pixels-per-meter.
	ColorsUsed      uint32 // Number of color indexes that are actually used by bitmap.
	ColorsImportant uint32 // Number of color indexes required for displaying the bitmap.
}

type RGBMaskFields struct {
	RedMask, GreenMask, BlueMask uint32
}

type AlphaMaskFields struct {
	AlphaMask uint32
}

type ColorSpaceFields struct {
	CSType     uint32
	Endpoints  [9]int32 // CIEXYZTRIPLE in 2.30 fixed point
	GammaRed   uint32
	GammaGreen uint32
	GammaBlue  uint32
}

type ProfileFields struct {
	Intent      uint32
	ProfileData uint32 // offset from the start of the info header
	ProfileSize uint32
	Reserved    uint32
}

// The BitmapInfoHeader structure contains information about the
// dimensions and color format of DIB [device-independent bitmap].
// Tiers beyond Size are zero when the header is too short to carry them.

type BitmapInfoHeader struct {
	Size uint32 // The number of bytes required by the structure.
	CoreFields
	InfoFields
	RGBMaskFields
	AlphaMaskFields
	ColorSpaceFields
	ProfileFields
}

// Masks are the effective channel bitmasks used to unpack samples.
type Masks struct {
	Red, Green, Blue, Alpha uint32
}

// Header is everything read ahead of the pixel array.
type Header struct {
	File  BitmapFileHeader
	Info  BitmapInfoHeader
	Masks Masks

	n int64 // bytes consumed from the source
}

// Len returns the number of bytes ParseHeader consumed.
func (h *Header) Len() int64 { return h.n }

// ColorsCount is the number of channels a sample is split into for default masks.
func (ih *BitmapInfoHeader) ColorsCount() int {
	return max(3, int(ih.BitCount)/8)
}

func (ih *BitmapInfoHeader) BitsOnColor() int {
	return int(ih.BitCount) / ih.ColorsCount()
}

func (ih *BitmapInfoHeader) MaskValue() uint32 {
	return 1<<ih.BitsOnColor() - 1
}

// BytesPerPixel is the packed sample width on disk.
func (ih *BitmapInfoHeader) BytesPerPixel() int {
	return int(ih.BitCount) / 8
}

func supportedHeaderSize(size uint32) bool {
	switch size {
	case CoreHeaderSize, InfoHeaderSize, V2HeaderSize, V3HeaderSize, V4HeaderSize, V5HeaderSize:
		return true
	}
	return false
}

// ParseHeader reads the file header and the versioned info header from r
// and derives the channel masks. Checks run in order: signature, info
// header size, bit count, compression, dimensions. The first failure wins.
func ParseHeader(r io.Reader) (*Header, error) {
	h := &Header{}

	// Read File Header
	if err := binary.Read(r, binary.LittleEndian, &h.File); err != nil {
		return nil, readErr(err)
	}
	h.n = fileHeaderLen

	if sig := uint16(h.File.Type[0]) | uint16(h.File.Type[1])<<8; sig != signature {
		return nil, &FormatError{Kind: BadSignature, Value: int64(sig)}
	}

	// READ Info Header OR (more commonly) DIB Header!
	ih := &h.Info
	if err := binary.Read(r, binary.LittleEndian, &ih.Size); err != nil {
		return nil, readErr(err)
	}
	h.n += 4

	// Sizes in between versions are not read partially.
	if !supportedHeaderSize(ih.Size) {
		return nil, &FormatError{Kind: UnsupportedHeaderSize, Value: int64(ih.Size)}
	}

	tiers := []struct {
		min  uint32
		data any
	}{
		{CoreHeaderSize, &ih.CoreFields},
		{InfoHeaderSize, &ih.InfoFields},
		{V2HeaderSize, &ih.RGBMaskFields},
		{V3HeaderSize, &ih.AlphaMaskFields},
		{V4HeaderSize, &ih.ColorSpaceFields},
		{V5HeaderSize, &ih.ProfileFields},
	}
	for _, tier := range tiers {
		if ih.Size < tier.min {
			break
		}
		if err := binary.Read(r, binary.LittleEndian, tier.data); err != nil {
			return nil, readErr(err)
		}
		h.n += int64(binary.Size(tier.data))
	}

	switch ih.BitCount {
	case 16, 24, 32:
	default:
		return nil, &FormatError{Kind: UnsupportedBitCount, Value: int64(ih.BitCount)}
	}

	if ih.Compression != CompressionNone && ih.Compression != CompressionBitfields {
		return nil, &FormatError{Kind: UnsupportedCompression, Value: int64(ih.Compression)}
	}

	if ih.Width <= 0 {
		return nil, &FormatError{Kind: BadDimensions, Value: int64(ih.Width)}
	} else if ih.Height <= 0 {
		return nil, &FormatError{Kind: BadDimensions, Value: int64(ih.Height)}
	}

	h.Masks = DefaultMasks(ih)
	return h, nil
}

// DefaultMasks returns the masks to decode with. A single zero among the
// red, green and blue masks replaces all three with the packed defaults
// for the bit depth. Alpha gets its default only when the header is too
// short to declare one.
func DefaultMasks(ih *BitmapInfoHeader) Masks {
	m := Masks{
		Red:   ih.RedMask,
		Green: ih.GreenMask,
		Blue:  ih.BlueMask,
		Alpha: ih.AlphaMask,
	}

	bits := ih.BitsOnColor()
	value := ih.MaskValue()
	if m.Red == 0 || m.Green == 0 || m.Blue == 0 {
		m.Red = value << (bits * 2)
		m.Green = value << bits
		m.Blue = value
	}
	if ih.Size < V3HeaderSize {
		m.Alpha = value << (bits * 3)
	}
	return m
}
