package bmp

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// fixture describes a hand-built BMP stream.
type fixture struct {
	sig         string // defaults to "BM"
	fileSize    uint32
	infoSize    uint32
	width       int32
	height      int32
	bitCount    uint16
	compression uint32
	masks       [4]uint32 // red, green, blue, alpha; written when the header reaches their tier
	offBits     uint32    // 0 means straight after the headers
	gap         []byte    // bytes between headers and pixels
	pixels      []byte
}

func (f fixture) bytes(t *testing.T) []byte {
	t.Helper()

	var info bytes.Buffer
	le := func(v any) {
		if err := binary.Write(&info, binary.LittleEndian, v); err != nil {
			t.Fatal(err)
		}
	}
	le(f.infoSize)
	if f.infoSize >= CoreHeaderSize {
		le(CoreFields{Width: f.width, Height: f.height, Planes: 1, BitCount: f.bitCount})
	}
	if f.infoSize >= InfoHeaderSize {
		le(InfoFields{Compression: f.compression})
	}
	if f.infoSize >= V2HeaderSize {
		le(f.masks[:3])
	}
	if f.infoSize >= V3HeaderSize {
		le(f.masks[3])
	}
	if f.infoSize >= V4HeaderSize {
		le(ColorSpaceFields{CSType: 0x73524742}) // "sRGB"
	}
	if f.infoSize >= V5HeaderSize {
		le(ProfileFields{Intent: 4})
	}
	if !supportedHeaderSize(f.infoSize) {
		// Enough filler for any read that might wrongly continue.
		info.Write(make([]byte, 64))
	}

	sig := f.sig
	if sig == "" {
		sig = "BM"
	}
	offBits := f.offBits
	if offBits == 0 {
		offBits = uint32(fileHeaderLen + info.Len() + len(f.gap))
	}

	var out bytes.Buffer
	fh := BitmapFileHeader{Size: f.fileSize, OffBits: offBits}
	copy(fh.Type[:], sig)
	if err := binary.Write(&out, binary.LittleEndian, &fh); err != nil {
		t.Fatal(err)
	}
	out.Write(info.Bytes())
	out.Write(f.gap)
	out.Write(f.pixels)
	return out.Bytes()
}

// bgrRows packs rows of pixels as 24-bit BGR with the given padding after each row.
func bgrRows(rows [][]Pixel, padding int) []byte {
	var b []byte
	for _, row := range rows {
		for _, p := range row {
			b = append(b, p.B, p.G, p.R)
		}
		b = append(b, make([]byte, padding)...)
	}
	return b
}

var (
	red   = Pixel{R: 0xff}
	green = Pixel{G: 0xff}
	blue  = Pixel{B: 0xff}
	white = Pixel{R: 0xff, G: 0xff, B: 0xff}
)

func mustGrid(t *testing.T, rows [][]Pixel) *Grid {
	t.Helper()
	g, err := GridFromRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	return g
}
