package bmp

import (
	"bytes"
	"errors"
	"testing"
)

func TestParseHeaderVersions(t *testing.T) {
	tests := []struct {
		infoSize uint32
		wantLen  int64
	}{
		// The core tier is read with 32-bit dimensions, so it runs 4 bytes past its declared size.
		{CoreHeaderSize, 30},
		{InfoHeaderSize, 54},
		{V2HeaderSize, 66},
		{V3HeaderSize, 70},
		{V4HeaderSize, 122},
		{V5HeaderSize, 138},
	}
	for _, tt := range tests {
		f := fixture{infoSize: tt.infoSize, width: 3, height: 2, bitCount: 24}
		h, err := ParseHeader(bytes.NewReader(f.bytes(t)))
		if err != nil {
			t.Fatalf("size %d: %v", tt.infoSize, err)
		}
		if h.Len() != tt.wantLen {
			t.Errorf("size %d: consumed %d bytes, want %d", tt.infoSize, h.Len(), tt.wantLen)
		}
		if h.Info.Width != 3 || h.Info.Height != 2 || h.Info.BitCount != 24 {
			t.Errorf("size %d: got %dx%d@%d", tt.infoSize, h.Info.Width, h.Info.Height, h.Info.BitCount)
		}
	}
}

func TestParseHeaderV5Fields(t *testing.T) {
	f := fixture{infoSize: V5HeaderSize, width: 1, height: 1, bitCount: 32, compression: CompressionBitfields,
		masks: [4]uint32{0xff0000, 0xff00, 0xff, 0xff000000}}
	h, err := ParseHeader(bytes.NewReader(f.bytes(t)))
	if err != nil {
		t.Fatal(err)
	}
	if h.Info.CSType != 0x73524742 {
		t.Errorf("CSType = %#x", h.Info.CSType)
	}
	if h.Info.Intent != 4 {
		t.Errorf("Intent = %d", h.Info.Intent)
	}
	want := Masks{Red: 0xff0000, Green: 0xff00, Blue: 0xff, Alpha: 0xff000000}
	if h.Masks != want {
		t.Errorf("masks = %+v, want %+v", h.Masks, want)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	tests := []struct {
		name     string
		f        fixture
		sentinel error
		kind     FormatKind
	}{
		{"signature", fixture{sig: "MB", infoSize: 40, width: 1, height: 1, bitCount: 24}, ErrBadSignature, BadSignature},
		{"signature wins over size", fixture{sig: "XX", infoSize: 44, bitCount: 8}, ErrBadSignature, BadSignature},
		{"intermediate size", fixture{infoSize: 44, width: 1, height: 1, bitCount: 24}, ErrUnsupportedHeaderSize, UnsupportedHeaderSize},
		{"size wins over bit count", fixture{infoSize: 64, width: 1, height: 1, bitCount: 8}, ErrUnsupportedHeaderSize, UnsupportedHeaderSize},
		{"bit count 8", fixture{infoSize: 40, width: 1, height: 1, bitCount: 8}, ErrUnsupportedBitCount, UnsupportedBitCount},
		{"bit count wins over compression", fixture{infoSize: 40, width: 1, height: 1, bitCount: 4, compression: 2}, ErrUnsupportedBitCount, UnsupportedBitCount},
		{"rle8", fixture{infoSize: 40, width: 1, height: 1, bitCount: 24, compression: 1}, ErrUnsupportedCompression, UnsupportedCompression},
		{"zero width", fixture{infoSize: 40, width: 0, height: 1, bitCount: 24}, ErrBadDimensions, BadDimensions},
		{"negative height", fixture{infoSize: 40, width: 1, height: -1, bitCount: 24}, ErrBadDimensions, BadDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(bytes.NewReader(tt.f.bytes(t)))
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("err = %v, want %v", err, tt.sentinel)
			}
			var fe *FormatError
			if !errors.As(err, &fe) || fe.Kind != tt.kind {
				t.Fatalf("err = %#v, want FormatError{%s}", err, tt.kind)
			}
		})
	}
}

func TestParseHeaderTruncated(t *testing.T) {
	full := fixture{infoSize: V4HeaderSize, width: 1, height: 1, bitCount: 24}.bytes(t)
	for _, n := range []int{0, 5, 14, 16, 30, 60, 121} {
		_, err := ParseHeader(bytes.NewReader(full[:n]))
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("%d bytes: err = %v, want truncated", n, err)
		}
		var ioe *IOError
		if !errors.As(err, &ioe) || ioe.Kind != Truncated {
			t.Errorf("%d bytes: err = %#v, want IOError{Truncated}", n, err)
		}
	}
}

func TestDefaultMasks(t *testing.T) {
	tests := []struct {
		name string
		f    fixture
		want Masks
	}{
		{
			"16 bit without masks",
			fixture{infoSize: 40, width: 1, height: 1, bitCount: 16},
			Masks{Red: 0x7c00, Green: 0x3e0, Blue: 0x1f, Alpha: 0xf8000},
		},
		{
			"24 bit without masks",
			fixture{infoSize: 40, width: 1, height: 1, bitCount: 24},
			Masks{Red: 0xff0000, Green: 0xff00, Blue: 0xff, Alpha: 0xff000000},
		},
		{
			"32 bit core header",
			fixture{infoSize: 12, width: 1, height: 1, bitCount: 32},
			Masks{Red: 0xff0000, Green: 0xff00, Blue: 0xff, Alpha: 0xff000000},
		},
		{
			// One zero mask resets the whole triple, not only the missing channel.
			"one zero mask resets all three",
			fixture{infoSize: 52, width: 1, height: 1, bitCount: 24, compression: CompressionBitfields,
				masks: [4]uint32{0, 0x00ff0000, 0x000000ff}},
			Masks{Red: 0xff0000, Green: 0xff00, Blue: 0xff, Alpha: 0xff000000},
		},
		{
			"explicit 565 kept",
			fixture{infoSize: 56, width: 1, height: 1, bitCount: 16, compression: CompressionBitfields,
				masks: [4]uint32{0xf800, 0x7e0, 0x1f, 0}},
			Masks{Red: 0xf800, Green: 0x7e0, Blue: 0x1f, Alpha: 0},
		},
		{
			"declared alpha survives rgb reset",
			fixture{infoSize: 56, width: 1, height: 1, bitCount: 32, compression: CompressionBitfields,
				masks: [4]uint32{0xff, 0, 0xff0000, 0xff000000}},
			Masks{Red: 0xff0000, Green: 0xff00, Blue: 0xff, Alpha: 0xff000000},
		},
		{
			"reordered channels kept",
			fixture{infoSize: 108, width: 1, height: 1, bitCount: 32, compression: CompressionBitfields,
				masks: [4]uint32{0xff, 0xff00, 0xff0000, 0}},
			Masks{Red: 0xff, Green: 0xff00, Blue: 0xff0000, Alpha: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHeader(bytes.NewReader(tt.f.bytes(t)))
			if err != nil {
				t.Fatal(err)
			}
			if h.Masks != tt.want {
				t.Errorf("masks = %#v, want %#v", h.Masks, tt.want)
			}
		})
	}
}

func TestDerivedValues(t *testing.T) {
	tests := []struct {
		bitCount     uint16
		colors, bits int
		maskValue    uint32
	}{
		{16, 3, 5, 0x1f},
		{24, 3, 8, 0xff},
		{32, 4, 8, 0xff},
	}
	for _, tt := range tests {
		ih := BitmapInfoHeader{}
		ih.BitCount = tt.bitCount
		if got := ih.ColorsCount(); got != tt.colors {
			t.Errorf("%d bit: ColorsCount = %d, want %d", tt.bitCount, got, tt.colors)
		}
		if got := ih.BitsOnColor(); got != tt.bits {
			t.Errorf("%d bit: BitsOnColor = %d, want %d", tt.bitCount, got, tt.bits)
		}
		if got := ih.MaskValue(); got != tt.maskValue {
			t.Errorf("%d bit: MaskValue = %#x, want %#x", tt.bitCount, got, tt.maskValue)
		}
	}
}
