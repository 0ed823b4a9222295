package bmp

import (
	"errors"
	"fmt"
	"io"
)

// FormatKind identifies why a header was rejected.
type FormatKind int

const (
	BadSignature FormatKind = iota + 1
	UnsupportedHeaderSize
	UnsupportedBitCount
	UnsupportedCompression
	BadDimensions
)

func (k FormatKind) String() string {
	switch k {
	case BadSignature:
		return "bad signature"
	case UnsupportedHeaderSize:
		return "unsupported header size"
	case UnsupportedBitCount:
		return "unsupported bit count"
	case UnsupportedCompression:
		return "unsupported compression"
	case BadDimensions:
		return "bad dimensions"
	}
	return fmt.Sprintf("FormatKind(%d)", int(k))
}

// IOKind identifies the class of an I/O failure.
type IOKind int

const (
	Truncated IOKind = iota + 1
	ReadFailed
	WriteFailed
	OpenFailed
)

func (k IOKind) String() string {
	switch k {
	case Truncated:
		return "truncated"
	case ReadFailed:
		return "read failed"
	case WriteFailed:
		return "write failed"
	case OpenFailed:
		return "open failed"
	}
	return fmt.Sprintf("IOKind(%d)", int(k))
}

// Sentinels for errors.Is. Each typed error below matches the sentinel of its kind.
var (
	ErrBadSignature           = errors.New("bmp: bad signature")
	ErrUnsupportedHeaderSize  = errors.New("bmp: unsupported header size")
	ErrUnsupportedBitCount    = errors.New("bmp: unsupported bit count")
	ErrUnsupportedCompression = errors.New("bmp: unsupported compression")
	ErrBadDimensions          = errors.New("bmp: bad dimensions")
	ErrTruncated              = errors.New("bmp: truncated stream")
	ErrDimensionMismatch      = errors.New("bmp: grid does not match header")
	ErrTooLarge               = errors.New("bmp: image too large for 32-bit size fields")
)

// A FormatError reports that the input is not a BMP this package supports.
type FormatError struct {
	Kind  FormatKind
	Value int64 // the offending field value
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("bmp: invalid format: %s (%d)", e.Kind, e.Value)
}

func (e *FormatError) Is(target error) bool {
	switch target {
	case ErrBadSignature:
		return e.Kind == BadSignature
	case ErrUnsupportedHeaderSize:
		return e.Kind == UnsupportedHeaderSize
	case ErrUnsupportedBitCount:
		return e.Kind == UnsupportedBitCount
	case ErrUnsupportedCompression:
		return e.Kind == UnsupportedCompression
	case ErrBadDimensions:
		return e.Kind == BadDimensions
	}
	return false
}

// An IOError reports a failed or short read/write. Err is the underlying cause.
type IOError struct {
	Kind IOKind
	Err  error
}

func (e *IOError) Error() string {
	if e.Err == nil {
		return "bmp: " + e.Kind.String()
	}
	return fmt.Sprintf("bmp: %s: %v", e.Kind, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool {
	return target == ErrTruncated && e.Kind == Truncated
}

// A DimensionError reports a grid whose size disagrees with the header it is encoded under.
type DimensionError struct {
	GridWidth, GridHeight     int
	HeaderWidth, HeaderHeight int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("bmp: grid is %dx%d but header says %dx%d",
		e.GridWidth, e.GridHeight, e.HeaderWidth, e.HeaderHeight)
}

func (e *DimensionError) Is(target error) bool { return target == ErrDimensionMismatch }

// readErr classifies an error from a read. Short reads become Truncated.
func readErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &IOError{Kind: Truncated, Err: io.ErrUnexpectedEOF}
	}
	return &IOError{Kind: ReadFailed, Err: err}
}

func writeErr(err error) error {
	return &IOError{Kind: WriteFailed, Err: err}
}
