// Go-BMP reads a 16, 24 or 32 bit bitmap, runs it through a pipeline of
// transforms and writes the result as a 24-bit bitmap.
//
// Usage:
//
//	go-bmp [options] <input.bmp> [output.bmp]
//
// The output defaults to <input>_out.bmp next to the input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/anas-shakeel/go-bmp/internal/adjustments"
	"github.com/anas-shakeel/go-bmp/internal/bmp"
	"github.com/anas-shakeel/go-bmp/internal/filters"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("go-bmp: ")

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

// op is one pipeline step. It may modify its input or return a new grid.
type op struct {
	name string
	fn   func(g *bmp.Grid) (*bmp.Grid, error)
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("go-bmp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	ops := fs.String("ops", "rotate-left", "comma-separated pipeline: rotate-left, rotate-right, blur, invert, grayscale, luma, red, green, blue, brightness, contrast, crop")
	var params opParams
	fs.IntVar(&params.radius, "radius", filters.DefaultRadius, "gaussian blur radius")
	fs.IntVar(&params.blur.Workers, "workers", 0, "blur worker goroutines (0=GOMAXPROCS)")
	fs.Float64Var(&params.brightness, "brightness", 1.2, "multiplier for the brightness op")
	fs.Float64Var(&params.contrast, "contrast", 1.5, "factor for the contrast op")
	fs.StringVar(&params.crop, "crop", "", "x,y,width,height region for the crop op")
	aligned := fs.Bool("aligned", true, "skip standard 4-byte row padding when decoding (false: (width*bpp) mod 4)")
	recompute := fs.Bool("recompute", false, "recompute file size and image size on encode")
	info := fs.Bool("info", false, "print metadata and exit")
	preview := fs.Bool("preview", false, "print the result as colored blocks (small images only)")
	verbose := fs.Bool("v", false, "log each stage")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: go-bmp [options] <input.bmp> [output.bmp]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return errors.New("expected an input file and an optional output file")
	}

	logger := log.New(io.Discard, "go-bmp: ", 0)
	if *verbose {
		logger.SetOutput(stderr)
	}

	pipeline, err := parseOps(*ops, params)
	if err != nil {
		return err
	}

	inputPath := fs.Arg(0)
	outputPath := defaultOutput(inputPath)
	if fs.NArg() == 2 {
		outputPath = fs.Arg(1)
	}

	bitmap, err := bmp.ReadBitmap(inputPath, &bmp.DecodeOptions{AlignedRows: *aligned})
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}
	logger.Printf("decoded %s: %dx%d, %d bits, header %d bytes",
		inputPath, bitmap.BIHeader.Width, bitmap.BIHeader.Height, bitmap.BIHeader.BitCount, bitmap.BIHeader.Size)

	if *info {
		bitmap.PrintMetadata(stdout)
		return nil
	}

	for _, step := range pipeline {
		g, err := step.fn(bitmap.Pixels)
		if err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
		bitmap.SetPixels(g)
		logger.Printf("%s: %dx%d", step.name, g.Width(), g.Height())
	}

	if *preview {
		bitmap.PrintBitmap(stdout)
	}

	if err := bitmap.Save(outputPath, &bmp.EncodeOptions{RecomputeSizes: *recompute}); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	logger.Printf("wrote %s", outputPath)
	return nil
}

// opParams carries the flag values ops are configured with.
type opParams struct {
	radius     int
	blur       filters.BlurOptions
	brightness float64
	contrast   float64
	crop       string
}

func parseOps(list string, params opParams) ([]op, error) {
	var pipeline []op
	for name := range strings.SplitSeq(list, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		var fn func(g *bmp.Grid) (*bmp.Grid, error)
		switch name {
		case "rotate-left":
			fn = func(g *bmp.Grid) (*bmp.Grid, error) { return adjustments.Rotate(g, adjustments.Left), nil }
		case "rotate-right":
			fn = func(g *bmp.Grid) (*bmp.Grid, error) { return adjustments.Rotate(g, adjustments.Right), nil }
		case "blur":
			if params.radius < 0 {
				return nil, fmt.Errorf("blur: radius %d must not be negative", params.radius)
			}
			if params.radius > filters.MaxRadius {
				return nil, fmt.Errorf("blur: radius %d exceeds %d", params.radius, filters.MaxRadius)
			}
			fn = func(g *bmp.Grid) (*bmp.Grid, error) { return filters.GaussianBlur(g, params.radius, &params.blur) }
		case "invert":
			fn = inPlace(filters.Invert)
		case "grayscale":
			fn = inPlace(filters.Grayscale)
		case "luma":
			fn = inPlace(filters.GrayscaleLuma)
		case "red", "green", "blue":
			channel := name
			fn = func(g *bmp.Grid) (*bmp.Grid, error) { return g, filters.Channel(g, channel) }
		case "brightness":
			fn = func(g *bmp.Grid) (*bmp.Grid, error) { return g, filters.Brightness(g, params.brightness, "multiply") }
		case "contrast":
			fn = inPlace(func(g *bmp.Grid) { filters.Contrast(g, params.contrast) })
		case "crop":
			var x, y, w, h int
			if _, err := fmt.Sscanf(params.crop, "%d,%d,%d,%d", &x, &y, &w, &h); err != nil {
				return nil, fmt.Errorf("crop: bad region %q: want x,y,width,height", params.crop)
			}
			fn = func(g *bmp.Grid) (*bmp.Grid, error) { return adjustments.Crop(g, x, y, w, h) }
		default:
			return nil, fmt.Errorf("unknown op %q", name)
		}
		pipeline = append(pipeline, op{name: name, fn: fn})
	}
	return pipeline, nil
}

func inPlace(f func(g *bmp.Grid)) func(g *bmp.Grid) (*bmp.Grid, error) {
	return func(g *bmp.Grid) (*bmp.Grid, error) {
		f(g)
		return g, nil
	}
}

// defaultOutput names the result after the input: photo.bmp -> photo_out.bmp.
func defaultOutput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "_out.bmp"
}
