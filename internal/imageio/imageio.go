// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imageio decodes bitmap input files and encodes them as JPEG or PNG.
// Decoding uses golang.org/x/image/bmp, falling back to sergeymakinen/go-bmp
// for layouts it does not read (16 bpp, bit fields, RLE4/RLE8); encoding
// uses disintegration/imaging.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	gobmp "github.com/sergeymakinen/go-bmp"
	"golang.org/x/image/bmp"

	"github.com/pdiddy/brees-image-converter/pkg/types"
)

// EncodeOptions controls output encoding.
type EncodeOptions struct {
	// Quality is the JPEG quality (1-100). It is passed to the PNG encoder
	// as well, which ignores it.
	Quality int

	// PNGCompression selects the PNG compression level.
	PNGCompression types.PNGCompression
}

// DefaultEncodeOptions returns quality 100 with default PNG compression.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Quality:        types.DefaultQuality,
		PNGCompression: types.PNGCompressionDefault,
	}
}

// OptionsFromConfig extracts the encoder settings from cfg.
func OptionsFromConfig(cfg types.Config) EncodeOptions {
	return EncodeOptions{
		Quality:        cfg.Quality,
		PNGCompression: cfg.PNGCompression,
	}
}

// Decode opens path and decodes it as a bitmap. The file is closed before
// Decode returns. Any failure is a *DecodeError.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if errors.Is(err, bmp.ErrUnsupported) {
		img, err = decodeFallback(f)
	}
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// decodeFallback rereads f from the start with the go-bmp decoder.
func decodeFallback(f io.ReadSeeker) (image.Image, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return gobmp.Decode(f)
}

// Encode writes img to dest in the given format. dest must not exist; an
// existing file is never overwritten. On failure the partially written file
// is removed and a *EncodeError is returned. An unknown format returns a
// *FormatError without touching the filesystem.
func Encode(img image.Image, format types.Format, dest string, opts EncodeOptions) (err error) {
	target, encOpts, err := encoderFor(format, opts)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return &EncodeError{Path: dest, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &EncodeError{Path: dest, Err: cerr}
		}
		if err != nil {
			os.Remove(dest)
		}
	}()

	if err := imaging.Encode(f, img, target, encOpts...); err != nil {
		return &EncodeError{Path: dest, Err: err}
	}
	return nil
}

func encoderFor(format types.Format, opts EncodeOptions) (imaging.Format, []imaging.EncodeOption, error) {
	level, err := pngLevel(opts.PNGCompression)
	if err != nil {
		return 0, nil, err
	}
	encOpts := []imaging.EncodeOption{
		imaging.JPEGQuality(opts.Quality),
		imaging.PNGCompressionLevel(level),
	}

	switch format {
	case types.FormatJPEG:
		return imaging.JPEG, encOpts, nil
	case types.FormatPNG:
		return imaging.PNG, encOpts, nil
	}
	return 0, nil, &FormatError{Format: string(format)}
}

func pngLevel(c types.PNGCompression) (png.CompressionLevel, error) {
	switch c {
	case types.PNGCompressionDefault, "":
		return png.DefaultCompression, nil
	case types.PNGCompressionNone:
		return png.NoCompression, nil
	case types.PNGCompressionSpeed:
		return png.BestSpeed, nil
	case types.PNGCompressionBest:
		return png.BestCompression, nil
	}
	return 0, fmt.Errorf("unknown png compression %q", c)
}
