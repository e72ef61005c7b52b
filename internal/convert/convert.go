// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs a bulk conversion: every matching bitmap in the
// source folder is decoded and re-encoded into the output folder under a
// name that does not collide with existing files.
package convert

import (
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/pdiddy/brees-image-converter/internal/imageio"
	"github.com/pdiddy/brees-image-converter/internal/naming"
	"github.com/pdiddy/brees-image-converter/internal/scan"
	"github.com/pdiddy/brees-image-converter/pkg/types"
)

// encode writes each decoded image. Tests override it to inject failures.
var encode = imageio.Encode

// Run converts the files selected by cfg.InputPattern in req.SourceFolder,
// printing each source path to w before converting it. Files are processed
// one at a time. The first failure stops the batch and is returned;
// files written before it are left in place and listed in the result.
//
// log receives debug events; nil discards them.
func Run(req types.ConversionRequest, cfg types.Config, w io.Writer, log *slog.Logger) (types.BatchResult, error) {
	var result types.BatchResult
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if err := cfg.Validate(); err != nil {
		return result, fmt.Errorf("invalid config: %w", err)
	}
	opts := imageio.OptionsFromConfig(cfg)

	for src, err := range sources(req.SourceFolder, cfg) {
		if err != nil {
			return result, err
		}
		fmt.Fprintln(w, src)

		dest, err := convertFile(src, req, opts, log)
		if err != nil {
			return result, fmt.Errorf("converting %s: %w", src, err)
		}
		result.Outputs = append(result.Outputs, dest)
	}

	log.Debug("batch complete", "converted", result.Converted(), "format", req.Format)
	return result, nil
}

// convertFile handles one source file. The decoded image does not outlive
// the call.
func convertFile(src string, req types.ConversionRequest, opts imageio.EncodeOptions, log *slog.Logger) (string, error) {
	img, err := imageio.Decode(src)
	if err != nil {
		return "", err
	}
	b := img.Bounds()
	log.Debug("decoded", "path", src, "width", b.Dx(), "height", b.Dy())

	dest, err := naming.Resolve(req.OutputFolder, naming.BaseName(src), req.Format.Suffix())
	if err != nil {
		return "", err
	}

	if err := encode(img, req.Format, dest, opts); err != nil {
		return "", err
	}
	log.Debug("wrote", "path", dest)
	return dest, nil
}

func sources(dir string, cfg types.Config) iter.Seq2[string, error] {
	if !cfg.Sort {
		return scan.Files(dir, cfg.InputPattern)
	}
	return func(yield func(string, error) bool) {
		paths, err := scan.Sorted(dir, cfg.InputPattern)
		if err != nil {
			yield("", err)
			return
		}
		for _, p := range paths {
			if !yield(p, nil) {
				return
			}
		}
	}
}
