// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Format is an output image format.
type Format string

const (
	FormatJPEG Format = "jpg"
	FormatPNG  Format = "png"
)

// ParseFormat maps a command-line token to a Format. Matching is
// case-insensitive; only "jpg" and "png" are accepted.
func ParseFormat(token string) (Format, bool) {
	switch Format(strings.ToLower(token)) {
	case FormatJPEG:
		return FormatJPEG, true
	case FormatPNG:
		return FormatPNG, true
	}
	return "", false
}

// Suffix returns the file extension for the format, including the leading dot.
func (f Format) Suffix() string {
	return "." + string(f)
}

// ConversionRequest is the validated input of a run. It is built once from
// the command line and not modified afterwards.
type ConversionRequest struct {
	// SourceFolder is the directory scanned for input bitmaps.
	SourceFolder string `json:"source_folder" yaml:"source_folder"`

	// OutputFolder is the directory new files are written to. It is not
	// created if missing.
	OutputFolder string `json:"output_folder" yaml:"output_folder"`

	// Format is the target format.
	Format Format `json:"format" yaml:"format"`
}

// BatchResult holds the outcome of a conversion run.
type BatchResult struct {
	// Outputs lists the written files in conversion order.
	Outputs []string `json:"outputs" yaml:"outputs"`
}

// Converted returns the number of files written.
func (r BatchResult) Converted() int {
	return len(r.Outputs)
}
