// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cli validates the positional command-line arguments of the
// converter and prints the operator-facing diagnostics and usage text.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/brees-image-converter/pkg/types"
)

// ProgramName is the executable name shown in the usage text.
const ProgramName = "BreesImageConverter"

// requiredArgs is the number of positional arguments: source, output, format.
const requiredArgs = 3

// Parse validates args (without the program name) and returns the request.
// Diagnostics are written to w. The second return value is false when the
// run must stop without converting anything.
//
// A missing output folder is reported but does not stop the run; the
// failure surfaces later when the first output file is created.
func Parse(args []string, w io.Writer) (types.ConversionRequest, bool) {
	if len(args) < requiredArgs {
		BadArguments(w)
		Usage(w)
		return types.ConversionRequest{}, false
	}

	source, sourceOK := parseSourceFolder(args[0], w)
	output := parseOutputFolder(args[1], w)
	format, formatOK := parseFormat(args[2], w)

	if !sourceOK || !formatOK || isBlank(source) || isBlank(output) {
		return types.ConversionRequest{}, false
	}

	return types.ConversionRequest{
		SourceFolder: source,
		OutputFolder: output,
		Format:       format,
	}, true
}

func parseSourceFolder(path string, w io.Writer) (string, bool) {
	if !isDir(path) {
		folderMissing(path, w)
		return "", false
	}
	return path, true
}

func parseOutputFolder(path string, w io.Writer) string {
	if !isDir(path) {
		folderMissing(path, w)
	}
	return path
}

func parseFormat(token string, w io.Writer) (types.Format, bool) {
	f, ok := types.ParseFormat(token)
	if !ok {
		fmt.Fprintf(w, "Output File type not supported: %s\n", strings.ToLower(token))
		Usage(w)
		return "", false
	}
	return f, true
}

// Usage prints the command-line syntax.
func Usage(w io.Writer) {
	fmt.Fprintln(w, "Commandline syntax:")
	fmt.Fprintf(w, "%s.exe <SourceFolder> <OutputFolder> <jpg|png>\n", ProgramName)
}

// BadArguments prints the not-enough-arguments diagnostic.
func BadArguments(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "! Bad arguments: There are not enough arguments to run the command.")
}

func folderMissing(path string, w io.Writer) {
	fmt.Fprintln(w, "Folder does not exist:")
	fmt.Fprintln(w, path)
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
