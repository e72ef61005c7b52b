// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
	"golang.org/x/image/bmp"

	"github.com/pdiddy/brees-image-converter/pkg/types"
)

// resetState restores flag values and viper to their startup state, since
// rootCmd and viper are package globals shared by every test.
func resetState(t *testing.T) {
	t.Helper()
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	})
	viper.Reset()
	bindConfig(rootCmd)
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetState(t)
	t.Cleanup(func() { resetState(t) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeBMP(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(1, 2, color.RGBA{R: 10, G: 20, B: 30, A: 0xff})
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, bmp.Encode(f, img))
}

func TestRootConverts(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeBMP(t, src, "a.bmp")

	stdout, _, err := execute(t, src, out, "PNG")
	require.NoError(t, err)

	want := "Brees 2017 Bulk Image Converter.\n" +
		"Source Folder: " + src + "\n" +
		"Output Folder: " + out + "\n" +
		"Converting to: .png\n" +
		"\n" +
		filepath.Join(src, "a.bmp") + "\n"
	assert.Equal(t, want, stdout)
	assert.FileExists(t, filepath.Join(out, "a.png"))
}

func TestRootBadArgumentsIsNoOp(t *testing.T) {
	stdout, _, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, "Brees 2017 Bulk Image Converter.\n"+
		"\n! Bad arguments: There are not enough arguments to run the command.\n"+
		"Commandline syntax:\n"+
		"BreesImageConverter.exe <SourceFolder> <OutputFolder> <jpg|png>\n", stdout)
}

func TestRootMissingSourceCreatesNothing(t *testing.T) {
	src := filepath.Join(t.TempDir(), "missing")
	out := t.TempDir()

	stdout, _, err := execute(t, src, out, "jpg")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Folder does not exist:\n"+src+"\n")
	assert.NotContains(t, stdout, "Source Folder:")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRootUnsupportedFormat(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), t.TempDir(), "Tiff")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Output File type not supported: tiff\nCommandline syntax:\n")
}

func TestRootMissingOutputFails(t *testing.T) {
	src := t.TempDir()
	writeBMP(t, src, "a.bmp")
	out := filepath.Join(t.TempDir(), "missing")

	stdout, _, err := execute(t, src, out, "jpg")
	require.Error(t, err)
	assert.Contains(t, stdout, "Folder does not exist:\n"+out+"\n")
	assert.Contains(t, stdout, "Converting to: .jpg\n")
	assert.Contains(t, err.Error(), filepath.Join(src, "a.bmp"))
}

func TestRootInvalidQuality(t *testing.T) {
	_, _, err := execute(t, "--quality", "0", t.TempDir(), t.TempDir(), "jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quality must be in range")
}

func TestRootVerboseLogsToStderr(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeBMP(t, src, "a.bmp")

	_, stderr, err := execute(t, "--verbose", src, out, "jpg")
	require.NoError(t, err)
	assert.Contains(t, stderr, "msg=decoded")
	assert.Contains(t, stderr, "msg=wrote")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "brees-image-converter dev\n", stdout)
}

func TestConfigShowsDefaults(t *testing.T) {
	stdout, _, err := execute(t, "config")
	require.NoError(t, err)
	var got types.Config
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, types.DefaultConfig(), got)
}

func TestConfigFlagsAndEnv(t *testing.T) {
	t.Setenv("BREES_CONVERTER_PNG_COMPRESSION", "best")

	stdout, _, err := execute(t, "config", "--quality", "85", "--sort")
	require.NoError(t, err)
	var got types.Config
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, 85, got.Quality)
	assert.Equal(t, types.PNGCompressionBest, got.PNGCompression)
	assert.True(t, got.Sort)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quality: 70\npattern: \"*.dib\"\n"), 0o644))

	stdout, _, err := execute(t, "config", "--config", path)
	require.NoError(t, err)
	var got types.Config
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, 70, got.Quality)
	assert.Equal(t, "*.dib", got.InputPattern)
}

func TestConfigFileDoesNotLeak(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quality: 70\npattern: \"*.dib\"\n"), 0o644))

	_, _, err := execute(t, "config", "--config", path)
	require.NoError(t, err)

	src := t.TempDir()
	out := t.TempDir()
	writeBMP(t, src, "a.bmp")
	_, _, err = execute(t, src, out, "png")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "a.png"))

	stdout, _, err := execute(t, "config")
	require.NoError(t, err)
	var got types.Config
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, types.DefaultConfig(), got)
}

func TestRootFolderNamesThatLookLikeCommands(t *testing.T) {
	parent := t.TempDir()
	t.Chdir(parent)
	for _, name := range []string{"version", "-scans", "out"} {
		require.NoError(t, os.Mkdir(name, 0o755))
	}
	writeBMP(t, "version", "a.bmp")
	writeBMP(t, "-scans", "b.bmp")

	stdout, _, err := execute(t, "./version", "out", "png")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Source Folder: ./version\n")
	assert.FileExists(t, filepath.Join(parent, "out", "a.png"))

	stdout, _, err = execute(t, "--", "-scans", "out", "png")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Source Folder: -scans\n")
	assert.FileExists(t, filepath.Join(parent, "out", "b.png"))
}
