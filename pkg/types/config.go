// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// PNGCompression names a PNG compression level. The encoder maps these onto
// image/png compression levels.
type PNGCompression string

const (
	PNGCompressionDefault PNGCompression = "default"
	PNGCompressionNone    PNGCompression = "none"
	PNGCompressionSpeed   PNGCompression = "speed"
	PNGCompressionBest    PNGCompression = "best"
)

const (
	// DefaultQuality is the encoder quality used when none is configured.
	// It is applied to PNG output too, where it has no effect.
	DefaultQuality = 100

	// DefaultInputPattern selects the files converted from the source folder.
	DefaultInputPattern = "*.bmp"
)

// Config holds the settings resolved from flags, environment, and the
// optional config file. The zero value is not valid; use DefaultConfig.
type Config struct {
	// Quality is the JPEG quality (1-100).
	Quality int `json:"quality" yaml:"quality" mapstructure:"quality"`

	// PNGCompression selects the PNG compression level.
	PNGCompression PNGCompression `json:"png_compression" yaml:"png_compression" mapstructure:"png_compression"`

	// InputPattern is the glob matched against entry names in the source folder.
	InputPattern string `json:"pattern" yaml:"pattern" mapstructure:"pattern"`

	// Sort processes files in lexical order instead of enumeration order.
	Sort bool `json:"sort" yaml:"sort" mapstructure:"sort"`
}

// DefaultConfig returns the settings that reproduce the converter's fixed
// behavior: quality 100, default PNG compression, *.bmp, unsorted.
func DefaultConfig() Config {
	return Config{
		Quality:        DefaultQuality,
		PNGCompression: PNGCompressionDefault,
		InputPattern:   DefaultInputPattern,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality must be in range 1-100, got %d", c.Quality)
	}
	switch c.PNGCompression {
	case PNGCompressionDefault, PNGCompressionNone, PNGCompressionSpeed, PNGCompressionBest:
	default:
		return fmt.Errorf("unknown png compression %q (want default, none, speed, or best)", c.PNGCompression)
	}
	if c.InputPattern == "" {
		return fmt.Errorf("input pattern must not be empty")
	}
	return nil
}
