// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/brees-image-converter/pkg/types"
)

// Viper keys for the settings in types.Config.
const (
	keyQuality        = "quality"
	keyPNGCompression = "png_compression"
	keyPattern        = "pattern"
	keySort           = "sort"
)

// registerConfigFlags adds the persistent flags backing types.Config and
// binds them to viper.
func registerConfigFlags(cmd *cobra.Command) {
	def := types.DefaultConfig()
	flags := cmd.PersistentFlags()

	flags.Int("quality", def.Quality, "JPEG quality (1-100); also passed to the PNG encoder, which ignores it")
	flags.String("png-compression", string(def.PNGCompression), "PNG compression: default, none, speed, or best")
	flags.String("pattern", def.InputPattern, "glob selecting input files in the source folder")
	flags.Bool("sort", def.Sort, "convert files in lexical order instead of directory order")

	bindConfig(cmd)
}

// bindConfig binds the flags added by registerConfigFlags to viper keys and
// sets the defaults, so flags override environment and config file values.
// It must be repeated after viper.Reset.
func bindConfig(cmd *cobra.Command) {
	def := types.DefaultConfig()
	flags := cmd.PersistentFlags()

	_ = viper.BindPFlag(keyQuality, flags.Lookup("quality"))
	_ = viper.BindPFlag(keyPNGCompression, flags.Lookup("png-compression"))
	_ = viper.BindPFlag(keyPattern, flags.Lookup("pattern"))
	_ = viper.BindPFlag(keySort, flags.Lookup("sort"))

	viper.SetDefault(keyQuality, def.Quality)
	viper.SetDefault(keyPNGCompression, string(def.PNGCompression))
	viper.SetDefault(keyPattern, def.InputPattern)
	viper.SetDefault(keySort, def.Sort)
}

// loadConfig resolves the effective settings and validates them.
func loadConfig() (types.Config, error) {
	cfg := types.Config{
		Quality:        viper.GetInt(keyQuality),
		PNGCompression: types.PNGCompression(viper.GetString(keyPNGCompression)),
		InputPattern:   viper.GetString(keyPattern),
		Sort:           viper.GetBool(keySort),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config resolves settings from flags, BREES_CONVERTER_* environment variables,
the config file, and built-in defaults, and prints the result. Nothing is
written to disk.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
