// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the brees-image-converter CLI.
// The root command converts every bitmap in a source folder to JPEG or PNG
// in an output folder; version and config are auxiliary subcommands.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/brees-image-converter/internal/cli"
	"github.com/pdiddy/brees-image-converter/internal/convert"
)

// version is set at build time via ldflags.
var version = "dev"

// banner is printed first on every conversion run.
const banner = "Brees 2017 Bulk Image Converter."

// rootCmd is the base command. Its positional arguments are validated by
// internal/cli, which prints its own diagnostics, so cobra's arity checks
// and usage output are disabled.
var rootCmd = &cobra.Command{
	Use:   "brees-image-converter <SourceFolder> <OutputFolder> <jpg|png>",
	Short: "Bulk-convert bitmap images to JPEG or PNG",
	Long: `brees-image-converter converts every .bmp file directly under SourceFolder
into OutputFolder using the requested format. Existing files are never
overwritten: when <name>.<ext> is taken, <name>1.<ext>, <name>2.<ext>, ... are
tried in turn. The first file that fails to decode or encode stops the run.

Settings may also come from brees-image-converter.yaml or from environment
variables prefixed with BREES_CONVERTER_.

A source folder named like a subcommand (version, config, help) must be
written with a path prefix, e.g. ./version. Folder names starting with "-"
go after a "--" separator:

  brees-image-converter -- -scans out png`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, banner)

		req, ok := cli.Parse(args, out)
		if !ok {
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Source Folder: %s\n", req.SourceFolder)
		fmt.Fprintf(out, "Output Folder: %s\n", req.OutputFolder)
		fmt.Fprintf(out, "Converting to: %s\n", req.Format.Suffix())
		fmt.Fprintln(out)

		verbose, _ := cmd.Flags().GetBool("verbose")
		_, err = convert.Run(req, cfg, out, newLogger(verbose, cmd.ErrOrStderr()))
		return err
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./brees-image-converter.yaml or ~/.config/brees-image-converter/brees-image-converter.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log per-file decode and write events to stderr")
	registerConfigFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("brees-image-converter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "brees-image-converter"))
		}
	}

	viper.SetEnvPrefix("BREES_CONVERTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
