// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/jcodagnone/fof/catalog"
	"github.com/jcodagnone/fof/config"
	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "fof",
	Short: "friends-of-friends galaxy cluster finder",
	Long: `
fof groups the galaxies of a spectroscopic or photometric redshift catalog
into clusters by linking neighbours in angle and redshift, one redshift bin
at a time.
`,
}

func setVersion(version string) {
	rootCmd.Version = version
}

func Execute(version string) {
	setVersion(version)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var (
	configPath string
	cliOptions = config.Default()
	modeFlag   string
)

// loadOptions reads the config file, if any, and applies the flags that were
// set on the command line over it.
func loadOptions(cmd *cobra.Command) (config.Options, error) {
	opts := config.Default()

	if configPath != "" {
		var err error
		if opts, err = config.Load(configPath); err != nil {
			return opts, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		mode, err := catalog.ParseMode(modeFlag)
		if err != nil {
			return opts, err
		}

		opts.Mode = mode
	}

	if flags.Changed("link-r") {
		opts.LinkR = cliOptions.LinkR
	}

	if flags.Changed("link-z") {
		opts.LinkZ = cliOptions.LinkZ
	}

	if flags.Changed("min-ngal") {
		opts.MinNgal = cliOptions.MinNgal
	}

	if flags.Changed("z-min") {
		opts.ZMin = cliOptions.ZMin
	}

	if flags.Changed("z-bin-size") {
		opts.ZBinSize = cliOptions.ZBinSize
	}

	if flags.Changed("n-bins") {
		opts.NBins = cliOptions.NBins
	}

	if flags.Changed("max-procs") {
		opts.MaxProcs = cliOptions.MaxProcs
	}

	if flags.Changed("leaf-size") {
		opts.LeafSize = cliOptions.LeafSize
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}

	return opts, nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	def := config.Default()

	flags.StringVarP(&configPath, "config", "c", "", "YAML file with the run parameters")
	flags.StringVar(&modeFlag, "mode", def.Mode.String(), "Catalog regime: spec or phot")
	flags.Float64Var(&cliOptions.LinkR, "link-r", def.LinkR, "Physical linking length in Mpc")
	flags.Float64Var(&cliOptions.LinkZ, "link-z", def.LinkZ, "Redshift linking tolerance")
	flags.IntVar(&cliOptions.MinNgal, "min-ngal", def.MinNgal, "Smallest cluster kept")
	flags.Float64Var(&cliOptions.ZMin, "z-min", def.ZMin, "Lower edge of the first redshift bin")
	flags.Float64Var(&cliOptions.ZBinSize, "z-bin-size", def.ZBinSize, "Width of every redshift bin")
	flags.IntVar(&cliOptions.NBins, "n-bins", def.NBins, "Number of redshift bins")
	flags.IntVar(&cliOptions.MaxProcs, "max-procs", def.MaxProcs, "Bins processed at once, 0 for one per CPU")
	flags.IntVar(&cliOptions.LeafSize, "leaf-size", def.LeafSize, "Spatial index leaf size")
}
