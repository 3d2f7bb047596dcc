// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package config holds the run parameters of the cluster finder.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/jcodagnone/fof/catalog"
	"github.com/jcodagnone/fof/cosmo"
	"github.com/jcodagnone/fof/fof"
	"github.com/jcodagnone/fof/spatial"
	"gopkg.in/yaml.v3"
)

var errInvalidConfig = errors.New("invalid configuration")

// Options are the parameters of a run. Zero values in a YAML file keep the
// defaults.
type Options struct {
	Mode      catalog.Mode    `yaml:"mode"`
	LinkR     float64         `yaml:"link_r"`     // physical linking length [Mpc]
	LinkZ     float64         `yaml:"link_z"`     // redshift linking tolerance
	MinNgal   int             `yaml:"min_ngal"`   // smallest cluster kept
	ZMin      float64         `yaml:"z_min"`      // lower edge of the first bin
	ZBinSize  float64         `yaml:"z_bin_size"` // width of every bin
	NBins     int             `yaml:"n_bins"`     // number of bins
	Cosmology cosmo.Cosmology `yaml:"cosmology"`
	MaxProcs  int             `yaml:"max_procs"` // bins processed at once, 0 means one per CPU
	LeafSize  int             `yaml:"leaf_size"` // spatial index leaf size
}

// Default returns the options used when nothing else is configured: a single
// spectroscopic bin covering 0 <= z < 10.
func Default() Options {
	return Options{
		Mode:      catalog.Spectroscopic,
		LinkR:     0.5,
		LinkZ:     0.0015,
		MinNgal:   3,
		ZMin:      0,
		ZBinSize:  10,
		NBins:     1,
		Cosmology: cosmo.Default(),
		LeafSize:  spatial.DefaultLeafSize,
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path) // #nosec G304 - path is provided by the user
	if err != nil {
		return opts, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return opts, nil
}

// Validate checks every parameter.
func (o Options) Validate() error {
	if o.Mode != catalog.Spectroscopic && o.Mode != catalog.Photometric {
		return fmt.Errorf("%w: %w: %s", errInvalidConfig, catalog.ErrUnknownMode, o.Mode)
	}

	if !(o.LinkZ > 0) {
		return fmt.Errorf("%w: link_z must be > 0 (got %g)", errInvalidConfig, o.LinkZ)
	}

	if o.MinNgal < 1 {
		return fmt.Errorf("%w: min_ngal must be >= 1 (got %d)", errInvalidConfig, o.MinNgal)
	}

	if o.MaxProcs < 0 {
		return fmt.Errorf("%w: max_procs must be >= 0 (got %d)", errInvalidConfig, o.MaxProcs)
	}

	if err := o.Bins().Validate(); err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}

	if err := o.Cosmology.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}

	return nil
}

// Bins returns the binning part of the options.
func (o Options) Bins() fof.BinConfig {
	return fof.BinConfig{ZMin: o.ZMin, BinSize: o.ZBinSize, NBins: o.NBins, LinkR: o.LinkR}
}

// RunOptions returns the driver part of the options.
func (o Options) RunOptions() fof.RunOptions {
	return fof.RunOptions{MinNgal: o.MinNgal, MaxProcs: o.MaxProcs}
}

// Finder builds the cluster finder described by the options.
func (o Options) Finder() (*fof.Finder, error) {
	regime, err := fof.NewRegime(o.Mode, o.LinkZ)
	if err != nil {
		return nil, err
	}

	return fof.NewFinder(regime, fof.WithLeafSize(o.LeafSize)), nil
}
