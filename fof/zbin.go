// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package fof

import (
	"errors"
	"fmt"

	"github.com/jcodagnone/fof/cosmo"
)

var errInvalidBinning = errors.New("invalid binning")

// BinConfig is the raw description of the redshift slicing.
type BinConfig struct {
	ZMin    float64 // lower edge of the first bin
	BinSize float64 // width of every bin
	NBins   int     // number of bins
	LinkR   float64 // physical linking length [Mpc]
}

// Zbin describes one redshift slice. It is not modified after NewBinning.
type Zbin struct {
	Num     int     `json:"num"`
	Z       float64 `json:"z"`
	ZMin    float64 `json:"z_min"`
	ZMax    float64 `json:"z_max"`
	LinkR   float64 `json:"link_r"`  // Mpc
	Da      float64 `json:"da"`      // Mpc, at Z
	RFriend float64 `json:"rfriend"` // radians, LinkR / Da
}

// Validate checks the configuration can produce a binning.
func (c BinConfig) Validate() error {
	if c.NBins < 0 {
		return fmt.Errorf("%w: number of bins must be >= 0 (got %d)", errInvalidBinning, c.NBins)
	}

	if c.NBins > 0 && !(c.BinSize > 0) {
		return fmt.Errorf("%w: bin size must be > 0 (got %g)", errInvalidBinning, c.BinSize)
	}

	if c.ZMin < 0 {
		return fmt.Errorf("%w: minimum redshift must be >= 0 (got %g)", errInvalidBinning, c.ZMin)
	}

	if !(c.LinkR > 0) {
		return fmt.Errorf("%w: linking length must be > 0 (got %g)", errInvalidBinning, c.LinkR)
	}

	return nil
}

// NewBinning builds the redshift bins described by cfg. Each bin is
// represented by its central redshift, whose angular diameter distance turns
// LinkR into the fixed angular radius RFriend.
func NewBinning(cfg BinConfig, c cosmo.Cosmology) ([]*Zbin, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bins := make([]*Zbin, 0, cfg.NBins)

	for i := range cfg.NBins {
		lo := cfg.ZMin + float64(i)*cfg.BinSize
		z := lo + cfg.BinSize/2
		da := c.AngularDiameterDistance(z)

		bins = append(bins, &Zbin{
			Num:     i,
			Z:       z,
			ZMin:    lo,
			ZMax:    lo + cfg.BinSize,
			LinkR:   cfg.LinkR,
			Da:      da,
			RFriend: cfg.LinkR / da,
		})
	}

	return bins, nil
}
