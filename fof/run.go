// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package fof

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/jcodagnone/fof/catalog"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// RunOptions tunes Run.
type RunOptions struct {
	// MinNgal is the smallest cluster kept by post-processing.
	MinNgal int
	// MaxProcs bounds the number of bins processed at once. Defaults to the
	// number of CPUs.
	MaxProcs int
	// Progress receives a progress bar when it is a terminal. Nil disables
	// the bar.
	Progress *os.File
}

// BinResult is the outcome of one redshift bin.
type BinResult struct {
	Bin      *Zbin      `json:"bin"`
	Galaxies int        `json:"galaxies"` // size of the working list
	Found    int        `json:"found"`    // clusters before post-processing
	Clusters []*Cluster `json:"clusters"`
}

// Metrics summarises a run.
type Metrics struct {
	Bins     int
	Galaxies int
	Found    int
	Kept     int
	Members  int
}

// Merge adds the counts of r.
func (m *Metrics) Merge(r *BinResult) {
	m.Bins++
	m.Galaxies += r.Galaxies
	m.Found += r.Found
	m.Kept += len(r.Clusters)

	for _, c := range r.Clusters {
		m.Members += len(c.Mem)
	}
}

// Run processes every bin independently and post-processes its clusters.
// Bins may run concurrently since each one owns its membership table; the
// results come back in bin order. The context is checked before each bin.
func (f *Finder) Run(
	ctx context.Context,
	bins []*Zbin,
	galaxies []*catalog.Galaxy,
	opts RunOptions,
) ([]*BinResult, error) {
	results := make([]*BinResult, len(bins))
	if len(bins) == 0 {
		return results, nil
	}

	maxProcs := opts.MaxProcs
	if maxProcs <= 0 {
		maxProcs = runtime.NumCPU()
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil && isatty.IsTerminal(opts.Progress.Fd()) {
		bar = progressbar.NewOptions(len(bins),
			progressbar.OptionSetDescription("Linking "+f.regime.Mode().String()),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxProcs)

	for i, zb := range bins {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("bin %d: %w", zb.Num, err)
			}

			work := f.regime.Select(zb, galaxies)
			clusters := f.FindBin(zb, work)
			found := len(clusters)
			clusters = Remove(clusters, opts.MinNgal)

			results[i] = &BinResult{Bin: zb, Galaxies: len(work), Found: found, Clusters: clusters}

			if bar == nil {
				log.Printf("Bin %d (z=%.4f) - %d galaxies, %d clusters found, %d kept",
					zb.Num, zb.Z, len(work), found, len(clusters))
			} else if err := bar.Add(1); err != nil {
				return fmt.Errorf("updating progress bar for bin %d: %w", zb.Num, err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var metrics Metrics
	for _, r := range results {
		metrics.Merge(r)
	}

	log.Printf(
		"Linking phase complete - %d clusters kept (%d found) with %d members across %d bins",
		metrics.Kept,
		metrics.Found,
		metrics.Members,
		metrics.Bins,
	)

	return results, nil
}
