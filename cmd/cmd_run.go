// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/jcodagnone/fof/catalog"
	"github.com/jcodagnone/fof/fof"
	"github.com/jcodagnone/fof/results"
	"github.com/spf13/cobra"
)

var (
	outputPath   string
	outputFormat string
	dbPath       string
)

var runCmd = &cobra.Command{
	Use:   "run <catalog>",
	Short: "Find the clusters of a catalog",
	Long: `Reads a catalog (whitespace separated text, .csv, .csv.gz or .parquet),
links its galaxies bin by bin and writes the cluster and member tables.

$ fof run --mode spec --link-r 0.5 --n-bins 20 --z-bin-size 0.01 galaxies.txt
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cmd)
		if err != nil {
			return err
		}

		format, err := results.ParseFormat(outputFormat)
		if err != nil {
			return err
		}

		galaxies, err := catalog.Load(args[0], opts.Mode)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}

		log.Printf("Loaded %d galaxies from %s", len(galaxies), args[0])

		catalog.AssignDists(galaxies, opts.Cosmology)
		catalog.AssignBins(galaxies, opts.ZMin, opts.ZBinSize)

		bins, err := fof.NewBinning(opts.Bins(), opts.Cosmology)
		if err != nil {
			return err
		}

		finder, err := opts.Finder()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runOpts := opts.RunOptions()
		runOpts.Progress = os.Stderr

		binResults, err := finder.Run(ctx, bins, galaxies, runOpts)
		if err != nil {
			return err
		}

		tables, err := results.Flatten(binResults)
		if err != nil {
			return err
		}

		if err := writeTables(tables, format); err != nil {
			return err
		}

		if dbPath != "" {
			return saveTables(dbPath, tables)
		}

		return nil
	},
}

func writeTables(tables *results.Tables, format results.Format) error {
	var w io.Writer = os.Stdout

	if outputPath != "" && outputPath != "-" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()

		w = f
	}

	if err := results.Write(w, tables, format); err != nil {
		return err
	}

	if outputPath != "" && outputPath != "-" {
		log.Printf("Wrote %d clusters to %s", len(tables.Clusters), outputPath)
	}

	return nil
}

func saveTables(path string, tables *results.Tables) error {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	repo := results.NewClusterRepository(db)
	if err := repo.CreateSchema(); err != nil {
		return err
	}

	if err := repo.SaveTables(tables); err != nil {
		return fmt.Errorf("saving results: %w", err)
	}

	log.Printf("Saved %d clusters to %s", len(tables.Clusters), path)

	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file, stdout when empty")
	runCmd.Flags().StringVarP(&outputFormat, "format", "f", string(results.ASCII), "Output format: ascii or json")
	runCmd.Flags().StringVar(&dbPath, "db-path", "", "DuckDB file where the run is stored for 'fof serve'")
}
