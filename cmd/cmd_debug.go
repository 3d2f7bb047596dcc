// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jcodagnone/fof/spatial"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Dev tools",
}

var debugAngsepCmd = &cobra.Command{
	Use:   "angsep",
	Short: "Angular separation between pairs of sky positions",
	Long: `Reads "ra1 dec1 ra2 dec2" in degrees, one pair per line, and prints the
separation in radians and degrees.

$ echo 359.5 0 0.5 0 | fof debug angsep
359.5 0 0.5 0	0.0174532925	1.000000
	`,
	Run: func(_ *cobra.Command, _ []string) {
		input := os.Stdin
		if isatty.IsTerminal(input.Fd()) {
			fmt.Fprintln(os.Stderr, "Enter positions to compare as 'ra1 dec1 ra2 dec2', one pair per line…")
		}

		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			a, b, err := parsePair(line)
			if err != nil {
				fmt.Printf("%s\t%q\n", line, err)

				continue
			}

			sep := a.AngularSeparation(b)
			fmt.Printf("%s\t%.10f\t%f\n", line, sep, sep*180/math.Pi)
		}

		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
			os.Exit(1)
		}
	},
}

func parsePair(line string) (spatial.Point, spatial.Point, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return spatial.Point{}, spatial.Point{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}

	var v [4]float64

	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return spatial.Point{}, spatial.Point{}, fmt.Errorf("field %d: %w", i+1, err)
		}

		v[i] = x
	}

	return spatial.Point{RA: v[0], Dec: v[1]}, spatial.Point{RA: v[2], Dec: v[3]}, nil
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugAngsepCmd)
}
