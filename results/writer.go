// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package results

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/jcodagnone/fof/utils/textutils"
)

var errUnknownFormat = errors.New("unknown output format")

// Format is an output encoding.
type Format string

const (
	// ASCII writes the cluster and member tables as whitespace separated
	// columns with '#' headers.
	ASCII Format = "ascii"
	// JSON writes the three tables as one indented document.
	JSON Format = "json"
)

// ParseFormat accepts "ascii", "txt" and "json", ignoring case.
func ParseFormat(s string) (Format, error) {
	switch textutils.LowerASCIIFolding(s) {
	case "ascii", "txt", "":
		return ASCII, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownFormat, s)
	}
}

// Write encodes t to w.
func Write(w io.Writer, t *Tables, format Format) error {
	switch format {
	case ASCII:
		return WriteASCII(w, t)
	case JSON:
		return WriteJSON(w, t)
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

// WriteJSON writes t as an indented JSON document.
func WriteJSON(w io.Writer, t *Tables) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	return nil
}

// WriteASCII writes the cluster table followed by the member table. Angles
// are in degrees except the cluster radius, which is in arcminutes.
func WriteASCII(w io.Writer, t *Tables) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# clusters: %s\n", textutils.FormatInt(int64(len(t.Clusters))))
	fmt.Fprintf(bw, "# %4s %6s %5s %11s %11s %9s %9s %9s %16s\n",
		"bin", "num", "ngal", "ra", "dec", "z", "z_median", "radius", "h3_cell")

	for _, c := range t.Clusters {
		fmt.Fprintf(bw, "  %4d %6d %5d %11.6f %11.6f %9.6f %9.6f %9.4f %16x\n",
			c.Bin, c.Num, c.NGal, c.RA, c.Dec, c.Z, c.ZMedian, c.Radius*radToArcmin, c.Cell)
	}

	fmt.Fprintf(bw, "# members: %s\n", textutils.FormatInt(int64(len(t.Members))))
	fmt.Fprintf(bw, "# %4s %6s %8s %20s %11s %11s %9s\n",
		"bin", "num", "galaxy", "id", "ra", "dec", "z")

	for _, m := range t.Members {
		fmt.Fprintf(bw, "  %4d %6d %8d %20d %11.6f %11.6f %9.6f\n",
			m.Bin, m.Cluster, m.Num, m.ID, m.RA, m.Dec, m.Z)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	return nil
}

const radToArcmin = 180 * 60 / math.Pi
