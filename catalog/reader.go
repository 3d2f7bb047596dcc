// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jcodagnone/fof/utils/textutils"
)

// Columns holds the 0-based position of every field in a catalog row. DZ is
// only read in photometric mode.
type Columns struct {
	ID  int
	RA  int
	Dec int
	Z   int
	DZ  int
}

// DefaultColumns is the "id ra dec z [dz]" layout.
func DefaultColumns() Columns {
	return Columns{ID: 0, RA: 1, Dec: 2, Z: 3, DZ: 4}
}

// columnAliases maps normalized header names onto galaxy fields.
var columnAliases = map[string]string{
	"id":           "id",
	"galaxy_id":    "id",
	"objid":        "id",
	"obj_id":       "id",
	"ra":           "ra",
	"alpha":        "ra",
	"dec":          "dec",
	"delta":        "dec",
	"z":            "z",
	"redshift":     "z",
	"z_spec":       "z",
	"z_phot":       "z",
	"photoz":       "z",
	"photo_z":      "z",
	"dz":           "dz",
	"z_err":        "dz",
	"zerr":         "dz",
	"dz_phot":      "dz",
	"photoz_err":   "dz",
	"redshift_err": "dz",
}

var errMissingColumn = errors.New("missing column")

// columnsFromHeader resolves a header into Columns. ok is false when the
// header does not name both sky coordinates, meaning it is a plain comment.
func columnsFromHeader(names []string, mode Mode) (Columns, bool, error) {
	found := map[string]int{}

	for i, name := range names {
		if field, ok := columnAliases[textutils.NormalizeColumn(name)]; ok {
			if _, dup := found[field]; !dup {
				found[field] = i
			}
		}
	}

	if _, ok := found["ra"]; !ok {
		return Columns{}, false, nil
	}

	if _, ok := found["dec"]; !ok {
		return Columns{}, false, nil
	}

	required := []string{"id", "z"}
	if mode == Photometric {
		required = append(required, "dz")
	}

	for _, field := range required {
		if _, ok := found[field]; !ok {
			return Columns{}, true, fmt.Errorf("%w: %s", errMissingColumn, field)
		}
	}

	cols := Columns{ID: found["id"], RA: found["ra"], Dec: found["dec"], Z: found["z"], DZ: -1}
	if dz, ok := found["dz"]; ok {
		cols.DZ = dz
	}

	return cols, true, nil
}

// Read parses a whitespace separated ASCII catalog. Lines starting with '#'
// are comments; the first comment naming ra and dec is taken as the header.
// Without a header DefaultColumns is used.
func Read(r io.Reader, mode Mode) ([]*Galaxy, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	cols := DefaultColumns()
	headerSeen := false

	var galaxies []*Galaxy

	line := 0
	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		if strings.HasPrefix(text, "#") {
			if headerSeen || len(galaxies) > 0 {
				continue
			}

			c, ok, err := columnsFromHeader(strings.Fields(strings.TrimLeft(text, "#")), mode)
			if err != nil {
				return nil, &LineError{Line: line, Err: err}
			}

			if ok {
				cols, headerSeen = c, true
			}

			continue
		}

		g, err := parseRow(strings.Fields(text), cols, mode, len(galaxies))
		if err != nil {
			return nil, &LineError{Line: line, Err: err}
		}

		galaxies = append(galaxies, g)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	return galaxies, nil
}

func parseRow(fields []string, cols Columns, mode Mode, num int) (*Galaxy, error) {
	get := func(name string, i int) (float64, error) {
		if i < 0 || i >= len(fields) {
			return 0, fmt.Errorf("%w: %s (column %d of %d)", errMissingColumn, name, i+1, len(fields))
		}

		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return 0, fmt.Errorf("parsing %s: %w", name, err)
		}

		return v, nil
	}

	if cols.ID < 0 || cols.ID >= len(fields) {
		return nil, fmt.Errorf("%w: id (column %d of %d)", errMissingColumn, cols.ID+1, len(fields))
	}

	id, err := strconv.ParseUint(fields[cols.ID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing id: %w", err)
	}

	ra, err := get("ra", cols.RA)
	if err != nil {
		return nil, err
	}

	dec, err := get("dec", cols.Dec)
	if err != nil {
		return nil, err
	}

	z, err := get("z", cols.Z)
	if err != nil {
		return nil, err
	}

	var dz float64
	if mode == Photometric {
		if dz, err = get("dz", cols.DZ); err != nil {
			return nil, err
		}
	}

	return New(mode, num, id, ra, dec, z, dz)
}

// Load reads the catalog at path. Files ending in .csv, .csv.gz or .parquet
// go through DuckDB; anything else is read as ASCII.
func Load(path string, mode Mode) ([]*Galaxy, error) {
	if isTabular(path) {
		return LoadTabular(path, mode)
	}

	f, err := os.Open(path) // #nosec G304 - path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	return Read(f, mode)
}

func isTabular(path string) bool {
	name := strings.ToLower(filepath.Base(path))

	return strings.HasSuffix(name, ".csv") ||
		strings.HasSuffix(name, ".csv.gz") ||
		strings.HasSuffix(name, ".parquet")
}
