// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"fmt"

	"github.com/jcodagnone/fof/utils/textutils"
)

// Mode selects the redshift regime of a catalog.
type Mode int

const (
	// Spectroscopic catalogs carry exact redshifts.
	Spectroscopic Mode = iota
	// Photometric catalogs carry redshifts with a per-galaxy error.
	Photometric
)

func (m Mode) String() string {
	switch m {
	case Spectroscopic:
		return "spec"
	case Photometric:
		return "phot"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "spec", "spectroscopic", "phot" and "photometric",
// ignoring case and surrounding spaces.
func ParseMode(s string) (Mode, error) {
	switch textutils.LowerASCIIFolding(s) {
	case "spec", "spectroscopic":
		return Spectroscopic, nil
	case "phot", "photometric":
		return Photometric, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}

	*m = mode

	return nil
}
