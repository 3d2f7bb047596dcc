// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"math"
	"testing"

	"github.com/jcodagnone/fof/catalog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePair(t *testing.T) {
	a, b, err := parsePair("359.5 0  0.5 0")
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/180, a.AngularSeparation(b), 1e-12)

	_, _, err = parsePair("1 2 3")
	assert.Error(t, err)

	_, _, err = parsePair("1 2 x 4")
	assert.Error(t, err)
}

// newOptionsCmd returns a command carrying the same flags as the root.
func newOptionsCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().AddFlagSet(rootCmd.PersistentFlags())
	require.NoError(t, cmd.ParseFlags(args))

	t.Cleanup(func() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})

	return cmd
}

func TestLoadOptionsFlags(t *testing.T) {
	cmd := newOptionsCmd(t, "--mode", "phot", "--link-z", "2.5", "--n-bins", "7", "--z-bin-size", "0.05")

	opts, err := loadOptions(cmd)
	require.NoError(t, err)
	assert.Equal(t, catalog.Photometric, opts.Mode)
	assert.InDelta(t, 2.5, opts.LinkZ, 1e-12)
	assert.Equal(t, 7, opts.NBins)
	assert.InDelta(t, 0.05, opts.ZBinSize, 1e-12)
	assert.Equal(t, 3, opts.MinNgal, "unset flags keep the default")
}

func TestLoadOptionsInvalid(t *testing.T) {
	_, err := loadOptions(newOptionsCmd(t, "--mode", "radio"))
	assert.ErrorIs(t, err, catalog.ErrUnknownMode)

	_, err = loadOptions(newOptionsCmd(t, "--min-ngal", "0"))
	assert.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	setVersion("1.2.3")
	t.Cleanup(func() {
		setVersion("")
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--version"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
}
