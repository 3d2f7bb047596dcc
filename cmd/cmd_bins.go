// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/jcodagnone/fof/fof"
	"github.com/spf13/cobra"
)

var binsCmd = &cobra.Command{
	Use:   "bins",
	Short: "Print the redshift bins of the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := loadOptions(cmd)
		if err != nil {
			return err
		}

		bins, err := fof.NewBinning(opts.Bins(), opts.Cosmology)
		if err != nil {
			return err
		}

		a, b := strings.Repeat("─", 4), strings.Repeat("─", 19)
		c, d := strings.Repeat("─", 8), strings.Repeat("─", 10)
		fmt.Printf("Redshift bins (%s, link_r=%g Mpc):\n", opts.Mode, opts.LinkR)
		fmt.Printf("╭─%4s─┬─%-19s─┬─%8s─┬─%10s─┬─%10s─╮\n", a, b, c, d, d)
		fmt.Printf("│ %4s │ %-19s │ %8s │ %10s │ %10s │\n", "Num", "Range", "z", "Da [Mpc]", "r [arcmin]")
		fmt.Printf("├─%4s─┼─%-19s─┼─%8s─┼─%10s─┼─%10s─┤\n", a, b, c, d, d)

		for _, zb := range bins {
			fmt.Printf("│ %4d │ %8.4f - %8.4f │ %8.4f │ %10.2f │ %10.4f │\n",
				zb.Num, zb.ZMin, zb.ZMax, zb.Z, zb.Da, zb.RFriend*180*60/math.Pi)
		}

		fmt.Printf("╰─%4s─┴─%-19s─┴─%8s─┴─%10s─┴─%10s─╯\n", a, b, c, d, d)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(binsCmd)
}
