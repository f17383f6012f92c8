// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ibmruntimes/OpenCryptographyKitC"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the compiled-in Hash_DRBG profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range hashdrbg.AllHashes() {
				p, err := hashdrbg.ProfileFor(id)
				if err != nil {
					return err
				}
				fips := "fips"
				if !p.IsFIPS {
					fips = "non-fips"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s seedlen=%-4s strengths=%v %s\n",
					p.HashID, humanize.Bytes(uint64(p.SeedLen)), p.SupportedStrengths, fips)
			}
			return nil
		},
	}
}
