// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ibmruntimes/OpenCryptographyKitC"
)

func newSelftestCmd() *cobra.Command {
	var hashName string

	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run the known-answer suite for one or all profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := hashdrbg.AllHashes()
			if hashName != "" {
				id, err := parseHashName(hashName)
				if err != nil {
					return err
				}
				ids = []hashdrbg.ID{id}
			}

			failed := false
			for _, id := range ids {
				err := hashdrbg.SelfTest(id)
				status := "OK"
				if err != nil {
					status = "FAIL: " + err.Error()
					failed = true
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", id, status)
			}
			if failed {
				return fmt.Errorf("one or more profiles failed self-test")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&hashName, "hash", "", "restrict to a single hash (SHA1, SHA224, SHA256, SHA384, SHA512)")
	return cmd
}
