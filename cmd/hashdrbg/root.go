// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hashdrbg",
		Short:         "Inspect and exercise the Hash_DRBG profile table",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newProfilesCmd())
	root.AddCommand(newSelftestCmd())
	root.AddCommand(newGenerateCmd())

	return root
}
