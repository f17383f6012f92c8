// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ibmruntimes/OpenCryptographyKitC"
)

func parseHashName(name string) (hashdrbg.ID, error) {
	switch strings.ToUpper(name) {
	case "SHA1":
		return hashdrbg.SHA1, nil
	case "SHA224":
		return hashdrbg.SHA224, nil
	case "SHA256":
		return hashdrbg.SHA256, nil
	case "SHA384":
		return hashdrbg.SHA384, nil
	case "SHA512":
		return hashdrbg.SHA512, nil
	default:
		return 0, fmt.Errorf("unrecognized hash %q", name)
	}
}

func newGenerateCmd() *cobra.Command {
	var hashName string
	var entropyHex, nonceHex string
	var n int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Instantiate an engine and emit n bytes",
		Long: "Instantiate an engine and emit n bytes. If --entropy is omitted, entropy\n" +
			"(and, absent --nonce, the nonce) is drawn from crypto/rand; this is a\n" +
			"caller convenience, not the core's own entropy source.",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHashName(hashName)
			if err != nil {
				return err
			}

			p, err := hashdrbg.ProfileFor(id)
			if err != nil {
				return err
			}

			var ein, nonce []byte
			if entropyHex != "" {
				ein, err = hex.DecodeString(entropyHex)
				if err != nil {
					return fmt.Errorf("decoding --entropy: %w", err)
				}
			} else {
				ein = make([]byte, p.SeedLen)
				if _, err := rand.Read(ein); err != nil {
					return fmt.Errorf("drawing entropy from crypto/rand: %w", err)
				}
			}
			if nonceHex != "" {
				nonce, err = hex.DecodeString(nonceHex)
				if err != nil {
					return fmt.Errorf("decoding --nonce: %w", err)
				}
			} else {
				nonce = make([]byte, p.SeedLen/2)
				if _, err := rand.Read(nonce); err != nil {
					return fmt.Errorf("drawing nonce from crypto/rand: %w", err)
				}
			}

			engine, err := hashdrbg.NewEngine(id)
			if err != nil {
				return err
			}
			if err := engine.Instantiate(ein, nonce, nil); err != nil {
				return err
			}
			out, err := engine.Generate(n, nil)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&hashName, "hash", "SHA256", "hash identifier (SHA1, SHA224, SHA256, SHA384, SHA512)")
	cmd.Flags().StringVar(&entropyHex, "entropy", "", "hex-encoded entropy input (default: drawn from crypto/rand)")
	cmd.Flags().StringVar(&nonceHex, "nonce", "", "hex-encoded nonce (default: drawn from crypto/rand)")
	cmd.Flags().IntVar(&n, "n", 32, "number of bytes to generate")

	return cmd
}
