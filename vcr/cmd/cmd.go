/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/nuts-foundation/didholder/qr"
	"github.com/nuts-foundation/didholder/vcr"
	"github.com/nuts-foundation/didholder/vcr/credential"
	"github.com/nuts-foundation/didholder/vcr/holder"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ConfIssuerPorts is the config key for the default ports of known issuers
const ConfIssuerPorts = "vcr.issuerports"

// ConfConfigTTL is the config key for how long issuer discovery documents are cached
const ConfConfigTTL = "vcr.openid4vci.configttl"

// ConfRetries is the config key for the number of retries of issuer requests
const ConfRetries = "vcr.openid4vci.retries"

// ConfCredentialTypes is the config key for the credential types requested from issuers
const ConfCredentialTypes = "vcr.openid4vci.credentialtypes"

var (
	validColor   = color.New(color.FgGreen)
	invalidColor = color.New(color.FgRed)
	labelColor   = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
)

// now is overridden in tests.
var now = time.Now

// FlagSet contains flags relevant for VCR
func FlagSet() *pflag.FlagSet {
	defs := vcr.DefaultConfig()
	flagSet := pflag.NewFlagSet("vcr", pflag.ContinueOnError)
	flagSet.StringSlice(ConfIssuerPorts, defs.IssuerPorts, "Default ports of issuers addressed without port, as domain=port. "+
		"The first entry whose domain is contained in the issuer host name applies.")
	flagSet.Duration(ConfConfigTTL, defs.OpenID4VCI.ConfigTTL, "How long issuer discovery documents are cached. "+
		"0 caches them until shutdown, otherwise the issuer's Cache-Control max-age is honored when present.")
	flagSet.Uint(ConfRetries, defs.OpenID4VCI.Retries, "Number of times a failed discovery request is retried.")
	flagSet.StringSlice(ConfCredentialTypes, defs.OpenID4VCI.CredentialTypes, "Credential types requested when accepting a credential offer.")
	return flagSet
}

// Cmd contains the credential commands, which operate on the local wallet.
// run is called with the function that uses the wallet, it takes care of starting and stopping the engines.
func Cmd(run func(fn func() error) error, instance vcr.VCR) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage the credentials in the wallet",
	}
	withWallet := func(fn func(wallet vcr.Wallet) error) error {
		return run(func() error {
			return fn(instance.Wallet())
		})
	}
	cmd.AddCommand(listCmd(withWallet))
	cmd.AddCommand(showCmd(withWallet))
	cmd.AddCommand(addCmd(withWallet))
	cmd.AddCommand(removeCmd(withWallet))
	cmd.AddCommand(clearCmd(withWallet))
	cmd.AddCommand(exportCmd(withWallet))
	cmd.AddCommand(shareCmd(withWallet))
	cmd.AddCommand(verifyCmd(withWallet))
	return cmd
}

type walletFunc func(fn func(wallet vcr.Wallet) error) error

func listCmd(withWallet walletFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists the credentials in the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWallet(func(wallet vcr.Wallet) error {
				credentials := wallet.List()
				if len(credentials) == 0 {
					cmd.Println("The wallet is empty")
					return nil
				}
				for _, cred := range credentials {
					printSummary(cmd, cred)
				}
				return nil
			})
		},
	}
}

func printSummary(cmd *cobra.Command, cred credential.Credential) {
	status := validColor.Sprint("valid")
	if cred.IsExpired(now()) {
		status = invalidColor.Sprint("expired")
	}
	cmd.Printf("%s  %s  %s\n", labelColor.Sprint(cred.ID), cred.MostSpecificType(), status)
	cmd.Println(dimColor.Sprintf("    issuer: %s, issued: %s", cred.Issuer, cred.IssuanceDate))
}

func showCmd(withWallet walletFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Prints a credential as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWallet(func(wallet vcr.Wallet) error {
				cred, err := wallet.Get(args[0])
				if err != nil {
					return err
				}
				data, _ := json.MarshalIndent(cred, "", "  ")
				cmd.Println(string(data))
				return nil
			})
		},
	}
}

func addCmd(withWallet walletFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "add [token]",
		Short: "Adds a signed credential (JWT or SD-JWT) to the wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWallet(func(wallet vcr.Wallet) error {
				cred, err := wallet.AddToken(cmd.Context(), strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				cmd.Printf("Added credential %s (%s)\n", cred.ID, cred.MostSpecificType())
				return nil
			})
		},
	}
}

func removeCmd(withWallet walletFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id]",
		Short: "Removes a credential from the wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWallet(func(wallet vcr.Wallet) error {
				if err := wallet.Remove(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("unable to remove credential: %w", err)
				}
				cmd.Printf("Credential %s removed\n", args[0])
				return nil
			})
		},
	}
}

func clearCmd(withWallet walletFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Removes all credentials from the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWallet(func(wallet vcr.Wallet) error {
				if err := wallet.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("unable to clear wallet: %w", err)
				}
				cmd.Println("All credentials removed")
				return nil
			})
		},
	}
}

func exportCmd(withWallet walletFunc) *cobra.Command {
	var format string
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exports all credentials as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWallet(func(wallet vcr.Wallet) error {
				data, err := wallet.Export(strings.ToLower(format))
				if err != nil {
					return err
				}
				if output == "" {
					cmd.Println(string(data))
					return nil
				}
				if err := os.WriteFile(output, data, 0600); err != nil {
					return fmt.Errorf("unable to write export file: %w", err)
				}
				cmd.Printf("Credentials exported to %s\n", output)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", holder.JSONExportFormat, "Export format (json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write the export to, instead of stdout")
	return cmd
}

func shareCmd(withWallet walletFunc) *cobra.Command {
	var fields []string
	var showQR bool
	cmd := &cobra.Command{
		Use:   "share [id]",
		Short: "Creates a share link for a credential, disclosing only the given subject fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWallet(func(wallet vcr.Wallet) error {
				shared, link, err := wallet.Share(args[0], fields)
				if err != nil {
					return err
				}
				disclosed := make([]string, 0, len(shared.CredentialSubject))
				for field := range shared.CredentialSubject {
					disclosed = append(disclosed, field)
				}
				sort.Strings(disclosed)
				cmd.Printf("Disclosed fields: %s\n", strings.Join(disclosed, ", "))
				cmd.Println(link)
				if showQR {
					qr.Render(cmd.OutOrStdout(), link)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&fields, "field", nil, "Credential subject field to disclose, can be repeated. Without fields, all fields are disclosed.")
	cmd.Flags().BoolVar(&showQR, "qr", false, "Also render the share link as QR code")
	return cmd
}

func verifyCmd(withWallet walletFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [id]",
		Short: "Verifies a credential with its issuer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWallet(func(wallet vcr.Wallet) error {
				result, err := wallet.Verify(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if result.Valid {
					cmd.Printf("%s: %s\n", validColor.Sprint("VALID"), result.Message)
				} else {
					cmd.Printf("%s: %s\n", invalidColor.Sprint("INVALID"), result.Message)
				}
				return nil
			})
		},
	}
}
