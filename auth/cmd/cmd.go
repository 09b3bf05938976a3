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
	"fmt"

	"github.com/fatih/color"
	"github.com/nuts-foundation/didholder/auth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ConfDIDMethod is the config key for the DID method used to derive the holder DID
const ConfDIDMethod = "auth.didmethod"

// ConfKeyFile is the config key for the wallet keypair file
const ConfKeyFile = "auth.keyfile"

// ConfSessionValidity is the config key for how long an authentication session stays valid
const ConfSessionValidity = "auth.sessionvalidity"

// FlagSet returns the configuration flags supported by this module.
func FlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("auth", pflag.ContinueOnError)

	defs := auth.DefaultConfig()
	flags.String(ConfDIDMethod, defs.DIDMethod, "DID method used to derive the holder DID from the wallet public key, either 'pkh' (did:pkh:solana) or 'key' (did:key).")
	flags.String(ConfKeyFile, defs.KeyFile, "Path of the wallet keypair file (JSON array of 64 bytes). When set, the wallet is connected on startup.")
	flags.Duration(ConfSessionValidity, defs.SessionValidity, "How long an authentication session stays valid after signing the challenge.")

	return flags
}

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
)

// Cmd contains the commands that manage the wallet keypair and the authentication session.
// run is called with the function that uses the session, it takes care of starting and stopping the engines.
func Cmd(run func(fn func() error) error, authServices auth.AuthenticationServices) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Wallet keypair and authentication session commands",
	}
	cmd.AddCommand(keygenCmd())
	cmd.AddCommand(loginCmd(run, authServices))
	cmd.AddCommand(logoutCmd(run, authServices))
	cmd.AddCommand(statusCmd(run, authServices))
	return cmd
}

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen [file]",
		Short: "Generates a new wallet keypair file",
		Long: "Generates a new ed25519 wallet keypair and writes it to the given file as JSON array of 64 bytes. " +
			"Configure the file as " + ConfKeyFile + " to connect the wallet.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := auth.GenerateKeyFile(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("Keypair written to %s\n", args[0])
			for _, method := range []string{auth.DIDMethodPKH, auth.DIDMethodKey} {
				holderDID, err := auth.DeriveDID(method, signer.PublicKey())
				if err != nil {
					return err
				}
				cmd.Printf("Holder DID (%s): %s\n", method, holderDID)
			}
			return nil
		},
	}
}

func loginCmd(run func(fn func() error) error, authServices auth.AuthenticationServices) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticates with the wallet keypair configured as " + ConfKeyFile,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(func() error {
				sessions := authServices.Sessions()
				if _, err := sessions.Authenticate(cmd.Context()); err != nil {
					cmd.Println(failureColor.Sprint("Authentication failed"))
					return err
				}
				cmd.Printf("%s as %s\n", successColor.Sprint("Authenticated"), sessions.State().DID)
				return nil
			})
		},
	}
}

func logoutCmd(run func(fn func() error) error, authServices auth.AuthenticationServices) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Removes the authentication session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(func() error {
				if err := authServices.Sessions().Logout(cmd.Context()); err != nil {
					return fmt.Errorf("unable to log out: %w", err)
				}
				cmd.Println("Logged out")
				return nil
			})
		},
	}
}

func statusCmd(run func(fn func() error) error, authServices auth.AuthenticationServices) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Prints the authentication state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(func() error {
				state := authServices.Sessions().State()
				if state.DID == "" {
					cmd.Println(failureColor.Sprint("Wallet not connected"))
					return nil
				}
				cmd.Printf("Holder DID: %s\n", state.DID)
				if state.IsAuthenticated {
					cmd.Println(successColor.Sprint("Authenticated"))
				} else {
					cmd.Println(failureColor.Sprint("Not authenticated"))
				}
				return nil
			})
		},
	}
}
