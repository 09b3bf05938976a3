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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/nuts-foundation/didholder/audit"
	"github.com/nuts-foundation/didholder/auth"
	authAPI "github.com/nuts-foundation/didholder/auth/api/v1"
	authCmd "github.com/nuts-foundation/didholder/auth/cmd"
	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/events"
	eventsCmd "github.com/nuts-foundation/didholder/events/cmd"
	"github.com/nuts-foundation/didholder/qr"
	"github.com/nuts-foundation/didholder/storage"
	storageCmd "github.com/nuts-foundation/didholder/storage/cmd"
	"github.com/nuts-foundation/didholder/vcr"
	vcrAPI "github.com/nuts-foundation/didholder/vcr/api/v1"
	vcrCmd "github.com/nuts-foundation/didholder/vcr/cmd"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var stdOutWriter io.Writer = os.Stdout

// shutdownTimeout is the time the HTTP server gets to finish pending requests.
const shutdownTimeout = 5 * time.Second

func createRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "didholder",
		Short: "didholder is a credential wallet: it receives, stores, verifies and shares Verifiable Credentials.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
		SilenceUsage: true,
	}
}

func createPrintConfigCommand(system *core.System) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Prints the current config",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("Current system config")
			cmd.Println(system.Config.PrintConfig())
		},
	}
}

func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Print(core.BuildInfo())
		},
	}
}

func createServerCommand(system *core.System) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the wallet and its HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return startServer(cmd.Context(), system)
		},
	}
}

func startServer(ctx context.Context, system *core.System) error {
	logrus.Info("Starting server with config:")
	logrus.Info(system.Config.PrintConfig())

	// check config on all engines
	if err := system.Configure(); err != nil {
		return err
	}
	// start engines
	if err := system.Start(); err != nil {
		return err
	}
	defer func() {
		if err := system.Shutdown(); err != nil {
			logrus.WithError(err).Error("Error shutting down system")
		}
	}()

	// start interfaces
	echoServer, err := system.EchoCreator()
	if err != nil {
		return err
	}
	for _, router := range system.Routers {
		router.Routes(echoServer)
	}
	serverErr := make(chan error, 1)
	go func() {
		logrus.Infof("HTTP API listening on %s", system.Config.HTTP.Address)
		if err := echoServer.Start(system.Config.HTTP.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		logrus.Info("Shutting down")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("unable to start HTTP server: %w", err)
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := echoServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Error shutting down HTTP server")
	}
	return nil
}

func createScanCommand(system *core.System, vcrInstance vcr.VCR) *cobra.Command {
	var imageFile string
	cmd := &cobra.Command{
		Use:   "scan [input]",
		Short: "Handles the text of a scanned QR code: connects a DID, accepts a credential offer or stores a shared credential",
		Long: "Handles the text of a scanned QR code. The text is given as argument, read from a QR code image (--image) " +
			"or read from stdin when the argument is '-'.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, imageFile)
			if err != nil {
				return err
			}
			return system.RunWith(func() error {
				outcome, err := vcrInstance.Wallet().HandleInput(cmd.Context(), input)
				if err != nil {
					return err
				}
				printOutcome(cmd, outcome)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&imageFile, "image", "", "PNG or JPEG image containing the QR code")
	return cmd
}

func readInput(cmd *cobra.Command, args []string, imageFile string) (string, error) {
	switch {
	case imageFile != "" && len(args) > 0:
		return "", errors.New("specify either input or --image, not both")
	case imageFile != "":
		return qr.ScanFile(imageFile)
	case len(args) == 0:
		return "", errors.New("no input given, specify input or --image")
	case args[0] == "-":
		data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), 64*1024))
		if err != nil {
			return "", fmt.Errorf("unable to read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return args[0], nil
}

func printOutcome(cmd *cobra.Command, outcome vcr.Outcome) {
	switch {
	case outcome.Connect != nil && outcome.Connect.Success:
		cmd.Printf("DID connected: %s\n", outcome.Connect.Message)
	case outcome.Connect != nil:
		cmd.Printf("DID connection failed: %s\n", outcome.Connect.Message)
	case outcome.Credential != nil:
		cmd.Printf("Credential %s (%s) added to the wallet\n", outcome.Credential.ID, outcome.Credential.MostSpecificType())
	}
	data, _ := json.MarshalIndent(outcome, "", "  ")
	cmd.Println(string(data))
}

// CreateCommand creates the command with all subcommands to run the system.
func CreateCommand(system *core.System) *cobra.Command {
	command := createRootCommand()
	command.SetOut(stdOutWriter)
	addSubCommands(system, command)
	command.PersistentFlags().AddFlagSet(serverConfigFlags())
	command.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cmd.SetContext(audit.Context(cmd.Context(), "app-cli", "CLI", cmd.Name()))
		return system.Load(cmd.Flags())
	}
	return command
}

// CreateSystem creates the system and registers all default engines.
func CreateSystem() *core.System {
	system := core.NewSystem()

	// Create instances
	storageInstance := storage.New()
	eventManager := events.NewManager()
	authInstance := auth.NewAuthInstance(auth.DefaultConfig(), storageInstance, eventManager)
	vcrInstance := vcr.NewVCRInstance(storageInstance, eventManager, authInstance)
	statusEngine := core.NewStatusEngine(system)
	metricsEngine := core.NewMetricsEngine()

	// Register HTTP routes
	system.RegisterRoutes(statusEngine)
	system.RegisterRoutes(metricsEngine)
	system.RegisterRoutes(&authAPI.Wrapper{Auth: authInstance})
	system.RegisterRoutes(&vcrAPI.Wrapper{VCR: vcrInstance})

	// Register engines
	// without dependencies
	system.RegisterEngine(statusEngine)
	system.RegisterEngine(metricsEngine)
	system.RegisterEngine(storageInstance)
	system.RegisterEngine(eventManager)
	// the rest
	system.RegisterEngine(authInstance)
	system.RegisterEngine(vcrInstance)
	return system
}

// Execute executes the root command until the given context is cancelled or the command returns.
func Execute(ctx context.Context, system *core.System) error {
	command := CreateCommand(system)
	return command.ExecuteContext(ctx)
}

func addSubCommands(system *core.System, root *cobra.Command) {
	var vcrInstance vcr.VCR
	var authInstance auth.AuthenticationServices
	system.VisitEngines(func(engine core.Engine) {
		switch e := engine.(type) {
		case vcr.VCR:
			vcrInstance = e
		case auth.AuthenticationServices:
			authInstance = e
		}
	})
	root.AddCommand(createServerCommand(system))
	root.AddCommand(createPrintConfigCommand(system))
	root.AddCommand(createVersionCommand())
	if vcrInstance != nil {
		root.AddCommand(createScanCommand(system, vcrInstance))
		root.AddCommand(vcrCmd.Cmd(system.RunWith, vcrInstance))
	}
	if authInstance != nil {
		root.AddCommand(authCmd.Cmd(system.RunWith, authInstance))
	}
}

func serverConfigFlags() *pflag.FlagSet {
	set := core.FlagSet()
	set.AddFlagSet(storageCmd.FlagSet())
	set.AddFlagSet(eventsCmd.FlagSet())
	set.AddFlagSet(authCmd.FlagSet())
	set.AddFlagSet(vcrCmd.FlagSet())
	return set
}
