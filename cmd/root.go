/*
 * Credport node
 * Copyright (C) 2025 Credport community
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
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/credport/credport-node/anchor"
	v1 "github.com/credport/credport-node/api/v1"
	"github.com/credport/credport-node/core"
	"github.com/credport/credport-node/credential"
	"github.com/credport/credport-node/extraction"
	"github.com/credport/credport-node/fraud"
	"github.com/credport/credport-node/hash"
	"github.com/credport/credport-node/http"
	"github.com/credport/credport-node/ledger"
	"github.com/credport/credport-node/storage"
	"github.com/credport/credport-node/verify"
)

var stdOutWriter = os.Stdout

func createRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "credport",
		Short: "Credport node, the API server of the credential portfolio with on-chain anchoring.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}
}

func createPrintConfigCommand(system *core.System) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Prints the current config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			cmd.Println("Current system config")
			cmd.Println(system.Config.PrintConfig())
			return nil
		},
	}
}

func createQRCommand(system *core.System) *cobra.Command {
	return &cobra.Command{
		Use:   "qr [fingerprint]",
		Short: "Renders the public verification QR code for a credential fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			fingerprint, err := hash.ParseHex(args[0])
			if err != nil {
				return err
			}
			publicURL := system.Config.URL
			if engine, ok := system.FindEngineByName(verify.ModuleName).(core.Injectable); ok {
				if cfg := engine.Config().(*verify.Config); cfg.PublicURL != "" {
					publicURL = cfg.PublicURL
				}
			}
			url := verify.VerificationURL(publicURL, fingerprint)
			cmd.Println(url)
			verify.RenderQR(cmd.OutOrStdout(), url)
			return nil
		},
	}
}

func createServerCommand(system *core.System) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the Credport server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			return startServer(cmd.Context(), system)
		},
	}
}

func startServer(ctx context.Context, system *core.System) error {
	logrus.Info("Starting server")

	if err := system.Configure(); err != nil {
		return err
	}

	// route registration is deferred to here, the HTTP engine's router only exists after Configure
	httpEngine := system.FindEngineByName("HTTP").(*http.Engine)
	for _, router := range system.Routers {
		router.Routes(httpEngine.Router())
	}

	if err := system.Start(); err != nil {
		// engines started before the failing one still need to be stopped
		if shutdownErr := system.Shutdown(); shutdownErr != nil {
			logrus.
				WithError(shutdownErr).
				Error("Shutdown after failed startup reported an error")
		}
		return err
	}
	logrus.Info("Server started")

	<-ctx.Done()

	logrus.Info("Shutting down...")
	if err := system.Shutdown(); err != nil {
		return err
	}
	logrus.Info("Shutdown complete")
	return nil
}

// CreateCommand creates the root command with all subcommands and flags to run the system.
func CreateCommand(system *core.System) *cobra.Command {
	command := createRootCommand()
	command.SetOut(stdOutWriter)
	addSubCommands(system, command)
	addFlagSets(command)
	return command
}

// CreateSystem creates the system and registers all engines. The shutdownCallback is invoked
// when an engine stops unexpectedly, so the process can terminate instead of lingering half-up.
func CreateSystem(shutdownCallback context.CancelFunc) *core.System {
	system := core.NewSystem()

	storageEngine := storage.New()
	credentialModule := credential.New(storageEngine)
	ledgerModule := ledger.New()
	anchorModule := anchor.New(credentialModule, ledgerModule)
	verifyModule := verify.New(credentialModule, ledgerModule)
	extractionModule := extraction.New()
	fraudModule := fraud.New()
	httpEngine := http.New(shutdownCallback)

	system.RegisterEngine(core.NewStatusEngine(system))
	system.RegisterEngine(core.NewMetricsEngine())
	system.RegisterEngine(storageEngine)
	system.RegisterEngine(credentialModule)
	system.RegisterEngine(ledgerModule)
	system.RegisterEngine(anchorModule)
	system.RegisterEngine(verifyModule)
	system.RegisterEngine(extractionModule)
	system.RegisterEngine(fraudModule)
	system.RegisterEngine(httpEngine)

	system.RegisterRoutes(&v1.Wrapper{
		Credentials: credentialModule,
		Anchorer:    anchorModule,
		Verifier:    verifyModule,
		Extractor:   extractionModule,
		Detector:    fraudModule,
	})

	return system
}

// Execute creates the root command and executes it, blocking until the context is cancelled.
func Execute(ctx context.Context, system *core.System) error {
	command := CreateCommand(system)
	command.SetOut(stdOutWriter)
	return command.ExecuteContext(ctx)
}

func addSubCommands(system *core.System, root *cobra.Command) {
	system.VisitEngines(func(engine core.Engine) {
		if provider, ok := engine.(core.ServerCommandProvider); ok {
			root.AddCommand(provider.Cmd())
		}
	})
	root.AddCommand(createServerCommand(system))
	root.AddCommand(createPrintConfigCommand(system))
	root.AddCommand(createQRCommand(system))
}

func addFlagSets(cmd *cobra.Command) {
	cmd.PersistentFlags().AddFlagSet(serverFlags())
}

// serverFlags returns the full set of server flags: the global ones plus a flag per module
// config option. The flag defaults double as the config defaults during config loading.
func serverFlags() *pflag.FlagSet {
	flags := core.FlagSet()

	storageConfig := storage.DefaultConfig()
	flags.String("storage.sql.connection", storageConfig.SQL.ConnectionString, "SQL connection string of the credential database. Defaults to a SQLite file in the data directory.")

	credentialConfig := credential.DefaultConfig()
	flags.Duration("credential.imagetimeout", credentialConfig.ImageTimeout, "Timeout for calls to the certificate image host.")

	ledgerConfig := ledger.DefaultConfig()
	flags.String("ledger.rpcurl", ledgerConfig.RPCURL, "URL of the chain RPC provider.")
	flags.String("ledger.contract", ledgerConfig.Contract, "Address of the deployed anchoring contract.")
	flags.String("ledger.privatekeyfile", ledgerConfig.PrivateKeyFile, "File containing the hex-encoded private key used to sign anchoring transactions.")
	flags.Int64("ledger.chainid", ledgerConfig.ChainID, "Chain ID of the target network.")
	flags.Duration("ledger.confirmationtimeout", ledgerConfig.ConfirmationTimeout, "Maximum time to wait for an anchoring transaction to be confirmed.")

	verifyConfig := verify.DefaultConfig()
	flags.String("verify.publicurl", verifyConfig.PublicURL, "Base URL of public verification links. Defaults to the node URL.")

	extractionConfig := extraction.DefaultConfig()
	flags.String("extraction.address", extractionConfig.Address, "Base URL of the OCR extraction service.")
	flags.Duration("extraction.timeout", extractionConfig.Timeout, "Timeout for a single extraction call.")

	fraudConfig := fraud.DefaultConfig()
	flags.String("fraud.address", fraudConfig.Address, "Base URL of the certificate fraud detection service.")
	flags.Duration("fraud.timeout", fraudConfig.Timeout, "Timeout for a single fraud check call.")

	return flags
}
