// SPDX-License-Identifier: EPL-2.0

// Package cmd contains all CLI commands for pdkserve.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"pdkserve/internal/config"
	"pdkserve/internal/discover"
	"pdkserve/internal/install"
	"pdkserve/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the resolved configuration, loaded by initRootConfig.
	cfg *config.Config

	// rootCmd represents the base command when called without subcommands
	rootCmd = &cobra.Command{
		Use:   "pdkserve",
		Short: "PDK discovery and introspection for schematic editors",
		Long: TitleStyle.Render("pdkserve") + SubtitleStyle.Render(" - PDK discovery and introspection") + `

pdkserve enumerates the PDK device-definition packages available in the
current environment or at user-added local paths, introspects every
exported device for its ports and parameters, and classifies each device
into a display category and schematic symbol type.

The host editor normally drives the persistent JSON protocol via
'pdkserve serve'; the remaining commands expose the same pipeline for
one-shot use from a terminal.

` + SubtitleStyle.Render("Examples:") + `
  pdkserve serve                      Run the stdio protocol loop
  pdkserve discover                   List discovered PDKs and devices
  pdkserve device gf180 nfet_03v3     Show one device's details
  pdkserve install gf180-pdk          Install a PDK package`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/pdkserve/config.cue)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(deviceCmd)
	rootCmd.AddCommand(installCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// initRootConfig reads the config file and environment variables.
func initRootConfig() {
	loaded, err := config.Load(config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		loaded = config.DefaultConfig()
	}
	cfg = loaded

	if !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display, using the
// ActionableError format when available.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// newLogger builds the shared stderr logger. Stdout stays untouched: in
// serve mode it carries protocol responses and nothing else.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: config.AppName,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// newDiscovery builds a discovery service from the resolved config, with
// configured search paths pre-seeded into the registry.
func newDiscovery(logger *log.Logger) *discover.Service {
	svc := discover.New(discover.Options{
		Known:       cfg.KnownTable(),
		InstallRoot: cfg.InstallRoot,
		Logger:      logger,
	})
	for _, path := range cfg.SearchPaths {
		svc.AddPath(path)
	}
	return svc
}

// newInstaller builds the installer runner from the resolved config.
func newInstaller() *install.Runner {
	return install.NewRunner(cfg.Installer, cfg.Timeout())
}
