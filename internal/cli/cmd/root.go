// Package cmd provides the cobra commands of the medusa CLI.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/medusa/internal/cli"
	"github.com/bnema/medusa/internal/domain/build"
)

var errAppNotInitialized = errors.New("app not initialized")

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "medusa",
		Short: "A privacy-focused browser built on WebKitGTK",
		Long: `Medusa - a single-window browser that keeps as little of you as it can.

Features:
  - Optional Tor routing, with an embedded daemon or a system one
  - Ad and tracker blocking through WebKit content filters
  - Cookie policy, JavaScript and popup controls
  - Clear-on-exit for cookies, cache and history

Use 'medusa browse' to launch the browser, or the subcommands to inspect
configuration, check Tor and manage history from the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "version", "browse":
				return nil
			}

			var err error
			app, err = cli.NewApp(buildInfo)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() (*cli.App, error) {
	if app == nil {
		return nil, errAppNotInitialized
	}
	return app, nil
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

// browseCmd documents the GUI entry point; main.go runs the GUI before
// cobra sees the arguments.
var browseCmd = &cobra.Command{
	Use:   "browse [url]",
	Short: "Launch the graphical browser",
	Long: `Launch the browser window.

If a URL or search terms are given, open them. Otherwise open the home page.

Examples:
  medusa browse                   # Open the home page
  medusa browse example.com       # Open a site
  medusa browse "privacy tools"   # Search with the configured engine`,
	Args: cobra.MaximumNArgs(1),
	Run:  func(_ *cobra.Command, _ []string) {},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
