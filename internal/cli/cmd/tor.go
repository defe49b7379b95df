package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/medusa/internal/cli/model"
	"github.com/bnema/medusa/internal/cli/styles"
	"github.com/bnema/medusa/internal/infrastructure/tor"
)

var errTorUnavailable = errors.New("tor proxy could not be started")

var torCmd = &cobra.Command{
	Use:   "tor",
	Short: "Tor proxy tools",
}

var torCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Start the configured Tor proxy and verify it",
	Long: `Run the same steps the browser runs when Tor is enabled: find tor,
start or attach to the proxy, then ask the check service whether traffic
exits through Tor. An embedded daemon is stopped afterwards.`,
	Args: cobra.NoArgs,
	RunE: runTorCheck,
}

func init() {
	rootCmd.AddCommand(torCmd)
	torCmd.AddCommand(torCheckCmd)
}

func runTorCheck(cmd *cobra.Command, _ []string) error {
	a, err := GetApp()
	if err != nil {
		return err
	}
	ctx := a.Ctx()

	manager := tor.NewManager(a.Config.Tor)
	defer manager.DisableProxy(ctx)

	final, err := tea.NewProgram(model.NewTorCheckModel(ctx, a.Theme, manager)).Run()
	if err != nil {
		return fmt.Errorf("run tor check: %w", err)
	}
	check, ok := final.(model.TorCheckModel)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}

	result := check.Result()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, a.Theme.KeyValues("", []styles.Pair{
		{Key: "mode", Value: string(a.Config.Tor.Mode)},
		{Key: "socks", Value: tor.TrimScheme(result.SocksAddr)},
		{Key: "check", Value: a.Config.Tor.CheckURL},
	}))

	switch {
	case !result.Installed:
		return fmt.Errorf("%w: %w", errTorUnavailable, tor.ErrTorNotInstalled)
	case !result.Started:
		return errTorUnavailable
	case !result.Verified:
		fmt.Fprintln(out, a.Theme.Warn("proxy is up but the exit could not be confirmed"))
	default:
		fmt.Fprintln(out, a.Theme.Success("traffic exits through Tor"))
	}
	return nil
}
