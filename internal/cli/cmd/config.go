package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/bnema/medusa/internal/cli/styles"
	"github.com/bnema/medusa/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit configuration",
	Long: `Read and change config.toml from the terminal.

Keys use the section.key form, for example security.enable_tor or
browser.home_page. A running browser picks up changes automatically.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.ConfigManager.ConfigFile())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show every setting with its current value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderSettings(a.Theme, a.ConfigManager))
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <section.key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		section, key, err := config.SplitKey(args[0])
		if err != nil {
			return err
		}
		value := a.ConfigManager.GetSetting(section, key)
		if value == nil {
			return fmt.Errorf("%w: %s", config.ErrUnknownSetting, args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatSetting(value))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <section.key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and write config.toml.

Booleans accept true/false, lists take comma-separated values.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		section, key, err := config.SplitKey(args[0])
		if err != nil {
			return err
		}
		if err := a.ConfigManager.UpdateSetting(section, key, args[1]); err != nil {
			return err
		}
		updated := formatSetting(a.ConfigManager.GetSetting(section, key))
		fmt.Fprintln(cmd.OutOrStdout(), a.Theme.Success(args[0]+" = "+updated))
		return nil
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of config.toml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := config.GenerateSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd, configGetCmd, configSetCmd, configSchemaCmd)
}

type settingsReader interface {
	GetSetting(section, key string) any
}

// renderSettings lists all settings grouped by section, sorted by key.
func renderSettings(theme *styles.Theme, settings settingsReader) string {
	keys := config.SettingKeys()
	slices.Sort(keys)

	var blocks []string
	var section string
	var pairs []styles.Pair
	flush := func() {
		if len(pairs) > 0 {
			blocks = append(blocks, theme.KeyValues("["+section+"]", pairs))
		}
		pairs = nil
	}

	for _, full := range keys {
		sec, key, err := config.SplitKey(full)
		if err != nil {
			continue
		}
		if sec != section {
			flush()
			section = sec
		}
		pairs = append(pairs, styles.Pair{Key: key, Value: formatSetting(settings.GetSetting(sec, key))})
	}
	flush()
	return strings.Join(blocks, "\n\n")
}

func formatSetting(value any) string {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, ", ")
	case []any:
		return strings.Join(cast.ToStringSlice(v), ", ")
	default:
		return cast.ToString(v)
	}
}
