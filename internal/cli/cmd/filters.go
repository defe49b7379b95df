package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/medusa/internal/cli/styles"
	"github.com/bnema/medusa/internal/infrastructure/filtering"
)

const exportFilePerm = 0o644

var filtersList string

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Inspect the ad and tracker block lists",
}

var filtersStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show rule counts of the effective block lists",
	Long: `Parse the built-in lists plus content_filtering.extra_lists and print
how many rules each produced. Extra lists are merged into the ad list.`,
	Args: cobra.NoArgs,
	RunE: runFiltersStats,
}

var filtersExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write a block list as WebKit content-blocker JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runFiltersExport,
}

func init() {
	rootCmd.AddCommand(filtersCmd)
	filtersCmd.AddCommand(filtersStatsCmd, filtersExportCmd)
	filtersExportCmd.Flags().StringVar(&filtersList, "list", string(filtering.ListAds), "list to export (ads or trackers)")
}

func runFiltersStats(cmd *cobra.Command, _ []string) error {
	a, err := GetApp()
	if err != nil {
		return err
	}
	lists, err := filtering.LoadLists(a.Ctx(), a.Config.ContentFiltering.ExtraLists)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, kind := range []filtering.ListKind{filtering.ListAds, filtering.ListTrackers} {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, a.Theme.KeyValues(string(kind), statsPairs(lists.Get(kind))))
	}
	return nil
}

func statsPairs(list *filtering.Blocklist) []styles.Pair {
	stats := list.Stats()
	return []styles.Pair{
		{Key: "domains", Value: strconv.Itoa(list.Len())},
		{Key: "blocked", Value: strconv.Itoa(stats.Blocked)},
		{Key: "exceptions", Value: strconv.Itoa(stats.Exceptions)},
		{Key: "unsupported", Value: strconv.Itoa(stats.Unsupported)},
	}
}

func runFiltersExport(cmd *cobra.Command, args []string) error {
	a, err := GetApp()
	if err != nil {
		return err
	}
	lists, err := filtering.LoadLists(a.Ctx(), a.Config.ContentFiltering.ExtraLists)
	if err != nil {
		return err
	}

	list := lists.Get(filtering.ListKind(filtersList))
	if list == nil {
		return fmt.Errorf("unknown list %q (want %s or %s)", filtersList, filtering.ListAds, filtering.ListTrackers)
	}
	data, err := list.CompileJSON()
	if err != nil {
		return fmt.Errorf("compile %s: %w", filtersList, err)
	}
	if err := os.WriteFile(args[0], data, exportFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", args[0], err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.Theme.Success(fmt.Sprintf("Wrote %d rules to %s", len(list.WebKitRules()), args[0])))
	return nil
}
