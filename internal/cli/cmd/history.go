package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/medusa/internal/cli/styles"
	"github.com/bnema/medusa/internal/domain/entity"
)

const defaultHistoryLimit = 20

var (
	historyLimit int
	historyJSON  bool
	historyYes   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and clear visited-link history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recently visited pages",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyClearCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", defaultHistoryLimit, "maximum entries to show")
	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyClearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "skip confirmation prompt")
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	a, err := GetApp()
	if err != nil {
		return err
	}
	if historyLimit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", historyLimit)
	}

	entries, err := a.History().Recent(a.Ctx(), historyLimit, 0)
	if err != nil {
		return err
	}

	if historyJSON {
		return writeHistoryJSON(cmd.OutOrStdout(), entries)
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.Theme.HistoryTable(historyRows(entries), time.Now()))
	return nil
}

func writeHistoryJSON(w io.Writer, entries []*entity.HistoryEntry) error {
	if entries == nil {
		entries = []*entity.HistoryEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func historyRows(entries []*entity.HistoryEntry) []styles.HistoryRow {
	rows := make([]styles.HistoryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, styles.HistoryRow{
			Title:       e.Title,
			URL:         e.URL,
			Visits:      e.VisitCount,
			LastVisited: e.LastVisited,
		})
	}
	return rows
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	a, err := GetApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	history := a.History()

	stats, err := history.Stats(a.Ctx())
	if err != nil {
		return err
	}
	if stats.TotalEntries == 0 {
		fmt.Fprintln(out, a.Theme.Subtle.Render("History is already empty."))
		return nil
	}

	if !historyYes {
		prompt := fmt.Sprintf("Delete %d history entries?", stats.TotalEntries)
		final, err := tea.NewProgram(styles.NewConfirm(a.Theme, prompt)).Run()
		if err != nil {
			return fmt.Errorf("run confirmation: %w", err)
		}
		if confirm, ok := final.(styles.ConfirmModel); !ok || !confirm.Result() {
			fmt.Fprintln(out, a.Theme.Subtle.Render("Canceled."))
			return nil
		}
	}

	if err := history.Clear(a.Ctx()); err != nil {
		return err
	}
	fmt.Fprintln(out, a.Theme.Success(fmt.Sprintf("Deleted %d entries", stats.TotalEntries)))
	return nil
}
