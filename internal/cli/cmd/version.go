package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/medusa/internal/cli/styles"
	"github.com/bnema/medusa/internal/domain/build"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		if versionJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(buildInfo)
		}
		fmt.Fprintln(out, styles.NewTheme().KeyValues("medusa", []styles.Pair{
			{Key: "version", Value: buildInfo.Version},
			{Key: "commit", Value: buildInfo.Commit},
			{Key: "built", Value: buildInfo.BuildDate},
			{Key: "go", Value: buildInfo.GoVersion},
			{Key: "source", Value: build.RepoURL()},
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "output as JSON")
}
