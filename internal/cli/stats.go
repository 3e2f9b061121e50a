package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rtend/internal/query"
	"github.com/aidanlsb/rtend/internal/store"
	"github.com/aidanlsb/rtend/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show row counts per table",
	Long: `Displays how many entities, aliases, snippets, relations and relation
snippets the profile holds.

Examples:
  rtend stats
  rtend stats --json`,
	Args: exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(db *store.Database) error {
			stats, err := query.Stats(db)
			if err != nil {
				return fail(err, "")
			}
			if isJSONOutput() {
				outputSuccess(stats, &Meta{Count: len(stats), Profile: resolvedProfile})
				return nil
			}
			fmt.Println(ui.Header(fmt.Sprintf("Profile %s", resolvedProfile)))
			fmt.Print(renderStats(stats))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
