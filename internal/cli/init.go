package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rtend/internal/store"
	"github.com/aidanlsb/rtend/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database of the active profile",
	Long: `Creates the data directory and an empty database for the profile.

Fails if the profile's database already has tables.

Examples:
  rtend init
  rtend init --profile work`,
	Args: exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := getResolver()
		if err != nil {
			return err
		}
		path, err := r.Ensure(resolvedProfile)
		if err != nil {
			return fail(err, "")
		}
		slog.Debug("creating database", "profile", resolvedProfile, "path", path)

		db, err := store.Create(path)
		if err != nil {
			return fail(fmt.Errorf("profile %s: %w", resolvedProfile, err), "")
		}
		defer db.Close()

		if isJSONOutput() {
			outputSuccess(map[string]string{"profile": resolvedProfile, "path": db.Path()}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Initialized profile %s at %s", ui.Accent.Render(resolvedProfile), db.Path()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
