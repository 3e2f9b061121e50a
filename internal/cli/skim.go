package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rtend/internal/model"
	"github.com/aidanlsb/rtend/internal/picker"
	"github.com/aidanlsb/rtend/internal/query"
	"github.com/aidanlsb/rtend/internal/store"
	"github.com/aidanlsb/rtend/internal/ui"
)

// Swapped by tests.
var osExecutable = os.Executable

var skimCmd = &cobra.Command{
	Use:   "skim",
	Short: "Pick an entity interactively and show everything about it",
	Long: `Lists every entity in an fzf-compatible picker with a live preview of
'rtend list entity <id> -vv', then shows the detail view of the chosen one.

The picker is fzf unless 'picker' is set in the config file.`,
	Args: exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		binary := strings.TrimSpace(getConfig().Picker)
		if !picker.Installed(binary) {
			name := binary
			if name == "" {
				name = picker.DefaultBinary
			}
			return fail(fmt.Errorf("%s: %w", name, picker.ErrPickerNotInstalled),
				"Install fzf (https://github.com/junegunn/fzf) or set picker in the config file")
		}

		exe, err := osExecutable()
		if err != nil {
			return handleError(ErrInternal, fmt.Errorf("locate rtend executable: %w", err), "")
		}

		return withDatabase(func(db *store.Database) error {
			entities, err := query.AllEntitiesLong(db)
			if err != nil {
				return fail(err, "")
			}

			line, err := picker.Run(picker.Lines(entities), picker.Options{
				Binary:      binary,
				Prompt:      "entity> ",
				Header:      "enter: show everything about the entity, esc: cancel",
				HeaderLines: 1,
				Delimiter:   "\t",
				Preview:     picker.PreviewCommand(exe, previewArgs()...),
				Stderr:      os.Stderr,
			})
			if err != nil {
				suggestion := ""
				if errors.Is(err, picker.ErrNoSelection) && len(entities) == 0 {
					suggestion = "Add one with 'rtend add entity <name>'"
				}
				return fail(err, suggestion)
			}

			id, err := picker.ParseEntityID(line)
			if err != nil {
				return fail(err, "")
			}
			rows, err := query.EntityDetail(db, id)
			if err != nil {
				return fail(err, "")
			}
			view := model.DetailView{EntityID: id, Rows: rows}
			if isJSONOutput() {
				outputSuccess(view, &Meta{Count: len(rows), Profile: resolvedProfile})
				return nil
			}
			fmt.Println(ui.Header(fmt.Sprintf("Entity %d", id)))
			fmt.Print(renderEntityView(view))
			return nil
		})
	},
}

// previewArgs re-targets the preview command at the same profile and config.
func previewArgs() []string {
	args := []string{"--profile", resolvedProfile}
	if strings.TrimSpace(configPath) != "" {
		args = append(args, "--config", configPath)
	}
	return append(args, "list", "entity", picker.Field, "-vv")
}

func init() {
	rootCmd.AddCommand(skimCmd)
}
