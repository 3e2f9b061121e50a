package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rtend/internal/editor"
	"github.com/aidanlsb/rtend/internal/mutation"
	"github.com/aidanlsb/rtend/internal/store"
	"github.com/aidanlsb/rtend/internal/ui"
)

// newEditor builds the editor used by `rtend edit`. Swapped by tests.
var newEditor = func(command string) mutation.Editor {
	return editor.External{Command: command, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

type editResult struct {
	Kind store.Kind `json:"kind"`
	ID   int64      `json:"id"`
	Text string     `json:"text"`
}

var editCmd = &cobra.Command{
	Use:   "edit <kind> <id>",
	Short: "Edit an alias name or snippet text in your editor",
	Long: `Opens the current text of an alias, snippet or relation-snippet in the
configured editor and stores what you save. Saving an empty file aborts
without changes.

Examples:
  rtend edit alias 3
  rtend edit snippet 12
  rtend edit relation-snippet 4`,
	Args:      exactArgs(2),
	ValidArgs: []string{"alias", "snippet", "relation-snippet"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		if _, ok := kind.TextColumn(); !ok {
			return handleError(ErrInvalidInput, fmt.Errorf("%s has no editable text: %w", kind, errInvalidInput),
				"Kinds: "+kindNames([]store.Kind{store.KindAlias, store.KindSnippet, store.KindRelationSnippet}))
		}
		id, err := parseID("id", args[1])
		if err != nil {
			return err
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		command := getConfig().GetEditor()
		slog.Debug("editing", "kind", kind.String(), "id", id, "editor", command)
		ed := newEditor(command)
		wrapped := mutation.EditorFunc(func(current string) (string, error) {
			out, err := ed.Edit(current)
			if err != nil {
				return "", fmt.Errorf("%w: %w", errEditorFailed, err)
			}
			return out, nil
		})
		text, err := mutation.Edit(db, kind, id, wrapped)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return handleError(ErrNotFound, fmt.Errorf("%s id %d does not exist. Nothing got edited!", kind, id), "")
		case errors.Is(err, mutation.ErrEditCancelled):
			return handleErrorMsg(ErrCancelled, "Edited data is empty. Aborted", "")
		case errors.Is(err, errEditorFailed):
			return fail(err, "Set editor in the config file, or $VISUAL / $EDITOR")
		case err != nil:
			return fail(err, "")
		}

		if isJSONOutput() {
			outputSuccess(editResult{Kind: kind, ID: id, Text: text}, nil)
			return nil
		}
		fmt.Println(ui.Successf("%s id `%s` updated", kind, ui.ID(id)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
