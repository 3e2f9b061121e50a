package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rtend/internal/export"
	"github.com/aidanlsb/rtend/internal/store"
	"github.com/aidanlsb/rtend/internal/ui"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <entity_id>",
	Short: "Write an entity with its aliases, snippets and relations as YAML",
	Long: `Exports one entity as a YAML document. Snippets carry a one-line title
taken from their markdown. Relations are seen from the exported entity.

Examples:
  rtend export 1
  rtend export 1 --output alice.yaml`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("entity_id", args[0])
		if err != nil {
			return err
		}
		return withDatabase(func(db *store.Database) error {
			doc, err := export.Build(db, id)
			if err != nil {
				return fail(err, "")
			}

			path := strings.TrimSpace(exportOutput)
			if path == "" {
				if isJSONOutput() {
					outputSuccess(doc, &Meta{Profile: resolvedProfile})
					return nil
				}
				data, err := doc.Marshal()
				if err != nil {
					return handleError(ErrInternal, err, "")
				}
				_, err = os.Stdout.Write(data)
				return err
			}

			if err := doc.WriteFile(path); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
			if isJSONOutput() {
				outputSuccess(map[string]any{"entity": id, "path": path}, nil)
				return nil
			}
			fmt.Println(ui.Successf("Exported entity %s to %s", ui.ID(id), path))
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
