package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rtend/internal/query"
	"github.com/aidanlsb/rtend/internal/store"
)

var (
	findAliasVerbose    bool
	findRelationVerbose bool
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find aliases, relations and snippets",
	Long: `Substring searches are case-sensitive and match the text literally.

Examples:
  rtend find alias Al
  rtend find alias Al -v
  rtend find relation 1 -v
  rtend find snippet "green tea"`,
}

var findAliasCmd = &cobra.Command{
	Use:   "alias <text>",
	Short: "Find aliases whose name contains text",
	Args:  minArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := joinText("text", args)
		if err != nil {
			return err
		}
		return withDatabase(func(db *store.Database) error {
			if findAliasVerbose {
				rows, err := query.FindAliasesLong(db, text)
				if err != nil {
					return fail(err, "")
				}
				return emit(rows, len(rows), renderAliasMatchesLong(rows))
			}
			rows, err := query.FindAliases(db, text)
			if err != nil {
				return fail(err, "")
			}
			return emit(rows, len(rows), renderAliasMatches(rows))
		})
	},
}

var findRelationCmd = &cobra.Command{
	Use:   "relation <entity_id>",
	Short: "Find relations touching an entity on either side",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entityID, err := parseID("entity_id", args[0])
		if err != nil {
			return err
		}
		return withDatabase(func(db *store.Database) error {
			if findRelationVerbose {
				rows, err := query.FindRelationsLong(db, entityID)
				if err != nil {
					return fail(err, "")
				}
				return emit(rows, len(rows), renderRelationsLong(rows))
			}
			rows, err := query.FindRelations(db, entityID)
			if err != nil {
				return fail(err, "")
			}
			return emit(rows, len(rows), renderRelations(rows))
		})
	},
}

var findSnippetCmd = &cobra.Command{
	Use:   "snippet <text>",
	Short: "Find snippets containing text",
	Args:  minArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := joinText("text", args)
		if err != nil {
			return err
		}
		return withDatabase(func(db *store.Database) error {
			rows, err := query.FindSnippets(db, text)
			if err != nil {
				return fail(err, "")
			}
			return emit(rows, len(rows), renderSnippetMatches(rows))
		})
	},
}

var findRelationSnippetCmd = &cobra.Command{
	Use:   "relation-snippet <text>",
	Short: "Find relation snippets containing text",
	Args:  minArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := joinText("text", args)
		if err != nil {
			return err
		}
		return withDatabase(func(db *store.Database) error {
			rows, err := query.FindRelationSnippets(db, text)
			if err != nil {
				return fail(err, "")
			}
			return emit(rows, len(rows), renderRelationSnippetMatches(rows))
		})
	},
}

// withDatabase opens the profile database for the duration of fn.
func withDatabase(fn func(db *store.Database) error) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

// emit writes data as a JSON envelope, or the rendered text.
func emit(data any, count int, text string) error {
	if isJSONOutput() {
		outputSuccess(data, &Meta{Count: count, Profile: resolvedProfile})
		return nil
	}
	fmt.Print(text)
	return nil
}

func init() {
	findAliasCmd.Flags().BoolVarP(&findAliasVerbose, "verbose", "v", false, "Also show the entity's other aliases")
	findRelationCmd.Flags().BoolVarP(&findRelationVerbose, "verbose", "v", false, "Also show the aliases of both sides")
	findCmd.AddCommand(findAliasCmd, findRelationCmd, findSnippetCmd, findRelationSnippetCmd)
	rootCmd.AddCommand(findCmd)
}
