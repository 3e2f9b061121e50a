package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rtend/internal/model"
	"github.com/aidanlsb/rtend/internal/query"
	"github.com/aidanlsb/rtend/internal/store"
)

var (
	listEntityVerbose    int
	listSnippetRender    bool
	listRelSnippetRender bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show entities and the rows owned by them",
	Long: `Examples:
  rtend list entity 1         id and creation time
  rtend list entity 1 -v      aliases and counts
  rtend list entity 1 -vv     everything touching the entity
  rtend list entities
  rtend list alias 1
  rtend list snippet 1 --render`,
}

var listEntityCmd = &cobra.Command{
	Use:   "entity <entity_id>",
	Short: "Show one entity; repeat -v for more detail",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("entity_id", args[0])
		if err != nil {
			return err
		}
		tier := model.TierFromVerbosity(listEntityVerbose)
		return withDatabase(func(db *store.Database) error {
			view, err := query.EntityView(db, id, tier)
			if err != nil {
				return fail(err, "")
			}
			return emit(view, viewCount(view), renderEntityView(view))
		})
	},
}

var listEntitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Show the alias summary of every entity",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(db *store.Database) error {
			rows, err := query.AllEntitiesLong(db)
			if err != nil {
				return fail(err, "")
			}
			return emit(rows, len(rows), renderEntitiesLong(rows))
		})
	},
}

var listAliasCmd = &cobra.Command{
	Use:   "alias <entity_id>",
	Short: "Show the aliases of an entity, by name",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("entity_id", args[0])
		if err != nil {
			return err
		}
		return withDatabase(func(db *store.Database) error {
			rows, err := query.Aliases(db, id)
			if err != nil {
				return fail(err, "")
			}
			return emit(rows, len(rows), renderAliases(rows))
		})
	},
}

var listSnippetCmd = &cobra.Command{
	Use:   "snippet <entity_id>",
	Short: "Show the snippets of an entity",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("entity_id", args[0])
		if err != nil {
			return err
		}
		return withDatabase(func(db *store.Database) error {
			rows, err := query.Snippets(db, id)
			if err != nil {
				return fail(err, "")
			}
			if listSnippetRender && !isJSONOutput() {
				blocks := make([]markdownBlock, len(rows))
				for i, s := range rows {
					blocks[i] = markdownBlock{ID: s.ID, Text: s.Data, Updated: s.Updated.String()}
				}
				return printMarkdown(blocks)
			}
			return emit(rows, len(rows), renderSnippets(rows))
		})
	},
}

var listRelationSnippetCmd = &cobra.Command{
	Use:   "relation-snippet <relation_id>",
	Short: "Show the snippets of a relation",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("relation_id", args[0])
		if err != nil {
			return err
		}
		return withDatabase(func(db *store.Database) error {
			rows, err := query.RelationSnippets(db, id)
			if err != nil {
				return fail(err, "")
			}
			if listRelSnippetRender && !isJSONOutput() {
				blocks := make([]markdownBlock, len(rows))
				for i, s := range rows {
					blocks[i] = markdownBlock{ID: s.ID, Text: s.Data, Updated: s.Updated.String()}
				}
				return printMarkdown(blocks)
			}
			return emit(rows, len(rows), renderRelationSnippets(rows))
		})
	},
}

func printMarkdown(blocks []markdownBlock) error {
	out, err := renderMarkdownBlocks(blocks)
	if err != nil {
		return handleError(ErrInternal, fmt.Errorf("render markdown: %w", err), "Run without --render")
	}
	fmt.Print(out)
	return nil
}

// viewCount is the number of rows an entity view carries.
func viewCount(view model.EntityView) int {
	switch v := view.(type) {
	case model.PlainView:
		if v.Entity != nil {
			return 1
		}
	case model.LongView:
		if v.Entity != nil {
			return 1
		}
	case model.DetailView:
		return len(v.Rows)
	}
	return 0
}

func init() {
	listEntityCmd.Flags().CountVarP(&listEntityVerbose, "verbose", "v", "Detail level (-v summary, -vv everything)")
	listSnippetCmd.Flags().BoolVar(&listSnippetRender, "render", false, "Render snippets as markdown")
	listRelationSnippetCmd.Flags().BoolVar(&listRelSnippetRender, "render", false, "Render snippets as markdown")
	listCmd.AddCommand(listEntityCmd, listEntitiesCmd, listAliasCmd, listSnippetCmd, listRelationSnippetCmd)
	rootCmd.AddCommand(listCmd)
}
