package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rtend/internal/mutation"
	"github.com/aidanlsb/rtend/internal/store"
	"github.com/aidanlsb/rtend/internal/ui"
)

type addResult struct {
	Kind    store.Kind `json:"kind"`
	ID      int64      `json:"id"`
	OwnerID int64      `json:"owner_id"`
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an entity, alias, relation or snippet",
	Long: `Adds one row. Snippet text is read from stdin until end of input.

Examples:
  rtend add entity "Alice Smith"
  rtend add alias 1 Al
  rtend add relation 1 2
  echo "likes green tea" | rtend add snippet 1
  rtend add relation-snippet 1 < notes.md`,
}

var addEntityCmd = &cobra.Command{
	Use:   "entity <name>",
	Short: "Add an entity together with its first alias",
	Args:  minArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := joinText("name", args)
		if err != nil {
			return err
		}
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		created, err := mutation.AddEntity(db, name)
		if err != nil {
			return fail(err, "")
		}
		if isJSONOutput() {
			outputSuccess(created, nil)
			return nil
		}
		fmt.Println(ui.Successf("entity name `%s` added, their entity_id is `%s`", name, ui.ID(created.EntityID)))
		return nil
	},
}

var addAliasCmd = &cobra.Command{
	Use:   "alias <entity_id> <name>",
	Short: "Add an alias to an entity",
	Args:  minArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entityID, err := parseID("entity_id", args[0])
		if err != nil {
			return err
		}
		name, err := joinText("name", args[1:])
		if err != nil {
			return err
		}
		return runAdd(store.KindAlias, entityID, func(db *store.Database) (int64, error) {
			return mutation.AddAlias(db, entityID, name)
		})
	},
}

var addRelationCmd = &cobra.Command{
	Use:   "relation <entity_id_a> <entity_id_b>",
	Short: "Relate two entities",
	Args:  exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := parseID("entity_id_a", args[0])
		if err != nil {
			return err
		}
		b, err := parseID("entity_id_b", args[1])
		if err != nil {
			return err
		}
		return runAdd(store.KindRelation, a, func(db *store.Database) (int64, error) {
			return mutation.AddRelation(db, a, b)
		})
	},
}

var addSnippetCmd = &cobra.Command{
	Use:   "snippet <entity_id>",
	Short: "Add a snippet to an entity (text from stdin)",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entityID, err := parseID("entity_id", args[0])
		if err != nil {
			return err
		}
		data, err := readSnippetData()
		if err != nil {
			return fail(err, "")
		}
		return runAdd(store.KindSnippet, entityID, func(db *store.Database) (int64, error) {
			return mutation.AddSnippet(db, entityID, data)
		})
	},
}

var addRelationSnippetCmd = &cobra.Command{
	Use:   "relation-snippet <relation_id>",
	Short: "Add a snippet to a relation (text from stdin)",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		relationID, err := parseID("relation_id", args[0])
		if err != nil {
			return err
		}
		data, err := readSnippetData()
		if err != nil {
			return fail(err, "")
		}
		return runAdd(store.KindRelationSnippet, relationID, func(db *store.Database) (int64, error) {
			return mutation.AddRelationSnippet(db, relationID, data)
		})
	},
}

// runAdd opens the database, runs insert and reports the new id.
func runAdd(kind store.Kind, ownerID int64, insert func(db *store.Database) (int64, error)) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := insert(db)
	if err != nil {
		return fail(err, "")
	}
	if isJSONOutput() {
		outputSuccess(addResult{Kind: kind, ID: id, OwnerID: ownerID}, nil)
		return nil
	}
	fmt.Println(ui.Successf("%s id `%s` added", kind, ui.ID(id)))
	return nil
}

func init() {
	addCmd.AddCommand(addEntityCmd, addAliasCmd, addRelationCmd, addSnippetCmd, addRelationSnippetCmd)
	rootCmd.AddCommand(addCmd)
}
