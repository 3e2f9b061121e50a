package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rtend/internal/mutation"
	"github.com/aidanlsb/rtend/internal/store"
	"github.com/aidanlsb/rtend/internal/ui"
)

var (
	deleteForce bool
	deleteYes   bool
)

type deleteResult struct {
	Kind    store.Kind      `json:"kind"`
	ID      int64           `json:"id"`
	Deleted bool            `json:"deleted"`
	Steps   []mutation.Step `json:"steps,omitempty"`
}

var deleteCmd = &cobra.Command{
	Use:   "delete <kind> <id>",
	Short: "Delete a row, optionally with everything that depends on it",
	Long: `Deletes one entity, alias, snippet, relation or relation-snippet.

A plain delete removes only the named row: deleting an entity leaves its
aliases, snippets and relations behind, and deleting a relation leaves its
snippets behind.

With --force an entity is removed together with the snippets of every
relation touching it, those relations, its snippets and its aliases; a
relation is removed together with its snippets. The plan is shown and must
be confirmed first.

Examples:
  rtend delete alias 3
  rtend delete entity 1 --force
  rtend delete relation 2 --force --yes`,
	Args:      exactArgs(2),
	ValidArgs: []string{"entity", "alias", "snippet", "relation", "relation-snippet"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		id, err := parseID("id", args[1])
		if err != nil {
			return err
		}
		if deleteForce && kind != store.KindEntity && kind != store.KindRelation {
			return fail(fmt.Errorf("%s: %w", kind, mutation.ErrForceUnsupported), "Run without --force")
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		if deleteForce {
			return runForceDelete(db, kind, id)
		}
		return runDelete(db, kind, id)
	},
}

func runDelete(db *store.Database, kind store.Kind, id int64) error {
	// Rows the delete will orphan.
	var orphans int64
	if kind == store.KindEntity || kind == store.KindRelation {
		plan, err := mutation.PlanForceDelete(db, kind, id)
		if err != nil {
			return fail(err, "")
		}
		if plan.Exists {
			orphans = plan.Total() - 1
		}
	}

	deleted, err := mutation.Delete(db, kind, id)
	if err != nil {
		return fail(err, "")
	}

	var warnings []Warning
	if !deleted {
		warnings = append(warnings, Warning{Code: WarnNotFound, Message: notFoundMessage(kind, id)})
	} else if orphans > 0 {
		warnings = append(warnings, Warning{
			Code:    WarnOrphans,
			Message: fmt.Sprintf("%s left without their %s; 'rtend delete %s %d --force' removes them", ui.Rows(orphans), kind, cliKindName(kind), id),
		})
	}

	if isJSONOutput() {
		outputSuccess(deleteResult{Kind: kind, ID: id, Deleted: deleted}, nil, warnings...)
		return nil
	}
	if !deleted {
		fmt.Println(ui.Infof("%s", notFoundMessage(kind, id)))
		return nil
	}
	fmt.Println(ui.Successf("%s id `%s` deleted", kind, ui.ID(id)))
	for _, w := range warnings {
		fmt.Println(ui.Warningf("%s", w.Message))
	}
	return nil
}

func runForceDelete(db *store.Database, kind store.Kind, id int64) error {
	plan, err := mutation.PlanForceDelete(db, kind, id)
	if err != nil {
		return fail(err, "")
	}
	if plan.Empty() {
		if isJSONOutput() {
			outputSuccess(deleteResult{Kind: kind, ID: id}, nil,
				Warning{Code: WarnNotFound, Message: notFoundMessage(kind, id)})
			return nil
		}
		fmt.Println(ui.Infof("%s", notFoundMessage(kind, id)))
		return nil
	}

	var warnings []Warning
	if !plan.Exists {
		warnings = append(warnings, Warning{
			Code:    WarnNotFound,
			Message: fmt.Sprintf("%s id %d does not exist; removing the %s it left behind", kind, id, ui.Rows(plan.Total())),
		})
	}

	if !deleteYes {
		if isJSONOutput() {
			return handleErrorWithDetails(ErrConfirmationRequired,
				fmt.Sprintf("force delete of %s id %d needs confirmation", kind, id),
				"Rerun with --yes", plan)
		}
		fmt.Println(ui.Header(fmt.Sprintf("Force delete %s id %d", kind, id)))
		for _, w := range warnings {
			fmt.Println(ui.Warningf("%s", w.Message))
		}
		fmt.Print(renderPlan(plan.Steps))
		if err := promptYesNo("Proceed?"); err != nil {
			return fail(err, "")
		}
	}

	// Steps run in one transaction; nothing is final until ForceDelete returns.
	progress := func(step mutation.Step) {
		if !isJSONOutput() {
			fmt.Println(ui.Hint(fmt.Sprintf("  deleting %s: %s", step.Label, ui.Rows(step.Rows))))
		}
	}
	steps, err := mutation.ForceDelete(db, kind, id, progress)
	if err != nil {
		return fail(err, "Nothing was deleted")
	}
	if isJSONOutput() {
		outputSuccess(deleteResult{Kind: kind, ID: id, Deleted: plan.Exists, Steps: steps}, nil, warnings...)
		return nil
	}
	var total int64
	for _, step := range steps {
		total += step.Rows
	}
	fmt.Println(ui.Successf("%s id `%s` force-deleted: %s removed", kind, ui.ID(id), ui.Rows(total)))
	return nil
}

func notFoundMessage(kind store.Kind, id int64) string {
	return fmt.Sprintf("%s id %d does not exist. Nothing got deleted!", kind, id)
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Also delete dependent rows (entity and relation only)")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt of --force")
	rootCmd.AddCommand(deleteCmd)
}
