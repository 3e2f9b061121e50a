package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rtend/internal/mutation"
	"github.com/aidanlsb/rtend/internal/store"
)

// exactArgs is cobra.ExactArgs reported as MISSING_ARGUMENT.
func exactArgs(n int) cobra.PositionalArgs {
	return checkArgs(cobra.ExactArgs(n))
}

// minArgs is cobra.MinimumNArgs reported as MISSING_ARGUMENT.
func minArgs(n int) cobra.PositionalArgs {
	return checkArgs(cobra.MinimumNArgs(n))
}

func checkArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return handleError(ErrMissingArgument, err, fmt.Sprintf("Usage: %s", cmd.UseLine()))
		}
		return nil
	}
}

// parseID validates an id argument before any storage access.
func parseID(field, s string) (int64, error) {
	id, err := mutation.ParseID(field, s)
	if err != nil {
		return 0, handleError(ErrInvalidInput, err, "")
	}
	return id, nil
}

// parseKind accepts "relation-snippet" as well as "relation_snippet".
func parseKind(s string) (store.Kind, error) {
	kind, err := store.ParseKind(s)
	if err != nil {
		return 0, handleError(ErrInvalidInput, err, "Kinds: "+kindNames(store.Kinds))
	}
	return kind, nil
}

// joinText joins arguments into one text value. Each argument is kept as
// typed so a quoted value with spaces round-trips.
func joinText(field string, args []string) (string, error) {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		return "", handleError(ErrInvalidInput, fmt.Errorf("%s is empty: %w", field, errInvalidInput), "")
	}
	return text, nil
}

func kindNames(kinds []store.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = cliKindName(k)
	}
	return strings.Join(names, ", ")
}

// cliKindName is the spelling used on the command line.
func cliKindName(k store.Kind) string {
	return strings.ReplaceAll(k.Table(), "_", "-")
}
