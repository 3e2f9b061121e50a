package mutation

import (
	"fmt"
	"log/slog"

	"github.com/aidanlsb/rtend/internal/store"
)

// Editor hands text to the user and returns the edited result.
type Editor interface {
	Edit(current string) (string, error)
}

// EditorFunc adapts a function to Editor.
type EditorFunc func(current string) (string, error)

// Edit calls f(current).
func (f EditorFunc) Edit(current string) (string, error) { return f(current) }

// Edit loads the text of an alias, snippet or relation snippet, passes it
// to ed and stores the result. Empty edited text is ErrEditCancelled and
// leaves the row untouched. A missing row is store.ErrNotFound.
func Edit(db *store.Database, kind store.Kind, id int64, ed Editor) (string, error) {
	if _, ok := kind.TextColumn(); !ok {
		return "", fmt.Errorf("%s has no editable text", kind)
	}
	current, err := db.Text(kind, id)
	if err != nil {
		return "", err
	}

	edited, err := ed.Edit(current)
	if err != nil {
		return "", fmt.Errorf("editor: %w", err)
	}
	edited = TrimTrailingNewlines(edited)
	if edited == "" {
		return "", ErrEditCancelled
	}

	n, err := db.UpdateText(kind, id, edited)
	if err != nil {
		return "", err
	}
	if n != 1 {
		return "", &store.RowCountError{Op: "update", Kind: kind, ID: id, Rows: n}
	}
	slog.Debug("edited", "kind", kind.String(), "id", id)
	return edited, nil
}
