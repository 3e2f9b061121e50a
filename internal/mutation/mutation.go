// Package mutation implements the add, delete and edit workflows on top of
// the store primitives.
package mutation

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aidanlsb/rtend/internal/store"
)

var (
	// ErrInvalidID indicates an id argument that is not a non-negative integer.
	ErrInvalidID = errors.New("invalid id")
	// ErrEditCancelled indicates the editor returned empty text.
	ErrEditCancelled = errors.New("edited data is empty")
	// ErrAborted indicates the user declined a confirmation.
	ErrAborted = errors.New("aborted")
	// ErrForceUnsupported indicates a cascading delete on a kind without dependents.
	ErrForceUnsupported = errors.New("force delete is only supported for entity and relation")
)

// ParseID parses a user-supplied id. It never touches storage.
func ParseID(field, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q: %w", field, s, ErrInvalidID)
	}
	return id, nil
}

// ReadContent reads r to end of stream and trims trailing line endings.
func ReadContent(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return TrimTrailingNewlines(string(data)), nil
}

// TrimTrailingNewlines removes every trailing \n and \r.
func TrimTrailingNewlines(s string) string {
	return strings.TrimRight(s, "\r\n")
}

// NewEntity is the result of AddEntity.
type NewEntity struct {
	EntityID int64 `json:"entity_id"`
	AliasID  int64 `json:"alias_id"`
}

// AddEntity creates an entity and its first alias in one transaction. The
// alias is bound to the id returned by the entity insert on the same
// connection, never to a "latest id" lookup.
func AddEntity(db *store.Database, name string) (NewEntity, error) {
	var out NewEntity
	err := db.WithTx(func(tx *store.Tx) error {
		id, err := tx.InsertEntity()
		if err != nil {
			return err
		}
		aliasID, err := tx.InsertAlias(id, name)
		if err != nil {
			return err
		}
		out = NewEntity{EntityID: id, AliasID: aliasID}
		return nil
	})
	if err != nil {
		return NewEntity{}, err
	}
	slog.Debug("entity added", "entity_id", out.EntityID, "alias_id", out.AliasID)
	return out, nil
}

// AddAlias binds another alias to an entity.
func AddAlias(db *store.Database, entityID int64, name string) (int64, error) {
	id, err := db.InsertAlias(entityID, name)
	if err != nil {
		return 0, err
	}
	slog.Debug("alias added", "alias_id", id, "entity_id", entityID)
	return id, nil
}

// AddRelation connects two entities.
func AddRelation(db *store.Database, entityIDA, entityIDB int64) (int64, error) {
	id, err := db.InsertRelation(entityIDA, entityIDB)
	if err != nil {
		return 0, err
	}
	slog.Debug("relation added", "relation_id", id, "entity_id_a", entityIDA, "entity_id_b", entityIDB)
	return id, nil
}

// AddSnippet attaches text to an entity.
func AddSnippet(db *store.Database, entityID int64, data string) (int64, error) {
	id, err := db.InsertSnippet(entityID, data)
	if err != nil {
		return 0, err
	}
	slog.Debug("snippet added", "snippet_id", id, "entity_id", entityID, "bytes", len(data))
	return id, nil
}

// AddRelationSnippet attaches text to a relation.
func AddRelationSnippet(db *store.Database, relationID int64, data string) (int64, error) {
	id, err := db.InsertRelationSnippet(relationID, data)
	if err != nil {
		return 0, err
	}
	slog.Debug("relation snippet added", "relation_snippet_id", id, "relation_id", relationID, "bytes", len(data))
	return id, nil
}

// Delete removes one row. It reports false, without error, when the row
// does not exist. Dependents are left in place.
func Delete(db *store.Database, kind store.Kind, id int64) (bool, error) {
	n, err := db.DeleteByID(kind, id)
	if err != nil {
		return false, err
	}
	slog.Debug("delete", "kind", kind.String(), "id", id, "rows", n)
	return n == 1, nil
}
