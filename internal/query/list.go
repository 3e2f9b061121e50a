package query

import (
	"database/sql"
	"fmt"

	"github.com/aidanlsb/rtend/internal/model"
	"github.com/aidanlsb/rtend/internal/sqlutil"
	"github.com/aidanlsb/rtend/internal/store"
)

// Aliases lists the aliases of an entity ordered by name.
func Aliases(q store.Querier, entityID int64) ([]model.Alias, error) {
	rows, err := q.Query(`
		SELECT id, entity_id, name, created, updated
		FROM alias
		WHERE entity_id = ?
		ORDER BY name, id`, entityID)
	if err != nil {
		return nil, fmt.Errorf("list alias: %w", err)
	}
	return sqlutil.Collect(rows, func(r *sql.Rows) (model.Alias, error) {
		var a model.Alias
		err := r.Scan(&a.ID, &a.EntityID, &a.Name, &a.Created, &a.Updated)
		return a, err
	})
}

// Snippets lists the snippets of an entity in insertion order.
func Snippets(q store.Querier, entityID int64) ([]model.Snippet, error) {
	rows, err := q.Query(`
		SELECT id, entity_id, data, created, updated
		FROM snippet
		WHERE entity_id = ?
		ORDER BY id`, entityID)
	if err != nil {
		return nil, fmt.Errorf("list snippet: %w", err)
	}
	return sqlutil.Collect(rows, func(r *sql.Rows) (model.Snippet, error) {
		var s model.Snippet
		err := r.Scan(&s.ID, &s.EntityID, &s.Data, &s.Created, &s.Updated)
		return s, err
	})
}

// RelationSnippets lists the snippets of a relation in insertion order.
func RelationSnippets(q store.Querier, relationID int64) ([]model.RelationSnippet, error) {
	rows, err := q.Query(`
		SELECT id, relation_id, data, created, updated
		FROM relation_snippet
		WHERE relation_id = ?
		ORDER BY id`, relationID)
	if err != nil {
		return nil, fmt.Errorf("list relation snippet: %w", err)
	}
	return sqlutil.Collect(rows, func(r *sql.Rows) (model.RelationSnippet, error) {
		var s model.RelationSnippet
		err := r.Scan(&s.ID, &s.RelationID, &s.Data, &s.Created, &s.Updated)
		return s, err
	})
}

// Stats returns the row count of every table.
func Stats(q store.Querier) ([]model.Stat, error) {
	out := make([]model.Stat, 0, len(store.Kinds))
	for _, k := range store.Kinds {
		var n int64
		if err := q.QueryRow("SELECT count(*) FROM " + k.Table()).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", k, err)
		}
		out = append(out, model.Stat{Type: k.String(), Count: n})
	}
	return out, nil
}
