package query

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/aidanlsb/rtend/internal/model"
	"github.com/aidanlsb/rtend/internal/sqlutil"
	"github.com/aidanlsb/rtend/internal/store"
)

// Substring matching uses instr rather than LIKE: LIKE folds ASCII case in
// SQLite and treats % and _ in the needle as wildcards.

// FindAliases returns aliases whose name contains text, case-sensitively.
func FindAliases(q store.Querier, text string) ([]model.AliasMatch, error) {
	rows, err := q.Query(`
		SELECT id, entity_id, name, updated
		FROM alias
		WHERE instr(name, ?) > 0
		ORDER BY name, id`, text)
	if err != nil {
		return nil, fmt.Errorf("find alias: %w", err)
	}
	return sqlutil.Collect(rows, func(r *sql.Rows) (model.AliasMatch, error) {
		var m model.AliasMatch
		err := r.Scan(&m.ID, &m.EntityID, &m.Name, &m.Updated)
		return m, err
	})
}

// FindAliasesLong is FindAliases plus, for every hit, the other aliases of
// the same entity. The hit itself is never among its other aliases.
func FindAliasesLong(q store.Querier, text string) ([]model.AliasMatchLong, error) {
	rows, err := q.Query(`
		SELECT a.id, a.entity_id, a.name, a.updated,
		       coalesce((SELECT group_concat(o.name, ?)
		                 FROM alias o
		                 WHERE o.entity_id = a.entity_id AND o.id <> a.id), '')
		FROM alias a
		WHERE instr(a.name, ?) > 0
		ORDER BY a.name, a.id`, AliasSeparator, text)
	if err != nil {
		return nil, fmt.Errorf("find alias: %w", err)
	}
	return sqlutil.Collect(rows, func(r *sql.Rows) (model.AliasMatchLong, error) {
		var m model.AliasMatchLong
		err := r.Scan(&m.ID, &m.EntityID, &m.Name, &m.Updated, &m.OtherAliases)
		return m, err
	})
}

// FindRelations returns every relation with entityID on either side.
func FindRelations(q store.Querier, entityID int64) ([]model.Relation, error) {
	rows, err := q.Query(`
		SELECT id, entity_id_a, entity_id_b, created, updated
		FROM relation
		WHERE entity_id_a = ? OR entity_id_b = ?
		ORDER BY id`, entityID, entityID)
	if err != nil {
		return nil, fmt.Errorf("find relation: %w", err)
	}
	return sqlutil.Collect(rows, scanRelation)
}

// FindRelationsLong is FindRelations with up to SummaryAliases alias names
// resolved for each endpoint.
func FindRelationsLong(q store.Querier, entityID int64) ([]model.RelationLong, error) {
	rels, err := FindRelations(q, entityID)
	if err != nil {
		return nil, err
	}
	out := make([]model.RelationLong, 0, len(rels))
	if len(rels) == 0 {
		return out, nil
	}

	seen := make(map[int64]bool)
	var ids []int64
	for _, r := range rels {
		for _, id := range []int64{r.EntityIDA, r.EntityIDB} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	names, err := firstAliases(q, ids)
	if err != nil {
		return nil, err
	}

	for _, r := range rels {
		out = append(out, model.RelationLong{
			ID:        r.ID,
			EntityIDA: r.EntityIDA,
			AliasesA:  strings.Join(names[r.EntityIDA], AliasSeparator),
			EntityIDB: r.EntityIDB,
			AliasesB:  strings.Join(names[r.EntityIDB], AliasSeparator),
			Updated:   r.Updated,
		})
	}
	return out, nil
}

// FindSnippets returns snippets whose data contains text, case-sensitively.
func FindSnippets(q store.Querier, text string) ([]model.SnippetMatch, error) {
	rows, err := q.Query(`
		SELECT id, data, entity_id, updated
		FROM snippet
		WHERE instr(data, ?) > 0
		ORDER BY id`, text)
	if err != nil {
		return nil, fmt.Errorf("find snippet: %w", err)
	}
	return sqlutil.Collect(rows, func(r *sql.Rows) (model.SnippetMatch, error) {
		var m model.SnippetMatch
		err := r.Scan(&m.ID, &m.Data, &m.EntityID, &m.Updated)
		return m, err
	})
}

// FindRelationSnippets returns relation snippets whose data contains text.
func FindRelationSnippets(q store.Querier, text string) ([]model.RelationSnippetMatch, error) {
	rows, err := q.Query(`
		SELECT id, data, relation_id, updated
		FROM relation_snippet
		WHERE instr(data, ?) > 0
		ORDER BY id`, text)
	if err != nil {
		return nil, fmt.Errorf("find relation snippet: %w", err)
	}
	return sqlutil.Collect(rows, func(r *sql.Rows) (model.RelationSnippetMatch, error) {
		var m model.RelationSnippetMatch
		err := r.Scan(&m.ID, &m.Data, &m.RelationID, &m.Updated)
		return m, err
	})
}

func scanRelation(r *sql.Rows) (model.Relation, error) {
	var rel model.Relation
	err := r.Scan(&rel.ID, &rel.EntityIDA, &rel.EntityIDB, &rel.Created, &rel.Updated)
	return rel, err
}
