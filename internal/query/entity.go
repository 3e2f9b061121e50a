// Package query builds the read-side views of the note graph: entity tiers,
// owner listings and substring finds.
package query

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aidanlsb/rtend/internal/model"
	"github.com/aidanlsb/rtend/internal/sqlutil"
	"github.com/aidanlsb/rtend/internal/store"
)

// SummaryAliases is how many alias names the tier-1 summary carries.
const SummaryAliases = 4

// AliasSeparator joins alias names in summaries.
const AliasSeparator = "; "

// EntityView shows one entity at the requested tier. A missing entity is not
// an error: the plain and long views carry a nil row and the detail view an
// empty log.
func EntityView(q store.Querier, id int64, tier model.Tier) (model.EntityView, error) {
	switch tier {
	case model.TierPlain:
		e, err := entityPlain(q, id)
		if err != nil {
			return nil, err
		}
		return model.PlainView{Entity: e}, nil
	case model.TierLong:
		rows, err := entitiesLong(q, "WHERE e.id = ?", id)
		if err != nil {
			return nil, err
		}
		view := model.LongView{}
		if len(rows) > 0 {
			view.Entity = &rows[0]
		}
		return view, nil
	case model.TierDetail:
		rows, err := EntityDetail(q, id)
		if err != nil {
			return nil, err
		}
		return model.DetailView{EntityID: id, Rows: rows}, nil
	default:
		return nil, fmt.Errorf("unknown tier %d", int(tier))
	}
}

func entityPlain(q store.Querier, id int64) (*model.Entity, error) {
	var e model.Entity
	err := q.QueryRow(`SELECT id, created FROM entity WHERE id = ?`, id).Scan(&e.ID, &e.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query entity: %w", err)
	}
	return &e, nil
}

// AllEntitiesLong returns the tier-1 summary of every entity, ordered by id.
func AllEntitiesLong(q store.Querier) ([]model.EntityLong, error) {
	return entitiesLong(q, "")
}

func entitiesLong(q store.Querier, where string, args ...any) ([]model.EntityLong, error) {
	rows, err := q.Query(`
		SELECT e.id,
		       (SELECT count(*) FROM alias a WHERE a.entity_id = e.id),
		       (SELECT count(*) FROM snippet s WHERE s.entity_id = e.id),
		       e.created
		FROM entity e `+where+`
		ORDER BY e.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query entities: %w", err)
	}
	out, err := sqlutil.Collect(rows, func(r *sql.Rows) (model.EntityLong, error) {
		var e model.EntityLong
		err := r.Scan(&e.ID, &e.AliasCount, &e.SnippetCount, &e.Created)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan entities: %w", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	var names map[int64][]string
	if where == "" {
		names, err = firstAliases(q, nil)
	} else {
		ids := make([]int64, len(out))
		for i, e := range out {
			ids[i] = e.ID
		}
		names, err = firstAliases(q, ids)
	}
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Aliases = strings.Join(names[out[i].ID], AliasSeparator)
	}
	return out, nil
}

// firstAliases returns up to SummaryAliases names per entity in insertion
// order. A nil ids slice means every entity.
func firstAliases(q store.Querier, ids []int64) (map[int64][]string, error) {
	query := `SELECT entity_id, name FROM alias`
	var args []any
	if ids != nil {
		var ph string
		ph, args = sqlutil.InList(ids)
		query += ` WHERE entity_id IN (` + ph + `)`
	}
	query += ` ORDER BY entity_id, id`

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query aliases: %w", err)
	}
	defer rows.Close()

	names := make(map[int64][]string)
	for rows.Next() {
		var entityID int64
		var name string
		if err := rows.Scan(&entityID, &name); err != nil {
			return nil, fmt.Errorf("scan alias: %w", err)
		}
		if len(names[entityID]) < SummaryAliases {
			names[entityID] = append(names[entityID], name)
		}
	}
	return names, rows.Err()
}

// EntityDetail returns the unified log of one entity: its own row, its
// aliases and snippets, the relations touching it on either side and the
// snippets of those relations, ordered by kind then id.
func EntityDetail(q store.Querier, id int64) ([]model.DetailRow, error) {
	var one int
	err := q.QueryRow(`SELECT 1 FROM entity WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.DetailRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query entity: %w", err)
	}

	rows, err := q.Query(`
		SELECT ? AS kind, id, cast(id AS text) AS data, created, created AS updated
		  FROM entity WHERE id = ?
		UNION ALL
		SELECT ?, id, name, created, updated
		  FROM alias WHERE entity_id = ?
		UNION ALL
		SELECT ?, id, data, created, updated
		  FROM snippet WHERE entity_id = ?
		UNION ALL
		SELECT ?, id, entity_id_a || ' | ' || entity_id_b, created, updated
		  FROM relation WHERE entity_id_a = ? OR entity_id_b = ?
		UNION ALL
		SELECT ?, id, data, created, updated
		  FROM relation_snippet
		 WHERE relation_id IN (SELECT id FROM relation WHERE entity_id_a = ? OR entity_id_b = ?)
		ORDER BY 1, 2`,
		int(model.DetailEntity), id,
		int(model.DetailAlias), id,
		int(model.DetailSnippet), id,
		int(model.DetailRelation), id, id,
		int(model.DetailRelationSnippet), id, id,
	)
	if err != nil {
		return nil, fmt.Errorf("query entity detail: %w", err)
	}
	out, err := sqlutil.Collect(rows, func(r *sql.Rows) (model.DetailRow, error) {
		var d model.DetailRow
		var kind int
		err := r.Scan(&kind, &d.ID, &d.Data, &d.Created, &d.Updated)
		d.Kind = model.DetailKind(kind)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan entity detail: %w", err)
	}
	return out, nil
}
