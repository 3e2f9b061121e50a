package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aidanlsb/rtend/internal/sqlutil"
)

// ops implements the primitives shared by Database and Tx.
type ops struct {
	q Querier
}

func (o ops) Exec(query string, args ...any) (sql.Result, error) {
	return o.q.Exec(query, args...)
}

func (o ops) Query(query string, args ...any) (*sql.Rows, error) {
	return o.q.Query(query, args...)
}

func (o ops) QueryRow(query string, args ...any) *sql.Row {
	return o.q.QueryRow(query, args...)
}

// InsertEntity creates an entity with default timestamps and returns its id.
func (o ops) InsertEntity() (int64, error) {
	res, err := o.q.Exec(`INSERT INTO entity DEFAULT VALUES`)
	if err != nil {
		return 0, fmt.Errorf("insert entity: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert entity: last insert id: %w", err)
	}
	return id, nil
}

// InsertAlias binds a new alias to an existing entity.
func (o ops) InsertAlias(entityID int64, name string) (int64, error) {
	return o.insertOwned(KindAlias, KindEntity, entityID,
		`INSERT INTO alias (entity_id, name)
		 SELECT ?, ? WHERE EXISTS (SELECT 1 FROM entity WHERE id = ?)`,
		entityID, name, entityID)
}

// InsertSnippet attaches a new snippet to an existing entity.
func (o ops) InsertSnippet(entityID int64, data string) (int64, error) {
	return o.insertOwned(KindSnippet, KindEntity, entityID,
		`INSERT INTO snippet (entity_id, data)
		 SELECT ?, ? WHERE EXISTS (SELECT 1 FROM entity WHERE id = ?)`,
		entityID, data, entityID)
}

// InsertRelation connects two existing entities. Self relations and
// duplicates are allowed.
func (o ops) InsertRelation(entityIDA, entityIDB int64) (int64, error) {
	res, err := o.q.Exec(
		`INSERT INTO relation (entity_id_a, entity_id_b)
		 SELECT ?, ?
		 WHERE EXISTS (SELECT 1 FROM entity WHERE id = ?)
		   AND EXISTS (SELECT 1 FROM entity WHERE id = ?)`,
		entityIDA, entityIDB, entityIDA, entityIDB)
	if err != nil {
		return 0, fmt.Errorf("insert relation: %w", err)
	}
	return insertedID(KindRelation, res, func() error {
		return fmt.Errorf("insert relation: entity id %d or %d: %w", entityIDA, entityIDB, ErrOwnerNotFound)
	})
}

// InsertRelationSnippet attaches a new snippet to an existing relation.
func (o ops) InsertRelationSnippet(relationID int64, data string) (int64, error) {
	return o.insertOwned(KindRelationSnippet, KindRelation, relationID,
		`INSERT INTO relation_snippet (relation_id, data)
		 SELECT ?, ? WHERE EXISTS (SELECT 1 FROM relation WHERE id = ?)`,
		relationID, data, relationID)
}

func (o ops) insertOwned(kind, owner Kind, ownerID int64, query string, args ...any) (int64, error) {
	res, err := o.q.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", kind, err)
	}
	return insertedID(kind, res, func() error {
		return fmt.Errorf("insert %s: %s id %d: %w", kind, owner, ownerID, ErrOwnerNotFound)
	})
}

func insertedID(kind Kind, res sql.Result, missingOwner func() error) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("insert %s: rows affected: %w", kind, err)
	}
	switch n {
	case 0:
		return 0, missingOwner()
	case 1:
	default:
		return 0, &RowCountError{Op: "insert", Kind: kind, Rows: n}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert %s: last insert id: %w", kind, err)
	}
	return id, nil
}

// DeleteByID removes one row. It returns 0 when the row does not exist and 1
// when it was deleted; any other count is a *RowCountError.
func (o ops) DeleteByID(kind Kind, id int64) (int64, error) {
	table := kind.Table()
	if table == "" {
		return 0, fmt.Errorf("delete: unknown kind %d", int(kind))
	}
	res, err := o.q.Exec("DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", kind, err)
	}
	return singleRow("delete", kind, id, res)
}

// UpdateText replaces the text column of an alias, snippet or relation
// snippet and refreshes its updated timestamp. Same 0/1 contract as DeleteByID.
func (o ops) UpdateText(kind Kind, id int64, text string) (int64, error) {
	col, ok := kind.TextColumn()
	if !ok {
		return 0, fmt.Errorf("update: %s has no text field", kind)
	}
	res, err := o.q.Exec(
		"UPDATE "+kind.Table()+" SET "+col+" = ?, updated = current_timestamp WHERE id = ?",
		text, id)
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", kind, err)
	}
	return singleRow("update", kind, id, res)
}

// Text returns the current text column of a row, or ErrNotFound.
func (o ops) Text(kind Kind, id int64) (string, error) {
	col, ok := kind.TextColumn()
	if !ok {
		return "", fmt.Errorf("read: %s has no text field", kind)
	}
	var text string
	err := o.q.QueryRow("SELECT "+col+" FROM "+kind.Table()+" WHERE id = ?", id).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s id %d: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", kind, err)
	}
	return text, nil
}

// Exists reports whether a row with the id exists.
func (o ops) Exists(kind Kind, id int64) (bool, error) {
	var one int
	err := o.q.QueryRow("SELECT 1 FROM "+kind.Table()+" WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup %s: %w", kind, err)
	}
	return true, nil
}

// Count returns the number of rows in the kind's table.
func (o ops) Count(kind Kind) (int64, error) {
	var n int64
	if err := o.q.QueryRow("SELECT count(*) FROM " + kind.Table()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return n, nil
}

// ownerColumn is the column holding the owner id of dependent kinds.
func ownerColumn(kind Kind) (string, error) {
	switch kind {
	case KindAlias, KindSnippet:
		return "entity_id", nil
	case KindRelationSnippet:
		return "relation_id", nil
	default:
		return "", fmt.Errorf("%s has no single owner column", kind)
	}
}

// CountOwned counts aliases or snippets of an entity, or snippets of a relation.
func (o ops) CountOwned(kind Kind, ownerID int64) (int64, error) {
	col, err := ownerColumn(kind)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := o.q.QueryRow("SELECT count(*) FROM "+kind.Table()+" WHERE "+col+" = ?", ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return n, nil
}

// DeleteOwned deletes aliases or snippets of an entity, or snippets of a relation.
func (o ops) DeleteOwned(kind Kind, ownerID int64) (int64, error) {
	col, err := ownerColumn(kind)
	if err != nil {
		return 0, err
	}
	res, err := o.q.Exec("DELETE FROM "+kind.Table()+" WHERE "+col+" = ?", ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", kind, err)
	}
	return res.RowsAffected()
}

// RelationIDsTouching returns the ids of relations with the entity on either side.
func (o ops) RelationIDsTouching(entityID int64) ([]int64, error) {
	rows, err := o.q.Query(
		`SELECT id FROM relation WHERE entity_id_a = ? OR entity_id_b = ? ORDER BY id`, entityID, entityID)
	if err != nil {
		return nil, fmt.Errorf("lookup relations: %w", err)
	}
	return sqlutil.CollectIDs(rows)
}

// CountRelationSnippets counts snippets belonging to any of the relations.
func (o ops) CountRelationSnippets(relationIDs []int64) (int64, error) {
	ph, args := sqlutil.InList(relationIDs)
	var n int64
	err := o.q.QueryRow("SELECT count(*) FROM relation_snippet WHERE relation_id IN ("+ph+")", args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count relation snippet: %w", err)
	}
	return n, nil
}

// DeleteRelationSnippets deletes snippets belonging to any of the relations.
func (o ops) DeleteRelationSnippets(relationIDs []int64) (int64, error) {
	ph, args := sqlutil.InList(relationIDs)
	res, err := o.q.Exec("DELETE FROM relation_snippet WHERE relation_id IN ("+ph+")", args...)
	if err != nil {
		return 0, fmt.Errorf("delete relation snippet: %w", err)
	}
	return res.RowsAffected()
}

// DeleteRelationsTouching deletes relations with the entity on either side.
func (o ops) DeleteRelationsTouching(entityID int64) (int64, error) {
	res, err := o.q.Exec(`DELETE FROM relation WHERE entity_id_a = ? OR entity_id_b = ?`, entityID, entityID)
	if err != nil {
		return 0, fmt.Errorf("delete relation: %w", err)
	}
	return res.RowsAffected()
}
