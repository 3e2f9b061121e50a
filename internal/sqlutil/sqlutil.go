// Package sqlutil holds small helpers shared by the store and query layers.
package sqlutil

import (
	"database/sql"
	"strings"
)

// InList expands ids into the body of an IN clause.
// An empty list yields "NULL" so that `IN (NULL)` selects no rows.
func InList[T any](ids []T) (string, []any) {
	if len(ids) == 0 {
		return "NULL", nil
	}
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", "), args
}

// Collect drains rows through scan and closes them.
func Collect[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CollectIDs reads a single integer column.
func CollectIDs(rows *sql.Rows) ([]int64, error) {
	return Collect(rows, func(r *sql.Rows) (id int64, err error) {
		err = r.Scan(&id)
		return id, err
	})
}
