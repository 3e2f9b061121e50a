package store

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrOwnerNotFound indicates an insert referenced an owner row that does not exist.
	ErrOwnerNotFound = errors.New("owner does not exist")
	// ErrSchemaExists indicates CreateSchema ran against an initialized database.
	ErrSchemaExists = errors.New("schema already exists")
	// ErrDatabaseMissing indicates Open was pointed at a file that is not there.
	ErrDatabaseMissing = errors.New("database does not exist")
	// ErrUnexpectedRows indicates a statement affected a row count outside its contract.
	ErrUnexpectedRows = errors.New("unexpected number of rows affected")
)

// RowCountError reports an internal-consistency violation: a single-row
// statement that affected something other than zero or one row.
type RowCountError struct {
	Op   string
	Kind Kind
	ID   int64
	Rows int64
}

func (e *RowCountError) Error() string {
	return fmt.Sprintf("%s %s id %d: %d rows affected: %v", e.Op, e.Kind, e.ID, e.Rows, ErrUnexpectedRows)
}

// Is makes errors.Is(err, ErrUnexpectedRows) match.
func (e *RowCountError) Is(target error) bool {
	return target == ErrUnexpectedRows
}

// singleRow enforces the 0/1 contract of statements addressed by primary key.
func singleRow(op string, kind Kind, id int64, res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s %s: rows affected: %w", op, kind, err)
	}
	if n != 0 && n != 1 {
		return n, &RowCountError{Op: op, Kind: kind, ID: id, Rows: n}
	}
	return n, nil
}
