package seed

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/usersdb/seeder/internal/schema"
)

// SchemaError is returned when the users table cannot be brought into
// existence, typically because another kind of object already holds the
// name. Stmt carries the statement that failed, if one did.
type SchemaError struct {
	Stmt string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// ConstraintViolation is returned when the engine rejects a statement for
// violating a table constraint, such as a column length cap.
type ConstraintViolation struct {
	Stmt string
	Err  error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violation: %v", e.Err)
}

func (e *ConstraintViolation) Unwrap() error { return e.Err }

// classify wraps a driver error from one statement so callers can tell
// bad data from a broken schema.
func classify(st schema.Statement, err error) error {
	if err == nil {
		return nil
	}
	if isConstraint(err) {
		return &ConstraintViolation{Stmt: st.SQL, Err: err}
	}
	if st.Kind == schema.DDL {
		return &SchemaError{Stmt: st.SQL, Err: err}
	}
	return fmt.Errorf("exec statement: %w", err)
}

func isConstraint(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// Class 23 covers integrity constraint violations. 22001 is
		// string_data_right_truncation, raised by the varchar caps.
		return pqErr.Code.Class() == "23" || pqErr.Code == "22001"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
