// Package seed applies the users schema and its fixture rows to a
// database and reports how close a database is to that state.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/usersdb/seeder/internal/schema"
	"github.com/usersdb/seeder/pkg/logger"
)

// Execer is the slice of database/sql the seeder needs. Both *sql.DB and
// *sql.Tx satisfy it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Seeder applies one dialect's script to one database.
type Seeder struct {
	db      Execer
	dialect schema.Dialect
}

func New(db Execer, dialect schema.Dialect) *Seeder {
	return &Seeder{db: db, dialect: dialect}
}

// Result summarizes one Apply run.
type Result struct {
	// Statements is the number of statements executed.
	Statements int
	// RowsInserted counts rows the seed statements actually added. It is
	// zero when the database was already seeded.
	RowsInserted int64
}

// Apply executes the schema statements, verifies that a users table now
// exists, then executes the seed statements. Running it against an
// already seeded database changes nothing.
func (s *Seeder) Apply(ctx context.Context) (Result, error) {
	stmts, err := s.dialect.Statements()
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, st := range stmts {
		if st.Kind != schema.DDL {
			continue
		}
		if _, err := s.db.ExecContext(ctx, st.SQL); err != nil {
			return res, classify(st, err)
		}
		res.Statements++
	}

	if err := s.ensureTable(ctx); err != nil {
		return res, err
	}

	for _, st := range stmts {
		if st.Kind != schema.DML {
			continue
		}
		r, err := s.db.ExecContext(ctx, st.SQL)
		if err != nil {
			return res, classify(st, err)
		}
		res.Statements++
		n, err := r.RowsAffected()
		if err != nil {
			return res, err
		}
		res.RowsInserted += n
	}

	logger.Info(fmt.Sprintf("applied %d statements, inserted %d rows", res.Statements, res.RowsInserted))
	return res, nil
}

// ensureTable guards against create-if-not-exists silently skipping when
// a view or other object already holds the users name.
func (s *Seeder) ensureTable(ctx context.Context) error {
	var ok bool
	if err := s.db.QueryRowContext(ctx, s.dialect.TableExistsQuery()).Scan(&ok); err != nil {
		return fmt.Errorf("probe users table: %w", err)
	}
	if !ok {
		return &SchemaError{Err: errors.New("an object named users already exists and is not a table")}
	}
	return nil
}
