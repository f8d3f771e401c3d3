package seed

import (
	"context"
	"fmt"

	"github.com/usersdb/seeder/internal/schema"
)

// Status describes how far a database is from the seeded state.
type Status struct {
	TableExists bool
	// UserCount is the total number of rows in users, including any the
	// seed script did not create. Zero when the table is missing.
	UserCount int
	// Missing lists the usernames of seed rows with no exact match in
	// the table.
	Missing []string
}

// Seeded reports whether the table exists and every seed row is present.
func (s Status) Seeded() bool {
	return s.TableExists && len(s.Missing) == 0
}

// Status inspects the database without modifying it.
func (s *Seeder) Status(ctx context.Context) (Status, error) {
	var st Status
	if err := s.db.QueryRowContext(ctx, s.dialect.TableExistsQuery()).Scan(&st.TableExists); err != nil {
		return Status{}, fmt.Errorf("probe users table: %w", err)
	}
	if !st.TableExists {
		for _, u := range schema.SeedUsers() {
			st.Missing = append(st.Missing, u.Username)
		}
		return st, nil
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&st.UserCount); err != nil {
		return Status{}, fmt.Errorf("count users: %w", err)
	}

	query := s.dialect.SeedRowQuery()
	for _, u := range schema.SeedUsers() {
		var n int
		if err := s.db.QueryRowContext(ctx, query, u.Username, u.Email, u.Password).Scan(&n); err != nil {
			return Status{}, fmt.Errorf("check seed row %s: %w", u.Username, err)
		}
		if n == 0 {
			st.Missing = append(st.Missing, u.Username)
		}
	}
	return st, nil
}
