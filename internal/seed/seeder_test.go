package seed

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/usersdb/seeder/config"
	"github.com/usersdb/seeder/internal/db"
	"github.com/usersdb/seeder/internal/schema"
	"github.com/usersdb/seeder/types"
)

// openTestDB opens a shared cache in-memory database so every connection
// in the pool sees the same data. Caller must pass a name unique to the
// test to keep databases isolated.
func openTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	cfg := config.Config{
		Driver: "sqlite3",
		SQLite: config.SQLiteConfig{Path: "file:" + name + "?mode=memory&cache=shared"},
	}
	conn, err := db.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readUsers(t *testing.T, conn *sql.DB) []types.User {
	t.Helper()
	rows, err := conn.Query(`SELECT id, username, email, password FROM users ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		var u types.User
		require.NoError(t, rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password))
		users = append(users, u)
	}
	require.NoError(t, rows.Err())
	return users
}

func TestApplySeedsTwoRows(t *testing.T) {
	conn := openTestDB(t, "apply")
	s := New(conn, schema.SQLite)

	res, err := s.Apply(context.Background())
	require.NoError(t, err)
	require.Equal(t, Result{Statements: 3, RowsInserted: 2}, res)

	require.Equal(t, []types.User{
		{ID: 1, Username: "alice", Email: "alice@test.org", Password: "12345"},
		{ID: 2, Username: "bob1", Email: "bob@test.org", Password: "abcde"},
	}, readUsers(t, conn))
}

func TestApplyTwiceChangesNothing(t *testing.T) {
	conn := openTestDB(t, "twice")
	s := New(conn, schema.SQLite)
	ctx := context.Background()

	_, err := s.Apply(ctx)
	require.NoError(t, err)
	before := readUsers(t, conn)
	require.Len(t, before, 2)

	res, err := s.Apply(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), res.RowsInserted)
	require.Equal(t, before, readUsers(t, conn))
}

func TestApplyAfterDropRecreatesRows(t *testing.T) {
	conn := openTestDB(t, "recreate")
	s := New(conn, schema.SQLite)
	ctx := context.Background()

	_, err := s.Apply(ctx)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, `DROP TABLE users`)
	require.NoError(t, err)

	res, err := s.Apply(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), res.RowsInserted)

	users := readUsers(t, conn)
	require.Len(t, users, 2)
	require.Equal(t, "alice", users[0].Username)
	require.Equal(t, "bob1", users[1].Username)
}

func TestApplyLeavesOtherRowsAlone(t *testing.T) {
	conn := openTestDB(t, "extra")
	s := New(conn, schema.SQLite)
	ctx := context.Background()

	_, err := s.Apply(ctx)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, `INSERT INTO users (username, email, password) VALUES ('carol', 'carol@test.org', 'hunter2')`)
	require.NoError(t, err)

	// Nothing constrains username uniqueness, so a manual duplicate of a
	// seed account is allowed and apply still adds nothing.
	_, err = conn.ExecContext(ctx, `INSERT INTO users (username, email, password) VALUES ('alice', 'other@test.org', 'other')`)
	require.NoError(t, err)

	res, err := s.Apply(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), res.RowsInserted)
	require.Len(t, readUsers(t, conn), 4)
}

func TestOversizeValuesRejected(t *testing.T) {
	conn := openTestDB(t, "oversize")
	ctx := context.Background()

	_, err := New(conn, schema.SQLite).Apply(ctx)
	require.NoError(t, err)

	cases := []struct {
		name string
		stmt string
		arg  string
	}{
		{"username", `INSERT INTO users (username, email, password) VALUES (?, 'u@test.org', 'pw')`, strings.Repeat("u", schema.MaxUsernameLen+1)},
		{"email", `INSERT INTO users (username, email, password) VALUES ('dave', ?, 'pw')`, strings.Repeat("e", schema.MaxEmailLen+1)},
		{"password", `INSERT INTO users (username, email, password) VALUES ('erin', 'e@test.org', ?)`, strings.Repeat("p", schema.MaxPasswordLen+1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := conn.ExecContext(ctx, tc.stmt, tc.arg)
			require.Error(t, err)
			require.True(t, isConstraint(err), "want constraint error, got %v", err)
		})
	}

	// A value exactly at the cap goes through.
	_, err = conn.ExecContext(ctx,
		`INSERT INTO users (username, email, password) VALUES (?, 'cap@test.org', 'pw')`,
		strings.Repeat("u", schema.MaxUsernameLen))
	require.NoError(t, err)
}

func TestApplyFailsWhenUsersIsAView(t *testing.T) {
	conn := openTestDB(t, "view")
	ctx := context.Background()

	_, err := conn.ExecContext(ctx, `CREATE TABLE accounts (id INTEGER PRIMARY KEY, username TEXT)`)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `CREATE VIEW users AS SELECT id, username FROM accounts`)
	require.NoError(t, err)

	_, err = New(conn, schema.SQLite).Apply(ctx)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestStatusLifecycle(t *testing.T) {
	conn := openTestDB(t, "status")
	s := New(conn, schema.SQLite)
	ctx := context.Background()

	st, err := s.Status(ctx)
	require.NoError(t, err)
	require.False(t, st.TableExists)
	require.False(t, st.Seeded())
	require.Equal(t, []string{"alice", "bob1"}, st.Missing)

	_, err = s.Apply(ctx)
	require.NoError(t, err)

	st, err = s.Status(ctx)
	require.NoError(t, err)
	require.True(t, st.TableExists)
	require.True(t, st.Seeded())
	require.Equal(t, 2, st.UserCount)
	require.Empty(t, st.Missing)

	// A drifted seed row shows up as missing; apply does not repair it
	// because the row's username is still taken.
	_, err = conn.ExecContext(ctx, `UPDATE users SET password = 'changed' WHERE username = 'alice'`)
	require.NoError(t, err)

	st, err = s.Status(ctx)
	require.NoError(t, err)
	require.False(t, st.Seeded())
	require.Equal(t, []string{"alice"}, st.Missing)
	require.Equal(t, 2, st.UserCount)
}
