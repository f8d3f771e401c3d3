// Package schema holds the users table definition and its seed fixture as
// embedded SQL, one set of files per supported dialect.
package schema

import (
	"embed"
	"fmt"
	"strings"

	"github.com/usersdb/seeder/types"
)

//go:embed postgres/*.sql sqlite3/*.sql
var assets embed.FS

// Dialect identifies a supported SQL dialect. The values double as
// database/sql driver names so configuration can use them directly.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

// ParseDialect maps a configured driver name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(name))); d {
	case Postgres, SQLite:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", name)
	}
}

// Kind distinguishes schema statements from data statements.
type Kind string

const (
	// DDL statements define the table.
	DDL Kind = "ddl"
	// DML statements insert the seed rows.
	DML Kind = "dml"
)

// Statement is one executable statement of the script.
type Statement struct {
	Kind Kind
	SQL  string
}

// Statements returns the dialect's script as individual statements in
// execution order: the table definition first, then the seed inserts.
func (d Dialect) Statements() ([]Statement, error) {
	ddl, err := d.read("schema.sql")
	if err != nil {
		return nil, err
	}
	dml, err := d.read("seed.sql")
	if err != nil {
		return nil, err
	}

	var stmts []Statement
	for _, sql := range split(ddl) {
		stmts = append(stmts, Statement{Kind: DDL, SQL: sql})
	}
	for _, sql := range split(dml) {
		stmts = append(stmts, Statement{Kind: DML, SQL: sql})
	}
	return stmts, nil
}

// Script returns the dialect's full script text, suitable for feeding to
// any standard database client instead of this tool.
func (d Dialect) Script() (string, error) {
	ddl, err := d.read("schema.sql")
	if err != nil {
		return "", err
	}
	dml, err := d.read("seed.sql")
	if err != nil {
		return "", err
	}
	return ddl + "\n" + dml, nil
}

// TableExistsQuery returns a query that selects a single boolean telling
// whether a table named users exists. Both queries match base tables
// only, so a view squatting on the name reads as false.
func (d Dialect) TableExistsQuery() string {
	if d == SQLite {
		return `SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'users')`
	}
	return `SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = 'users' AND table_type = 'BASE TABLE')`
}

// SeedRowQuery returns a query counting rows that match one seed row
// exactly. It takes username, email and password as parameters, in the
// dialect's placeholder style.
func (d Dialect) SeedRowQuery() string {
	if d == SQLite {
		return `SELECT COUNT(*) FROM users WHERE username = ? AND email = ? AND password = ?`
	}
	return `SELECT COUNT(*) FROM users WHERE username = $1 AND email = $2 AND password = $3`
}

func (d Dialect) read(name string) (string, error) {
	data, err := assets.ReadFile(string(d) + "/" + name)
	if err != nil {
		return "", fmt.Errorf("load %s %s: %w", d, name, err)
	}
	return string(data), nil
}

// Column length limits shared by every dialect rendering.
const (
	MaxUsernameLen = 50
	MaxEmailLen    = 100
	MaxPasswordLen = 100
)

// SeedUsers returns the rows the seed script inserts, in script order.
// IDs are zero because the engine assigns them.
func SeedUsers() []types.User {
	return []types.User{
		{Username: "alice", Email: "alice@test.org", Password: "12345"},
		{Username: "bob1", Email: "bob@test.org", Password: "abcde"},
	}
}

// split breaks a script into statements on semicolons, dropping chunks
// that hold only whitespace and line comments. The embedded scripts keep
// semicolons out of string literals, so no real parsing is needed.
func split(script string) []string {
	var stmts []string
	for _, chunk := range strings.Split(script, ";") {
		if isBlank(chunk) {
			continue
		}
		stmts = append(stmts, strings.TrimSpace(chunk))
	}
	return stmts
}

func isBlank(chunk string) bool {
	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		return false
	}
	return true
}
