// Package sqlstore holds the activity and goal queries shared by the SQLite
// and PostgreSQL backends. Queries are written with ? placeholders and
// rebound for the target dialect.
package sqlstore

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/tracklit/internal/migration"
)

type Queries struct {
	db      *sql.DB
	dialect migration.Dialect
}

func New(db *sql.DB, dialect migration.Dialect) *Queries {
	return &Queries{db: db, dialect: dialect}
}

func (q *Queries) DB() *sql.DB {
	return q.db
}

// Rebind rewrites ? placeholders to $n for PostgreSQL. Queries never contain
// literal question marks.
func (q *Queries) Rebind(query string) string {
	if q.dialect != migration.Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (q *Queries) exec(tx *sql.Tx, query string, args ...interface{}) (sql.Result, error) {
	return tx.Exec(q.Rebind(query), args...)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
