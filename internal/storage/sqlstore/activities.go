package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"

	apperr "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
)

func (q *Queries) AddActivity(a models.Activity) error {
	tx, err := q.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var createdAt sql.NullString
	if a.CreatedAt != nil {
		createdAt = sql.NullString{String: formatTime(*a.CreatedAt), Valid: true}
	}
	if _, err := q.exec(tx, `
		INSERT INTO activities (id, name, type, created_at)
		VALUES (?, ?, ?, ?)`,
		a.ID, a.Name, string(a.Type), createdAt); err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	if err := q.writeChildren(tx, a); err != nil {
		return err
	}
	return tx.Commit()
}

func (q *Queries) UpdateActivity(a models.Activity) error {
	tx, err := q.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := q.exec(tx, `UPDATE activities SET name = ?, type = ? WHERE id = ?`, a.Name, string(a.Type), a.ID)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("activity", a.ID)
	}
	if err := q.clearChildren(tx, a.ID); err != nil {
		return err
	}
	if err := q.writeChildren(tx, a); err != nil {
		return err
	}
	return tx.Commit()
}

func (q *Queries) DeleteActivity(id string) error {
	tx, err := q.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := q.clearChildren(tx, id); err != nil {
		return err
	}
	res, err := q.exec(tx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("activity", id)
	}
	return tx.Commit()
}

func (q *Queries) clearChildren(tx *sql.Tx, id string) error {
	if _, err := q.exec(tx, `DELETE FROM time_entries WHERE activity_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear time entries: %w", err)
	}
	if _, err := q.exec(tx, `DELETE FROM checks WHERE activity_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear checks: %w", err)
	}
	return nil
}

func (q *Queries) writeChildren(tx *sql.Tx, a models.Activity) error {
	for i, e := range a.Entries {
		var end sql.NullInt64
		if e.End != nil {
			end = sql.NullInt64{Int64: *e.End, Valid: true}
		}
		if _, err := q.exec(tx, `
			INSERT INTO time_entries (activity_id, seq, start_ms, end_ms)
			VALUES (?, ?, ?, ?)`,
			a.ID, i, e.Start, end); err != nil {
			return fmt.Errorf("failed to insert time entry: %w", err)
		}
	}

	// Only marked days are stored; an unchecked day is the absence of a row
	days := make([]string, 0, len(a.Checks))
	for day, done := range a.Checks {
		if done {
			days = append(days, day)
		}
	}
	sort.Strings(days)
	for _, day := range days {
		if _, err := q.exec(tx, `INSERT INTO checks (activity_id, day) VALUES (?, ?)`, a.ID, day); err != nil {
			return fmt.Errorf("failed to insert check: %w", err)
		}
	}
	return nil
}

func (q *Queries) GetActivity(id string) (models.Activity, error) {
	row := q.db.QueryRow(q.Rebind(`SELECT id, name, type, created_at FROM activities WHERE id = ?`), id)
	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Activity{}, apperr.NotFound("activity", id)
	}
	if err != nil {
		return models.Activity{}, err
	}

	all := models.Activities{a.ID: a}
	if err := q.loadEntries(all, `WHERE activity_id = ?`, id); err != nil {
		return models.Activity{}, err
	}
	if err := q.loadChecks(all, `WHERE activity_id = ?`, id); err != nil {
		return models.Activity{}, err
	}
	return all[id], nil
}

func (q *Queries) GetAllActivities() (models.Activities, error) {
	rows, err := q.db.Query(`SELECT id, name, type, created_at FROM activities`)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	all := models.Activities{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		all[a.ID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := q.loadEntries(all, ""); err != nil {
		return nil, err
	}
	if err := q.loadChecks(all, ""); err != nil {
		return nil, err
	}
	return all, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanActivity(row scanner) (models.Activity, error) {
	var a models.Activity
	var typ string
	var createdAt sql.NullString
	if err := row.Scan(&a.ID, &a.Name, &typ, &createdAt); err != nil {
		return models.Activity{}, err
	}
	a.Type = models.ActivityType(typ)
	if createdAt.Valid {
		t, err := parseTime(createdAt.String)
		if err != nil {
			return models.Activity{}, fmt.Errorf("failed to parse created_at: %w", err)
		}
		a.CreatedAt = &t
	}
	return a, nil
}

func (q *Queries) loadEntries(into models.Activities, where string, args ...interface{}) error {
	rows, err := q.db.Query(q.Rebind(`SELECT activity_id, start_ms, end_ms FROM time_entries `+where+` ORDER BY activity_id, seq`), args...)
	if err != nil {
		return fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var e models.TimeEntry
		var end sql.NullInt64
		if err := rows.Scan(&id, &e.Start, &end); err != nil {
			return err
		}
		if end.Valid {
			v := end.Int64
			e.End = &v
		}
		a, ok := into[id]
		if !ok {
			continue
		}
		a.Entries = append(a.Entries, e)
		into[id] = a
	}
	return rows.Err()
}

func (q *Queries) loadChecks(into models.Activities, where string, args ...interface{}) error {
	rows, err := q.db.Query(q.Rebind(`SELECT activity_id, day FROM checks `+where), args...)
	if err != nil {
		return fmt.Errorf("failed to query checks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, day string
		if err := rows.Scan(&id, &day); err != nil {
			return err
		}
		a, ok := into[id]
		if !ok {
			continue
		}
		if a.Checks == nil {
			a.Checks = map[string]bool{}
		}
		a.Checks[day] = true
		into[id] = a
	}
	return rows.Err()
}
