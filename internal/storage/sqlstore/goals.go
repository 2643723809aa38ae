package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	apperr "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
)

const goalColumns = `id, name, type, activity_id, target_minutes, target_count, target_days, period, created_at`

func (q *Queries) AddGoal(g models.Goal) error {
	_, err := q.db.Exec(q.Rebind(`
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		g.ID, g.Name, string(g.Type), g.Config.ActivityID,
		g.Config.TargetMinutes, g.Config.TargetCount, g.Config.TargetDays,
		nullPeriod(g.Config.Period), formatTime(g.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

func (q *Queries) UpdateGoal(g models.Goal) error {
	res, err := q.db.Exec(q.Rebind(`
		UPDATE goals
		SET name = ?, type = ?, activity_id = ?, target_minutes = ?, target_count = ?, target_days = ?, period = ?
		WHERE id = ?`),
		g.Name, string(g.Type), g.Config.ActivityID,
		g.Config.TargetMinutes, g.Config.TargetCount, g.Config.TargetDays,
		nullPeriod(g.Config.Period), g.ID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("goal", g.ID)
	}
	return nil
}

func (q *Queries) DeleteGoal(id string) error {
	res, err := q.db.Exec(q.Rebind(`DELETE FROM goals WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("goal", id)
	}
	return nil
}

func (q *Queries) GetGoal(id string) (models.Goal, error) {
	row := q.db.QueryRow(q.Rebind(`SELECT `+goalColumns+` FROM goals WHERE id = ?`), id)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Goal{}, apperr.NotFound("goal", id)
	}
	return g, err
}

func (q *Queries) GetAllGoals() (models.Goals, error) {
	rows, err := q.db.Query(`SELECT ` + goalColumns + ` FROM goals`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	goals := models.Goals{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals[g.ID] = g
	}
	return goals, rows.Err()
}

func scanGoal(row scanner) (models.Goal, error) {
	var g models.Goal
	var typ, createdAt string
	var period sql.NullString
	err := row.Scan(&g.ID, &g.Name, &typ, &g.Config.ActivityID,
		&g.Config.TargetMinutes, &g.Config.TargetCount, &g.Config.TargetDays,
		&period, &createdAt)
	if err != nil {
		return models.Goal{}, err
	}
	g.Type = models.GoalType(typ)
	if period.Valid {
		g.Config.Period = models.PeriodKind(period.String)
	}
	g.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return g, nil
}

func nullPeriod(p models.PeriodKind) sql.NullString {
	if p == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: string(p), Valid: true}
}
