package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrGoalNotFound is returned when a goal doesn't exist
var ErrGoalNotFound = errors.New("goal not found")

// InsertGoal stores a new goal
func (db *DB) InsertGoal(g *Goal) error {
	_, err := db.Exec(`
		INSERT INTO goals (
			id, athlete_id, name, type, target_value, unit, target_date,
			created_at, race_distance, race_type, current_value, status, analyzed_version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		g.ID, g.AthleteID, g.Name, string(g.Type), g.TargetValue, string(g.Unit),
		g.TargetDate.Format(time.RFC3339), g.CreatedAt.Format(time.RFC3339),
		g.RaceDistance, g.RaceType, g.CurrentValue, string(g.Status), g.AnalyzedVersion,
	)
	return err
}

// UpdateGoal updates a goal's editable fields (name, target value, target date)
func (db *DB) UpdateGoal(g *Goal) error {
	result, err := db.Exec(`
		UPDATE goals
		SET name = ?, target_value = ?, target_date = ?, race_distance = ?,
			race_type = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, g.Name, g.TargetValue, g.TargetDate.Format(time.RFC3339), g.RaceDistance, g.RaceType, g.ID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// GetGoal retrieves a goal by ID
func (db *DB) GetGoal(id string) (*Goal, error) {
	row := db.QueryRow(goalSelect+` WHERE id = ?`, id)
	g, err := scanGoal(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	return g, err
}

// ListGoals returns all goals ordered by creation date ascending
func (db *DB) ListGoals() ([]Goal, error) {
	rows, err := db.Query(goalSelect + ` ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGoals(rows)
}

// ListGoalsByStatus returns goals with the given status, ordered by creation date
func (db *DB) ListGoalsByStatus(status GoalStatus) ([]Goal, error) {
	rows, err := db.Query(goalSelect+` WHERE status = ? ORDER BY created_at ASC, id ASC`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGoals(rows)
}

// SetGoalStatus sets a goal's lifecycle status (pause, resume, explicit completion)
func (db *DB) SetGoalStatus(id string, status GoalStatus) error {
	result, err := db.Exec(`
		UPDATE goals SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, string(status), id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// UpdateGoalProgress writes back an analysis result. The version check makes
// the write-back last-writer-wins on activity-store version: a stale analysis
// (computed against an older version) never clobbers a newer one.
// Returns false when the write was skipped because a newer analysis won.
func (db *DB) UpdateGoalProgress(id string, currentValue float64, status GoalStatus, version int64) (bool, error) {
	result, err := db.Exec(`
		UPDATE goals
		SET current_value = ?, status = ?, analyzed_version = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND analyzed_version <= ?
	`, currentValue, string(status), version, id, version)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows == 0 {
		// Distinguish a lost race from a missing goal
		if _, err := db.GetGoal(id); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// DeleteGoal removes a goal and its cached analyses
func (db *DB) DeleteGoal(id string) error {
	result, err := db.Exec(`DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

const goalSelect = `
	SELECT id, athlete_id, name, type, target_value, unit, target_date,
		created_at, race_distance, race_type, current_value, status, analyzed_version
	FROM goals`

func scanGoal(scan func(dest ...any) error) (*Goal, error) {
	var g Goal
	var goalType, unit, status, targetDate, createdAt string

	err := scan(
		&g.ID, &g.AthleteID, &g.Name, &goalType, &g.TargetValue, &unit, &targetDate,
		&createdAt, &g.RaceDistance, &g.RaceType, &g.CurrentValue, &status, &g.AnalyzedVersion,
	)
	if err != nil {
		return nil, err
	}

	g.Type = GoalType(goalType)
	g.Unit = GoalUnit(unit)
	g.Status = GoalStatus(status)

	g.TargetDate, err = time.Parse(time.RFC3339, targetDate)
	if err != nil {
		return nil, fmt.Errorf("parsing target_date %q: %w", targetDate, err)
	}
	g.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}

	return &g, nil
}

func scanGoals(rows *sql.Rows) ([]Goal, error) {
	var goals []Goal
	for rows.Next() {
		g, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrGoalNotFound
	}
	return nil
}
