package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrActivityNotFound is returned when an activity doesn't exist
var ErrActivityNotFound = errors.New("activity not found")

// UpsertActivity inserts or updates an activity
func (db *DB) UpsertActivity(a *Activity) error {
	_, err := db.Exec(`
		INSERT INTO activities (
			id, athlete_id, name, type, start_date,
			distance, moving_time, elapsed_time, average_speed, workout_type, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			athlete_id = excluded.athlete_id,
			name = excluded.name,
			type = excluded.type,
			start_date = excluded.start_date,
			distance = excluded.distance,
			moving_time = excluded.moving_time,
			elapsed_time = excluded.elapsed_time,
			average_speed = excluded.average_speed,
			workout_type = excluded.workout_type,
			updated_at = CURRENT_TIMESTAMP
	`,
		a.ID, a.AthleteID, a.Name, a.Type, a.StartDate.Format(time.RFC3339),
		a.Distance, a.MovingTime, a.ElapsedTime, a.AverageSpeed, a.WorkoutType,
	)
	return err
}

// GetActivity retrieves an activity by ID
func (db *DB) GetActivity(id int64) (*Activity, error) {
	row := db.QueryRow(`
		SELECT id, athlete_id, name, type, start_date,
			distance, moving_time, elapsed_time, average_speed, workout_type
		FROM activities
		WHERE id = ?
	`, id)

	a, err := scanActivity(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	return a, err
}

// ActivitiesInRange returns an athlete's activities with start date in
// [from, to], ordered by start date ascending
func (db *DB) ActivitiesInRange(athleteID int64, from, to time.Time) ([]Activity, error) {
	rows, err := db.Query(`
		SELECT id, athlete_id, name, type, start_date,
			distance, moving_time, elapsed_time, average_speed, workout_type
		FROM activities
		WHERE athlete_id = ? AND start_date >= ? AND start_date <= ?
		ORDER BY start_date ASC
	`, athleteID, from.Format(time.RFC3339), to.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

// ListActivities returns activities ordered by start date descending
func (db *DB) ListActivities(limit, offset int) ([]Activity, error) {
	rows, err := db.Query(`
		SELECT id, athlete_id, name, type, start_date,
			distance, moving_time, elapsed_time, average_speed, workout_type
		FROM activities
		ORDER BY start_date DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

// CountActivities returns the total number of activities
func (db *DB) CountActivities() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM activities").Scan(&count)
	return count, err
}

func scanActivity(scan func(dest ...any) error) (*Activity, error) {
	var a Activity
	var startDate string

	err := scan(
		&a.ID, &a.AthleteID, &a.Name, &a.Type, &startDate,
		&a.Distance, &a.MovingTime, &a.ElapsedTime, &a.AverageSpeed, &a.WorkoutType,
	)
	if err != nil {
		return nil, err
	}

	a.StartDate, err = time.Parse(time.RFC3339, startDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date %q: %w", startDate, err)
	}

	return &a, nil
}

func scanActivities(rows *sql.Rows) ([]Activity, error) {
	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows.Scan)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}
