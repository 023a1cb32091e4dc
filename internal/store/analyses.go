package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrAnalysisNotFound is returned when no cached analysis exists for a
// (goal, activity version) pair
var ErrAnalysisNotFound = errors.New("analysis not found")

// SaveGoalAnalysis caches an analysis snapshot for a goal at a given
// activity-store version. Snapshots for older versions of the same goal are
// pruned; the cache key is content-derived so a re-save for the same version
// simply replaces the payload.
func (db *DB) SaveGoalAnalysis(goalID string, version int64, payload []byte) error {
	_, err := db.Exec(`
		INSERT INTO goal_analyses (goal_id, activity_version, payload, computed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(goal_id, activity_version) DO UPDATE SET
			payload = excluded.payload,
			computed_at = excluded.computed_at
	`, goalID, version, payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		DELETE FROM goal_analyses WHERE goal_id = ? AND activity_version < ?
	`, goalID, version)
	return err
}

// GetGoalAnalysis retrieves the cached analysis payload for a goal at a given
// activity-store version
func (db *DB) GetGoalAnalysis(goalID string, version int64) ([]byte, error) {
	var payload []byte
	err := db.QueryRow(`
		SELECT payload FROM goal_analyses
		WHERE goal_id = ? AND activity_version = ?
	`, goalID, version).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading analysis for goal %s: %w", goalID, err)
	}
	return payload, nil
}
