package store

import (
	"database/sql"
	"errors"
	"strconv"
)

const activityVersionKey = "activity_version"

// GetSyncState retrieves a sync state value by key.
// Returns empty string if key doesn't exist.
func (db *DB) GetSyncState(key string) (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM sync_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetSyncState sets a sync state value
func (db *DB) SetSyncState(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO sync_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// ActivityVersion returns the current activity-store version. The version is
// bumped on every sync that changes activity data and keys the analysis cache.
func (db *DB) ActivityVersion() (int64, error) {
	value, err := db.GetSyncState(activityVersionKey)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return 0, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

// BumpActivityVersion increments the activity-store version and returns the
// new value
func (db *DB) BumpActivityVersion() (int64, error) {
	version, err := db.ActivityVersion()
	if err != nil {
		return 0, err
	}
	version++
	if err := db.SetSyncState(activityVersionKey, strconv.FormatInt(version, 10)); err != nil {
		return 0, err
	}
	return version, nil
}
