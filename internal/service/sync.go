package service

import (
	"context"
	"fmt"
	"time"

	"stridetrack/internal/provider"
	"stridetrack/internal/store"
)

// ActivityFetcher is the provider surface the sync service needs
type ActivityFetcher interface {
	GetAllActivities(ctx context.Context, after time.Time, onProgress func(fetched int)) ([]provider.Activity, error)
}

// SyncService pulls new activities from the provider into the local store
type SyncService struct {
	db     *store.DB
	client ActivityFetcher
}

// NewSyncService creates a sync service
func NewSyncService(db *store.DB, client ActivityFetcher) *SyncService {
	return &SyncService{db: db, client: client}
}

// SyncResult summarizes a sync run
type SyncResult struct {
	Fetched int
	Stored  int
	Version int64
}

// Sync fetches activities newer than the last sync and stores the runs.
// The activity-store version is bumped only when data changed, so cached
// analyses stay valid across no-op syncs.
func (s *SyncService) Sync(ctx context.Context, onProgress func(fetched int)) (*SyncResult, error) {
	after, err := s.lastSync()
	if err != nil {
		return nil, err
	}

	activities, err := s.client.GetAllActivities(ctx, after, onProgress)
	if err != nil {
		return nil, fmt.Errorf("fetching activities: %w", err)
	}

	result := &SyncResult{Fetched: len(activities)}
	newest := after

	for _, pa := range activities {
		if pa.Type != activityTypeRun {
			continue
		}
		if err := s.db.UpsertActivity(toStoreActivity(pa)); err != nil {
			return nil, fmt.Errorf("storing activity %d: %w", pa.ID, err)
		}
		result.Stored++
		if pa.StartDate.After(newest) {
			newest = pa.StartDate
		}
	}

	if newest.After(after) {
		if err := s.db.SetSyncState(lastSyncKey, newest.Format(time.RFC3339)); err != nil {
			return nil, err
		}
	}

	version, err := s.db.ActivityVersion()
	if err != nil {
		return nil, err
	}
	if result.Stored > 0 {
		version, err = s.db.BumpActivityVersion()
		if err != nil {
			return nil, err
		}
	}
	result.Version = version

	return result, nil
}

func (s *SyncService) lastSync() (time.Time, error) {
	value, err := s.db.GetSyncState(lastSyncKey)
	if err != nil || value == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing last sync time %q: %w", value, err)
	}
	return t, nil
}

func toStoreActivity(pa provider.Activity) *store.Activity {
	return &store.Activity{
		ID:           pa.ID,
		AthleteID:    pa.Athlete.ID,
		Name:         pa.Name,
		Type:         pa.Type,
		StartDate:    pa.StartDate,
		Distance:     pa.Distance,
		MovingTime:   pa.MovingTime,
		ElapsedTime:  pa.ElapsedTime,
		AverageSpeed: pa.AverageSpeed,
		WorkoutType:  pa.WorkoutType,
	}
}
