package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"stridetrack/internal/analysis"
	"stridetrack/internal/store"
)

func createTestGoal(t *testing.T, svc *GoalService, name string, target float64, targetDate time.Time) *store.Goal {
	t.Helper()
	g, err := svc.CreateGoal(CreateGoalParams{
		AthleteID:   7,
		Name:        name,
		Type:        store.GoalDistance,
		TargetValue: target,
		Unit:        store.UnitMeters,
		TargetDate:  targetDate,
	})
	if err != nil {
		t.Fatalf("CreateGoal(%s) error = %v", name, err)
	}
	return g
}

func storeRun(t *testing.T, db *store.DB, id int64, start time.Time, distance float64) {
	t.Helper()
	err := db.UpsertActivity(&store.Activity{
		ID:         id,
		AthleteID:  7,
		Name:       "Run",
		Type:       "Run",
		StartDate:  start,
		Distance:   distance,
		MovingTime: 1800,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestCreateGoal(t *testing.T) {
	db := store.NewTestDB(t)
	svc := NewGoalService(db, 2)

	g := createTestGoal(t, svc, "run 100k", 100000, time.Now().UTC().AddDate(0, 3, 0))
	if g.ID == "" {
		t.Error("goal has no ID")
	}
	if g.Status != store.GoalActive {
		t.Errorf("Status = %s, want active", g.Status)
	}

	stored, err := db.GetGoal(g.ID)
	if err != nil {
		t.Fatalf("GetGoal() error = %v", err)
	}
	if stored.Name != "run 100k" {
		t.Errorf("stored name = %q", stored.Name)
	}
}

func TestCreateGoalRejectsInvalid(t *testing.T) {
	db := store.NewTestDB(t)
	svc := NewGoalService(db, 2)

	_, err := svc.CreateGoal(CreateGoalParams{
		AthleteID:   7,
		Name:        "bad",
		Type:        store.GoalPace,
		TargetValue: 1800,
		Unit:        store.UnitSeconds,
		TargetDate:  time.Now().UTC().AddDate(0, 3, 0),
		// RaceDistance missing
	})
	var verr *analysis.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("CreateGoal() error = %v, want *ValidationError", err)
	}

	goals, err := db.ListGoals()
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 0 {
		t.Error("invalid goal was stored")
	}
}

func TestPauseResume(t *testing.T) {
	db := store.NewTestDB(t)
	svc := NewGoalService(db, 2)
	g := createTestGoal(t, svc, "g", 100000, time.Now().UTC().AddDate(0, 3, 0))

	if err := svc.ResumeGoal(g.ID); !errors.Is(err, ErrGoalNotPaused) {
		t.Errorf("ResumeGoal(active) error = %v, want ErrGoalNotPaused", err)
	}
	if err := svc.PauseGoal(g.ID); err != nil {
		t.Fatalf("PauseGoal() error = %v", err)
	}
	if err := svc.PauseGoal(g.ID); !errors.Is(err, ErrGoalNotActive) {
		t.Errorf("PauseGoal(paused) error = %v, want ErrGoalNotActive", err)
	}
	if err := svc.ResumeGoal(g.ID); err != nil {
		t.Fatalf("ResumeGoal() error = %v", err)
	}

	stored, err := db.GetGoal(g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != store.GoalActive {
		t.Errorf("Status = %s, want active", stored.Status)
	}
}

func TestAnalyzeAll(t *testing.T) {
	db := store.NewTestDB(t)
	svc := NewGoalService(db, 2)
	now := time.Now().UTC()

	behind := createTestGoal(t, svc, "behind", 1000000, now.AddDate(0, 3, 0))
	done := createTestGoal(t, svc, "done", 10000, now.AddDate(0, 3, 0))
	paused := createTestGoal(t, svc, "paused", 50000, now.AddDate(0, 3, 0))
	if err := svc.PauseGoal(paused.ID); err != nil {
		t.Fatal(err)
	}

	storeRun(t, db, 1, now.AddDate(0, 0, 1), 6000)
	storeRun(t, db, 2, now.AddDate(0, 0, 2), 6000)
	if _, err := db.BumpActivityVersion(); err != nil {
		t.Fatal(err)
	}

	asOf := now.AddDate(0, 0, 7)
	reports, err := svc.AnalyzeAll(context.Background(), asOf)
	if err != nil {
		t.Fatalf("AnalyzeAll() error = %v", err)
	}

	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2 (paused goal skipped)", len(reports))
	}
	byID := make(map[string]GoalReport, len(reports))
	for _, r := range reports {
		if r.Err != nil {
			t.Fatalf("report %s error = %v", r.Goal.Name, r.Err)
		}
		byID[r.Goal.ID] = r
	}

	if byID[behind.ID].Analysis.Status != analysis.StatusBehind {
		t.Errorf("behind goal status = %s", byID[behind.ID].Analysis.Status)
	}
	if byID[done.ID].Analysis.ProgressPercentage < 100 {
		t.Errorf("done goal progress = %.1f, want >= 100", byID[done.ID].Analysis.ProgressPercentage)
	}

	// Lifecycle write-back
	storedBehind, err := db.GetGoal(behind.ID)
	if err != nil {
		t.Fatal(err)
	}
	if storedBehind.Status != store.GoalActive || storedBehind.CurrentValue != 12000 {
		t.Errorf("behind goal = (%s, %.0f), want (active, 12000)", storedBehind.Status, storedBehind.CurrentValue)
	}
	storedDone, err := db.GetGoal(done.ID)
	if err != nil {
		t.Fatal(err)
	}
	if storedDone.Status != store.GoalCompleted {
		t.Errorf("done goal status = %s, want completed", storedDone.Status)
	}

	// Completed goals drop out of the next run
	reports, err = svc.AnalyzeAll(context.Background(), asOf)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 || reports[0].Goal.ID != behind.ID {
		t.Errorf("second run analyzed %d goals, want only the active one", len(reports))
	}
}

func TestAnalyzeAllFailsMissedDeadline(t *testing.T) {
	db := store.NewTestDB(t)
	svc := NewGoalService(db, 2)
	now := time.Now().UTC()

	g := createTestGoal(t, svc, "missed", 100000, now.AddDate(0, 0, 10))

	reports, err := svc.AnalyzeAll(context.Background(), now.AddDate(0, 0, 20))
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 || reports[0].Err != nil {
		t.Fatalf("reports = %+v", reports)
	}

	stored, err := db.GetGoal(g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != store.GoalFailed {
		t.Errorf("status = %s, want failed", stored.Status)
	}
}

func TestAnalyzeGoalUsesCache(t *testing.T) {
	db := store.NewTestDB(t)
	svc := NewGoalService(db, 2)
	now := time.Now().UTC()

	g := createTestGoal(t, svc, "cached", 100000, now.AddDate(0, 3, 0))

	version, err := db.ActivityVersion()
	if err != nil {
		t.Fatal(err)
	}

	// Seed the cache with a recognizable payload for the current version
	sentinel := analysis.ProgressAnalysis{GoalID: g.ID, ProgressPercentage: 77}
	payload, err := json.Marshal(sentinel)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.SaveGoalAnalysis(g.ID, version, payload); err != nil {
		t.Fatal(err)
	}

	got, err := svc.AnalyzeGoal(g.ID, now.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("AnalyzeGoal() error = %v", err)
	}
	if got.ProgressPercentage != 77 {
		t.Errorf("ProgressPercentage = %.1f, want the cached 77", got.ProgressPercentage)
	}

	// A version bump invalidates the cache
	if _, err := db.BumpActivityVersion(); err != nil {
		t.Fatal(err)
	}
	got, err = svc.AnalyzeGoal(g.ID, now.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("AnalyzeGoal() after bump error = %v", err)
	}
	if got.ProgressPercentage == 77 {
		t.Error("stale cached analysis returned after version bump")
	}
}
