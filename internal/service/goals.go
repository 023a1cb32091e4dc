package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"stridetrack/internal/analysis"
	"stridetrack/internal/store"
)

// ErrGoalNotActive is returned when pausing a goal that isn't active
var ErrGoalNotActive = errors.New("goal is not active")

// ErrGoalNotPaused is returned when resuming a goal that isn't paused
var ErrGoalNotPaused = errors.New("goal is not paused")

// GoalService manages goal lifecycle and analysis
type GoalService struct {
	db      *store.DB
	workers int
}

// NewGoalService creates a goal service. workers bounds concurrent analyses;
// 0 means the default.
func NewGoalService(db *store.DB, workers int) *GoalService {
	if workers <= 0 {
		workers = DefaultAnalysisWorkers
	}
	return &GoalService{db: db, workers: workers}
}

// CreateGoalParams are the user-supplied fields of a new goal
type CreateGoalParams struct {
	AthleteID    int64
	Name         string
	Type         store.GoalType
	TargetValue  float64
	Unit         store.GoalUnit
	TargetDate   time.Time
	RaceDistance *float64
	RaceType     *string
}

// CreateGoal validates and stores a new goal
func (s *GoalService) CreateGoal(p CreateGoalParams) (*store.Goal, error) {
	g := store.Goal{
		ID:           uuid.New().String(),
		AthleteID:    p.AthleteID,
		Name:         p.Name,
		Type:         p.Type,
		TargetValue:  p.TargetValue,
		Unit:         p.Unit,
		TargetDate:   p.TargetDate,
		CreatedAt:    time.Now().UTC(),
		RaceDistance: p.RaceDistance,
		RaceType:     p.RaceType,
		Status:       store.GoalActive,
	}

	if err := analysis.ValidateGoal(g); err != nil {
		return nil, err
	}
	if err := s.db.InsertGoal(&g); err != nil {
		return nil, fmt.Errorf("storing goal: %w", err)
	}
	return &g, nil
}

// PauseGoal suspends analysis for an active goal
func (s *GoalService) PauseGoal(id string) error {
	g, err := s.db.GetGoal(id)
	if err != nil {
		return err
	}
	if g.Status != store.GoalActive {
		return ErrGoalNotActive
	}
	return s.db.SetGoalStatus(id, store.GoalPaused)
}

// ResumeGoal reactivates a paused goal
func (s *GoalService) ResumeGoal(id string) error {
	g, err := s.db.GetGoal(id)
	if err != nil {
		return err
	}
	if g.Status != store.GoalPaused {
		return ErrGoalNotPaused
	}
	return s.db.SetGoalStatus(id, store.GoalActive)
}

// DeleteGoal removes a goal and its cached analyses
func (s *GoalService) DeleteGoal(id string) error {
	return s.db.DeleteGoal(id)
}

// ListGoals returns all goals
func (s *GoalService) ListGoals() ([]store.Goal, error) {
	return s.db.ListGoals()
}

// AnalyzeGoal analyzes a single goal by ID, using the cache when the
// activity store hasn't changed since the last run
func (s *GoalService) AnalyzeGoal(id string, asOf time.Time) (*analysis.ProgressAnalysis, error) {
	g, err := s.db.GetGoal(id)
	if err != nil {
		return nil, err
	}
	version, err := s.db.ActivityVersion()
	if err != nil {
		return nil, err
	}
	return s.analyze(*g, version, asOf)
}

// GoalReport pairs a goal with its analysis outcome
type GoalReport struct {
	Goal     store.Goal
	Analysis *analysis.ProgressAnalysis
	Err      error
}

// AnalyzeAll analyzes every active goal concurrently and writes progress and
// lifecycle transitions back to the store. Paused and terminal goals are
// skipped. Results come back in the stored goal order regardless of which
// worker finished first.
func (s *GoalService) AnalyzeAll(ctx context.Context, asOf time.Time) ([]GoalReport, error) {
	goals, err := s.db.ListGoalsByStatus(store.GoalActive)
	if err != nil {
		return nil, err
	}
	version, err := s.db.ActivityVersion()
	if err != nil {
		return nil, err
	}

	reports := make([]GoalReport, len(goals))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i, g := range goals {
		wg.Add(1)
		go func(i int, g store.Goal) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				reports[i] = GoalReport{Goal: g, Err: ctx.Err()}
				return
			}

			a, err := s.analyze(g, version, asOf)
			if err == nil {
				err = s.writeBack(g, a, version)
			}
			reports[i] = GoalReport{Goal: g, Analysis: a, Err: err}
		}(i, g)
	}
	wg.Wait()

	return reports, ctx.Err()
}

// analyze computes or retrieves the analysis for a goal at an
// activity-store version. Cache hits skip both the activity query and the
// calculation; the asOf timestamp only matters on a miss.
func (s *GoalService) analyze(g store.Goal, version int64, asOf time.Time) (*analysis.ProgressAnalysis, error) {
	if payload, err := s.db.GetGoalAnalysis(g.ID, version); err == nil {
		var cached analysis.ProgressAnalysis
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		// Corrupt cache entry; fall through and recompute
	} else if !errors.Is(err, store.ErrAnalysisNotFound) {
		return nil, err
	}

	end := g.TargetDate
	if asOf.Before(end) {
		end = asOf
	}
	activities, err := s.db.ActivitiesInRange(g.AthleteID, g.CreatedAt, end)
	if err != nil {
		return nil, fmt.Errorf("loading activities for goal %s: %w", g.ID, err)
	}

	a, err := analysis.AnalyzeGoal(g, activities, asOf)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encoding analysis: %w", err)
	}
	if err := s.db.SaveGoalAnalysis(g.ID, version, payload); err != nil {
		return nil, fmt.Errorf("caching analysis: %w", err)
	}

	return a, nil
}

// writeBack persists the analyzed progress and applies lifecycle
// transitions: reaching the target completes the goal, a passed deadline
// without completion fails it. The version guard means a concurrent run
// against newer activity data always wins.
func (s *GoalService) writeBack(g store.Goal, a *analysis.ProgressAnalysis, version int64) error {
	status := g.Status
	switch {
	case a.ProgressPercentage >= 100:
		status = store.GoalCompleted
	case a.DaysRemaining == 0:
		status = store.GoalFailed
	}

	_, err := s.db.UpdateGoalProgress(g.ID, a.CurrentValue, status, version)
	return err
}
