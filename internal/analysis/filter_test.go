package analysis

import (
	"testing"
	"time"

	"stridetrack/internal/store"
)

func run(id int64, start time.Time, distance float64, movingTime int) store.Activity {
	return store.Activity{
		ID:         id,
		AthleteID:  7,
		Type:       "Run",
		StartDate:  start,
		Distance:   distance,
		MovingTime: movingTime,
	}
}

func raceRun(id int64, start time.Time, distance float64, movingTime int) store.Activity {
	a := run(id, start, distance, movingTime)
	wt := store.WorkoutTypeRace
	a.WorkoutType = &wt
	return a
}

func TestSelectActivitiesWindow(t *testing.T) {
	g := validGoal(store.GoalDistance)
	asOf := g.CreatedAt.AddDate(0, 1, 0)

	activities := []store.Activity{
		run(1, g.CreatedAt.AddDate(0, 0, -1), 5000, 1800), // before creation
		run(2, g.CreatedAt, 5000, 1800),                   // on creation day
		run(3, g.CreatedAt.AddDate(0, 0, 10), 5000, 1800),
		run(4, asOf, 5000, 1800),                 // on asOf boundary
		run(5, asOf.AddDate(0, 0, 1), 5000, 1800), // after asOf
	}

	selected := SelectActivities(g, activities, asOf)
	want := []int64{2, 3, 4}
	if len(selected) != len(want) {
		t.Fatalf("selected %d activities, want %d", len(selected), len(want))
	}
	for i, id := range want {
		if selected[i].ID != id {
			t.Errorf("selected[%d].ID = %d, want %d", i, selected[i].ID, id)
		}
	}
}

func TestSelectActivitiesWindowEndsAtTargetDate(t *testing.T) {
	g := validGoal(store.GoalDistance)
	asOf := g.TargetDate.AddDate(0, 1, 0) // analyzing after the deadline

	activities := []store.Activity{
		run(1, g.CreatedAt.AddDate(0, 0, 5), 5000, 1800),
		run(2, g.TargetDate.AddDate(0, 0, 5), 5000, 1800), // after deadline
	}

	selected := SelectActivities(g, activities, asOf)
	if len(selected) != 1 || selected[0].ID != 1 {
		t.Fatalf("selected = %v, want only activity 1", selected)
	}
}

func TestSelectActivitiesPaceDistanceBand(t *testing.T) {
	g := validGoal(store.GoalPace) // race distance 5000m, 5% tolerance

	tests := []struct {
		name     string
		distance float64
		want     bool
	}{
		{"exact", 5000, true},
		{"lower bound", 4750, true},
		{"below lower bound", 4749, false},
		{"upper bound", 5250, true},
		{"above upper bound", 5251, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activities := []store.Activity{run(1, g.CreatedAt.AddDate(0, 0, 1), tt.distance, 1800)}
			selected := SelectActivities(g, activities, g.CreatedAt.AddDate(0, 1, 0))
			if got := len(selected) == 1; got != tt.want {
				t.Errorf("distance %.0f selected = %t, want %t", tt.distance, got, tt.want)
			}
		})
	}
}

func TestSelectActivitiesFrequencyCategory(t *testing.T) {
	g := validGoal(store.GoalFrequency) // race type "5k"
	asOf := g.CreatedAt.AddDate(0, 1, 0)
	day := g.CreatedAt.AddDate(0, 0, 1)

	activities := []store.Activity{
		raceRun(1, day, 5000, 1500),  // 5k race, qualifies
		run(2, day, 5000, 1500),      // right distance but not race-flagged
		raceRun(3, day, 10000, 3000), // race but wrong distance
		raceRun(4, day, 5100, 1520),  // 5k race within tolerance
	}

	selected := SelectActivities(g, activities, asOf)
	want := []int64{1, 4}
	if len(selected) != len(want) {
		t.Fatalf("selected %d activities, want %d", len(selected), len(want))
	}
	for i, id := range want {
		if selected[i].ID != id {
			t.Errorf("selected[%d].ID = %d, want %d", i, selected[i].ID, id)
		}
	}
}

func TestSelectActivitiesFrequencyAny(t *testing.T) {
	g := validGoal(store.GoalFrequency)
	any := RaceTypeAny
	g.RaceType = &any
	day := g.CreatedAt.AddDate(0, 0, 1)

	activities := []store.Activity{
		run(1, day, 3000, 1000), // untagged short run still counts
		raceRun(2, day, 42195, 14400),
	}

	selected := SelectActivities(g, activities, g.CreatedAt.AddDate(0, 1, 0))
	if len(selected) != 2 {
		t.Fatalf("selected %d activities, want 2", len(selected))
	}
}

func TestSelectActivitiesUnknownCategory(t *testing.T) {
	g := validGoal(store.GoalFrequency)
	unknown := "50k"
	g.RaceType = &unknown
	day := g.CreatedAt.AddDate(0, 0, 1)

	selected := SelectActivities(g, []store.Activity{raceRun(1, day, 50000, 18000)}, g.CreatedAt.AddDate(0, 1, 0))
	if len(selected) != 0 {
		t.Fatalf("selected %d activities for unknown category, want 0", len(selected))
	}
}

func TestSelectActivitiesSortsAndPreservesInput(t *testing.T) {
	g := validGoal(store.GoalDistance)
	d1 := g.CreatedAt.AddDate(0, 0, 1)
	d2 := g.CreatedAt.AddDate(0, 0, 2)

	activities := []store.Activity{
		run(2, d2, 5000, 1800),
		run(1, d1, 5000, 1800),
	}

	selected := SelectActivities(g, activities, g.CreatedAt.AddDate(0, 1, 0))
	if selected[0].ID != 1 || selected[1].ID != 2 {
		t.Errorf("selected order = [%d %d], want [1 2]", selected[0].ID, selected[1].ID)
	}
	if activities[0].ID != 2 {
		t.Error("input slice was reordered")
	}
}
