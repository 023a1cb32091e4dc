package analysis

import (
	"testing"

	"stridetrack/internal/store"
)

func behindAnalysis(g store.Goal, severity Severity) ProgressAnalysis {
	return ProgressAnalysis{
		GoalID:        g.ID,
		GoalType:      g.Type,
		Status:        StatusBehind,
		Severity:      severity,
		DaysRemaining: 30,
		AnalyzedAt:    g.CreatedAt.AddDate(0, 1, 0),
	}
}

func TestRecommendOnlyWhenBehind(t *testing.T) {
	g := validGoal(store.GoalDistance)

	for _, status := range []HealthStatus{StatusAhead, StatusOnTrack} {
		a := behindAnalysis(g, SeverityNone)
		a.Status = status
		if got := Recommend(g, a); got != nil {
			t.Errorf("Recommend() with status %s = %v, want nil", status, got)
		}
	}
}

func TestRecommendDistance(t *testing.T) {
	g := validGoal(store.GoalDistance)
	g.TargetValue = 100000

	a := behindAnalysis(g, SeverityModerate)
	a.CurrentValue = 30000
	a.ProgressPercentage = 30

	got := Recommend(g, a)
	if len(got) != 1 {
		t.Fatalf("got %d corrections, want 1", len(got))
	}
	c := got[0]
	if c.AdjustmentType != AdjustIncreaseDistance {
		t.Errorf("AdjustmentType = %s, want %s", c.AdjustmentType, AdjustIncreaseDistance)
	}
	if c.Severity != SeverityModerate {
		t.Errorf("Severity = %s, want %s", c.Severity, SeverityModerate)
	}
	if c.WeeklyDistanceDelta == nil {
		t.Fatal("WeeklyDistanceDelta is nil")
	}
	// 70 km remaining over 30/7 weeks needs ~16.3 km/week; currently
	// averaging ~6.9 km/week over ~4.35 elapsed weeks
	needed := 70000 / (30.0 / 7)
	current := 30000 / elapsedWeeksFraction(g.CreatedAt, a.AnalyzedAt)
	if want := needed - current; !approxEqual(*c.WeeklyDistanceDelta, want) {
		t.Errorf("WeeklyDistanceDelta = %.1f, want %.1f", *c.WeeklyDistanceDelta, want)
	}
}

func TestRecommendPace(t *testing.T) {
	g := validGoal(store.GoalPace)
	g.TargetValue = 1800

	t.Run("with a recorded best", func(t *testing.T) {
		a := behindAnalysis(g, SeverityMinor)
		a.CurrentValue = 1900

		got := Recommend(g, a)
		if len(got) != 1 {
			t.Fatalf("got %d corrections, want 1", len(got))
		}
		c := got[0]
		if c.AdjustmentType != AdjustImprovePace {
			t.Errorf("AdjustmentType = %s, want %s", c.AdjustmentType, AdjustImprovePace)
		}
		if c.TargetPaceDelta == nil || !approxEqual(*c.TargetPaceDelta, 100) {
			t.Errorf("TargetPaceDelta = %v, want 100", c.TargetPaceDelta)
		}
	})

	t.Run("with no baseline yet", func(t *testing.T) {
		a := behindAnalysis(g, SeverityMajor)
		a.CurrentValue = 0

		got := Recommend(g, a)
		if len(got) != 1 {
			t.Fatalf("got %d corrections, want 1", len(got))
		}
		if got[0].TargetPaceDelta != nil {
			t.Error("TargetPaceDelta set with no recorded best")
		}
		if len(got[0].SpecificActions) < 2 {
			t.Error("expected a baseline time-trial action")
		}
	})
}

func TestRecommendConsistencyIsQualitative(t *testing.T) {
	g := validGoal(store.GoalConsistency)

	a := behindAnalysis(g, SeverityModerate)
	a.CurrentValue = 0.4

	got := Recommend(g, a)
	if len(got) != 1 {
		t.Fatalf("got %d corrections, want 1", len(got))
	}
	c := got[0]
	if c.AdjustmentType != AdjustIncreaseFrequency {
		t.Errorf("AdjustmentType = %s, want %s", c.AdjustmentType, AdjustIncreaseFrequency)
	}
	if c.WeeklyFrequencyDelta != nil || c.WeeklyDistanceDelta != nil {
		t.Error("consistency corrections must not carry numeric deltas")
	}
}

func TestRecommendTimelineExtension(t *testing.T) {
	g := validGoal(store.GoalDistance)
	g.TargetValue = 100000

	t.Run("deadline passed with no measurable rate", func(t *testing.T) {
		a := behindAnalysis(g, SeverityMajor)
		a.DaysRemaining = 0
		a.CurrentValue = 10000
		a.ProgressPercentage = 10

		got := Recommend(g, a)
		if len(got) != 2 {
			t.Fatalf("got %d corrections, want 2", len(got))
		}
		// Primary correction leads; timeline extension trails
		if got[0].AdjustmentType != AdjustIncreaseDistance {
			t.Errorf("got[0] = %s, want %s", got[0].AdjustmentType, AdjustIncreaseDistance)
		}
		if got[1].AdjustmentType != AdjustTimeline {
			t.Fatalf("got[1] = %s, want %s", got[1].AdjustmentType, AdjustTimeline)
		}
		if got[1].TimelineAdjustmentDays == nil || *got[1].TimelineAdjustmentDays != DefaultTimelineExtensionDays {
			t.Errorf("TimelineAdjustmentDays = %v, want %d", got[1].TimelineAdjustmentDays, DefaultTimelineExtensionDays)
		}
	})

	t.Run("slow measurable rate sizes the extension", func(t *testing.T) {
		a := behindAnalysis(g, SeverityMajor)
		a.DaysRemaining = 10
		a.CurrentValue = 20000
		a.ProgressPercentage = 20
		// 1%/day trend; even at 1.5%/day the remaining 80% takes 54 days
		a.Series = seriesAt(g.CreatedAt, []float64{0, 10, 20}, []float64{0, 10, 20})

		got := Recommend(g, a)
		if len(got) != 2 {
			t.Fatalf("got %d corrections, want 2", len(got))
		}
		c := got[1]
		if c.AdjustmentType != AdjustTimeline {
			t.Fatalf("got[1] = %s, want %s", c.AdjustmentType, AdjustTimeline)
		}
		// ceil(80 / 1.5) = 54 days needed, 10 remain
		if c.TimelineAdjustmentDays == nil || *c.TimelineAdjustmentDays != 44 {
			t.Errorf("TimelineAdjustmentDays = %v, want 44", c.TimelineAdjustmentDays)
		}
	})

	t.Run("minor severity gets no timeline correction", func(t *testing.T) {
		a := behindAnalysis(g, SeverityMinor)
		a.CurrentValue = 80000
		a.ProgressPercentage = 80

		got := Recommend(g, a)
		for _, c := range got {
			if c.AdjustmentType == AdjustTimeline {
				t.Error("minor severity produced a timeline correction")
			}
		}
	})
}

func TestRecommendOrderIsDeterministic(t *testing.T) {
	g := validGoal(store.GoalDistance)
	g.TargetValue = 100000

	a := behindAnalysis(g, SeverityMajor)
	a.DaysRemaining = 0
	a.CurrentValue = 5000
	a.ProgressPercentage = 5

	first := Recommend(g, a)
	for i := 0; i < 10; i++ {
		again := Recommend(g, a)
		if len(again) != len(first) {
			t.Fatalf("run %d: got %d corrections, want %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j].AdjustmentType != first[j].AdjustmentType {
				t.Fatalf("run %d: order differs at %d", i, j)
			}
		}
	}
}
