package analysis

import (
	"time"

	"stridetrack/internal/store"
)

// progressResult is the output of a per-type progress calculator
type progressResult struct {
	CurrentValue float64
	Percentage   float64
	Series       []ProgressPoint
}

// computeProgress dispatches to the calculator for the goal's type. Each
// calculator is total for validated input: empty activity lists produce zero
// progress, never an error.
func computeProgress(g store.Goal, activities []store.Activity, asOf time.Time) progressResult {
	switch g.Type {
	case store.GoalDistance:
		return distanceProgress(g, activities)
	case store.GoalPace, store.GoalRace:
		return paceProgress(g, activities)
	case store.GoalFrequency:
		return frequencyProgress(g, activities)
	case store.GoalConsistency:
		return consistencyProgress(g, activities, asOf)
	}
	// Unknown types are rejected by ValidateGoal before this point
	return progressResult{}
}

// distanceProgress accumulates total distance toward a meters target
func distanceProgress(g store.Goal, activities []store.Activity) progressResult {
	var res progressResult
	for _, a := range activities {
		res.CurrentValue += a.Distance
		res.Series = append(res.Series, ProgressPoint{
			Date:  a.StartDate,
			Value: 100 * res.CurrentValue / g.TargetValue,
		})
	}
	res.Percentage = 100 * res.CurrentValue / g.TargetValue
	return res
}

// paceProgress tracks the best elapsed time over the goal's race distance.
// Activity durations are normalized to the race distance by linear pace
// scaling, since the filter admits distances within the tolerance band.
//
// The percentage is inverted relative to every other goal type: a faster
// (smaller) best time yields a higher percentage, 100 * target / best.
// With no qualifying activity the progress is 0, not undefined.
func paceProgress(g store.Goal, activities []store.Activity) progressResult {
	var res progressResult
	best := 0.0
	for _, a := range activities {
		if a.MovingTime <= 0 || a.Distance <= 0 {
			continue
		}
		normalized := float64(a.MovingTime) * (*g.RaceDistance / a.Distance)
		if best == 0 || normalized < best {
			best = normalized
		}
		res.Series = append(res.Series, ProgressPoint{
			Date:  a.StartDate,
			Value: 100 * g.TargetValue / best,
		})
	}
	res.CurrentValue = best
	if best > 0 {
		res.Percentage = 100 * g.TargetValue / best
	}
	return res
}

// frequencyProgress counts qualifying activities toward a count target
func frequencyProgress(g store.Goal, activities []store.Activity) progressResult {
	var res progressResult
	count := 0
	for _, a := range activities {
		count++
		res.Series = append(res.Series, ProgressPoint{
			Date:  a.StartDate,
			Value: 100 * float64(count) / g.TargetValue,
		})
	}
	res.CurrentValue = float64(count)
	res.Percentage = 100 * res.CurrentValue / g.TargetValue
	return res
}

// consistencyProgress measures the fraction of elapsed weeks since goal
// creation that contain at least one qualifying activity. The current value
// is the fraction itself; the partial current week counts as elapsed.
func consistencyProgress(g store.Goal, activities []store.Activity, asOf time.Time) progressResult {
	elapsed := elapsedWeeks(g.CreatedAt, asOf)

	seen := make(map[int]bool)
	for _, a := range activities {
		seen[weekIndex(g.CreatedAt, a.StartDate)] = true
	}

	var res progressResult
	covered := 0
	for w := 0; w < elapsed; w++ {
		if seen[w] {
			covered++
		}
		end := g.CreatedAt.Add(time.Duration(w+1) * daysPerWeek * hoursPerDay * time.Hour)
		if end.After(asOf) {
			end = asOf
		}
		res.Series = append(res.Series, ProgressPoint{
			Date:  end,
			Value: 100 * float64(covered) / float64(w+1),
		})
	}

	res.CurrentValue = float64(covered) / float64(elapsed)
	res.Percentage = 100 * res.CurrentValue
	return res
}

// weekIndex returns the zero-based 7-day bucket containing t, counted from start
func weekIndex(start, t time.Time) int {
	return int(t.Sub(start).Hours() / hoursPerWeek)
}

// elapsedWeeks returns how many week buckets have begun between start and asOf
func elapsedWeeks(start, asOf time.Time) int {
	if !asOf.After(start) {
		return 1
	}
	return weekIndex(start, asOf) + 1
}

// elapsedWeeksFraction is elapsedWeeks as a continuous value, floored at one
// day so rate divisions stay defined immediately after goal creation
func elapsedWeeksFraction(start, asOf time.Time) float64 {
	weeks := asOf.Sub(start).Hours() / hoursPerWeek
	if weeks < 1.0/daysPerWeek {
		weeks = 1.0 / daysPerWeek
	}
	return weeks
}
