package analysis

import (
	"math"
	"sort"
	"time"

	"stridetrack/internal/store"
)

// SelectActivities returns the activities relevant to a goal as of a given
// date, in ascending timestamp order. The input slice is never mutated.
//
// The window is [goal.CreatedAt, min(goal.TargetDate, asOf)]. Pace and race
// goals additionally require the activity distance to fall inside the
// tolerance band around the goal's race distance. Frequency goals with a
// race type other than "any" keep only race-flagged activities whose
// distance matches the category; activities without classification metadata
// never match.
func SelectActivities(g store.Goal, activities []store.Activity, asOf time.Time) []store.Activity {
	end := g.TargetDate
	if asOf.Before(end) {
		end = asOf
	}

	var selected []store.Activity
	for _, a := range activities {
		if a.StartDate.Before(g.CreatedAt) || a.StartDate.After(end) {
			continue
		}
		if !qualifies(g, &a) {
			continue
		}
		selected = append(selected, a)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].StartDate.Before(selected[j].StartDate)
	})

	return selected
}

// qualifies applies the goal's type-specific activity filter
func qualifies(g store.Goal, a *store.Activity) bool {
	switch g.Type {
	case store.GoalPace, store.GoalRace:
		return g.RaceDistance != nil && matchesDistance(a.Distance, *g.RaceDistance)
	case store.GoalFrequency:
		if g.RaceType == nil || *g.RaceType == RaceTypeAny {
			return true
		}
		ref, ok := RaceCategoryDistances[*g.RaceType]
		if !ok {
			return false
		}
		return a.IsRace() && matchesDistance(a.Distance, ref)
	default:
		return true
	}
}

// matchesDistance checks if a distance is within the tolerance band of a target
func matchesDistance(distance, target float64) bool {
	return math.Abs(distance-target) <= target*DistanceTolerance
}
