package analysis

import (
	"fmt"
	"math"
	"sort"

	"stridetrack/internal/store"
)

// Recommend derives the ordered list of corrective actions for an analysis.
// The rule table is keyed by (goal type, severity); corrections are sorted by
// severity (most severe first) then by adjustment type, so the output order
// never depends on internal iteration order.
func Recommend(g store.Goal, a ProgressAnalysis) []CourseCorrection {
	if a.Status != StatusBehind {
		return nil
	}

	var corrections []CourseCorrection
	if c := primaryCorrection(g, a); c != nil {
		corrections = append(corrections, *c)
	}
	if c := timelineCorrection(a); c != nil {
		// Timeline extensions are a fallback; the primary correction always
		// leads when both are present
		corrections = append(corrections, *c)
	}

	sort.SliceStable(corrections, func(i, j int) bool {
		if severityRank[corrections[i].Severity] != severityRank[corrections[j].Severity] {
			return severityRank[corrections[i].Severity] > severityRank[corrections[j].Severity]
		}
		return adjustmentRank[corrections[i].AdjustmentType] < adjustmentRank[corrections[j].AdjustmentType]
	})

	return corrections
}

// primaryCorrection builds the type-specific correction for a goal that is behind
func primaryCorrection(g store.Goal, a ProgressAnalysis) *CourseCorrection {
	switch g.Type {
	case store.GoalDistance:
		delta := weeklyValueDelta(g, a)
		return &CourseCorrection{
			Severity:            a.Severity,
			AdjustmentType:      AdjustIncreaseDistance,
			WeeklyDistanceDelta: &delta,
			SpecificActions: []string{
				fmt.Sprintf("Increase weekly distance by %.1f km", delta/1000),
				"Add a longer run on the weekend",
			},
		}

	case store.GoalPace, store.GoalRace:
		c := &CourseCorrection{
			Severity:       a.Severity,
			AdjustmentType: AdjustImprovePace,
			SpecificActions: []string{
				"Add weekly interval or tempo sessions",
			},
		}
		if a.CurrentValue > g.TargetValue {
			delta := a.CurrentValue - g.TargetValue
			c.TargetPaceDelta = &delta
			c.SpecificActions = append(c.SpecificActions,
				fmt.Sprintf("Take %.0f seconds off your best time", delta))
		} else if a.CurrentValue == 0 {
			c.SpecificActions = append(c.SpecificActions,
				"Log a time trial at the goal distance to establish a baseline")
		}
		return c

	case store.GoalFrequency:
		delta := weeklyValueDelta(g, a)
		return &CourseCorrection{
			Severity:             a.Severity,
			AdjustmentType:       AdjustIncreaseFrequency,
			WeeklyFrequencyDelta: &delta,
			SpecificActions: []string{
				fmt.Sprintf("Schedule %.1f more qualifying runs per week", delta),
			},
		}

	case store.GoalConsistency:
		// Consistency is a rate, not a count; no meaningful numeric delta
		return &CourseCorrection{
			Severity:       a.Severity,
			AdjustmentType: AdjustIncreaseFrequency,
			SpecificActions: []string{
				"Schedule runs on fixed weekdays",
				"Aim for at least one short run in every week",
			},
		}
	}
	return nil
}

// weeklyValueDelta sizes how much the weekly rate (in the goal's own unit)
// must rise to close the remaining gap within the time left
func weeklyValueDelta(g store.Goal, a ProgressAnalysis) float64 {
	remaining := g.TargetValue - a.CurrentValue
	if remaining <= 0 {
		return 0
	}

	days := a.DaysRemaining
	if days < 1 {
		days = 1
	}
	neededPerWeek := remaining / (float64(days) / daysPerWeek)
	currentPerWeek := a.CurrentValue / elapsedWeeksFraction(g.CreatedAt, a.AnalyzedAt)

	delta := neededPerWeek - currentPerWeek
	if delta < 0 {
		delta = 0
	}
	return delta
}

// timelineCorrection proposes a target-date extension when a major shortfall
// cannot be closed even at the capped rate increase
func timelineCorrection(a ProgressAnalysis) *CourseCorrection {
	if a.Severity != SeverityMajor {
		return nil
	}
	gap := 100 - a.ProgressPercentage
	if gap <= 0 {
		return nil
	}

	rate, ok := fitDailyRate(a.Series)
	capped := 0.0
	if ok && rate > 0 {
		capped = rate * (1 + MaxWeeklyIncrease)
	}

	var extension int
	switch {
	case capped > 0:
		needed := int(math.Ceil(gap / capped))
		if needed > a.DaysRemaining {
			extension = needed - a.DaysRemaining
		}
	case a.DaysRemaining == 0:
		// Deadline passed with no measurable rate; propose a fixed extension
		extension = DefaultTimelineExtensionDays
	}
	if extension <= 0 {
		return nil
	}

	return &CourseCorrection{
		Severity:               SeverityMajor,
		AdjustmentType:         AdjustTimeline,
		TimelineAdjustmentDays: &extension,
		SpecificActions: []string{
			fmt.Sprintf("Consider moving the target date out by %d days", extension),
		},
	}
}
