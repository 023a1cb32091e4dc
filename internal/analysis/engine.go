package analysis

import (
	"math"
	"time"

	"stridetrack/internal/store"
)

// AnalyzeGoal computes the full progress analysis for a goal against an
// activity snapshot. It is a pure function of its arguments: repeated calls
// on the same inputs produce identical results, and distinct goals can be
// analyzed concurrently with no coordination.
//
// The only error condition is a *ValidationError for a malformed goal,
// raised before any calculation. Every later stage is total.
func AnalyzeGoal(g store.Goal, activities []store.Activity, asOf time.Time) (*ProgressAnalysis, error) {
	if err := ValidateGoal(g); err != nil {
		return nil, err
	}

	selected := SelectActivities(g, activities, asOf)
	progress := computeProgress(g, selected, asOf)
	daysRemaining := DaysRemaining(g.TargetDate, asOf)
	projected := ProjectCompletion(progress.Series, progress.Percentage, asOf, g.TargetDate)
	status, severity := Classify(progress.Percentage, projected, daysRemaining)

	a := &ProgressAnalysis{
		GoalID:                        g.ID,
		GoalType:                      g.Type,
		CurrentValue:                  progress.CurrentValue,
		ProgressPercentage:            progress.Percentage,
		ProjectedCompletionPercentage: projected,
		DaysRemaining:                 daysRemaining,
		Status:                        status,
		Severity:                      severity,
		CourseCorrectionNeeded:        status == StatusBehind,
		Series:                        progress.Series,
		AnalyzedAt:                    asOf,
	}
	a.Recommendations = Recommend(g, *a)

	return a, nil
}

// DaysRemaining returns the whole days from asOf until the target date,
// rounding partial days up and clamping at zero once the date has passed
func DaysRemaining(targetDate, asOf time.Time) int {
	days := int(math.Ceil(targetDate.Sub(asOf).Hours() / hoursPerDay))
	if days < 0 {
		return 0
	}
	return days
}
