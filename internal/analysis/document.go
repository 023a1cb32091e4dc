package analysis

import (
	"fmt"
	"strings"
)

// DocumentField is one entry of the flat key-value rendering of an analysis
type DocumentField struct {
	Key   string
	Value string
}

// Document renders the analysis as an ordered, language-free key-value
// document. This is the payload handed to a text-generation collaborator;
// the collaborator phrases it but never alters the structured fields.
func (a *ProgressAnalysis) Document() []DocumentField {
	fields := []DocumentField{
		{"goal_id", a.GoalID},
		{"goal_type", string(a.GoalType)},
		{"current_value", fmt.Sprintf("%.1f", a.CurrentValue)},
		{"progress_percentage", fmt.Sprintf("%.1f", a.ProgressPercentage)},
		{"projected_completion_percentage", fmt.Sprintf("%.1f", a.ProjectedCompletionPercentage)},
		{"days_remaining", fmt.Sprintf("%d", a.DaysRemaining)},
		{"status", string(a.Status)},
		{"severity", string(a.Severity)},
		{"course_correction_needed", fmt.Sprintf("%t", a.CourseCorrectionNeeded)},
	}

	for i, c := range a.Recommendations {
		prefix := fmt.Sprintf("recommendation_%d_", i+1)
		fields = append(fields,
			DocumentField{prefix + "severity", string(c.Severity)},
			DocumentField{prefix + "adjustment_type", string(c.AdjustmentType)},
			DocumentField{prefix + "actions", strings.Join(c.SpecificActions, "; ")},
		)
		if c.TimelineAdjustmentDays != nil {
			fields = append(fields, DocumentField{prefix + "timeline_adjustment_days", fmt.Sprintf("%d", *c.TimelineAdjustmentDays)})
		}
		if c.WeeklyDistanceDelta != nil {
			fields = append(fields, DocumentField{prefix + "weekly_distance_delta", fmt.Sprintf("%.1f", *c.WeeklyDistanceDelta)})
		}
		if c.WeeklyFrequencyDelta != nil {
			fields = append(fields, DocumentField{prefix + "weekly_frequency_delta", fmt.Sprintf("%.2f", *c.WeeklyFrequencyDelta)})
		}
		if c.TargetPaceDelta != nil {
			fields = append(fields, DocumentField{prefix + "target_pace_delta", fmt.Sprintf("%.1f", *c.TargetPaceDelta)})
		}
	}

	return fields
}
