package analysis

import (
	"time"

	"stridetrack/internal/store"
)

// HealthStatus classifies how a goal is trending relative to its target
type HealthStatus string

const (
	StatusOnTrack HealthStatus = "on_track"
	StatusBehind  HealthStatus = "behind"
	StatusAhead   HealthStatus = "ahead"
)

// Severity grades how far behind a goal is
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
)

// severityRank orders severities for recommendation sorting.
// Higher rank = more severe.
var severityRank = map[Severity]int{
	SeverityNone:     0,
	SeverityMinor:    1,
	SeverityModerate: 2,
	SeverityMajor:    3,
}

// AdjustmentType identifies the kind of behavioral change a correction asks for
type AdjustmentType string

const (
	AdjustIncreaseFrequency AdjustmentType = "increase_frequency"
	AdjustIncreaseDistance  AdjustmentType = "increase_distance"
	AdjustImprovePace       AdjustmentType = "improve_pace"
	AdjustTimeline          AdjustmentType = "adjust_timeline"
)

// adjustmentRank fixes the tie-break order of recommendations so the output
// never depends on map iteration order
var adjustmentRank = map[AdjustmentType]int{
	AdjustIncreaseFrequency: 0,
	AdjustIncreaseDistance:  1,
	AdjustImprovePace:       2,
	AdjustTimeline:          3,
}

// ProgressPoint is one sample of the goal's progress series
type ProgressPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"` // progress percentage as of Date
}

// CourseCorrection is a single structured recommendation
type CourseCorrection struct {
	Severity        Severity       `json:"severity"`
	AdjustmentType  AdjustmentType `json:"adjustment_type"`
	SpecificActions []string       `json:"specific_actions"`

	TimelineAdjustmentDays *int     `json:"timeline_adjustment_days,omitempty"`
	WeeklyDistanceDelta    *float64 `json:"weekly_distance_delta,omitempty"`    // meters per week
	WeeklyFrequencyDelta   *float64 `json:"weekly_frequency_delta,omitempty"`   // runs per week
	TargetPaceDelta        *float64 `json:"target_pace_delta,omitempty"`        // seconds to shave
}

// ProgressAnalysis is the computed snapshot of a goal's trajectory.
// It is ephemeral: callers decide whether to cache or persist it.
type ProgressAnalysis struct {
	GoalID                        string             `json:"goal_id"`
	GoalType                      store.GoalType     `json:"goal_type"`
	CurrentValue                  float64            `json:"current_value"`
	ProgressPercentage            float64            `json:"progress_percentage"`             // 100 = target met; uncapped
	ProjectedCompletionPercentage float64            `json:"projected_completion_percentage"`
	DaysRemaining                 int                `json:"days_remaining"`
	Status                        HealthStatus       `json:"status"`
	Severity                      Severity           `json:"severity"`
	CourseCorrectionNeeded        bool               `json:"course_correction_needed"`
	Recommendations               []CourseCorrection `json:"recommendations"`
	Series                        []ProgressPoint    `json:"series"`
	AnalyzedAt                    time.Time          `json:"analyzed_at"`
}
