package store

import "time"

// Auth represents OAuth tokens for the activity provider API
type Auth struct {
	AthleteID    int64
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// WorkoutTypeRace is the provider's workout_type value for a race effort
const WorkoutTypeRace = 1

// Activity represents a synced activity summary
type Activity struct {
	ID           int64
	AthleteID    int64
	Name         string
	Type         string    // "Run"
	StartDate    time.Time
	Distance     float64 // meters
	MovingTime   int     // seconds
	ElapsedTime  int     // seconds
	AverageSpeed float64 // m/s
	WorkoutType  *int    // nullable classification hint; 1 = race
}

// IsRace reports whether the activity carries a race classification.
// Activities without a workout_type are not treated as races.
func (a *Activity) IsRace() bool {
	return a.WorkoutType != nil && *a.WorkoutType == WorkoutTypeRace
}

// GoalType identifies which progress calculation applies to a goal
type GoalType string

const (
	GoalDistance    GoalType = "distance"
	GoalPace        GoalType = "pace"
	GoalFrequency   GoalType = "frequency"
	GoalConsistency GoalType = "consistency"
	GoalRace        GoalType = "race"
)

// GoalUnit is the unit of a goal's target value
type GoalUnit string

const (
	UnitMeters  GoalUnit = "meters"
	UnitSeconds GoalUnit = "seconds"
	UnitCount   GoalUnit = "count"
)

// GoalStatus is the lifecycle state of a goal
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
	GoalFailed    GoalStatus = "failed"
)

// Terminal reports whether the status excludes the goal from further analysis.
func (s GoalStatus) Terminal() bool {
	return s == GoalCompleted || s == GoalFailed
}

// Goal represents a declared training target.
// CurrentValue is a cache of the last analysis run; it is always recomputable
// from the activity store and never a source of truth on its own.
type Goal struct {
	ID           string
	AthleteID    int64
	Name         string
	Type         GoalType
	TargetValue  float64
	Unit         GoalUnit
	TargetDate   time.Time
	CreatedAt    time.Time
	RaceDistance *float64 // meters; required for pace and race goals
	RaceType     *string  // race category filter; required for frequency goals
	CurrentValue float64
	Status       GoalStatus

	// AnalyzedVersion is the activity-store version the cached
	// CurrentValue/Status were computed against.
	AnalyzedVersion int64
}

// GoalAnalysisRow is a cached analysis snapshot for a goal, keyed by the
// activity-store version it was computed against.
type GoalAnalysisRow struct {
	GoalID          string
	ActivityVersion int64
	Payload         []byte // JSON-encoded analysis.ProgressAnalysis
	ComputedAt      time.Time
}
