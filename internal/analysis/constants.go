package analysis

// Standard race distances in meters
const (
	Distance5K       = 5000.0
	Distance10K      = 10000.0
	DistanceHalfMara = 21097.5
	DistanceMarathon = 42195.0
)

// RaceTypeAny matches every qualifying activity regardless of race category
const RaceTypeAny = "any"

// RaceCategoryDistances maps race category names to their reference distances
var RaceCategoryDistances = map[string]float64{
	"5k":            Distance5K,
	"10k":           Distance10K,
	"half_marathon": DistanceHalfMara,
	"marathon":      DistanceMarathon,
}

const (
	// DistanceTolerance is the fractional band around a reference distance
	// within which an activity counts as a comparable effort
	DistanceTolerance = 0.05

	// TrendWindowPoints caps how many trailing series points the linear fit uses
	TrendWindowPoints = 8

	// MaxWeeklyIncrease caps how much faster than the current average rate a
	// runner can sanely be asked to progress when sizing corrections
	MaxWeeklyIncrease = 0.5

	// DefaultTimelineExtensionDays is proposed when the deadline has passed
	// but no progress rate is measurable yet
	DefaultTimelineExtensionDays = 28
)

// Projected-completion thresholds for status classification
const (
	AheadThreshold    = 100.0
	OnTrackThreshold  = 90.0
	MinorThreshold    = 70.0
	ModerateThreshold = 40.0
)

const (
	hoursPerDay  = 24
	daysPerWeek  = 7
	hoursPerWeek = hoursPerDay * daysPerWeek
)
