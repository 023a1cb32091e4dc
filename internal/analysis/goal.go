package analysis

import (
	"fmt"

	"stridetrack/internal/store"
)

// ValidationError reports a malformed goal. It is the only error kind the
// engine produces; every stage past validation is total for validated input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid goal: %s %s", e.Field, e.Reason)
}

// expectedUnits maps each goal type to the unit its target value must carry
var expectedUnits = map[store.GoalType]store.GoalUnit{
	store.GoalDistance:    store.UnitMeters,
	store.GoalPace:        store.UnitSeconds,
	store.GoalRace:        store.UnitSeconds,
	store.GoalFrequency:   store.UnitCount,
	store.GoalConsistency: store.UnitCount,
}

// ValidateGoal checks a goal's configuration. It runs once per analysis,
// before any calculation.
func ValidateGoal(g store.Goal) error {
	want, ok := expectedUnits[g.Type]
	if !ok {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown goal type %q", g.Type)}
	}
	if g.Unit != want {
		return &ValidationError{
			Field:  "unit",
			Reason: fmt.Sprintf("%s goals require unit %q, got %q", g.Type, want, g.Unit),
		}
	}
	if g.TargetValue <= 0 {
		return &ValidationError{Field: "target_value", Reason: "must be positive"}
	}
	if !g.TargetDate.After(g.CreatedAt) {
		return &ValidationError{Field: "target_date", Reason: "must be after creation date"}
	}

	switch g.Type {
	case store.GoalPace, store.GoalRace:
		if g.RaceDistance == nil || *g.RaceDistance <= 0 {
			return &ValidationError{
				Field:  "race_distance",
				Reason: fmt.Sprintf("required for %s goals", g.Type),
			}
		}
	case store.GoalFrequency:
		if g.RaceType == nil || *g.RaceType == "" {
			return &ValidationError{Field: "race_type", Reason: "required for frequency goals"}
		}
	}

	return nil
}
