package analysis

// Classify maps current and projected progress onto a health status and
// severity. Thresholds are fixed so results stay reproducible.
//
// A passed deadline with the target unmet forces behind/major no matter how
// optimistic the trend looked.
func Classify(progressPct, projectedPct float64, daysRemaining int) (HealthStatus, Severity) {
	if daysRemaining == 0 && progressPct < 100 {
		return StatusBehind, SeverityMajor
	}

	switch {
	case projectedPct >= AheadThreshold:
		return StatusAhead, SeverityNone
	case projectedPct >= OnTrackThreshold:
		return StatusOnTrack, SeverityNone
	case projectedPct >= MinorThreshold:
		return StatusBehind, SeverityMinor
	case projectedPct >= ModerateThreshold:
		return StatusBehind, SeverityModerate
	default:
		return StatusBehind, SeverityMajor
	}
}
