package analysis

import "time"

// ProjectCompletion extrapolates the progress percentage expected at the
// target date from the trend in the series. It fits a line to the trailing
// window of the series and extends the fitted daily rate over the time
// remaining from asOf to targetDate.
//
// Degenerate inputs degrade to flat extrapolation rather than failing:
// fewer than two points, a zero time span, or a target date already reached
// all return the current progress unchanged.
func ProjectCompletion(series []ProgressPoint, current float64, asOf, targetDate time.Time) float64 {
	rate, ok := fitDailyRate(series)
	if !ok {
		return current
	}

	remaining := targetDate.Sub(asOf).Hours() / hoursPerDay
	if remaining <= 0 {
		return current
	}

	projected := current + rate*remaining
	if projected < 0 {
		projected = 0
	}
	return projected
}

// fitDailyRate computes the least-squares slope of progress percentage per
// day over the trailing window of the series. Returns ok = false when no
// trend is measurable (under two points, or all points at one instant).
func fitDailyRate(series []ProgressPoint) (float64, bool) {
	if len(series) < 2 {
		return 0, false
	}

	window := series
	if len(window) > TrendWindowPoints {
		window = window[len(window)-TrendWindowPoints:]
	}

	base := window[0].Date
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range window {
		x := p.Date.Sub(base).Hours() / hoursPerDay
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumXX += x * x
	}

	n := float64(len(window))
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, false
	}

	return (n*sumXY - sumX*sumY) / denom, true
}
