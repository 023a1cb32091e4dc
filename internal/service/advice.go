package service

import (
	"fmt"
	"strings"

	"stridetrack/internal/analysis"
)

// Phraser turns an analysis into human-readable advice. Implementations may
// phrase freely but must not alter the structured fields; the analysis
// document is the source of truth for every number they mention.
type Phraser interface {
	Phrase(a *analysis.ProgressAnalysis) string
}

// StaticPhraser renders advice with fixed templates. Output is a pure
// function of the analysis document, so phrasing two identical analyses
// yields identical text.
type StaticPhraser struct{}

// Phrase renders the analysis as a short advice paragraph
func (StaticPhraser) Phrase(a *analysis.ProgressAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Progress %.1f%%, projected %.1f%% by the deadline",
		a.ProgressPercentage, a.ProjectedCompletionPercentage)
	if a.DaysRemaining == 1 {
		b.WriteString(" (1 day remaining).")
	} else {
		fmt.Fprintf(&b, " (%d days remaining).", a.DaysRemaining)
	}

	switch a.Status {
	case analysis.StatusAhead:
		b.WriteString(" You are ahead of schedule.")
	case analysis.StatusOnTrack:
		b.WriteString(" You are on track.")
	case analysis.StatusBehind:
		fmt.Fprintf(&b, " You are behind schedule (%s).", a.Severity)
	}

	for _, c := range a.Recommendations {
		b.WriteString("\n- ")
		b.WriteString(describeCorrection(c))
	}

	return b.String()
}

func describeCorrection(c analysis.CourseCorrection) string {
	parts := []string{strings.ReplaceAll(string(c.AdjustmentType), "_", " ")}

	switch {
	case c.WeeklyDistanceDelta != nil:
		parts = append(parts, fmt.Sprintf("add %.1f km per week", *c.WeeklyDistanceDelta/1000))
	case c.WeeklyFrequencyDelta != nil:
		parts = append(parts, fmt.Sprintf("add %.1f runs per week", *c.WeeklyFrequencyDelta))
	case c.TargetPaceDelta != nil:
		parts = append(parts, fmt.Sprintf("shave %.0f seconds off your best time", *c.TargetPaceDelta))
	case c.TimelineAdjustmentDays != nil:
		parts = append(parts, fmt.Sprintf("extend the deadline by %d days", *c.TimelineAdjustmentDays))
	}

	out := strings.Join(parts, ": ")
	if len(c.SpecificActions) > 0 {
		out += " (" + strings.Join(c.SpecificActions, "; ") + ")"
	}
	return out
}
