package provider

import "time"

// Activity is an activity summary as returned by the provider API
type Activity struct {
	ID           int64     `json:"id"`
	Athlete      Athlete   `json:"athlete"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	StartDate    time.Time `json:"start_date"`
	Distance     float64   `json:"distance"`      // meters
	MovingTime   int       `json:"moving_time"`   // seconds
	ElapsedTime  int       `json:"elapsed_time"`  // seconds
	AverageSpeed float64   `json:"average_speed"` // m/s

	// WorkoutType classifies the effort; 1 = race. Absent for untagged runs.
	WorkoutType *int `json:"workout_type"`
}

// Athlete identifies the activity owner
type Athlete struct {
	ID int64 `json:"id"`
}
