package analytics

import "time"

// ProgressPoint is one charted data point of an exercise, taken from a
// single logged entry.
type ProgressPoint struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
	Reps   int       `json:"reps"`
	Sets   int       `json:"sets"`
	Volume float64   `json:"volume"`
}

// ProgressSeries is the chronological data of one exact exercise name.
type ProgressSeries struct {
	Exercise string          `json:"exercise"`
	Data     []ProgressPoint `json:"data"`
}

// PersonalRecord is the heaviest logged entry of an exercise name.
// Weight is kept as stored, so it stays nil when no weight was ever logged.
type PersonalRecord struct {
	Exercise    string    `json:"exercise"`
	Weight      *float64  `json:"weight"`
	Reps        int       `json:"reps"`
	Sets        int       `json:"sets"`
	Date        time.Time `json:"date"`
	MuscleGroup *string   `json:"muscleGroup"`
}

// Breakdown holds the rounded component scores shown next to the Pump Score.
type Breakdown struct {
	Volume       int `json:"volume"`
	Intensity    int `json:"intensity"`
	Frequency    int `json:"frequency"`
	WorkoutCount int `json:"workoutCount"`
}

// PumpScore is the composite 0-100 score over the scoring window.
type PumpScore struct {
	Score     int       `json:"pumpScore"`
	Breakdown Breakdown `json:"breakdown"`

	// raw, unrounded inputs; handy for logs and tests
	TotalVolume    float64 `json:"-"`
	TotalIntensity float64 `json:"-"`
	VolumeScore    float64 `json:"-"`
	IntensityScore float64 `json:"-"`
	FrequencyScore float64 `json:"-"`
}
