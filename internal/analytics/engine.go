// Package analytics turns a user's workout history into chartable progress
// series, personal records and the Pump Score.
//
// All functions are pure: they never touch storage and never validate the
// numeric fields of their input. Output order always follows input order, so
// callers pass workouts sorted by creation time.
package analytics

import (
	"math"
	"strings"
	"time"

	"biceppump/backend/internal/domain"
)

// Pump Score weights and scales.
const (
	volumeWeight    = 0.4
	intensityWeight = 0.3
	frequencyWeight = 0.3

	volumeDivisor     = 100.0
	intensityDivisor  = 10.0
	pointsPerWorkout  = 10.0
	maxComponentScore = 100.0
	DefaultWindowDays = 30
)

// Window is the trailing period the Pump Score is computed over.
type Window struct {
	Reference time.Time
	Days      int
}

// Since returns the inclusive lower bound of the window. There is no upper
// bound: workouts dated after Reference still count.
func (w Window) Since() time.Time {
	days := w.Days
	if days <= 0 {
		days = DefaultWindowDays
	}
	return w.Reference.AddDate(0, 0, -days)
}

// BuildProgressSeries groups every logged entry by its exact exercise name.
// A non-empty filter keeps only entries whose name contains it, ignoring case;
// grouping still uses the exact name, so "Bench Press" and "bench press" stay
// two series.
func BuildProgressSeries(workouts []domain.Workout, filter string) []ProgressSeries {
	filter = strings.ToLower(filter)

	series := []ProgressSeries{}
	index := make(map[string]int)

	for _, workout := range workouts {
		for _, ex := range workout.Exercises {
			if filter != "" && !strings.Contains(strings.ToLower(ex.Name), filter) {
				continue
			}

			i, ok := index[ex.Name]
			if !ok {
				i = len(series)
				index[ex.Name] = i
				series = append(series, ProgressSeries{Exercise: ex.Name})
			}

			series[i].Data = append(series[i].Data, ProgressPoint{
				Date:   workout.CreatedAt,
				Weight: ex.WeightOrZero(),
				Reps:   ex.Reps,
				Sets:   ex.Sets,
				Volume: ex.Volume(),
			})
		}
	}

	return series
}

// ComputePumpScore scores the given workouts. The caller restricts them to the
// scoring window (see Window); dates are not checked again here.
func ComputePumpScore(workouts []domain.Workout) PumpScore {
	var totalVolume, totalIntensity float64
	for _, workout := range workouts {
		for _, ex := range workout.Exercises {
			totalVolume += ex.Volume()
			totalIntensity += ex.WeightOrZero()
		}
	}
	workoutCount := len(workouts)

	volumeScore := math.Min(totalVolume/volumeDivisor, maxComponentScore)
	intensityScore := math.Min(totalIntensity/intensityDivisor, maxComponentScore)
	frequencyScore := math.Min(float64(workoutCount)*pointsPerWorkout, maxComponentScore)

	score := math.Round(
		volumeScore*volumeWeight + intensityScore*intensityWeight + frequencyScore*frequencyWeight,
	)

	return PumpScore{
		Score: int(score),
		Breakdown: Breakdown{
			Volume:       int(math.Round(volumeScore)),
			Intensity:    int(math.Round(intensityScore)),
			Frequency:    int(math.Round(frequencyScore)),
			WorkoutCount: workoutCount,
		},
		TotalVolume:    totalVolume,
		TotalIntensity: totalIntensity,
		VolumeScore:    volumeScore,
		IntensityScore: intensityScore,
		FrequencyScore: frequencyScore,
	}
}

// ComputePersonalRecords picks the heaviest entry per exact exercise name.
// An entry replaces the record only when strictly heavier, so the first entry
// seen at a tied weight wins.
func ComputePersonalRecords(workouts []domain.Workout) []PersonalRecord {
	records := []PersonalRecord{}
	index := make(map[string]int)

	for _, workout := range workouts {
		for _, ex := range workout.Exercises {
			record := PersonalRecord{
				Exercise:    ex.Name,
				Weight:      ex.Weight,
				Reps:        ex.Reps,
				Sets:        ex.Sets,
				Date:        workout.CreatedAt,
				MuscleGroup: ex.MuscleGroup,
			}

			i, ok := index[ex.Name]
			if !ok {
				index[ex.Name] = len(records)
				records = append(records, record)
				continue
			}
			if ex.WeightOrZero() > weightOrZero(records[i].Weight) {
				records[i] = record
			}
		}
	}

	return records
}

func weightOrZero(w *float64) float64 {
	if w == nil {
		return 0
	}
	return *w
}
