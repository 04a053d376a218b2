// internal/domain/exercise.go
package domain

import (
	"time"
)

// Exercise is one logged exercise entry inside a workout.
type Exercise struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	WorkoutID   string    `bson:"workoutId" json:"workoutId"` // Link to the owning Workout
	Name        string    `bson:"name" json:"name"`
	Sets        int       `bson:"sets" json:"sets"`
	Reps        int       `bson:"reps" json:"reps"`
	Weight      *float64  `bson:"weight,omitempty" json:"weight"`           // nil when bodyweight / not recorded
	MuscleGroup *string   `bson:"muscleGroup,omitempty" json:"muscleGroup"` // e.g., "Chest", "Legs", "Back"
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// WeightOrZero returns the logged weight, treating an absent weight as 0.
func (e Exercise) WeightOrZero() float64 {
	if e.Weight == nil {
		return 0
	}
	return *e.Weight
}

// Volume is weight * reps * sets with an absent weight counted as 0.
func (e Exercise) Volume() float64 {
	return e.WeightOrZero() * float64(e.Reps) * float64(e.Sets)
}
