package domain

import (
	"time"
)

// Workout is one training session of a user. It owns its exercises.
type Workout struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description"`
	Duration    *int      `bson:"duration,omitempty" json:"duration"` // minutes
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`

	// Exercises are stored separately and attached by the repository.
	Exercises []Exercise `bson:"-" json:"exercises"`
}

// WorkoutSort is the column a workout listing is ordered by.
type WorkoutSort string

const (
	SortByDate WorkoutSort = "date"
	SortByName WorkoutSort = "name"
)

// WorkoutQuery narrows a workout listing. Zero values mean "no restriction".
type WorkoutQuery struct {
	StartDate   *time.Time
	EndDate     *time.Time
	MuscleGroup string // filters attached exercises, not workouts
	SortBy      WorkoutSort
	Descending  bool
	Skip        int
	Limit       int // 0 = no limit
}
