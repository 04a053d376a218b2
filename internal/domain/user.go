package domain

import (
	"time"
)

// User is an account of the app. PumpScore is the last computed score and is
// overwritten on every recomputation.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`             // Should be unique
	PhoneNumber  string    `bson:"phoneNumber" json:"phoneNumber"` // Should be unique
	PasswordHash string    `bson:"passwordHash" json:"-"`          // Never expose this via JSON
	PumpScore    int       `bson:"pumpScore" json:"pumpScore"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`

	Profile `bson:",inline"`
}

// Profile holds the optional body/goal data filled in after signup.
type Profile struct {
	Age              *int     `bson:"age,omitempty" json:"age"`
	Gender           string   `bson:"gender,omitempty" json:"gender"`
	Height           *float64 `bson:"height,omitempty" json:"height"`
	Weight           *float64 `bson:"weight,omitempty" json:"weight"`
	FitnessGoal      string   `bson:"fitnessGoal,omitempty" json:"fitnessGoal"`
	ActivityLevel    string   `bson:"activityLevel,omitempty" json:"activityLevel"`
	ProfileCompleted bool     `bson:"profileCompleted" json:"profileCompleted"`
}

// LeaderboardEntry is the public projection of a user on the leaderboard.
type LeaderboardEntry struct {
	Rank      int       `json:"rank"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PumpScore int       `json:"pumpScore"`
	CreatedAt time.Time `json:"createdAt"`
}

// LeaderboardPage is one page of the leaderboard plus the total user count.
type LeaderboardPage struct {
	Entries []LeaderboardEntry `json:"entries"`
	Total   int64              `json:"total"`
}
