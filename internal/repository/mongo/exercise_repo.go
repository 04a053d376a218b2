package mongo

import (
	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
	workouts   *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
		workouts:   db.Collection(workoutCollectionName),
	}
}

// Create inserts a new exercise into an existing workout.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if exercise.Name == "" || exercise.WorkoutID == "" {
		return "", errors.New("exercise name and workout ID are required")
	}

	n, err := r.workouts.CountDocuments(ctx, bson.M{"_id": exercise.WorkoutID}, options.Count().SetLimit(1))
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", repository.ErrNotFound
	}

	exercise.ID = uuid.NewString()
	now := time.Now().UTC()
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = now
	}
	exercise.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, exercise); err != nil {
		return "", err
	}
	return exercise.ID, nil
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// ListByWorkout retrieves the exercises of a workout in logging order.
func (r *mongoExerciseRepository) ListByWorkout(ctx context.Context, workoutID string) ([]domain.Exercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"workoutId": workoutID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.Exercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// Update replaces the editable fields and refreshes exercise from the stored document.
func (r *mongoExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	set := bson.M{
		"name":      exercise.Name,
		"sets":      exercise.Sets,
		"reps":      exercise.Reps,
		"updatedAt": time.Now().UTC(),
	}
	unset := bson.M{}
	if exercise.Weight != nil {
		set["weight"] = *exercise.Weight
	} else {
		unset["weight"] = ""
	}
	if exercise.MuscleGroup != nil {
		set["muscleGroup"] = *exercise.MuscleGroup
	} else {
		unset["muscleGroup"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": exercise.ID}, update, opts).Decode(exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes an exercise by its ID.
func (r *mongoExerciseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	ensureIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
	})
}
