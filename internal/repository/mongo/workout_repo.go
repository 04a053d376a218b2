package mongo

import (
	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/repository"
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository. Exercises
// live in their own collection and are attached after the workouts are read.
type mongoWorkoutRepository struct {
	collection *mongo.Collection
	exercises  *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository backed by MongoDB.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
		exercises:  db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new workout. Exercises on the value are not stored.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	if workout.UserID == "" || workout.Name == "" {
		return "", errors.New("workout user ID and name are required")
	}

	workout.ID = uuid.NewString()
	now := time.Now().UTC()
	if workout.CreatedAt.IsZero() {
		workout.CreatedAt = now
	}
	workout.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, workout); err != nil {
		return "", err
	}
	return workout.ID, nil
}

// GetByID retrieves a workout of userID together with its exercises.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id, userID string) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	workouts := []domain.Workout{workout}
	if err := r.attachExercises(ctx, workouts, ""); err != nil {
		return nil, err
	}
	return &workouts[0], nil
}

// List returns one page of the user's workouts.
func (r *mongoWorkoutRepository) List(ctx context.Context, userID string, query domain.WorkoutQuery) ([]domain.Workout, error) {
	direction := 1
	if query.Descending {
		direction = -1
	}
	sort := bson.D{{Key: "createdAt", Value: direction}}
	if query.SortBy == domain.SortByName {
		sort = bson.D{{Key: "name", Value: direction}, {Key: "createdAt", Value: direction}}
	}

	findOptions := options.Find().SetSort(sort).SetSkip(int64(query.Skip))
	if query.Limit > 0 {
		findOptions.SetLimit(int64(query.Limit))
	}

	workouts, err := r.find(ctx, workoutFilter(userID, query.StartDate, query.EndDate), findOptions)
	if err != nil {
		return nil, err
	}
	if err := r.attachExercises(ctx, workouts, query.MuscleGroup); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Count returns the number of workouts List would page over.
func (r *mongoWorkoutRepository) Count(ctx context.Context, userID string, query domain.WorkoutQuery) (int64, error) {
	return r.collection.CountDocuments(ctx, workoutFilter(userID, query.StartDate, query.EndDate))
}

// History returns the user's workouts created at or after since, oldest first.
func (r *mongoWorkoutRepository) History(ctx context.Context, userID string, since time.Time) ([]domain.Workout, error) {
	var start *time.Time
	if !since.IsZero() {
		start = &since
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	workouts, err := r.find(ctx, workoutFilter(userID, start, nil), findOptions)
	if err != nil {
		return nil, err
	}
	if err := r.attachExercises(ctx, workouts, ""); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Update changes name, description and duration of a workout owned by workout.UserID.
func (r *mongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	workout.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":        workout.Name,
			"description": workout.Description,
			"duration":    workout.Duration,
			"updatedAt":   workout.UpdatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Workout
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": workout.ID, "userId": workout.UserID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.ErrNotFound
		}
		return err
	}
	workout.CreatedAt = updated.CreatedAt
	return nil
}

// Delete removes the workout and then its exercises.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	_, err = r.exercises.DeleteMany(ctx, bson.M{"workoutId": id})
	return err
}

func (r *mongoWorkoutRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Workout, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// attachExercises loads the exercises of all workouts with one query.
func (r *mongoWorkoutRepository) attachExercises(ctx context.Context, workouts []domain.Workout, muscleGroup string) error {
	if len(workouts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(workouts))
	index := make(map[string]int, len(workouts))
	for i := range workouts {
		ids = append(ids, workouts[i].ID)
		index[workouts[i].ID] = i
		workouts[i].Exercises = []domain.Exercise{}
	}

	filter := bson.M{"workoutId": bson.M{"$in": ids}}
	if muscleGroup != "" {
		filter["muscleGroup"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(muscleGroup) + "$", Options: "i"}
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.exercises.Find(ctx, filter, findOptions)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var exercise domain.Exercise
		if err := cursor.Decode(&exercise); err != nil {
			return err
		}
		if i, ok := index[exercise.WorkoutID]; ok {
			workouts[i].Exercises = append(workouts[i].Exercises, exercise)
		}
	}
	return cursor.Err()
}

func workoutFilter(userID string, start, end *time.Time) bson.M {
	filter := bson.M{"userId": userID}
	if start != nil || end != nil {
		createdAt := bson.M{}
		if start != nil {
			createdAt["$gte"] = *start
		}
		if end != nil {
			createdAt["$lte"] = *end
		}
		filter["createdAt"] = createdAt
	}
	return filter
}

// EnsureWorkoutIndexes creates necessary indexes for the workouts collection.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	ensureIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	})
}
