package mongo

import (
	"context"
	"time"

	"biceppump/backend/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// The connect call is lazy; ping the primary to verify the server answers.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// NewStore connects to MongoDB and returns the repositories of database dbName.
// Index creation runs in the background and only logs failures.
func NewStore(uri, dbName string) (*repository.Store, error) {
	client, err := ConnectDB(uri)
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		EnsureUserIndexes(ctx, db.Collection(userCollectionName))
		EnsureWorkoutIndexes(ctx, db.Collection(workoutCollectionName))
		EnsureExerciseIndexes(ctx, db.Collection(exerciseCollectionName))
		log.Debugln("mongo index creation completed")
	}()

	return repository.NewStore(
		NewMongoUserRepository(db),
		NewMongoWorkoutRepository(db),
		NewMongoExerciseRepository(db),
		func(context.Context) error { return DisconnectDB(client) },
	), nil
}

func ensureIndexes(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) {
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warnf("failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
