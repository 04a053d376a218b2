package factory

import (
	"context"
	"testing"

	"biceppump/backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Memory(t *testing.T) {
	store, err := NewStore(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	require.NotNil(t, store)

	assert.NotNil(t, store.Users)
	assert.NotNil(t, store.Workouts)
	assert.NotNil(t, store.Exercises)
	assert.NoError(t, store.Close(context.Background()))
}

func TestNewStore_UnknownDriver(t *testing.T) {
	_, err := NewStore(context.Background(), config.DatabaseConfig{Driver: "sqlite"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}
