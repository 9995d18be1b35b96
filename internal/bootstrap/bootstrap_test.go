package bootstrap

import (
	"alcyxob/training-coach/internal/config"
	"alcyxob/training-coach/internal/repository/memory"
	"alcyxob/training-coach/internal/service"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRepositories_Fixture(t *testing.T) {
	ctx := context.Background()
	repos, closeFn, err := OpenRepositories(ctx, config.Config{Data: config.DataConfig{Source: config.SourceFixture}})
	require.NoError(t, err)
	defer closeFn()

	services := NewServices(repos, nil, "test-secret", time.Hour)
	user, err := services.Auth.Authenticate(ctx, "maria@example.com", memory.DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, memory.StudentMariaID, user.ID)

	w, err := services.Catalog.GetWorkout(ctx, memory.WorkoutBackID)
	require.NoError(t, err)
	assert.Len(t, w.Exercises, 7)

	posts, err := services.Feed.List(ctx, service.Viewer{ID: user.ID, Role: user.Role})
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestOpenRepositories_UnknownSource(t *testing.T) {
	_, _, err := OpenRepositories(context.Background(), config.Config{Data: config.DataConfig{Source: "csv"}})
	assert.Error(t, err)
}

func TestOpenFileStorage_Disabled(t *testing.T) {
	fs, err := OpenFileStorage(context.Background(), config.S3Config{})
	require.NoError(t, err)
	assert.Nil(t, fs)
}
