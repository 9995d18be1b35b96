package service

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/repository"
	"alcyxob/training-coach/internal/repository/memory"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestFeed(t *testing.T, now time.Time, completions repository.CompletionRepository) *feedService {
	t.Helper()
	data := memory.Fixtures(now)
	users := memory.NewUserRepository(data.Users)
	workouts := memory.NewWorkoutRepository(data.Workouts)
	catalog := NewCatalogService(workouts, users, nil)
	svc := NewFeedService(memory.NewPostRepository(data.Posts), users, workouts, completions, catalog).(*feedService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestFeedList(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestFeed(t, now, memory.NewCompletionRepository())

	posts, err := svc.List(context.Background(), Viewer{ID: memory.StudentCarlosID, Role: domain.RoleStudent})
	require.NoError(t, err)
	require.Len(t, posts, 2)

	top := posts[0]
	assert.Equal(t, memory.PostMariaID, top.ID)
	assert.Equal(t, "Maria Oliveira", top.Author.Name)
	assert.False(t, top.Author.FireMaster)
	assert.Equal(t, 2, top.Likes)
	assert.True(t, top.Liked)
	assert.Equal(t, 2, top.Comments)
	require.NotNil(t, top.Workout)
	assert.Equal(t, "Workout C - Back and Biceps", top.Workout.Title)
	assert.Equal(t, "7/7 exercises, 49 points", top.Workout.Performance)

	second := posts[1]
	assert.Equal(t, memory.PostCarlosID, second.ID)
	assert.False(t, second.Liked)
	assert.Nil(t, second.Workout)
}

func TestFeedList_FireMasterBadge(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	completions := memory.NewCompletionRepository()
	for d := 0; d < domain.StreakFireMaster; d++ {
		_, err := completions.Create(context.Background(), &domain.Completion{
			StudentID: memory.StudentMariaID, WorkoutID: memory.WorkoutBackID, Points: 49,
			CompletedAt: now.AddDate(0, 0, -d),
		})
		require.NoError(t, err)
	}
	svc := newTestFeed(t, now, completions)

	posts, err := svc.List(context.Background(), joao)
	require.NoError(t, err)
	assert.True(t, posts[0].Author.FireMaster)
	assert.False(t, posts[1].Author.FireMaster)
}

func TestFeedPublish(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestFeed(t, now, memory.NewCompletionRepository())
	ctx := context.Background()

	upper := memory.WorkoutUpperID
	res, err := svc.Publish(ctx, joao, NewPost{Content: "  Upper body done!  ", WorkoutID: &upper, Performance: "45 points"})
	require.NoError(t, err)
	assert.Equal(t, "Upper body done!", res.Post.Content)
	assert.Equal(t, "João Silva", res.Post.Author.Name)
	assert.Equal(t, 0, res.Post.Likes)
	require.NotNil(t, res.Post.Workout)
	assert.Equal(t, "45 points", res.Post.Workout.Performance)
	require.NotNil(t, res.Notification)
	assert.Equal(t, domain.NotifyPostPublished, res.Notification.Kind)
	assert.Equal(t, "Post published", res.Notification.Title)

	posts, err := svc.List(ctx, joao)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, res.Post.ID, posts[0].ID)
}

func TestFeedPublish_Rejects(t *testing.T) {
	svc := newTestFeed(t, time.Now(), memory.NewCompletionRepository())
	ctx := context.Background()

	_, err := svc.Publish(ctx, joao, NewPost{Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyPost)

	_, err = svc.Publish(ctx, joao, NewPost{Content: strings.Repeat("a", domain.MaxPostLength+1)})
	assert.ErrorIs(t, err, ErrPostTooLong)

	// Maria's workout is not João's to share.
	back := memory.WorkoutBackID
	_, err = svc.Publish(ctx, joao, NewPost{Content: "look", WorkoutID: &back})
	assert.ErrorIs(t, err, ErrWorkoutAccessDenied)

	missing := primitive.NewObjectID()
	_, err = svc.Publish(ctx, joao, NewPost{Content: "look", WorkoutID: &missing})
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	posts, err := svc.List(ctx, joao)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestFeedToggleLike(t *testing.T) {
	svc := newTestFeed(t, time.Now(), memory.NewCompletionRepository())
	ctx := context.Background()

	res, err := svc.ToggleLike(ctx, joao, memory.PostMariaID)
	require.NoError(t, err)
	assert.True(t, res.Post.Liked)
	assert.Equal(t, 3, res.Post.Likes)
	require.NotNil(t, res.Notification)
	assert.Equal(t, domain.NotifyPostLiked, res.Notification.Kind)
	assert.Equal(t, "Post liked", res.Notification.Title)

	res, err = svc.ToggleLike(ctx, joao, memory.PostMariaID)
	require.NoError(t, err)
	assert.False(t, res.Post.Liked)
	assert.Equal(t, 2, res.Post.Likes)
	assert.Nil(t, res.Notification)

	_, err = svc.ToggleLike(ctx, joao, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestFeedShare(t *testing.T) {
	svc := newTestFeed(t, time.Now(), memory.NewCompletionRepository())
	ctx := context.Background()

	res, err := svc.Share(ctx, maria, memory.PostCarlosID)
	require.NoError(t, err)
	assert.Equal(t, "/community/posts/"+memory.PostCarlosID.Hex(), res.Link)
	assert.Equal(t, domain.NotifyPostShared, res.Notification.Kind)

	_, err = svc.Share(ctx, maria, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrPostNotFound)
}
