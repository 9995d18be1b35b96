package mongo

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/repository"
	"alcyxob/training-coach/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// openTestDB connects to a local MongoDB and skips the test when none is running.
// Every test gets its own database, dropped on cleanup.
func openTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI("mongodb://localhost:27017").SetServerSelectionTimeout(time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		t.Skip("Skipping MongoDB integration test: mongod not available")
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skip("Skipping MongoDB integration test: mongod not available")
	}

	db := client.Database("training_coach_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func seedFixtures(t *testing.T, db *mongo.Database, data memory.Dataset) {
	t.Helper()
	require.NoError(t, Seed(context.Background(), db, data.Users, data.Workouts, data.Challenges, data.Posts))
}

func findChallenge(t *testing.T, challenges []domain.Challenge, id primitive.ObjectID) domain.Challenge {
	t.Helper()
	for _, c := range challenges {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("challenge %s not listed", id.Hex())
	return domain.Challenge{}
}

func TestSeed_ChallengeParticipants(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now()
	seedFixtures(t, db, memory.Fixtures(now))

	repo := NewMongoChallengeRepository(db)
	challenges, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, challenges, 2)

	fire := findChallenge(t, challenges, memory.ChallengeFireID)
	assert.Equal(t, []primitive.ObjectID{memory.StudentMariaID}, fire.ParticipantIDs)
	assert.True(t, fire.HasParticipant(memory.StudentMariaID))
	assert.Empty(t, findChallenge(t, challenges, memory.ChallengeCardioID).ParticipantIDs)
}

func TestSeed_ReseedKeepsJoinsAndWindow(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	first := time.Now()
	seedFixtures(t, db, memory.Fixtures(first))

	repo := NewMongoChallengeRepository(db)
	require.NoError(t, repo.AddParticipant(ctx, memory.ChallengeFireID, memory.StudentCarlosID))

	// A week later the fixtures compute a later window; the stored one must not move.
	seedFixtures(t, db, memory.Fixtures(first.AddDate(0, 0, 7)))

	fire, err := repo.GetByID(ctx, memory.ChallengeFireID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []primitive.ObjectID{memory.StudentMariaID, memory.StudentCarlosID}, fire.ParticipantIDs)
	assert.WithinDuration(t, first.Add(20*24*time.Hour), fire.EndDate, time.Second)
	assert.Equal(t, "30 Days of Fire", fire.Title)
}

func TestMongoChallengeRepository_AddParticipant(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	seedFixtures(t, db, memory.Fixtures(time.Now()))
	repo := NewMongoChallengeRepository(db)

	err := repo.AddParticipant(ctx, memory.ChallengeFireID, memory.StudentMariaID)
	assert.ErrorIs(t, err, repository.ErrAlreadyMember)

	require.NoError(t, repo.AddParticipant(ctx, memory.ChallengeCardioID, memory.StudentJoaoID))
	err = repo.AddParticipant(ctx, memory.ChallengeCardioID, memory.StudentJoaoID)
	assert.ErrorIs(t, err, repository.ErrAlreadyMember)

	err = repo.AddParticipant(ctx, primitive.NewObjectID(), memory.StudentJoaoID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMongoPostRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	seedFixtures(t, db, memory.Fixtures(time.Now()))
	repo := NewMongoPostRepository(db)

	post := &domain.Post{AuthorID: memory.StudentJoaoID, Content: "Leg day done"}
	id, err := repo.Create(ctx, post)
	require.NoError(t, err)
	assert.Equal(t, post.ID, id)

	posts, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, id, posts[0].ID)
	assert.Equal(t, memory.PostMariaID, posts[1].ID)
	assert.Len(t, posts[1].LikedBy, 2)

	liked, err := repo.ToggleLike(ctx, id, memory.StudentMariaID)
	require.NoError(t, err)
	assert.True(t, liked)
	liked, err = repo.ToggleLike(ctx, id, memory.StudentMariaID)
	require.NoError(t, err)
	assert.False(t, liked)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got.LikedBy)

	_, err = repo.ToggleLike(ctx, primitive.NewObjectID(), memory.StudentMariaID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSeed_PostLikesSurviveReseed(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	seedFixtures(t, db, memory.Fixtures(time.Now()))
	repo := NewMongoPostRepository(db)

	liked, err := repo.ToggleLike(ctx, memory.PostCarlosID, memory.StudentJoaoID)
	require.NoError(t, err)
	require.True(t, liked)

	seedFixtures(t, db, memory.Fixtures(time.Now()))
	got, err := repo.GetByID(ctx, memory.PostCarlosID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{memory.StudentJoaoID}, got.LikedBy)
}
