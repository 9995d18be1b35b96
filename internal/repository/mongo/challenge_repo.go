package mongo

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const challengeCollectionName = "challenges"

type mongoChallengeRepository struct {
	collection *mongo.Collection
}

// NewMongoChallengeRepository creates the community challenge store.
func NewMongoChallengeRepository(db *mongo.Database) repository.ChallengeRepository {
	return &mongoChallengeRepository{
		collection: db.Collection(challengeCollectionName),
	}
}

func (r *mongoChallengeRepository) List(ctx context.Context) ([]domain.Challenge, error) {
	challenges := []domain.Challenge{}
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, cursor.Err()
}

func (r *mongoChallengeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Challenge, error) {
	var challenge domain.Challenge
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&challenge)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

// AddParticipant joins userID to the challenge. The filter excludes documents
// that already list the user, so a zero match means missing or already joined.
func (r *mongoChallengeRepository) AddParticipant(ctx context.Context, challengeID, userID primitive.ObjectID) error {
	filter := bson.M{"_id": challengeID, "participantIds": bson.M{"$ne": userID}}
	update := bson.M{"$push": bson.M{"participantIds": userID}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	// Zero matches: tell a missing challenge apart from an existing member
	if result.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, challengeID); err != nil {
			return err
		}
		return repository.ErrAlreadyMember
	}
	return nil
}
