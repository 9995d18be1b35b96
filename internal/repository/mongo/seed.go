package mongo

import (
	"alcyxob/training-coach/internal/domain"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seed upserts fixture documents by _id so repeated runs are harmless.
func Seed(ctx context.Context, db *mongo.Database, users []domain.User, workouts []domain.Workout, challenges []domain.Challenge, posts []domain.Post) error {
	upsert := options.Replace().SetUpsert(true)

	// 1. Accounts and the workout catalog are replaced wholesale
	for _, u := range users {
		if _, err := db.Collection(userCollectionName).ReplaceOne(ctx, bson.M{"_id": u.ID}, u, upsert); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}
	for _, w := range workouts {
		if _, err := db.Collection(workoutCollectionName).ReplaceOne(ctx, bson.M{"_id": w.ID}, w, upsert); err != nil {
			return fmt.Errorf("seed workout %s: %w", w.Title, err)
		}
	}

	// 2. Challenges keep their window and anyone who joined since the last seed
	for _, c := range challenges {
		if _, err := db.Collection(challengeCollectionName).UpdateOne(ctx, bson.M{"_id": c.ID}, challengeSeedUpdate(c), options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("seed challenge %s: %w", c.Title, err)
		}
	}

	// 3. Posts are only inserted; likes collected since stay untouched
	for _, p := range posts {
		if _, err := db.Collection(postCollectionName).InsertOne(ctx, p); err != nil && !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("seed post %s: %w", p.ID.Hex(), err)
		}
	}
	return nil
}

func challengeSeedUpdate(c domain.Challenge) bson.M {
	update := bson.M{
		"$set": bson.M{
			"title":        c.Title,
			"description":  c.Description,
			"daysRequired": c.DaysRequired,
			"reward":       c.Reward,
		},
		"$setOnInsert": bson.M{
			"startDate": c.StartDate,
			"endDate":   c.EndDate,
		},
	}
	if len(c.ParticipantIDs) > 0 {
		update["$addToSet"] = bson.M{"participantIds": bson.M{"$each": c.ParticipantIDs}}
	}
	return update
}
