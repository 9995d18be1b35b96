package mongo

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const completionCollectionName = "completions"

type mongoCompletionRepository struct {
	collection *mongo.Collection
}

// NewMongoCompletionRepository creates the store of finished guided runs.
func NewMongoCompletionRepository(db *mongo.Database) repository.CompletionRepository {
	return &mongoCompletionRepository{
		collection: db.Collection(completionCollectionName),
	}
}

func (r *mongoCompletionRepository) Create(ctx context.Context, completion *domain.Completion) (primitive.ObjectID, error) {
	// 1. Validate required references
	if completion.StudentID == primitive.NilObjectID || completion.WorkoutID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("completion requires studentId and workoutId")
	}

	// 2. Set server-owned fields
	completion.ID = primitive.NewObjectID()
	if completion.CompletedAt.IsZero() {
		completion.CompletedAt = time.Now().UTC()
	}

	// 3. Insert
	result, err := r.collection.InsertOne(ctx, completion)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted completion ID")
	}
	return insertedID, nil
}

func (r *mongoCompletionRepository) ListByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.Completion, error) {
	completions := []domain.Completion{}
	findOptions := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"studentId": studentID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &completions); err != nil {
		return nil, err
	}
	return completions, cursor.Err()
}

func completionIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "completedAt", Value: -1}},
			Options: options.Index(),
		},
	}
}
