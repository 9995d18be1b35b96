// internal/repository/mongo/workout_repo.go
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

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository.
// Exercises are embedded in the workout document in unlock order.
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new catalog reader.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// ListByTrainerID returns the workouts a trainer authored, newest first.
func (r *mongoWorkoutRepository) ListByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Workout, error) {
	return r.list(ctx, bson.M{"trainerId": trainerID})
}

// ListByStudentID returns the workouts assigned to a student, newest first.
func (r *mongoWorkoutRepository) ListByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.Workout, error) {
	return r.list(ctx, bson.M{"studentId": studentID})
}

func (r *mongoWorkoutRepository) list(ctx context.Context, filter bson.M) ([]domain.Workout, error) {
	workouts := []domain.Workout{} // Return an empty slice, not nil, when nothing matches
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "title", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, cursor.Err()
}

func workoutIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
}
