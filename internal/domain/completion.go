package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Completion records a guided run that reached its terminal state.
type Completion struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID   primitive.ObjectID `bson:"studentId" json:"studentId"`
	WorkoutID   primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	Points      int                `bson:"points" json:"points"`
	CompletedAt time.Time          `bson:"completedAt" json:"completedAt"`
}
