package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a trainer-authored routine assigned to one student.
// Exercises are stored inline and their order is the unlock order.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	StudentID   primitive.ObjectID `bson:"studentId" json:"studentId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Type        string             `bson:"type" json:"type"` // e.g. "Hypertrophy", "Strength"
	Exercises   []Exercise         `bson:"exercises" json:"exercises"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TotalPoints is the sum of all exercise point values regardless of completion.
func (w *Workout) TotalPoints() int {
	total := 0
	for _, ex := range w.Exercises {
		total += ex.Points
	}
	return total
}

// ExerciseByID returns the exercise and its position, or -1.
func (w *Workout) ExerciseByID(id string) (*Exercise, int) {
	for i := range w.Exercises {
		if w.Exercises[i].ID == id {
			return &w.Exercises[i], i
		}
	}
	return nil, -1
}
