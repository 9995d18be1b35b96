// internal/domain/exercise.go
package domain

// Exercise is one step of a Workout.
type Exercise struct {
	ID           string `bson:"id" json:"id"` // Unique within its workout
	Name         string `bson:"name" json:"name"`
	Sets         string `bson:"sets" json:"sets"` // e.g. "4"
	Reps         string `bson:"reps" json:"reps"` // e.g. "8-12"
	Rest         string `bson:"rest,omitempty" json:"rest,omitempty"`
	Instructions string `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Points       int    `bson:"points" json:"points"` // Fixed at authoring time

	// MediaKey is the object key of a demonstration video in object storage.
	MediaKey string `bson:"mediaKey,omitempty" json:"-"`

	// Completed is only meaningful on a guided session's private copy.
	Completed bool `bson:"-" json:"completed"`
}
