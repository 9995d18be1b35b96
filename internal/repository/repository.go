package repository

import (
	"alcyxob/training-coach/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound      = RepositoryError("not found")
	ErrDuplicate     = RepositoryError("duplicate key")
	ErrUpdateFailed  = RepositoryError("update failed")
	ErrAlreadyMember = RepositoryError("already a participant")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetStudentsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error)
}

// WorkoutRepository is the read side of the workout catalog.
type WorkoutRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	ListByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Workout, error)
	ListByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.Workout, error)
}

// CompletionRepository stores finished guided runs.
type CompletionRepository interface {
	Create(ctx context.Context, completion *domain.Completion) (primitive.ObjectID, error)
	ListByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.Completion, error)
}

// ChallengeRepository stores community challenges and their participants.
type ChallengeRepository interface {
	List(ctx context.Context) ([]domain.Challenge, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Challenge, error)
	// AddParticipant returns ErrAlreadyMember when userID already joined.
	AddParticipant(ctx context.Context, challengeID, userID primitive.ObjectID) error
}

// PostRepository stores the community feed.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error)
	// ListRecent returns at most limit posts, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.Post, error)
	// ToggleLike flips userID's like on the post and reports whether the
	// post is liked afterwards.
	ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, error)
}
