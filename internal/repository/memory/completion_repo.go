package memory

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/repository"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type completionRepository struct {
	mu          sync.Mutex
	completions []domain.Completion
}

func NewCompletionRepository() repository.CompletionRepository {
	return &completionRepository{}
}

func (r *completionRepository) Create(_ context.Context, completion *domain.Completion) (primitive.ObjectID, error) {
	if completion.StudentID == primitive.NilObjectID || completion.WorkoutID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("completion requires studentId and workoutId")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	completion.ID = primitive.NewObjectID()
	if completion.CompletedAt.IsZero() {
		completion.CompletedAt = time.Now().UTC()
	}
	r.completions = append(r.completions, *completion)
	return completion.ID, nil
}

func (r *completionRepository) ListByStudentID(_ context.Context, studentID primitive.ObjectID) ([]domain.Completion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []domain.Completion{}
	for _, c := range r.completions {
		if c.StudentID == studentID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out, nil
}
