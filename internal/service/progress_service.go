package service

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/repository"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressService builds the student's gamification card from finished runs.
type ProgressService interface {
	Stats(ctx context.Context, studentID primitive.ObjectID) (*domain.PlayerStats, error)
	History(ctx context.Context, studentID primitive.ObjectID) ([]domain.Completion, error)
}

type progressService struct {
	completionRepo repository.CompletionRepository
	now            func() time.Time
}

func NewProgressService(completionRepo repository.CompletionRepository) ProgressService {
	return &progressService{completionRepo: completionRepo, now: time.Now}
}

func (s *progressService) Stats(ctx context.Context, studentID primitive.ObjectID) (*domain.PlayerStats, error) {
	completions, err := s.completionRepo.ListByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	stats := domain.BuildStats(completions, s.now())
	return &stats, nil
}

// History lists finished runs, newest first.
func (s *progressService) History(ctx context.Context, studentID primitive.ObjectID) ([]domain.Completion, error) {
	return s.completionRepo.ListByStudentID(ctx, studentID)
}
