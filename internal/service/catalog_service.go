package service

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/repository"
	"alcyxob/training-coach/internal/storage"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrWorkoutAccessDenied = errors.New("workout belongs to another user")
	ErrExerciseNotFound    = errors.New("exercise not found in workout")
	ErrMediaUnavailable    = errors.New("exercise has no demonstration media")
	ErrStorageDisabled     = errors.New("media storage is not configured")
	ErrTrainerNotFound     = errors.New("trainer not found")
)

// Viewer is the identity a catalog read is made on behalf of.
type Viewer struct {
	ID   primitive.ObjectID
	Role domain.Role
}

// CatalogService exposes the read-only workout catalog.
type CatalogService interface {
	GetWorkout(ctx context.Context, workoutID primitive.ObjectID) (*domain.Workout, error)
	GetWorkoutFor(ctx context.Context, viewer Viewer, workoutID primitive.ObjectID) (*domain.Workout, error)
	// ListWorkouts dispatches on the viewer's role: trainers see what they
	// authored, students what was assigned to them.
	ListWorkouts(ctx context.Context, viewer Viewer) ([]domain.Workout, error)
	ListStudents(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error)
	ExerciseMediaURL(ctx context.Context, viewer Viewer, workoutID primitive.ObjectID, exerciseID string) (string, error)
}

type catalogService struct {
	workoutRepo repository.WorkoutRepository
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage // nil disables media
}

func NewCatalogService(workoutRepo repository.WorkoutRepository, userRepo repository.UserRepository, fileStorage storage.FileStorage) CatalogService {
	return &catalogService{
		workoutRepo: workoutRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

func (s *catalogService) GetWorkout(ctx context.Context, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *catalogService) GetWorkoutFor(ctx context.Context, viewer Viewer, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.GetWorkout(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	switch viewer.Role {
	case domain.RoleTrainer:
		if workout.TrainerID == viewer.ID {
			return workout, nil
		}
	case domain.RoleStudent:
		if workout.StudentID == viewer.ID {
			return workout, nil
		}
	}
	return nil, ErrWorkoutAccessDenied
}

func (s *catalogService) ListWorkouts(ctx context.Context, viewer Viewer) ([]domain.Workout, error) {
	switch viewer.Role {
	case domain.RoleTrainer:
		return s.workoutRepo.ListByTrainerID(ctx, viewer.ID)
	case domain.RoleStudent:
		return s.workoutRepo.ListByStudentID(ctx, viewer.ID)
	}
	return nil, domain.ErrMissingRole
}

func (s *catalogService) ListStudents(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error) {
	students, err := s.userRepo.GetStudentsByTrainerID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	for i := range students {
		students[i].PasswordHash = ""
	}
	return students, nil
}

func (s *catalogService) ExerciseMediaURL(ctx context.Context, viewer Viewer, workoutID primitive.ObjectID, exerciseID string) (string, error) {
	workout, err := s.GetWorkoutFor(ctx, viewer, workoutID)
	if err != nil {
		return "", err
	}
	exercise, _ := workout.ExerciseByID(exerciseID)
	if exercise == nil {
		return "", ErrExerciseNotFound
	}
	if exercise.MediaKey == "" {
		return "", ErrMediaUnavailable
	}
	if s.fileStorage == nil {
		return "", ErrStorageDisabled
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.MediaKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", exercise.MediaKey, err)
	}
	return url, nil
}
