package service

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/guided"
	"alcyxob/training-coach/internal/repository"
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNoActiveSession    = errors.New("no guided session for this student")
	ErrWorkoutNotAssigned = errors.New("workout is not assigned to this student")
	ErrOtherWorkoutActive = errors.New("another workout is in progress, stop it first")
)

// TrainingResult is what every training call hands back: the run as it looks
// after the call and the notifications the call produced, in order.
type TrainingResult struct {
	Session       guided.View           `json:"session"`
	Notifications []domain.Notification `json:"notifications"`
	// Noop is set when the call changed nothing, e.g. completing an exercise twice.
	Noop bool `json:"noop,omitempty"`
}

// TrainingService runs guided sessions, at most one per student.
type TrainingService interface {
	// Start opens a run on a workout assigned to the student. Starting the
	// workout of the existing run resumes or restarts it. Any other workout
	// replaces it, unless the existing run is still training.
	Start(ctx context.Context, studentID, workoutID primitive.ObjectID) (*TrainingResult, error)
	Current(ctx context.Context, studentID primitive.ObjectID) (*TrainingResult, error)
	Complete(ctx context.Context, studentID primitive.ObjectID, exerciseID string) (*TrainingResult, error)
	GoTo(ctx context.Context, studentID primitive.ObjectID, index int) (*TrainingResult, error)
	Stop(ctx context.Context, studentID primitive.ObjectID) (*TrainingResult, error)
	Discard(ctx context.Context, studentID primitive.ObjectID) error
}

type run struct {
	session  *guided.Session
	recorder *guided.Recorder
}

type trainingService struct {
	workoutRepo    repository.WorkoutRepository
	completionRepo repository.CompletionRepository
	now            func() time.Time

	mu   sync.Mutex
	runs map[primitive.ObjectID]*run
}

// NewTrainingService creates a new instance of trainingService.
func NewTrainingService(workoutRepo repository.WorkoutRepository, completionRepo repository.CompletionRepository) TrainingService {
	return &trainingService{
		workoutRepo:    workoutRepo,
		completionRepo: completionRepo,
		now:            time.Now,
		runs:           make(map[primitive.ObjectID]*run),
	}
}

func (s *trainingService) Start(ctx context.Context, studentID, workoutID primitive.ObjectID) (*TrainingResult, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.StudentID != studentID {
		return nil, ErrWorkoutNotAssigned
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A stopped run on the same workout resumes, a completed one restarts.
	r, ok := s.runs[studentID]
	if ok && r.session.WorkoutID() != workoutID && r.session.Training() {
		return nil, ErrOtherWorkoutActive
	}
	if !ok || r.session.WorkoutID() != workoutID {
		r, err = newRun(workout)
		if err != nil {
			return nil, err
		}
		s.runs[studentID] = r
	}

	if err = r.session.Start(); err != nil {
		return nil, err
	}
	log.Printf("INFO: Student %s started guided session %s on workout %s", studentID.Hex(), r.session.ID(), workoutID.Hex())
	return r.result(false), nil
}

func newRun(workout *domain.Workout) (*run, error) {
	rec := &guided.Recorder{}
	sess, err := guided.New(workout, rec)
	if err != nil {
		return nil, err
	}
	return &run{session: sess, recorder: rec}, nil
}

func (s *trainingService) Current(_ context.Context, studentID primitive.ObjectID) (*TrainingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.runs[studentID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return r.result(false), nil
}

// Complete records a Completion when the call finishes the workout. A failure
// to record is logged; the run itself is already complete.
func (s *trainingService) Complete(ctx context.Context, studentID primitive.ObjectID, exerciseID string) (*TrainingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.runs[studentID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	err := r.session.Complete(exerciseID)
	if errors.Is(err, guided.ErrAlreadyCompleted) {
		return r.result(true), nil
	}
	if err != nil {
		return nil, err
	}

	if r.session.State() == guided.StateCompleted {
		completion := &domain.Completion{
			StudentID:   studentID,
			WorkoutID:   r.session.WorkoutID(),
			Points:      r.session.EarnedPoints(),
			CompletedAt: s.now().UTC(),
		}
		if _, err := s.completionRepo.Create(ctx, completion); err != nil {
			log.Printf("ERROR: Failed to record completion of workout %s for student %s: %v", completion.WorkoutID.Hex(), studentID.Hex(), err)
		} else {
			log.Printf("INFO: Student %s completed workout %s (+%d points)", studentID.Hex(), completion.WorkoutID.Hex(), completion.Points)
		}
	}
	return r.result(false), nil
}

func (s *trainingService) GoTo(_ context.Context, studentID primitive.ObjectID, index int) (*TrainingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.runs[studentID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	if err := r.session.GoTo(index); err != nil {
		return nil, err
	}
	return r.result(false), nil
}

func (s *trainingService) Stop(_ context.Context, studentID primitive.ObjectID) (*TrainingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.runs[studentID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	noop := !r.session.Training()
	r.session.Stop()
	return r.result(noop), nil
}

func (s *trainingService) Discard(_ context.Context, studentID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[studentID]; !ok {
		return ErrNoActiveSession
	}
	delete(s.runs, studentID)
	return nil
}

func (r *run) result(noop bool) *TrainingResult {
	return &TrainingResult{
		Session:       r.session.Snapshot(),
		Notifications: r.recorder.Drain(),
		Noop:          noop,
	}
}
