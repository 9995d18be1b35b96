// Package guided drives a student's sequential walk through a workout:
// exercises unlock in order, each completion awards its points, and the run
// ends by itself once the last exercise is done.
package guided

import (
	"alcyxob/training-coach/internal/domain"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrEmptyWorkout      = errors.New("workout has no exercises")
	ErrInvalidPoints     = errors.New("exercise point value must be positive")
	ErrDuplicateExercise = errors.New("duplicate exercise id in workout")
	ErrNotTraining       = errors.New("training mode is not active")
	ErrAlreadyTraining   = errors.New("training mode is already active")
	ErrExerciseNotFound  = errors.New("exercise not found in session")
	ErrGatingViolation   = errors.New("previous exercise must be completed first")
	ErrAlreadyCompleted  = errors.New("exercise already completed")
	ErrIndexNotReached   = errors.New("exercise has not been reached in this run")
)

// State of a guided session.
type State string

const (
	StateIdle      State = "idle"
	StateActive    State = "active"
	StateCompleted State = "completed"
)

// Session is one training run over a private copy of a workout's exercises.
// It is not safe for concurrent use; callers serialize access.
type Session struct {
	id        string
	workoutID primitive.ObjectID
	title     string
	exercises []domain.Exercise
	current   int
	highest   int // highest index reached in the current run
	earned    int
	training  bool
	notifier  domain.Notifier
}

// New copies the workout's exercises with every completed flag cleared.
// The session starts Idle. A nil notifier discards notifications.
func New(workout *domain.Workout, notifier domain.Notifier) (*Session, error) {
	if workout == nil || len(workout.Exercises) == 0 {
		return nil, ErrEmptyWorkout
	}
	seen := make(map[string]bool, len(workout.Exercises))
	exercises := make([]domain.Exercise, len(workout.Exercises))
	for i, ex := range workout.Exercises {
		if ex.Points <= 0 {
			return nil, fmt.Errorf("%w: %q has %d", ErrInvalidPoints, ex.ID, ex.Points)
		}
		if seen[ex.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateExercise, ex.ID)
		}
		seen[ex.ID] = true
		ex.Completed = false
		exercises[i] = ex
	}
	if notifier == nil {
		notifier = domain.NotifierFunc(func(domain.Notification) {})
	}
	return &Session{
		id:        uuid.NewString(),
		workoutID: workout.ID,
		title:     workout.Title,
		exercises: exercises,
		notifier:  notifier,
	}, nil
}

func (s *Session) ID() string                    { return s.id }
func (s *Session) WorkoutID() primitive.ObjectID { return s.workoutID }

// State is derived from the training flag and the completion flags so that
// Completed and an active training mode can never be observed together.
func (s *Session) State() State {
	if s.training {
		return StateActive
	}
	if s.CompletedCount() == len(s.exercises) {
		return StateCompleted
	}
	return StateIdle
}

// Training reports whether training mode is active.
func (s *Session) Training() bool { return s.training }

// Current returns the active exercise index; ok is false outside training mode.
func (s *Session) Current() (index int, ok bool) {
	return s.current, s.training
}

// Start enters Active(0). Restarting a fully completed run clears every
// completed flag and the earned points first.
func (s *Session) Start() error {
	if s.training {
		return ErrAlreadyTraining
	}
	restarted := false
	if s.CompletedCount() == len(s.exercises) {
		for i := range s.exercises {
			s.exercises[i].Completed = false
		}
		s.earned = 0
		restarted = true
	}
	s.current = 0
	s.highest = s.frontier()
	s.training = true

	title := "Workout started"
	if restarted {
		title = "Workout restarted"
	}
	s.notifier.Notify(domain.Notification{
		Kind:        domain.NotifySessionStarted,
		Title:       title,
		Description: fmt.Sprintf("%s: complete the %d exercises in order.", s.title, len(s.exercises)),
		Severity:    domain.SeverityNormal,
	})
	return nil
}

// Complete marks an exercise done, awards its points and advances. Completing
// the last exercise ends training mode in the same step.
func (s *Session) Complete(exerciseID string) error {
	if !s.training {
		return ErrNotTraining
	}
	i := s.indexOf(exerciseID)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrExerciseNotFound, exerciseID)
	}
	if s.exercises[i].Completed {
		return fmt.Errorf("%w: %q", ErrAlreadyCompleted, exerciseID)
	}
	if !s.IsUnlocked(i) {
		return fmt.Errorf("%w: %q", ErrGatingViolation, exerciseID)
	}

	ex := &s.exercises[i]
	ex.Completed = true
	s.earned += ex.Points

	last := i == len(s.exercises)-1
	if last {
		s.training = false
	} else {
		s.current = i + 1
		if s.current > s.highest {
			s.highest = s.current
		}
	}

	s.notifier.Notify(domain.Notification{
		Kind:        domain.NotifyExerciseCompleted,
		Title:       "Exercise completed",
		Description: fmt.Sprintf("%s (+%d points)", ex.Name, ex.Points),
		Severity:    domain.SeverityNormal,
		Points:      ex.Points,
	})
	if last {
		s.notifier.Notify(domain.Notification{
			Kind:        domain.NotifyWorkoutCompleted,
			Title:       "Workout completed",
			Description: fmt.Sprintf("%s finished (+%d points)", s.title, s.earned),
			Severity:    domain.SeverityNormal,
			Points:      s.earned,
		})
	}
	return nil
}

// GoTo moves the active index to an exercise already reached in this run.
// Completion state is untouched.
func (s *Session) GoTo(index int) error {
	if !s.training {
		return ErrNotTraining
	}
	if index < 0 || index > s.highest {
		return fmt.Errorf("%w: %d", ErrIndexNotReached, index)
	}
	s.current = index
	return nil
}

// Stop leaves training mode keeping completed flags and points. It is a no-op
// outside training mode.
func (s *Session) Stop() {
	s.training = false
}

// EarnedPoints is the sum of the points of completed exercises.
func (s *Session) EarnedPoints() int { return s.earned }

// TotalPossiblePoints sums every exercise regardless of completion.
func (s *Session) TotalPossiblePoints() int {
	total := 0
	for _, ex := range s.exercises {
		total += ex.Points
	}
	return total
}

func (s *Session) CompletedCount() int {
	n := 0
	for _, ex := range s.exercises {
		if ex.Completed {
			n++
		}
	}
	return n
}

func (s *Session) Len() int { return len(s.exercises) }

// ProgressPercent is completed / total * 100.
func (s *Session) ProgressPercent() float64 {
	return float64(s.CompletedCount()) / float64(len(s.exercises)) * 100
}

// IsUnlocked reports whether the exercise at index may be completed.
func (s *Session) IsUnlocked(index int) bool {
	if index < 0 || index >= len(s.exercises) {
		return false
	}
	return index == 0 || s.exercises[index-1].Completed
}

// Exercises returns a copy of the session's exercise list.
func (s *Session) Exercises() []domain.Exercise {
	out := make([]domain.Exercise, len(s.exercises))
	copy(out, s.exercises)
	return out
}

func (s *Session) indexOf(exerciseID string) int {
	for i := range s.exercises {
		if s.exercises[i].ID == exerciseID {
			return i
		}
	}
	return -1
}

// frontier is the first exercise not yet completed; every exercise before it
// counts as reached.
func (s *Session) frontier() int {
	for i, ex := range s.exercises {
		if !ex.Completed {
			return i
		}
	}
	return len(s.exercises) - 1
}
