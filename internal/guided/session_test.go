package guided

import (
	"alcyxob/training-coach/internal/domain"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func upperBodyWorkout(points ...int) *domain.Workout {
	if len(points) == 0 {
		points = []int{10, 8, 7, 6, 5, 9}
	}
	w := &domain.Workout{ID: primitive.NewObjectID(), Title: "Workout A - Upper Body"}
	for i, p := range points {
		w.Exercises = append(w.Exercises, domain.Exercise{
			ID:     fmt.Sprintf("%d", i+1),
			Name:   fmt.Sprintf("Exercise %d", i+1),
			Sets:   "3",
			Reps:   "8-12",
			Points: p,
		})
	}
	return w
}

func newStarted(t *testing.T, w *domain.Workout) (*Session, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	s, err := New(w, rec)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	return s, rec
}

// assertPointsMatchFlags recomputes the earned points from the completed flags.
func assertPointsMatchFlags(t *testing.T, s *Session) {
	t.Helper()
	sum := 0
	for _, ex := range s.Exercises() {
		if ex.Completed {
			sum += ex.Points
		}
	}
	assert.Equal(t, sum, s.EarnedPoints())
	if s.Training() {
		assert.Less(t, s.CompletedCount(), s.Len(), "training mode must be off once every exercise is done")
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(&domain.Workout{}, nil)
	assert.ErrorIs(t, err, ErrEmptyWorkout)

	_, err = New(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyWorkout)

	_, err = New(upperBodyWorkout(10, 0), nil)
	assert.ErrorIs(t, err, ErrInvalidPoints)

	w := upperBodyWorkout(10, 8)
	w.Exercises[1].ID = w.Exercises[0].ID
	_, err = New(w, nil)
	assert.ErrorIs(t, err, ErrDuplicateExercise)
}

func TestNew_CopiesExercises(t *testing.T) {
	w := upperBodyWorkout()
	w.Exercises[0].Completed = true

	s, err := New(w, nil)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, 0, s.CompletedCount())

	require.NoError(t, s.Start())
	require.NoError(t, s.Complete("1"))
	assert.True(t, w.Exercises[0].Completed, "catalog copy keeps its own flag")
	assert.False(t, w.Exercises[1].Completed, "catalog is never mutated by the run")
}

func TestComplete_FullRunScenario(t *testing.T) {
	s, rec := newStarted(t, upperBodyWorkout())
	assert.Equal(t, 45, s.TotalPossiblePoints())

	want := []int{10, 18, 25, 31, 36, 45}
	for i, exp := range want {
		require.NoError(t, s.Complete(fmt.Sprintf("%d", i+1)))
		assert.Equal(t, exp, s.EarnedPoints(), "after exercise %d", i+1)
		assertPointsMatchFlags(t, s)
		if i < len(want)-1 {
			cur, ok := s.Current()
			assert.True(t, ok)
			assert.Equal(t, i+1, cur, "auto-advance")
		}
	}

	assert.Equal(t, StateCompleted, s.State())
	assert.False(t, s.Training())
	assert.Equal(t, 100.0, s.ProgressPercent())

	notes := rec.Drain()
	require.Len(t, notes, 1+6+1)
	assert.Equal(t, domain.NotifySessionStarted, notes[0].Kind)
	assert.Equal(t, domain.NotifyExerciseCompleted, notes[1].Kind)
	assert.Equal(t, 10, notes[1].Points)
	last := notes[len(notes)-1]
	assert.Equal(t, domain.NotifyWorkoutCompleted, last.Kind)
	assert.Equal(t, 45, last.Points)
	assert.Empty(t, rec.Drain())
}

func TestComplete_GatingViolation(t *testing.T) {
	s, rec := newStarted(t, upperBodyWorkout())
	rec.Drain()

	err := s.Complete("3")
	assert.ErrorIs(t, err, ErrGatingViolation)
	assert.Equal(t, 0, s.EarnedPoints())
	assert.Equal(t, 0, s.CompletedCount())
	assert.Empty(t, rec.Drain())

	cur, _ := s.Current()
	assert.Equal(t, 0, cur)
}

func TestComplete_LockedExercisesAlwaysRejected(t *testing.T) {
	s, _ := newStarted(t, upperBodyWorkout())
	require.NoError(t, s.Complete("1"))
	require.NoError(t, s.Complete("2"))

	for i := 0; i < s.Len(); i++ {
		if s.IsUnlocked(i) {
			continue
		}
		before := s.Snapshot()
		err := s.Complete(fmt.Sprintf("%d", i+1))
		assert.ErrorIs(t, err, ErrGatingViolation)
		assert.Equal(t, before, s.Snapshot(), "rejected completion must not mutate state")
	}
}

func TestComplete_AlreadyCompleted(t *testing.T) {
	s, rec := newStarted(t, upperBodyWorkout())
	require.NoError(t, s.Complete("1"))
	rec.Drain()
	points := s.EarnedPoints()

	err := s.Complete("1")
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, points, s.EarnedPoints())
	assert.Empty(t, rec.Drain())
}

func TestComplete_Errors(t *testing.T) {
	s, err := New(upperBodyWorkout(), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Complete("1"), ErrNotTraining)

	require.NoError(t, s.Start())
	assert.ErrorIs(t, s.Complete("nope"), ErrExerciseNotFound)
}

func TestIsUnlocked_Monotonic(t *testing.T) {
	s, _ := newStarted(t, upperBodyWorkout())
	assert.True(t, s.IsUnlocked(0))
	assert.False(t, s.IsUnlocked(1))
	assert.False(t, s.IsUnlocked(-1))
	assert.False(t, s.IsUnlocked(6))

	for i := 0; i < s.Len(); i++ {
		require.NoError(t, s.Complete(fmt.Sprintf("%d", i+1)))
		for j := 0; j <= i+1 && j < s.Len(); j++ {
			assert.True(t, s.IsUnlocked(j), "index %d after completing %d", j, i)
		}
	}
}

func TestStart_RestartAfterCompleted(t *testing.T) {
	s, rec := newStarted(t, upperBodyWorkout(5, 5))
	require.NoError(t, s.Complete("1"))
	require.NoError(t, s.Complete("2"))
	require.Equal(t, StateCompleted, s.State())
	rec.Drain()

	require.NoError(t, s.Start())
	assert.Equal(t, StateActive, s.State())
	assert.Equal(t, 0, s.EarnedPoints())
	assert.Equal(t, 0, s.CompletedCount())
	cur, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, 0, cur)
	for _, ex := range s.Exercises() {
		assert.False(t, ex.Completed)
	}

	notes := rec.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "Workout restarted", notes[0].Title)
}

func TestStart_AlreadyTraining(t *testing.T) {
	s, _ := newStarted(t, upperBodyWorkout())
	assert.ErrorIs(t, s.Start(), ErrAlreadyTraining)
}

func TestStop_KeepsProgress(t *testing.T) {
	s, _ := newStarted(t, upperBodyWorkout())
	require.NoError(t, s.Complete("1"))
	require.NoError(t, s.Complete("2"))

	s.Stop()
	assert.Equal(t, StateIdle, s.State())
	assert.False(t, s.Training())
	assert.Equal(t, 18, s.EarnedPoints())
	assert.Equal(t, 2, s.CompletedCount())
	assertPointsMatchFlags(t, s)

	_, ok := s.Current()
	assert.False(t, ok)
	assert.ErrorIs(t, s.Complete("3"), ErrNotTraining)

	// Resuming keeps partial progress and lets the student jump back to the frontier.
	require.NoError(t, s.Start())
	assert.Equal(t, 18, s.EarnedPoints())
	require.NoError(t, s.GoTo(2))
	require.NoError(t, s.Complete("3"))
	assert.Equal(t, 25, s.EarnedPoints())
}

func TestStop_NoopWhenCompleted(t *testing.T) {
	s, _ := newStarted(t, upperBodyWorkout(1))
	require.NoError(t, s.Complete("1"))
	s.Stop()
	assert.Equal(t, StateCompleted, s.State())
}

func TestGoTo(t *testing.T) {
	s, _ := newStarted(t, upperBodyWorkout())
	require.NoError(t, s.Complete("1"))
	require.NoError(t, s.Complete("2"))

	require.NoError(t, s.GoTo(0))
	cur, _ := s.Current()
	assert.Equal(t, 0, cur)
	assert.Equal(t, 2, s.CompletedCount(), "navigation does not touch completion")

	require.NoError(t, s.GoTo(2))
	assert.ErrorIs(t, s.GoTo(3), ErrIndexNotReached)
	assert.ErrorIs(t, s.GoTo(-1), ErrIndexNotReached)

	// Completing the frontier from a revisited position still auto-advances.
	require.NoError(t, s.GoTo(0))
	require.NoError(t, s.Complete("3"))
	cur, _ = s.Current()
	assert.Equal(t, 3, cur)

	s.Stop()
	assert.ErrorIs(t, s.GoTo(0), ErrNotTraining)
}

func TestSnapshot(t *testing.T) {
	s, _ := newStarted(t, upperBodyWorkout(10, 8, 7))
	require.NoError(t, s.Complete("1"))

	v := s.Snapshot()
	assert.Equal(t, StateActive, v.State)
	require.NotNil(t, v.CurrentIndex)
	assert.Equal(t, 1, *v.CurrentIndex)
	assert.Equal(t, 10, v.EarnedPoints)
	assert.Equal(t, 25, v.TotalPossiblePoints)
	assert.InDelta(t, 33.33, v.ProgressPercent, 0.01)
	assert.True(t, v.Exercises[1].Active)
	assert.True(t, v.Exercises[1].Unlocked)
	assert.False(t, v.Exercises[2].Unlocked)

	s.Stop()
	assert.Nil(t, s.Snapshot().CurrentIndex)
}
