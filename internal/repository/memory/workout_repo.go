package memory

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/repository"
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// workoutRepository is a read-only catalog over fixture workouts.
type workoutRepository struct {
	workouts []domain.Workout
}

// NewWorkoutRepository returns a catalog over a private copy of workouts.
func NewWorkoutRepository(workouts []domain.Workout) repository.WorkoutRepository {
	r := &workoutRepository{workouts: make([]domain.Workout, len(workouts))}
	for i, w := range workouts {
		r.workouts[i] = cloneWorkout(w)
	}
	sort.SliceStable(r.workouts, func(i, j int) bool {
		return r.workouts[i].CreatedAt.After(r.workouts[j].CreatedAt)
	})
	return r
}

func (r *workoutRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	for _, w := range r.workouts {
		if w.ID == id {
			c := cloneWorkout(w)
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *workoutRepository) ListByTrainerID(_ context.Context, trainerID primitive.ObjectID) ([]domain.Workout, error) {
	return r.filter(func(w domain.Workout) bool { return w.TrainerID == trainerID }), nil
}

func (r *workoutRepository) ListByStudentID(_ context.Context, studentID primitive.ObjectID) ([]domain.Workout, error) {
	return r.filter(func(w domain.Workout) bool { return w.StudentID == studentID }), nil
}

func (r *workoutRepository) filter(keep func(domain.Workout) bool) []domain.Workout {
	out := []domain.Workout{}
	for _, w := range r.workouts {
		if keep(w) {
			out = append(out, cloneWorkout(w))
		}
	}
	return out
}

func cloneWorkout(w domain.Workout) domain.Workout {
	w.Exercises = append([]domain.Exercise(nil), w.Exercises...)
	return w
}
