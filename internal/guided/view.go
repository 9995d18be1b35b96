package guided

import "alcyxob/training-coach/internal/domain"

// ExerciseView is an exercise as rendered inside a run.
type ExerciseView struct {
	domain.Exercise
	Index    int  `json:"index"`
	Unlocked bool `json:"unlocked"`
	Active   bool `json:"active"`
}

// View is a read-only snapshot of a session.
type View struct {
	ID                  string         `json:"id"`
	WorkoutID           string         `json:"workoutId"`
	Title               string         `json:"title"`
	State               State          `json:"state"`
	Training            bool           `json:"training"`
	CurrentIndex        *int           `json:"currentIndex,omitempty"`
	HighestReached      int            `json:"highestReached"`
	EarnedPoints        int            `json:"earnedPoints"`
	TotalPossiblePoints int            `json:"totalPossiblePoints"`
	CompletedCount      int            `json:"completedCount"`
	TotalExercises      int            `json:"totalExercises"`
	ProgressPercent     float64        `json:"progressPercent"`
	Exercises           []ExerciseView `json:"exercises"`
}

// Snapshot captures the session's observable state.
func (s *Session) Snapshot() View {
	v := View{
		ID:                  s.id,
		WorkoutID:           s.workoutID.Hex(),
		Title:               s.title,
		State:               s.State(),
		Training:            s.training,
		HighestReached:      s.highest,
		EarnedPoints:        s.earned,
		TotalPossiblePoints: s.TotalPossiblePoints(),
		CompletedCount:      s.CompletedCount(),
		TotalExercises:      len(s.exercises),
		ProgressPercent:     s.ProgressPercent(),
		Exercises:           make([]ExerciseView, len(s.exercises)),
	}
	if s.training {
		cur := s.current
		v.CurrentIndex = &cur
	}
	for i, ex := range s.exercises {
		v.Exercises[i] = ExerciseView{
			Exercise: ex,
			Index:    i,
			Unlocked: s.IsUnlocked(i),
			Active:   s.training && i == s.current,
		}
	}
	return v
}

// Recorder buffers notifications until the caller drains them.
type Recorder struct {
	pending []domain.Notification
}

func (r *Recorder) Notify(n domain.Notification) {
	r.pending = append(r.pending, n)
}

// Drain returns the buffered notifications in emission order and empties the buffer.
func (r *Recorder) Drain() []domain.Notification {
	out := r.pending
	r.pending = nil
	if out == nil {
		out = []domain.Notification{}
	}
	return out
}
