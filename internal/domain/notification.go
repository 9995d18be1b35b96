package domain

// Severity of a user-facing notification.
type Severity string

const (
	SeverityNormal Severity = "normal"
	SeverityError  Severity = "error"
)

// NotificationKind identifies which transition produced a notification.
type NotificationKind string

const (
	NotifyExerciseCompleted NotificationKind = "exercise_completed"
	NotifyWorkoutCompleted  NotificationKind = "workout_completed"
	NotifySessionStarted    NotificationKind = "session_started"
	NotifyAccessRestricted  NotificationKind = "access_restricted"
	NotifyChallengeJoined   NotificationKind = "challenge_joined"
	NotifyPostPublished     NotificationKind = "post_published"
	NotifyPostLiked         NotificationKind = "post_liked"
	NotifyPostShared        NotificationKind = "post_shared"
)

// Notification is a short message the UI renders as a toast.
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Severity    Severity         `json:"severity"`
	Points      int              `json:"points,omitempty"`
}

// Notifier receives notifications emitted by the core.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }
