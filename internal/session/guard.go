package session

import (
	"alcyxob/training-coach/internal/domain"
	"fmt"
)

// LoginPath is where unauthenticated users are sent.
const LoginPath = "/login"

// Outcome of a route guard check.
type Outcome int

const (
	Allow Outcome = iota
	RedirectToLogin
	RedirectToHome
)

// Decision tells the router what to do with a navigation.
type Decision struct {
	Outcome  Outcome
	Location string               // empty when allowed
	Notice   *domain.Notification // set on role mismatch
}

// Guard decides whether current may open a view that requires role.
// Unauthenticated users go to the login view; anyone else without the role
// is sent to their own home with an "access restricted" notice. A user who
// never picked a role is sent to role selection.
func Guard(current *domain.User, required domain.Role) Decision {
	if current == nil {
		return Decision{Outcome: RedirectToLogin, Location: LoginPath}
	}
	if current.Role == required && required.Valid() {
		return Decision{Outcome: Allow}
	}
	return Decision{
		Outcome:  RedirectToHome,
		Location: current.Role.Home(),
		Notice: &domain.Notification{
			Kind:        domain.NotifyAccessRestricted,
			Title:       "Access restricted",
			Description: fmt.Sprintf("This page is only for %s.", required.Audience()),
			Severity:    domain.SeverityError,
		},
	}
}

// GuardAnyRole is Guard for views open to both roles. It still keeps out users
// who never picked a role, sending them to role selection.
func GuardAnyRole(current *domain.User) Decision {
	if current == nil {
		return Decision{Outcome: RedirectToLogin, Location: LoginPath}
	}
	if current.Role.Valid() {
		return Decision{Outcome: Allow}
	}
	return Decision{
		Outcome:  RedirectToHome,
		Location: current.Role.Home(),
		Notice: &domain.Notification{
			Kind:        domain.NotifyAccessRestricted,
			Title:       "Access restricted",
			Description: "Choose whether you are a trainer or a student first.",
			Severity:    domain.SeverityError,
		},
	}
}
