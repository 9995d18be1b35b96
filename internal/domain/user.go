package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of account kinds. The zero value means the user
// has not picked a role yet.
type Role string

const (
	RoleUnset   Role = ""
	RoleTrainer Role = "trainer"
	RoleStudent Role = "student"
)

// ParseRole accepts only the closed role values.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleTrainer:
		return RoleTrainer, true
	case RoleStudent:
		return RoleStudent, true
	}
	return RoleUnset, false
}

// Valid reports whether r is one of the closed roles.
func (r Role) Valid() bool {
	return r == RoleTrainer || r == RoleStudent
}

// Home is the landing view of the role.
func (r Role) Home() string {
	switch r {
	case RoleTrainer:
		return "/trainer-dashboard"
	case RoleStudent:
		return "/student-dashboard"
	}
	return "/role-selection"
}

// Audience is the plural noun used in user-facing messages about the role.
func (r Role) Audience() string {
	switch r {
	case RoleTrainer:
		return "trainers"
	case RoleStudent:
		return "students"
	}
	return "registered users"
}

// User represents an account (either a Trainer or a Student).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never exposed
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Trainer-side: students coached by this trainer.
	StudentIDs []primitive.ObjectID `bson:"studentIds,omitempty" json:"studentIds,omitempty"`

	// Student-side: the trainer who authors this student's workouts.
	TrainerID *primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// Public returns a copy without the password hash.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.PasswordHash = ""
	return &c
}
