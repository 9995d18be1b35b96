package domain

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Challenge is a community goal students can join, e.g. train 30 days in a row.
type Challenge struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title          string               `bson:"title" json:"title"`
	Description    string               `bson:"description" json:"description"`
	DaysRequired   int                  `bson:"daysRequired" json:"daysRequired"`
	Reward         string               `bson:"reward" json:"reward"`
	StartDate      time.Time            `bson:"startDate" json:"startDate"`
	EndDate        time.Time            `bson:"endDate" json:"endDate"`
	ParticipantIDs []primitive.ObjectID `bson:"participantIds,omitempty" json:"-"`
}

// HasParticipant reports whether userID already joined.
func (c *Challenge) HasParticipant(userID primitive.ObjectID) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// RemainingDays rounds up to whole days and never goes below zero.
func (c *Challenge) RemainingDays(now time.Time) int {
	left := c.EndDate.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}

// Closed reports whether the challenge has ended.
func (c *Challenge) Closed(now time.Time) bool {
	return !now.Before(c.EndDate)
}
