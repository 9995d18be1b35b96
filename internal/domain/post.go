package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxPostLength caps the body of a feed post, in runes.
const MaxPostLength = 1000

// Post is an entry in the community feed. A post may point at a workout the
// author trained, with a short performance line such as "45 min, 320 kcal".
type Post struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	AuthorID    primitive.ObjectID   `bson:"authorId" json:"authorId"`
	Content     string               `bson:"content" json:"content"`
	WorkoutID   *primitive.ObjectID  `bson:"workoutId,omitempty" json:"workoutId,omitempty"`
	Performance string               `bson:"performance,omitempty" json:"performance,omitempty"`
	LikedBy     []primitive.ObjectID `bson:"likedBy,omitempty" json:"-"`
	Comments    int                  `bson:"comments" json:"comments"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
}

// LikedByUser reports whether userID currently likes the post.
func (p *Post) LikedByUser(userID primitive.ObjectID) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
