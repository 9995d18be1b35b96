package memory

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/repository"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type postRepository struct {
	mu    sync.RWMutex
	posts []domain.Post
}

func NewPostRepository(posts []domain.Post) repository.PostRepository {
	r := &postRepository{}
	for _, p := range posts {
		r.posts = append(r.posts, clonePost(p))
	}
	return r
}

func (r *postRepository) Create(_ context.Context, post *domain.Post) (primitive.ObjectID, error) {
	if post.AuthorID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("post requires authorId")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = primitive.NewObjectID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	r.posts = append(r.posts, clonePost(*post))
	return post.ID, nil
}

func (r *postRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.posts {
		if p.ID == id {
			pp := clonePost(p)
			return &pp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *postRepository) ListRecent(_ context.Context, limit int) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, clonePost(p))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *postRepository) ToggleLike(_ context.Context, postID, userID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.posts {
		p := &r.posts[i]
		if p.ID != postID {
			continue
		}
		for j, id := range p.LikedBy {
			if id == userID {
				p.LikedBy = append(p.LikedBy[:j], p.LikedBy[j+1:]...)
				return false, nil
			}
		}
		p.LikedBy = append(p.LikedBy, userID)
		return true, nil
	}
	return false, repository.ErrNotFound
}

func clonePost(p domain.Post) domain.Post {
	p.LikedBy = append([]primitive.ObjectID(nil), p.LikedBy...)
	if p.WorkoutID != nil {
		id := *p.WorkoutID
		p.WorkoutID = &id
	}
	return p
}
