package memory

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/repository"
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type challengeRepository struct {
	mu         sync.RWMutex
	challenges []domain.Challenge
}

func NewChallengeRepository(challenges []domain.Challenge) repository.ChallengeRepository {
	r := &challengeRepository{}
	for _, c := range challenges {
		r.challenges = append(r.challenges, cloneChallenge(c))
	}
	return r
}

func (r *challengeRepository) List(_ context.Context) ([]domain.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Challenge, 0, len(r.challenges))
	for _, c := range r.challenges {
		out = append(out, cloneChallenge(c))
	}
	return out, nil
}

func (r *challengeRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.challenges {
		if c.ID == id {
			cc := cloneChallenge(c)
			return &cc, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *challengeRepository) AddParticipant(_ context.Context, challengeID, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.challenges {
		c := &r.challenges[i]
		if c.ID != challengeID {
			continue
		}
		if c.HasParticipant(userID) {
			return repository.ErrAlreadyMember
		}
		c.ParticipantIDs = append(c.ParticipantIDs, userID)
		return nil
	}
	return repository.ErrNotFound
}

func cloneChallenge(c domain.Challenge) domain.Challenge {
	c.ParticipantIDs = append([]primitive.ObjectID(nil), c.ParticipantIDs...)
	return c
}
