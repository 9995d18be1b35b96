package service

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/repository"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrAlreadyJoined     = errors.New("already joined this challenge")
	ErrChallengeClosed   = errors.New("challenge has ended")
)

// ChallengeView is a challenge as seen by one user.
type ChallengeView struct {
	domain.Challenge
	Participants  int  `json:"participants"`
	RemainingDays int  `json:"remainingDays"`
	Joined        bool `json:"joined"`
	Closed        bool `json:"closed"`
}

// JoinResult carries the joined challenge and the notification to show.
type JoinResult struct {
	Challenge    ChallengeView       `json:"challenge"`
	Notification domain.Notification `json:"notification"`
}

// ChallengeService lists community challenges and lets users join them.
type ChallengeService interface {
	List(ctx context.Context, userID primitive.ObjectID) ([]ChallengeView, error)
	Join(ctx context.Context, userID, challengeID primitive.ObjectID) (*JoinResult, error)
}

type challengeService struct {
	challengeRepo repository.ChallengeRepository
	now           func() time.Time
}

func NewChallengeService(challengeRepo repository.ChallengeRepository) ChallengeService {
	return &challengeService{challengeRepo: challengeRepo, now: time.Now}
}

func (s *challengeService) List(ctx context.Context, userID primitive.ObjectID) ([]ChallengeView, error) {
	challenges, err := s.challengeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]ChallengeView, 0, len(challenges))
	for i := range challenges {
		views = append(views, s.view(&challenges[i], userID, now))
	}
	return views, nil
}

func (s *challengeService) Join(ctx context.Context, userID, challengeID primitive.ObjectID) (*JoinResult, error) {
	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	now := s.now()
	if challenge.Closed(now) {
		return nil, ErrChallengeClosed
	}
	if challenge.HasParticipant(userID) {
		return nil, ErrAlreadyJoined
	}

	if err = s.challengeRepo.AddParticipant(ctx, challengeID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyMember):
			return nil, ErrAlreadyJoined
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	challenge.ParticipantIDs = append(challenge.ParticipantIDs, userID)
	log.Printf("INFO: User %s joined challenge %s", userID.Hex(), challengeID.Hex())

	return &JoinResult{
		Challenge: s.view(challenge, userID, now),
		Notification: domain.Notification{
			Kind:        domain.NotifyChallengeJoined,
			Title:       "Challenge accepted!",
			Description: fmt.Sprintf("You joined %q. Good luck!", challenge.Title),
			Severity:    domain.SeverityNormal,
		},
	}, nil
}

func (s *challengeService) view(c *domain.Challenge, userID primitive.ObjectID, now time.Time) ChallengeView {
	return ChallengeView{
		Challenge:     *c,
		Participants:  len(c.ParticipantIDs),
		RemainingDays: c.RemainingDays(now),
		Joined:        c.HasParticipant(userID),
		Closed:        c.Closed(now),
	}
}
