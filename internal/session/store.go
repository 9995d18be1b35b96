// Package session holds the identity of the person using the client, keeps it
// durable across restarts, and decides which views that identity may reach.
package session

import (
	"alcyxob/training-coach/internal/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Authenticator validates credentials and creates accounts.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error)
}

// record is the persisted shape of the current session.
type record struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// Store holds the current user. Create it once per client process with
// NewStore and pass it to whatever needs the identity.
type Store struct {
	mu        sync.RWMutex
	auth      Authenticator
	persister Persister
	key       string
	current   *domain.User
}

// NewStore rehydrates the session from the persister. A missing or malformed
// record leaves the store without a session.
func NewStore(ctx context.Context, auth Authenticator, persister Persister, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{auth: auth, persister: persister, key: key}
	s.current = s.rehydrate(ctx)
	return s
}

func (s *Store) rehydrate(ctx context.Context) *domain.User {
	data, err := s.persister.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNoRecord) {
			log.Printf("WARN: Could not read session record %q: %v", s.key, err)
		}
		return nil
	}
	user, err := decodeRecord(data)
	if err != nil {
		log.Printf("WARN: Ignoring malformed session record %q: %v", s.key, err)
		return nil
	}
	return user
}

// Login authenticates and makes the resulting user the current session.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.set(ctx, user)
	return s.Current(), nil
}

// Register creates an account for a chosen role and signs it in.
func (s *Store) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrMissingRole
	}
	user, err := s.auth.Register(ctx, name, email, password, role)
	if err != nil {
		return nil, err
	}
	s.set(ctx, user)
	return s.Current(), nil
}

// Logout clears the in-memory and persisted session. Calling it without a
// session is fine.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.persister.Delete(ctx, s.key); err != nil {
		log.Printf("WARN: Could not remove session record %q: %v", s.key, err)
	}
}

// Current returns a copy of the signed-in user, or nil.
func (s *Store) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// set keeps the session in memory even if persisting it fails; the user only
// loses durability across restarts.
func (s *Store) set(ctx context.Context, user *domain.User) {
	u := &domain.User{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}

	s.mu.Lock()
	s.current = u
	s.mu.Unlock()

	data, err := json.Marshal(record{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, Role: u.Role})
	if err == nil {
		err = s.persister.Save(ctx, s.key, data)
	}
	if err != nil {
		log.Printf("WARN: Could not persist session record %q: %v", s.key, err)
	}
}

func decodeRecord(data []byte) (*domain.User, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	id, err := primitive.ObjectIDFromHex(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("bad id %q: %w", rec.ID, err)
	}
	if rec.Email == "" {
		return nil, errors.New("missing email")
	}
	if rec.Role != domain.RoleUnset && !rec.Role.Valid() {
		return nil, fmt.Errorf("unknown role %q", rec.Role)
	}
	return &domain.User{ID: id, Name: rec.Name, Email: rec.Email, Role: rec.Role}, nil
}
