package session

import (
	"alcyxob/training-coach/internal/domain"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memPersister struct {
	data    map[string][]byte
	saveErr error
	loadErr error
	deletes int
}

func newMemPersister() *memPersister {
	return &memPersister{data: map[string][]byte{}}
}

func (p *memPersister) Load(_ context.Context, key string) ([]byte, error) {
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	d, ok := p.data[key]
	if !ok {
		return nil, ErrNoRecord
	}
	return d, nil
}

func (p *memPersister) Save(_ context.Context, key string, data []byte) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.data[key] = data
	return nil
}

func (p *memPersister) Delete(_ context.Context, key string) error {
	p.deletes++
	delete(p.data, key)
	return nil
}

type stubAuth struct {
	user        *domain.User
	err         error
	registerHit int
	loginHit    int
}

func (a *stubAuth) Authenticate(_ context.Context, email, _ string) (*domain.User, error) {
	a.loginHit++
	if a.err != nil {
		return nil, a.err
	}
	u := *a.user
	u.Email = email
	return &u, nil
}

func (a *stubAuth) Register(_ context.Context, name, email, _ string, role domain.Role) (*domain.User, error) {
	a.registerHit++
	if a.err != nil {
		return nil, a.err
	}
	return &domain.User{ID: primitive.NewObjectID(), Name: name, Email: email, Role: role, PasswordHash: "hash"}, nil
}

func TestRegister_MissingRole(t *testing.T) {
	ctx := context.Background()
	auth := &stubAuth{}
	p := newMemPersister()
	s := NewStore(ctx, auth, p, "")

	_, err := s.Register(ctx, "Ana", "ana@x.com", "secret", domain.RoleUnset)
	assert.ErrorIs(t, err, domain.ErrMissingRole)
	assert.Zero(t, auth.registerHit, "authenticator is not consulted without a role")
	assert.Nil(t, s.Current())
	assert.Empty(t, p.data)

	_, err = s.Register(ctx, "Ana", "ana@x.com", "secret", domain.Role("admin"))
	assert.ErrorIs(t, err, domain.ErrMissingRole)
}

func TestRegister_Student(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	s := NewStore(ctx, &stubAuth{}, p, "")

	u, err := s.Register(ctx, "Ana", "ana@x.com", "secret", domain.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, u.Role)
	require.NotNil(t, s.Current())
	assert.Equal(t, domain.RoleStudent, s.Current().Role)
	assert.Empty(t, s.Current().PasswordHash)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(p.data[DefaultKey], &rec))
	assert.Equal(t, "Ana", rec["name"])
	assert.Equal(t, "ana@x.com", rec["email"])
	assert.Equal(t, "student", rec["role"])
	assert.Equal(t, u.ID.Hex(), rec["id"])
	assert.Len(t, rec, 4)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	trainer := &domain.User{ID: primitive.NewObjectID(), Name: "Coach", Role: domain.RoleTrainer}
	auth := &stubAuth{user: trainer}
	s := NewStore(ctx, auth, newMemPersister(), "")

	u, err := s.Login(ctx, "coach@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, trainer.ID, u.ID)
	assert.Equal(t, "coach@x.com", s.Current().Email)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	auth := &stubAuth{err: domain.ErrInvalidCredentials}
	s := NewStore(ctx, auth, newMemPersister(), "")

	_, err := s.Login(ctx, "a@x.com", "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, s.Current())

	_, err = s.Login(ctx, " ", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, 1, auth.loginHit, "blank input is rejected locally")
}

func TestRehydrate(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	first := NewStore(ctx, &stubAuth{}, p, "")
	u, err := first.Register(ctx, "Ana", "ana@x.com", "secret", domain.RoleStudent)
	require.NoError(t, err)

	second := NewStore(ctx, &stubAuth{}, p, "")
	require.NotNil(t, second.Current())
	assert.Equal(t, u.ID, second.Current().ID)
	assert.Equal(t, domain.RoleStudent, second.Current().Role)
}

func TestRehydrate_BadRecords(t *testing.T) {
	cases := map[string]string{
		"not json":     "{oops",
		"bad id":       `{"id":"1","name":"A","email":"a@x.com","role":"student"}`,
		"no email":     `{"id":"665f00000000000000000011","name":"A","email":"","role":"student"}`,
		"unknown role": `{"id":"665f00000000000000000011","name":"A","email":"a@x.com","role":"admin"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			p := newMemPersister()
			p.data[DefaultKey] = []byte(raw)
			s := NewStore(context.Background(), &stubAuth{}, p, "")
			assert.Nil(t, s.Current())
		})
	}

	p := newMemPersister()
	p.loadErr = errors.New("disk on fire")
	assert.Nil(t, NewStore(context.Background(), &stubAuth{}, p, "").Current())
}

func TestLogout_Idempotent(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	s := NewStore(ctx, &stubAuth{}, p, "")
	_, err := s.Register(ctx, "Ana", "ana@x.com", "secret", domain.RoleStudent)
	require.NoError(t, err)

	s.Logout(ctx)
	s.Logout(ctx)
	assert.Nil(t, s.Current())
	assert.Empty(t, p.data)
	assert.Equal(t, 2, p.deletes)
	assert.Nil(t, NewStore(ctx, &stubAuth{}, p, "").Current())
}

func TestSaveFailureKeepsSessionInMemory(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	p.saveErr = errors.New("read-only")
	s := NewStore(ctx, &stubAuth{}, p, "")

	_, err := s.Register(ctx, "Ana", "ana@x.com", "secret", domain.RoleTrainer)
	require.NoError(t, err)
	assert.NotNil(t, s.Current())
}

func TestCurrentReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, &stubAuth{}, newMemPersister(), "")
	_, err := s.Register(ctx, "Ana", "ana@x.com", "secret", domain.RoleStudent)
	require.NoError(t, err)

	s.Current().Role = domain.RoleTrainer
	assert.Equal(t, domain.RoleStudent, s.Current().Role)
}
