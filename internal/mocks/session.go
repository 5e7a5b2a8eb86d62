package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/creatorhub/internal/model"
)

// SessionStore is a mock type for the model.SessionStore interface.
type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Token(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *SessionStore) Load(ctx context.Context) (model.Session, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *SessionStore) Save(ctx context.Context, session model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Authenticator is a mock type for the model.Authenticator interface.
type Authenticator struct {
	mock.Mock
}

func (m *Authenticator) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.LoginResult), args.Error(1)
}
