package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/creatorhub/internal/model"
	"github.com/dtroode/creatorhub/internal/testutil"
)

// MockRedis mocks the redisAPI interface
type MockRedis struct {
	mock.Mock
}

func (m *MockRedis) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedis) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockRedis) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedis) Close() error {
	args := m.Called()
	return args.Error(0)
}

const testKey = "creatorhub:session"

func TestRedisStore_Load(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		getErr    error
		want      model.Session
		wantError bool
	}{
		{
			name: "stored session",
			raw:  `{"token":"tok","user":{"id":"1","email":"a@x.io"}}`,
			want: model.Session{Token: "tok", User: &model.SessionUser{ID: "1", Email: "a@x.io"}},
		},
		{name: "missing key", getErr: redis.Nil, want: model.Session{}},
		{name: "connection error", getErr: errors.New("dial tcp: refused"), wantError: true},
		{name: "corrupt value", raw: "{", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &MockRedis{}
			api.On("Get", mock.Anything, testKey).Return(tt.raw, tt.getErr)

			s := NewRedisStoreWithAPI(api, testKey, testutil.MakeNoopLogger())
			got, err := s.Load(context.Background())
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRedisStore_SaveUsesTokenExpiry(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": now.Add(2 * time.Hour).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	api := &MockRedis{}
	api.On("Set", mock.Anything, testKey, mock.MatchedBy(func(v string) bool {
		return strings.Contains(v, tok)
	}), 2*time.Hour).Return(nil)

	s := NewRedisStoreWithAPI(api, testKey, testutil.MakeNoopLogger())
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(context.Background(), model.Session{Token: tok}))
	api.AssertExpectations(t)
}

func TestRedisStore_SaveExpiredToken(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": now.Add(-time.Hour).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	t.Run("removes key", func(t *testing.T) {
		api := &MockRedis{}
		api.On("Del", mock.Anything, testKey).Return(nil).Once()

		s := NewRedisStoreWithAPI(api, testKey, testutil.MakeNoopLogger())
		s.now = func() time.Time { return now }

		err := s.Save(context.Background(), model.Session{Token: tok})
		require.ErrorIs(t, err, model.ErrSessionExpired)
		api.AssertExpectations(t)
		api.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delete fails", func(t *testing.T) {
		api := &MockRedis{}
		api.On("Del", mock.Anything, testKey).Return(errors.New("READONLY"))

		s := NewRedisStoreWithAPI(api, testKey, testutil.MakeNoopLogger())
		s.now = func() time.Time { return now }

		err := s.Save(context.Background(), model.Session{Token: tok})
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrSessionExpired)
		assert.Contains(t, err.Error(), "failed to remove expired session")
	})
}

func TestRedisStore_SaveOpaqueToken(t *testing.T) {
	api := &MockRedis{}
	api.On("Set", mock.Anything, testKey, `{"token":"opaque"}`, time.Duration(0)).Return(nil)

	s := NewRedisStoreWithAPI(api, testKey, testutil.MakeNoopLogger())
	require.NoError(t, s.Save(context.Background(), model.Session{Token: "opaque"}))
	api.AssertExpectations(t)
}

func TestRedisStore_SaveError(t *testing.T) {
	api := &MockRedis{}
	api.On("Set", mock.Anything, testKey, mock.Anything, mock.Anything).Return(errors.New("READONLY"))

	s := NewRedisStoreWithAPI(api, testKey, testutil.MakeNoopLogger())
	err := s.Save(context.Background(), model.Session{Token: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write session")
}

func TestRedisStore_TokenAndClear(t *testing.T) {
	api := &MockRedis{}
	api.On("Get", mock.Anything, testKey).Return(`{"token":"tok"}`, nil)
	api.On("Del", mock.Anything, testKey).Return(nil)
	api.On("Close").Return(nil)

	s := NewRedisStoreWithAPI(api, testKey, testutil.MakeNoopLogger())

	tok, err := s.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)

	require.NoError(t, s.Clear(context.Background()))
	require.NoError(t, s.Close())
	api.AssertExpectations(t)
}

func TestNewRedisStore_InvalidURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "http://not-redis", testKey, testutil.MakeNoopLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid redis url")
}
