package model

import "context"

// SessionUser is the account blob returned by login and persisted next to the token.
type SessionUser struct {
	ID    ID     `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Session is the persisted login state.
type Session struct {
	Token string       `json:"token"`
	User  *SessionUser `json:"user,omitempty"`
}

// Empty reports whether no token is stored.
func (s Session) Empty() bool { return s.Token == "" }

// TokenSource provides the bearer token for outgoing requests. An empty token
// with a nil error means "not signed in".
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// SessionStore persists the login session. Only the login/logout flow writes.
type SessionStore interface {
	TokenSource
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, session Session) error
	Clear(ctx context.Context) error
}

// LoginResult is the data of a successful login.
type LoginResult struct {
	Token string       `json:"token"`
	User  *SessionUser `json:"user"`
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
}
