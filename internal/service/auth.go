package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dtroode/creatorhub/internal/logger"
	"github.com/dtroode/creatorhub/internal/model"
	"github.com/dtroode/creatorhub/internal/token"
)

// Auth runs the login flow. It is the only writer of the session store.
type Auth struct {
	authenticator model.Authenticator
	store         model.SessionStore
	logger        *logger.Logger
	now           func() time.Time
}

func NewAuth(authenticator model.Authenticator, store model.SessionStore, logger *logger.Logger) *Auth {
	return &Auth{
		authenticator: authenticator,
		store:         store,
		logger:        logger,
		now:           time.Now,
	}
}

// CurrentSession describes the stored login.
type CurrentSession struct {
	Session model.Session
	Claims  token.Claims
	// ClaimsErr is set when the token could not be decoded; the session is
	// still usable since only the backend validates tokens.
	ClaimsErr error
	Expired   bool
}

// Login exchanges credentials for a token and stores the session.
func (a *Auth) Login(ctx context.Context, email, password string) (model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.Session{}, model.ErrMissingCredentials
	}

	a.logger.Debug("Auth service: signing in",
		"email", email)

	res, err := a.authenticator.Login(ctx, email, password)
	if err != nil {
		a.logger.Info("Auth service: login rejected",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to login: %w", err)
	}

	sess := model.Session{Token: res.Token, User: res.User}
	if err := a.store.Save(ctx, sess); err != nil {
		a.logger.Error("Auth service: failed to save session",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to save session: %w", err)
	}

	a.logger.Info("Auth service: signed in",
		"email", email)
	return sess, nil
}

// Logout forgets the stored session.
func (a *Auth) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	a.logger.Info("Auth service: signed out")
	return nil
}

// Current returns the stored session with its decoded claims.
func (a *Auth) Current(ctx context.Context) (CurrentSession, error) {
	sess, err := a.store.Load(ctx)
	if err != nil {
		return CurrentSession{}, fmt.Errorf("failed to load session: %w", err)
	}
	if sess.Empty() {
		return CurrentSession{}, model.ErrNotSignedIn
	}

	cur := CurrentSession{Session: sess}
	claims, err := token.Inspect(sess.Token)
	if err != nil {
		a.logger.Debug("Auth service: session token is opaque",
			"error", err.Error())
		cur.ClaimsErr = err
		return cur, nil
	}
	cur.Claims = claims
	cur.Expired = claims.Expired(a.now())
	return cur, nil
}
