package api

import (
	"context"
	"net/http"

	"github.com/dtroode/creatorhub/internal/apiclient"
	"github.com/dtroode/creatorhub/internal/model"
)

const loginPath = "/auth/login"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Auth exchanges credentials for a token.
type Auth struct {
	doer Doer
}

func NewAuth(doer Doer) *Auth {
	return &Auth{doer: doer}
}

// Login is sent without any stored token.
func (a *Auth) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	resp, err := a.doer.Do(ctx, loginPath, apiclient.RequestOptions{
		Method:   http.MethodPost,
		Body:     loginRequest{Email: email, Password: password},
		SkipAuth: true,
	})
	if err != nil {
		return model.LoginResult{}, err
	}

	res, err := decode[model.LoginResult](resp)
	if err != nil {
		return model.LoginResult{}, err
	}
	if res.Token == "" {
		return model.LoginResult{}, ErrMissingToken
	}
	return res, nil
}
