package api

import (
	"context"
	"net/http"

	"github.com/dtroode/creatorhub/internal/apiclient"
	"github.com/dtroode/creatorhub/internal/model"
)

const usersPath = "/users"

// Users manages employee and admin accounts.
type Users struct {
	doer Doer
}

func NewUsers(doer Doer) *Users {
	return &Users{doer: doer}
}

func (u *Users) List(ctx context.Context) ([]model.User, error) {
	resp, err := get(ctx, u.doer, usersPath)
	if err != nil {
		return nil, err
	}
	return decodeList[model.User](resp)
}

func (u *Users) Create(ctx context.Context, in model.UserInput) (model.User, error) {
	resp, err := send(ctx, u.doer, http.MethodPost, usersPath, in)
	if err != nil {
		return model.User{}, err
	}
	return decode[model.User](resp)
}

func (u *Users) Update(ctx context.Context, id model.ID, in model.UserInput) (model.User, error) {
	resp, err := send(ctx, u.doer, http.MethodPut, itemPath(usersPath, id), in)
	if err != nil {
		return model.User{}, err
	}
	return decode[model.User](resp)
}

func (u *Users) Delete(ctx context.Context, id model.ID) error {
	resp, err := u.doer.Do(ctx, itemPath(usersPath, id), apiclient.RequestOptions{Method: http.MethodDelete})
	if err != nil {
		return err
	}
	return check(resp)
}
