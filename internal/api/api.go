// Package api exposes the backend resources as typed operations on top of
// apiclient. Failures from the client are returned unchanged.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dtroode/creatorhub/internal/apiclient"
	"github.com/dtroode/creatorhub/internal/model"
)

// ErrMissingToken is returned by Login when the backend accepted the
// credentials but returned no token.
var ErrMissingToken = errors.New("login response carries no token")

// Doer performs a request. *apiclient.Client implements it.
type Doer interface {
	Do(ctx context.Context, path string, opts apiclient.RequestOptions) (*apiclient.Response, error)
}

// Set bundles every resource.
type Set struct {
	Users    *Users
	Fans     *Fans
	Content  *Content
	Images   *Images
	Messages *Messages
	Profile  *Profile
	Auth     *Auth
}

// New creates all resources on top of doer.
func New(doer Doer) *Set {
	return &Set{
		Users:    NewUsers(doer),
		Fans:     NewFans(doer),
		Content:  NewContent(doer),
		Images:   NewImages(doer),
		Messages: NewMessages(doer),
		Profile:  NewProfile(doer),
		Auth:     NewAuth(doer),
	}
}

type envelope[T any] struct {
	Data  T      `json:"data"`
	Error string `json:"error"`
}

// decode unwraps the {data, error} envelope. A non-empty error field is
// reported as *model.APIError even on a 2xx status.
func decode[T any](resp *apiclient.Response) (T, error) {
	var env envelope[T]
	if err := resp.Decode(&env); err != nil {
		return env.Data, fmt.Errorf("failed to decode envelope: %w", err)
	}
	if env.Error != "" {
		return env.Data, &model.APIError{Status: resp.Status, Message: env.Error, Body: resp.Value()}
	}
	return env.Data, nil
}

// decodeList is decode for collections. A bare JSON array is accepted and a
// missing or null list yields an empty slice.
func decodeList[T any](resp *apiclient.Response) ([]T, error) {
	var items []T
	if body := bytes.TrimSpace(resp.Body); len(body) > 0 && body[0] == '[' {
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
	} else {
		var err error
		if items, err = decode[[]T](resp); err != nil {
			return nil, err
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// check reports an envelope error in a body whose data is not needed.
// Empty and non-JSON bodies are accepted.
func check(resp *apiclient.Response) error {
	if !resp.JSON() {
		return nil
	}
	_, err := decode[json.RawMessage](resp)
	return err
}

func get(ctx context.Context, doer Doer, path string) (*apiclient.Response, error) {
	return doer.Do(ctx, path, apiclient.RequestOptions{Method: http.MethodGet})
}

func send(ctx context.Context, doer Doer, method, path string, body any) (*apiclient.Response, error) {
	return doer.Do(ctx, path, apiclient.RequestOptions{Method: method, Body: body})
}

func itemPath(collection string, id model.ID) string {
	return collection + "/" + url.PathEscape(id.String())
}
