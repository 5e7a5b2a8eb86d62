package api

import (
	"context"
	"net/http"

	"github.com/dtroode/creatorhub/internal/model"
)

const contentPath = "/contenu"

// Content reads and creates content items.
type Content struct {
	doer Doer
}

func NewContent(doer Doer) *Content {
	return &Content{doer: doer}
}

func (c *Content) List(ctx context.Context) ([]model.Content, error) {
	resp, err := get(ctx, c.doer, contentPath)
	if err != nil {
		return nil, err
	}
	return decodeList[model.Content](resp)
}

func (c *Content) Create(ctx context.Context, in model.ContentInput) (model.Content, error) {
	resp, err := send(ctx, c.doer, http.MethodPost, contentPath, in)
	if err != nil {
		return model.Content{}, err
	}
	return decode[model.Content](resp)
}
