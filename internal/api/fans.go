package api

import (
	"context"
	"net/http"

	"github.com/dtroode/creatorhub/internal/model"
)

const fansPath = "/fans"

// Fans reads and creates fans.
type Fans struct {
	doer Doer
}

func NewFans(doer Doer) *Fans {
	return &Fans{doer: doer}
}

func (f *Fans) List(ctx context.Context) ([]model.Fan, error) {
	resp, err := get(ctx, f.doer, fansPath)
	if err != nil {
		return nil, err
	}
	return decodeList[model.Fan](resp)
}

func (f *Fans) Create(ctx context.Context, in model.FanInput) (model.Fan, error) {
	resp, err := send(ctx, f.doer, http.MethodPost, fansPath, in)
	if err != nil {
		return model.Fan{}, err
	}
	return decode[model.Fan](resp)
}
