package api

import (
	"context"
	"net/http"

	"github.com/dtroode/creatorhub/internal/model"
)

const imagesPath = "/images"

// Images reads and creates priced images.
type Images struct {
	doer Doer
}

func NewImages(doer Doer) *Images {
	return &Images{doer: doer}
}

func (i *Images) List(ctx context.Context) ([]model.Image, error) {
	resp, err := get(ctx, i.doer, imagesPath)
	if err != nil {
		return nil, err
	}
	return decodeList[model.Image](resp)
}

func (i *Images) Create(ctx context.Context, in model.ImageInput) (model.Image, error) {
	resp, err := send(ctx, i.doer, http.MethodPost, imagesPath, in)
	if err != nil {
		return model.Image{}, err
	}
	return decode[model.Image](resp)
}
