package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/creatorhub/internal/model"
)

// UserReader is a mock type for the model.UserReader interface.
type UserReader struct {
	mock.Mock
}

func (m *UserReader) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.User)
	return items, args.Error(1)
}

// FanReader is a mock type for the model.FanReader interface.
type FanReader struct {
	mock.Mock
}

func (m *FanReader) List(ctx context.Context) ([]model.Fan, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Fan)
	return items, args.Error(1)
}

// ContentReader is a mock type for the model.ContentReader interface.
type ContentReader struct {
	mock.Mock
}

func (m *ContentReader) List(ctx context.Context) ([]model.Content, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Content)
	return items, args.Error(1)
}

// ImageReader is a mock type for the model.ImageReader interface.
type ImageReader struct {
	mock.Mock
}

func (m *ImageReader) List(ctx context.Context) ([]model.Image, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Image)
	return items, args.Error(1)
}
