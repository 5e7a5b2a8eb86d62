package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/creatorhub/internal/apiclient"
)

// Doer is a mock type for the api.Doer interface.
type Doer struct {
	mock.Mock
}

func (m *Doer) Do(ctx context.Context, path string, opts apiclient.RequestOptions) (*apiclient.Response, error) {
	args := m.Called(ctx, path, opts)
	var resp *apiclient.Response
	if v := args.Get(0); v != nil {
		resp = v.(*apiclient.Response)
	}
	return resp, args.Error(1)
}

// JSONResponse builds a 200 response carrying body.
func JSONResponse(body string) *apiclient.Response {
	return &apiclient.Response{Status: 200, Body: []byte(body)}
}
