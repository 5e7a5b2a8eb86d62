package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dtroode/creatorhub/internal/testutil"
)

func TestInit_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), testutil.MakeNoopLogger(), "", "creatorhub", "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))
}
