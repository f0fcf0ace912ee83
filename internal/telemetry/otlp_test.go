package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestNewProvider_DisabledWithoutEndpoint(t *testing.T) {
	before := otel.GetTracerProvider()
	p, err := NewProvider(context.Background(), "", "")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, before, otel.GetTracerProvider())
	assert.NoError(t, p.Shutdown(context.Background()), "nil provider shutdown is a no-op")
}

func TestNewProvider_InstallsGlobalProvider(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	p, err := NewProvider(context.Background(), "127.0.0.1:4318", "usersadmin-test")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Same(t, p.provider, otel.GetTracerProvider())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = p.Shutdown(ctx)
}
