package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
	"github.com/simbrella/cms-console/internal/testutil"
)

func TestContextSupplier_Current(t *testing.T) {
	now := testutil.TestTime()
	live := testutil.NewSession("live").Build()
	stale := testutil.NewSession("stale").ExpiresAt(now.Add(-time.Minute)).Build()

	tests := []struct {
		name string
		ctx  context.Context
		want *domainauth.Session
	}{
		{name: "anonymous", ctx: context.Background()},
		{name: "signed in", ctx: domainauth.WithSession(context.Background(), &live), want: &live},
		{name: "expired reads as anonymous", ctx: domainauth.WithSession(context.Background(), &stale)},
	}

	s := ContextSupplier{Now: testutil.FixedTimeFunc(now)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Current(tt.ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContextSupplier_DefaultClock(t *testing.T) {
	sess := testutil.NewSession("x").ExpiresAt(time.Now().Add(time.Hour)).Build()
	got, err := ContextSupplier{}.Current(domainauth.WithSession(context.Background(), &sess))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "x", got.ID)
}
