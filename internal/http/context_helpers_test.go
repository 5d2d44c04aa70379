package httpx

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simbrella/cms-console/internal/testutil"
)

func TestSessionContextHelpers(t *testing.T) {
	assert.Nil(t, GetSessionFromContext(context.Background()))

	ctx := SetSessionInContext(context.Background(), nil)
	assert.Nil(t, GetSessionFromContext(ctx))

	sess := testutil.NewSession("s1").BuildPtr()
	ctx = SetSessionInContext(context.Background(), sess)
	assert.Same(t, sess, GetSessionFromContext(ctx))
}

func TestSessionID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Empty(t, sessionID(r))

	r.Header.Set("Cookie", SessionCookieName+"=abc")
	assert.Equal(t, "abc", sessionID(r))
}
