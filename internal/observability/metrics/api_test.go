package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/simbrella/cms-console/internal/errors"
	"github.com/simbrella/cms-console/internal/observability/statsd"
)

func TestEmitAPIRequest(t *testing.T) {
	var rec statsd.Recorder
	EmitAPIRequest(&rec, APIRequestMetric{
		Method:   "GET",
		Endpoint: "/public/blog-posts",
		Status:   200,
		Duration: 20 * time.Millisecond,
	})
	EmitAPIRequest(&rec, APIRequestMetric{
		Method:   "POST",
		Endpoint: "/auth/login",
		Status:   401,
		Err:      apperrors.API(401, "nope", nil),
	})

	counts := rec.Named("api.request")
	require.Len(t, counts, 2)
	assert.Equal(t, "success", counts[0].Tags["result"])
	assert.Equal(t, "200", counts[0].Tags["status"])
	assert.Equal(t, "error", counts[1].Tags["result"])
	assert.Equal(t, "api", counts[1].Tags["error_class"])
	assert.Len(t, rec.Named("api.request.duration"), 1)

	EmitAPIRequest(nil, APIRequestMetric{})
}

func TestEmitAction(t *testing.T) {
	var rec statsd.Recorder
	EmitAction(&rec, ActionMetric{Resource: "blog-posts", Action: "create", Success: true})
	EmitAction(&rec, ActionMetric{Resource: "blog-posts", Action: "delete", Err: errors.New("boom")})

	got := rec.Named("action.result")
	require.Len(t, got, 2)
	assert.Equal(t, "success", got[0].Tags["result"])
	assert.Equal(t, "error", got[1].Tags["result"])
	assert.Equal(t, "errors_errorstring", got[1].Tags["error_class"])
}
