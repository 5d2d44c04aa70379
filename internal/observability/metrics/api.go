package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/simbrella/cms-console/internal/observability/errors"
	"github.com/simbrella/cms-console/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// APIRequestMetric describes one call to the content API.
type APIRequestMetric struct {
	Method   string
	Endpoint string // low-cardinality path, e.g. /admin/blog-posts/:id
	Status   int    // 0 when no response was received
	Duration time.Duration
	Err      error
}

// EmitAPIRequest emits api.request and api.request.duration.
func EmitAPIRequest(sink statsd.Sink, in APIRequestMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"method":   in.Method,
		"endpoint": in.Endpoint,
		"status":   strconv.Itoa(in.Status),
		"result":   ResultSuccess,
	}
	if in.Err != nil {
		tags["result"] = ResultError
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("api.request", 1, tags)
	if in.Duration > 0 {
		sink.Timing("api.request.duration", in.Duration, CloneTags(tags))
	}
}

// ActionMetric describes one action-layer invocation.
type ActionMetric struct {
	Resource string
	Action   string
	Success  bool
	Err      error
}

// EmitAction emits action.result tagged by resource, action and outcome.
func EmitAction(sink statsd.Sink, in ActionMetric) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"resource": in.Resource,
		"action":   in.Action,
		"result":   ResultSuccess,
	}
	if !in.Success {
		tags["result"] = ResultError
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}
	sink.Count("action.result", 1, tags)
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
