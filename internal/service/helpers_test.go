package service

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/simbrella/cms-console/internal/apiclient"
	"github.com/simbrella/cms-console/internal/mocks"
	mockauth "github.com/simbrella/cms-console/internal/mocks/auth"
	"github.com/simbrella/cms-console/internal/observability/statsd"
)

type fixture struct {
	api   *mocks.MockRequester
	views *mockauth.RecordingInvalidator
	stats *statsd.Recorder
	deps  ActionDeps
}

// newFixture wires a mock requester. Calls without a matching EXPECT fail the test,
// so a fixture with no expectations asserts that the API is never reached.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockRequester(ctrl)
	views := &mockauth.RecordingInvalidator{}
	stats := &statsd.Recorder{}
	return &fixture{
		api:   api,
		views: views,
		stats: stats,
		deps: ActionDeps{
			API:   api,
			Views: views,
			Telemetry: Telemetry{
				Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
				Metrics: stats,
			},
		},
	}
}

func okEnvelope(t *testing.T, data any) *apiclient.Envelope[json.RawMessage] {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return &apiclient.Envelope[json.RawMessage]{Success: true, Data: raw}
}

func strPtr(s string) *string { return &s }
