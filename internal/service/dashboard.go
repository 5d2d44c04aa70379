package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/simbrella/cms-console/internal/apiclient"
	"github.com/simbrella/cms-console/internal/domain/model"
	apperrors "github.com/simbrella/cms-console/internal/errors"
)

// DashboardService reads the dashboard aggregates. Every read degrades to a
// zero-valued payload instead of failing, so the dashboard always renders.
type DashboardService struct {
	act *actions
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(deps ActionDeps) *DashboardService {
	return &DashboardService{act: newActions("dashboard", deps)}
}

// Data returns the combined dashboard payload.
func (s *DashboardService) Data(ctx context.Context) model.DashboardData {
	data, ok := load[model.DashboardData](ctx, s.act, "data", apiclient.Request{Method: http.MethodGet, Path: "/admin/dashboard"})
	if !ok {
		return model.ZeroDashboard()
	}
	return data
}

// VisitorStats returns visitor totals for period ("daily" when empty).
func (s *DashboardService) VisitorStats(ctx context.Context, period string) model.VisitorData {
	if period == "" {
		period = model.DefaultVisitorPeriod
	}
	req := apiclient.Request{Method: http.MethodGet, Path: "/admin/dashboard/visitors", Query: url.Values{"period": {period}}}
	data, ok := load[model.VisitorData](ctx, s.act, "visitors", req)
	if !ok {
		return model.ZeroVisitorData(period)
	}
	return data
}

// TopBlogs returns the most viewed posts.
func (s *DashboardService) TopBlogs(ctx context.Context, limit int) []model.BlogPost {
	data, ok := load[[]model.BlogPost](ctx, s.act, "top_blogs", limitRequest("/admin/dashboard/top-blogs", limit))
	if !ok || data == nil {
		return []model.BlogPost{}
	}
	return data
}

// RecentActivity returns the latest content changes.
func (s *DashboardService) RecentActivity(ctx context.Context, limit int) []model.RecentActivity {
	data, ok := load[[]model.RecentActivity](ctx, s.act, "recent_activity", limitRequest("/admin/dashboard/recent-activity", limit))
	if !ok || data == nil {
		return []model.RecentActivity{}
	}
	return data
}

// Overview runs the four dashboard reads concurrently.
func (s *DashboardService) Overview(ctx context.Context, period string, limit int) model.DashboardOverview {
	var out model.DashboardOverview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Data = s.Data(gctx)
		return nil
	})
	g.Go(func() error {
		out.Visitors = s.VisitorStats(gctx, period)
		return nil
	})
	g.Go(func() error {
		out.TopBlogs = s.TopBlogs(gctx, limit)
		return nil
	})
	g.Go(func() error {
		out.RecentActivity = s.RecentActivity(gctx, limit)
		return nil
	})
	_ = g.Wait() // reads never fail; each falls back on its own
	return out
}

func limitRequest(path string, limit int) apiclient.Request {
	if limit <= 0 {
		limit = model.DefaultDashboardLimit
	}
	return apiclient.Request{Method: http.MethodGet, Path: path, Query: url.Values{"limit": {strconv.Itoa(limit)}}}
}

// load fetches req and decodes its data. A reported failure or a missing payload
// counts as a failure; data from an envelope with success=false is never used.
func load[T any](ctx context.Context, a *actions, action string, req apiclient.Request) (T, bool) {
	var zero T
	env, err := a.call(ctx, req)
	if err == nil && isEmptyData(env) {
		msg := "empty dashboard payload"
		if env.Message != "" {
			msg = env.Message
		}
		err = apperrors.Malformed(apperrors.Internal(msg))
	}
	if err != nil {
		a.failed(ctx, action, err)
		return zero, false
	}
	decoded, err := apiclient.Decode[T](env)
	if err != nil {
		a.failed(ctx, action, apperrors.Malformed(err))
		return zero, false
	}
	a.succeeded(action)
	return decoded.Data, true
}

func isEmptyData(env *apiclient.Envelope[json.RawMessage]) bool {
	d := bytes.TrimSpace(env.Data)
	return len(d) == 0 || bytes.Equal(d, []byte("null"))
}
