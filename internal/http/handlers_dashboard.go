package httpx

import (
	"context"
	"net/http"

	"github.com/simbrella/cms-console/internal/domain/model"
)

// DashboardService is the read side of the console home page.
// Every method degrades to zero values, so handlers always answer 200.
type DashboardService interface {
	Data(ctx context.Context) model.DashboardData
	VisitorStats(ctx context.Context, period string) model.VisitorData
	TopBlogs(ctx context.Context, limit int) []model.BlogPost
	RecentActivity(ctx context.Context, limit int) []model.RecentActivity
	Overview(ctx context.Context, period string, limit int) model.DashboardOverview
}

// DashboardHandlers serves the dashboard widgets.
type DashboardHandlers struct {
	Svc DashboardService
}

func (h *DashboardHandlers) Data(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Svc.Data(r.Context()))
}

func (h *DashboardHandlers) Visitors(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Svc.VisitorStats(r.Context(), r.URL.Query().Get("period")))
}

func (h *DashboardHandlers) TopBlogs(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", model.DefaultDashboardLimit)
	WriteJSON(w, http.StatusOK, h.Svc.TopBlogs(r.Context(), limit))
}

func (h *DashboardHandlers) RecentActivity(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", model.DefaultDashboardLimit)
	WriteJSON(w, http.StatusOK, h.Svc.RecentActivity(r.Context(), limit))
}

func (h *DashboardHandlers) Overview(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", model.DefaultDashboardLimit)
	WriteJSON(w, http.StatusOK, h.Svc.Overview(r.Context(), r.URL.Query().Get("period"), limit))
}
