package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
	"github.com/simbrella/cms-console/internal/domain/model"
	"github.com/simbrella/cms-console/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth            *service.AuthService
	BlogPosts       *service.BlogPostService
	Careers         *service.CareerService
	Messages        *service.MessageService
	HeroSections    *service.HeroSectionService
	AboutSections   *service.AboutSectionService
	ServiceSections *service.ServiceSectionService
	ProductSections *service.ProductSectionService
	Dashboard       DashboardService

	CookieDomain string
	// Optional: cached GET responses, invalidated by the services' mutations.
	Views ViewCacheConfig
	// Optional: when set, request metrics are recorded and served at GET /metrics.
	Metrics *Metrics
	// Optional: dependencies probed by /healthz.
	Health []HealthChecker
	Logger *slog.Logger
}

// NewRouter creates and configures the console's HTTP handler.
//
// Middleware order, outermost first: panic recovery, access log, CSRF, session loading,
// metrics. Metrics sits next to the mux so it sees the matched route pattern.
func NewRouter(services RouterServices) http.Handler {
	if services.Auth == nil {
		panic("httpx: RouterServices.Auth is required") //nolint:forbidigo // Fail fast during server setup.
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	services.Views.Logger = logger
	services.Views.Metrics = services.Metrics

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", healthHandler(services.Health...))
	mux.Handle("HEAD /healthz", healthHandler(services.Health...))
	if services.Metrics != nil {
		mux.Handle("GET /metrics", services.Metrics.Handler())
	}

	registerAuthRoutes(mux, &AuthHandlers{Svc: services.Auth, CookieDomain: services.CookieDomain, Logger: logger})
	registerContentRoutes(mux, services)

	var handler http.Handler = mux
	if services.Metrics != nil {
		handler = services.Metrics.Middleware(handler)
	}
	handler = LoadSession(SessionConfig{Auth: services.Auth, CookieDomain: services.CookieDomain, Logger: logger})(handler)
	handler = CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})(handler)
	handler = Logging(logger)(handler)
	return Recover(logger)(handler)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	authed := RequireAuth()

	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
	mux.HandleFunc("GET /auth/route", h.Route)
	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/forgot-password", h.ForgotPassword)
	mux.HandleFunc("POST /auth/reset-password", h.ResetPassword)
	mux.HandleFunc("POST /auth/verify-email/{email}", h.VerifyEmail)

	mux.Handle("GET /auth/me", authed(http.HandlerFunc(h.Me)))
	mux.Handle("POST /auth/profile", authed(http.HandlerFunc(h.UpdateProfile)))
	mux.Handle("POST /auth/refresh", authed(http.HandlerFunc(h.Refresh)))
	mux.Handle("POST /auth/resend-verification", authed(http.HandlerFunc(h.ResendVerification)))
	mux.Handle("POST /auth/change-password", authed(http.HandlerFunc(h.ChangePassword)))
}

func registerContentRoutes(mux *http.ServeMux, s RouterServices) {
	cfg := contentRouteConfig{Auth: s.Auth, Views: s.Views}

	if s.BlogPosts != nil {
		registerResource(mux, resourceRoutes[model.BlogPost]{
			Base: "/api/blog-posts", H: &ResourceHandlers[model.BlogPost]{Svc: s.BlogPosts}, Perms: domainauth.BlogPermissions,
		}, cfg)
	}
	if s.Careers != nil {
		registerResource(mux, resourceRoutes[model.Career]{
			Base: "/api/careers", H: &ResourceHandlers[model.Career]{Svc: s.Careers}, Perms: domainauth.CareerPermissions,
		}, cfg)
	}
	if s.HeroSections != nil {
		registerResource(mux, resourceRoutes[model.HeroSection]{
			Base: "/api/hero-sections", H: &ResourceHandlers[model.HeroSection]{Svc: s.HeroSections}, Perms: domainauth.HomePagePermissions,
		}, cfg)
	}
	if s.AboutSections != nil {
		registerResource(mux, resourceRoutes[model.AboutSection]{
			Base: "/api/about-sections", H: &ResourceHandlers[model.AboutSection]{Svc: s.AboutSections}, Perms: domainauth.HomePagePermissions,
		}, cfg)
	}
	if s.ServiceSections != nil {
		registerResource(mux, resourceRoutes[model.ServiceSection]{
			Base: "/api/service-sections", H: &ResourceHandlers[model.ServiceSection]{Svc: s.ServiceSections}, Perms: domainauth.HomePagePermissions,
		}, cfg)
		mux.Handle("POST /api/service-sections/reorder", cfg.guard(domainauth.PermHomePageEdit)(reorderHandler(s.ServiceSections)))
	}
	if s.ProductSections != nil {
		registerResource(mux, resourceRoutes[model.ProductSection]{
			Base: "/api/product-sections", H: &ResourceHandlers[model.ProductSection]{Svc: s.ProductSections}, Perms: domainauth.HomePagePermissions,
		}, cfg)
		mux.Handle("POST /api/product-sections/reorder", cfg.guard(domainauth.PermHomePageEdit)(reorderHandler(s.ProductSections)))
	}
	if s.Messages != nil {
		registerMessageRoutes(mux, NewMessageHandlers(s.Messages), cfg)
	}
	if s.Dashboard != nil {
		registerDashboardRoutes(mux, &DashboardHandlers{Svc: s.Dashboard}, cfg)
	}
}

// contentRouteConfig holds what every content route needs besides its handlers.
type contentRouteConfig struct {
	Auth  SessionResolver
	Views ViewCacheConfig
}

func (cfg contentRouteConfig) guard(perms ...string) func(http.Handler) http.Handler {
	return RequirePermission(cfg.Auth, perms...)
}

// resourceRoutes describes the standard routes of one content resource.
type resourceRoutes[T any] struct {
	Base  string
	H     *ResourceHandlers[T]
	Perms domainauth.ResourcePermissions
	// PublicCreate leaves POST {Base} open to anonymous callers.
	PublicCreate bool
}

func registerResource[T any](mux *http.ServeMux, rr resourceRoutes[T], cfg contentRouteConfig) {
	if rr.Base == "" || rr.H == nil {
		panic("registerResource: Base and handlers are required") //nolint:forbidigo // Fail fast during server setup.
	}
	view, create := cfg.guard(rr.Perms.View), cfg.guard(rr.Perms.Create)
	update, del := cfg.guard(rr.Perms.Update), cfg.guard(rr.Perms.Delete)
	if rr.PublicCreate {
		create = func(h http.Handler) http.Handler { return h }
	}

	mux.Handle("GET "+rr.Base, view(CacheView(cfg.Views, rr.H.listView)(http.HandlerFunc(rr.H.List))))
	mux.Handle("GET "+rr.Base+"/{id}", view(CacheView(cfg.Views, rr.H.itemView)(http.HandlerFunc(rr.H.Get))))
	mux.Handle("POST "+rr.Base, create(http.HandlerFunc(rr.H.Create)))
	mux.Handle("PUT "+rr.Base+"/{id}", update(http.HandlerFunc(rr.H.Update)))
	mux.Handle("DELETE "+rr.Base+"/{id}", del(http.HandlerFunc(rr.H.Delete)))
	mux.Handle("DELETE "+rr.Base+"/{id}/force", del(http.HandlerFunc(rr.H.ForceDelete)))
	mux.Handle("POST "+rr.Base+"/{id}/restore", del(http.HandlerFunc(rr.H.Restore)))
}

func registerMessageRoutes(mux *http.ServeMux, h *MessageHandlers, cfg contentRouteConfig) {
	perms := domainauth.ContactPermissions
	registerResource(mux, resourceRoutes[model.Message]{
		Base: "/api/messages", H: &h.ResourceHandlers, Perms: perms, PublicCreate: true,
	}, cfg)

	update := cfg.guard(perms.Update)
	mux.Handle("POST /api/messages/{id}/respond", update(http.HandlerFunc(h.Respond)))
	mux.Handle("PATCH /api/messages/{id}/read", update(http.HandlerFunc(h.MarkAsRead)))
	mux.Handle("PATCH /api/messages/{id}/archive", update(http.HandlerFunc(h.Archive)))
}

func registerDashboardRoutes(mux *http.ServeMux, h *DashboardHandlers, cfg contentRouteConfig) {
	wrap := cfg.guard()
	mux.Handle("GET /api/dashboard", wrap(http.HandlerFunc(h.Data)))
	mux.Handle("GET /api/dashboard/visitors", wrap(http.HandlerFunc(h.Visitors)))
	mux.Handle("GET /api/dashboard/top-blogs", wrap(http.HandlerFunc(h.TopBlogs)))
	mux.Handle("GET /api/dashboard/recent-activity", wrap(http.HandlerFunc(h.RecentActivity)))
	mux.Handle("GET /api/dashboard/overview", wrap(http.HandlerFunc(h.Overview)))
}
