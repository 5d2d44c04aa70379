package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/simbrella/cms-console/config"
	"github.com/simbrella/cms-console/internal/apiclient"
	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
	"github.com/simbrella/cms-console/internal/observability/statsd"
	"github.com/simbrella/cms-console/internal/ports"
	"github.com/simbrella/cms-console/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth            *service.AuthService
	BlogPosts       *service.BlogPostService
	Careers         *service.CareerService
	Messages        *service.MessageService
	HeroSections    *service.HeroSectionService
	AboutSections   *service.AboutSectionService
	ServiceSections *service.ServiceSectionService
	ProductSections *service.ProductSectionService
	Dashboard       *service.DashboardService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config   *config.AppConfig
	Stores   Stores
	Sessions ports.SessionSupplier // Required: whose token outbound calls carry
	Metrics  statsd.Sink
	// HTTPClient overrides the API client's transport; tests point it at a fake API.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewActionDeps builds the API client and the call pipeline dependencies shared by
// every action service.
func NewActionDeps(deps *ServiceDeps) (service.ActionDeps, error) {
	if deps == nil || deps.Config == nil {
		return service.ActionDeps{}, errors.New("service deps require an AppConfig")
	}
	client, err := apiclient.New(apiclient.Options{
		BaseURL:    deps.Config.API.BaseURL,
		Timeout:    deps.Config.API.Timeout,
		UserAgent:  deps.Config.API.UserAgent,
		HTTPClient: deps.HTTPClient,
		Sessions:   deps.Sessions,
		Metrics:    deps.Metrics,
		Logger:     deps.Logger,
	})
	if err != nil {
		return service.ActionDeps{}, fmt.Errorf("create api client: %w", err)
	}

	actions := service.ActionDeps{
		API:       client,
		Telemetry: service.Telemetry{Logger: deps.Logger, Metrics: deps.Metrics},
	}
	if deps.Stores.Views != nil {
		actions.Views = deps.Stores.Views
	}
	return actions, nil
}

// NewServices wires the action services and the auth service.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	actions, err := NewActionDeps(deps)
	if err != nil {
		return ServiceContainer{}, err
	}
	if deps.Stores.Sessions == nil {
		return ServiceContainer{}, errors.New("service deps require a session store")
	}

	authCfg := deps.Config.Auth
	routes := domainauth.DefaultRouteAccess()
	routes.LoginPath = authCfg.LoginPath
	routes.HomePath = authCfg.HomePath

	return ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Actions:  actions,
			Sessions: deps.Stores.Sessions,
			Settings: service.AuthSettings{
				SuperRole:   authCfg.SuperRole,
				SessionTTL:  authCfg.SessionTTL,
				RememberTTL: authCfg.RememberTTL,
				Routes:      routes,
			},
		}),
		BlogPosts:       service.NewBlogPostService(actions),
		Careers:         service.NewCareerService(actions),
		Messages:        service.NewMessageService(actions),
		HeroSections:    service.NewHeroSectionService(actions),
		AboutSections:   service.NewAboutSectionService(actions),
		ServiceSections: service.NewServiceSectionService(actions),
		ProductSections: service.NewProductSectionService(actions),
		Dashboard:       service.NewDashboardService(actions),
	}, nil
}

// BuildMetricsSink dials the StatsD agent when metrics are enabled. It returns nil otherwise,
// or when the agent cannot be reached; metrics are never fatal.
//
//nolint:ireturn // a nil Sink disables emission everywhere it is passed.
func BuildMetricsSink(cfg config.ObservabilityMetricsConfig, logger *slog.Logger) statsd.Sink {
	if !cfg.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		if logger != nil {
			logger.Error("failed to initialise statsd client", "error", err)
		}
		return nil
	}
	return client
}
