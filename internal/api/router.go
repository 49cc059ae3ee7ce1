package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/healthdesk/assessment-api/docs"
	"github.com/healthdesk/assessment-api/internal/api/handler"
	"github.com/healthdesk/assessment-api/internal/api/middleware"
	"github.com/healthdesk/assessment-api/internal/core/domain"
	"github.com/healthdesk/assessment-api/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers and middleware.
// Their lifecycle belongs to the process bootstrap.
type Deps struct {
	Tokens      ports.TokenVerifier
	Users       ports.UserFinder
	AuthService ports.AuthService
	UserService ports.UserService
	Checks      map[string]handler.DependencyCheck

	Log         zerolog.Logger
	Production  bool
	CORSOrigins []string
	BodyLimit   string

	// Registry receives HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Production)

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "health_api",
		Registerer: registerer,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	if d.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(d.BodyLimit))
	}

	// --- Authorization chain ---
	authn := middleware.NewAuthenticator(d.Tokens, d.Users, d.Log)
	protected := []echo.MiddlewareFunc{authn.Required(), middleware.ActiveUser()}
	consent := middleware.Consent(d.Users, d.Log)

	authHandler := handler.NewAuthHandler(d.AuthService, d.UserService)
	userHandler := handler.NewUserHandler(d.UserService)
	consentHandler := handler.NewConsentHandler()

	v1 := e.Group("/v1")

	// --- Auth routes ---
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/auth/me", authHandler.Me, protected...)
	v1.GET("/auth/session", authHandler.Session, authn.Optional())

	// --- Account routes ---
	v1.PUT("/users/me/consent", userHandler.UpdateConsent, protected...)
	admin := v1.Group("/admin", append(protected, middleware.RBAC(domain.RoleAdmin))...)
	admin.PATCH("/users/:id/status", userHandler.SetStatus)

	// --- Consent-gated routes (anonymous or authenticated) ---
	v1.POST("/consent/check", consentHandler.Check, authn.Optional(), consent)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
