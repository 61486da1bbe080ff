package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Vshn2k5/HEALTHBITE-Kukku/docs"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/api/handler"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/api/middleware"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
)

// Deps are the collaborators of the development API.
type Deps struct {
	Accounts  ports.AccountService
	Replies   ports.ReplyEngine
	JWTSecret string
	// Probes are checked by /health/ready, keyed by dependency name.
	Probes map[string]handler.PingFunc
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Each router has its own Prometheus registry.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "healthbite_devapi",
		Registerer: registry,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Accounts)
	profileHandler := handler.NewProfileHandler(d.Accounts)
	chatbotHandler := handler.NewChatbotHandler(d.Accounts, d.Replies)
	healthHandler := handler.NewHealthHandler(d.Probes)
	auth := middleware.Auth(d.JWTSecret)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	health := e.Group("/api/health", auth)
	health.GET("/check", profileHandler.Check)
	health.POST("/profile", profileHandler.Complete, middleware.RequireRole(domain.RoleUser))

	chat := e.Group("/api/chatbot", auth)
	chat.POST("/query", chatbotHandler.Query)

	// --- Probes and tooling (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: registry}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
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
