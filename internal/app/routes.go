package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"goldrateservice/internal/api"
	"goldrateservice/internal/api/middleware"
	"goldrateservice/internal/auth"
	"goldrateservice/internal/service"
)

func (app *App) initHTTP(rateService service.RateServiceInterface, authn *auth.Authenticator) error {
	loginRate, err := limiter.NewRateFromFormatted(app.cfg.Server.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("parse server.login_rate_limit %q: %w", app.cfg.Server.LoginRateLimit, err)
	}
	// Behind a serverless host RemoteAddr is the platform proxy, so the client
	// IP has to come from X-Forwarded-For / X-Real-IP. A self-bound listener
	// does not trust those headers.
	loginLimiter := limiter.New(memory.NewStore(), loginRate,
		limiter.WithTrustForwardHeader(!app.cfg.Server.SelfListen()))

	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RequestLoggingMiddleware(app.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.MetricsMiddleware(app.metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.cfg.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.With(middleware.RateLimit(loginLimiter, app.logger)).
		Post("/login", api.HandleLogin(authn, app.metrics, app.logger))
	r.Get("/gold-rate", api.HandleGetGoldRate(rateService))
	r.With(middleware.BearerAuth(authn, app.logger)).
		Post("/update-rate", api.HandleUpdateRate(rateService, app.logger))
	r.Get("/version", api.HandleVersion(Version))
	r.Get("/healthz", api.HandleHealthz())
	r.Get("/readyz", api.HandleReadyz(app.db, app.rdbCache))
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	if app.cfg.Server.ServeSwagger {
		r.Get("/swagger/*", api.SwaggerUIHandler())
		r.Get("/openapi.json", api.OpenAPISpecHandler())
	}

	app.handler = r
	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return nil
}
