// Package serverless exposes the service as a single http.HandlerFunc for
// hosts that own the listener.
package serverless

import (
	"encoding/json"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"goldrateservice/internal/api"
	_ "goldrateservice/internal/api/docs"
	"goldrateservice/internal/app"
	"goldrateservice/internal/config"
)

const initFailureMessage = "service unavailable"

var (
	initOnce sync.Once
	handler  http.Handler
	initErr  error

	// buildHandler is replaced in tests.
	buildHandler = newHandler
)

func newHandler() (http.Handler, error) {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	sugar := zapLogger.Sugar()

	cfg, err := config.LoadConfig()
	if err != nil {
		sugar.Errorw("Failed to load config", "error", err)
		return nil, err
	}

	a, err := app.NewApp(cfg, sugar)
	if err != nil {
		sugar.Errorw("Failed to initialize app", "error", err)
		return nil, err
	}
	return a.Handler(), nil
}

// Handler serves one request. The app is built on first use and reused for
// the lifetime of the instance. A failed build is not retried; every request
// then gets a 500 without the failure detail.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(func() {
		handler, initErr = buildHandler()
	})
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: initFailureMessage})
		return
	}
	handler.ServeHTTP(w, r)
}
