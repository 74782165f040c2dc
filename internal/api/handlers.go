package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"goldrateservice/internal/api/middleware"
	"goldrateservice/internal/metrics"
	"goldrateservice/internal/service"
)

var validate = validator.New()

// LoginAuthenticator checks the admin credentials and hands out the token.
type LoginAuthenticator interface {
	Login(username, password string) (string, error)
}

// LoginRequest represents the request body for admin login
type LoginRequest struct {
	Username string `json:"username" validate:"required" example:"admin"`
	Password string `json:"password" validate:"required" example:"change-me"`
}

// LoginResponse carries the bearer token
type LoginResponse struct {
	Token string `json:"token" example:"my-static-token"`
}

// UpdateRateRequest represents the request body for a rate update.
// Override is honoured only when it is the JSON literal true.
type UpdateRateRequest struct {
	Buy      *decimal.Decimal `json:"buy" validate:"required" swaggertype:"number" example:"2000"`
	Sell     *decimal.Decimal `json:"sell" validate:"required" swaggertype:"number" example:"2050"`
	Override json.RawMessage  `json:"override,omitempty" swaggertype:"boolean" example:"false"`
}

func (r UpdateRateRequest) override() bool {
	return string(bytes.TrimSpace(r.Override)) == "true"
}

// RateResponse represents a published gold rate
type RateResponse struct {
	ID        string      `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	Buy       json.Number `json:"buy" swaggertype:"number" example:"2000"`
	Sell      json.Number `json:"sell" swaggertype:"number" example:"2050"`
	UpdatedAt string      `json:"updated_at" example:"2025-12-01T10:15:30.000Z"`
}

// VersionResponse reports the running API version
type VersionResponse struct {
	Version string `json:"version" example:"1.0.1"`
}

// HandleLogin godoc
// @Summary Admin login
// @Description Exchanges the admin username and password for the static bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Admin credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} ErrorResponse "Malformed JSON"
// @Failure 401 {object} MessageResponse "Invalid credentials"
// @Failure 429 {object} ErrorResponse "Too many login attempts"
// @Router /login [post]
func HandleLogin(authn LoginAuthenticator, m *metrics.Metrics, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON"})
			return
		}

		var token string
		err := validate.Struct(req)
		if err == nil {
			token, err = authn.Login(req.Username, req.Password)
		}
		if err != nil {
			m.ObserveLogin(false)
			logger.Warnw("Login rejected", "request_id", middleware.RequestIDFromContext(r.Context()))
			writeJSON(w, http.StatusUnauthorized, MessageResponse{Message: "Invalid credentials"})
			return
		}

		m.ObserveLogin(true)
		logger.Infow("Login successful", "request_id", middleware.RequestIDFromContext(r.Context()), "username", req.Username)
		writeJSON(w, http.StatusOK, LoginResponse{Token: token})
	}
}

// HandleGetGoldRate godoc
// @Summary Get the latest gold rate
// @Description Returns the most recently published buy/sell rate, or an empty object when none has been published.
// @Tags rates
// @Produce json
// @Success 200 {object} RateResponse "Latest rate, or {} when the store is empty"
// @Failure 500 {object} ErrorResponse "Store error or timeout"
// @Router /gold-rate [get]
func HandleGetGoldRate(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rate, err := svc.GetLatest(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		if rate == nil {
			writeJSON(w, http.StatusOK, struct{}{})
			return
		}

		writeJSON(w, http.StatusOK, RateResponse{
			ID:        rate.ID,
			Buy:       jsonDecimal(rate.Buy),
			Sell:      jsonDecimal(rate.Sell),
			UpdatedAt: formatTime(rate.UpdatedAt),
		})
	}
}

// HandleUpdateRate godoc
// @Summary Publish a new gold rate
// @Description Inserts a new rate. If a rate was already published today (UTC) and override is not true, nothing is written and an alert is returned instead.
// @Tags rates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateRateRequest true "Buy and sell prices"
// @Success 200 {object} MessageResponse "Rate inserted"
// @Success 200 {object} AlertResponse "Same-day rate exists; resend with override=true to confirm"
// @Failure 400 {object} ErrorResponse "Invalid body or non-positive prices"
// @Failure 401 {object} MessageResponse "No token provided"
// @Failure 403 {object} MessageResponse "Invalid token"
// @Failure 500 {object} ErrorResponse "Store error or timeout"
// @Router /update-rate [post]
func HandleUpdateRate(svc service.RateServiceInterface, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateRateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON"})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "buy and sell are required"})
			return
		}

		override := req.override()
		logger.Infow("Received rate update",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"username", middleware.IdentityFromContext(r.Context()).Username,
			"buy", req.Buy.String(),
			"sell", req.Sell.String(),
			"override", override,
		)

		res, err := svc.Update(r.Context(), *req.Buy, *req.Sell, override)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidRate):
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			default:
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			}
			return
		}

		if res.Outcome == service.OutcomeAlerted {
			writeJSON(w, http.StatusOK, AlertResponse{Alert: res.Message})
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{Message: res.Message})
	}
}

// HandleVersion godoc
// @Summary API version
// @Description Returns the running API version so clients can detect upgrades.
// @Tags meta
// @Produce json
// @Success 200 {object} VersionResponse "Version"
// @Router /version [get]
func HandleVersion(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, VersionResponse{Version: version})
	}
}
