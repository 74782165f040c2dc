// Package api implements HTTP handlers for the gold rate service.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// isoMillis renders timestamps the way JavaScript's toISOString does.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// ErrorResponse represents a server or input error.
type ErrorResponse struct {
	Error string `json:"error" example:"context deadline exceeded"`
}

// MessageResponse carries a caller-visible message.
type MessageResponse struct {
	Message string `json:"message" example:"Rate updated successfully"`
}

// AlertResponse signals a same-day conflict the caller must confirm.
type AlertResponse struct {
	Alert string `json:"alert" example:"Rate is already updated for today. Choose 'Cancel' or 'Continue'."`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// jsonDecimal renders a decimal as a bare JSON number without float rounding.
func jsonDecimal(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func formatTime(t time.Time) string {
	return t.UTC().Format(isoMillis)
}
