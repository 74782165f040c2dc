package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"goldrateservice/internal/metrics"
	"goldrateservice/internal/repository"
	"goldrateservice/internal/service"
)

func TestHandleLogin(t *testing.T) {
	authn := &mockAuthenticator{username: "admin", password: "pw", token: "secret123"}
	handler := HandleLogin(authn, metrics.New(), zap.NewNop().Sugar())

	t.Run("valid credentials return the token", func(t *testing.T) {
		body := bytes.NewBufferString(`{"username":"admin","password":"pw"}`)
		req := httptest.NewRequest(http.MethodPost, "/login", body)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var resp LoginResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Token != "secret123" {
			t.Errorf("Expected token 'secret123', got %q", resp.Token)
		}
	})

	rejected := []struct {
		name string
		body string
	}{
		{"wrong password", `{"username":"admin","password":"nope"}`},
		{"wrong username", `{"username":"root","password":"pw"}`},
		{"missing password", `{"username":"admin"}`},
		{"empty body object", `{}`},
	}
	for _, tc := range rejected {
		t.Run(tc.name+" returns 401", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tc.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("Expected status 401, got %d", w.Code)
			}
			var resp MessageResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Message != "Invalid credentials" {
				t.Errorf("Expected 'Invalid credentials', got %q", resp.Message)
			}
		})
	}

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{`))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestHandleGetGoldRate(t *testing.T) {
	t.Run("empty store returns empty object", func(t *testing.T) {
		svc := &mockRateService{
			getLatestFunc: func(ctx context.Context) (*repository.Rate, error) {
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/gold-rate", nil)
		w := httptest.NewRecorder()
		HandleGetGoldRate(svc).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if got := strings.TrimSpace(w.Body.String()); got != "{}" {
			t.Errorf("Expected body {}, got %s", got)
		}
	})

	t.Run("latest rate is returned", func(t *testing.T) {
		at := time.Date(2025, 12, 1, 10, 15, 30, 123000000, time.UTC)
		svc := &mockRateService{
			getLatestFunc: func(ctx context.Context) (*repository.Rate, error) {
				return &repository.Rate{
					ID:        "rate-1",
					Buy:       decimal.RequireFromString("2100"),
					Sell:      decimal.RequireFromString("2150.5"),
					UpdatedAt: at,
				}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/gold-rate", nil)
		w := httptest.NewRecorder()
		HandleGetGoldRate(svc).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var resp map[string]any
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp["buy"] != 2100.0 {
			t.Errorf("Expected buy 2100 as a JSON number, got %v", resp["buy"])
		}
		if resp["sell"] != 2150.5 {
			t.Errorf("Expected sell 2150.5 as a JSON number, got %v", resp["sell"])
		}
		if resp["updated_at"] != "2025-12-01T10:15:30.123Z" {
			t.Errorf("Unexpected updated_at %v", resp["updated_at"])
		}
		if resp["id"] != "rate-1" {
			t.Errorf("Expected id rate-1, got %v", resp["id"])
		}
	})

	t.Run("store error returns 500 with raw text", func(t *testing.T) {
		svc := &mockRateService{
			getLatestFunc: func(ctx context.Context) (*repository.Rate, error) {
				return nil, &service.StoreError{Op: "get latest", Err: errors.New("connection refused")}
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/gold-rate", nil)
		w := httptest.NewRecorder()
		HandleGetGoldRate(svc).ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", w.Code)
		}
		var resp ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Error != "connection refused" {
			t.Errorf("Expected raw error text, got %q", resp.Error)
		}
	})
}

func TestHandleUpdateRate(t *testing.T) {
	logger := zap.NewNop().Sugar()

	t.Run("new rate returns success message", func(t *testing.T) {
		var gotBuy, gotSell decimal.Decimal
		var gotOverride bool
		svc := &mockRateService{
			updateFunc: func(ctx context.Context, buy, sell decimal.Decimal, override bool) (*service.UpdateResult, error) {
				gotBuy, gotSell, gotOverride = buy, sell, override
				return &service.UpdateResult{Outcome: service.OutcomeUpdated, Message: service.MessageUpdated}, nil
			},
		}

		body := bytes.NewBufferString(`{"buy":2000,"sell":2050}`)
		req := httptest.NewRequest(http.MethodPost, "/update-rate", body)
		w := httptest.NewRecorder()
		HandleUpdateRate(svc, logger).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var resp MessageResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Message != "Rate updated successfully" {
			t.Errorf("Unexpected message %q", resp.Message)
		}
		if !gotBuy.Equal(decimal.NewFromInt(2000)) || !gotSell.Equal(decimal.NewFromInt(2050)) {
			t.Errorf("Unexpected prices passed to service: %s/%s", gotBuy, gotSell)
		}
		if gotOverride {
			t.Error("Expected override=false when omitted")
		}
	})

	t.Run("same-day rate returns alert", func(t *testing.T) {
		svc := &mockRateService{
			updateFunc: func(ctx context.Context, buy, sell decimal.Decimal, override bool) (*service.UpdateResult, error) {
				return &service.UpdateResult{Outcome: service.OutcomeAlerted, Message: service.MessageAlert}, nil
			},
		}

		body := bytes.NewBufferString(`{"buy":2100,"sell":2150}`)
		req := httptest.NewRequest(http.MethodPost, "/update-rate", body)
		w := httptest.NewRecorder()
		HandleUpdateRate(svc, logger).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var resp map[string]string
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp["alert"] != "Rate is already updated for today. Choose 'Cancel' or 'Continue'." {
			t.Errorf("Unexpected alert %q", resp["alert"])
		}
		if _, ok := resp["message"]; ok {
			t.Error("Alert response must not carry a message field")
		}
	})

	overrides := []struct {
		name string
		raw  string
		want bool
	}{
		{"literal true", `true`, true},
		{"literal false", `false`, false},
		{"string true", `"true"`, false},
		{"number one", `1`, false},
	}
	for _, tc := range overrides {
		t.Run("override "+tc.name, func(t *testing.T) {
			var got bool
			svc := &mockRateService{
				updateFunc: func(ctx context.Context, buy, sell decimal.Decimal, override bool) (*service.UpdateResult, error) {
					got = override
					return &service.UpdateResult{Outcome: service.OutcomeUpdated, Message: service.MessageUpdated}, nil
				},
			}

			body := bytes.NewBufferString(`{"buy":1,"sell":2,"override":` + tc.raw + `}`)
			req := httptest.NewRequest(http.MethodPost, "/update-rate", body)
			w := httptest.NewRecorder()
			HandleUpdateRate(svc, logger).ServeHTTP(w, req)

			if got != tc.want {
				t.Errorf("Expected override=%v for %s, got %v", tc.want, tc.raw, got)
			}
		})
	}

	badRequests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"buy":`},
		{"missing sell", `{"buy":2000}`},
		{"string price", `{"buy":"abc","sell":2050}`},
	}
	for _, tc := range badRequests {
		t.Run(tc.name+" returns 400", func(t *testing.T) {
			svc := &mockRateService{
				updateFunc: func(ctx context.Context, buy, sell decimal.Decimal, override bool) (*service.UpdateResult, error) {
					t.Fatal("service must not be called")
					return nil, nil
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/update-rate", bytes.NewBufferString(tc.body))
			w := httptest.NewRecorder()
			HandleUpdateRate(svc, logger).ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", w.Code)
			}
		})
	}

	t.Run("non-positive price returns 400", func(t *testing.T) {
		svc := &mockRateService{
			updateFunc: func(ctx context.Context, buy, sell decimal.Decimal, override bool) (*service.UpdateResult, error) {
				return nil, service.ErrInvalidRate
			},
		}

		body := bytes.NewBufferString(`{"buy":-1,"sell":2050}`)
		req := httptest.NewRequest(http.MethodPost, "/update-rate", body)
		w := httptest.NewRecorder()
		HandleUpdateRate(svc, logger).ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("store error returns 500 with raw text", func(t *testing.T) {
		svc := &mockRateService{
			updateFunc: func(ctx context.Context, buy, sell decimal.Decimal, override bool) (*service.UpdateResult, error) {
				return nil, &service.StoreError{Op: "insert", Err: context.DeadlineExceeded}
			},
		}

		body := bytes.NewBufferString(`{"buy":2000,"sell":2050}`)
		req := httptest.NewRequest(http.MethodPost, "/update-rate", body)
		w := httptest.NewRecorder()
		HandleUpdateRate(svc, logger).ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("Expected status 500, got %d", w.Code)
		}
		var resp ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Error != context.DeadlineExceeded.Error() {
			t.Errorf("Expected raw error text, got %q", resp.Error)
		}
	})
}

func TestHandleVersion(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	w := httptest.NewRecorder()
	HandleVersion("1.0.1").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	var resp VersionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Version != "1.0.1" {
		t.Errorf("Expected version 1.0.1, got %q", resp.Version)
	}
}

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Errorf("Expected 200 OK, got %d %q", w.Code, w.Body.String())
	}
}

func TestHandleReadyz(t *testing.T) {
	t.Run("ready without cache", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		w := httptest.NewRecorder()
		HandleReadyz(&mockPinger{}, nil).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})

	t.Run("database down returns 503", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		w := httptest.NewRecorder()
		HandleReadyz(&mockPinger{err: errors.New("down")}, nil).ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", w.Code)
		}
	})
}
