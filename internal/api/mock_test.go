package api

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"goldrateservice/internal/repository"
	"goldrateservice/internal/service"
)

// mockRateService implements service.RateServiceInterface for testing.
type mockRateService struct {
	getLatestFunc func(ctx context.Context) (*repository.Rate, error)
	updateFunc    func(ctx context.Context, buy, sell decimal.Decimal, override bool) (*service.UpdateResult, error)
}

func (m *mockRateService) GetLatest(ctx context.Context) (*repository.Rate, error) {
	return m.getLatestFunc(ctx)
}

func (m *mockRateService) Update(ctx context.Context, buy, sell decimal.Decimal, override bool) (*service.UpdateResult, error) {
	return m.updateFunc(ctx, buy, sell, override)
}

// mockAuthenticator accepts exactly one username/password pair.
type mockAuthenticator struct {
	username, password, token string
}

func (m *mockAuthenticator) Login(username, password string) (string, error) {
	if username != m.username || password != m.password {
		return "", errors.New("invalid credentials")
	}
	return m.token, nil
}

// mockPinger returns err from every ping.
type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(context.Context) error {
	return m.err
}
