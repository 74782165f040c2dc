package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"goldrateservice/internal/repository"
)

// memRateRepo is an append-only in-memory RateRepository.
type memRateRepo struct {
	mu    sync.Mutex
	rates []repository.Rate
	err   error

	getLatestCalls int
	existsCalls    int
	insertCalls    int
}

func (m *memRateRepo) Insert(_ context.Context, buy, sell decimal.Decimal, at time.Time) (*repository.Rate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertCalls++
	if m.err != nil {
		return nil, m.err
	}
	r := repository.Rate{ID: uuid.New().String(), Buy: buy, Sell: sell, UpdatedAt: at.UTC()}
	m.rates = append(m.rates, r)
	return &r, nil
}

func (m *memRateRepo) GetLatest(_ context.Context) (*repository.Rate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getLatestCalls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.rates) == 0 {
		return nil, nil
	}
	sorted := append([]repository.Rate(nil), m.rates...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt) })
	r := sorted[0]
	return &r, nil
}

func (m *memRateRepo) ExistsBetween(_ context.Context, from, to time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.existsCalls++
	if m.err != nil {
		return false, m.err
	}
	for _, r := range m.rates {
		if !r.UpdatedAt.Before(from) && !r.UpdatedAt.After(to) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRateRepo) countBetween(from, to time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.rates {
		if !r.UpdatedAt.Before(from) && !r.UpdatedAt.After(to) {
			n++
		}
	}
	return n
}

// blockingRateRepo never answers before the caller's deadline.
type blockingRateRepo struct{}

func (blockingRateRepo) Insert(ctx context.Context, _, _ decimal.Decimal, _ time.Time) (*repository.Rate, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingRateRepo) GetLatest(ctx context.Context) (*repository.Rate, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingRateRepo) ExistsBetween(ctx context.Context, _, _ time.Time) (bool, error) {
	<-ctx.Done()
	return false, ctx.Err()
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// hookRateRepo runs afterGetLatest once, after the wrapped store answered a
// GetLatest and before the caller sees the result.
type hookRateRepo struct {
	*memRateRepo
	afterGetLatest func()
}

func (h *hookRateRepo) GetLatest(ctx context.Context) (*repository.Rate, error) {
	r, err := h.memRateRepo.GetLatest(ctx)
	if fn := h.afterGetLatest; fn != nil {
		h.afterGetLatest = nil
		fn()
	}
	return r, err
}
