// Package service implements the core business logic for gold rate publishing.
package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"goldrateservice/internal/config"
	"goldrateservice/internal/metrics"
	"goldrateservice/internal/repository"
)

// Outcome is the result of an Update call.
type Outcome int

// Update outcomes.
const (
	// OutcomeUpdated means a new record was inserted.
	OutcomeUpdated Outcome = iota + 1
	// OutcomeAlerted means a record already exists for the current UTC day
	// and the caller must confirm with override to insert another.
	OutcomeAlerted
)

// Caller-visible messages for each outcome.
const (
	MessageUpdated = "Rate updated successfully"
	MessageAlert   = "Rate is already updated for today. Choose 'Cancel' or 'Continue'."
)

// UpdateResult describes what Update did. Rate is set only for OutcomeUpdated.
type UpdateResult struct {
	Outcome Outcome
	Message string
	Rate    *repository.Rate
}

// RateServiceInterface defines the operations available for gold rate management.
type RateServiceInterface interface {
	GetLatest(ctx context.Context) (*repository.Rate, error)
	Update(ctx context.Context, buy, sell decimal.Decimal, override bool) (*UpdateResult, error)
}

// RateService implements RateServiceInterface on top of a RateRepository with
// an optional Redis cache for the latest record.
type RateService struct {
	repo          repository.RateRepository
	cache         *redis.Client
	log           *zap.SugaredLogger
	metrics       *metrics.Metrics
	latestRateTTL time.Duration
	queryTimeout  time.Duration
	now           func() time.Time
}

// Option customises a RateService.
type Option func(*RateService)

// WithClock overrides the time source used to stamp records and compute the current day.
func WithClock(now func() time.Time) Option {
	return func(s *RateService) { s.now = now }
}

// WithMetrics records update outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *RateService) { s.metrics = m }
}

// WithQueryTimeout overrides the per-call store timeout from StoreConfig.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *RateService) { s.queryTimeout = d }
}

// NewRateService creates a new RateService. cache may be nil.
func NewRateService(repo repository.RateRepository, cache *redis.Client, logger *zap.SugaredLogger, cacheCfg config.CacheConfig, storeCfg config.StoreConfig, opts ...Option) *RateService {
	s := &RateService{
		repo:          repo,
		cache:         cache,
		log:           logger,
		latestRateTTL: time.Duration(cacheCfg.LatestRateTTLSec) * time.Second,
		queryTimeout:  time.Duration(storeCfg.QueryTimeoutSec) * time.Second,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetLatest returns the most recently published rate, or (nil, nil) when none exists.
func (s *RateService) GetLatest(ctx context.Context) (*repository.Rate, error) {
	if r, ok := s.cacheGetLatest(ctx); ok {
		return r, nil
	}

	qctx, cancel := s.storeContext(ctx)
	defer cancel()

	r, err := s.repo.GetLatest(qctx)
	if err != nil {
		s.log.Errorw("DB error fetching latest rate", "error", err)
		return nil, newStoreError("get latest", err)
	}
	if r == nil {
		return nil, nil
	}

	_ = s.cacheSetLatest(ctx, r)
	return r, nil
}

// Update inserts a new rate unless one was already published today (UTC) and
// override is false. Earlier same-day records are kept.
//
// The existence check and the insert are separate statements, so concurrent
// overrides may both insert.
func (s *RateService) Update(ctx context.Context, buy, sell decimal.Decimal, override bool) (*UpdateResult, error) {
	if !buy.IsPositive() || !sell.IsPositive() {
		s.metrics.ObserveRateUpdate(metrics.OutcomeInvalid)
		return nil, ErrInvalidRate
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	from, to := DayBounds(now)

	exists, err := s.existsBetween(ctx, from, to)
	if err != nil {
		s.log.Errorw("DB error checking same-day rate", "error", err)
		s.metrics.ObserveRateUpdate(metrics.OutcomeError)
		return nil, newStoreError("same-day check", err)
	}
	s.log.Infow("Same-day check", "exists", exists, "override", override, "day", from.Format(time.DateOnly))

	if exists && !override {
		s.metrics.ObserveRateUpdate(metrics.OutcomeAlerted)
		return &UpdateResult{Outcome: OutcomeAlerted, Message: MessageAlert}, nil
	}

	rate, err := s.insert(ctx, buy, sell, now)
	if err != nil {
		s.log.Errorw("DB error inserting rate", "error", err)
		s.metrics.ObserveRateUpdate(metrics.OutcomeError)
		return nil, newStoreError("insert", err)
	}

	if err := s.cacheSetLatest(ctx, rate); err != nil {
		s.cacheInvalidateLatest(ctx)
	}
	s.metrics.ObserveRateUpdate(metrics.OutcomeUpdated)
	s.log.Infow("Rate inserted", "id", rate.ID, "buy", rate.Buy.String(), "sell", rate.Sell.String(), "override", override)

	return &UpdateResult{Outcome: OutcomeUpdated, Message: MessageUpdated, Rate: rate}, nil
}

func (s *RateService) existsBetween(ctx context.Context, from, to time.Time) (bool, error) {
	qctx, cancel := s.storeContext(ctx)
	defer cancel()
	return s.repo.ExistsBetween(qctx, from, to)
}

func (s *RateService) insert(ctx context.Context, buy, sell decimal.Decimal, at time.Time) (*repository.Rate, error) {
	qctx, cancel := s.storeContext(ctx)
	defer cancel()
	return s.repo.Insert(qctx, buy, sell, at)
}

// storeContext bounds a single store call.
func (s *RateService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}
