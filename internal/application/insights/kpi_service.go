package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nexa-erp/backend/internal/domain/insights"
)

// KPIServiceConfig tunes the cache TTL and the aggregation windows
type KPIServiceConfig struct {
	CacheTTL        time.Duration
	ShortWindowDays int
	LongWindowDays  int
}

// KPIService serves the tenant KPI snapshot, computing it from finance
// aggregates on cache miss and holding it until the TTL elapses or a
// business event invalidates it.
type KPIService struct {
	aggregates insights.FinanceAggregates
	cache      insights.SnapshotCache
	config     KPIServiceConfig
	logger     *zap.Logger
	now        func() time.Time
}

// NewKPIService creates a new KPI service
func NewKPIService(aggregates insights.FinanceAggregates, cache insights.SnapshotCache, config KPIServiceConfig, logger *zap.Logger) *KPIService {
	return &KPIService{
		aggregates: aggregates,
		cache:      cache,
		config:     config,
		logger:     logger,
		now:        time.Now,
	}
}

// Get returns the tenant's KPI snapshot, cached or freshly computed
func (s *KPIService) Get(ctx context.Context, tenantID uuid.UUID) (*insights.KPISnapshot, error) {
	cached, err := s.cache.Get(ctx, tenantID)
	if err != nil {
		// A broken cache degrades to recomputation
		s.logger.Warn("kpi cache read failed", zap.Error(err), zap.String("tenant_id", tenantID.String()))
	}
	if cached != nil {
		return cached, nil
	}

	snapshot, err := s.compute(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, tenantID, snapshot, s.config.CacheTTL); err != nil {
		s.logger.Warn("kpi cache write failed", zap.Error(err), zap.String("tenant_id", tenantID.String()))
	}
	return snapshot, nil
}

// Invalidate drops the cached snapshot so the next read recomputes
func (s *KPIService) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	return s.cache.Invalidate(ctx, tenantID)
}

func (s *KPIService) compute(ctx context.Context, tenantID uuid.UUID) (*insights.KPISnapshot, error) {
	now := s.now()
	shortStart := now.AddDate(0, 0, -s.config.ShortWindowDays)
	longStart := now.AddDate(0, 0, -s.config.LongWindowDays)

	var ind insights.Indicators
	var err error

	if ind.Sales30d, err = s.aggregates.SumSales(ctx, tenantID, shortStart, now); err != nil {
		return nil, fmt.Errorf("failed to sum recent sales: %w", err)
	}
	if ind.Sales60d, err = s.aggregates.SumSales(ctx, tenantID, longStart, now); err != nil {
		return nil, fmt.Errorf("failed to sum trailing sales: %w", err)
	}
	if ind.Purchases30d, err = s.aggregates.SumPurchases(ctx, tenantID, shortStart, now); err != nil {
		return nil, fmt.Errorf("failed to sum purchases: %w", err)
	}
	if ind.OutstandingReceivables, err = s.aggregates.SumOutstandingReceivables(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("failed to sum receivables: %w", err)
	}
	if ind.OutstandingPayables, err = s.aggregates.SumOutstandingPayables(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("failed to sum payables: %w", err)
	}

	snapshot := insights.ComputeSnapshot(ind, now)
	s.logger.Debug("kpi snapshot computed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("liquidity", string(snapshot.Liquidity)),
		zap.String("profitability", string(snapshot.Profitability)),
		zap.String("growth", string(snapshot.Growth)),
	)
	return snapshot, nil
}
