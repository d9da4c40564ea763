package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/shop-service/internal/config"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

const dashboardCacheKey = "report:dashboard"

// ReportService serves read-only aggregates for the admin surface.
type ReportService struct {
	reports  repository.ReportRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
	products repository.ProductRepository
	cache    *redis.Client
	logger   *zap.Logger
	cfg      config.ReportConfig
}

// ReportDependencies bundles repositories for the report service.
type ReportDependencies struct {
	ReportRepo  repository.ReportRepository
	OrderRepo   repository.OrderRepository
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	Cache       *redis.Client
}

// NewReportService builds the service.
func NewReportService(cfg config.ReportConfig, deps ReportDependencies, logger *zap.Logger) *ReportService {
	return &ReportService{
		reports:  deps.ReportRepo,
		orders:   deps.OrderRepo,
		users:    deps.UserRepo,
		products: deps.ProductRepo,
		cache:    deps.Cache,
		logger:   logger,
		cfg:      cfg,
	}
}

// DashboardStats gathers the four headline aggregates concurrently and
// caches the combined result for a short interval.
func (s *ReportService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	if cached := s.cachedDashboard(ctx); cached != nil {
		return cached, nil
	}

	var stats domain.DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.reports.TotalSales(gctx)
		if err != nil {
			return err
		}
		stats.TotalSales = total
		return nil
	})
	g.Go(func() error {
		count, err := s.orders.Count(gctx)
		if err != nil {
			return err
		}
		stats.TotalOrders = count
		return nil
	})
	g.Go(func() error {
		count, err := s.users.Count(gctx)
		if err != nil {
			return err
		}
		stats.TotalUsers = count
		return nil
	})
	g.Go(func() error {
		count, err := s.products.CountLowStock(gctx, s.cfg.LowStockThreshold)
		if err != nil {
			return err
		}
		stats.LowStockProducts = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.storeDashboard(ctx, &stats)
	return &stats, nil
}

func (s *ReportService) cachedDashboard(ctx context.Context) *domain.DashboardStats {
	if s.cache == nil || s.cfg.DashboardCacheTTL() <= 0 {
		return nil
	}
	raw, err := s.cache.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		return nil
	}
	var stats domain.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *ReportService) storeDashboard(ctx context.Context, stats *domain.DashboardStats) {
	if s.cache == nil || s.cfg.DashboardCacheTTL() <= 0 {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, raw, s.cfg.DashboardCacheTTL()).Err(); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
}

// SalesReport returns per-day order counts and revenue for the period.
func (s *ReportService) SalesReport(ctx context.Context, from, to time.Time) ([]domain.SalesReportRow, error) {
	if to.Before(from) {
		return nil, apperrors.NewValidationError("end date precedes start date", map[string]any{
			"start_date": from.Format(time.DateOnly),
			"end_date":   to.Format(time.DateOnly),
		})
	}
	rows, err := s.reports.SalesByDay(ctx, from, to)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// TopProducts returns the ten best-selling products by units.
func (s *ReportService) TopProducts(ctx context.Context) ([]domain.TopProductRow, error) {
	rows, err := s.reports.TopProducts(ctx, 10)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// CustomerAnalytics returns per-customer order totals, highest spend first.
func (s *ReportService) CustomerAnalytics(ctx context.Context) ([]domain.CustomerAnalyticsRow, error) {
	rows, err := s.reports.CustomerAnalytics(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}
