package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shoplite/shoplite/internal/dto"
	"github.com/shoplite/shoplite/internal/repository"
)

// AnalyticsService exposes the fixed reporting aggregates. Every call hits
// the store; results are never cached.
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

func (s *AnalyticsService) DailySales(ctx context.Context) ([]dto.DailySalesResponse, error) {
	sales, err := s.analyticsRepo.DailySales(ctx)
	if err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	resp := make([]dto.DailySalesResponse, 0, len(sales))
	for _, d := range sales {
		resp = append(resp, dto.DailySalesResponse{Date: d.Date, Orders: d.Orders, Revenue: d.Revenue})
	}
	return resp, nil
}

func (s *AnalyticsService) TopProducts(ctx context.Context) ([]dto.TopProductResponse, error) {
	top, err := s.analyticsRepo.TopProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	resp := make([]dto.TopProductResponse, 0, len(top))
	for _, t := range top {
		resp = append(resp, dto.TopProductResponse{
			ProductID:   t.ProductID,
			ProductName: t.ProductName,
			TotalSold:   t.TotalSold,
			Revenue:     t.Revenue,
		})
	}
	return resp, nil
}

func (s *AnalyticsService) CategorySales(ctx context.Context) ([]dto.CategorySalesResponse, error) {
	sales, err := s.analyticsRepo.CategorySales(ctx)
	if err != nil {
		return nil, fmt.Errorf("category sales: %w", err)
	}
	resp := make([]dto.CategorySalesResponse, 0, len(sales))
	for _, c := range sales {
		resp = append(resp, dto.CategorySalesResponse{CategoryName: c.CategoryName, Orders: c.Orders, Revenue: c.Revenue})
	}
	return resp, nil
}

// Summary derives the dashboard header metrics from the trailing-30-day
// daily sales.
func (s *AnalyticsService) Summary(ctx context.Context) (*dto.SalesSummaryResponse, error) {
	sales, err := s.analyticsRepo.DailySales(ctx)
	if err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}

	summary := &dto.SalesSummaryResponse{
		TotalRevenue:    decimal.Zero,
		AvgOrderValue:   decimal.Zero,
		AvgDailyRevenue: decimal.Zero,
	}
	for _, d := range sales {
		summary.TotalRevenue = summary.TotalRevenue.Add(d.Revenue)
		summary.TotalOrders += d.Orders
	}
	if summary.TotalOrders > 0 {
		summary.AvgOrderValue = summary.TotalRevenue.DivRound(decimal.NewFromInt(int64(summary.TotalOrders)), 2)
	}
	if len(sales) > 0 {
		summary.AvgDailyRevenue = summary.TotalRevenue.DivRound(decimal.NewFromInt(int64(len(sales))), 2)
	}
	return summary, nil
}
