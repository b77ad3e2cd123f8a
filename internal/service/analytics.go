package service

import (
	"context"

	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/storage"
)

// AnalyticsService ranks clients by their sales. Aggregation and the ordering
// happen in the store at full precision; results are rounded to cents here.
type AnalyticsService interface {
	TopClientByTotalSales(ctx context.Context) (*models.TopClientByTotal, error)
	TopClientByAverageSaleValue(ctx context.Context) (*models.TopClientByAverage, error)
	TopClientsByPurchaseFrequency(ctx context.Context) ([]models.TopClientByFrequency, error)
}

type analyticsService struct {
	sales   storage.SalesRepository
	clients storage.ClientsRepository
}

func NewAnalyticsService(sales storage.SalesRepository, clients storage.ClientsRepository) AnalyticsService {
	return &analyticsService{sales: sales, clients: clients}
}

// TopClientByTotalSales returns nil when there are no sales.
func (s *analyticsService) TopClientByTotalSales(ctx context.Context) (*models.TopClientByTotal, error) {
	agg, err := s.sales.TopByTotal(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := s.summaryFor(ctx, agg)
	if err != nil || summary == nil {
		return nil, err
	}
	return &models.TopClientByTotal{
		ClientSummary:   *summary,
		TotalSalesValue: agg.Value.Decimal.Round(2),
	}, nil
}

// TopClientByAverageSaleValue returns nil when there are no sales.
func (s *analyticsService) TopClientByAverageSaleValue(ctx context.Context) (*models.TopClientByAverage, error) {
	agg, err := s.sales.TopByAverage(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := s.summaryFor(ctx, agg)
	if err != nil || summary == nil {
		return nil, err
	}
	return &models.TopClientByAverage{
		ClientSummary:    *summary,
		AverageSaleValue: agg.Value.Decimal.Round(2),
	}, nil
}

// summaryFor resolves the client of a ranking row. A missing row, a NULL
// aggregate or a client deleted since the aggregate ran all yield nil.
func (s *analyticsService) summaryFor(ctx context.Context, agg *models.ClientAggregate) (*models.ClientSummary, error) {
	if agg == nil || !agg.Value.Valid {
		return nil, nil
	}
	summaries, err := s.clients.FindSummariesByIDs(ctx, []string{agg.ClientID})
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, nil
	}
	return &summaries[0], nil
}

// TopClientsByPurchaseFrequency returns every client tied at the maximum
// number of distinct sale days, in the order the store ranked them.
func (s *analyticsService) TopClientsByPurchaseFrequency(ctx context.Context) ([]models.TopClientByFrequency, error) {
	days, err := s.sales.TopByUniqueDays(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.TopClientByFrequency, 0, len(days))
	if len(days) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(days))
	for _, d := range days {
		ids = append(ids, d.ClientID)
	}
	summaries, err := s.clients.FindSummariesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.ClientSummary, len(summaries))
	for _, sum := range summaries {
		byID[sum.ID] = sum
	}

	for _, d := range days {
		sum, ok := byID[d.ClientID]
		if !ok {
			continue
		}
		out = append(out, models.TopClientByFrequency{ClientSummary: sum, UniqueSaleDays: d.UniqueSaleDays})
	}
	return out, nil
}
