package api

import (
	"context"

	"github.com/guttosm/salespulse/internal/domain/dto"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/filter"
	"github.com/guttosm/salespulse/internal/service"
)

type stubClients struct {
	client    *models.Client
	withSales *models.ClientWithSales
	page      *models.ClientPage
	err       error

	gotFilter  models.ClientFilter
	gotPage    filter.PageQuery
	gotUpdate  models.ClientUpdate
	gotCascade bool
	gotCreate  models.Client
}

func (s *stubClients) Create(_ context.Context, c models.Client) (*models.Client, error) {
	s.gotCreate = c
	return s.client, s.err
}
func (s *stubClients) Get(_ context.Context, _ string) (*models.ClientWithSales, error) {
	return s.withSales, s.err
}
func (s *stubClients) List(_ context.Context, f models.ClientFilter, q filter.PageQuery) (*models.ClientPage, error) {
	s.gotFilter, s.gotPage = f, q
	if s.err != nil {
		return nil, s.err
	}
	if _, err := filter.NormalizePagination(q); err != nil {
		return nil, err
	}
	return s.page, nil
}
func (s *stubClients) Update(_ context.Context, _ string, u models.ClientUpdate) (*models.Client, error) {
	s.gotUpdate = u
	return s.client, s.err
}
func (s *stubClients) Delete(_ context.Context, _ string, cascade bool) error {
	s.gotCascade = cascade
	return s.err
}

type stubAnalytics struct {
	total   *models.TopClientByTotal
	average *models.TopClientByAverage
	freq    []models.TopClientByFrequency
	err     error
}

func (s *stubAnalytics) TopClientByTotalSales(context.Context) (*models.TopClientByTotal, error) {
	return s.total, s.err
}
func (s *stubAnalytics) TopClientByAverageSaleValue(context.Context) (*models.TopClientByAverage, error) {
	return s.average, s.err
}
func (s *stubAnalytics) TopClientsByPurchaseFrequency(context.Context) ([]models.TopClientByFrequency, error) {
	return s.freq, s.err
}

type stubReport struct {
	resp    *dto.ClientReportResponse
	err     error
	gotPage filter.PageQuery
}

func (s *stubReport) ClientReport(_ context.Context, _ models.ClientFilter, q filter.PageQuery) (*dto.ClientReportResponse, error) {
	s.gotPage = q
	return s.resp, s.err
}

type stubSales struct {
	sale      *models.Sale
	withCli   *models.SaleWithClient
	list      []models.SaleWithClient
	perDay    []models.DailySales
	err       error
	gotCreate models.Sale
	gotUpdate models.SaleUpdate
	gotStats  filter.StatsQuery
}

func (s *stubSales) Create(_ context.Context, sale models.Sale) (*models.Sale, error) {
	s.gotCreate = sale
	return s.sale, s.err
}
func (s *stubSales) Get(context.Context, int64) (*models.SaleWithClient, error) {
	return s.withCli, s.err
}
func (s *stubSales) List(context.Context) ([]models.SaleWithClient, error) { return s.list, s.err }
func (s *stubSales) Update(_ context.Context, _ int64, u models.SaleUpdate) (*models.Sale, error) {
	s.gotUpdate = u
	return s.sale, s.err
}
func (s *stubSales) Delete(context.Context, int64) error { return s.err }
func (s *stubSales) SalesPerDay(_ context.Context, q filter.StatsQuery) ([]models.DailySales, error) {
	s.gotStats = q
	return s.perDay, s.err
}

var (
	_ service.ClientService    = (*stubClients)(nil)
	_ service.AnalyticsService = (*stubAnalytics)(nil)
	_ service.ReportService    = (*stubReport)(nil)
	_ service.SalesService     = (*stubSales)(nil)
)
