package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/errs"
	"github.com/guttosm/salespulse/internal/filter"
	"github.com/guttosm/salespulse/internal/logger"
	"github.com/guttosm/salespulse/internal/storage"
	"github.com/shopspring/decimal"
)

// SalesService defines business rules for sales and the per-day time series.
type SalesService interface {
	Create(ctx context.Context, s models.Sale) (*models.Sale, error)
	Get(ctx context.Context, id int64) (*models.SaleWithClient, error)
	List(ctx context.Context) ([]models.SaleWithClient, error)
	Update(ctx context.Context, id int64, u models.SaleUpdate) (*models.Sale, error)
	Delete(ctx context.Context, id int64) error
	SalesPerDay(ctx context.Context, q filter.StatsQuery) ([]models.DailySales, error)
}

type salesService struct {
	sales   storage.SalesRepository
	clients storage.ClientsRepository
	now     func() time.Time
}

// NewSalesService builds the service. now defaults to time.Now.
func NewSalesService(sales storage.SalesRepository, clients storage.ClientsRepository, now func() time.Time) SalesService {
	if now == nil {
		now = time.Now
	}
	return &salesService{sales: sales, clients: clients, now: now}
}

// maxSaleValue is the exclusive upper bound of NUMERIC(12,2).
var maxSaleValue = decimal.New(1, 10)

// ValidateSaleValue accepts positive amounts below 10^10 with at most two fractional digits.
func ValidateSaleValue(v decimal.Decimal) error {
	if v.Sign() <= 0 {
		return errs.NewValidationError("value must be a positive amount")
	}
	if !v.LessThan(maxSaleValue) {
		return errs.NewValidationError("value exceeds the maximum amount")
	}
	if !v.Equal(v.Round(2)) {
		return errs.NewValidationError("value must have at most 2 decimal places")
	}
	return nil
}

// Create checks the referenced client with an explicit read before inserting.
// A client removed between the read and the insert is reported by the foreign key.
func (s *salesService) Create(ctx context.Context, sale models.Sale) (*models.Sale, error) {
	if err := ValidateSaleValue(sale.Value); err != nil {
		return nil, err
	}
	if err := s.requireClient(ctx, sale.ClientID); err != nil {
		return nil, err
	}
	if sale.SaleDate.IsZero() {
		sale.SaleDate = s.now().UTC()
	}

	out, err := s.sales.Create(ctx, sale)
	if err != nil {
		return nil, errs.FromStore(err)
	}
	logger.Ctx(ctx).Info().Int64("sale_id", out.ID).Str("client_id", out.ClientID).Msg("sale created")
	return out, nil
}

func (s *salesService) Get(ctx context.Context, id int64) (*models.SaleWithClient, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, saleNotFound(id)
	}
	return sale, nil
}

func (s *salesService) List(ctx context.Context) ([]models.SaleWithClient, error) {
	return s.sales.FindAll(ctx)
}

func (s *salesService) Update(ctx context.Context, id int64, u models.SaleUpdate) (*models.Sale, error) {
	if u.Value != nil {
		if err := ValidateSaleValue(*u.Value); err != nil {
			return nil, err
		}
	}

	current, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, saleNotFound(id)
	}
	if u.ClientID != nil {
		if err := s.requireClient(ctx, *u.ClientID); err != nil {
			return nil, err
		}
	}

	out, err := s.sales.Update(ctx, id, u)
	if err != nil {
		return nil, errs.FromStore(err)
	}
	if out == nil {
		return nil, saleNotFound(id)
	}
	return out, nil
}

func (s *salesService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.sales.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return saleNotFound(id)
	}
	logger.Ctx(ctx).Info().Int64("sale_id", id).Msg("sale deleted")
	return nil
}

// SalesPerDay counts sales per UTC calendar day inside the resolved range.
func (s *salesService) SalesPerDay(ctx context.Context, q filter.StatsQuery) ([]models.DailySales, error) {
	dr := filter.ResolveDateRange(q, s.now())
	return s.sales.CountPerDay(ctx, dr)
}

func (s *salesService) requireClient(ctx context.Context, clientID string) error {
	ok, err := s.clients.Exists(ctx, clientID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewUnprocessableReferenceError(fmt.Sprintf("client %s does not exist", clientID))
	}
	return nil
}

func saleNotFound(id int64) error {
	return errs.NewNotFoundError(fmt.Sprintf("sale %d not found", id))
}
