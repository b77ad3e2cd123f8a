package service

import (
	"context"
	"math/rand"

	"github.com/guttosm/salespulse/internal/domain/dto"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/filter"
	"github.com/guttosm/salespulse/internal/storage"
)

const dateLayout = "2006-01-02"

// duplicateThreshold: an entry carries "duplicado" when the random draw is below it.
const duplicateThreshold = 0.5

// ReportService assembles the nested client report.
type ReportService interface {
	ClientReport(ctx context.Context, f models.ClientFilter, q filter.PageQuery) (*dto.ClientReportResponse, error)
}

type reportService struct {
	clients storage.ClientsRepository
	random  func() float64
}

// NewReportService builds the service. random must return values in [0, 1);
// nil selects math/rand/v2.
func NewReportService(clients storage.ClientsRepository, random func() float64) ReportService {
	if random == nil {
		random = rand.Float64
	}
	return &reportService{clients: clients, random: random}
}

// ClientReport validates pagination, then reads the page and the total from
// one snapshot and shapes each client into a report entry.
func (s *reportService) ClientReport(ctx context.Context, f models.ClientFilter, q filter.PageQuery) (*dto.ClientReportResponse, error) {
	p, err := filter.NormalizePagination(q)
	if err != nil {
		return nil, err
	}
	page, total, err := s.clients.ListWithSales(ctx, f, p.Skip, p.Take)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.ReportClient, 0, len(page))
	for _, c := range page {
		entries = append(entries, s.entry(c))
	}

	return &dto.ClientReportResponse{
		Data: dto.ReportData{Clientes: entries},
		Meta: dto.ReportMeta{
			RegistroTotal: total,
			Pagina:        p.Page,
			Limite:        p.Limit,
			UltimaPagina:  filter.LastPage(total, p.Limit),
		},
		Redundante: dto.ReportRedundant{Status: "ok"},
	}, nil
}

func (s *reportService) entry(c models.ClientWithSales) dto.ReportClient {
	vendas := make([]dto.ReportSale, 0, len(c.Sales))
	for _, sale := range c.Sales {
		vendas = append(vendas, dto.ReportSale{
			Data:  sale.SaleDate.UTC().Format(dateLayout),
			Valor: sale.Value.InexactFloat64(),
		})
	}

	out := dto.ReportClient{
		Info: dto.ReportInfo{
			NomeCompleto: c.Name,
			Detalhes: dto.ReportDetails{
				Email:      c.Email,
				Nascimento: c.BirthDate.UTC().Format(dateLayout),
			},
		},
		Estatisticas: dto.ReportStats{Vendas: vendas},
	}
	if s.random() < duplicateThreshold {
		out.Duplicado = &dto.ReportDuplicate{NomeCompleto: c.Name}
	}
	return out
}
