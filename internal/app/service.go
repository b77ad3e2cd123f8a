package app

import (
	"database/sql"

	"github.com/guttosm/salespulse/internal/service"
	"github.com/guttosm/salespulse/internal/storage"
)

// Services groups the repositories and business services built on one database handle.
// The HTTP server and the CSV importer share it.
type Services struct {
	ClientsRepo storage.ClientsRepository
	SalesRepo   storage.SalesRepository

	Clients   service.ClientService
	Sales     service.SalesService
	Analytics service.AnalyticsService
	Report    service.ReportService
}

// NewServices builds the repository and service layers over db.
func NewServices(db *sql.DB) *Services {
	clients := storage.NewClientsRepository(db)
	sales := storage.NewSalesRepository(db)

	return &Services{
		ClientsRepo: clients,
		SalesRepo:   sales,
		Clients:     service.NewClientService(clients),
		Sales:       service.NewSalesService(sales, clients, nil),
		Analytics:   service.NewAnalyticsService(sales, clients),
		Report:      service.NewReportService(clients, nil),
	}
}
