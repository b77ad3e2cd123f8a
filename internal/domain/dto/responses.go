package dto

import (
	"time"
)

// ClientResponse is the public representation of a client.
type ClientResponse struct {
	ID        string         `json:"id" example:"a1b2c3d4-e5f6-7890-1234-567890abcdef"`
	Name      string         `json:"name" example:"Bruce Wayne"`
	Email     string         `json:"email" example:"wayne.enterprises@email.com"`
	BirthDate string         `json:"birthDate" example:"1815-12-10"`
	CreatedAt time.Time      `json:"createdAt"`
	Sales     []SaleResponse `json:"sales,omitempty"`
}

// ClientListResponse is the paginated body of GET /api/v1/clients.
type ClientListResponse struct {
	Data []ClientResponse `json:"data"`
	Meta ListMeta         `json:"meta"`
}

type ListMeta struct {
	Total    int `json:"total" example:"25"`
	Page     int `json:"page" example:"1"`
	Limit    int `json:"limit" example:"10"`
	LastPage int `json:"lastPage" example:"3"`
}

// SaleResponse is the public representation of a sale.
type SaleResponse struct {
	ID       int64                  `json:"id" example:"1"`
	Value    float64                `json:"value" example:"199.99"`
	SaleDate time.Time              `json:"saleDate"`
	ClientID string                 `json:"clientId" example:"a1b2c3d4-e5f6-7890-1234-567890abcdef"`
	Client   *ClientSummaryResponse `json:"client,omitempty"`
}

type ClientSummaryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TopClientByTotalResponse is the winner by summed sale value.
type TopClientByTotalResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	TotalSalesValue float64 `json:"totalSalesValue" example:"500.75"`
}

// TopClientByAverageResponse is the winner by average sale value.
type TopClientByAverageResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	AverageSaleValue float64 `json:"averageSaleValue" example:"125.55"`
}

// TopClientByFrequencyResponse is one of the clients tied at the maximum number of distinct sale days.
type TopClientByFrequencyResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	UniqueSaleDays int64  `json:"uniqueSaleDays" example:"3"`
}

// SalesPerDayResponse is one point of the sparse daily series.
type SalesPerDayResponse struct {
	Date  string `json:"date" example:"2025-08-13"`
	Total int64  `json:"total" example:"2"`
}
