package dto

import "github.com/shopspring/decimal"

// CreateClientRequest is the body of POST /api/v1/clients.
type CreateClientRequest struct {
	Name      string `json:"name" binding:"required" example:"Bruce Wayne"`
	Email     string `json:"email" binding:"required,email" example:"wayne.enterprises@email.com"`
	BirthDate string `json:"birthDate" binding:"required" example:"1815-12-10"`
}

// UpdateClientRequest is the body of PATCH /api/v1/clients/{id}. Absent fields are left unchanged.
type UpdateClientRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,min=1" example:"Bruce Wayne"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email" example:"bruce@wayne.com"`
	BirthDate *string `json:"birthDate,omitempty" example:"1815-12-10"`
}

// CreateSaleRequest is the body of POST /api/v1/sales.
type CreateSaleRequest struct {
	Value    decimal.Decimal `json:"value" swaggertype:"number" example:"199.99"`
	ClientID string          `json:"clientId" binding:"required" example:"a1b2c3d4-e5f6-7890-1234-567890abcdef"`
	SaleDate *string         `json:"saleDate,omitempty" example:"2025-08-13T10:00:00Z"`
}

// UpdateSaleRequest is the body of PATCH /api/v1/sales/{id}. Absent fields are left unchanged.
type UpdateSaleRequest struct {
	Value    *decimal.Decimal `json:"value,omitempty" swaggertype:"number" example:"250.00"`
	ClientID *string          `json:"clientId,omitempty" example:"a1b2c3d4-e5f6-7890-1234-567890abcdef"`
	SaleDate *string          `json:"saleDate,omitempty" example:"2025-08-14T10:00:00Z"`
}
