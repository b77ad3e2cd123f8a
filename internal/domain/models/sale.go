package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a monetary transaction attributed to one client.
type Sale struct {
	ID       int64           `json:"id"`
	Value    decimal.Decimal `json:"value"`
	SaleDate time.Time       `json:"saleDate"`
	ClientID string          `json:"clientId"`
}

// SaleWithClient is a sale plus the summary of its client.
type SaleWithClient struct {
	Sale
	Client ClientSummary `json:"client"`
}

// SaleUpdate carries the fields of a partial update; nil means unchanged.
type SaleUpdate struct {
	Value    *decimal.Decimal
	SaleDate *time.Time
	ClientID *string
}

// Empty reports whether the update changes nothing.
func (u SaleUpdate) Empty() bool {
	return u.Value == nil && u.SaleDate == nil && u.ClientID == nil
}
