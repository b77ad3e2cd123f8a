package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientAggregate is one group of a sales GROUP BY client_id query.
type ClientAggregate struct {
	ClientID string
	Value    decimal.NullDecimal
}

// ClientUniqueDays is the number of distinct calendar days with sales for a client.
type ClientUniqueDays struct {
	ClientID       string
	UniqueSaleDays int64
}

// DailySales is the number of sales registered on one calendar day.
type DailySales struct {
	Day   time.Time
	Total int64
}

// TopClientByTotal is the client with the highest summed sale value, rounded to cents.
type TopClientByTotal struct {
	ClientSummary
	TotalSalesValue decimal.Decimal
}

// TopClientByAverage is the client with the highest average sale value, rounded to cents.
type TopClientByAverage struct {
	ClientSummary
	AverageSaleValue decimal.Decimal
}

// TopClientByFrequency is a client tied at the maximum count of distinct sale days.
type TopClientByFrequency struct {
	ClientSummary
	UniqueSaleDays int64
}
