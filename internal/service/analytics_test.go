package service

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyticsFixture() (*fakeClients, *fakeSales) {
	clients := newFakeClients(
		models.Client{ID: "c1", Name: "Ana", Email: "ana@x.com"},
		models.Client{ID: "c2", Name: "Bob", Email: "bob@x.com"},
	)
	return clients, newFakeSales()
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func TestAnalytics_TopClientByTotalSales(t *testing.T) {
	cases := []struct {
		name      string
		agg       *models.ClientAggregate
		wantNil   bool
		wantValue string
	}{
		{name: "no sales", agg: nil, wantNil: true},
		{name: "null sum", agg: &models.ClientAggregate{ClientID: "c1"}, wantNil: true},
		{name: "client gone", agg: &models.ClientAggregate{ClientID: "zz", Value: nullDec("10")}, wantNil: true},
		{name: "rounds to cents", agg: &models.ClientAggregate{ClientID: "c1", Value: nullDec("300.005")}, wantValue: "300.01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clients, sales := analyticsFixture()
			sales.topTotal = tc.agg
			out, err := NewAnalyticsService(sales, clients).TopClientByTotalSales(context.Background())
			require.NoError(t, err)
			if tc.wantNil {
				assert.Nil(t, out)
				return
			}
			require.NotNil(t, out)
			assert.Equal(t, "Ana", out.Name)
			assert.Equal(t, tc.wantValue, out.TotalSalesValue.StringFixed(2))
		})
	}
}

func TestAnalytics_TopClientByAverageSaleValue(t *testing.T) {
	clients, sales := analyticsFixture()
	sales.topAverage = &models.ClientAggregate{ClientID: "c2", Value: nullDec("83.333333")}

	out, err := NewAnalyticsService(sales, clients).TopClientByAverageSaleValue(context.Background())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "c2", out.ID)
	assert.Equal(t, "83.33", out.AverageSaleValue.String())

	sales.aggErr = errors.New("db down")
	_, err = NewAnalyticsService(sales, clients).TopClientByAverageSaleValue(context.Background())
	assert.Error(t, err)
}

func TestAnalytics_TopClientsByPurchaseFrequency(t *testing.T) {
	clients, sales := analyticsFixture()
	svc := NewAnalyticsService(sales, clients)

	out, err := svc.TopClientsByPurchaseFrequency(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	sales.uniqueDays = []models.ClientUniqueDays{{ClientID: "c1", UniqueSaleDays: 2}, {ClientID: "c2", UniqueSaleDays: 2}}
	out, err = svc.TopClientsByPurchaseFrequency(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Ana", out[0].Name)
	assert.Equal(t, "Bob", out[1].Name)
	assert.Equal(t, int64(2), out[1].UniqueSaleDays)
}
