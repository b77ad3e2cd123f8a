package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/salespulse/internal/errs"
	"github.com/guttosm/salespulse/pkg/helpers"
)

func TestNormalizePagination_Valid(t *testing.T) {
	cases := []struct {
		name string
		in   PageQuery
		want Pagination
	}{
		{name: "defaults", in: PageQuery{}, want: Pagination{Skip: 0, Take: 10, Page: 1, Limit: 10}},
		{name: "first page", in: PageQuery{Page: helpers.Ptr(1.0), Limit: helpers.Ptr(5.0)}, want: Pagination{Skip: 0, Take: 5, Page: 1, Limit: 5}},
		{name: "third page", in: PageQuery{Page: helpers.Ptr(3.0), Limit: helpers.Ptr(10.0)}, want: Pagination{Skip: 20, Take: 10, Page: 3, Limit: 10}},
		{name: "limit only", in: PageQuery{Limit: helpers.Ptr(1.0)}, want: Pagination{Skip: 0, Take: 1, Page: 1, Limit: 1}},
		{name: "page at cap", in: PageQuery{Page: helpers.Ptr(float64(MaxPageValue)), Limit: helpers.Ptr(1.0)}, want: Pagination{Skip: MaxPageValue - 1, Take: 1, Page: MaxPageValue, Limit: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePagination(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizePagination_SkipFormula(t *testing.T) {
	for page := 1; page <= 20; page++ {
		for limit := 1; limit <= 20; limit++ {
			got, err := NormalizePagination(PageQuery{Page: helpers.Ptr(float64(page)), Limit: helpers.Ptr(float64(limit))})
			require.NoError(t, err)
			require.Equal(t, (page-1)*limit, got.Skip)
			require.Equal(t, limit, got.Take)
		}
	}
}

func TestNormalizePagination_Rejects(t *testing.T) {
	cases := []struct {
		name    string
		in      PageQuery
		wantMsg string
	}{
		{name: "zero page", in: PageQuery{Page: helpers.Ptr(0.0)}, wantMsg: "page must be a positive integer"},
		{name: "negative page", in: PageQuery{Page: helpers.Ptr(-2.0)}, wantMsg: "page must be a positive integer"},
		{name: "fractional page", in: PageQuery{Page: helpers.Ptr(1.5)}, wantMsg: "page must be a positive integer"},
		{name: "nan page", in: PageQuery{Page: helpers.Ptr(math.NaN())}, wantMsg: "page must be a positive integer"},
		{name: "zero limit", in: PageQuery{Limit: helpers.Ptr(0.0)}, wantMsg: "limit must be a positive integer"},
		{name: "fractional limit", in: PageQuery{Limit: helpers.Ptr(2.5)}, wantMsg: "limit must be a positive integer"},
		{name: "page above cap", in: PageQuery{Page: helpers.Ptr(float64(1 << 31))}, wantMsg: "page must not exceed 2147483647"},
		{name: "limit above cap", in: PageQuery{Limit: helpers.Ptr(1e12)}, wantMsg: "limit must not exceed 2147483647"},
		{name: "infinite limit", in: PageQuery{Limit: helpers.Ptr(math.Inf(1))}, wantMsg: "limit must be a positive integer"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizePagination(tc.in)
			var ve *errs.ValidationError
			require.True(t, errors.As(err, &ve), "want ValidationError, got %v", err)
			assert.Equal(t, tc.wantMsg, ve.Message)
		})
	}
}

func TestLastPage(t *testing.T) {
	assert.Equal(t, 3, LastPage(25, 10))
	assert.Equal(t, 2, LastPage(20, 10))
	assert.Equal(t, 1, LastPage(1, 10))
	assert.Equal(t, 0, LastPage(0, 10))
	assert.Equal(t, 0, LastPage(5, 0))
}
