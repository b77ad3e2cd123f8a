package filter

import (
	"fmt"
	"math"

	"github.com/guttosm/salespulse/internal/errs"
	"github.com/guttosm/salespulse/pkg/helpers"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageQuery is the raw pagination input. Values are float64 so fractional
// input reaches validation instead of being truncated by the parser.
type PageQuery struct {
	Page  *float64
	Limit *float64
}

// Pagination is a validated page request.
type Pagination struct {
	Skip  int
	Take  int
	Page  int
	Limit int
}

// MaxPageValue caps page and limit so (page-1)*limit stays inside int64.
const MaxPageValue = math.MaxInt32

// NormalizePagination applies defaults (page=1, limit=10) and rejects values
// that are not positive integers or exceed MaxPageValue.
func NormalizePagination(q PageQuery) (Pagination, error) {
	page, err := positiveInt("page", q.Page, DefaultPage)
	if err != nil {
		return Pagination{}, err
	}
	limit, err := positiveInt("limit", q.Limit, DefaultLimit)
	if err != nil {
		return Pagination{}, err
	}
	return Pagination{
		Skip:  (page - 1) * limit,
		Take:  limit,
		Page:  page,
		Limit: limit,
	}, nil
}

// LastPage is ceil(total/limit).
func LastPage(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func positiveInt(name string, v *float64, def int) (int, error) {
	f := helpers.ValueOr(v, float64(def))
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 1 || f != math.Trunc(f) {
		return 0, errs.NewValidationError(name + " must be a positive integer")
	}
	if f > MaxPageValue {
		return 0, errs.NewValidationError(fmt.Sprintf("%s must not exceed %d", name, MaxPageValue))
	}
	return int(f), nil
}
