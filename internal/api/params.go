package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guttosm/salespulse/internal/errs"
	"github.com/guttosm/salespulse/internal/filter"
)

const dateLayout = "2006-01-02"

// parseDate accepts YYYY-MM-DD or RFC3339 and returns the instant in UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func dateField(name, s string) (time.Time, error) {
	t, err := parseDate(s)
	if err != nil {
		return time.Time{}, errs.NewValidationError(fmt.Sprintf("invalid %s, expected YYYY-MM-DD or RFC3339", name))
	}
	return t, nil
}

func queryDate(c *gin.Context, name string) (*time.Time, error) {
	s, ok := c.GetQuery(name)
	if !ok || s == "" {
		return nil, nil
	}
	t, err := dateField(name, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// queryPageNumber parses page/limit as float so fractional input reaches the normalizer.
func queryPageNumber(c *gin.Context, name string) (*float64, error) {
	s, ok := c.GetQuery(name)
	if !ok || s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, errs.NewValidationError(name + " must be a positive integer")
	}
	return &f, nil
}

func pageQuery(c *gin.Context) (filter.PageQuery, error) {
	page, err := queryPageNumber(c, "page")
	if err != nil {
		return filter.PageQuery{}, err
	}
	limit, err := queryPageNumber(c, "limit")
	if err != nil {
		return filter.PageQuery{}, err
	}
	return filter.PageQuery{Page: page, Limit: limit}, nil
}

// queryInt parses an optional integer constrained to [min, max].
func queryInt(c *gin.Context, name string, min, max int) (*int, error) {
	s, ok := c.GetQuery(name)
	if !ok || s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < min || n > max {
		return nil, errs.NewValidationError(fmt.Sprintf("%s must be an integer between %d and %d", name, min, max))
	}
	return &n, nil
}

func statsQuery(c *gin.Context) (filter.StatsQuery, error) {
	var (
		q   filter.StatsQuery
		err error
	)
	if q.Year, err = queryInt(c, "year", 1, 9999); err != nil {
		return q, err
	}
	if q.Month, err = queryInt(c, "month", 1, 12); err != nil {
		return q, err
	}
	if q.LastMonths, err = queryInt(c, "lastMonths", 1, 1200); err != nil {
		return q, err
	}
	if q.StartDate, err = queryDate(c, "startDate"); err != nil {
		return q, err
	}
	if q.EndDate, err = queryDate(c, "endDate"); err != nil {
		return q, err
	}
	return q, nil
}

func clientIDParam(c *gin.Context) (string, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", errs.NewValidationError("id must be a valid UUID")
	}
	return id.String(), nil
}

func clientIDValue(s string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", errs.NewValidationError("clientId must be a valid UUID")
	}
	return id.String(), nil
}

func saleIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewValidationError("id must be a positive integer")
	}
	return id, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return errs.NewValidationError("invalid request body: " + err.Error())
	}
	return nil
}
