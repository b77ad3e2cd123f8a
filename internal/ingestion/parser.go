package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/errs"
	"github.com/guttosm/salespulse/internal/service"
	"github.com/guttosm/salespulse/internal/storage"
)

// expectedHeaders enforces strict column ordering for sale files.
// If the header doesn't match EXACTLY (order + count), the import must fail.
var expectedHeaders = []string{
	"client_email",
	"value",
	"sale_date",
}

const dateLayout = "2006-01-02"

// nowFunc stamps rows without a sale_date; tests can override this.
var nowFunc = time.Now

// pendingSale is a parsed row waiting for its client id.
type pendingSale struct {
	line  int
	email string
	sale  models.Sale
}

// parseAndPersistFile opens, validates, parses, and persists one file in batches.
// It fails on:
//   - header not matching expected order/length
//   - a row with the wrong column count, an invalid value or an invalid date
//   - an email that does not belong to any client
//   - unrecoverable I/O errors
//
// Batches flushed before a failing row stay committed.
func parseAndPersistFile(ctx context.Context, path string, resolver *emailResolver, repo storage.SalesRepository, batch int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1 // checked explicitly per line

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return 0, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) != expectedHeaders[i] {
			return 0, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	buf := make([]pendingSale, 0, batch)
	lineNumber := 1 // header already read
	total := 0

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		sales, err := attachClients(ctx, resolver, buf)
		if err != nil {
			return err
		}
		if err := repo.InsertBatch(ctx, sales); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) != len(expectedHeaders) {
			return 0, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(expectedHeaders), len(rec))
		}

		p, err := recordToSale(rec)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		p.line = lineNumber

		buf = append(buf, p)
		total++
		if len(buf) >= batch {
			if err := flush(); err != nil {
				return 0, fmt.Errorf("flush batch ending line %d: %w", lineNumber, err)
			}
		}
	}

	if err := flush(); err != nil {
		return 0, fmt.Errorf("final flush: %w", err)
	}

	return total, nil
}

// recordToSale converts one record (already validated length==3) into a pending sale.
//
// Column order:
//
//	0 client_email → resolved to ClientID on flush (trimmed, lower-cased)
//	1 value        → Value (decimal, comma or dot separator, > 0, at most 2 places)
//	2 sale_date    → SaleDate (YYYY-MM-DD or RFC3339, UTC; empty → now)
func recordToSale(rec []string) (pendingSale, error) {
	var p pendingSale

	p.email = strings.ToLower(strings.TrimSpace(rec[0]))
	if p.email == "" {
		return p, errs.NewValidationError("client_email is required")
	}

	s := strings.ReplaceAll(strings.TrimSpace(rec[1]), ",", ".")
	v, err := decimal.NewFromString(s)
	if err != nil {
		return p, errs.NewValidationError(fmt.Sprintf("invalid value %q", rec[1]))
	}
	if err := service.ValidateSaleValue(v); err != nil {
		return p, err
	}
	p.sale.Value = v

	d, err := parseSaleDate(rec[2])
	if err != nil {
		return p, errs.NewValidationError(fmt.Sprintf("invalid sale_date %q, expected YYYY-MM-DD or RFC3339", rec[2]))
	}
	p.sale.SaleDate = d

	return p, nil
}

func parseSaleDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nowFunc().UTC(), nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// attachClients resolves the batch's emails and fills in ClientID.
// The first unknown email fails the batch with an UnprocessableReferenceError.
func attachClients(ctx context.Context, resolver *emailResolver, rows []pendingSale) ([]models.Sale, error) {
	seen := make(map[string]struct{}, len(rows))
	emails := make([]string, 0, len(rows))
	for _, p := range rows {
		if _, ok := seen[p.email]; !ok {
			seen[p.email] = struct{}{}
			emails = append(emails, p.email)
		}
	}

	ids, err := resolver.resolve(ctx, emails)
	if err != nil {
		return nil, err
	}

	sales := make([]models.Sale, 0, len(rows))
	for _, p := range rows {
		id, ok := ids[p.email]
		if !ok {
			return nil, errs.NewUnprocessableReferenceError(fmt.Sprintf("line %d: client with email %s does not exist", p.line, p.email))
		}
		p.sale.ClientID = id
		sales = append(sales, p.sale)
	}
	return sales, nil
}
