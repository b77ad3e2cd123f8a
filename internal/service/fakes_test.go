package service

import (
	"context"
	"strings"

	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/filter"
)

// fakeClients is an in-memory ClientsRepository. Fields ending in Err force failures.
type fakeClients struct {
	clients   map[string]models.Client
	sales     map[string][]models.Sale
	order     []string
	createErr error
	updateErr error
	listErr   error

	lastSkip, lastTake int
	deletedCascade     *bool
}

func newFakeClients(cs ...models.Client) *fakeClients {
	f := &fakeClients{clients: map[string]models.Client{}, sales: map[string][]models.Sale{}}
	for _, c := range cs {
		f.clients[c.ID] = c
		f.order = append(f.order, c.ID)
	}
	return f
}

func (f *fakeClients) Create(_ context.Context, c models.Client) (*models.Client, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.clients[c.ID] = c
	f.order = append(f.order, c.ID)
	return &c, nil
}

func (f *fakeClients) FindByID(_ context.Context, id string) (*models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeClients) FindByIDWithSales(_ context.Context, id string) (*models.ClientWithSales, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, nil
	}
	return &models.ClientWithSales{Client: c, Sales: f.sales[id]}, nil
}

func (f *fakeClients) FindByEmail(_ context.Context, email string) (*models.Client, error) {
	for _, c := range f.clients {
		if c.Email == email {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeClients) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.clients[id]
	return ok, nil
}

func (f *fakeClients) FindSummariesByIDs(_ context.Context, ids []string) ([]models.ClientSummary, error) {
	var out []models.ClientSummary
	for _, id := range ids {
		if c, ok := f.clients[id]; ok {
			out = append(out, models.ClientSummary{ID: c.ID, Name: c.Name, Email: c.Email})
		}
	}
	return out, nil
}

func (f *fakeClients) FindIDsByEmails(_ context.Context, emails []string) (map[string]string, error) {
	out := map[string]string{}
	for _, e := range emails {
		for _, c := range f.clients {
			if c.Email == e {
				out[e] = c.ID
			}
		}
	}
	return out, nil
}

func (f *fakeClients) filtered(flt models.ClientFilter) []models.Client {
	var out []models.Client
	for _, id := range f.order {
		c := f.clients[id]
		if flt.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(flt.Name)) {
			continue
		}
		if flt.Email != "" && !strings.Contains(strings.ToLower(c.Email), strings.ToLower(flt.Email)) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func page[T any](all []T, skip, take int) []T {
	if skip >= len(all) {
		return nil
	}
	end := skip + take
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end]
}

func (f *fakeClients) List(_ context.Context, flt models.ClientFilter, skip, take int) ([]models.Client, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	f.lastSkip, f.lastTake = skip, take
	all := f.filtered(flt)
	return page(all, skip, take), len(all), nil
}

func (f *fakeClients) ListWithSales(_ context.Context, flt models.ClientFilter, skip, take int) ([]models.ClientWithSales, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	f.lastSkip, f.lastTake = skip, take
	all := f.filtered(flt)
	var out []models.ClientWithSales
	for _, c := range page(all, skip, take) {
		out = append(out, models.ClientWithSales{Client: c, Sales: f.sales[c.ID]})
	}
	return out, len(all), nil
}

func (f *fakeClients) Update(_ context.Context, id string, u models.ClientUpdate) (*models.Client, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	c, ok := f.clients[id]
	if !ok {
		return nil, nil
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.BirthDate != nil {
		c.BirthDate = *u.BirthDate
	}
	f.clients[id] = c
	return &c, nil
}

func (f *fakeClients) Delete(_ context.Context, id string, cascade bool) (bool, error) {
	if _, ok := f.clients[id]; !ok {
		return false, nil
	}
	f.deletedCascade = &cascade
	delete(f.clients, id)
	delete(f.sales, id)
	return true, nil
}

func (f *fakeClients) CountSales(_ context.Context, id string) (int, error) {
	return len(f.sales[id]), nil
}

// fakeSales is a scripted SalesRepository.
type fakeSales struct {
	byID      map[int64]models.SaleWithClient
	nextID    int64
	created   []models.Sale
	createErr error

	topTotal   *models.ClientAggregate
	topAverage *models.ClientAggregate
	uniqueDays []models.ClientUniqueDays
	aggErr     error

	perDay    []models.DailySales
	lastRange *filter.DateRange
}

func newFakeSales() *fakeSales {
	return &fakeSales{byID: map[int64]models.SaleWithClient{}, nextID: 1}
}

func (f *fakeSales) Create(_ context.Context, s models.Sale) (*models.Sale, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	s.ID = f.nextID
	f.nextID++
	f.created = append(f.created, s)
	f.byID[s.ID] = models.SaleWithClient{Sale: s}
	return &s, nil
}

func (f *fakeSales) FindByID(_ context.Context, id int64) (*models.SaleWithClient, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSales) FindAll(_ context.Context) ([]models.SaleWithClient, error) {
	out := []models.SaleWithClient{}
	for _, s := range f.byID {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSales) Update(_ context.Context, id int64, u models.SaleUpdate) (*models.Sale, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	if u.Value != nil {
		s.Value = *u.Value
	}
	if u.SaleDate != nil {
		s.SaleDate = *u.SaleDate
	}
	if u.ClientID != nil {
		s.ClientID = *u.ClientID
	}
	f.byID[id] = s
	return &s.Sale, nil
}

func (f *fakeSales) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func (f *fakeSales) TopByTotal(_ context.Context) (*models.ClientAggregate, error) {
	return f.topTotal, f.aggErr
}

func (f *fakeSales) TopByAverage(_ context.Context) (*models.ClientAggregate, error) {
	return f.topAverage, f.aggErr
}

func (f *fakeSales) TopByUniqueDays(_ context.Context) ([]models.ClientUniqueDays, error) {
	return f.uniqueDays, f.aggErr
}

func (f *fakeSales) CountPerDay(_ context.Context, dr *filter.DateRange) ([]models.DailySales, error) {
	f.lastRange = dr
	return f.perDay, nil
}

func (f *fakeSales) InsertBatch(_ context.Context, sales []models.Sale) error {
	f.created = append(f.created, sales...)
	return nil
}

func (f *fakeSales) HasImport(_ context.Context, _ string) (bool, error) { return false, nil }

func (f *fakeSales) RecordImport(_ context.Context, _ string, _ int) error { return nil }
