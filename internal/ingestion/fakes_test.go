package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/storage"
)

const header = "client_email;value;sale_date\n"

// fakeClients answers email lookups from a fixed map. Other methods are not used by the importer.
type fakeClients struct {
	storage.ClientsRepository

	mu      sync.Mutex
	ids     map[string]string
	lookups [][]string
	err     error
}

func (f *fakeClients) FindIDsByEmails(_ context.Context, emails []string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, append([]string(nil), emails...))
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]string{}
	for _, e := range emails {
		if id, ok := f.ids[e]; ok {
			out[e] = id
		}
	}
	return out, nil
}

// fakeSales records batches and import log entries.
type fakeSales struct {
	storage.SalesRepository

	mu        sync.Mutex
	batches   [][]models.Sale
	imported  map[string]int
	insertErr error
	hasErr    error
	recordErr error
}

func (f *fakeSales) InsertBatch(_ context.Context, sales []models.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.batches = append(f.batches, append([]models.Sale(nil), sales...))
	return nil
}

func (f *fakeSales) HasImport(_ context.Context, filename string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hasErr != nil {
		return false, f.hasErr
	}
	_, ok := f.imported[filename]
	return ok, nil
}

func (f *fakeSales) RecordImport(_ context.Context, filename string, rowCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordErr != nil {
		return f.recordErr
	}
	if f.imported == nil {
		f.imported = map[string]int{}
	}
	f.imported[filename] = rowCount
	return nil
}

func (f *fakeSales) rows() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func knownClients() *fakeClients {
	return &fakeClients{ids: map[string]string{
		"ana@example.com": "11111111-1111-4111-8111-111111111111",
		"bob@example.com": "22222222-2222-4222-8222-222222222222",
	}}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}
