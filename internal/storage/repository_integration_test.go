//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/filter"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "salespulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=salespulse sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "salespulse")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	// migrations path relative to this test file (internal/storage → ../../db/migrations)
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func seedClient(t *testing.T, repo ClientsRepository, name, email string) models.Client {
	t.Helper()
	c, err := repo.Create(context.Background(), models.Client{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		BirthDate: time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return *c
}

func seedSale(t *testing.T, repo SalesRepository, clientID, value string, at time.Time) {
	t.Helper()
	if _, err := repo.Create(context.Background(), models.Sale{
		Value:    decimal.RequireFromString(value),
		SaleDate: at,
		ClientID: clientID,
	}); err != nil {
		t.Fatalf("seed sale: %v", err)
	}
}

func TestRepository_Integration_TableDriven(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	ctx := context.Background()
	clients := NewClientsRepository(db)
	sales := NewSalesRepository(db)

	ana := seedClient(t, clients, "Ana Silva", "ana@example.com")
	bob := seedClient(t, clients, "Bob Souza", "bob@example.com")
	_ = seedClient(t, clients, "Carla 100%", "carla@example.com")

	day := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	// Ana: two sales on the same day, one more on day 3 -> total 300, 2 unique days
	seedSale(t, sales, ana.ID, "100.00", day)
	seedSale(t, sales, ana.ID, "50.00", day.Add(3*time.Hour))
	seedSale(t, sales, ana.ID, "150.00", day.AddDate(0, 0, 2))
	// Bob: one big sale -> highest average, 1 unique day
	seedSale(t, sales, bob.ID, "250.00", day.AddDate(0, 0, 1))

	t.Run("top by total", func(t *testing.T) {
		agg, err := sales.TopByTotal(ctx)
		if err != nil || agg == nil || agg.ClientID != ana.ID || !agg.Value.Decimal.Equal(decimal.NewFromInt(300)) {
			t.Fatalf("got %+v err=%v", agg, err)
		}
	})

	t.Run("top by average", func(t *testing.T) {
		agg, err := sales.TopByAverage(ctx)
		if err != nil || agg == nil || agg.ClientID != bob.ID {
			t.Fatalf("got %+v err=%v", agg, err)
		}
	})

	t.Run("top by unique days", func(t *testing.T) {
		out, err := sales.TopByUniqueDays(ctx)
		if err != nil || len(out) != 1 || out[0].ClientID != ana.ID || out[0].UniqueSaleDays != 2 {
			t.Fatalf("got %+v err=%v", out, err)
		}
	})

	cases := []struct {
		name      string
		dr        *filter.DateRange
		wantDays  int
		wantFirst int64
	}{
		{name: "all", dr: nil, wantDays: 3, wantFirst: 2},
		{name: "from day 2", dr: &filter.DateRange{Gte: ptrTime(day.AddDate(0, 0, 1).Truncate(24 * time.Hour))}, wantDays: 2, wantFirst: 1},
		{name: "before day 2", dr: &filter.DateRange{Lt: ptrTime(day.AddDate(0, 0, 1).Truncate(24 * time.Hour))}, wantDays: 1, wantFirst: 2},
	}
	for _, tc := range cases {
		t.Run("count per day "+tc.name, func(t *testing.T) {
			out, err := sales.CountPerDay(ctx, tc.dr)
			if err != nil {
				t.Fatalf("CountPerDay: %v", err)
			}
			if len(out) != tc.wantDays || out[0].Total != tc.wantFirst {
				t.Fatalf("got %+v", out)
			}
		})
	}

	t.Run("report page with sales ascending", func(t *testing.T) {
		page, total, err := clients.ListWithSales(ctx, models.ClientFilter{Name: "ana"}, 0, 10)
		if err != nil || total != 1 || len(page) != 1 {
			t.Fatalf("page=%+v total=%d err=%v", page, total, err)
		}
		got := page[0].Sales
		if len(got) != 3 || got[0].SaleDate.After(got[1].SaleDate) || got[1].SaleDate.After(got[2].SaleDate) {
			t.Fatalf("sales not ordered: %+v", got)
		}
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		_, total, err := clients.List(ctx, models.ClientFilter{Name: "100%"}, 0, 10)
		if err != nil || total != 1 {
			t.Fatalf("total=%d err=%v", total, err)
		}
	})

	t.Run("delete guarded by cascade", func(t *testing.T) {
		n, err := clients.CountSales(ctx, bob.ID)
		if err != nil || n != 1 {
			t.Fatalf("count sales: n=%d err=%v", n, err)
		}
		ok, err := clients.Delete(ctx, bob.ID, true)
		if err != nil || !ok {
			t.Fatalf("cascade delete: ok=%v err=%v", ok, err)
		}
		exists, err := clients.Exists(ctx, bob.ID)
		if err != nil || exists {
			t.Fatalf("client still exists: %v %v", exists, err)
		}
	})

	t.Run("bulk insert and import log", func(t *testing.T) {
		batch := []models.Sale{
			{Value: decimal.RequireFromString("1.10"), SaleDate: day, ClientID: ana.ID},
			{Value: decimal.RequireFromString("2.20"), SaleDate: day, ClientID: ana.ID},
		}
		if err := sales.InsertBatch(ctx, batch); err != nil {
			t.Fatalf("InsertBatch: %v", err)
		}
		if err := sales.RecordImport(ctx, "batch.csv", len(batch)); err != nil {
			t.Fatalf("RecordImport: %v", err)
		}
		ok, err := sales.HasImport(ctx, "batch.csv")
		if err != nil || !ok {
			t.Fatalf("HasImport: ok=%v err=%v", ok, err)
		}
	})
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestRepository_Integration_PurchaseFrequencyTie(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	ctx := context.Background()
	clients := NewClientsRepository(db)
	sales := NewSalesRepository(db)

	ana := seedClient(t, clients, "Ana Silva", "ana@example.com")
	bob := seedClient(t, clients, "Bob Souza", "bob@example.com")
	carla := seedClient(t, clients, "Carla Dias", "carla@example.com")

	day := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	// Ana: 2 distinct days
	seedSale(t, sales, ana.ID, "100.00", day)
	seedSale(t, sales, ana.ID, "150.00", day.AddDate(0, 0, 2))
	// Bob: 3 sales on 2 distinct days
	seedSale(t, sales, bob.ID, "250.00", day.AddDate(0, 0, 1))
	seedSale(t, sales, bob.ID, "20.00", day.AddDate(0, 0, 1).Add(5*time.Hour))
	seedSale(t, sales, bob.ID, "30.00", day.AddDate(0, 0, 3))
	// Carla: many sales, one day
	for i := 0; i < 4; i++ {
		seedSale(t, sales, carla.ID, "10.00", day.Add(time.Duration(i)*time.Hour))
	}

	out, err := sales.TopByUniqueDays(ctx)
	if err != nil {
		t.Fatalf("TopByUniqueDays: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected both tied clients, got %+v", out)
	}

	want := []string{ana.ID, bob.ID}
	if want[0] > want[1] {
		want[0], want[1] = want[1], want[0]
	}
	for i, d := range out {
		if d.ClientID != want[i] || d.UniqueSaleDays != 2 {
			t.Fatalf("entry %d: got %+v, want client %s with 2 days", i, d, want[i])
		}
	}
}
