//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/marginlab/ccpmargin/internal/domain/models"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "ccpmargin",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=ccpmargin sslmode=disable", host, port.Port())
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

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/ccpmargin?sslmode=disable", host, port.Port())
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

func integrationSnapshot(runID string, createdAt time.Time) *models.MarginSnapshot {
	return &models.MarginSnapshot{
		RunID:                    runID,
		CreatedAt:                createdAt,
		IMBilateral:              1500.5,
		IMCCP:                    600.25,
		NettingEfficiency:        0.6,
		VMBilateralTotal:         210,
		VMCCPTotal:               120,
		CollateralDelta:          -990.25,
		Worst5LiquidityBilateral: 80,
		Worst5LiquidityCCP:       35,
		Scenario:                 models.Scenario{StressMult: 1.25, ConcThreshold: 1e7, ConcAddonPct: 0.1},
	}
}

func TestSnapshotRepository_Integration(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	repo := NewSnapshotRepository(db)
	base := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	t.Run("insert and get round trip", func(t *testing.T) {
		want := integrationSnapshot("run-int-1", base)
		if err := repo.InsertSnapshot(want); err != nil {
			t.Fatalf("insert: %v", err)
		}

		got, err := repo.GetSnapshotByRunID("run-int-1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got == nil {
			t.Fatalf("snapshot not found after insert")
		}
		if got.IMBilateral != want.IMBilateral || got.NettingEfficiency != want.NettingEfficiency {
			t.Fatalf("round trip mismatch: %+v", got)
		}
		if got.Scenario != want.Scenario {
			t.Fatalf("scenario mismatch: %+v", got.Scenario)
		}
	})

	t.Run("NaN metrics round trip as NULL", func(t *testing.T) {
		snap := integrationSnapshot("run-int-nan", base.Add(time.Minute))
		snap.NettingEfficiency = math.NaN()
		snap.Worst5LiquidityBilateral = math.NaN()
		snap.Worst5LiquidityCCP = math.NaN()
		snap.IMBilateralDegraded = true

		if err := repo.InsertSnapshot(snap); err != nil {
			t.Fatalf("insert: %v", err)
		}
		got, err := repo.GetSnapshotByRunID("run-int-nan")
		if err != nil || got == nil {
			t.Fatalf("get: %v", err)
		}
		if !math.IsNaN(got.NettingEfficiency) || !math.IsNaN(got.Worst5LiquidityCCP) {
			t.Fatalf("NULL metrics should come back NaN: %+v", got)
		}
		if !got.IMBilateralDegraded {
			t.Fatalf("degraded flag lost")
		}
	})

	t.Run("get missing run", func(t *testing.T) {
		got, err := repo.GetSnapshotByRunID("run-ghost")
		if err != nil || got != nil {
			t.Fatalf("want nil,nil got=%+v err=%v", got, err)
		}
	})

	t.Run("list newest first", func(t *testing.T) {
		newer := integrationSnapshot("run-int-2", base.Add(time.Hour))
		if err := repo.InsertSnapshot(newer); err != nil {
			t.Fatalf("insert: %v", err)
		}

		got, err := repo.ListSnapshots(10)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) < 2 {
			t.Fatalf("expected at least 2 snapshots, got %d", len(got))
		}
		if got[0].RunID != "run-int-2" {
			t.Fatalf("expected newest first, got %q", got[0].RunID)
		}

		limited, err := repo.ListSnapshots(1)
		if err != nil || len(limited) != 1 {
			t.Fatalf("limit 1: n=%d err=%v", len(limited), err)
		}
	})
}
