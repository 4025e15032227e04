package migrate

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	_ "github.com/mattn/go-sqlite3"
)

func openMemDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Every connection to :memory: is a fresh database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return db
}

func countVersions(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + versionsTable).Scan(&n); err != nil {
		t.Fatalf("count versions: %v", err)
	}
	return n
}

func TestRun_CreatesLookupsTable(t *testing.T) {
	db := openMemDB(t)

	if err := Run(context.Background(), db); err != nil {
		t.Fatalf("Run() err = %v", err)
	}

	if _, err := db.Exec(`INSERT INTO lookups (id, city, outcome, duration_ms, requested_at) VALUES ('a', 'Lima', 'ok', 3, '2025-01-01T00:00:00.000000000Z')`); err != nil {
		t.Fatalf("insert into lookups: %v", err)
	}
	if countVersions(t, db) < 1 {
		t.Error("no versions recorded")
	}
}

func TestRun_Idempotent(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	if err := Run(ctx, db); err != nil {
		t.Fatalf("first Run() err = %v", err)
	}
	first := countVersions(t, db)
	if err := Run(ctx, db); err != nil {
		t.Fatalf("second Run() err = %v", err)
	}
	if got := countVersions(t, db); got != first {
		t.Errorf("versions after second run = %d; want %d", got, first)
	}
}

func TestRunFS_OrderAndSkip(t *testing.T) {
	db := openMemDB(t)
	fsys := fstest.MapFS{
		"0002_add_col.sql":  {Data: []byte(`ALTER TABLE t ADD COLUMN b TEXT;`)},
		"0001_create_t.sql": {Data: []byte(`CREATE TABLE t (a INTEGER);`)},
		"README.md":         {Data: []byte(`ignored`)},
		"bad_name.sql":      {Data: []byte(`THIS IS NOT SQL`)},
	}

	if err := runFS(context.Background(), db, fsys); err != nil {
		t.Fatalf("runFS() err = %v", err)
	}
	if _, err := db.Exec(`INSERT INTO t (a, b) VALUES (1, 'x')`); err != nil {
		t.Fatalf("insert after migrations: %v", err)
	}
	if got := countVersions(t, db); got != 2 {
		t.Errorf("versions = %d; want 2", got)
	}
}

func TestRunFS_FailedMigrationNotRecorded(t *testing.T) {
	db := openMemDB(t)
	fsys := fstest.MapFS{
		"0001_broken.sql": {Data: []byte(`CREATE TABLE (`)},
	}

	if err := runFS(context.Background(), db, fsys); err == nil {
		t.Fatal("runFS() err = nil; want error")
	}
	if got := countVersions(t, db); got != 0 {
		t.Errorf("versions = %d; want 0", got)
	}
}
