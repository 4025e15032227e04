package db

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"climacheck-server/internal/config"
)

func TestBuildDSN(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "explicit DSN wins",
			cfg:  config.Config{DBDSN: "file::memory:?cache=shared", SQLitePath: filepath.Join(dir, "ignored.db")},
			want: "file::memory:?cache=shared",
		},
		{
			name: "plain path gets file prefix and params",
			cfg:  config.Config{SQLitePath: filepath.Join(dir, "a.db")},
			want: "file:" + filepath.Join(dir, "a.db") + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL",
		},
		{
			name: "file URI with query appends params",
			cfg:  config.Config{SQLitePath: "file:" + filepath.Join(dir, "b.db") + "?mode=rwc"},
			want: "file:" + filepath.Join(dir, "b.db") + "?mode=rwc&_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildDSN(tt.cfg)
			if err != nil {
				t.Fatalf("buildDSN() err = %v", err)
			}
			if got != tt.want {
				t.Errorf("buildDSN() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestBuildDSN_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := buildDSN(config.Config{SQLitePath: filepath.Join(dir, "app.db")}); err != nil {
		t.Fatalf("buildDSN() err = %v", err)
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		t.Fatalf("directory %s not created: %v", dir, err)
	}
}

func TestOpen_MigratesFileDatabase(t *testing.T) {
	cfg := config.Config{
		DBDriver:       "sqlite3",
		SQLitePath:     filepath.Join(t.TempDir(), "climacheck.db"),
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
	}

	conn, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open() err = %v", err)
	}
	defer func() {
		if err := Close(conn); err != nil {
			t.Errorf("Close() err = %v", err)
		}
	}()

	var name string
	if err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='lookups'`).Scan(&name); err != nil {
		t.Fatalf("lookups table missing: %v", err)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Config{DBDriver: "nope", DBDSN: "x"})
	if err == nil {
		t.Fatal("Open() err = nil; want error")
	}
	if !strings.Contains(err.Error(), "db open") {
		t.Errorf("err = %q; want db open error", err)
	}
}

func TestClose_Nil(t *testing.T) {
	if err := Close(nil); err != nil {
		t.Errorf("Close(nil) = %v; want nil", err)
	}
}
