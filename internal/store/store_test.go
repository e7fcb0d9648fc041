package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/crate/internal/shared"
)

// exerciseStore runs the behavior every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		if _, err := s.Get(ctx, "albumsData"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("put then get", func(t *testing.T) {
		if err := s.Put(ctx, "albumsData", []byte(`[{"id":0}]`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		got, err := s.Get(ctx, "albumsData")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != `[{"id":0}]` {
			t.Errorf("expected stored payload, got %s", got)
		}
	})

	t.Run("put replaces", func(t *testing.T) {
		if err := s.Put(ctx, "albumsData", []byte(`[]`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		got, err := s.Get(ctx, "albumsData")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != `[]` {
			t.Errorf("expected replaced payload, got %s", got)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		if err := s.Put(ctx, "favoritesData", []byte(`[{"id":7}]`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		got, err := s.Get(ctx, "albumsData")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != `[]` {
			t.Errorf("writing another key changed albumsData: %s", got)
		}
	})

	t.Run("invalid keys", func(t *testing.T) {
		for _, key := range []string{"", "  ", "../escape", "a/b"} {
			if err := s.Put(ctx, key, []byte(`[]`)); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("Put(%q): expected ErrInvalidArgument, got %v", key, err)
			}
		}
	})
}

func TestMemory(t *testing.T) {
	s := NewMemory()
	exerciseStore(t, s)

	t.Run("returned values are copies", func(t *testing.T) {
		ctx := context.Background()
		_ = s.Put(ctx, "copy", []byte("abc"))
		v, _ := s.Get(ctx, "copy")
		v[0] = 'z'

		again, _ := s.Get(ctx, "copy")
		if string(again) != "abc" {
			t.Errorf("mutating a returned value changed the store: %s", again)
		}
	})
}

func TestFilesystem(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	s, err := NewFilesystem(root)
	if err != nil {
		t.Fatalf("NewFilesystem failed: %v", err)
	}
	exerciseStore(t, s)

	t.Run("writes one json file per key", func(t *testing.T) {
		if _, err := os.Stat(filepath.Join(root, "albumsData.json")); err != nil {
			t.Errorf("expected albumsData.json: %v", err)
		}
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		matches, _ := filepath.Glob(filepath.Join(root, ".tmp-*"))
		if len(matches) != 0 {
			t.Errorf("expected temp files to be cleaned up, got %v", matches)
		}
	})

	t.Run("unreadable file surfaces an error", func(t *testing.T) {
		if err := os.Mkdir(filepath.Join(root, "dir.json"), 0o755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		_, err := s.Get(context.Background(), "dir")
		if err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("expected a read error, got %v", err)
		}
	})
}

func TestSQLite(t *testing.T) {
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	s := NewSQLite(db)
	exerciseStore(t, s)

	t.Run("UpdatedAt", func(t *testing.T) {
		ts, err := s.UpdatedAt(context.Background(), "albumsData")
		if err != nil {
			t.Fatalf("UpdatedAt failed: %v", err)
		}
		if ts.IsZero() {
			t.Error("expected non-zero timestamp")
		}

		if _, err := s.UpdatedAt(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Close leaves borrowed db open", func(t *testing.T) {
		if err := s.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if err := db.Ping(); err != nil {
			t.Errorf("db should still be usable: %v", err)
		}
	})
}

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crate.db")
	s, err := OpenSQLite(context.Background(), shared.DatabaseConfig{Path: path, MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer s.Close()

	exerciseStore(t, s)
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("CRATE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CRATE_TEST_POSTGRES_DSN not set")
	}

	s, err := NewPostgres(context.Background(), dsn)
	if err != nil {
		t.Fatalf("NewPostgres failed: %v", err)
	}
	defer s.Close()

	if _, err := s.db.Exec(`DELETE FROM collections WHERE name IN ('albumsData', 'favoritesData')`); err != nil {
		t.Fatalf("failed to clear collections: %v", err)
	}
	exerciseStore(t, s)
}

func TestNewPostgresErrors(t *testing.T) {
	tc := []struct {
		name string
		dsn  string
		want string
	}{
		{name: "malformed dsn", dsn: "postgres://%zz", want: "postgres"},
		{name: "unreachable server", dsn: "postgres://crate@127.0.0.1:1/crate?sslmode=disable&connect_timeout=1", want: "failed to ping postgres"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			s, err := NewPostgres(ctx, tt.dsn)
			if err == nil {
				s.Close()
				t.Fatal("expected NewPostgres to fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tc := []struct {
		name    string
		storage shared.StorageConfig
		want    Driver
		wantErr error
	}{
		{name: "memory", storage: shared.StorageConfig{Driver: "memory"}, want: DriverMemory},
		{name: "fs", storage: shared.StorageConfig{Driver: "fs", FSRoot: t.TempDir()}, want: DriverFilesystem},
		{name: "default is sqlite", storage: shared.StorageConfig{}, want: DriverSQLite},
		{name: "s3 without bucket", storage: shared.StorageConfig{Driver: "s3"}, wantErr: shared.ErrInvalidConfig},
		{name: "unknown", storage: shared.StorageConfig{Driver: "tape"}, wantErr: shared.ErrUnknownDriver},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			database := shared.DatabaseConfig{Path: filepath.Join(t.TempDir(), "crate.db")}
			s, err := Open(ctx, tt.storage, database)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer s.Close()

			if s.Driver() != tt.want {
				t.Errorf("expected driver %s, got %s", tt.want, s.Driver())
			}
		})
	}
}
