package test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/dinedex/dinedex/internal/profile"
	"github.com/dinedex/dinedex/internal/version"
	"github.com/dinedex/dinedex/store"
	"github.com/dinedex/dinedex/store/db"
)

// NewTestingStore creates a store backed by a throwaway database. By
// default it uses a sqlite file under t.TempDir(); set
// DINEDEX_TEST_DRIVER=postgres and DINEDEX_TEST_DSN to run the suite
// against PostgreSQL instead.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	testProfile := getTestingProfile(t)
	dbDriver, err := db.NewDBDriver(testProfile)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	testStore := store.New(dbDriver, testProfile)
	if err := testStore.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	t.Cleanup(func() {
		if err := testStore.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return testStore
}

func getTestingProfile(t *testing.T) *profile.Profile {
	mode := "dev"
	driver := getDriverFromEnv()
	dsn := os.Getenv("DINEDEX_TEST_DSN")
	if driver == "sqlite" {
		// A file-backed database: the in-memory DSN would give every
		// pooled connection its own empty database.
		dsn = filepath.Join(t.TempDir(), fmt.Sprintf("dinedex_%s.db", mode))
	}
	return &profile.Profile{
		Mode:           mode,
		Driver:         driver,
		DSN:            dsn,
		Version:        version.GetCurrentVersion(mode),
		ImportMaxBytes: 3_000_000,
	}
}

func getDriverFromEnv() string {
	driver := os.Getenv("DINEDEX_TEST_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}
	return driver
}
