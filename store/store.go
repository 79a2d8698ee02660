package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/dinedex/dinedex/internal/profile"
	"github.com/dinedex/dinedex/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// inTx marks a transaction-scoped store; nested RunInTransaction
	// calls on it join the enclosing transaction.
	inTx bool

	// Caches
	restaurantCache *cache.Cache // restaurant-by-UID cache, root store only
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        1000,
	}

	store := &Store{
		driver:          driver,
		profile:         profile,
		restaurantCache: cache.New(cacheConfig),
	}

	return store
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	if s.inTx {
		return nil
	}
	s.restaurantCache.Close()
	return s.driver.Close()
}

// RunInTransaction runs fn with a store whose writes are scoped to one
// database transaction. The transaction commits when fn returns nil and
// rolls back on any error. Calling RunInTransaction on a store that is
// already transaction-scoped simply runs fn in the enclosing transaction.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx *Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}

	tx, err := s.driver.BeginTx(ctx)
	if err != nil {
		return err
	}

	txStore := &Store{
		profile: s.profile,
		driver:  tx,
		inTx:    true,
	}

	if err := fn(ctx, txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Error("failed to rollback transaction", slog.String("error", rbErr.Error()))
		}
		return err
	}
	return tx.Commit()
}
