package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// BeginTx starts a transaction and returns a driver scoped to it.
	// All model methods called on the returned Transaction run inside it.
	BeginTx(ctx context.Context) (Transaction, error)

	// Restaurant model related methods.
	CreateRestaurant(ctx context.Context, create *Restaurant) (*Restaurant, error)
	ListRestaurants(ctx context.Context, find *FindRestaurant) ([]*Restaurant, error)
	CountRestaurants(ctx context.Context, find *FindRestaurant) (int, error)
	UpdateRestaurant(ctx context.Context, update *UpdateRestaurant) error
	DeleteRestaurant(ctx context.Context, delete *DeleteRestaurant) error

	// BusinessHour model related methods.
	CreateBusinessHour(ctx context.Context, create *BusinessHour) (*BusinessHour, error)
	ListBusinessHours(ctx context.Context, find *FindBusinessHour) ([]*BusinessHour, error)
	UpdateBusinessHour(ctx context.Context, update *UpdateBusinessHour) error
	DeleteBusinessHour(ctx context.Context, delete *DeleteBusinessHour) error
}

// Transaction is a Driver whose model methods run inside a database
// transaction until Commit or Rollback is called.
type Transaction interface {
	Driver

	Commit() error
	Rollback() error
}
