package bodies

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"solarapi/pkg/models"
)

// ErrStoreUnavailable marks failures of the underlying database: lost
// connections, rejected queries and expired deadlines.
var ErrStoreUnavailable = errors.New("body store unavailable")

// Store is the read side of the body collection.
type Store interface {
	// FindAll returns every body matching f, in storage order.
	FindAll(ctx context.Context, f Filter) ([]models.CelestialBody, error)
	// FindOne returns the first body matching f, or nil when none does.
	FindOne(ctx context.Context, f Filter) (*models.CelestialBody, error)
	Ping(ctx context.Context) error
}

// Writer is used by ingestion tooling only; the API never writes.
type Writer interface {
	UpsertAll(ctx context.Context, bodies []models.CelestialBody) (int, error)
}

// StoreError wraps a driver error and matches ErrStoreUnavailable.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStoreUnavailable, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStoreUnavailable }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
