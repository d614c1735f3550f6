// Package app wires configuration into the store and service used by the
// commands.
package app

import (
	"context"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"

	"solarapi/internal/bodies"
	"solarapi/pkg/database"
	"solarapi/pkg/utils"
)

// Store is a readable and writable body store.
type Store interface {
	bodies.Store
	bodies.Writer
}

// Backend is an open store together with the function that releases it.
type Backend struct {
	Name  string
	Store Store
	close func(context.Context) error
}

func (b *Backend) Close(ctx context.Context) error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// OpenBackend opens the store selected by cfg.Driver.
func OpenBackend(ctx context.Context, cfg utils.StoreConfig) (*Backend, error) {
	switch cfg.Driver {
	case utils.StoreMongo:
		client, err := database.OpenMongo(ctx, database.MongoConfig{
			URI:            cfg.MongoURI,
			ConnectTimeout: cfg.ConnectTimeout,
			Retries:        cfg.ConnectRetries,
		})
		if err != nil {
			return nil, err
		}

		store := bodies.NewMongoStore(client.Database(cfg.MongoDatabase).Collection(cfg.Collection))
		if err := store.EnsureIndexes(ctx); err != nil {
			// a read-only user cannot create indexes; queries still work
			grip.Warning(message.WrapError(err, message.Fields{
				"message":    "could not ensure indexes",
				"database":   cfg.MongoDatabase,
				"collection": cfg.Collection,
			}))
		}
		return &Backend{
			Name:  utils.StoreMongo,
			Store: store,
			close: func(ctx context.Context) error { return database.CloseMongo(ctx, client) },
		}, nil

	case utils.StoreSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Name:  utils.StoreSQLite,
			Store: bodies.NewSQLiteStore(db),
			close: func(context.Context) error { return db.Close() },
		}, nil
	}
	return nil, errors.Errorf("unknown store driver '%s'", cfg.Driver)
}

// ServiceOptions maps query settings onto bodies.Options.
func ServiceOptions(cfg utils.QueryConfig) bodies.Options {
	return bodies.Options{
		Timeout:           cfg.Timeout,
		EmptyListNotFound: cfg.EmptyPlanets == utils.EmptyPlanetsNotFound,
	}
}
