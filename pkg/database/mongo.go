package database

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoConfig struct {
	URI            string
	ConnectTimeout time.Duration
	// Retries is the number of additional connection attempts after the first.
	Retries int
}

// OpenMongo connects to the deployment at cfg.URI and waits until a ping
// succeeds, retrying with exponential backoff. The returned client is a
// connection pool meant to be shared for the life of the process.
func OpenMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("solar-api").
		SetReadPreference(readpref.PrimaryPreferred())
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout).SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "creating mongo client")
	}

	b := &backoff.Backoff{
		Min:    250 * time.Millisecond,
		Max:    5 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	for attempt := 0; ; attempt++ {
		err = client.Ping(ctx, readpref.PrimaryPreferred())
		if err == nil {
			break
		}

		grip.Warning(message.WrapError(err, message.Fields{
			"message": "mongo connection attempt failed",
			"attempt": attempt + 1,
		}))

		if attempt >= cfg.Retries {
			_ = client.Disconnect(context.Background())
			return nil, errors.Wrapf(err, "pinging mongo after %d attempts", attempt+1)
		}

		select {
		case <-ctx.Done():
			_ = client.Disconnect(context.Background())
			return nil, errors.Wrap(ctx.Err(), "waiting to retry mongo connection")
		case <-time.After(b.Duration()):
		}
	}

	grip.Info(message.Fields{
		"message": "mongo connected",
		"hosts":   opts.Hosts,
	})
	return client, nil
}

func CloseMongo(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}
	return errors.Wrap(client.Disconnect(ctx), "disconnecting mongo")
}
