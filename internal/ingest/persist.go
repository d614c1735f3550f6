package ingest

import (
	"context"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"

	"solarapi/internal/bodies"
	"solarapi/pkg/models"
)

// DefaultBatchSize bounds the number of documents sent in one UpsertAll call.
const DefaultBatchSize = 500

// Save upserts items into w in batches and returns how many documents were
// written.
func Save(ctx context.Context, w bodies.Writer, items []models.CelestialBody) (int, error) {
	total := 0
	for start := 0; start < len(items); start += DefaultBatchSize {
		end := min(start+DefaultBatchSize, len(items))

		n, err := w.UpsertAll(ctx, items[start:end])
		total += n
		if err != nil {
			return total, errors.Wrapf(err, "upsert batch %d-%d", start, end)
		}
	}

	grip.Info(message.Fields{
		"message": "saved bodies",
		"count":   total,
	})
	return total, nil
}
