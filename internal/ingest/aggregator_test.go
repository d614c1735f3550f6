package ingest

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarapi/pkg/models"
)

type staticSource struct {
	name  string
	items []models.CelestialBody
	err   error
}

func (s staticSource) Name() string { return s.name }

func (s staticSource) FetchAll(context.Context) ([]models.CelestialBody, error) {
	return s.items, s.err
}

func TestMergeFillsGaps(t *testing.T) {
	primary := []models.CelestialBody{{
		ID: "mars", Name: "Mars", IsPlanet: true, BodyType: models.BodyTypePlanet,
		Gravity: models.Float(3.71),
		Moons:   []models.Moon{{Moon: "Phobos"}},
	}}
	secondary := []models.CelestialBody{{
		ID: " mars ", Name: "Planet Mars", EnglishName: "Mars",
		Gravity: models.Float(3.7),
		Density: models.Float(3.93),
		Mass:    &models.Mass{MassValue: 6.41, MassExponent: 23},
		Moons: []models.Moon{
			{Moon: "phobos", Rel: "https://example.test/phobos"},
			{Moon: "Deimos"},
		},
	}}

	got := Merge(primary, secondary)
	require.Len(t, got, 1)

	b := got[0]
	assert.Equal(t, "mars", b.ID)
	assert.Equal(t, "Mars", b.Name)
	assert.Equal(t, "Mars", b.EnglishName)
	assert.True(t, b.IsPlanet)
	assert.Equal(t, 3.71, *b.Gravity)
	assert.Equal(t, 3.93, *b.Density)
	assert.Equal(t, 23, b.Mass.MassExponent)
	assert.Equal(t, []models.Moon{
		{Moon: "Phobos", Rel: "https://example.test/phobos"},
		{Moon: "Deimos"},
	}, b.Moons)
}

func TestMergeIDsAreCaseSensitive(t *testing.T) {
	got := Merge(
		[]models.CelestialBody{{ID: "Io", Name: "Io"}},
		[]models.CelestialBody{{ID: "io", Name: "io"}},
	)
	require.Len(t, got, 2)
	assert.Equal(t, "Io", got[0].Name)
	assert.Equal(t, "io", got[1].Name)
}

func TestMergeParent(t *testing.T) {
	got := Merge(
		[]models.CelestialBody{{ID: "phobos"}},
		[]models.CelestialBody{{ID: "phobos", AroundPlanet: models.DirectParent("mars")}},
		[]models.CelestialBody{{ID: "phobos", AroundPlanet: models.DirectParent("jupiter")}},
	)
	require.Len(t, got, 1)
	assert.Equal(t, "mars", got[0].AroundPlanet.Planet)
}

func TestMergeKeepsFirstSeenOrderAndSkipsBlankIDs(t *testing.T) {
	got := Merge(
		[]models.CelestialBody{{ID: "venus"}, {ID: "  "}, {ID: "terre"}},
		[]models.CelestialBody{{ID: "mars"}, {ID: "venus"}},
	)
	var ids []string
	for _, b := range got {
		ids = append(ids, b.ID)
		assert.NotNil(t, b.Moons)
	}
	assert.Equal(t, []string{"venus", "terre", "mars"}, ids)
}

func TestFetchAndMerge(t *testing.T) {
	ctx := context.Background()

	t.Run("EarlierSourceWins", func(t *testing.T) {
		agg := NewAggregator(
			staticSource{name: "a", items: []models.CelestialBody{{ID: "terre", Name: "La Terre"}}},
			staticSource{name: "b", items: []models.CelestialBody{{ID: "terre", Name: "Earth"}, {ID: "lune"}}},
		)
		agg.Concurrency = 1

		got, err := agg.FetchAndMerge(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "La Terre", got[0].Name)
		assert.Equal(t, "lune", got[1].ID)
	})
	t.Run("FailingSourceIsSkipped", func(t *testing.T) {
		agg := NewAggregator(
			staticSource{name: "broken", err: errors.New("connection refused")},
			staticSource{name: "ok", items: []models.CelestialBody{{ID: "terre"}}},
		)
		got, err := agg.FetchAndMerge(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
	t.Run("AllSourcesFail", func(t *testing.T) {
		agg := NewAggregator(staticSource{name: "broken", err: errors.New("boom")})
		_, err := agg.FetchAndMerge(ctx)
		assert.True(t, errors.Is(err, ErrNoSources))
	})
	t.Run("NoSources", func(t *testing.T) {
		got, err := NewAggregator().FetchAndMerge(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
	t.Run("Canceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewAggregator(staticSource{name: "a"}).FetchAndMerge(canceled)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}
