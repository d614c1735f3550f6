package bodies

import (
	"context"
	"sync"

	"solarapi/pkg/models"
)

func fixtureBodies() []models.CelestialBody {
	return []models.CelestialBody{
		{
			ID: "soleil", Name: "Le Soleil", EnglishName: "Sun", BodyType: models.BodyTypeStar,
			Moons: []models.Moon{}, MeanRadius: models.Float(696342), Gravity: models.Float(274),
		},
		{
			ID: "terre", Name: "La Terre", EnglishName: "Earth", IsPlanet: true, BodyType: models.BodyTypePlanet,
			Moons:      []models.Moon{{Moon: "La Lune", Rel: "https://api.le-systeme-solaire.net/rest/bodies/lune"}},
			Mass:       &models.Mass{MassValue: 5.97237, MassExponent: 24},
			Vol:        &models.Volume{VolValue: 1.08321, VolExponent: 12},
			MeanRadius: models.Float(6371.0084), Density: models.Float(5.5136),
		},
		{
			ID: "mars", Name: "Mars", EnglishName: "Mars", IsPlanet: true, BodyType: models.BodyTypePlanet,
			Moons: []models.Moon{{Moon: "Phobos"}, {Moon: "Déimos"}},
		},
		{
			ID: "lune", Name: "La Lune", EnglishName: "Moon", BodyType: models.BodyTypeMoon,
			Moons: []models.Moon{}, AroundPlanet: models.LinkedParent("terre", "https://api.le-systeme-solaire.net/rest/bodies/terre"),
			DiscoveredBy: "", AvgTemp: models.Float(0),
		},
		{
			ID: "phobos", Name: "Phobos", EnglishName: "Phobos", BodyType: models.BodyTypeMoon,
			Moons: []models.Moon{}, AroundPlanet: models.DirectParent("mars"),
			DiscoveredBy: "Asaph Hall", DiscoveryDate: "18/08/1877",
		},
		{
			ID: "pluton", Name: "Pluton", EnglishName: "Pluto", BodyType: models.BodyTypeDwarfPlanet,
			Moons: []models.Moon{{Moon: "Charon"}},
		},
		{
			ID: "venus", Name: "Vénus", EnglishName: "Venus", IsPlanet: true, BodyType: models.BodyTypePlanet,
			Moons: []models.Moon{},
		},
		{
			ID: "100percent", Name: "100% Test_Body", EnglishName: "Wildcard", BodyType: models.BodyTypeAsteroid,
			Moons: []models.Moon{},
		},
	}
}

func idsOf(bodies []models.CelestialBody) []string {
	out := make([]string, 0, len(bodies))
	for _, b := range bodies {
		out = append(out, b.ID)
	}
	return out
}

// memStore is an in-memory Store used to exercise the service and handlers.
type memStore struct {
	mu     sync.Mutex
	bodies []models.CelestialBody
	err    error
	// block makes every call wait for the context to expire.
	block   bool
	filters []Filter
}

func newMemStore(bodies ...models.CelestialBody) *memStore {
	return &memStore{bodies: bodies}
}

func (m *memStore) record(ctx context.Context, f Filter) error {
	m.mu.Lock()
	m.filters = append(m.filters, f)
	block, err := m.block, m.err
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return storeErr("blocked", ctx.Err())
	}
	return err
}

func (m *memStore) lastFilter() Filter {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.filters) == 0 {
		return Filter{}
	}
	return m.filters[len(m.filters)-1]
}

func (m *memStore) FindAll(ctx context.Context, f Filter) ([]models.CelestialBody, error) {
	if err := m.record(ctx, f); err != nil {
		return nil, err
	}
	var out []models.CelestialBody
	for _, b := range m.bodies {
		if f.Matches(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) FindOne(ctx context.Context, f Filter) (*models.CelestialBody, error) {
	if err := m.record(ctx, f); err != nil {
		return nil, err
	}
	for _, b := range m.bodies {
		if f.Matches(b) {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (m *memStore) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}
