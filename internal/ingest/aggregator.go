package ingest

import (
	"context"
	"strings"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"solarapi/pkg/models"
)

// ErrNoSources is returned when every source failed.
var ErrNoSources = errors.New("no source returned data")

// Aggregator fetches from several sources and merges them into one set of
// bodies keyed by id.
type Aggregator struct {
	Sources []Source
	// Concurrency caps parallel fetches. Zero means one goroutine per source.
	Concurrency int
}

func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{Sources: sources}
}

type fetchResult struct {
	items []models.CelestialBody
	err   error
}

// FetchAndMerge fetches every source concurrently, then merges results in
// source order so earlier sources win conflicts. A failing source is logged
// and skipped.
func (a *Aggregator) FetchAndMerge(ctx context.Context) ([]models.CelestialBody, error) {
	results := make([]fetchResult, len(a.Sources))

	var g errgroup.Group
	if a.Concurrency > 0 {
		g.SetLimit(a.Concurrency)
	}
	for i, src := range a.Sources {
		i, src := i, src
		g.Go(func() error {
			grip.Info(message.Fields{"message": "fetching bodies", "source": src.Name()})
			items, err := src.FetchAll(ctx)
			results[i] = fetchResult{items: items, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	m := newMerger()
	ok := 0
	for i, res := range results {
		name := a.Sources[i].Name()
		if res.err != nil {
			grip.Error(message.WrapError(res.err, message.Fields{
				"message": "source failed, skipping",
				"source":  name,
			}))
			continue
		}
		ok++
		for _, b := range res.items {
			m.add(b, name)
		}
		grip.Info(message.Fields{"message": "fetched bodies", "source": name, "count": len(res.items)})
	}

	if ok == 0 && len(a.Sources) > 0 {
		return nil, ErrNoSources
	}
	return m.result(), nil
}

// Merge combines bodies that share an id using the same rules as
// FetchAndMerge.
func Merge(items ...[]models.CelestialBody) []models.CelestialBody {
	m := newMerger()
	for _, batch := range items {
		for _, b := range batch {
			m.add(b, "")
		}
	}
	return m.result()
}

type merger struct {
	order []string
	byKey map[string]models.CelestialBody
}

func newMerger() *merger {
	return &merger{byKey: make(map[string]models.CelestialBody)}
}

func (m *merger) add(b models.CelestialBody, source string) {
	b.ID = strings.TrimSpace(b.ID)
	key := canonicalKey(b)
	if key == "" {
		grip.Warning(message.Fields{"message": "skipping body without id", "source": source, "name": b.Name})
		return
	}

	if existing, ok := m.byKey[key]; ok {
		m.byKey[key] = mergeBody(existing, b)
		return
	}
	m.order = append(m.order, key)
	m.byKey[key] = b
}

func (m *merger) result() []models.CelestialBody {
	out := make([]models.CelestialBody, 0, len(m.order))
	for _, key := range m.order {
		b := m.byKey[key]
		b.Normalize()
		checkConsistency(b)
		out = append(out, b)
	}
	return out
}

// canonicalKey is the id itself; ids are compared exactly, as the stores do.
func canonicalKey(b models.CelestialBody) string {
	return b.ID
}

// mergeBody keeps every value already on base and fills the gaps from
// incoming:
//
// - empty strings and nil measurements are filled from incoming
// - moons are a union keyed by moon name
// - isPlanet is true if either side says so
func mergeBody(base, incoming models.CelestialBody) models.CelestialBody {
	fillString(&base.Name, incoming.Name)
	fillString(&base.EnglishName, incoming.EnglishName)
	fillString(&base.AlternativeName, incoming.AlternativeName)
	fillString(&base.BodyType, incoming.BodyType)
	fillString(&base.Dimension, incoming.Dimension)
	fillString(&base.DiscoveredBy, incoming.DiscoveredBy)
	fillString(&base.DiscoveryDate, incoming.DiscoveryDate)
	fillString(&base.Rel, incoming.Rel)

	base.IsPlanet = base.IsPlanet || incoming.IsPlanet

	if base.AroundPlanet.IsUnset() && !incoming.AroundPlanet.IsUnset() {
		base.AroundPlanet = incoming.AroundPlanet
	}
	if base.Mass == nil {
		base.Mass = incoming.Mass
	}
	if base.Vol == nil {
		base.Vol = incoming.Vol
	}

	fillFloat(&base.SemimajorAxis, incoming.SemimajorAxis)
	fillFloat(&base.Perihelion, incoming.Perihelion)
	fillFloat(&base.Aphelion, incoming.Aphelion)
	fillFloat(&base.Eccentricity, incoming.Eccentricity)
	fillFloat(&base.Inclination, incoming.Inclination)
	fillFloat(&base.Density, incoming.Density)
	fillFloat(&base.Gravity, incoming.Gravity)
	fillFloat(&base.Escape, incoming.Escape)
	fillFloat(&base.MeanRadius, incoming.MeanRadius)
	fillFloat(&base.EquaRadius, incoming.EquaRadius)
	fillFloat(&base.PolarRadius, incoming.PolarRadius)
	fillFloat(&base.Flattening, incoming.Flattening)
	fillFloat(&base.SideralOrbit, incoming.SideralOrbit)
	fillFloat(&base.SideralRotation, incoming.SideralRotation)
	fillFloat(&base.AxialTilt, incoming.AxialTilt)
	fillFloat(&base.AvgTemp, incoming.AvgTemp)
	fillFloat(&base.MainAnomaly, incoming.MainAnomaly)
	fillFloat(&base.ArgPeriapsis, incoming.ArgPeriapsis)
	fillFloat(&base.LongAscNode, incoming.LongAscNode)

	base.Moons = mergeMoons(base.Moons, incoming.Moons)
	return base
}

func fillString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func fillFloat(dst **float64, v *float64) {
	if *dst == nil {
		*dst = v
	}
}

func mergeMoons(a, b []models.Moon) []models.Moon {
	out := make([]models.Moon, 0, len(a)+len(b))
	seen := make(map[string]int, len(a)+len(b))
	for _, m := range append(append([]models.Moon{}, a...), b...) {
		key := strings.ToLower(strings.TrimSpace(m.Moon))
		if idx, ok := seen[key]; ok {
			if out[idx].Rel == "" {
				out[idx].Rel = m.Rel
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, m)
	}
	return out
}

// checkConsistency warns about documents the planets preset and the
// bodyType presets would classify differently.
func checkConsistency(b models.CelestialBody) {
	if b.IsPlanet == (b.BodyType == models.BodyTypePlanet) {
		return
	}
	grip.Warning(message.Fields{
		"message":  "isPlanet disagrees with bodyType",
		"id":       b.ID,
		"isPlanet": b.IsPlanet,
		"bodyType": b.BodyType,
	})
}
