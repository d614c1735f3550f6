package bodies

import "solarapi/pkg/models"

// Preset is a fixed, named filter served from its own endpoint.
type Preset struct {
	// Name is the path segment and the key of the response envelope.
	Name   string
	Filter Filter
	// Many presets return a list; the others return the first match.
	Many bool
	// NotFound is the message returned when nothing matches.
	NotFound string
}

var (
	isPlanet = true

	PresetSun = Preset{
		Name:     "sun",
		Filter:   Filter{BodyType: models.BodyTypeStar, EnglishName: "Sun"},
		NotFound: "Sun not found",
	}
	PresetPluto = Preset{
		Name:     "pluto",
		Filter:   Filter{BodyType: models.BodyTypeDwarfPlanet, EnglishName: "Pluto"},
		NotFound: "Pluto not found",
	}
	PresetPlanets = Preset{
		Name:     "planets",
		Filter:   Filter{IsPlanet: &isPlanet},
		Many:     true,
		NotFound: "No planets found",
	}
)

// Presets lists every preset endpoint in registration order.
var Presets = []Preset{PresetSun, PresetPluto, PresetPlanets}

func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
