package models

// Body type values used by the catalog.
const (
	BodyTypeStar        = "Star"
	BodyTypePlanet      = "Planet"
	BodyTypeDwarfPlanet = "Dwarf Planet"
	BodyTypeMoon        = "Moon"
	BodyTypeAsteroid    = "Asteroid"
	BodyTypeComet       = "Comet"
)

// CelestialBody is a single catalog document.
//
// Numeric attributes are pointers: nil means the value is unknown, which is
// different from a measured zero.
type CelestialBody struct {
	ID              string        `json:"id" bson:"id"`
	Name            string        `json:"name" bson:"name"`
	EnglishName     string        `json:"englishName" bson:"englishName"`
	AlternativeName string        `json:"alternativeName,omitempty" bson:"alternativeName,omitempty"`
	IsPlanet        bool          `json:"isPlanet" bson:"isPlanet"`
	BodyType        string        `json:"bodyType,omitempty" bson:"bodyType,omitempty"`
	Moons           []Moon        `json:"moons" bson:"moons"`
	AroundPlanet    *AroundPlanet `json:"aroundPlanet" bson:"aroundPlanet,omitempty"`

	SemimajorAxis   *float64 `json:"semimajorAxis" bson:"semimajorAxis,omitempty"`
	Perihelion      *float64 `json:"perihelion" bson:"perihelion,omitempty"`
	Aphelion        *float64 `json:"aphelion" bson:"aphelion,omitempty"`
	Eccentricity    *float64 `json:"eccentricity" bson:"eccentricity,omitempty"`
	Inclination     *float64 `json:"inclination" bson:"inclination,omitempty"`
	Mass            *Mass    `json:"mass" bson:"mass,omitempty"`
	Vol             *Volume  `json:"vol" bson:"vol,omitempty"`
	Density         *float64 `json:"density" bson:"density,omitempty"`
	Gravity         *float64 `json:"gravity" bson:"gravity,omitempty"`
	Escape          *float64 `json:"escape" bson:"escape,omitempty"`
	MeanRadius      *float64 `json:"meanRadius" bson:"meanRadius,omitempty"`
	EquaRadius      *float64 `json:"equaRadius" bson:"equaRadius,omitempty"`
	PolarRadius     *float64 `json:"polarRadius" bson:"polarRadius,omitempty"`
	Flattening      *float64 `json:"flattening" bson:"flattening,omitempty"`
	Dimension       string   `json:"dimension,omitempty" bson:"dimension,omitempty"`
	SideralOrbit    *float64 `json:"sideralOrbit" bson:"sideralOrbit,omitempty"`
	SideralRotation *float64 `json:"sideralRotation" bson:"sideralRotation,omitempty"`
	AxialTilt       *float64 `json:"axialTilt" bson:"axialTilt,omitempty"`
	AvgTemp         *float64 `json:"avgTemp" bson:"avgTemp,omitempty"`
	MainAnomaly     *float64 `json:"mainAnomaly" bson:"mainAnomaly,omitempty"`
	ArgPeriapsis    *float64 `json:"argPeriapsis" bson:"argPeriapsis,omitempty"`
	LongAscNode     *float64 `json:"longAscNode" bson:"longAscNode,omitempty"`

	DiscoveredBy  string `json:"discoveredBy,omitempty" bson:"discoveredBy,omitempty"`
	DiscoveryDate string `json:"discoveryDate,omitempty" bson:"discoveryDate,omitempty"`
	Rel           string `json:"rel,omitempty" bson:"rel,omitempty"`
}

// Moon references a natural satellite of a body.
type Moon struct {
	Moon string `json:"moon" bson:"moon"`
	Rel  string `json:"rel,omitempty" bson:"rel,omitempty"`
}

type Mass struct {
	MassValue    float64 `json:"massValue" bson:"massValue"`
	MassExponent int     `json:"massExponent" bson:"massExponent"`
}

type Volume struct {
	VolValue    float64 `json:"volValue" bson:"volValue"`
	VolExponent int     `json:"volExponent" bson:"volExponent"`
}

// HasMoons reports whether the body lists at least one satellite.
func (b CelestialBody) HasMoons() bool { return len(b.Moons) > 0 }

// Normalize fills collection defaults so that every body leaving the store
// has the same shape regardless of which schema revision wrote it.
func (b *CelestialBody) Normalize() {
	if b.Moons == nil {
		b.Moons = []Moon{}
	}
	if b.AroundPlanet != nil && b.AroundPlanet.IsUnset() {
		b.AroundPlanet = nil
	}
}

// Float returns a pointer to v. It keeps fixtures and ingestion code short.
func Float(v float64) *float64 { return &v }
