package ingest

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"solarapi/pkg/models"
)

// Columns is the CSV layout shared by import and export. Moons are written as
// "name|rel" pairs separated by ";".
var Columns = []string{
	"id", "name", "englishName", "alternativeName", "isPlanet", "bodyType",
	"aroundPlanet", "aroundPlanetRel", "moons",
	"semimajorAxis", "perihelion", "aphelion", "eccentricity", "inclination",
	"massValue", "massExponent", "volValue", "volExponent",
	"density", "gravity", "escape", "meanRadius", "equaRadius", "polarRadius",
	"flattening", "dimension", "sideralOrbit", "sideralRotation", "axialTilt",
	"avgTemp", "mainAnomaly", "argPeriapsis", "longAscNode",
	"discoveredBy", "discoveryDate", "rel",
}

// floatColumns maps numeric column names to their field.
func floatColumns(b *models.CelestialBody) map[string]**float64 {
	return map[string]**float64{
		"semimajorAxis":   &b.SemimajorAxis,
		"perihelion":      &b.Perihelion,
		"aphelion":        &b.Aphelion,
		"eccentricity":    &b.Eccentricity,
		"inclination":     &b.Inclination,
		"density":         &b.Density,
		"gravity":         &b.Gravity,
		"escape":          &b.Escape,
		"meanRadius":      &b.MeanRadius,
		"equaRadius":      &b.EquaRadius,
		"polarRadius":     &b.PolarRadius,
		"flattening":      &b.Flattening,
		"sideralOrbit":    &b.SideralOrbit,
		"sideralRotation": &b.SideralRotation,
		"axialTilt":       &b.AxialTilt,
		"avgTemp":         &b.AvgTemp,
		"mainAnomaly":     &b.MainAnomaly,
		"argPeriapsis":    &b.ArgPeriapsis,
		"longAscNode":     &b.LongAscNode,
	}
}

// ReadCSV parses bodies from r. Rows without an id are skipped.
func ReadCSV(r io.Reader) ([]models.CelestialBody, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}

	var out []models.CelestialBody
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		b, err := bodyFromRow(header, row)
		if err != nil {
			return nil, err
		}
		if b.ID == "" {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func bodyFromRow(header map[string]int, row []string) (models.CelestialBody, error) {
	get := func(key string) string { return valueAt(header, row, key) }

	b := models.CelestialBody{
		ID:              get("id"),
		Name:            get("name"),
		EnglishName:     get("englishname"),
		AlternativeName: get("alternativename"),
		BodyType:        get("bodytype"),
		Dimension:       get("dimension"),
		DiscoveredBy:    get("discoveredby"),
		DiscoveryDate:   get("discoverydate"),
		Rel:             get("rel"),
		Moons:           parseMoons(get("moons")),
	}
	if b.ID == "" {
		return b, nil
	}

	if raw := get("isplanet"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return b, errors.Wrapf(err, "parse isPlanet for %s", b.ID)
		}
		b.IsPlanet = v
	}

	if rel := get("aroundplanetrel"); rel != "" {
		b.AroundPlanet = models.LinkedParent(get("aroundplanet"), rel)
	} else {
		b.AroundPlanet = models.DirectParent(get("aroundplanet"))
	}

	for name, field := range floatColumns(&b) {
		v, err := parseNullFloat(get(strings.ToLower(name)))
		if err != nil {
			return b, errors.Wrapf(err, "parse %s for %s", name, b.ID)
		}
		*field = v
	}

	massValue, err := parseNullFloat(get("massvalue"))
	if err != nil {
		return b, errors.Wrapf(err, "parse massValue for %s", b.ID)
	}
	if massValue != nil {
		exp, err := parseInt(get("massexponent"))
		if err != nil {
			return b, errors.Wrapf(err, "parse massExponent for %s", b.ID)
		}
		b.Mass = &models.Mass{MassValue: *massValue, MassExponent: exp}
	}

	volValue, err := parseNullFloat(get("volvalue"))
	if err != nil {
		return b, errors.Wrapf(err, "parse volValue for %s", b.ID)
	}
	if volValue != nil {
		exp, err := parseInt(get("volexponent"))
		if err != nil {
			return b, errors.Wrapf(err, "parse volExponent for %s", b.ID)
		}
		b.Vol = &models.Volume{VolValue: *volValue, VolExponent: exp}
	}

	return b, nil
}

// WriteCSV writes bodies in Columns order.
func WriteCSV(w io.Writer, items []models.CelestialBody) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}

	for i := range items {
		if err := cw.Write(rowFromBody(&items[i])); err != nil {
			return errors.Wrapf(err, "write %s", items[i].ID)
		}
	}

	cw.Flush()
	return cw.Error()
}

func rowFromBody(b *models.CelestialBody) []string {
	floats := floatColumns(b)
	row := make([]string, 0, len(Columns))
	for _, col := range Columns {
		if field, ok := floats[col]; ok {
			row = append(row, formatNullFloat(*field))
			continue
		}

		var v string
		switch col {
		case "id":
			v = b.ID
		case "name":
			v = b.Name
		case "englishName":
			v = b.EnglishName
		case "alternativeName":
			v = b.AlternativeName
		case "isPlanet":
			v = strconv.FormatBool(b.IsPlanet)
		case "bodyType":
			v = b.BodyType
		case "aroundPlanet":
			if b.AroundPlanet != nil {
				v = b.AroundPlanet.Planet
			}
		case "aroundPlanetRel":
			if b.AroundPlanet != nil {
				v = b.AroundPlanet.Rel
			}
		case "moons":
			v = formatMoons(b.Moons)
		case "massValue":
			if b.Mass != nil {
				v = strconv.FormatFloat(b.Mass.MassValue, 'g', -1, 64)
			}
		case "massExponent":
			if b.Mass != nil {
				v = strconv.Itoa(b.Mass.MassExponent)
			}
		case "volValue":
			if b.Vol != nil {
				v = strconv.FormatFloat(b.Vol.VolValue, 'g', -1, 64)
			}
		case "volExponent":
			if b.Vol != nil {
				v = strconv.Itoa(b.Vol.VolExponent)
			}
		case "dimension":
			v = b.Dimension
		case "discoveredBy":
			v = b.DiscoveredBy
		case "discoveryDate":
			v = b.DiscoveryDate
		case "rel":
			v = b.Rel
		}
		row = append(row, v)
	}
	return row
}

func parseMoons(raw string) []models.Moon {
	if raw == "" {
		return nil
	}
	var out []models.Moon
	for _, part := range strings.Split(raw, ";") {
		name, rel, _ := strings.Cut(strings.TrimSpace(part), "|")
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		out = append(out, models.Moon{Moon: name, Rel: strings.TrimSpace(rel)})
	}
	return out
}

func formatMoons(moons []models.Moon) string {
	parts := make([]string, 0, len(moons))
	for _, m := range moons {
		if m.Rel == "" {
			parts = append(parts, m.Moon)
			continue
		}
		parts = append(parts, m.Moon+"|"+m.Rel)
	}
	return strings.Join(parts, ";")
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseNullFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func formatNullFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
