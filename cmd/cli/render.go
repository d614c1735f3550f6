package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/cheynewallace/tabby"

	"solarapi/pkg/models"
)

func newTable(w io.Writer) *tabby.Tabby {
	return tabby.NewCustom(tabwriter.NewWriter(w, 0, 0, 2, ' ', 0))
}

func printTable(w io.Writer, items []models.CelestialBody) {
	t := newTable(w)
	t.AddHeader("ID", "Name", "English name", "Type", "Planet", "Moons", "Around")
	for _, b := range items {
		around := ""
		if b.AroundPlanet != nil {
			around = b.AroundPlanet.Planet
		}
		t.AddLine(b.ID, b.Name, b.EnglishName, b.BodyType, strconv.FormatBool(b.IsPlanet), len(b.Moons), around)
	}
	t.Print()
	fmt.Fprintf(w, "%d bodies\n", len(items))
}

func printDetail(w io.Writer, b *models.CelestialBody) {
	t := newTable(w)
	t.AddHeader("Field", "Value")
	t.AddLine("id", b.ID)
	t.AddLine("name", b.Name)
	t.AddLine("englishName", b.EnglishName)
	t.AddLine("bodyType", b.BodyType)
	t.AddLine("isPlanet", strconv.FormatBool(b.IsPlanet))
	if b.AroundPlanet != nil {
		t.AddLine("aroundPlanet", b.AroundPlanet.Planet)
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"semimajorAxis", b.SemimajorAxis},
		{"eccentricity", b.Eccentricity},
		{"meanRadius", b.MeanRadius},
		{"gravity", b.Gravity},
		{"density", b.Density},
		{"avgTemp", b.AvgTemp},
	} {
		if f.v != nil {
			t.AddLine(f.name, strconv.FormatFloat(*f.v, 'g', -1, 64))
		}
	}
	if b.Mass != nil {
		t.AddLine("mass", fmt.Sprintf("%ge%d kg", b.Mass.MassValue, b.Mass.MassExponent))
	}
	if b.HasMoons() {
		t.AddLine("moons", len(b.Moons))
		for _, m := range b.Moons {
			t.AddLine("moon", m.Moon)
		}
	}
	t.Print()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
