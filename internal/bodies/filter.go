package bodies

import (
	"strings"

	"solarapi/pkg/models"
)

// Filter is a set of field constraints applied by a Store. The zero value
// matches every document.
type Filter struct {
	ID          string
	BodyType    string
	EnglishName string
	IsPlanet    *bool
	// NameContains is a case-insensitive literal substring match on name.
	NameContains string
}

func (f Filter) IsEmpty() bool {
	return f.ID == "" && f.BodyType == "" && f.EnglishName == "" && f.IsPlanet == nil && f.NameContains == ""
}

// Matches evaluates the filter against a body in memory, with the same
// semantics the stores implement in their query languages.
func (f Filter) Matches(b models.CelestialBody) bool {
	if f.ID != "" && b.ID != f.ID {
		return false
	}
	if f.BodyType != "" && b.BodyType != f.BodyType {
		return false
	}
	if f.EnglishName != "" && b.EnglishName != f.EnglishName {
		return false
	}
	if f.IsPlanet != nil && b.IsPlanet != *f.IsPlanet {
		return false
	}
	if f.NameContains != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(f.NameContains)) {
		return false
	}
	return true
}

// fields is used for log output.
func (f Filter) fields() map[string]any {
	out := map[string]any{}
	if f.ID != "" {
		out["id"] = f.ID
	}
	if f.BodyType != "" {
		out["bodyType"] = f.BodyType
	}
	if f.EnglishName != "" {
		out["englishName"] = f.EnglishName
	}
	if f.IsPlanet != nil {
		out["isPlanet"] = *f.IsPlanet
	}
	if f.NameContains != "" {
		out["name"] = f.NameContains
	}
	return out
}

// ListParams are the raw list query parameters.
type ListParams struct {
	IsPlanet string
	Name     string
}

// Filter converts raw parameters into a Filter. Parsing is lenient: an
// isPlanet token other than true/false is ignored, and a blank name means no
// name constraint.
func (p ListParams) Filter() Filter {
	return Filter{
		IsPlanet:     ParseBoolToken(p.IsPlanet),
		NameContains: strings.TrimSpace(p.Name),
	}
}

func ParseBoolToken(s string) *bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}
