package models

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ParentKind tells which schema revision an AroundPlanet value came from.
type ParentKind int

const (
	ParentUnset ParentKind = iota
	// ParentDirect is the older revision: a bare planet identifier.
	ParentDirect
	// ParentLinked is the newer revision: {planet, rel}.
	ParentLinked
)

// AroundPlanet is the parent body of a satellite. Older documents store it as
// a bare string, newer ones as {planet, rel}; both decode into this type and
// are always served as {planet, rel}.
type AroundPlanet struct {
	Kind   ParentKind `json:"-" bson:"-"`
	Planet string     `json:"planet" bson:"planet"`
	Rel    string     `json:"rel,omitempty" bson:"rel,omitempty"`
}

// DirectParent builds a parent reference from a bare identifier.
func DirectParent(planet string) *AroundPlanet {
	if planet == "" {
		return nil
	}
	return &AroundPlanet{Kind: ParentDirect, Planet: planet}
}

// LinkedParent builds a parent reference carrying a resource link.
func LinkedParent(planet, rel string) *AroundPlanet {
	if planet == "" {
		return nil
	}
	return &AroundPlanet{Kind: ParentLinked, Planet: planet, Rel: rel}
}

func (a *AroundPlanet) IsUnset() bool {
	return a == nil || a.Kind == ParentUnset || a.Planet == ""
}

type linkedParent struct {
	Planet string `json:"planet" bson:"planet"`
	Rel    string `json:"rel,omitempty" bson:"rel,omitempty"`
}

func (a AroundPlanet) MarshalJSON() ([]byte, error) {
	return json.Marshal(linkedParent{Planet: a.Planet, Rel: a.Rel})
}

func (a *AroundPlanet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = AroundPlanet{}

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return errors.Wrap(err, "decoding aroundPlanet identifier")
		}
		if id != "" {
			*a = AroundPlanet{Kind: ParentDirect, Planet: id}
		}
		return nil
	case data[0] == '{':
		var lp linkedParent
		if err := json.Unmarshal(data, &lp); err != nil {
			return errors.Wrap(err, "decoding aroundPlanet object")
		}
		if lp.Planet != "" {
			*a = AroundPlanet{Kind: ParentLinked, Planet: lp.Planet, Rel: lp.Rel}
		}
		return nil
	default:
		return errors.Errorf("aroundPlanet must be a string or an object, got %s", data)
	}
}

// MarshalBSONValue writes the value back in the revision it was read from.
func (a AroundPlanet) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch a.Kind {
	case ParentDirect:
		return bson.MarshalValue(a.Planet)
	case ParentLinked:
		return bson.MarshalValue(linkedParent{Planet: a.Planet, Rel: a.Rel})
	default:
		return bsontype.Null, nil, nil
	}
}

func (a *AroundPlanet) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*a = AroundPlanet{}
	raw := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.Null, bsontype.Undefined:
		return nil
	case bsontype.String:
		if id := raw.StringValue(); id != "" {
			*a = AroundPlanet{Kind: ParentDirect, Planet: id}
		}
		return nil
	case bsontype.EmbeddedDocument:
		var lp linkedParent
		if err := raw.Unmarshal(&lp); err != nil {
			return errors.Wrap(err, "decoding aroundPlanet document")
		}
		if lp.Planet != "" {
			*a = AroundPlanet{Kind: ParentLinked, Planet: lp.Planet, Rel: lp.Rel}
		}
		return nil
	default:
		return errors.Errorf("aroundPlanet has unsupported BSON type %s", t)
	}
}
