package bodies

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"solarapi/pkg/models"
)

// MongoStore reads bodies from a single Mongo collection.
type MongoStore struct {
	Coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{Coll: coll}
}

// mongoFilter translates a Filter into a query document. An empty Filter
// yields an empty document, which matches the whole collection.
func mongoFilter(f Filter) bson.M {
	q := bson.M{}
	if f.IsEmpty() {
		return q
	}
	if f.ID != "" {
		q["id"] = f.ID
	}
	if f.BodyType != "" {
		q["bodyType"] = f.BodyType
	}
	if f.EnglishName != "" {
		q["englishName"] = f.EnglishName
	}
	if f.IsPlanet != nil {
		q["isPlanet"] = *f.IsPlanet
	}
	if f.NameContains != "" {
		q["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.NameContains), Options: "i"}
	}
	return q
}

func (s *MongoStore) FindAll(ctx context.Context, f Filter) ([]models.CelestialBody, error) {
	cur, err := s.Coll.Find(ctx, mongoFilter(f))
	if err != nil {
		return nil, storeErr("find bodies", err)
	}
	defer cur.Close(ctx)

	out := []models.CelestialBody{}
	for cur.Next(ctx) {
		var b models.CelestialBody
		if err := cur.Decode(&b); err != nil {
			return nil, storeErr("decode body", err)
		}
		b.Normalize()
		out = append(out, b)
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr("iterate bodies", err)
	}
	return out, nil
}

func (s *MongoStore) FindOne(ctx context.Context, f Filter) (*models.CelestialBody, error) {
	var b models.CelestialBody
	err := s.Coll.FindOne(ctx, mongoFilter(f)).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storeErr("find body", err)
	}
	b.Normalize()
	return &b, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return storeErr("ping", s.Coll.Database().Client().Ping(ctx, nil))
}

// UpsertAll replaces every body by id, inserting the ones that are missing.
func (s *MongoStore) UpsertAll(ctx context.Context, bodies []models.CelestialBody) (int, error) {
	if len(bodies) == 0 {
		return 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(bodies))
	for _, b := range bodies {
		if b.ID == "" {
			return 0, errors.New("body without id")
		}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"id": b.ID}).
			SetReplacement(b).
			SetUpsert(true))
	}

	res, err := s.Coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, storeErr("upsert bodies", err)
	}
	return int(res.UpsertedCount + res.MatchedCount), nil
}

// EnsureIndexes creates the unique id index the collection relies on.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.Coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("id_unique"),
		},
		{
			Keys:    bson.D{{Key: "bodyType", Value: 1}, {Key: "englishName", Value: 1}},
			Options: options.Index().SetName("body_type_english_name"),
		},
	})
	return storeErr("create indexes", err)
}
