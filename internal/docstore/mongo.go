package docstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"santdir/internal/config"
	"santdir/internal/logger"
	"santdir/internal/normalizer"
)

const pingTimeout = 10 * time.Second

// MongoStore serves directory documents from a MongoDB database.
type MongoStore struct {
	client      *mongo.Client
	database    string
	collections collectionNames
	logger      *logger.Logger
}

type collectionNames struct {
	saints   string
	events   string
	profiles string
}

// OpenMongo connects to the configured database and verifies the
// connection with a ping before returning.
func OpenMongo(ctx context.Context, cfg *config.StoreConfig, log *logger.Logger) (*MongoStore, error) {
	log.Info("connecting to document store", "uri", maskURI(cfg.URI), "database", cfg.Database)

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)

		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &MongoStore{
		client:   client,
		database: cfg.Database,
		collections: collectionNames{
			saints:   cfg.SaintsCollection,
			events:   cfg.EventsCollection,
			profiles: cfg.ProfilesCollection,
		},
		logger: log,
	}, nil
}

// Saints returns every raw saint document.
func (s *MongoStore) Saints(ctx context.Context) ([]Document, error) {
	return s.findAll(ctx, s.collections.saints)
}

// Events returns every raw event document.
func (s *MongoStore) Events(ctx context.Context) ([]Document, error) {
	return s.findAll(ctx, s.collections.events)
}

// Profile returns the raw sevak profile with the given id.
func (s *MongoStore) Profile(ctx context.Context, id string) (Document, error) {
	coll := s.collection(s.collections.profiles)

	var raw bson.D

	err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: idFilterValue(id)}}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Document{}, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	if err != nil {
		return Document{}, fmt.Errorf("failed to fetch profile: %w", err)
	}

	return toDocument(raw), nil
}

// SaveProfile upserts a sevak profile document. Documents without an id
// get a fresh uuid.
func (s *MongoStore) SaveProfile(ctx context.Context, doc Document) (string, error) {
	id := doc.ID
	if id == "" {
		id = uuid.NewString()
	}

	fields := bson.M{}
	for k, v := range doc.Fields {
		if k == "_id" {
			continue
		}

		fields[k] = v
	}

	coll := s.collection(s.collections.profiles)

	_, err := coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: fields}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save profile %s: %w", id, err)
	}

	return id, nil
}

// Upsert writes a raw document into the named collection. Used by the
// seeding path; reads go through Saints/Events/Profile.
func (s *MongoStore) Upsert(ctx context.Context, collection, id string, fields normalizer.RawDocument) error {
	set := bson.M{}
	for k, v := range fields {
		if k == "_id" {
			continue
		}

		set[k] = v
	}

	_, err := s.collection(collection).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %s/%s: %w", collection, id, err)
	}

	return nil
}

// Close disconnects from the database.
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongo: %w", err)
	}

	return nil
}

func (s *MongoStore) collection(name string) *mongo.Collection {
	return s.client.Database(s.database).Collection(name)
}

func (s *MongoStore) findAll(ctx context.Context, collection string) ([]Document, error) {
	cursor, err := s.collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}

	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []Document

	for cursor.Next(ctx) {
		var raw bson.D
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", collection, err)
		}

		docs = append(docs, toDocument(raw))
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor failed on %s: %w", collection, err)
	}

	s.logger.Debug("fetched collection", "collection", collection, "count", len(docs))

	return docs, nil
}

// toDocument splits the _id element off a decoded document and converts
// the remaining fields to the plain container types the normalizer works
// on.
func toDocument(raw bson.D) Document {
	doc := Document{Fields: make(normalizer.RawDocument, len(raw))}

	for _, elem := range raw {
		if elem.Key == "_id" {
			if id, ok := normalizer.Reference(elem.Value); ok {
				doc.ID = id
			}

			continue
		}

		doc.Fields[elem.Key] = fromBSON(elem.Value)
	}

	return doc
}

// fromBSON converts driver container types to map[string]any and []any so
// the normalizer only ever sees plain containers. Leaf scalars
// (bson.DateTime, bson.ObjectID) pass through; the normalizers recognize
// them structurally via their Time()/Hex() methods.
func fromBSON(v any) any {
	switch val := v.(type) {
	case bson.D:
		m := make(map[string]any, len(val))
		for _, elem := range val {
			m[elem.Key] = fromBSON(elem.Value)
		}

		return m
	case bson.M:
		m := make(map[string]any, len(val))
		for k, elem := range val {
			m[k] = fromBSON(elem)
		}

		return m
	case bson.A:
		a := make([]any, len(val))
		for i, elem := range val {
			a[i] = fromBSON(elem)
		}

		return a
	}

	return v
}

// idFilterValue widens a string id to an ObjectID when it parses as one,
// so lookups work for both uuid-seeded and Mongo-generated documents.
func idFilterValue(id string) any {
	if oid, err := bson.ObjectIDFromHex(id); err == nil {
		return oid
	}

	return id
}

// maskURI hides credentials in a connection string before logging.
func maskURI(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.User == nil {
		return uri
	}

	if _, hasPassword := parsed.User.Password(); hasPassword {
		parsed.User = url.UserPassword(parsed.User.Username(), "***")

		// url.URL.String percent-encodes the mask; keep it literal.
		return strings.Replace(parsed.String(), ":%2A%2A%2A@", ":***@", 1)
	}

	return parsed.String()
}
