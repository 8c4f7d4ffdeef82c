package selection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/vehiclelookup/pkg/integrations/vehicles"
)

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI        string // default mongodb://localhost:27017
	Database   string // default "vehiclelookup"
	Collection string // default "selections"
}

// MongoStore keeps one document per profile:
//
//	{_id: "<profile>", state: {...}, updated_at: ISODate(...)}
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// selectionDoc is the stored document shape.
type selectionDoc struct {
	Profile   string                `bson:"_id"`
	State     vehicles.VehicleState `bson:"state"`
	UpdatedAt time.Time             `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and pings the primary.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "vehiclelookup"
	}
	if cfg.Collection == "" {
		cfg.Collection = "selections"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, profile string) (*vehicles.VehicleState, error) {
	if err := checkProfile(profile); err != nil {
		return nil, err
	}
	var doc selectionDoc
	err := s.coll.FindOne(ctx, profileFilter(profile)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find selection: %w", err)
	}
	return &doc.State, nil
}

func (s *MongoStore) Set(ctx context.Context, profile string, st *vehicles.VehicleState) error {
	if err := checkSet(profile, st); err != nil {
		return err
	}
	_, err := s.coll.UpdateOne(ctx,
		profileFilter(profile),
		upsertUpdate(st, time.Now().UTC()),
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo upsert selection: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, profile string) error {
	if err := checkProfile(profile); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, profileFilter(profile)); err != nil {
		return fmt.Errorf("mongo delete selection: %w", err)
	}
	return nil
}

// Close disconnects the client, waiting at most five seconds.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func profileFilter(profile string) bson.D {
	return bson.D{{Key: "_id", Value: profile}}
}

func upsertUpdate(st *vehicles.VehicleState, now time.Time) bson.D {
	var state vehicles.VehicleState
	if st != nil {
		state = *st
	}
	return bson.D{{Key: "$set", Value: bson.D{
		{Key: "state", Value: state},
		{Key: "updated_at", Value: now},
	}}}
}

var _ Store = (*MongoStore)(nil)
