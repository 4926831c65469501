package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/osa911/formintake/internal/models"
)

// defaultMongoDatabase matches the database mongoose picks when the
// connection string names none
const defaultMongoDatabase = "test"

type mongoRepository struct {
	client  *mongo.Client
	help    *mongo.Collection
	contact *mongo.Collection
}

// NewMongoRepository connects to MongoDB. The database comes from the path of
// the connection string.
func NewMongoRepository(ctx context.Context, uri string) (SubmissionRepository, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid mongodb connection string: %w", err)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = defaultMongoDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	db := client.Database(dbName)
	return &mongoRepository{
		client:  client,
		help:    db.Collection(models.CollectionHelp),
		contact: db.Collection(models.CollectionContact),
	}, nil
}

func (r *mongoRepository) CreateHelp(ctx context.Context, req *models.HelpRequest) error {
	req.CreatedAt = time.Now().UTC()
	id, err := r.insert(ctx, r.help, req)
	if err != nil {
		return err
	}
	req.ID = id
	return nil
}

func (r *mongoRepository) CreateContact(ctx context.Context, req *models.ContactRequest) error {
	req.CreatedAt = time.Now().UTC()
	id, err := r.insert(ctx, r.contact, req)
	if err != nil {
		return err
	}
	req.ID = id
	return nil
}

// insert relies on the driver to add an ObjectID _id, the models never carry one
func (r *mongoRepository) insert(ctx context.Context, coll *mongo.Collection, doc interface{}) (string, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
	}

	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	default:
		return fmt.Sprint(id), nil
	}
}

// Migrate creates a createdAt index on both collections, which also creates
// the collections themselves
func (r *mongoRepository) Migrate(ctx context.Context) error {
	for _, coll := range []*mongo.Collection{r.help, r.contact} {
		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "createdAt", Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("failed to create index on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

func (r *mongoRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func (r *mongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
