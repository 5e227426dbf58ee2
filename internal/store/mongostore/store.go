package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avelling/resman/internal/domain"
)

const (
	// CollectionName is the Mongo collection holding resource records.
	CollectionName = "resources"

	// listLimit caps the number of records a single List returns.
	listLimit = 1000
)

// timeLayout is the wire format for created_at. Records are persisted
// with the timestamp as an ISO-8601 string and parsed back on read.
const timeLayout = time.RFC3339Nano

// Store is the Mongo-backed resource gateway.
type Store struct {
	coll *mongo.Collection
}

// NewStore creates a resource store over the given database.
func NewStore(db *mongo.Database) *Store {
	return &Store{
		coll: db.Collection(CollectionName),
	}
}

// resourceDoc is the persisted document layout. It matches the API shape
// exactly except that created_at is a string and Mongo's own _id is
// projected out of every read.
type resourceDoc struct {
	ID        string `bson:"id"`
	URL       string `bson:"url"`
	Login     string `bson:"login"`
	Password  string `bson:"password"`
	IsActive  bool   `bson:"is_active"`
	CreatedAt string `bson:"created_at"`
}

func toDoc(res domain.Resource) resourceDoc {
	return resourceDoc{
		ID:        res.ID,
		URL:       res.URL,
		Login:     res.Login,
		Password:  res.Password,
		IsActive:  res.IsActive,
		CreatedAt: res.CreatedAt.Format(timeLayout),
	}
}

func (d resourceDoc) toResource() (domain.Resource, error) {
	createdAt, err := time.Parse(timeLayout, d.CreatedAt)
	if err != nil {
		return domain.Resource{}, fmt.Errorf("parse created_at for %s: %w", d.ID, err)
	}
	return domain.Resource{
		ID:        d.ID,
		URL:       d.URL,
		Login:     d.Login,
		Password:  d.Password,
		IsActive:  d.IsActive,
		CreatedAt: createdAt,
	}, nil
}

// Insert persists a new record.
func (s *Store) Insert(ctx context.Context, res domain.Resource) error {
	if _, err := s.coll.InsertOne(ctx, toDoc(res)); err != nil {
		return fmt.Errorf("failed to insert resource: %w", err)
	}
	return nil
}

// List returns up to 1000 records in store-native order.
func (s *Store) List(ctx context.Context) ([]domain.Resource, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetLimit(listLimit)

	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	resources := make([]domain.Resource, 0)
	for cursor.Next(ctx) {
		var doc resourceDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode resource: %w", err)
		}
		res, err := doc.toResource()
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resources: %w", err)
	}

	return resources, nil
}

// SetActive atomically finds the record by id, sets is_active and returns
// the post-update record. Returns domain.ErrNotFound when no record matches.
func (s *Store) SetActive(ctx context.Context, id string, active bool) (domain.Resource, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"_id": 0})

	var doc resourceDoc
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"is_active": active}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Resource{}, domain.ErrNotFound
		}
		return domain.Resource{}, fmt.Errorf("failed to update resource: %w", err)
	}

	return doc.toResource()
}

// Delete removes the record with the given id.
// Returns domain.ErrNotFound when no record matches.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
