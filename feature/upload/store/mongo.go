package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"market-ingest/feature/upload/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	snapshotCollection = "currentlyShown"
	historyCollection  = "history"

	// maxHistoryLength bounds the per-key sale log. Older entries fall off
	// the end as new sales merge in.
	maxHistoryLength = 1800
)

// MongoSnapshotStore implements SnapshotStore over a Mongo collection.
type MongoSnapshotStore struct {
	collection *mongo.Collection
}

// NewMongoSnapshotStore creates the snapshot store and ensures its
// (world, item) index.
func NewMongoSnapshotStore(ctx context.Context, db *mongo.Database) (*MongoSnapshotStore, error) {
	coll := db.Collection(snapshotCollection)
	if err := ensureKeyIndex(ctx, coll); err != nil {
		return nil, err
	}
	return &MongoSnapshotStore{collection: coll}, nil
}

// Get implements SnapshotStore.
func (s *MongoSnapshotStore) Get(ctx context.Context, worldID, itemID int) (*models.CurrentlyShown, error) {
	var snapshot models.CurrentlyShown
	err := s.collection.FindOne(ctx, keyFilter(worldID, itemID)).Decode(&snapshot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return &snapshot, nil
}

// Put implements SnapshotStore. The write is a single-document replace with
// upsert, so the storage engine guarantees its atomicity.
func (s *MongoSnapshotStore) Put(ctx context.Context, snapshot *models.CurrentlyShown) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, keyFilter(snapshot.WorldID, snapshot.ItemID), snapshot, opts)
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// MongoHistoryStore implements HistoryStore over a Mongo collection.
type MongoHistoryStore struct {
	collection *mongo.Collection
}

// NewMongoHistoryStore creates the history store and ensures its
// (world, item) index.
func NewMongoHistoryStore(ctx context.Context, db *mongo.Database) (*MongoHistoryStore, error) {
	coll := db.Collection(historyCollection)
	if err := ensureKeyIndex(ctx, coll); err != nil {
		return nil, err
	}
	return &MongoHistoryStore{collection: coll}, nil
}

// Get implements HistoryStore.
func (s *MongoHistoryStore) Get(ctx context.Context, worldID, itemID, limit int) (*models.History, error) {
	findOpts := options.FindOne()
	if limit > 0 {
		findOpts.SetProjection(bson.M{"sales": bson.M{"$slice": limit}})
	}

	var history models.History
	err := s.collection.FindOne(ctx, keyFilter(worldID, itemID), findOpts).Decode(&history)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return &history, nil
}

// Create implements HistoryStore.
func (s *MongoHistoryStore) Create(ctx context.Context, history *models.History) error {
	if _, err := s.collection.InsertOne(ctx, history); err != nil {
		return fmt.Errorf("failed to create history: %w", err)
	}
	return nil
}

// AppendSales implements HistoryStore. The merge keeps the log sorted by
// sale time descending and truncates it to the bounded length in the same
// single-document update.
func (s *MongoHistoryStore) AppendSales(ctx context.Context, sales []models.Sale, worldID, itemID int) error {
	if len(sales) == 0 {
		return nil
	}

	update := bson.M{
		"$push": bson.M{
			"sales": bson.M{
				"$each":  sales,
				"$sort":  bson.M{"saleTime": -1},
				"$slice": maxHistoryLength,
			},
		},
		"$set": bson.M{
			"lastUploadTime": time.Now().UnixMilli(),
		},
	}
	_, err := s.collection.UpdateOne(ctx, keyFilter(worldID, itemID), update)
	if err != nil {
		return fmt.Errorf("failed to append sales: %w", err)
	}
	return nil
}

func keyFilter(worldID, itemID int) bson.M {
	return bson.M{"worldId": worldID, "itemId": itemID}
}

func ensureKeyIndex(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "worldId", Value: 1}, {Key: "itemId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to ensure market index: %w", err)
	}
	return nil
}
