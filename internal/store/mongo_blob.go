package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/neuralease/neuralease/internal/utils"
)

type mongoBlobDoc struct {
	ID        string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoBlobStore struct {
	coll *mongo.Collection
}

func NewMongoBlobStore(db *mongo.Database) BlobStore {
	return &mongoBlobStore{coll: db.Collection("conversation_blobs")}
}

func (s *mongoBlobStore) Put(ctx context.Context, id string, data []byte) error {
	doc := mongoBlobDoc{ID: id, Data: data, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": id},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *mongoBlobStore) Get(ctx context.Context, id string) ([]byte, error) {
	var doc mongoBlobDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.Data, nil
}

func (s *mongoBlobStore) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
