package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/neuralease/neuralease/internal/utils"
)

// ConversationBlob is the relational row for one sealed conversation.
type ConversationBlob struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	Data      []byte    `gorm:"column:data;type:bytea;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (ConversationBlob) TableName() string { return "conversation_blobs" }

type postgresBlobStore struct {
	db *gorm.DB
}

func NewPostgresBlobStore(db *gorm.DB) BlobStore {
	return &postgresBlobStore{db: db}
}

func (s *postgresBlobStore) Put(ctx context.Context, id string, data []byte) error {
	blob := ConversationBlob{ID: id, Data: data, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&blob).Error
}

func (s *postgresBlobStore) Get(ctx context.Context, id string) ([]byte, error) {
	var blob ConversationBlob
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return blob.Data, nil
}

func (s *postgresBlobStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&ConversationBlob{}).Error
}
