package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/neuralease/neuralease/internal/models"
	"github.com/neuralease/neuralease/internal/utils"
)

type AccountRepository interface {
	Create(ctx context.Context, a *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	Update(ctx context.Context, a *models.Account) error
	AddSession(ctx context.Context, accountID, conversationID string) error
	RemoveSession(ctx context.Context, accountID, conversationID string) error
}

type accountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Create(ctx context.Context, a *models.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *accountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	var a models.Account
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *accountRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var a models.Account
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *accountRepo) Update(ctx context.Context, a *models.Account) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *accountRepo) AddSession(ctx context.Context, accountID, conversationID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("sessions", gorm.Expr("array_append(sessions, ?)", conversationID)).Error
}

func (r *accountRepo) RemoveSession(ctx context.Context, accountID, conversationID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("sessions", gorm.Expr("array_remove(sessions, ?)", conversationID)).Error
}
