package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/neuralease/neuralease/internal/auth"
	"github.com/neuralease/neuralease/internal/models"
	pgrepo "github.com/neuralease/neuralease/internal/repositories/postgres"
	"github.com/neuralease/neuralease/internal/utils"
)

type AccountService interface {
	Register(ctx context.Context, username, email, password string) (*models.Account, error)
	Login(ctx context.Context, username, password string) (*models.Account, string, error)
	Get(ctx context.Context, accountID string) (*models.Account, error)
	UpdatePreferences(ctx context.Context, accountID, responseStyle, theme string, preferences datatypes.JSON) (*models.Account, error)
}

type accountService struct {
	accounts pgrepo.AccountRepository
	tokens   *auth.Issuer
	styles   []string
}

func NewAccountService(accounts pgrepo.AccountRepository, tokens *auth.Issuer, styles []string) AccountService {
	return &accountService{accounts: accounts, tokens: tokens, styles: styles}
}

func (s *accountService) Register(ctx context.Context, username, email, password string) (*models.Account, error) {
	const op = "AccountService.Register"

	if username == "" || email == "" || password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "username, email, and password are required", nil)
	}

	if _, err := s.accounts.GetByUsername(ctx, username); err == nil {
		return nil, utils.E(utils.CodeConflict, op, "username already taken", nil)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check username", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	now := time.Now().UTC()
	account := &models.Account{
		ID:            uuid.NewString(),
		Username:      username,
		Email:         email,
		PasswordHash:  hash,
		ResponseStyle: "neutral",
		Theme:         "light",
		Sessions:      []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create account", err)
	}
	return account, nil
}

func (s *accountService) Login(ctx context.Context, username, password string) (*models.Account, string, error) {
	const op = "AccountService.Login"

	if username == "" || password == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "username and password are required", nil)
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, "", utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to fetch account", err)
	}
	if utils.CheckPassword(account.PasswordHash, password) != nil {
		return nil, "", utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
	}

	token, err := s.tokens.IssueToken(account.ID)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return account, token, nil
}

func (s *accountService) Get(ctx context.Context, accountID string) (*models.Account, error) {
	const op = "AccountService.Get"

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "account not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to fetch account", err)
	}
	return account, nil
}

func (s *accountService) UpdatePreferences(ctx context.Context, accountID, responseStyle, theme string, preferences datatypes.JSON) (*models.Account, error) {
	const op = "AccountService.UpdatePreferences"

	account, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if responseStyle != "" {
		if !s.validStyle(responseStyle) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "unknown response style", nil)
		}
		account.ResponseStyle = responseStyle
	}
	if theme != "" {
		account.Theme = theme
	}
	if preferences != nil {
		account.Preferences = preferences
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update account", err)
	}
	return account, nil
}

func (s *accountService) validStyle(style string) bool {
	for _, known := range s.styles {
		if style == known {
			return true
		}
	}
	return false
}
