package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/neuralease/neuralease/internal/models"
	pgrepo "github.com/neuralease/neuralease/internal/repositories/postgres"
	"github.com/neuralease/neuralease/internal/store"
	"github.com/neuralease/neuralease/internal/utils"
)

const welcomeMessage = "Hello! I'm NeuralEase, your mental health support companion. " +
	"I'm here to listen and help with anything related to your emotional wellbeing. " +
	"How are you feeling today?"

type ConversationSummary struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	LastInteraction time.Time `json:"last_interaction"`
	MessageCount    int       `json:"message_count"`
}

type ConversationService interface {
	Create(ctx context.Context, ownerID string) (*models.Conversation, error)
	Get(ctx context.Context, ownerID, conversationID string) (*models.Conversation, error)
	List(ctx context.Context, ownerID string) ([]ConversationSummary, error)
	Rename(ctx context.Context, ownerID, conversationID, title string) error
	SetConsent(ctx context.Context, ownerID, conversationID string, consent bool) error
	SoftDelete(ctx context.Context, ownerID, conversationID string) error
}

type conversationService struct {
	store    *store.Store
	accounts pgrepo.AccountRepository
	log      *logrus.Logger
}

func NewConversationService(st *store.Store, accounts pgrepo.AccountRepository, log *logrus.Logger) ConversationService {
	return &conversationService{store: st, accounts: accounts, log: log}
}

// Create starts a conversation with the standard welcome turn. Consent is
// granted up front: creating a conversation through the API is the consent
// action, and without it nothing would persist.
func (s *conversationService) Create(ctx context.Context, ownerID string) (*models.Conversation, error) {
	const op = "ConversationService.Create"

	if ownerID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "owner id is required", nil)
	}

	conv := s.store.NewConversation(ownerID)
	conv.ConsentGiven = true
	conv.Profile.ConsentGiven = true

	s.store.AddMessage(conv, models.RoleSystem, welcomeMessage, &models.MessageMetadata{
		Generation: &models.Generation{Source: "welcome"},
	})

	if err := s.store.Save(ctx, conv); err != nil {
		return nil, err
	}
	if err := s.accounts.AddSession(ctx, ownerID, conv.ID); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to register conversation", err)
	}
	return conv, nil
}

func (s *conversationService) Get(ctx context.Context, ownerID, conversationID string) (*models.Conversation, error) {
	const op = "ConversationService.Get"

	conv, ok := s.store.Load(ctx, conversationID)
	if !ok {
		return nil, utils.E(utils.CodeNotFound, op, "conversation not found", utils.ErrNotFound)
	}
	if conv.OwnerID != ownerID {
		return nil, utils.E(utils.CodeForbidden, op, "conversation belongs to another account", nil)
	}
	return conv, nil
}

// List loads each conversation registered on the account. Ids whose blobs are
// gone or expired are skipped rather than surfaced as errors.
func (s *conversationService) List(ctx context.Context, ownerID string) ([]ConversationSummary, error) {
	const op = "ConversationService.List"

	account, err := s.accounts.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "account not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to fetch account", err)
	}

	summaries := make([]ConversationSummary, 0, len(account.Sessions))
	for _, id := range account.Sessions {
		conv, ok := s.store.Load(ctx, id)
		if !ok {
			continue
		}
		summaries = append(summaries, ConversationSummary{
			ID:              conv.ID,
			Title:           conv.Title,
			LastInteraction: conv.LastInteraction,
			MessageCount:    len(conv.Messages),
		})
	}
	return summaries, nil
}

func (s *conversationService) Rename(ctx context.Context, ownerID, conversationID, title string) error {
	const op = "ConversationService.Rename"

	if title == "" {
		return utils.E(utils.CodeInvalidArgument, op, "title is required", nil)
	}

	conv, err := s.Get(ctx, ownerID, conversationID)
	if err != nil {
		return err
	}
	conv.Title = title
	return s.store.Save(ctx, conv)
}

func (s *conversationService) SetConsent(ctx context.Context, ownerID, conversationID string, consent bool) error {
	conv, err := s.Get(ctx, ownerID, conversationID)
	if err != nil {
		return err
	}

	conv.Profile.ConsentGiven = consent
	if consent {
		conv.ConsentGiven = true
		return s.store.Save(ctx, conv)
	}

	// Withdrawing consent removes what was stored.
	return s.store.Erase(ctx, conv)
}

func (s *conversationService) SoftDelete(ctx context.Context, ownerID, conversationID string) error {
	const op = "ConversationService.SoftDelete"

	conv, err := s.Get(ctx, ownerID, conversationID)
	if err != nil {
		return err
	}
	if err := s.store.MarkDeleted(ctx, conv); err != nil {
		return err
	}
	if err := s.accounts.RemoveSession(ctx, ownerID, conversationID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to unregister conversation", err)
	}
	return nil
}
