package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/neuralease/neuralease/internal/models"
	"github.com/neuralease/neuralease/internal/nlp"
	"github.com/neuralease/neuralease/internal/respond"
	"github.com/neuralease/neuralease/internal/safety"
	"github.com/neuralease/neuralease/internal/store"
	"github.com/neuralease/neuralease/internal/utils"
)

const (
	maxMessageLength = 2000

	unsafeReply = "I'm not able to engage with that content. I'm here to support your mental " +
		"and emotional wellbeing, and I want this to stay a safe space. Is there something " +
		"about how you're feeling that you'd like to talk about?"

	errorReply = "I'm sorry, something went wrong on my end while processing your message. " +
		"Please try again in a moment. If you're in crisis, please call or text 988 to reach " +
		"the Suicide & Crisis Lifeline."
)

// ChatResult is what one processed message produces.
type ChatResult struct {
	ConversationID string              `json:"conversation_id"`
	MessageID      string              `json:"message_id"`
	Reply          string              `json:"reply"`
	Source         string              `json:"source"`
	Analysis       *models.Analysis    `json:"analysis,omitempty"`
	Profile        *models.UserProfile `json:"profile,omitempty"`
	Timestamp      time.Time           `json:"timestamp"`
}

type ChatService interface {
	HandleMessage(ctx context.Context, ownerID, conversationID, text string) (*ChatResult, error)
	HandleEdit(ctx context.Context, ownerID, conversationID, messageID, text string) error
	HandleDelete(ctx context.Context, ownerID, conversationID, messageID string) error
}

type chatService struct {
	conversations ConversationService
	store         *store.Store
	gate          *safety.Gate
	filter        *safety.DomainFilter
	analyzer      *nlp.Analyzer
	overrides     *nlp.OverrideEngine
	cascade       *respond.Cascade
	log           *logrus.Logger
}

func NewChatService(
	conversations ConversationService,
	st *store.Store,
	gate *safety.Gate,
	filter *safety.DomainFilter,
	analyzer *nlp.Analyzer,
	overrides *nlp.OverrideEngine,
	cascade *respond.Cascade,
	log *logrus.Logger,
) ChatService {
	return &chatService{
		conversations: conversations,
		store:         st,
		gate:          gate,
		filter:        filter,
		analyzer:      analyzer,
		overrides:     overrides,
		cascade:       cascade,
		log:           log,
	}
}

// HandleMessage runs the full pipeline: safety gate, domain filter, signal
// extraction, overrides, generation, persistence. A panic anywhere inside the
// pipeline degrades to an apologetic reply instead of a 500.
func (s *chatService) HandleMessage(ctx context.Context, ownerID, conversationID, text string) (result *ChatResult, err error) {
	const op = "ChatService.HandleMessage"

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "message is required", nil)
	}
	if len(text) > maxMessageLength {
		return nil, utils.E(utils.CodeInvalidArgument, op, "message too long", nil)
	}

	conv, cerr := s.conversations.Get(ctx, ownerID, conversationID)
	if cerr != nil {
		return nil, cerr
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(logrus.Fields{
				"conversation_id": conversationID,
				"panic":           r,
			}).Error("message pipeline panicked")
			result, err = s.degrade(ctx, conv, text), nil
		}
	}()

	if !s.gate.IsSafe(text) {
		return s.respondWithout(ctx, conv, text, unsafeReply, "safety", &models.Analysis{Unsafe: true}), nil
	}
	if !s.filter.IsMentalHealthRelated(text) && !s.filter.ContainsCrisisLanguage(text) {
		return s.respondWithout(ctx, conv, text, s.filter.RedirectionMessage(), "filter", &models.Analysis{OffTopic: true}), nil
	}

	analysis := s.analyzer.Analyze(ctx, text)
	history := s.store.Context(conv)
	s.overrides.Apply(analysis, history, text)

	userMsg := s.store.AddMessage(conv, models.RoleUser, text, &models.MessageMetadata{Analysis: analysis})

	reply, source := s.cascade.Respond(ctx, respond.Request{
		Input:     text,
		Intent:    analysis.Intent.Label,
		Sentiment: analysis.Sentiment.Label,
		Emotion:   analysis.Emotion,
		Style:     conv.Profile.PreferredStyle,
		History:   history,
	})

	s.store.AddMessage(conv, models.RoleSystem, reply, &models.MessageMetadata{
		Generation: &models.Generation{Source: source, Intent: &analysis.Intent},
	})

	if serr := s.store.Save(ctx, conv); serr != nil {
		s.log.WithError(serr).WithField("conversation_id", conv.ID).Error("conversation save failed")
	}

	return &ChatResult{
		ConversationID: conv.ID,
		MessageID:      userMsg.ID,
		Reply:          reply,
		Source:         source,
		Analysis:       analysis,
		Profile:        &conv.Profile,
		Timestamp:      time.Now().UTC(),
	}, nil
}

func (s *chatService) HandleEdit(ctx context.Context, ownerID, conversationID, messageID, text string) error {
	const op = "ChatService.HandleEdit"

	text = strings.TrimSpace(text)
	if text == "" {
		return utils.E(utils.CodeInvalidArgument, op, "message is required", nil)
	}

	conv, err := s.conversations.Get(ctx, ownerID, conversationID)
	if err != nil {
		return err
	}
	if err := s.store.EditMessage(conv, messageID, text); err != nil {
		return err
	}
	return s.store.Save(ctx, conv)
}

func (s *chatService) HandleDelete(ctx context.Context, ownerID, conversationID, messageID string) error {
	conv, err := s.conversations.Get(ctx, ownerID, conversationID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteMessage(conv, messageID); err != nil {
		return err
	}
	return s.store.Save(ctx, conv)
}

// respondWithout handles messages stopped before extraction: the exchange is
// still recorded, with the gate outcome in place of an analysis.
func (s *chatService) respondWithout(ctx context.Context, conv *models.Conversation, text, reply, source string, analysis *models.Analysis) *ChatResult {
	userMsg := s.store.AddMessage(conv, models.RoleUser, text, &models.MessageMetadata{Analysis: analysis})
	s.store.AddMessage(conv, models.RoleSystem, reply, &models.MessageMetadata{
		Generation: &models.Generation{Source: source},
	})

	if err := s.store.Save(ctx, conv); err != nil {
		s.log.WithError(err).WithField("conversation_id", conv.ID).Error("conversation save failed")
	}

	return &ChatResult{
		ConversationID: conv.ID,
		MessageID:      userMsg.ID,
		Reply:          reply,
		Source:         source,
		Analysis:       analysis,
		Profile:        &conv.Profile,
		Timestamp:      time.Now().UTC(),
	}
}

// degrade is the panic path: record the user turn and an apology, flag the
// generation as an error, and keep the conversation usable.
func (s *chatService) degrade(ctx context.Context, conv *models.Conversation, text string) *ChatResult {
	userMsg := s.store.AddMessage(conv, models.RoleUser, text, nil)
	s.store.AddMessage(conv, models.RoleSystem, errorReply, &models.MessageMetadata{
		Generation: &models.Generation{Source: "error", Error: true},
	})

	if err := s.store.Save(ctx, conv); err != nil {
		s.log.WithError(err).WithField("conversation_id", conv.ID).Error("conversation save failed")
	}

	return &ChatResult{
		ConversationID: conv.ID,
		MessageID:      userMsg.ID,
		Reply:          errorReply,
		Source:         "error",
		Profile:        &conv.Profile,
		Timestamp:      time.Now().UTC(),
	}
}
