package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/neuralease/neuralease/internal/models"
	"github.com/neuralease/neuralease/internal/utils"
)

const titleWordCutoff = 2

// Store manages conversation lifecycle on top of a BlobStore. Nothing is
// cached between requests: every operation loads the blob, mutates the
// in-memory conversation, and (consent permitting) writes it back. Concurrent
// saves of the same conversation are last-write-wins.
type Store struct {
	blobs         BlobStore
	cipher        *Cipher
	maxLen        int
	contextWindow int
	expiry        time.Duration
	log           *logrus.Logger
}

func New(blobs BlobStore, cipher *Cipher, maxLen, contextWindow int, expiry time.Duration, log *logrus.Logger) *Store {
	return &Store{
		blobs:         blobs,
		cipher:        cipher,
		maxLen:        maxLen,
		contextWindow: contextWindow,
		expiry:        expiry,
		log:           log,
	}
}

// NewConversation builds a fresh conversation owned by ownerID. It is not
// persisted until Save is called with consent given.
func (s *Store) NewConversation(ownerID string) *models.Conversation {
	now := time.Now().UTC()
	return &models.Conversation{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		Title:           models.DefaultTitle,
		CreatedAt:       now,
		LastInteraction: now,
		Messages:        []models.Message{},
		Profile:         models.DefaultProfile(),
	}
}

// AddMessage appends a message, derives the title from the first user turn,
// folds user analysis into the profile, and evicts the oldest message when
// the log exceeds its cap.
func (s *Store) AddMessage(conv *models.Conversation, role models.Role, content string, meta *models.MessageMetadata) models.Message {
	msg := models.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		Metadata:  meta,
	}

	if role == models.RoleUser && conv.Title == models.DefaultTitle {
		conv.Title = deriveTitle(content)
	}
	if role == models.RoleUser && meta != nil && meta.Analysis != nil {
		a := meta.Analysis
		conv.Profile.RecordEmotion(a.Emotion)
		conv.Profile.RecordSentiment(a.Sentiment.Label)
		conv.Profile.RecordConcerns(a.Keywords)
	}

	conv.Messages = append(conv.Messages, msg)
	if len(conv.Messages) > s.maxLen {
		conv.Messages = conv.Messages[len(conv.Messages)-s.maxLen:]
	}
	conv.LastInteraction = msg.CreatedAt
	return msg
}

// EditMessage rewrites a user message in place, keeping the previous content
// in the edit history. System messages cannot be edited.
func (s *Store) EditMessage(conv *models.Conversation, messageID, content string) error {
	const op = "Store.EditMessage"

	for i := range conv.Messages {
		msg := &conv.Messages[i]
		if msg.ID != messageID {
			continue
		}
		if msg.Role != models.RoleUser {
			return utils.E(utils.CodeInvalidArgument, op, "only user messages can be edited", nil)
		}
		if msg.Deleted {
			return utils.E(utils.CodeInvalidArgument, op, "cannot edit a deleted message", nil)
		}
		msg.EditHistory = append(msg.EditHistory, models.EditRecord{
			PreviousContent: msg.Content,
			EditedAt:        time.Now().UTC(),
		})
		msg.Content = content
		msg.Edited = true
		conv.LastInteraction = time.Now().UTC()
		return nil
	}
	return utils.E(utils.CodeNotFound, op, "message not found", utils.ErrNotFound)
}

// DeleteMessage tombstones a message: the entry stays in the log so ordering
// survives, but its content is replaced and its metadata dropped.
func (s *Store) DeleteMessage(conv *models.Conversation, messageID string) error {
	const op = "Store.DeleteMessage"

	for i := range conv.Messages {
		msg := &conv.Messages[i]
		if msg.ID != messageID {
			continue
		}
		msg.Content = models.DeletedTombstone
		msg.Deleted = true
		msg.Metadata = nil
		msg.EditHistory = nil
		conv.LastInteraction = time.Now().UTC()
		return nil
	}
	return utils.E(utils.CodeNotFound, op, "message not found", utils.ErrNotFound)
}

// Context returns the trailing window of non-deleted messages used as
// generation history.
func (s *Store) Context(conv *models.Conversation) []models.Message {
	live := make([]models.Message, 0, len(conv.Messages))
	for _, msg := range conv.Messages {
		if !msg.Deleted {
			live = append(live, msg)
		}
	}
	if len(live) > s.contextWindow {
		live = live[len(live)-s.contextWindow:]
	}
	return live
}

// Save seals and writes the conversation. Without consent nothing touches
// storage and the conversation stays request-scoped.
func (s *Store) Save(ctx context.Context, conv *models.Conversation) error {
	const op = "Store.Save"

	if !conv.ConsentGiven {
		s.log.WithField("conversation_id", conv.ID).Debug("consent not given, skipping persistence")
		return nil
	}

	plaintext, err := json.Marshal(conv)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "marshal conversation", err)
	}
	sealed, err := s.cipher.Seal(plaintext)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "seal conversation", err)
	}
	if err := s.blobs.Put(ctx, conv.ID, sealed); err != nil {
		return utils.E(utils.CodeUnavailable, op, "write conversation blob", err)
	}
	return nil
}

// Load fetches and opens a conversation. The second return is false when the
// conversation is absent, unreadable, expired, or soft-deleted — callers then
// start fresh.
func (s *Store) Load(ctx context.Context, id string) (*models.Conversation, bool) {
	sealed, err := s.blobs.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, utils.ErrNotFound) {
			s.log.WithError(err).WithField("conversation_id", id).Warn("conversation blob fetch failed")
		}
		return nil, false
	}

	plaintext, err := s.cipher.Open(sealed)
	if err != nil {
		s.log.WithError(err).WithField("conversation_id", id).Warn("conversation blob failed authentication, discarding")
		return nil, false
	}

	var conv models.Conversation
	if err := json.Unmarshal(plaintext, &conv); err != nil {
		s.log.WithError(err).WithField("conversation_id", id).Warn("conversation blob corrupt, discarding")
		return nil, false
	}

	if conv.Deleted {
		return nil, false
	}
	if s.expiry > 0 && time.Since(conv.LastInteraction) > s.expiry {
		s.log.WithField("conversation_id", id).Info("conversation session expired")
		return nil, false
	}
	return &conv, true
}

// MarkDeleted soft-deletes the conversation: the flag is set and the sealed
// record is written back, so the blob stays in storage. Load refuses flagged
// conversations.
func (s *Store) MarkDeleted(ctx context.Context, conv *models.Conversation) error {
	conv.Deleted = true
	conv.LastInteraction = time.Now().UTC()
	return s.Save(ctx, conv)
}

// Erase removes the stored blob entirely. This is the consent-withdrawal
// path: once consent is gone the data must not remain at rest.
func (s *Store) Erase(ctx context.Context, conv *models.Conversation) error {
	const op = "Store.Erase"

	conv.Deleted = true
	conv.ConsentGiven = false
	if err := s.blobs.Delete(ctx, conv.ID); err != nil {
		return utils.E(utils.CodeUnavailable, op, "delete conversation blob", err)
	}
	return nil
}

// deriveTitle takes the opening words of the first user message. Short
// messages become the title verbatim.
func deriveTitle(content string) string {
	words := strings.Fields(content)
	if len(words) > titleWordCutoff {
		n := 4
		if n > len(words) {
			n = len(words)
		}
		return strings.Join(words[:n], " ") + "..."
	}
	return content
}
