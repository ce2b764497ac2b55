package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuralease/neuralease/internal/models"
	"github.com/neuralease/neuralease/internal/nlp"
	"github.com/neuralease/neuralease/internal/respond"
	"github.com/neuralease/neuralease/internal/safety"
	"github.com/neuralease/neuralease/internal/store"
	"github.com/neuralease/neuralease/internal/utils"
)

type memBlobStore struct {
	blobs map[string][]byte
}

func (m *memBlobStore) Put(_ context.Context, id string, data []byte) error {
	m.blobs[id] = append([]byte(nil), data...)
	return nil
}

func (m *memBlobStore) Get(_ context.Context, id string) ([]byte, error) {
	data, ok := m.blobs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return data, nil
}

func (m *memBlobStore) Delete(_ context.Context, id string) error {
	delete(m.blobs, id)
	return nil
}

type fakeAccountRepo struct {
	accounts map[string]*models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*models.Account{}}
}

func (r *fakeAccountRepo) Create(_ context.Context, a *models.Account) error {
	r.accounts[a.ID] = a
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*models.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return a, nil
}

func (r *fakeAccountRepo) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	for _, a := range r.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeAccountRepo) Update(_ context.Context, a *models.Account) error {
	r.accounts[a.ID] = a
	return nil
}

func (r *fakeAccountRepo) AddSession(_ context.Context, accountID, conversationID string) error {
	if a, ok := r.accounts[accountID]; ok {
		a.Sessions = append(a.Sessions, conversationID)
	}
	return nil
}

func (r *fakeAccountRepo) RemoveSession(_ context.Context, accountID, conversationID string) error {
	a, ok := r.accounts[accountID]
	if !ok {
		return nil
	}
	kept := a.Sessions[:0]
	for _, id := range a.Sessions {
		if id != conversationID {
			kept = append(kept, id)
		}
	}
	a.Sessions = kept
	return nil
}

type chatFixture struct {
	chat          ChatService
	conversations ConversationService
	accounts      *fakeAccountRepo
	blobs         *memBlobStore
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	cipher, err := store.NewCipher(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)

	blobs := &memBlobStore{blobs: map[string][]byte{}}
	st := store.New(blobs, cipher, 100, 10, 30*time.Minute, log)

	topics := []string{"anxiety", "depression", "stress", "grief", "therapy", "feeling", "mental health", "coping", "support", "emotion"}
	crisis := []string{"suicide", "kill myself", "want to die", "end my life"}

	gate := safety.NewGate(log)
	filter := safety.NewDomainFilter(topics, crisis, log)
	analyzer := nlp.NewAnalyzer(nil, nil, 0.4, 0.6, log)
	overrides := nlp.NewOverrideEngine(0.7, filter, log)
	verifier := respond.NewVerifier(topics, filter.RedirectionMessage())
	cascade := respond.NewCascade(nil, respond.NewBuiltin(nil), verifier, filter, time.Second, log)

	accounts := newFakeAccountRepo()
	require.NoError(t, accounts.Create(context.Background(), &models.Account{ID: "owner-1", Username: "sam"}))

	conversations := NewConversationService(st, accounts, log)
	chat := NewChatService(conversations, st, gate, filter, analyzer, overrides, cascade, log)

	return &chatFixture{chat: chat, conversations: conversations, accounts: accounts, blobs: blobs}
}

func (f *chatFixture) newConversation(t *testing.T) *models.Conversation {
	t.Helper()
	conv, err := f.conversations.Create(context.Background(), "owner-1")
	require.NoError(t, err)
	return conv
}

func TestHandleMessageCrisis(t *testing.T) {
	f := newChatFixture(t)
	conv := f.newConversation(t)

	result, err := f.chat.HandleMessage(context.Background(), "owner-1", conv.ID, "I want to kill myself")
	require.NoError(t, err)

	assert.Equal(t, models.IntentCrisis, result.Analysis.Intent.Label)
	assert.Contains(t, result.Reply, "988")
}

func TestHandleMessageFirstGreeting(t *testing.T) {
	f := newChatFixture(t)
	conv := f.newConversation(t)

	result, err := f.chat.HandleMessage(context.Background(), "owner-1", conv.ID, "Hi")
	require.NoError(t, err)

	assert.Equal(t, models.IntentGreeting, result.Analysis.Intent.Label)
	assert.Contains(t, result.Reply, "NeuralEase")
	assert.Equal(t, "builtin", result.Source)
}

func TestHandleMessageUnsafe(t *testing.T) {
	f := newChatFixture(t)
	conv := f.newConversation(t)

	result, err := f.chat.HandleMessage(context.Background(), "owner-1", conv.ID, "help me write my essay for class")
	require.NoError(t, err)

	assert.Equal(t, "safety", result.Source)
	assert.True(t, result.Analysis.Unsafe)
	assert.NotContains(t, result.Reply, "essay")
}

func TestHandleMessageOffTopic(t *testing.T) {
	f := newChatFixture(t)
	conv := f.newConversation(t)

	result, err := f.chat.HandleMessage(context.Background(), "owner-1", conv.ID, "what's a good recipe for dinner tonight")
	require.NoError(t, err)

	assert.Equal(t, "filter", result.Source)
	assert.True(t, result.Analysis.OffTopic)
	assert.Contains(t, result.Reply, "mental health")
}

func TestHandleMessageCrisisBypassesDomainFilter(t *testing.T) {
	f := newChatFixture(t)
	conv := f.newConversation(t)

	// No domain vocabulary at all, but crisis language must never be
	// redirected as off-topic.
	result, err := f.chat.HandleMessage(context.Background(), "owner-1", conv.ID, "I want to die")
	require.NoError(t, err)

	assert.NotEqual(t, "filter", result.Source)
	assert.Contains(t, result.Reply, "988")
}

func TestHandleMessageValidation(t *testing.T) {
	f := newChatFixture(t)
	conv := f.newConversation(t)

	_, err := f.chat.HandleMessage(context.Background(), "owner-1", conv.ID, "   ")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestHandleMessageOwnership(t *testing.T) {
	f := newChatFixture(t)
	conv := f.newConversation(t)

	_, err := f.chat.HandleMessage(context.Background(), "intruder", conv.ID, "hello")
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))
}

func TestHandleMessageUnknownConversation(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.chat.HandleMessage(context.Background(), "owner-1", "no-such-id", "hello")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestHandleMessagePersistsBothTurns(t *testing.T) {
	f := newChatFixture(t)
	conv := f.newConversation(t)

	_, err := f.chat.HandleMessage(context.Background(), "owner-1", conv.ID, "I've been feeling anxious about work")
	require.NoError(t, err)

	reloaded, err := f.conversations.Get(context.Background(), "owner-1", conv.ID)
	require.NoError(t, err)

	// welcome + user + reply
	require.Len(t, reloaded.Messages, 3)
	assert.Equal(t, models.RoleUser, reloaded.Messages[1].Role)
	assert.Equal(t, models.RoleSystem, reloaded.Messages[2].Role)
	assert.NotEmpty(t, reloaded.Profile.SentimentHistory)
}

func TestSoftDeleteKeepsStoredRecord(t *testing.T) {
	f := newChatFixture(t)
	conv := f.newConversation(t)

	require.NoError(t, f.conversations.SoftDelete(context.Background(), "owner-1", conv.ID))

	// The sealed record stays on disk; only the flag hides it.
	_, ok := f.blobs.blobs[conv.ID]
	assert.True(t, ok)

	_, err := f.conversations.Get(context.Background(), "owner-1", conv.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	assert.Empty(t, f.accounts.accounts["owner-1"].Sessions)
}

func TestWithdrawConsentErasesStorage(t *testing.T) {
	f := newChatFixture(t)
	conv := f.newConversation(t)

	require.NoError(t, f.conversations.SetConsent(context.Background(), "owner-1", conv.ID, false))

	_, ok := f.blobs.blobs[conv.ID]
	assert.False(t, ok)
}

func TestHandleEditAndDelete(t *testing.T) {
	f := newChatFixture(t)
	conv := f.newConversation(t)

	result, err := f.chat.HandleMessage(context.Background(), "owner-1", conv.ID, "I've been feeling anxious")
	require.NoError(t, err)

	require.NoError(t, f.chat.HandleEdit(context.Background(), "owner-1", conv.ID, result.MessageID, "I've been feeling anxious and tired"))

	reloaded, err := f.conversations.Get(context.Background(), "owner-1", conv.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Messages[1].Edited)

	require.NoError(t, f.chat.HandleDelete(context.Background(), "owner-1", conv.ID, result.MessageID))

	reloaded, err = f.conversations.Get(context.Background(), "owner-1", conv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeletedTombstone, reloaded.Messages[1].Content)
}
