package respond

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuralease/neuralease/internal/models"
	"github.com/neuralease/neuralease/internal/safety"
)

type fakeProvider struct {
	name  string
	reply string
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(context.Context, Prompt) (string, error) {
	f.calls++
	return f.reply, f.err
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testFilter() *safety.DomainFilter {
	topics := []string{"anxiety", "depression", "stress", "therapy", "feeling", "mental health", "coping", "support"}
	crisis := []string{"suicide", "kill myself", "want to die"}
	return safety.NewDomainFilter(topics, crisis, testLogger())
}

func newTestCascade(providers ...Provider) *Cascade {
	filter := testFilter()
	verifier := NewVerifier([]string{"anxiety", "depression", "stress", "feeling", "mental health", "coping", "support"}, filter.RedirectionMessage())
	return NewCascade(providers, NewBuiltin(nil), verifier, filter, time.Second, testLogger())
}

func TestCascadeUsesPrimaryProvider(t *testing.T) {
	primary := &fakeProvider{name: "gemini", reply: "It sounds like your anxiety and stress have been heavy. I'm here to support you."}
	secondary := &fakeProvider{name: "openai", reply: "unused"}
	c := newTestCascade(primary, secondary)

	reply, source := c.Respond(context.Background(), Request{Input: "my anxiety is bad", Intent: models.IntentEmotionalSupport})

	assert.Equal(t, "gemini", source)
	assert.Contains(t, reply, "anxiety")
	assert.Zero(t, secondary.calls)
}

func TestCascadeFallsThroughToSecondary(t *testing.T) {
	primary := &fakeProvider{name: "gemini", err: errors.New("rpc unavailable")}
	secondary := &fakeProvider{name: "openai", reply: "Managing stress and anxiety takes practice. Let's work on coping together."}
	c := newTestCascade(primary, secondary)

	reply, source := c.Respond(context.Background(), Request{Input: "my anxiety is bad", Intent: models.IntentCoping})

	assert.Equal(t, "openai", source)
	assert.NotEmpty(t, reply)
	assert.Equal(t, 1, primary.calls)
}

func TestCascadeBuiltinWhenAllTiersFail(t *testing.T) {
	primary := &fakeProvider{name: "gemini", err: errors.New("rpc unavailable")}
	secondary := &fakeProvider{name: "openai", err: errors.New("429")}
	c := newTestCascade(primary, secondary)

	reply, source := c.Respond(context.Background(), Request{Input: "I feel low", Intent: models.IntentEmotionalSupport})

	assert.Equal(t, "builtin", source)
	assert.NotEmpty(t, reply)
}

func TestCascadeNoProvidersStillResponds(t *testing.T) {
	c := newTestCascade()

	reply, source := c.Respond(context.Background(), Request{Input: "hello", Intent: models.IntentGreeting})

	assert.Equal(t, "builtin", source)
	assert.NotEmpty(t, reply)
}

func TestCascadeRedirectsOffTopicReply(t *testing.T) {
	drifting := &fakeProvider{name: "gemini", reply: "The stock market rallied today and the basketball playoffs were exciting. Many investors are optimistic about tech and crypto, while sports fans celebrate. Here is a long discussion about none of your concerns at all whatsoever in this reply."}
	c := newTestCascade(drifting)

	reply, source := c.Respond(context.Background(), Request{Input: "I feel stressed", Intent: models.IntentGeneral})

	assert.Equal(t, "gemini", source)
	assert.Contains(t, reply, "mental health")
}

func TestCascadeAppendsCrisisResources(t *testing.T) {
	primary := &fakeProvider{name: "gemini", reply: "I'm really glad you told me how you're feeling. That took courage and you deserve support."}
	c := newTestCascade(primary)

	reply, _ := c.Respond(context.Background(), Request{Input: "I want to die", Intent: models.IntentCrisis})

	require.Contains(t, reply, "988")
}

func TestCascadeDoesNotDuplicateHotline(t *testing.T) {
	primary := &fakeProvider{name: "gemini", reply: "Please call or text 988 right away. You deserve support, and your feelings matter to me."}
	c := newTestCascade(primary)

	reply, _ := c.Respond(context.Background(), Request{Input: "I want to die", Intent: models.IntentCrisis})

	assert.Equal(t, 1, strings.Count(reply, "988"))
}

func TestCascadeIntroducesItselfOnFirstGreeting(t *testing.T) {
	primary := &fakeProvider{name: "gemini", reply: "Hello! How are you feeling today? I'd love to support you."}
	c := newTestCascade(primary)

	history := []models.Message{{Role: models.RoleSystem, Content: "welcome"}}
	reply, _ := c.Respond(context.Background(), Request{Input: "hi", Intent: models.IntentGreeting, History: history})

	assert.Contains(t, reply, "NeuralEase")
}

func TestCascadeTruncatesLongReplies(t *testing.T) {
	long := strings.Repeat("feeling stress and anxiety support ", 40)
	primary := &fakeProvider{name: "gemini", reply: long}
	c := newTestCascade(primary)

	reply, _ := c.Respond(context.Background(), Request{Input: "I feel stressed", Intent: models.IntentGeneral})

	assert.LessOrEqual(t, len(reply), 500)
	assert.True(t, strings.HasSuffix(reply, "..."))
}
