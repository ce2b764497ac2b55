package respond

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neuralease/neuralease/internal/models"
)

func TestBuiltinNeverEmpty(t *testing.T) {
	b := NewBuiltin(nil)

	intents := []string{
		models.IntentGreeting, models.IntentSeekingInfo, models.IntentEmotionalSupport,
		models.IntentCoping, models.IntentResources, models.IntentCrisis,
		models.IntentPhysicalSymptom, models.IntentPersonalStory, models.IntentGeneral,
		"something_unknown",
	}
	for _, intent := range intents {
		assert.NotEmpty(t, b.Respond(Request{Intent: intent}), intent)
	}
}

func TestBuiltinPersonalStoryAcknowledges(t *testing.T) {
	b := NewBuiltin(nil)

	reply := b.Respond(Request{Intent: models.IntentPersonalStory})
	assert.Contains(t, b.responses[models.IntentPersonalStory], reply)
}

func TestBuiltinCategoryPrecedence(t *testing.T) {
	b := NewBuiltin(nil)

	// Grief upgrades an unknown intent to emotional support.
	reply := b.Respond(Request{Intent: "something_unknown", Emotion: models.EmotionGrief})
	assert.Contains(t, NewBuiltin(nil).responses[models.IntentEmotionalSupport], reply)

	// Crisis outranks grief.
	reply = b.Respond(Request{Intent: models.IntentCrisis, Emotion: models.EmotionGrief})
	assert.Contains(t, reply, "988")
}

func TestBuiltinGreetsOnOpeningTurnOnly(t *testing.T) {
	b := NewBuiltin(nil)

	opening := Request{
		Intent:  models.IntentGreeting,
		History: []models.Message{{Role: models.RoleSystem, Content: "welcome"}},
	}
	assert.Contains(t, b.Respond(opening), "NeuralEase")

	later := Request{
		Intent:  models.IntentGreeting,
		Emotion: models.EmotionGrief,
		History: []models.Message{
			{Role: models.RoleSystem, Content: "welcome"},
			{Role: models.RoleUser, Content: "hi"},
			{Role: models.RoleSystem, Content: "hello again"},
			{Role: models.RoleUser, Content: "my dog died"},
			{Role: models.RoleSystem, Content: "I'm so sorry"},
		},
	}
	reply := b.Respond(later)
	assert.Contains(t, NewBuiltin(nil).responses[models.IntentEmotionalSupport], reply)
}
