package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neuralease/neuralease/internal/models"
)

func TestClassifyIntentPriorityOrder(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLabel string
		wantScore float64
	}{
		{"greeting", "Hi there!", models.IntentGreeting, 0.9},
		{"coping", "what are some ways to manage my stress", models.IntentCoping, 0.9},
		{"emotional support", "I feel so depressed lately", models.IntentEmotionalSupport, 0.9},
		{"grief routes to support", "my father passed away last month", models.IntentEmotionalSupport, 0.9},
		{"crisis keyword", "this is an urgent situation", models.IntentCrisis, 0.9},
		{"seeking information", "what is serotonin and how does it work", models.IntentSeekingInfo, 0.8},
		{"resources", "can you point me to a resource for therapy", models.IntentResources, 0.8},
		{"physical symptom", "I have a constant headache", models.IntentPhysicalSymptom, 0.8},
		{"general fallback", "just checking in today", models.IntentGeneral, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyIntent(tt.text)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.Equal(t, tt.wantScore, got.Confidence)
			assert.Equal(t, "keyword", got.Source)
		})
	}
}

func TestClassifyIntentGreetingBeatsCoping(t *testing.T) {
	// Priority order: a greeting with coping vocabulary still greets.
	got := ClassifyIntent("hello, I need ways to cope")
	assert.Equal(t, models.IntentGreeting, got.Label)
}

func TestIsQuestion(t *testing.T) {
	assert.True(t, IsQuestion("Is this normal?"))
	assert.True(t, IsQuestion("what happens in the brain during panic"))
	assert.True(t, IsQuestion("  How do I stop worrying  "))
	assert.False(t, IsQuestion("I had a long day."))
	assert.False(t, IsQuestion(""))
}
