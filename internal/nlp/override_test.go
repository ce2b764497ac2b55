package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neuralease/neuralease/internal/models"
	"github.com/neuralease/neuralease/internal/safety"
)

func testFilter() *safety.DomainFilter {
	topics := []string{"anxiety", "depression", "stress", "mental health"}
	crisis := []string{"suicide", "kill myself", "want to die"}
	return safety.NewDomainFilter(topics, crisis, testLogger())
}

func testEngine() *OverrideEngine {
	return NewOverrideEngine(0.7, testFilter(), testLogger())
}

func probeContext(probe string) []models.Message {
	return []models.Message{
		{Role: models.RoleUser, Content: "I had a strange week"},
		{Role: models.RoleSystem, Content: probe},
	}
}

func TestOverrideGriefForcesEmotionalSupport(t *testing.T) {
	e := testEngine()
	analysis := &models.Analysis{
		Intent:    models.Classification{Label: models.IntentGeneral, Confidence: 0.5, Source: "keyword"},
		Sentiment: models.Classification{Label: models.SentimentNeutral, Confidence: 0.5, Source: "default"},
	}

	e.Apply(analysis, nil, "my best friend died last year")

	assert.Equal(t, models.IntentEmotionalSupport, analysis.Intent.Label)
	assert.Equal(t, models.EmotionGrief, analysis.Emotion)
	assert.Equal(t, models.SentimentNegative, analysis.Sentiment.Label)
	assert.InDelta(t, 0.9, analysis.Sentiment.Confidence, 1e-9)
}

func TestOverrideProbeFollowUp(t *testing.T) {
	e := testEngine()
	analysis := &models.Analysis{
		Intent:    models.Classification{Label: models.IntentGeneral, Confidence: 0.5, Source: "keyword"},
		Sentiment: models.Classification{Label: models.SentimentNeutral, Confidence: 0.5, Source: "default"},
	}

	e.Apply(analysis, probeContext("I hear you. Would you like to tell me more?"), "everything feels hopeless honestly")

	assert.Equal(t, models.IntentEmotionalSupport, analysis.Intent.Label)
	assert.Equal(t, models.SentimentNegative, analysis.Sentiment.Label)
}

func TestOverrideProbeIgnoresNeutralReply(t *testing.T) {
	e := testEngine()
	analysis := &models.Analysis{
		Intent:    models.Classification{Label: models.IntentGeneral, Confidence: 0.5, Source: "keyword"},
		Sentiment: models.Classification{Label: models.SentimentNeutral, Confidence: 0.5, Source: "default"},
	}

	e.Apply(analysis, probeContext("Would you like to tell me more?"), "work is fine, the project shipped")

	assert.Equal(t, models.IntentGeneral, analysis.Intent.Label)
	assert.Equal(t, models.SentimentNeutral, analysis.Sentiment.Label)
}

func TestOverrideConfidenceFloorDemotesToGeneral(t *testing.T) {
	e := testEngine()
	analysis := &models.Analysis{
		Intent: models.Classification{Label: models.IntentPersonalStory, Confidence: 0.6, Source: "keyword"},
	}

	e.Apply(analysis, nil, "a thing happened on the train")

	assert.Equal(t, models.IntentGeneral, analysis.Intent.Label)
	assert.Equal(t, "override_floor", analysis.Intent.Source)
}

func TestOverrideCrisisRunsLast(t *testing.T) {
	e := testEngine()

	// Low-confidence intent plus crisis language: the crisis rule must win
	// over the demotion that fired before it.
	analysis := &models.Analysis{
		Intent: models.Classification{Label: models.IntentGeneral, Confidence: 0.5, Source: "keyword"},
	}
	e.Apply(analysis, nil, "I just want to die")

	assert.Equal(t, models.IntentCrisis, analysis.Intent.Label)
	assert.Equal(t, "override_crisis", analysis.Intent.Source)

	// Crisis also beats the grief override.
	analysis = &models.Analysis{
		Intent: models.Classification{Label: models.IntentEmotionalSupport, Confidence: 0.9, Source: "keyword"},
	}
	e.Apply(analysis, nil, "since she died I want to die too")

	assert.Equal(t, models.IntentCrisis, analysis.Intent.Label)
	assert.Equal(t, models.EmotionGrief, analysis.Emotion)
}
