package nlp

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/neuralease/neuralease/internal/models"
	"github.com/neuralease/neuralease/internal/safety"
)

var probePhrases = []string{"tell me more", "how do you feel", "share more"}

// OverrideEngine reconciles the raw analysis against conversational context.
// Rules run in a fixed order and the crisis check always runs last, so crisis
// language can never be masked by an earlier rule.
type OverrideEngine struct {
	confidenceFloor float64
	filter          *safety.DomainFilter
	log             *logrus.Logger
}

func NewOverrideEngine(confidenceFloor float64, filter *safety.DomainFilter, log *logrus.Logger) *OverrideEngine {
	return &OverrideEngine{confidenceFloor: confidenceFloor, filter: filter, log: log}
}

// Apply mutates analysis in place. context is the conversation history before
// the current message was appended.
func (e *OverrideEngine) Apply(analysis *models.Analysis, context []models.Message, text string) {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, griefKeywords):
		analysis.Intent = models.Classification{Label: models.IntentEmotionalSupport, Confidence: 0.9, Source: "override_grief"}
		analysis.Emotion = models.EmotionGrief
		analysis.EmotionSource = "override_grief"
		analysis.Sentiment = models.Classification{Label: models.SentimentNegative, Confidence: 0.9, Source: "override_grief"}
	case containsAny(lower, emotionalKeywords):
		analysis.Intent = models.Classification{Label: models.IntentEmotionalSupport, Confidence: 0.9, Source: "override_emotional"}
		analysis.Sentiment = models.Classification{Label: models.SentimentNegative, Confidence: 0.85, Source: "override_emotional"}
	case e.probeFollowUp(context, lower):
		analysis.Intent = models.Classification{Label: models.IntentEmotionalSupport, Confidence: 0.9, Source: "override_probe"}
		analysis.Sentiment = models.Classification{Label: models.SentimentNegative, Confidence: 0.85, Source: "override_probe"}
	case analysis.Intent.Confidence < e.confidenceFloor:
		e.log.WithFields(logrus.Fields{
			"intent":     analysis.Intent.Label,
			"confidence": analysis.Intent.Confidence,
		}).Debug("intent below confidence floor, demoting to general")
		analysis.Intent = models.Classification{Label: models.IntentGeneral, Confidence: analysis.Intent.Confidence, Source: "override_floor"}
	}

	// Unconditional and last.
	if e.filter.ContainsCrisisLanguage(text) {
		analysis.Intent = models.Classification{Label: models.IntentCrisis, Confidence: 1.0, Source: "override_crisis"}
	}
}

// probeFollowUp reports whether the assistant's most recent turn invited the
// user to elaborate and the current message reads as an emotional reply.
func (e *OverrideEngine) probeFollowUp(context []models.Message, lower string) bool {
	var lastSystem string
	for i := len(context) - 1; i >= 0; i-- {
		if context[i].Role == models.RoleSystem {
			lastSystem = strings.ToLower(context[i].Content)
			break
		}
	}
	if lastSystem == "" || !containsAny(lastSystem, probePhrases) {
		return false
	}
	return containsAny(lower, emotionalKeywords) ||
		containsAny(lower, sadnessKeywords) ||
		containsAny(lower, anxietyKeywords) ||
		containsAny(lower, angerKeywords)
}
