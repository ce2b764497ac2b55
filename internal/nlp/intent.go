package nlp

import (
	"strings"

	"github.com/neuralease/neuralease/internal/models"
)

var infoSeekingStarters = []string{"what is", "how does", "why do", "when can", "where"}

// ClassifyIntent is rule-based only, evaluated in strict priority order:
// first match wins. Every result carries a confidence and the "keyword"
// source tag.
func ClassifyIntent(text string) models.Classification {
	lower := strings.ToLower(text)

	switch {
	case hasGreeting(lower):
		return models.Classification{Label: models.IntentGreeting, Confidence: 0.9, Source: "keyword"}
	case containsAny(lower, copingKeywords):
		return models.Classification{Label: models.IntentCoping, Confidence: 0.9, Source: "keyword"}
	case containsAny(lower, emotionalKeywords) || containsAny(lower, griefKeywords):
		return models.Classification{Label: models.IntentEmotionalSupport, Confidence: 0.9, Source: "keyword"}
	case strings.Contains(lower, "crisis") || strings.Contains(lower, "urgent"):
		return models.Classification{Label: models.IntentCrisis, Confidence: 0.9, Source: "keyword"}
	case containsAny(lower, infoSeekingStarters):
		return models.Classification{Label: models.IntentSeekingInfo, Confidence: 0.8, Source: "keyword"}
	case strings.Contains(lower, "resource") || strings.Contains(lower, "referral") || strings.Contains(lower, "help with"):
		return models.Classification{Label: models.IntentResources, Confidence: 0.8, Source: "keyword"}
	case containsAny(lower, symptomKeywords):
		return models.Classification{Label: models.IntentPhysicalSymptom, Confidence: 0.8, Source: "keyword"}
	}
	return models.Classification{Label: models.IntentGeneral, Confidence: 0.5, Source: "keyword"}
}

// hasGreeting matches greeting vocabulary on word boundaries: "hi" must not
// fire inside "this".
func hasGreeting(lower string) bool {
	words := splitWords(lower)
	for _, kw := range greetingKeywords {
		if strings.Contains(kw, " ") {
			if strings.Contains(lower, kw) {
				return true
			}
			continue
		}
		for _, w := range words {
			if w == kw {
				return true
			}
		}
	}
	return false
}

// IsQuestion reports whether the text reads as a question.
func IsQuestion(text string) bool {
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, "?") {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, w := range questionStarters {
		if strings.HasPrefix(lower, w) {
			return true
		}
	}
	return false
}
