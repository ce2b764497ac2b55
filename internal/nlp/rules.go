package nlp

import (
	"strings"

	"github.com/neuralease/neuralease/internal/models"
)

// RuleSentiment scores positive against negative lexicon hits. Confidence
// grows with the margin between the two counts, capped at 0.9; ties are
// neutral.
func RuleSentiment(text string) models.Classification {
	lower := strings.ToLower(text)

	negative := countHits(lower, griefKeywords) +
		countHits(lower, sadnessKeywords) +
		countHits(lower, anxietyKeywords) +
		countHits(lower, angerKeywords)
	positive := countHits(lower, joyKeywords)

	switch {
	case negative > positive:
		return models.Classification{
			Label:      models.SentimentNegative,
			Confidence: marginConfidence(negative - positive),
			Source:     "rule_based",
		}
	case positive > negative:
		return models.Classification{
			Label:      models.SentimentPositive,
			Confidence: marginConfidence(positive - negative),
			Source:     "rule_based",
		}
	}
	return models.Classification{Label: models.SentimentNeutral, Confidence: 0.6, Source: "rule_based"}
}

func marginConfidence(margin int) float64 {
	c := 0.5 + float64(margin)*0.1
	if c > 0.9 {
		c = 0.9
	}
	return c
}

// RuleEmotion picks the emotion category with the most lexicon hits. Grief
// vocabulary wins outright; a scoreless text is "none".
func RuleEmotion(text string) string {
	lower := strings.ToLower(text)

	if containsAny(lower, griefKeywords) {
		return models.EmotionGrief
	}

	counts := map[string]int{
		models.EmotionSadness: countHits(lower, sadnessKeywords),
		models.EmotionFear:    countHits(lower, anxietyKeywords),
		models.EmotionAnger:   countHits(lower, angerKeywords),
		models.EmotionJoy:     countHits(lower, joyKeywords),
	}

	best, bestCount := models.EmotionNone, 0
	for _, label := range []string{models.EmotionSadness, models.EmotionFear, models.EmotionAnger, models.EmotionJoy} {
		if counts[label] > bestCount {
			best, bestCount = label, counts[label]
		}
	}
	return best
}
