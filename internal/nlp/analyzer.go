package nlp

import (
	"context"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/neuralease/neuralease/internal/models"
)

const topKeywords = 5

// Analyzer composes the per-axis strategies into one analysis pass. Remote
// classifier errors never propagate: each axis degrades independently to its
// rule-based path.
type Analyzer struct {
	sentiment Classifier // may be nil when no remote endpoint is configured
	emotion   Classifier

	sentimentThreshold float64
	emotionThreshold   float64

	log *logrus.Logger
}

func NewAnalyzer(sentiment, emotion Classifier, sentimentThreshold, emotionThreshold float64, log *logrus.Logger) *Analyzer {
	return &Analyzer{
		sentiment:          sentiment,
		emotion:            emotion,
		sentimentThreshold: sentimentThreshold,
		emotionThreshold:   emotionThreshold,
		log:                log,
	}
}

// NormalizeSentimentLabel maps star-rating labels onto the three-way
// sentiment space.
func NormalizeSentimentLabel(label string) string {
	switch label {
	case "1 star", "2 stars":
		return models.SentimentNegative
	case "3 stars":
		return models.SentimentNeutral
	}
	return models.SentimentPositive
}

func (a *Analyzer) Analyze(ctx context.Context, text string) *models.Analysis {
	lower := strings.ToLower(text)

	analysis := &models.Analysis{
		Intent:            ClassifyIntent(text),
		Sentiment:         a.analyzeSentiment(ctx, text, lower),
		Keywords:          ExtractKeywords(text, topKeywords),
		NeuroscienceTerms: detectNeuroscienceTerms(lower),
		IsQuestion:        IsQuestion(text),
	}
	analysis.Emotion, analysis.EmotionSource = a.analyzeEmotion(ctx, text, lower)

	// Keyword override layer: specific lexicons beat both the remote and
	// rule-based results on their axis.
	a.applySentimentOverrides(lower, analysis)
	a.applyEmotionOverrides(lower, analysis)

	a.log.WithFields(logrus.Fields{
		"intent":    analysis.Intent.Label,
		"sentiment": analysis.Sentiment.Label,
		"emotion":   analysis.Emotion,
	}).Debug("analysis complete")

	return analysis
}

func (a *Analyzer) analyzeSentiment(ctx context.Context, text, lower string) models.Classification {
	if a.sentiment == nil {
		return RuleSentiment(lower)
	}

	result, err := a.sentiment.Classify(ctx, text)
	if err != nil {
		a.log.WithError(err).Warn("remote sentiment failed, using rule-based fallback")
		return RuleSentiment(lower)
	}
	if result.Confidence < a.sentimentThreshold {
		return models.Classification{Label: models.SentimentNeutral, Confidence: 0.5, Source: "threshold_filter"}
	}
	return result
}

func (a *Analyzer) analyzeEmotion(ctx context.Context, text, lower string) (string, string) {
	if a.emotion == nil {
		return RuleEmotion(lower), "rule_based"
	}

	result, err := a.emotion.Classify(ctx, text)
	if err != nil {
		a.log.WithError(err).Warn("remote emotion failed, using rule-based fallback")
		return RuleEmotion(lower), "rule_based"
	}
	if result.Confidence <= a.emotionThreshold {
		return models.EmotionNone, "threshold_filter"
	}
	return strings.ToLower(result.Label), "remote"
}

func (a *Analyzer) applySentimentOverrides(lower string, analysis *models.Analysis) {
	switch {
	case containsAny(lower, griefKeywords):
		analysis.Sentiment = models.Classification{Label: models.SentimentNegative, Confidence: 0.9, Source: "keyword_grief"}
	case containsAny(lower, emotionalKeywords):
		analysis.Sentiment = models.Classification{Label: models.SentimentNegative, Confidence: 0.85, Source: "keyword_emotional"}
	}
}

func (a *Analyzer) applyEmotionOverrides(lower string, analysis *models.Analysis) {
	switch {
	case containsAny(lower, griefKeywords):
		analysis.Emotion, analysis.EmotionSource = models.EmotionGrief, "keyword_grief"
	case strings.Contains(lower, "sad"):
		analysis.Emotion, analysis.EmotionSource = models.EmotionSadness, "keyword_sad"
	case containsAny(lower, []string{"anxious", "nervous", "worry", "afraid", "scared"}):
		analysis.Emotion, analysis.EmotionSource = models.EmotionFear, "keyword_anxiety"
	case containsAny(lower, []string{"angry", "mad", "frustrated", "annoyed"}):
		analysis.Emotion, analysis.EmotionSource = models.EmotionAnger, "keyword_anger"
	}
}

func detectNeuroscienceTerms(lower string) []string {
	var found []string
	for _, term := range neuroscienceTerms {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
		if re.MatchString(lower) {
			found = append(found, term)
		}
	}
	return found
}
