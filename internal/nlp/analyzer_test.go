package nlp

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuralease/neuralease/internal/models"
)

type stubClassifier struct {
	result models.Classification
	err    error
}

func (s *stubClassifier) Classify(context.Context, string) (models.Classification, error) {
	return s.result, s.err
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestAnalyzerUsesRemoteResults(t *testing.T) {
	sentiment := &stubClassifier{result: models.Classification{Label: models.SentimentPositive, Confidence: 0.95, Source: "remote"}}
	emotion := &stubClassifier{result: models.Classification{Label: "Joy", Confidence: 0.8, Source: "remote"}}
	a := NewAnalyzer(sentiment, emotion, 0.4, 0.6, testLogger())

	got := a.Analyze(context.Background(), "things are going well for me")

	assert.Equal(t, models.SentimentPositive, got.Sentiment.Label)
	assert.Equal(t, models.EmotionJoy, got.Emotion)
	assert.Equal(t, "remote", got.EmotionSource)
}

func TestAnalyzerLowConfidenceFiltersToNeutral(t *testing.T) {
	sentiment := &stubClassifier{result: models.Classification{Label: models.SentimentNegative, Confidence: 0.3, Source: "remote"}}
	emotion := &stubClassifier{result: models.Classification{Label: "fear", Confidence: 0.5, Source: "remote"}}
	a := NewAnalyzer(sentiment, emotion, 0.4, 0.6, testLogger())

	got := a.Analyze(context.Background(), "it was a day like any other")

	assert.Equal(t, models.SentimentNeutral, got.Sentiment.Label)
	assert.Equal(t, "threshold_filter", got.Sentiment.Source)
	assert.Equal(t, models.EmotionNone, got.Emotion)
	assert.Equal(t, "threshold_filter", got.EmotionSource)
}

func TestAnalyzerRemoteFailureFallsBackToRules(t *testing.T) {
	failing := &stubClassifier{err: errors.New("inference API status 503")}
	a := NewAnalyzer(failing, failing, 0.4, 0.6, testLogger())

	got := a.Analyze(context.Background(), "I'm panicking about everything")

	assert.Equal(t, models.SentimentNegative, got.Sentiment.Label)
	assert.Equal(t, "rule_based", got.Sentiment.Source)
	assert.Equal(t, models.EmotionFear, got.Emotion)
	assert.Equal(t, "rule_based", got.EmotionSource)
}

func TestAnalyzerKeywordOverridesBeatRemote(t *testing.T) {
	// Remote says positive/joy, but grief vocabulary has the final word.
	sentiment := &stubClassifier{result: models.Classification{Label: models.SentimentPositive, Confidence: 0.99, Source: "remote"}}
	emotion := &stubClassifier{result: models.Classification{Label: "joy", Confidence: 0.99, Source: "remote"}}
	a := NewAnalyzer(sentiment, emotion, 0.4, 0.6, testLogger())

	got := a.Analyze(context.Background(), "my grandmother passed away")

	assert.Equal(t, models.SentimentNegative, got.Sentiment.Label)
	assert.Equal(t, "keyword_grief", got.Sentiment.Source)
	assert.InDelta(t, 0.9, got.Sentiment.Confidence, 1e-9)
	assert.Equal(t, models.EmotionGrief, got.Emotion)
}

func TestAnalyzerEmotionKeywordTiers(t *testing.T) {
	a := NewAnalyzer(nil, nil, 0.4, 0.6, testLogger())

	tests := []struct {
		text string
		want string
	}{
		{"I feel sad today", models.EmotionSadness},
		{"I'm so nervous about the interview", models.EmotionFear},
		{"I'm mad at my brother", models.EmotionAnger},
	}
	for _, tt := range tests {
		got := a.Analyze(context.Background(), tt.text)
		assert.Equal(t, tt.want, got.Emotion, tt.text)
	}
}

func TestAnalyzerCollectsSignals(t *testing.T) {
	a := NewAnalyzer(nil, nil, 0.4, 0.6, testLogger())

	got := a.Analyze(context.Background(), "What does serotonin do for my mood?")

	require.NotNil(t, got)
	assert.True(t, got.IsQuestion)
	assert.Contains(t, got.NeuroscienceTerms, "serotonin")
	assert.NotEmpty(t, got.Keywords)
}

func TestNormalizeSentimentLabel(t *testing.T) {
	assert.Equal(t, models.SentimentNegative, NormalizeSentimentLabel("1 star"))
	assert.Equal(t, models.SentimentNegative, NormalizeSentimentLabel("2 stars"))
	assert.Equal(t, models.SentimentNeutral, NormalizeSentimentLabel("3 stars"))
	assert.Equal(t, models.SentimentPositive, NormalizeSentimentLabel("4 stars"))
	assert.Equal(t, models.SentimentPositive, NormalizeSentimentLabel("5 stars"))
}
