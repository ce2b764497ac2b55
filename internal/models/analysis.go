package models

// Classification is a single labelled signal with its confidence and the
// source that produced it ("keyword", "remote", "rule_based",
// "threshold_filter", "default", or an override tag).
type Classification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// Analysis is the per-user-message signal set produced by the extractor and
// adjusted by the override engine.
type Analysis struct {
	Intent            Classification `json:"intent"`
	Sentiment         Classification `json:"sentiment"`
	Emotion           string         `json:"emotion"`
	EmotionSource     string         `json:"emotion_source"`
	Keywords          []string       `json:"keywords,omitempty"`
	NeuroscienceTerms []string       `json:"neuroscience_terms,omitempty"`
	IsQuestion        bool           `json:"is_question"`

	// Gate outcomes, recorded when a message is stopped before extraction.
	Unsafe   bool `json:"unsafe,omitempty"`
	OffTopic bool `json:"off_topic,omitempty"`
}

// Intent labels, in rule priority order.
const (
	IntentGreeting         = "greeting"
	IntentSeekingInfo      = "seeking_information"
	IntentEmotionalSupport = "emotional_support"
	IntentCoping           = "coping_strategies"
	IntentResources        = "resources_request"
	IntentPersonalStory    = "personal_story"
	IntentCrisis           = "crisis"
	IntentPhysicalSymptom  = "physical_symptom"
	IntentGeneral          = "general"
)

// Sentiment labels.
const (
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentPositive = "positive"
)

// Emotion labels used by the override layer and the rule-based scorer.
const (
	EmotionNone    = "none"
	EmotionGrief   = "grief"
	EmotionSadness = "sadness"
	EmotionFear    = "fear"
	EmotionAnger   = "anger"
	EmotionJoy     = "joy"
)
