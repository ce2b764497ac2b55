package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the immutable runtime configuration. It is loaded once in main
// and passed explicitly into every component that needs it.
type Config struct {
	Port string

	// Security
	EncryptionKey string // base64, 32 bytes decoded
	JWTSecret     string
	TokenExpiry   time.Duration

	// Conversation limits
	MaxConversationLength int
	ContextWindow         int
	SessionExpiry         time.Duration

	// Classifier thresholds
	SentimentThreshold    float64
	EmotionThreshold      float64
	IntentConfidenceFloor float64

	// Providers
	HFAPIKey          string
	HFSentimentURL    string
	HFEmotionURL      string
	ClassifierTimeout time.Duration

	OpenAIAPIKey string
	OpenAIModel  string

	VertexProject   string
	VertexLocation  string
	VertexModel     string
	ProviderTimeout time.Duration

	// Persistence backend for encrypted conversation blobs:
	// "postgres" (default), "redis", or "mongo".
	StoreBackend string

	// Domain vocabulary
	MentalHealthTopics []string
	CrisisKeywords     []string
	ResourceLinks      map[string]string
	ResponseStyles     []string
}

func Load() *Config {
	return &Config{
		Port: envOr("PORT", "10000"),

		EncryptionKey: os.Getenv("ENCRYPTION_KEY"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenExpiry:   time.Duration(envInt("TOKEN_EXPIRY_HOURS", 24)) * time.Hour,

		MaxConversationLength: envInt("MAX_CONVERSATION_LENGTH", 100),
		ContextWindow:         envInt("CONTEXT_WINDOW", 10),
		SessionExpiry:         time.Duration(envInt("SESSION_EXPIRY_MINUTES", 30)) * time.Minute,

		SentimentThreshold:    envFloat("SENTIMENT_CONFIDENCE_THRESHOLD", 0.4),
		EmotionThreshold:      envFloat("EMOTION_CONFIDENCE_THRESHOLD", 0.6),
		IntentConfidenceFloor: envFloat("INTENT_CONFIDENCE_FLOOR", 0.7),

		HFAPIKey: os.Getenv("HF_API_KEY"),
		HFSentimentURL: envOr("HF_SENTIMENT_URL",
			"https://api-inference.huggingface.co/models/nlptown/bert-base-multilingual-uncased-sentiment"),
		HFEmotionURL: envOr("HF_EMOTION_URL",
			"https://api-inference.huggingface.co/models/bhadresh-savani/distilbert-base-uncased-emotion"),
		ClassifierTimeout: time.Duration(envInt("CLASSIFIER_TIMEOUT_SECONDS", 10)) * time.Second,

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  envOr("OPENAI_MODEL", "gpt-3.5-turbo"),

		VertexProject:   os.Getenv("VERTEX_PROJECT_ID"),
		VertexLocation:  envOr("VERTEX_LOCATION", "us-central1"),
		VertexModel:     envOr("VERTEX_MODEL", "gemini-2.0-flash"),
		ProviderTimeout: time.Duration(envInt("PROVIDER_TIMEOUT_SECONDS", 30)) * time.Second,

		StoreBackend: envOr("STORE_BACKEND", "postgres"),

		MentalHealthTopics: defaultMentalHealthTopics(),
		CrisisKeywords:     defaultCrisisKeywords(),
		ResourceLinks:      defaultResourceLinks(),
		ResponseStyles:     []string{"neutral", "friendly", "professional"},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func defaultMentalHealthTopics() []string {
	return []string{
		// Conditions and disorders
		"depression", "anxiety", "stress", "grief", "trauma", "ptsd", "ocd",
		"bipolar", "schizophrenia", "adhd", "add", "eating disorder", "anorexia",
		"bulimia", "binge eating", "panic attack", "phobia", "insomnia",

		// Approaches and treatments
		"therapy", "counseling", "psychiatry", "psychology", "mental health",
		"coping", "mindfulness", "meditation", "self-care", "support group",
		"cognitive behavioral", "cbt", "dbt", "psychotherapy", "treatment",

		// Emotional states
		"emotion", "feeling", "mood", "sadness", "happiness", "anger", "fear",
		"loneliness", "isolation", "burnout", "exhaustion", "overwhelm",

		// Related concepts
		"wellbeing", "wellness", "mental wellness", "emotional health",
		"resilience", "recovery", "healing", "self-esteem", "confidence",
		"boundaries", "relationship", "social anxiety",
	}
}

func defaultCrisisKeywords() []string {
	return []string{
		"suicide", "kill myself", "harm myself", "end my life", "want to die",
		"don't want to live", "no reason to live", "emergency", "crisis",
	}
}

func defaultResourceLinks() map[string]string {
	return map[string]string{
		"general":        "https://www.nimh.nih.gov",
		"crisis":         "https://988lifeline.org",
		"sleep":          "https://www.nimh.nih.gov/health/topics/sleep-disorders",
		"anxiety":        "https://www.nimh.nih.gov/health/topics/anxiety-disorders",
		"depression":     "https://www.nimh.nih.gov/health/topics/depression",
		"grief":          "https://www.nimh.nih.gov/health/topics/grief-and-loss",
		"trauma":         "https://www.nimh.nih.gov/health/topics/coping-with-traumatic-events",
		"support_groups": "https://www.nami.org/Support-Education/Support-Groups",
		"therapy":        "https://www.psychologytoday.com/us/therapists",
	}
}
