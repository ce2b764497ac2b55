package models

import "strings"

const (
	emotionHistoryMax   = 10
	sentimentHistoryMax = 10
	primaryConcernsMax  = 5
)

// UserProfile is derived from user messages and embedded in the conversation
// blob. Histories are bounded ring buffers; concerns are a bounded,
// case-insensitively deduplicated set.
type UserProfile struct {
	ConsentGiven     bool     `json:"consent_given"`
	Name             string   `json:"name,omitempty"`
	Age              *int     `json:"age,omitempty"`
	PreferredStyle   string   `json:"preferred_responses"`
	EmotionHistory   []string `json:"emotion_history"`
	SentimentHistory []string `json:"sentiment_history"`
	PrimaryConcerns  []string `json:"primary_concerns"`
}

func DefaultProfile() UserProfile {
	return UserProfile{
		PreferredStyle:   "neutral",
		EmotionHistory:   []string{},
		SentimentHistory: []string{},
		PrimaryConcerns:  []string{},
	}
}

func (p *UserProfile) RecordEmotion(emotion string) {
	if emotion == "" || emotion == EmotionNone {
		return
	}
	p.EmotionHistory = append(p.EmotionHistory, emotion)
	if len(p.EmotionHistory) > emotionHistoryMax {
		p.EmotionHistory = p.EmotionHistory[1:]
	}
}

func (p *UserProfile) RecordSentiment(label string) {
	if label == "" {
		return
	}
	p.SentimentHistory = append(p.SentimentHistory, label)
	if len(p.SentimentHistory) > sentimentHistoryMax {
		p.SentimentHistory = p.SentimentHistory[1:]
	}
}

func (p *UserProfile) RecordConcerns(keywords []string) {
	for _, kw := range keywords {
		if kw == "" || p.hasConcern(kw) {
			continue
		}
		if len(p.PrimaryConcerns) >= primaryConcernsMax {
			p.PrimaryConcerns = p.PrimaryConcerns[1:]
		}
		p.PrimaryConcerns = append(p.PrimaryConcerns, kw)
	}
}

func (p *UserProfile) hasConcern(kw string) bool {
	for _, c := range p.PrimaryConcerns {
		if strings.EqualFold(c, kw) {
			return true
		}
	}
	return false
}
