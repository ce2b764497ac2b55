// Package nlp extracts intent, sentiment, emotion, and keyword signals from a
// user message. Sentiment and emotion try a remote classifier first and fall
// back to rule-based lexical scoring; a keyword override layer always has the
// final word.
package nlp

import "strings"

var (
	greetingKeywords  = []string{"hi", "hello", "hey", "good morning", "good evening", "good afternoon", "good night"}
	copingKeywords    = []string{"cope", "coping", "ways", "strategies", "deal", "manage"}
	griefKeywords     = []string{"lost", "loss", "died", "death", "grief", "bereavement", "passed", "gone"}
	emotionalKeywords = []string{"sad", "anxious", "depressed", "down", "upset"}

	sadnessKeywords = []string{"sad", "down", "depressed", "hopeless", "miserable", "unhappy", "blue", "empty", "lonely"}
	anxietyKeywords = []string{"anxious", "nervous", "worried", "panicking", "panic", "scared", "afraid", "fear", "stress"}
	angerKeywords   = []string{"angry", "mad", "frustrated", "irritated", "annoyed", "upset", "furious", "rage"}
	joyKeywords     = []string{"happy", "joy", "excited", "glad", "pleased", "grateful", "thankful", "content"}

	symptomKeywords = []string{"symptom", "pain", "headache", "tired", "exhausted", "nauseous"}

	neuroscienceTerms = []string{
		"amygdala", "hippocampus", "prefrontal cortex", "limbic system", "cerebral cortex",
		"dopamine", "serotonin", "norepinephrine", "gaba", "glutamate", "depression", "anxiety",
	}

	questionStarters = []string{"what", "how", "why", "when", "where", "who", "can", "could", "would", "will"}
)

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func countHits(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

// GriefKeywords reports whether grief/loss vocabulary appears in the text.
func GriefKeywords(text string) bool {
	return containsAny(strings.ToLower(text), griefKeywords)
}

// EmotionalKeywords reports whether general emotional-distress vocabulary
// appears in the text.
func EmotionalKeywords(text string) bool {
	return containsAny(strings.ToLower(text), emotionalKeywords)
}
