package respond

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxResponseLength = 500
	shortReplyWords   = 30
)

var offTopicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(stock|invest|cryptocurrency|bitcoin|trading)\b`),
	regexp.MustCompile(`\b(football|basketball|baseball|soccer|championship|tournament)\b`),
	regexp.MustCompile(`\b(recipe|ingredients|bake|cooking instructions)\b`),
	regexp.MustCompile(`\b(movie|film|box office|episode|season finale)\b`),
	regexp.MustCompile(`\b(election|candidate|politician|parliament|congress)\b`),
}

// Verifier checks generated replies stay inside the mental-health domain and
// rewrites the ones that drifted.
type Verifier struct {
	topics      []string
	redirection string
}

func NewVerifier(topics []string, redirection string) *Verifier {
	return &Verifier{topics: topics, redirection: redirection}
}

// IsOnTopic accepts a reply that references the domain vocabulary at least
// twice, or a short reply with no off-topic markers. Everything else is
// treated as drift.
func (v *Verifier) IsOnTopic(reply string) bool {
	lower := strings.ToLower(reply)

	hits := 0
	for _, topic := range v.topics {
		if strings.Contains(lower, topic) {
			hits++
			if hits >= 2 {
				return true
			}
		}
	}

	for _, p := range offTopicPatterns {
		if p.MatchString(lower) {
			return false
		}
	}
	return len(strings.Fields(reply)) < shortReplyWords
}

// Correct replaces a drifted reply with the standard redirection.
func (v *Verifier) Correct() string {
	return v.redirection
}

// Truncate enforces the reply length ceiling. The cut backs up to a rune
// boundary so a multibyte character is never split.
func Truncate(reply string) string {
	if len(reply) <= maxResponseLength {
		return reply
	}
	cut := maxResponseLength - 3
	for cut > 0 && !utf8.RuneStart(reply[cut]) {
		cut--
	}
	return reply[:cut] + "..."
}
