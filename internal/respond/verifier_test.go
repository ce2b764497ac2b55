package respond

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestVerifierIsOnTopic(t *testing.T) {
	v := NewVerifier([]string{"anxiety", "stress", "feeling", "support"}, "redirect")

	assert.True(t, v.IsOnTopic("Your anxiety and stress are understandable."))
	assert.True(t, v.IsOnTopic("I hear you. Tell me more?"))
	assert.False(t, v.IsOnTopic("The stock market had a great day."))
	assert.False(t, v.IsOnTopic(strings.Repeat("word ", 40)))
}

func TestTruncate(t *testing.T) {
	short := "short reply"
	assert.Equal(t, short, Truncate(short))

	long := strings.Repeat("a", 600)
	got := Truncate(long)
	assert.Len(t, got, 500)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	// A multibyte rune straddling the cut point must not be split.
	long := strings.Repeat("a", 496) + "💙💙"
	got := Truncate(long)

	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), 500)
}
