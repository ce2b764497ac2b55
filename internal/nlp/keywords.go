package nlp

import (
	"sort"
	"strings"
	"unicode"
)

// English stopwords used as phrase delimiters for ranked-phrase extraction.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "about", "after", "all", "also", "am", "an", "and", "any", "are",
		"as", "at", "be", "because", "been", "but", "by", "can", "cant", "could",
		"did", "do", "does", "doing", "dont", "for", "from", "had", "has", "have",
		"he", "her", "here", "hers", "him", "his", "how", "i", "if", "im", "in",
		"into", "is", "it", "its", "ive", "just", "me", "more", "most", "my",
		"no", "not", "now", "of", "on", "only", "or", "our", "out", "over",
		"she", "so", "some", "such", "than", "that", "the", "their", "them",
		"then", "there", "these", "they", "this", "to", "too", "up", "very",
		"was", "we", "were", "what", "when", "where", "which", "who", "why",
		"will", "with", "would", "you", "your",
	} {
		stopwords[w] = struct{}{}
	}
}

// ExtractKeywords returns up to max ranked phrases. Candidate phrases are
// maximal stopword-free word runs; each word scores degree/frequency and a
// phrase scores the sum of its word scores (the RAKE scheme the original
// conversational dataset was keyed with).
func ExtractKeywords(text string, max int) []string {
	phrases := candidatePhrases(text)
	if len(phrases) == 0 {
		return nil
	}

	freq := map[string]int{}
	degree := map[string]int{}
	for _, phrase := range phrases {
		words := strings.Fields(phrase)
		for _, w := range words {
			freq[w]++
			degree[w] += len(words) - 1
		}
	}

	type ranked struct {
		phrase string
		score  float64
	}
	seen := map[string]struct{}{}
	var out []ranked
	for _, phrase := range phrases {
		if _, dup := seen[phrase]; dup {
			continue
		}
		seen[phrase] = struct{}{}
		score := 0.0
		for _, w := range strings.Fields(phrase) {
			score += float64(degree[w]+freq[w]) / float64(freq[w])
		}
		out = append(out, ranked{phrase: phrase, score: score})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })

	if max > len(out) {
		max = len(out)
	}
	result := make([]string, 0, max)
	for _, r := range out[:max] {
		result = append(result, r.phrase)
	}
	return result
}

func candidatePhrases(text string) []string {
	var phrases []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			phrases = append(phrases, strings.Join(current, " "))
			current = nil
		}
	}

	for _, token := range splitWords(text) {
		if _, stop := stopwords[token]; stop {
			flush()
			continue
		}
		current = append(current, token)
	}
	flush()
	return phrases
}

func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
