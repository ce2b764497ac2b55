// Package safety holds the two input gates of the pipeline: the binary
// safe/unsafe check and the mental-health domain filter.
package safety

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// Gate classifies raw input as processable or not. Mental-health distress
// language (self-harm, suicidal ideation) is explicitly accepted: those
// messages must be handled with crisis resources, not blocked.
type Gate struct {
	log *logrus.Logger

	unsafePatterns        []*regexp.Regexp
	inappropriatePatterns []*regexp.Regexp
	distressPatterns      []*regexp.Regexp
}

func NewGate(log *logrus.Logger) *Gate {
	return &Gate{
		log: log,
		unsafePatterns: compileAll([]string{
			`\b(bomb|terrorist|attack plan|weapon|massacre|shooting)\b`,
			`\b(child porn|csam|pedophil|underage|child abuse)\b`,
			`\b(rape|sexual assault)\b`,
			`\b(kill|murder|harm|attack) (others|people|someone|him|her|them)\b`,
			`\b(hack|ddos|phish|malware|ransomware)\b`,
			`\b(illegal drug|cocaine|heroin|meth production|drug dealing)\b`,
		}),
		inappropriatePatterns: compileAll([]string{
			`\b(dating advice|pickup|get (girl|guy|women|men))\b`,
			`\b(write|generate) (my|an) (essay|assignment|homework)\b`,
			`\b(create|write) (a|an) (advertisement|marketing)\b`,
			`\b(how to|ways to) (cheat|plagiarize|steal)\b`,
			`\b(stock|crypto|investment) (tips|advice|recommendation)\b`,
		}),
		distressPatterns: compileAll([]string{
			`\b(suicide|self-harm|self harm|kill myself|killing myself)\b`,
			`\b(hurt myself|harming myself)\b`,
		}),
	}
}

// IsSafe reports whether the input may enter the pipeline. Evaluation order
// matters: hard blocks first, then out-of-scope requests, then the distress
// tier which accepts. Any evaluation failure fails closed.
func (g *Gate) IsSafe(text string) (safe bool) {
	defer func() {
		if r := recover(); r != nil {
			g.log.WithField("panic", r).Error("safety check failed, rejecting input")
			safe = false
		}
	}()

	lower := strings.ToLower(text)

	for _, p := range g.unsafePatterns {
		if p.MatchString(lower) {
			g.log.WithField("pattern", p.String()).Warn("unsafe content detected")
			return false
		}
	}
	for _, p := range g.inappropriatePatterns {
		if p.MatchString(lower) {
			g.log.WithField("pattern", p.String()).Warn("out-of-scope request detected")
			return false
		}
	}
	for _, p := range g.distressPatterns {
		if p.MatchString(lower) {
			// Handled downstream with crisis resources, never rejected here.
			g.log.WithField("pattern", p.String()).Info("distress language detected")
			return true
		}
	}
	return true
}

func compileAll(exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}
