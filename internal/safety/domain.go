package safety

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// DomainFilter decides whether input belongs to the mental-health domain and
// detects crisis language. Ambiguous input is accepted: rejecting a real
// concern is worse than processing an off-topic message.
type DomainFilter struct {
	log *logrus.Logger

	topics         []string
	crisisKeywords []string

	wellbeingPatterns []*regexp.Regexp
	exclusionPatterns []*regexp.Regexp
	crisisPatterns    []*regexp.Regexp
}

func NewDomainFilter(topics, crisisKeywords []string, log *logrus.Logger) *DomainFilter {
	return &DomainFilter{
		log:            log,
		topics:         topics,
		crisisKeywords: crisisKeywords,
		wellbeingPatterns: compileAll([]string{
			`how (can|do) (i|you) (cope|deal|manage|handle)`,
			`(i'm|i am|im) (feeling|so) (sad|down|anxious|depressed|worried|stressed)`,
			`(help|advice) (with|for) (my|dealing with|coping with)`,
			`(feel|feeling) (better|worse|good|bad|low|high)`,
			`having (trouble|difficulty|problems) with`,
			`(cant|can't|cannot) (stop|help) (thinking|feeling|worrying)`,
		}),
		exclusionPatterns: compileAll([]string{
			`\b(stock market|investment|cryptocurrency|bitcoin|finance|trading)\b`,
			`\b(sports|football|basketball|baseball|soccer|game|match|score)\b`,
			`\b(politics|election|government|policy|politician|vote|campaign)\b`,
			`\b(recipe|cooking|baking|ingredients|dinner|lunch|breakfast)\b`,
			`\b(movie|film|tv show|television|actor|actress|director|watch)\b`,
			`\b(weather|forecast|temperature|rain|snow|sunny|cloudy|storm)\b`,
			`\b(travel|vacation|flight|hotel|tourist|destination|trip)\b`,
			`\b(news|headline|article|journalism|reporter|media)\b`,
			`\b(tech|technology|gadget|device|computer|software|hardware)\b`,
			`\b(shopping|product|buy|purchase|store|mall|online shop)\b`,
		}),
		crisisPatterns: compileAll([]string{
			`(want|thinking about|considering) (to)? ?(die|suicide|kill myself|end it all)`,
			`(don't|do not) (want to|wanna) (live|be alive|exist) (anymore|any longer)`,
			`(no|zero) (point|reason|purpose) (in|to|for) (living|life|going on)`,
			`(everyone|world) (better|would be better) (off )?without me`,
			`(can't|cannot) (take|handle|deal with) (it|this) (anymore|any longer)`,
			`(plan|planning|preparing) (to|on) (hurt|harm|kill) (myself|me)`,
			`(this is|that's) (it|the end|my last|goodbye|farewell)`,
		}),
	}
}

// IsMentalHealthRelated accepts on any topic-vocabulary hit or wellbeing
// phrasing, rejects on exclusion topics when nothing accepted, and accepts
// everything ambiguous.
func (f *DomainFilter) IsMentalHealthRelated(text string) bool {
	lower := strings.ToLower(text)

	for _, topic := range f.topics {
		if strings.Contains(lower, topic) {
			return true
		}
	}
	for _, p := range f.wellbeingPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	for _, p := range f.exclusionPatterns {
		if p.MatchString(lower) {
			f.log.WithField("pattern", p.String()).Info("non-mental-health topic detected")
			return false
		}
	}
	return true
}

func (f *DomainFilter) ContainsCrisisLanguage(text string) bool {
	lower := strings.ToLower(text)

	for _, kw := range f.crisisKeywords {
		if strings.Contains(lower, kw) {
			f.log.WithField("keyword", kw).Warn("crisis keyword detected")
			return true
		}
	}
	for _, p := range f.crisisPatterns {
		if p.MatchString(lower) {
			f.log.WithField("pattern", p.String()).Warn("crisis pattern detected")
			return true
		}
	}
	return false
}

func (f *DomainFilter) RedirectionMessage() string {
	return "I'm specialized in providing support for mental health concerns. " +
		"While I can't help with that specific topic, I'm here if you'd like to " +
		"discuss anything related to emotional wellbeing, stress, anxiety, or other mental health topics. " +
		"Is there something about your mental or emotional wellbeing you'd like to talk about?"
}

func (f *DomainFilter) CrisisResources() string {
	return "I'm concerned about your wellbeing. If you're in crisis or having thoughts of suicide, " +
		"please reach out for immediate help:\n" +
		"• Call or text 988 to reach the Suicide & Crisis Lifeline\n" +
		"• Text HOME to 741741 to reach the Crisis Text Line\n" +
		"• Call 911 or go to your nearest emergency room\n\n" +
		"These services are free, confidential, and available 24/7. " +
		"You deserve support, and help is available."
}
