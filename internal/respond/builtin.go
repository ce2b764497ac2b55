package respond

import (
	"math/rand"

	"github.com/neuralease/neuralease/internal/models"
)

// Builtin serves canned replies when every remote tier has failed. It keys a
// response category off the analyzed request and never fails.
type Builtin struct {
	responses map[string][]string
	links     map[string]string
}

// NewBuiltin takes the curated resource links appended to resource-request
// replies; nil is fine.
func NewBuiltin(links map[string]string) *Builtin {
	return &Builtin{links: links, responses: map[string][]string{
		models.IntentGreeting: {
			"Hello! I'm NeuralEase, your mental health support companion. How are you feeling today?",
			"Hi there! I'm NeuralEase. I'm here to listen and support you. What's on your mind?",
			"Welcome! I'm NeuralEase. I'm here to help with anything related to your mental and emotional wellbeing.",
		},
		models.IntentEmotionalSupport: {
			"That sounds really difficult. Your feelings are completely valid, and I'm here to listen. Would you like to tell me more about what you're going through?",
			"I'm sorry you're going through this. It takes courage to share how you feel. How long have you been feeling this way?",
			"Thank you for trusting me with this. What you're feeling matters. Would it help to talk through what's been weighing on you?",
		},
		models.IntentCoping: {
			"One technique that helps many people is slow breathing: inhale for four counts, hold for four, exhale for six. Grounding exercises, like naming five things you can see, can also help in the moment. Would you like to try one together?",
			"Gentle movement, journaling, and paced breathing are all evidence-based ways to manage difficult feelings. Even a short walk can shift how the brain processes stress. Which of these feels doable for you right now?",
		},
		models.IntentCrisis: {
			"I'm really concerned about what you're sharing. Please reach out to the 988 Suicide & Crisis Lifeline right now by calling or texting 988. You don't have to face this alone, and trained counselors are available 24/7.",
		},
		models.IntentSeekingInfo: {
			"That's a thoughtful question. Mental health involves both the brain and our life circumstances, and understanding it is a great first step. Could you tell me a bit more about what you'd like to know?",
		},
		models.IntentPersonalStory: {
			"Thank you for sharing your experience. It takes courage to open up about something personal. How did going through that affect you?",
			"I appreciate you trusting me with that. Your experience matters. How are you feeling about it now?",
		},
		models.IntentResources: {
			"For reliable mental health information, the National Institute of Mental Health (nimh.nih.gov) is a great starting point. If you'd like to talk to someone, a licensed therapist or counselor can offer support tailored to you. Is there a specific kind of resource you're looking for?",
		},
		models.IntentGeneral: {
			"I'm here to listen. Could you tell me more about how you've been feeling lately?",
			"Thank you for sharing that. How has this been affecting your day-to-day life?",
			"I hear you. What would feel most supportive to talk about right now?",
		},
	}}
}

func (b *Builtin) Name() string { return "builtin" }

// Respond picks a category from the request and returns a canned reply. Later
// checks outrank earlier ones: grief upgrades to emotional support, crisis
// outranks grief, and the opening turn of a conversation is always greeted.
func (b *Builtin) Respond(req Request) string {
	category := req.Intent
	if _, ok := b.responses[category]; !ok {
		category = models.IntentGeneral
	}

	if req.Emotion == models.EmotionGrief {
		category = models.IntentEmotionalSupport
	}
	if req.Intent == models.IntentCrisis {
		category = models.IntentCrisis
	}
	if isInitialGreeting(req) {
		category = models.IntentGreeting
	}

	options := b.responses[category]
	reply := options[rand.Intn(len(options))]

	if category == models.IntentResources {
		if link, ok := b.links["general"]; ok {
			reply += " A good place to start is " + link + "."
		}
	}
	return reply
}

// isInitialGreeting holds when the conversation has at most one assistant
// turn so far, meaning the user is still at the opening exchange.
func isInitialGreeting(req Request) bool {
	if req.Intent != models.IntentGreeting {
		return false
	}
	systemTurns := 0
	for _, msg := range req.History {
		if msg.Role == models.RoleSystem {
			systemTurns++
		}
	}
	return systemTurns <= 1
}
