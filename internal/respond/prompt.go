package respond

import (
	"fmt"
	"strings"

	"github.com/neuralease/neuralease/internal/models"
)

const historyTurns = 5

const persona = "You are NeuralEase, a compassionate mental health support companion. " +
	"You provide emotional support, evidence-based coping strategies, and psychoeducation " +
	"about mental health and the brain. You are warm, non-judgmental, and concise. " +
	"You are not a therapist and you never diagnose, prescribe, or replace professional care. " +
	"Stay strictly within mental health and emotional wellbeing topics."

var intentGuidance = map[string]string{
	models.IntentGreeting:         "Greet the user warmly and invite them to share how they are feeling.",
	models.IntentSeekingInfo:      "Give a clear, accurate explanation at a general-audience level. Mention the brain mechanisms involved when relevant.",
	models.IntentEmotionalSupport: "Lead with empathy. Validate the feeling before anything else, then gently invite the user to share more.",
	models.IntentCoping:           "Offer two or three concrete, evidence-based coping techniques the user can try right now.",
	models.IntentResources:        "Point the user toward reputable mental health resources and encourage professional support.",
	models.IntentCrisis:           "Respond with calm urgency. Encourage the user to contact the 988 Suicide & Crisis Lifeline immediately.",
	models.IntentPhysicalSymptom:  "Acknowledge the physical experience, note the mind-body connection, and suggest seeing a healthcare provider for persistent symptoms.",
	models.IntentPersonalStory:    "The user is sharing a personal experience. Thank them for opening up, reflect back what you heard, and ask what the experience was like for them.",
	models.IntentGeneral:          "Respond supportively and steer the conversation toward the user's emotional wellbeing.",
}

var emotionGuidance = map[string]string{
	models.EmotionGrief:   "The user is grieving. Acknowledge the loss explicitly and do not rush toward solutions.",
	models.EmotionSadness: "The user sounds sad. Validate the sadness before offering anything else.",
	models.EmotionFear:    "The user sounds anxious or afraid. Use a calm, grounding tone.",
	models.EmotionAnger:   "The user sounds frustrated or angry. Stay steady and non-defensive.",
	models.EmotionJoy:     "The user sounds positive. Reinforce what is going well for them.",
}

var styleGuidance = map[string]string{
	"friendly":     "Use a casual, warm register, as a supportive friend would.",
	"professional": "Use a measured, clinical-adjacent register while staying approachable.",
}

// BuildPrompt assembles the system instruction and user turn for a request.
func BuildPrompt(req Request) Prompt {
	var sys strings.Builder
	sys.WriteString(persona)

	if g, ok := intentGuidance[req.Intent]; ok {
		sys.WriteString("\n\nIntent: ")
		sys.WriteString(g)
	}
	if g, ok := emotionGuidance[req.Emotion]; ok {
		sys.WriteString("\nEmotional state: ")
		sys.WriteString(g)
	}
	if g, ok := styleGuidance[req.Style]; ok {
		sys.WriteString("\nStyle: ")
		sys.WriteString(g)
	}
	sys.WriteString("\nKeep the reply under 120 words.")

	if history := formatHistory(req.History); history != "" {
		sys.WriteString("\n\nRecent conversation:\n")
		sys.WriteString(history)
	}

	return Prompt{System: sys.String(), User: req.Input}
}

// BuildReinforcedPrompt is the variant sent to fallback providers after the
// primary produced nothing usable: the domain constraint is restated so a
// second drift is less likely.
func BuildReinforcedPrompt(req Request) Prompt {
	p := BuildPrompt(req)
	p.System += "\n\nIMPORTANT: Your reply must be entirely about mental health and emotional wellbeing. " +
		"Do not discuss any other subject for any reason."
	return p
}

func formatHistory(history []models.Message) string {
	start := len(history) - historyTurns
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for _, msg := range history[start:] {
		speaker := "User"
		if msg.Role == models.RoleSystem {
			speaker = "NeuralEase"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, msg.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
