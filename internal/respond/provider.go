// Package respond turns an analyzed message into a reply. Providers are tried
// in a fixed order and every result passes through topic verification before
// it reaches the user; the built-in responder sits at the end of the chain and
// never fails.
package respond

import (
	"context"

	"github.com/neuralease/neuralease/internal/models"
)

// Prompt is a provider-agnostic generation request. Providers that support
// role separation send System and User as separate turns; others concatenate.
type Prompt struct {
	System string
	User   string
}

// Provider generates a reply for a prompt.
type Provider interface {
	Name() string
	Generate(ctx context.Context, p Prompt) (string, error)
}

// Request carries everything the cascade needs to produce a reply for one
// user message. History is the conversation before the message was appended.
type Request struct {
	Input     string
	Intent    string
	Sentiment string
	Emotion   string
	Style     string
	History   []models.Message
}
