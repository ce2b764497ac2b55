package respond

import (
	"context"
	"fmt"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

// Gemini generates replies through a Vertex AI generative model. The system
// instruction is carried on the model so the user turn stays clean.
type Gemini struct {
	client *vertexgenai.Client
	name   string
}

func NewGemini(ctx context.Context, projectID, location, modelName string, opts ...option.ClientOption) (*Gemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	return &Gemini{client: c, name: modelName}, nil
}

func (g *Gemini) Close() error { return g.client.Close() }

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Generate(ctx context.Context, p Prompt) (string, error) {
	model := g.client.GenerativeModel(g.name)
	model.SystemInstruction = &vertexgenai.Content{
		Parts: []vertexgenai.Part{vertexgenai.Text(p.System)},
	}

	resp, err := model.GenerateContent(ctx, vertexgenai.Text(p.User))
	if err != nil {
		return "", err
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(vertexgenai.Text); ok && string(t) != "" {
				return string(t), nil
			}
		}
	}
	return "", fmt.Errorf("gemini returned no text candidates")
}
