package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/neuralease/neuralease/internal/models"
)

// Classifier produces a single labelled signal for a text.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.Classification, error)
}

// RemoteClassifier calls a hosted inference endpoint. The response is the
// usual text-classification shape: a (possibly nested) list of
// {label, score} candidates; the top-scoring one wins. A fresh connection is
// used per call so concurrent requests never share a closed client.
type RemoteClassifier struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration

	// Normalize maps the provider's raw label ("1 star", "sadness", ...)
	// onto our label space. Nil keeps the raw label.
	Normalize func(label string) string
}

type scoredLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (r *RemoteClassifier) Classify(ctx context.Context, text string) (models.Classification, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return models.Classification{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(body))
	if err != nil {
		return models.Classification{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.APIKey)
	}

	client := &http.Client{
		Timeout:   timeout,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
	resp, err := client.Do(req)
	if err != nil {
		return models.Classification{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Classification{}, fmt.Errorf("inference API status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Classification{}, err
	}

	candidates, err := parseCandidates(raw)
	if err != nil {
		return models.Classification{}, err
	}
	if len(candidates) == 0 {
		return models.Classification{}, fmt.Errorf("inference API returned no candidates")
	}

	top := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > top.Score {
			top = c
		}
	}

	label := top.Label
	if r.Normalize != nil {
		label = r.Normalize(label)
	}
	return models.Classification{Label: label, Confidence: top.Score, Source: "remote"}, nil
}

// parseCandidates accepts both [{...}] and [[{...}]] payload shapes.
func parseCandidates(raw []byte) ([]scoredLabel, error) {
	var nested [][]scoredLabel
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		return nested[0], nil
	}
	var flat []scoredLabel
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("unexpected inference API payload: %w", err)
	}
	return flat, nil
}
