package respond

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/neuralease/neuralease/internal/models"
	"github.com/neuralease/neuralease/internal/safety"
)

const neuralEaseIntro = "I'm NeuralEase, your mental health support companion. "

// Cascade tries each provider in order under its own timeout, verifies the
// result, and falls back to the built-in responder when every tier fails.
// Crisis language in the input forces hotline information onto the reply no
// matter which tier produced it.
type Cascade struct {
	providers []Provider
	builtin   *Builtin
	verifier  *Verifier
	filter    *safety.DomainFilter
	timeout   time.Duration
	log       *logrus.Logger
}

func NewCascade(providers []Provider, builtin *Builtin, verifier *Verifier, filter *safety.DomainFilter, timeout time.Duration, log *logrus.Logger) *Cascade {
	return &Cascade{
		providers: providers,
		builtin:   builtin,
		verifier:  verifier,
		filter:    filter,
		timeout:   timeout,
		log:       log,
	}
}

// Respond returns the reply text and the name of the tier that produced it.
func (c *Cascade) Respond(ctx context.Context, req Request) (string, string) {
	reply, source := c.generate(ctx, req)

	if c.needsCrisisFooter(req, reply) {
		reply = reply + "\n\n" + c.filter.CrisisResources()
	}
	if isInitialGreeting(req) && !strings.Contains(reply, "NeuralEase") {
		reply = neuralEaseIntro + reply
	}
	return Truncate(reply), source
}

func (c *Cascade) generate(ctx context.Context, req Request) (string, string) {
	for i, provider := range c.providers {
		prompt := BuildPrompt(req)
		if i > 0 {
			prompt = BuildReinforcedPrompt(req)
		}

		tierCtx, cancel := context.WithTimeout(ctx, c.timeout)
		reply, err := provider.Generate(tierCtx, prompt)
		cancel()

		if err != nil {
			c.log.WithError(err).WithField("provider", provider.Name()).Warn("generation tier failed")
			continue
		}

		reply = strings.TrimSpace(reply)
		if reply == "" {
			c.log.WithField("provider", provider.Name()).Warn("generation tier returned empty reply")
			continue
		}

		if !c.verifier.IsOnTopic(reply) {
			c.log.WithField("provider", provider.Name()).Info("reply drifted off-topic, redirecting")
			return c.verifier.Correct(), provider.Name()
		}
		return reply, provider.Name()
	}

	return c.builtin.Respond(req), c.builtin.Name()
}

func (c *Cascade) needsCrisisFooter(req Request, reply string) bool {
	if req.Intent != models.IntentCrisis && !c.filter.ContainsCrisisLanguage(req.Input) {
		return false
	}
	return !strings.Contains(reply, "988")
}
