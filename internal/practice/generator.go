package practice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/examportal/internal/catalog"
	"github.com/abhisek/examportal/internal/llm"
)

// Generator produces practice questions.
type Generator interface {
	// Generate returns one validated question.
	Generate(ctx context.Context, in Input) (*catalog.Question, error)
}

// Input is the context for one generated question.
type Input struct {
	Topic      string
	Difficulty catalog.Difficulty

	// Prior holds the text of questions already in the session.
	Prior []string

	// Examples are sample question texts on the topic, for tone.
	Examples []string
}

// LLMGenerator generates questions through an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// NewGenerator creates an LLMGenerator.
func NewGenerator(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

type questionOutput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Difficulty    string   `json:"difficulty"`
	Explanation   string   `json:"explanation"`
}

// Generate asks the model for a question and validates it, retrying
// retryable validation failures up to Config.MaxAttempts times.
func (g *LLMGenerator) Generate(ctx context.Context, in Input) (*catalog.Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposePracticeQuestions)
	var lastErr error
	for attempt := 1; attempt <= g.config.MaxAttempts; attempt++ {
		q, err := g.generateOnce(ctx, in)
		if err == nil {
			return q, nil
		}
		lastErr = err

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			return nil, err
		}
		log.Debug().Err(err).Int("attempt", attempt).Str("topic", in.Topic).Msg("generated question rejected")
	}
	return nil, lastErr
}

func (g *LLMGenerator) generateOnce(ctx context.Context, in Input) (*catalog.Question, error) {
	req := llm.UserPrompt(systemPrompt, buildUserMessage(in, g.config))
	req.Schema = QuestionSchema
	req.MaxTokens = g.config.MaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out questionOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	topic := in.Topic
	if topic == "" {
		topic = "general"
	}
	q := &catalog.Question{
		Text:          out.Question,
		Options:       out.Options,
		CorrectAnswer: out.CorrectAnswer,
		Topic:         topic,
		Difficulty:    catalog.Difficulty(out.Difficulty),
		OptionCount:   len(out.Options),
	}
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, in); verr != nil {
			return nil, verr
		}
	}
	return q, nil
}
