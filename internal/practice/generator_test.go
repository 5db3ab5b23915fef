package practice

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/examportal/internal/catalog"
	"github.com/abhisek/examportal/internal/llm"
)

func TestGenerate_Valid(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: generatedJSON(1)})
	gen := NewGenerator(mock, DefaultConfig())

	q, err := gen.Generate(context.Background(), Input{Topic: "modifiers", Difficulty: catalog.DifficultyBeginner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.CorrectAnswer != 0 || q.Options[0] != "final" || q.OptionCount != 4 {
		t.Errorf("question = %+v", q)
	}
	if q.Topic != "modifiers" || q.Difficulty != catalog.DifficultyBeginner {
		t.Errorf("topic/difficulty = %q/%q", q.Topic, q.Difficulty)
	}

	req := mock.Calls[0]
	if req.Schema != QuestionSchema || req.System != systemPrompt {
		t.Error("request lacks schema or system prompt")
	}
	if !strings.Contains(req.Messages[0].Content, "Topic: modifiers") {
		t.Errorf("prompt = %q", req.Messages[0].Content)
	}
}

func TestGenerate_RetriesDuplicate(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: generatedJSON(1)},
		llm.MockResponse{Content: generatedJSON(2)},
	)
	gen := NewGenerator(mock, DefaultConfig())

	prior := "Which Java keyword declares a constant number 1?"
	q, err := gen.Generate(context.Background(), Input{Topic: "java", Prior: []string{prior}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(q.Text, "number 2?") {
		t.Errorf("Text = %q", q.Text)
	}
	if mock.CallCount() != 2 {
		t.Errorf("CallCount() = %d, want 2", mock.CallCount())
	}
}

func TestGenerate_GivesUpAfterMaxAttempts(t *testing.T) {
	dup := json.RawMessage(`{"question":"Same?","options":["a","a","b","c"],"correctAnswer":1,"difficulty":"beginner","explanation":"x"}`)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: dup},
		llm.MockResponse{Content: dup},
		llm.MockResponse{Content: dup},
		llm.MockResponse{Content: generatedJSON(9)},
	)
	gen := NewGenerator(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "java"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Validator != "structural" {
		t.Fatalf("err = %v, want structural ValidationError", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("CallCount() = %d, want 3", mock.CallCount())
	}
}

func TestGenerate_ProviderErrorNotRetried(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	gen := NewGenerator(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{})
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("err = %v, want wrapped ErrRateLimit", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1", mock.CallCount())
	}
}

func TestGenerate_SchemaViolation(t *testing.T) {
	bad := json.RawMessage(`{"question":"Q?","options":["a","b"],"correctAnswer":0,"difficulty":"beginner","explanation":"x"}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: bad})
	gen := NewGenerator(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{})
	var inv *llm.ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}
