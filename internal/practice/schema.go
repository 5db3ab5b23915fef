package practice

import "github.com/abhisek/examportal/internal/llm"

// QuestionSchema is the response shape requested from the model.
var QuestionSchema = &llm.Schema{
	Name:        "exam-question",
	Description: "A single multiple-choice exam question with four options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question stem in plain text",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    4,
				"maxItems":    4,
				"description": "Exactly four answer options, one of them correct",
			},
			"correctAnswer": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     3,
				"description": "Zero-based index of the correct option",
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"beginner", "intermediate", "advance"},
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "One or two sentences on why the answer is correct",
			},
		},
		"required":             []any{"question", "options", "correctAnswer", "difficulty", "explanation"},
		"additionalProperties": false,
	},
}
