package practice

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write multiple-choice questions for technical certification practice exams.

Rules:
- Write one question on the given topic at the given difficulty.
- Give exactly 4 options. Exactly one is correct. Distractors should be plausible mistakes.
- Options must be distinct and short. Do not use "all of the above" or "none of the above".
- correctAnswer is the zero-based index of the correct option.
- Use plain text. No markdown, no code fences.
- Do not repeat any question from the "already asked" list.`

// buildUserMessage renders the per-question prompt.
func buildUserMessage(in Input, cfg Config) string {
	var b strings.Builder
	topic := in.Topic
	if topic == "" {
		topic = "general software engineering"
	}
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	if in.Difficulty != "" {
		fmt.Fprintf(&b, "Difficulty: %s\n", in.Difficulty)
	} else {
		b.WriteString("Difficulty: any\n")
	}
	if len(in.Examples) > 0 {
		b.WriteString("\nExample questions from the same exam:\n")
		b.WriteString(numbered(in.Examples, 3))
		b.WriteString("\n")
	}
	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildDedup(in.Prior, cfg.MaxPriorQuestions))
	return b.String()
}

// buildDedup lists the most recent prior questions, or "None".
func buildDedup(prior []string, max int) string {
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}
	return numbered(prior, 0)
}

func numbered(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[:max]
	}
	var b strings.Builder
	for i, s := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
