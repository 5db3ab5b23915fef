package exam

import (
	"time"

	"github.com/abhisek/examportal/internal/catalog"
	"github.com/abhisek/examportal/internal/grading"
)

// Result is the graded outcome of a submitted session.
type Result struct {
	SessionID string `json:"sessionId"`

	// Exam is the configuration the session was started from.
	Exam catalog.ExamConfig `json:"examConfig"`

	Score          int `json:"score"`
	CorrectAnswers int `json:"correctAnswers"`
	TotalQuestions int `json:"totalQuestions"`
	AnsweredCount  int `json:"answeredCount"`

	// Answers is a copy of the ledger at submission.
	Answers map[string]int `json:"answers"`

	// TimeSpentSeconds is wall-clock time from start to submission.
	TimeSpentSeconds int `json:"timeSpent"`

	// Details lists every question in presentation order.
	Details []grading.Detail `json:"detailedResults"`

	IsAutoSubmit bool          `json:"isAutoSubmit"`
	StartedAt    time.Time     `json:"startedAt"`
	CompletedAt  time.Time     `json:"completedAt"`
	Grade        grading.Grade `json:"grade"`
	Passed       bool          `json:"passed"`
}

// Topics returns the per-topic breakdown.
func (r *Result) Topics() []grading.TopicResult {
	return grading.TopicBreakdown(r.Details)
}

// Performance returns the result's performance band.
func (r *Result) Performance() grading.Performance {
	return grading.PerformanceFor(r.Score)
}

// IncorrectCount counts answered questions that were wrong.
func (r *Result) IncorrectCount() int {
	return r.AnsweredCount - r.CorrectAnswers
}

// UnansweredCount counts questions left blank.
func (r *Result) UnansweredCount() int {
	return r.TotalQuestions - r.AnsweredCount
}

// grade builds a Result from a session's questions and answers.
func grade(id string, cfg catalog.ExamConfig, questions []catalog.Question, answers *Ledger, started, completed time.Time, auto bool) *Result {
	details := make([]grading.Detail, len(questions))
	correct := 0
	for i, q := range questions {
		d := grading.Detail{
			QuestionID:         q.ID,
			QuestionText:       q.Text,
			Options:            q.Options,
			CorrectAnswerIndex: q.CorrectAnswer,
			Topic:              q.Topic,
			Difficulty:         string(q.Difficulty),
		}
		if idx, ok := answers.Get(q.ID); ok {
			d.UserAnswerIndex = &idx
			d.IsCorrect = q.IsCorrect(idx)
		}
		if d.IsCorrect {
			correct++
		}
		details[i] = d
	}

	spent := int(completed.Sub(started) / time.Second)
	if spent < 0 {
		spent = 0
	}

	score := grading.Score(correct, len(questions))
	return &Result{
		SessionID:        id,
		Exam:             cfg,
		Score:            score,
		CorrectAnswers:   correct,
		TotalQuestions:   len(questions),
		AnsweredCount:    answers.Len(),
		Answers:          answers.Snapshot(),
		TimeSpentSeconds: spent,
		Details:          details,
		IsAutoSubmit:     auto,
		StartedAt:        started,
		CompletedAt:      completed,
		Grade:            grading.LetterGrade(score),
		Passed:           score >= cfg.PassingScore,
	}
}
