package exam

import "maps"

// Ledger maps question IDs to the selected option index. The answered count
// is kept alongside the map so callers never need to scan it.
type Ledger struct {
	answers map[string]int
	count   int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{answers: make(map[string]int)}
}

// Set records idx for the question, replacing any earlier answer. It
// reports whether an earlier answer was replaced.
func (l *Ledger) Set(questionID string, idx int) bool {
	_, existed := l.answers[questionID]
	l.answers[questionID] = idx
	if !existed {
		l.count++
	}
	return existed
}

// Get returns the recorded answer for the question.
func (l *Ledger) Get(questionID string) (int, bool) {
	idx, ok := l.answers[questionID]
	return idx, ok
}

// Has reports whether the question has an answer.
func (l *Ledger) Has(questionID string) bool {
	_, ok := l.answers[questionID]
	return ok
}

// Len returns the number of answered questions.
func (l *Ledger) Len() int {
	return l.count
}

// Snapshot copies the answers.
func (l *Ledger) Snapshot() map[string]int {
	return maps.Clone(l.answers)
}

// Clear drops every answer.
func (l *Ledger) Clear() {
	clear(l.answers)
	l.count = 0
}
