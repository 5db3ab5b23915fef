package grading

// Band classifies a topic percentage.
type Band string

const (
	BandGood Band = "good"
	BandFair Band = "fair"
	BandPoor Band = "poor"
)

// BandFor returns good for >=80, fair for >=60 and poor otherwise.
func BandFor(percentage int) Band {
	switch {
	case percentage >= 80:
		return BandGood
	case percentage >= 60:
		return BandFair
	default:
		return BandPoor
	}
}

// TopicResult aggregates one topic's questions within a result.
type TopicResult struct {
	Topic      string `json:"topic"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Band       Band   `json:"band"`
}

// Detail is the per-question view grading works on.
type Detail struct {
	QuestionID         string   `json:"questionId"`
	QuestionText       string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswer"`
	UserAnswerIndex    *int     `json:"userAnswer,omitempty"`
	IsCorrect          bool     `json:"isCorrect"`
	Topic              string   `json:"topic"`
	Difficulty         string   `json:"difficulty"`
}

// Answered reports whether the user picked any option.
func (d Detail) Answered() bool {
	return d.UserAnswerIndex != nil
}

// TopicBreakdown groups details by topic in order of first appearance.
func TopicBreakdown(details []Detail) []TopicResult {
	index := make(map[string]int)
	var out []TopicResult
	for _, d := range details {
		i, ok := index[d.Topic]
		if !ok {
			i = len(out)
			index[d.Topic] = i
			out = append(out, TopicResult{Topic: d.Topic})
		}
		out[i].Total++
		if d.IsCorrect {
			out[i].Correct++
		}
	}
	for i := range out {
		out[i].Percentage = Score(out[i].Correct, out[i].Total)
		out[i].Band = BandFor(out[i].Percentage)
	}
	return out
}

// Filter selects which details a result review shows.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterCorrect    Filter = "correct"
	FilterIncorrect  Filter = "incorrect"
	FilterUnanswered Filter = "unanswered"
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterCorrect, FilterIncorrect, FilterUnanswered}

// Apply returns the details matching the filter. Incorrect means answered
// and wrong.
func (f Filter) Apply(details []Detail) []Detail {
	if f == FilterAll || f == "" {
		return details
	}
	var out []Detail
	for _, d := range details {
		var keep bool
		switch f {
		case FilterCorrect:
			keep = d.IsCorrect
		case FilterIncorrect:
			keep = d.Answered() && !d.IsCorrect
		case FilterUnanswered:
			keep = !d.Answered()
		}
		if keep {
			out = append(out, d)
		}
	}
	return out
}
