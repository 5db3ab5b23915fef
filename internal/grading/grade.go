package grading

import "math"

// Grade is a letter grade together with the display classes the result
// views use to color it.
type Grade struct {
	Letter       string `json:"letter"`
	ColorClass   string `json:"color"`
	BgColorClass string `json:"bgColor"`
}

// Family returns the grade's color family: green, blue, yellow, orange or red.
func (g Grade) Family() string {
	switch g.ColorClass {
	case greenText:
		return "green"
	case blueText:
		return "blue"
	case yellowText:
		return "yellow"
	case orangeText:
		return "orange"
	default:
		return "red"
	}
}

const (
	greenText  = "text-green-600"
	blueText   = "text-blue-600"
	yellowText = "text-yellow-600"
	orangeText = "text-orange-600"
	redText    = "text-red-600"

	greenBg  = "bg-green-100"
	blueBg   = "bg-blue-100"
	yellowBg = "bg-yellow-100"
	orangeBg = "bg-orange-100"
	redBg    = "bg-red-100"
)

// ladder is ordered from the highest threshold down.
var ladder = []struct {
	min   int
	grade Grade
}{
	{97, Grade{"A+", greenText, greenBg}},
	{93, Grade{"A", greenText, greenBg}},
	{90, Grade{"A-", greenText, greenBg}},
	{87, Grade{"B+", blueText, blueBg}},
	{83, Grade{"B", blueText, blueBg}},
	{80, Grade{"B-", blueText, blueBg}},
	{77, Grade{"C+", yellowText, yellowBg}},
	{73, Grade{"C", yellowText, yellowBg}},
	{70, Grade{"C-", yellowText, yellowBg}},
	{60, Grade{"D", orangeText, orangeBg}},
}

var gradeF = Grade{"F", redText, redBg}

// LetterGrade maps a 0-100 score to its letter grade.
func LetterGrade(score int) Grade {
	for _, step := range ladder {
		if score >= step.min {
			return step.grade
		}
	}
	return gradeF
}

// Score returns round(100*correct/total). A zero total scores 0.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// XP is the experience awarded for finishing an exam with the given score.
func XP(score int) int {
	return score * 2
}
