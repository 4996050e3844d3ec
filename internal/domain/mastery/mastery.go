package mastery

import "math"

// IsMastered reports whether a word with the given cumulative tallies
// qualifies as mastered under the params: the correct count must reach the
// threshold AND the wrong count must stay within tolerance.
func IsMastered(correct, wrong int, params Params) bool {
	return correct >= params.CorrectThreshold && wrong <= params.WrongTolerance
}

// Accuracy computes the rounded percentage of correct answers.
// It is defined as 0 when no attempts exist, avoiding division by zero.
func Accuracy(correct, wrong int) int {
	total := correct + wrong
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
