// Package mastery implements the fixed-threshold rules that classify a word
// as learned and compute accuracy percentages from raw answer tallies.
package mastery

import "fmt"

// Params holds the tunable thresholds for the mastery classification.
//
// These are policy constants, not runtime configuration: the application
// always uses DefaultParams. They are kept in a struct so the thresholds are
// named, testable, and adjustable in one place if the policy ever changes.
type Params struct {
	// CorrectThreshold is the minimum cumulative correct count a word
	// needs before it can be considered mastered.
	CorrectThreshold int

	// WrongTolerance is the maximum cumulative wrong count a mastered
	// word may carry.
	WrongTolerance int
}

// DefaultParams returns the standard mastery thresholds:
// at least 10 correct answers and no more than 2 wrong ones.
func DefaultParams() Params {
	return Params{
		CorrectThreshold: 10,
		WrongTolerance:   2,
	}
}

// Validate checks that the parameters are internally consistent.
func (p Params) Validate() error {
	if p.CorrectThreshold < 1 {
		return fmt.Errorf("correct threshold must be at least 1, got %d", p.CorrectThreshold)
	}
	if p.WrongTolerance < 0 {
		return fmt.Errorf("wrong tolerance cannot be negative, got %d", p.WrongTolerance)
	}
	return nil
}
