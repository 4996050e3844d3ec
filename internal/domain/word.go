package domain

import (
	"fmt"
	"time"
)

// PartOfSpeech classifies a vocabulary word grammatically.
type PartOfSpeech string

// Recognized part-of-speech tags.
const (
	PartOfSpeechNoun        PartOfSpeech = "noun"
	PartOfSpeechVerb        PartOfSpeech = "verb"
	PartOfSpeechAdjective   PartOfSpeech = "adjective"
	PartOfSpeechAdverb      PartOfSpeech = "adverb"
	PartOfSpeechPreposition PartOfSpeech = "preposition"
	PartOfSpeechConjunction PartOfSpeech = "conjunction"
	PartOfSpeechParticle    PartOfSpeech = "particle"
)

// IsValid reports whether the part-of-speech tag is one of the known values.
func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective,
		PartOfSpeechAdverb, PartOfSpeechPreposition, PartOfSpeechConjunction,
		PartOfSpeechParticle:
		return true
	}
	return false
}

// Word is a single vocabulary entry in the catalog.
//
// The catalog is seeded once; CorrectCount and WrongCount are aggregate
// counters across all users, mutated only in response to answer events.
// Words are never deleted in normal operation.
type Word struct {
	ID              string       `json:"id"`
	Greek           string       `json:"greek"`
	Transliteration string       `json:"transliteration"`
	English         string       `json:"english"`
	PartOfSpeech    PartOfSpeech `json:"part_of_speech"`
	CorrectCount    int          `json:"correct_count"`
	WrongCount      int          `json:"wrong_count"`

	// GroupIDs holds the identifiers of groups this word belongs to.
	// Membership is owned by the word; a referenced group may no longer
	// exist and that is tolerated, not an error.
	GroupIDs []string `json:"group_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks if the Word has valid data.
// Returns an error wrapping ErrValidation if any field fails validation.
func (w *Word) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("%w: word ID cannot be empty", ErrInvalidID)
	}
	if w.Greek == "" {
		return fmt.Errorf("%w: greek text cannot be empty", ErrEmptyContent)
	}
	if w.English == "" {
		return fmt.Errorf("%w: english gloss cannot be empty", ErrEmptyContent)
	}
	if !w.PartOfSpeech.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPartOfSpeech, w.PartOfSpeech)
	}
	if w.CorrectCount < 0 || w.WrongCount < 0 {
		return ErrNegativeCount
	}
	return nil
}

// InGroup reports whether the word belongs to the given group.
func (w *Word) InGroup(groupID string) bool {
	for _, id := range w.GroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}
