package domain

import "fmt"

// Modality is the question-presentation style of a study activity.
type Modality string

// Recognized activity modalities. The built-in catalog currently ships
// flashcard, quiz, and typing; the remaining tags are reserved for
// future activities.
const (
	ModalityFlashcard Modality = "flashcard"
	ModalityQuiz      Modality = "quiz"
	ModalityTyping    Modality = "typing"
	ModalityMatching  Modality = "matching"
	ModalityListening Modality = "listening"
	ModalitySpelling  Modality = "spelling"
)

// IsValid reports whether the modality is one of the known values.
func (m Modality) IsValid() bool {
	switch m {
	case ModalityFlashcard, ModalityQuiz, ModalityTyping,
		ModalityMatching, ModalityListening, ModalitySpelling:
		return true
	}
	return false
}

// StudyActivity describes one way of practicing vocabulary.
// The activity catalog is static and never mutated at runtime.
type StudyActivity struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Modality    Modality `json:"type"`
}

// Validate checks if the StudyActivity has valid data.
func (a *StudyActivity) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: activity ID cannot be empty", ErrInvalidID)
	}
	if a.Name == "" {
		return fmt.Errorf("%w: activity name cannot be empty", ErrEmptyContent)
	}
	if !a.Modality.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidModality, a.Modality)
	}
	return nil
}
