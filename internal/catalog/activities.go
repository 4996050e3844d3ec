// Package catalog holds the static study activity catalog.
//
// Unlike words and groups, which live in the database, the activity list is
// fixed at build time and never mutated at runtime.
package catalog

import "github.com/hellenika/hellenika-api/internal/domain"

// activities is the built-in activity catalog, mirroring the three study
// modes the application ships with.
var activities = []domain.StudyActivity{
	{
		ID:          "flashcard",
		Name:        "Flashcards",
		Description: "Practice vocabulary with classic flashcard review",
		Modality:    domain.ModalityFlashcard,
	},
	{
		ID:          "quiz",
		Name:        "Multiple Choice",
		Description: "Test your knowledge with multiple choice questions",
		Modality:    domain.ModalityQuiz,
	},
	{
		ID:          "typing",
		Name:        "Typing Practice",
		Description: "Type the Greek word from its English meaning",
		Modality:    domain.ModalityTyping,
	},
}

// Activities returns the full activity catalog in display order.
// The returned slice is a copy; callers may not mutate the catalog.
func Activities() []domain.StudyActivity {
	out := make([]domain.StudyActivity, len(activities))
	copy(out, activities)
	return out
}

// ActivityByID looks up an activity by its identifier.
// The second return value reports whether the activity exists.
func ActivityByID(id string) (domain.StudyActivity, bool) {
	for _, a := range activities {
		if a.ID == id {
			return a, true
		}
	}
	return domain.StudyActivity{}, false
}
