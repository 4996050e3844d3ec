package study

import "errors"

var (
	// ErrActivityNotFound indicates the requested activity ID does not
	// match any entry in the activity catalog.
	ErrActivityNotFound = errors.New("activity not found")

	// ErrNoWords indicates the selected word pool is empty, so no session
	// can be drawn from it.
	ErrNoWords = errors.New("no words available for session")

	// ErrSessionNotActive indicates an answer was submitted for a session
	// that has already run to completion.
	ErrSessionNotActive = errors.New("session is not active")

	// ErrMissingAnswer indicates the answer payload carried no field
	// matching the session's modality.
	ErrMissingAnswer = errors.New("missing answer for activity modality")

	// ErrInvalidOption indicates a multiple-choice answer referenced an
	// option index outside the presented choices.
	ErrInvalidOption = errors.New("invalid option index")
)
