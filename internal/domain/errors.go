// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidUsername is returned when a username does not meet the
	// allowed format (3-20 characters, letters, digits, underscores).
	ErrInvalidUsername = errors.New("invalid username format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidPartOfSpeech is returned when a word carries an unknown
	// part-of-speech tag.
	ErrInvalidPartOfSpeech = errors.New("invalid part of speech")

	// ErrInvalidModality is returned when an activity modality is not valid.
	ErrInvalidModality = errors.New("invalid activity modality")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrNegativeCount is returned when a correctness counter would go negative.
	ErrNegativeCount = errors.New("count cannot be negative")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
