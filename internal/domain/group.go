package domain

import (
	"fmt"
	"time"
)

// WordGroup is a named collection of vocabulary words.
//
// Groups are read-only relative to study activities. WordCount is a cached
// membership count maintained at seed time; membership itself is derived
// from Word.GroupIDs and is not owned by the group.
type WordGroup struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	WordCount   int       `json:"word_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks if the WordGroup has valid data.
func (g *WordGroup) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("%w: group ID cannot be empty", ErrInvalidID)
	}
	if g.Name == "" {
		return fmt.Errorf("%w: group name cannot be empty", ErrEmptyContent)
	}
	if g.WordCount < 0 {
		return ErrNegativeCount
	}
	return nil
}
