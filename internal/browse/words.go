package browse

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hellenika/hellenika-api/internal/domain"
)

// WordSortField names a sortable column of the word catalog view.
type WordSortField string

// Sortable word fields.
const (
	WordSortGreek        WordSortField = "greek"
	WordSortEnglish      WordSortField = "english"
	WordSortPartOfSpeech WordSortField = "part_of_speech"
	WordSortCorrect      WordSortField = "correct_count"
	WordSortWrong        WordSortField = "wrong_count"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// greekCollator compares mixed Greek/Latin text using Greek collation
// rules, so πόλις and psychē sort the way a reader expects rather than by
// raw code point. Collators are not safe for concurrent use, so each sort
// creates its own.
func greekCollator() *collate.Collator {
	return collate.New(language.Greek)
}

// FilterWords returns the words whose greek text, transliteration, or
// english gloss contains the query as a case-insensitive substring. The
// query is sanitized before matching, so markup in the query matches
// literally. An empty query keeps every word. The input slice is not
// modified; relative order is preserved.
func FilterWords(words []*domain.Word, query string) []*domain.Word {
	q := NormalizeQuery(query)
	if q == "" {
		out := make([]*domain.Word, len(words))
		copy(out, words)
		return out
	}

	out := make([]*domain.Word, 0, len(words))
	for _, w := range words {
		if strings.Contains(strings.ToLower(w.Greek), q) ||
			strings.Contains(strings.ToLower(w.Transliteration), q) ||
			strings.Contains(strings.ToLower(w.English), q) {
			out = append(out, w)
		}
	}
	return out
}

// SortWords sorts the slice in place by the given field and direction.
// Text fields use locale-aware comparison, count fields numeric comparison;
// ties keep their prior relative order. An unknown field leaves the slice
// untouched.
func SortWords(words []*domain.Word, field WordSortField, dir Direction) {
	var less func(a, b *domain.Word) int

	switch field {
	case WordSortGreek:
		c := greekCollator()
		less = func(a, b *domain.Word) int { return c.CompareString(a.Greek, b.Greek) }
	case WordSortEnglish:
		c := greekCollator()
		less = func(a, b *domain.Word) int { return c.CompareString(a.English, b.English) }
	case WordSortPartOfSpeech:
		c := greekCollator()
		less = func(a, b *domain.Word) int {
			return c.CompareString(string(a.PartOfSpeech), string(b.PartOfSpeech))
		}
	case WordSortCorrect:
		less = func(a, b *domain.Word) int { return a.CorrectCount - b.CorrectCount }
	case WordSortWrong:
		less = func(a, b *domain.Word) int { return a.WrongCount - b.WrongCount }
	default:
		return
	}

	sort.SliceStable(words, func(i, j int) bool {
		cmp := less(words[i], words[j])
		if dir == Descending {
			return cmp > 0
		}
		return cmp < 0
	})
}
