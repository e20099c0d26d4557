package discovery

import (
	"github.com/bookmuse/bookmuse-api/internal/domain/models"
)

// Dedupe filters books down to first-seen-wins uniqueness by identity key,
// preserving the input order of the survivors.
func Dedupe(books []models.Book) []models.Book {
	seen := make(map[string]struct{}, len(books))
	unique := make([]models.Book, 0, len(books))

	for _, book := range books {
		key := book.IdentityKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, book)
	}

	return unique
}

// DedupeAll flattens the lists in the given order and dedupes the result.
// Used where no explicit priority between sources exists beyond their
// position, e.g. per-genre mood searches.
func DedupeAll(lists [][]models.Book) []models.Book {
	var flat []models.Book
	for _, list := range lists {
		flat = append(flat, list...)
	}
	return Dedupe(flat)
}

// MergeResults combines priority-ordered lists into one deduplicated list
// capped at maxResults. Entries from earlier lists always precede and win
// over later duplicates; relative order within each list is preserved.
func MergeResults(priorityLists [][]models.Book, maxResults int) []models.Book {
	merged := DedupeAll(priorityLists)
	if maxResults >= 0 && len(merged) > maxResults {
		merged = merged[:maxResults]
	}
	return merged
}
