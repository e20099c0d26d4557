package discovery

import (
	"context"
	"errors"
	"log"

	"github.com/bookmuse/bookmuse-api/internal/domain/models"
	"github.com/bookmuse/bookmuse-api/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidMood is returned when the mood is empty or not in the table.
var ErrInvalidMood = errors.New("invalid mood provided")

// moodSearchCap bounds results fetched per genre.
const moodSearchCap = 10

// MoodFinder maps a mood keyword to an ordered genre list and searches the
// catalog once per genre. The table is fixed at construction; no ambient
// state is consulted afterwards.
type MoodFinder struct {
	catalog    repository.CatalogClient
	moodGenres map[string][]string
}

// NewMoodFinder creates a mood pipeline over the given mood-to-genres table.
func NewMoodFinder(catalog repository.CatalogClient, moodGenres map[string][]string) *MoodFinder {
	return &MoodFinder{
		catalog:    catalog,
		moodGenres: moodGenres,
	}
}

// BooksByMood fans out one catalog search per genre mapped to the mood and
// returns the deduplicated union. Earlier genres in the table win identity
// collisions. No cap is applied to the combined list.
func (m *MoodFinder) BooksByMood(ctx context.Context, mood string) ([]models.Book, error) {
	genres, ok := m.moodGenres[mood]
	if mood == "" || !ok {
		return nil, ErrInvalidMood
	}

	log.Printf("[Mood] Searching %d genres for mood %q", len(genres), mood)

	results := make([][]models.Book, len(genres))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)

	for i, genre := range genres {
		g.Go(func() error {
			books, err := m.catalog.Search(gctx, models.SearchFilter{Genre: genre}, moodSearchCap)
			if err != nil {
				log.Printf("[Mood] Genre search failed for %q: %v", genre, err)
				return nil
			}
			results[i] = books
			return nil
		})
	}

	_ = g.Wait()

	return DedupeAll(results), nil
}

// DefaultMoodGenres returns the built-in mood-to-genres table. Callers must
// treat the returned map as immutable.
func DefaultMoodGenres() map[string][]string {
	return map[string][]string{
		// Positive and uplifting moods
		"happy":   {"Comedy", "Light Fiction", "Feel-Good Fiction", "Romantic Comedy", "Uplifting"},
		"hopeful": {"Inspirational Fiction", "Self-help", "Uplifting Non-Fiction", "Motivational", "Spiritual"},

		// Moods of introspection and reflection
		"reflective": {"Biography", "Memoir", "Literary Fiction", "Philosophical", "Non-fiction"},
		"nostalgic":  {"Historical Fiction", "Classic Literature", "Vintage Fiction", "Memoir"},

		// Moods that seek excitement and adventure
		"adventurous": {"Adventure", "Action", "Thriller", "Fantasy", "Historical Adventure", "Science Fiction"},
		"energetic":   {"Adventure", "Action", "Sports Fiction", "Science Fiction", "Fast-Paced Fiction"},

		// Moods for when one is feeling down or in need of comfort
		"sad":         {"Drama", "Inspirational", "Self-help", "Psychological Fiction", "Tragic Drama"},
		"melancholic": {"Literary Fiction", "Tragic Drama", "Melodrama", "Poignant Fiction"},

		// Moods with a touch of anger or defiance
		"angry": {"Political Thriller", "Satire", "Revenge Fiction", "Dark Fiction", "Contemporary Drama"},

		// Moods that lean towards mystery and suspense
		"anxious": {"Mystery", "Psychological Thriller", "Suspense", "Crime Fiction", "Noir"},

		// Moods that are romantic or seeking emotional connection
		"romantic": {"Romance", "Romantic Drama", "Contemporary Romance", "Historical Romance"},

		// Moods where frustration might lead to a desire for biting humor
		"frustrated": {"Satire", "Dark Comedy", "Drama", "Political Satire"},
	}
}
