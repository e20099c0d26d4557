package discovery

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/bookmuse/bookmuse-api/internal/domain/models"
	"github.com/bookmuse/bookmuse-api/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

const (
	// genericSearchCap matches the catalog's per-request ceiling and is also
	// the cap on the merged recommendation list.
	genericSearchCap = 40

	// fanOutLimit bounds concurrent per-title and per-genre catalog calls.
	fanOutLimit = 8
)

// NoMatchesMessage is the sentinel returned as data (not an error) when a
// recommendation search turns up nothing at all.
const NoMatchesMessage = "No matching books found. Try refining your search."

var titleByAuthorRe = regexp.MustCompile(`(?i)(.+?)\s+by\s+(.+)`)

// Recommender combines individual title lookups suggested by the LLM with a
// generic filtered catalog search, prioritizing the title lookups.
type Recommender struct {
	extractor *Extractor
	catalog   repository.CatalogClient
}

// NewRecommender creates a recommendation pipeline.
func NewRecommender(extractor *Extractor, catalog repository.CatalogClient) *Recommender {
	return &Recommender{
		extractor: extractor,
		catalog:   catalog,
	}
}

// Recommend runs the full pipeline for a user query. An empty result list is
// a legitimate outcome (the NoMatches sentinel), not an error; the error
// return is reserved for unexpected internal faults.
func (r *Recommender) Recommend(ctx context.Context, query string) ([]models.Book, error) {
	log.Printf("[Recommender] Processing query: %q", query)

	filter := r.extractor.Extract(ctx, query)

	prioritized := r.lookupSuggestedTitles(ctx, filter)

	generic, err := r.catalog.Search(ctx, filter, genericSearchCap)
	if err != nil {
		return nil, err
	}

	combined := MergeResults([][]models.Book{prioritized, generic}, genericSearchCap)
	log.Printf("[Recommender] Merged %d prioritized + %d generic into %d results",
		len(prioritized), len(generic), len(combined))

	return combined, nil
}

// lookupSuggestedTitles resolves each LLM-suggested title individually with a
// single-result catalog call. Lookups are independent and fan out
// concurrently; results are reassembled in the original bookTitles order,
// skipping titles the catalog could not resolve.
func (r *Recommender) lookupSuggestedTitles(ctx context.Context, filter models.SearchFilter) []models.Book {
	if len(filter.BookTitles) == 0 {
		return nil
	}

	results := make([][]models.Book, len(filter.BookTitles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)

	for i, suggestion := range filter.BookTitles {
		g.Go(func() error {
			titleFilter := filter
			if m := titleByAuthorRe.FindStringSubmatch(suggestion); m != nil {
				titleFilter.Title = strings.TrimSpace(m[1])
				titleFilter.Author = strings.TrimSpace(m[2])
			} else {
				titleFilter.Title = strings.TrimSpace(suggestion)
			}

			books, err := r.catalog.Search(gctx, titleFilter, 1)
			if err != nil {
				// A failed lookup only costs its own slot.
				log.Printf("[Recommender] Title lookup failed for %q: %v", suggestion, err)
				return nil
			}
			results[i] = books
			return nil
		})
	}

	_ = g.Wait()

	var prioritized []models.Book
	for _, books := range results {
		if len(books) > 0 {
			prioritized = append(prioritized, books[0])
		}
	}
	return prioritized
}
