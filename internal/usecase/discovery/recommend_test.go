package discovery

import (
	"context"
	"testing"

	"github.com/bookmuse/bookmuse-api/internal/domain/models"
)

func TestRecommend_PrioritizedTitleWinsMerge(t *testing.T) {
	llmResponse := `{
		"topics": ["space opera"],
		"minRating": 4.0,
		"bookTitles": ["Dune by Frank Herbert"]
	}`

	dune := models.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593"}
	duplicate := models.Book{Title: "Dune (Reissue)", ISBN: "9780441013593"}
	other := models.Book{Title: "A Fire Upon the Deep", Author: "Vernor Vinge", ISBN: "9780812515282"}

	catalog := &mockCatalog{
		search: func(filter models.SearchFilter, maxResults int) []models.Book {
			if maxResults == 1 {
				// Per-title lookup carries the split title/author override.
				if filter.Title != "Dune" || filter.Author != "Frank Herbert" {
					t.Errorf("Unexpected per-title filter: %+v", filter)
				}
				return []models.Book{dune}
			}
			return []models.Book{duplicate, other}
		},
	}

	recommender := NewRecommender(
		NewExtractor(&mockRouter{client: &mockLLMClient{response: llmResponse}}),
		catalog,
	)

	books, err := recommender.Recommend(context.Background(), "space opera books with rating above 4")
	if err != nil {
		t.Fatalf("Recommend returned unexpected error: %v", err)
	}

	if len(books) != 2 {
		t.Fatalf("Expected exactly 2 unique books, got %d", len(books))
	}
	if books[0].Title != "Dune" {
		t.Errorf("Expected the prioritized Dune record first, got %q", books[0].Title)
	}
	if books[1].ISBN != other.ISBN {
		t.Errorf("Expected the unrelated generic result second, got %+v", books[1])
	}

	// One call per suggested title plus the generic search.
	if got := catalog.callCount(); got != 2 {
		t.Errorf("Expected 2 catalog calls, got %d", got)
	}
}

func TestRecommend_TitleWithoutAuthorSetsOnlyTitle(t *testing.T) {
	llmResponse := `{"bookTitles": ["Neuromancer"]}`

	catalog := &mockCatalog{
		search: func(filter models.SearchFilter, maxResults int) []models.Book {
			if maxResults == 1 {
				if filter.Title != "Neuromancer" || filter.Author != "" {
					t.Errorf("Expected only the title set, got %+v", filter)
				}
				return []models.Book{{Title: "Neuromancer", ISBN: "9780441569595"}}
			}
			return nil
		},
	}

	recommender := NewRecommender(
		NewExtractor(&mockRouter{client: &mockLLMClient{response: llmResponse}}),
		catalog,
	)

	books, err := recommender.Recommend(context.Background(), "neuromancer")
	if err != nil {
		t.Fatalf("Recommend returned unexpected error: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Neuromancer" {
		t.Errorf("Expected the resolved title lookup to be returned, got %v", books)
	}
}

func TestRecommend_PreservesSuggestionOrder(t *testing.T) {
	llmResponse := `{"bookTitles": ["Book One by Author A", "Book Two by Author B", "Book Three by Author C"]}`

	catalog := &mockCatalog{
		search: func(filter models.SearchFilter, maxResults int) []models.Book {
			if maxResults == 1 {
				if filter.Title == "Book Two" {
					// Unresolvable suggestions are skipped, not erred.
					return nil
				}
				return []models.Book{{Title: filter.Title, Author: filter.Author}}
			}
			return nil
		},
	}

	recommender := NewRecommender(
		NewExtractor(&mockRouter{client: &mockLLMClient{response: llmResponse}}),
		catalog,
	)

	books, err := recommender.Recommend(context.Background(), "some list")
	if err != nil {
		t.Fatalf("Recommend returned unexpected error: %v", err)
	}

	if len(books) != 2 {
		t.Fatalf("Expected 2 resolved titles, got %d", len(books))
	}
	if books[0].Title != "Book One" || books[1].Title != "Book Three" {
		t.Errorf("Expected bookTitles order preserved across the fan-out, got %v", books)
	}
}

func TestRecommend_NoMatchesYieldsEmptyList(t *testing.T) {
	// Extraction fails, catalog finds nothing: the caller receives an empty
	// list and maps it to the no-matches sentinel.
	recommender := NewRecommender(
		NewExtractor(&mockRouter{client: &mockLLMClient{response: "garbage"}}),
		&mockCatalog{},
	)

	books, err := recommender.Recommend(context.Background(), "query with no matches")
	if err != nil {
		t.Fatalf("Recommend returned unexpected error: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("Expected no results, got %v", books)
	}
}

func TestDirectSearch_SingleCatalogCall(t *testing.T) {
	llmResponse := `{"genre": "Horror"}`

	catalog := &mockCatalog{
		search: func(filter models.SearchFilter, maxResults int) []models.Book {
			if filter.Genre != "Horror" {
				t.Errorf("Expected extracted genre in filter, got %+v", filter)
			}
			return []models.Book{{Title: "It", Author: "Stephen King"}}
		},
	}

	direct := NewDirectSearcher(
		NewExtractor(&mockRouter{client: &mockLLMClient{response: llmResponse}}),
		catalog,
	)

	books, err := direct.Search(context.Background(), "scary books")
	if err != nil {
		t.Fatalf("Search returned unexpected error: %v", err)
	}
	if len(books) != 1 || books[0].Title != "It" {
		t.Errorf("Expected catalog results verbatim, got %v", books)
	}
	if got := catalog.callCount(); got != 1 {
		t.Errorf("Expected exactly one catalog call, got %d", got)
	}
}
